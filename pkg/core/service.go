package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Service handles the business logic for notes: cache-first listing,
// validated writes with cache write-through, and application of realtime
// change events. The cache is optional; a nil cache degrades every read to
// a remote fetch.
type Service struct {
	snapshots Snapshots
	cache     NoteCache
	logger    *slog.Logger
	now       func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceLogger sets the logger.
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) { s.logger = logger }
}

// WithServiceClock overrides the time source (tests).
func WithServiceClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// NewService creates a new Service. cache may be nil.
func NewService(snapshots Snapshots, cache NoteCache, opts ...ServiceOption) *Service {
	s := &Service{
		snapshots: snapshots,
		cache:     cache,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListNotes returns one (user, partition) note set. If the cache holds a
// fresh copy the network round trip is skipped entirely; otherwise the
// remote set is fetched and the cache repopulated opportunistically. When
// the remote fails, stale cached notes are served as a last resort.
func (s *Service) ListNotes(ctx context.Context, userID string, archived bool) ([]Note, error) {
	if s.cache != nil && !s.cache.Stale(ctx, archived) {
		if cached := s.cache.CachedNotes(ctx, userID, archived); len(cached) > 0 {
			return cached, nil
		}
	}

	notes, err := s.snapshots.ListNotes(ctx, userID, archived)
	if err != nil {
		if s.cache != nil {
			if cached := s.cache.CachedNotes(ctx, userID, archived); len(cached) > 0 {
				s.warn("remote fetch failed, serving stale cache", err)
				return cached, nil
			}
		}
		return nil, fmt.Errorf("list notes: %w", err)
	}

	if s.cache != nil && !s.cache.CacheNotes(ctx, notes, archived) {
		s.warn("failed to repopulate cache", nil)
	}
	return notes, nil
}

// CreateNote validates and persists a new note, then mirrors it into the
// cache. A missing ID is assigned; tags are normalized; both timestamps are
// stamped with the current time.
func (s *Service) CreateNote(ctx context.Context, draft Note) (Note, error) {
	if draft.Content == "" {
		return Note{}, ErrEmptyContent
	}
	if draft.ID == "" {
		draft.ID = uuid.NewString()
	}
	draft.Tags = NormalizeTags(draft.Tags)
	now := s.now()
	draft.CreatedAt = now
	draft.UpdatedAt = now

	if err := s.snapshots.SaveNote(ctx, draft); err != nil {
		return Note{}, fmt.Errorf("create note: %w", err)
	}
	s.mirror(ctx, draft)
	return draft, nil
}

// UpdateNote validates and persists changes to an existing note.
func (s *Service) UpdateNote(ctx context.Context, n Note) (Note, error) {
	if n.ID == "" {
		return Note{}, ErrEmptyID
	}
	if n.Content == "" {
		return Note{}, ErrEmptyContent
	}
	n.Tags = NormalizeTags(n.Tags)
	n.UpdatedAt = s.now()

	if err := s.snapshots.SaveNote(ctx, n); err != nil {
		return Note{}, fmt.Errorf("update note: %w", err)
	}
	s.mirror(ctx, n)
	return n, nil
}

// SetArchived moves a note between the active and archived partitions by
// flipping its lifecycle flag. The note is never duplicated.
func (s *Service) SetArchived(ctx context.Context, id string, archived bool) (Note, error) {
	if id == "" {
		return Note{}, ErrEmptyID
	}
	n, err := s.snapshots.GetNote(ctx, id)
	if err != nil {
		return Note{}, fmt.Errorf("archive note: %w", err)
	}
	if n.Archived == archived {
		return n, nil
	}
	n.Archived = archived
	n.UpdatedAt = s.now()
	if err := s.snapshots.SaveNote(ctx, n); err != nil {
		return Note{}, fmt.Errorf("archive note: %w", err)
	}
	s.mirror(ctx, n)
	return n, nil
}

// DeleteNote removes a note from the remote set and from the cache.
func (s *Service) DeleteNote(ctx context.Context, id string) error {
	if id == "" {
		return ErrEmptyID
	}
	if err := s.snapshots.DeleteNote(ctx, id); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if s.cache != nil && !s.cache.DeleteNote(ctx, id) {
		s.warn("failed to evict deleted note from cache", nil)
	}
	return nil
}

// ApplyChange funnels a realtime push event into the cache. Updates are
// last-write-wins with no version check: if two changes to the same note
// race, whichever lands last in the store wins.
func (s *Service) ApplyChange(ctx context.Context, ev ChangeEvent) error {
	if s.cache == nil {
		return nil
	}
	switch ev.Type {
	case ChangeInsert, ChangeUpdate:
		if ev.Note == nil {
			return ErrInvalidEvent
		}
		if !s.cache.UpdateNote(ctx, *ev.Note) {
			s.warn("failed to apply change event to cache", nil)
		}
	case ChangeDelete:
		if ev.ID == "" {
			return ErrInvalidEvent
		}
		if !s.cache.DeleteNote(ctx, ev.ID) {
			s.warn("failed to apply delete event to cache", nil)
		}
	default:
		return fmt.Errorf("unknown change type %q", ev.Type)
	}
	return nil
}

// FilterNotes lists one partition and runs it through the simple filter and
// the sorter. Filtering precedes sorting.
func (s *Service) FilterNotes(ctx context.Context, userID string, archived bool, state FilterState, searchTerm string, field SortField, dir SortDirection) ([]Note, error) {
	notes, err := s.ListNotes(ctx, userID, archived)
	if err != nil {
		return nil, err
	}
	filtered := ApplyFilters(notes, state, searchTerm)
	SortNotes(filtered, field, dir)
	return filtered, nil
}

// SearchNotes is the advanced-query entry point; it replaces the simple
// filter step, the two are never composed in the same pass.
func (s *Service) SearchNotes(ctx context.Context, userID string, archived bool, search Search, field SortField, dir SortDirection) ([]Note, error) {
	if result := ValidateSearch(search.Queries); !result.Valid {
		return nil, fmt.Errorf("invalid search: %s", result.Errors[0])
	}
	notes, err := s.ListNotes(ctx, userID, archived)
	if err != nil {
		return nil, err
	}
	matched := ExecuteAdvancedSearch(notes, search)
	sorted := make([]Note, len(matched))
	copy(sorted, matched)
	SortNotes(sorted, field, dir)
	return sorted, nil
}

// FacetOptions lists one partition and derives the distinct facet values.
func (s *Service) FacetOptions(ctx context.Context, userID string, archived bool) (FacetOptions, error) {
	notes, err := s.ListNotes(ctx, userID, archived)
	if err != nil {
		return FacetOptions{}, err
	}
	return ComputeFilterOptions(notes), nil
}

// ClearCache wipes the local cache entirely. Used on logout or account
// switch so no data leaks across identities.
func (s *Service) ClearCache(ctx context.Context) bool {
	if s.cache == nil {
		return true
	}
	return s.cache.Clear(ctx)
}

// Close releases the cache handle if it owns closable resources.
func (s *Service) Close() error {
	if closer, ok := s.cache.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// mirror writes a note through to the cache after a successful remote write.
func (s *Service) mirror(ctx context.Context, n Note) {
	if s.cache == nil {
		return
	}
	if !s.cache.UpdateNote(ctx, n) {
		s.warn("failed to mirror note into cache", nil)
	}
}

func (s *Service) warn(msg string, err error) {
	if s.logger == nil {
		return
	}
	if err != nil {
		s.logger.Warn(msg, "error", err)
		return
	}
	s.logger.Warn(msg)
}
