// Package memory implements core.Snapshots in memory. It backs the CLI
// (seeded from a snapshot file) and serves as a test double for the remote
// backend.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/sift/pkg/core"
)

// Store is an in-memory note set keyed by id. Safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	notes map[string]core.Note
}

// NewStore creates a Store seeded with the given notes.
func NewStore(notes ...core.Note) *Store {
	s := &Store{notes: make(map[string]core.Note, len(notes))}
	for _, n := range notes {
		s.notes[n.ID] = n
	}
	return s
}

// ListNotes returns the notes owned by userID in the given partition.
func (s *Store) ListNotes(ctx context.Context, userID string, archived bool) ([]core.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []core.Note
	for _, n := range s.notes {
		if n.UserID == userID && n.Archived == archived {
			out = append(out, n)
		}
	}
	return out, nil
}

// GetNote retrieves a note by id.
func (s *Store) GetNote(ctx context.Context, id string) (core.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.notes[id]
	if !ok {
		return core.Note{}, core.ErrNotFound
	}
	return n, nil
}

// SaveNote upserts a note by id.
func (s *Store) SaveNote(ctx context.Context, n core.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notes[n.ID] = n
	return nil
}

// DeleteNote removes a note by id.
func (s *Store) DeleteNote(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[id]; !ok {
		return core.ErrNotFound
	}
	delete(s.notes, id)
	return nil
}

var _ core.Snapshots = (*Store)(nil)
