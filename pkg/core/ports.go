package core

import (
	"context"
	"time"
)

// Snapshots defines the contract with the authoritative note backend.
// Adhering to this interface keeps the core independent of the hosted
// service actually serving the notes (REST, generated client, in-memory).
type Snapshots interface {
	// ListNotes returns the full note set for one (user, partition) pair.
	ListNotes(ctx context.Context, userID string, archived bool) ([]Note, error)

	// GetNote retrieves a note by its ID.
	GetNote(ctx context.Context, id string) (Note, error)

	// SaveNote persists a note. It creates if not exists, or updates if it does.
	SaveNote(ctx context.Context, n Note) error

	// DeleteNote removes a note by its ID.
	DeleteNote(ctx context.Context, id string) error
}

// NoteCache is a best-effort, non-authoritative local mirror of the remote
// note set. Every method is fault tolerant: a failing cache must degrade to
// a miss, never break the authoritative read/write path, so nothing here
// returns an error.
type NoteCache interface {
	// CacheNotes upserts a full partition snapshot and stamps the
	// partition's sync metadata with the current time. On failure it
	// returns false and the stamp is left untouched, so staleness stays
	// correctly pessimistic.
	CacheNotes(ctx context.Context, notes []Note, archived bool) bool

	// CachedNotes returns the stored notes for (userID, archived), most
	// recently updated first. Empty on any failure.
	CachedNotes(ctx context.Context, userID string, archived bool) []Note

	// UpdateNote upserts a single note by id.
	UpdateNote(ctx context.Context, n Note) bool

	// DeleteNote removes a single note by id.
	DeleteNote(ctx context.Context, id string) bool

	// LastSync returns the partition's last full-population time, or the
	// zero time if never populated.
	LastSync(ctx context.Context, archived bool) time.Time

	// Stale reports whether the partition's last sync is older than the
	// staleness window.
	Stale(ctx context.Context, archived bool) bool

	// Clear wipes all notes and sync metadata (logout/account switch).
	Clear(ctx context.Context) bool
}

// Feed delivers realtime note changes from an external source.
type Feed interface {
	// Watch emits change events until ctx is cancelled.
	Watch(ctx context.Context) (<-chan ChangeEvent, error)
}
