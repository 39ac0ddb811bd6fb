package core

// ChangeType represents the type of change pushed by the realtime feed.
type ChangeType string

const (
	ChangeInsert ChangeType = "INSERT"
	ChangeUpdate ChangeType = "UPDATE"
	ChangeDelete ChangeType = "DELETE"
)

// ChangeEvent represents a single note change pushed from outside.
// Insert and update events carry the full new note; delete events carry at
// least the id of the removed note.
type ChangeEvent struct {
	Type ChangeType
	Note *Note  // full note for INSERT/UPDATE, nil for DELETE
	ID   string // id of the affected note, always set for DELETE
}
