package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/sift/pkg/core"
)

func TestStore_CRUD(t *testing.T) {
	ctx := context.TODO()
	store := NewStore(
		core.Note{ID: "n1", UserID: "u1", Content: "active"},
		core.Note{ID: "n2", UserID: "u1", Content: "archived", Archived: true},
		core.Note{ID: "n3", UserID: "u2", Content: "other user"},
	)

	t.Run("ListNotes Scopes To User And Partition", func(t *testing.T) {
		notes, err := store.ListNotes(ctx, "u1", false)
		if err != nil {
			t.Fatalf("ListNotes failed: %v", err)
		}
		if len(notes) != 1 || notes[0].ID != "n1" {
			t.Errorf("got %+v", notes)
		}

		archived, err := store.ListNotes(ctx, "u1", true)
		if err != nil {
			t.Fatalf("ListNotes failed: %v", err)
		}
		if len(archived) != 1 || archived[0].ID != "n2" {
			t.Errorf("got %+v", archived)
		}
	})

	t.Run("Get Save Delete", func(t *testing.T) {
		n, err := store.GetNote(ctx, "n1")
		if err != nil || n.Content != "active" {
			t.Fatalf("GetNote = %+v, %v", n, err)
		}

		n.Content = "edited"
		if err := store.SaveNote(ctx, n); err != nil {
			t.Fatalf("SaveNote failed: %v", err)
		}
		if got, _ := store.GetNote(ctx, "n1"); got.Content != "edited" {
			t.Errorf("got %+v", got)
		}

		if err := store.DeleteNote(ctx, "n1"); err != nil {
			t.Fatalf("DeleteNote failed: %v", err)
		}
		if _, err := store.GetNote(ctx, "n1"); !errors.Is(err, core.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if err := store.DeleteNote(ctx, "n1"); !errors.Is(err, core.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
