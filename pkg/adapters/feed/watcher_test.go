package feed

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/sift/pkg/core"
)

func note(id string, updated time.Time) core.Note {
	return core.Note{
		ID:        id,
		UserID:    "u1",
		Content:   "content of " + id,
		UpdatedAt: updated,
	}
}

func TestDiffSnapshots(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	prev := snapshotByID([]core.Note{
		note("kept", base),
		note("changed", base),
		note("removed", base),
	})
	changed := note("changed", base.Add(time.Minute))
	next := snapshotByID([]core.Note{
		note("kept", base),
		changed,
		note("added", base),
	})

	changes := diffSnapshots(prev, next)
	if len(changes) != 3 {
		t.Fatalf("got %d changes: %+v", len(changes), changes)
	}

	// Ordered by id: added, changed, removed.
	if changes[0].Type != core.ChangeInsert || changes[0].ID != "added" || changes[0].Note == nil {
		t.Errorf("change 0 = %+v", changes[0])
	}
	if changes[1].Type != core.ChangeUpdate || changes[1].ID != "changed" {
		t.Errorf("change 1 = %+v", changes[1])
	}
	if changes[1].Note == nil || !changes[1].Note.UpdatedAt.Equal(changed.UpdatedAt) {
		t.Errorf("update payload = %+v", changes[1].Note)
	}
	if changes[2].Type != core.ChangeDelete || changes[2].ID != "removed" || changes[2].Note != nil {
		t.Errorf("change 2 = %+v", changes[2])
	}
}

func TestDiffSnapshots_NoChanges(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	snap := snapshotByID([]core.Note{note("a", base), note("b", base)})
	if changes := diffSnapshots(snap, snap); len(changes) != 0 {
		t.Errorf("got %+v, want none", changes)
	}
}

func TestLoadSnapshot(t *testing.T) {
	t.Run("YAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.yaml")
		content := `
- id: n1
  user_id: u1
  content: hello
  tags: [work, home]
- id: n2
  user_id: u1
  content: world
  archived: true
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		notes, err := LoadSnapshot(path)
		if err != nil {
			t.Fatalf("LoadSnapshot failed: %v", err)
		}
		if len(notes) != 2 {
			t.Fatalf("got %d notes", len(notes))
		}
		if notes[0].ID != "n1" || len(notes[0].Tags) != 2 {
			t.Errorf("got %+v", notes[0])
		}
		if !notes[1].Archived {
			t.Error("archived flag lost")
		}
	})

	t.Run("JSON Is A YAML Subset", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.json")
		content := `[{"id": "n1", "user_id": "u1", "content": "hello"}]`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		notes, err := LoadSnapshot(path)
		if err != nil {
			t.Fatalf("LoadSnapshot failed: %v", err)
		}
		if len(notes) != 1 || notes[0].ID != "n1" {
			t.Errorf("got %+v", notes)
		}
	})

	t.Run("Missing File", func(t *testing.T) {
		if _, err := LoadSnapshot(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
			t.Error("expected error")
		}
	})
}

func TestWatcher_EmitsChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.yaml")
	if err := os.WriteFile(path, []byte("- id: n1\n  user_id: u1\n  content: hello\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	w := NewWatcher(path, WithSettle(20*time.Millisecond))
	events, err := w.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	// Wait a bit to ensure watcher is ready (naive)
	time.Sleep(100 * time.Millisecond)

	next := "- id: n1\n  user_id: u1\n  content: hello\n- id: n2\n  user_id: u1\n  content: brand new\n"
	if err := os.WriteFile(path, []byte(next), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-events:
		if ev.Type != core.ChangeInsert || ev.ID != "n2" {
			t.Errorf("got %+v, want insert of n2", ev)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for change event")
	}

	cancel()
	// The channel closes once the context is cancelled.
	for range events {
	}
}
