package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/sift/pkg/core"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func openTestCache(t *testing.T, clock *fakeClock) *Cache {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.db")
	cache, err := Open(path, WithClock(clock.Now))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func testNote(id, userID string, archived bool, updated time.Time) core.Note {
	return core.Note{
		ID:        id,
		UserID:    userID,
		Title:     "note " + id,
		Content:   "content of " + id,
		Tags:      []string{"tag-" + id},
		Archived:  archived,
		CreatedAt: updated.Add(-time.Hour),
		UpdatedAt: updated,
	}
}

func TestCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	cache := openTestCache(t, clock)

	due := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	original := testNote("n1", "u1", false, clock.now)
	original.DueDate = &due
	original.Category = "work"
	original.IsTask = true

	if !cache.CacheNotes(ctx, []core.Note{original}, false) {
		t.Fatal("CacheNotes failed")
	}

	notes := cache.CachedNotes(ctx, "u1", false)
	if len(notes) != 1 {
		t.Fatalf("got %d notes, want 1", len(notes))
	}
	got := notes[0]
	if got.Title != original.Title || got.Content != original.Content {
		t.Errorf("text fields lost: %+v", got)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "tag-n1" {
		t.Errorf("tags lost: %v", got.Tags)
	}
	if got.DueDate == nil || !got.DueDate.Equal(due) {
		t.Errorf("due date lost: %v", got.DueDate)
	}
	if !got.IsTask || got.Category != "work" {
		t.Errorf("facets lost: %+v", got)
	}
	if !got.UpdatedAt.Equal(original.UpdatedAt.Truncate(time.Second)) {
		t.Errorf("updated_at = %v, want %v", got.UpdatedAt, original.UpdatedAt)
	}
}

func TestCache_OrderingAndPartitions(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	cache := openTestCache(t, clock)

	base := clock.now
	active := []core.Note{
		testNote("old", "u1", false, base.Add(-2*time.Hour)),
		testNote("new", "u1", false, base),
		testNote("mid", "u1", false, base.Add(-time.Hour)),
		testNote("other-user", "u2", false, base),
	}
	archived := []core.Note{testNote("arch", "u1", true, base)}

	if !cache.CacheNotes(ctx, active, false) || !cache.CacheNotes(ctx, archived, true) {
		t.Fatal("CacheNotes failed")
	}

	t.Run("Most Recently Updated First", func(t *testing.T) {
		notes := cache.CachedNotes(ctx, "u1", false)
		if len(notes) != 3 {
			t.Fatalf("got %d notes, want 3", len(notes))
		}
		want := []string{"new", "mid", "old"}
		for i, n := range notes {
			if n.ID != want[i] {
				t.Errorf("position %d = %s, want %s", i, n.ID, want[i])
			}
		}
	})

	t.Run("Partitions Are Disjoint", func(t *testing.T) {
		archivedNotes := cache.CachedNotes(ctx, "u1", true)
		if len(archivedNotes) != 1 || archivedNotes[0].ID != "arch" {
			t.Errorf("got %+v", archivedNotes)
		}
	})

	t.Run("Scoped To Owner", func(t *testing.T) {
		notes := cache.CachedNotes(ctx, "u2", false)
		if len(notes) != 1 || notes[0].ID != "other-user" {
			t.Errorf("got %+v", notes)
		}
	})
}

func TestCache_Staleness(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	cache := openTestCache(t, clock)

	t.Run("Never Populated Is Stale", func(t *testing.T) {
		if !cache.Stale(ctx, false) {
			t.Error("fresh database must be stale")
		}
		if !cache.LastSync(ctx, false).IsZero() {
			t.Error("expected zero LastSync")
		}
	})

	t.Run("Fresh After CacheNotes", func(t *testing.T) {
		if !cache.CacheNotes(ctx, []core.Note{testNote("n1", "u1", false, clock.now)}, false) {
			t.Fatal("CacheNotes failed")
		}
		if cache.Stale(ctx, false) {
			t.Error("stale immediately after population")
		}
		// The other partition keeps its own stamp.
		if !cache.Stale(ctx, true) {
			t.Error("archived partition must still be stale")
		}
	})

	t.Run("Stale Past The Window", func(t *testing.T) {
		clock.Advance(StaleAfter - time.Second)
		if cache.Stale(ctx, false) {
			t.Error("stale before the window elapsed")
		}
		clock.Advance(2 * time.Second)
		if !cache.Stale(ctx, false) {
			t.Error("fresh after the window elapsed")
		}
	})

	t.Run("Single Note Updates Do Not Stamp", func(t *testing.T) {
		if !cache.UpdateNote(ctx, testNote("n2", "u1", false, clock.now)) {
			t.Fatal("UpdateNote failed")
		}
		if !cache.Stale(ctx, false) {
			t.Error("UpdateNote must not refresh the partition stamp")
		}
	})
}

func TestCache_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	cache := openTestCache(t, clock)

	n := testNote("n1", "u1", false, clock.now)
	if !cache.UpdateNote(ctx, n) {
		t.Fatal("UpdateNote failed")
	}

	// Upsert is last-write-wins by id.
	n.Title = "renamed"
	if !cache.UpdateNote(ctx, n) {
		t.Fatal("second UpdateNote failed")
	}
	notes := cache.CachedNotes(ctx, "u1", false)
	if len(notes) != 1 || notes[0].Title != "renamed" {
		t.Errorf("got %+v", notes)
	}

	if !cache.DeleteNote(ctx, "n1") {
		t.Fatal("DeleteNote failed")
	}
	if remaining := cache.CachedNotes(ctx, "u1", false); len(remaining) != 0 {
		t.Errorf("got %+v after delete", remaining)
	}

	// Deleting a missing id is not a failure.
	if !cache.DeleteNote(ctx, "ghost") {
		t.Error("deleting a missing note must succeed")
	}
}

func TestCache_Clear(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	cache := openTestCache(t, clock)

	cache.CacheNotes(ctx, []core.Note{testNote("n1", "u1", false, clock.now)}, false)
	cache.CacheNotes(ctx, []core.Note{testNote("n2", "u1", true, clock.now)}, true)

	if !cache.Clear(ctx) {
		t.Fatal("Clear failed")
	}
	if len(cache.CachedNotes(ctx, "u1", false)) != 0 || len(cache.CachedNotes(ctx, "u1", true)) != 0 {
		t.Error("notes survived Clear")
	}
	if !cache.Stale(ctx, false) || !cache.Stale(ctx, true) {
		t.Error("sync metadata survived Clear")
	}
}

func TestCache_FailureIsolation(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	cache := openTestCache(t, clock)
	cache.CacheNotes(ctx, []core.Note{testNote("n1", "u1", false, clock.now)}, false)

	// A broken underlying store must degrade to misses, never panic or
	// propagate.
	if err := cache.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if notes := cache.CachedNotes(ctx, "u1", false); notes != nil {
		t.Errorf("got %+v from closed cache, want nil", notes)
	}
	if cache.CacheNotes(ctx, []core.Note{testNote("n2", "u1", false, clock.now)}, false) {
		t.Error("CacheNotes on a closed store must report failure")
	}
	if cache.UpdateNote(ctx, testNote("n3", "u1", false, clock.now)) {
		t.Error("UpdateNote on a closed store must report failure")
	}
	if !cache.Stale(ctx, false) {
		t.Error("staleness must stay pessimistic when the store fails")
	}
}
