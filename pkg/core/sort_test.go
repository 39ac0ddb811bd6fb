package core

import (
	"reflect"
	"testing"
	"time"
)

func TestSortNotes(t *testing.T) {
	t.Run("Title Lexicographic Case Folded", func(t *testing.T) {
		notes := []Note{
			{ID: "1", Title: "banana"},
			{ID: "2", Title: "Apple"},
			{ID: "3", Title: "cherry"},
		}
		SortNotes(notes, SortByTitle, Ascending)
		if got := ids(notes); !reflect.DeepEqual(got, []string{"2", "1", "3"}) {
			t.Errorf("asc got %v", got)
		}
		SortNotes(notes, SortByTitle, Descending)
		if got := ids(notes); !reflect.DeepEqual(got, []string{"3", "1", "2"}) {
			t.Errorf("desc got %v", got)
		}
	})

	t.Run("Due Date Nulls Last Both Directions", func(t *testing.T) {
		notes := []Note{
			{ID: "none-a"},
			{ID: "late", DueDate: dayPtr("2024-03-01")},
			{ID: "none-b"},
			{ID: "early", DueDate: dayPtr("2024-01-10")},
		}

		asc := append([]Note(nil), notes...)
		SortNotes(asc, SortByDueDate, Ascending)
		if got := ids(asc); !reflect.DeepEqual(got, []string{"early", "late", "none-a", "none-b"}) {
			t.Errorf("asc got %v", got)
		}

		desc := append([]Note(nil), notes...)
		SortNotes(desc, SortByDueDate, Descending)
		if got := ids(desc); !reflect.DeepEqual(got, []string{"late", "early", "none-a", "none-b"}) {
			t.Errorf("desc got %v", got)
		}
	})

	t.Run("Chronological Fields", func(t *testing.T) {
		base := day("2024-01-01")
		notes := []Note{
			{ID: "new", CreatedAt: base.Add(48 * time.Hour)},
			{ID: "old", CreatedAt: base},
			{ID: "mid", CreatedAt: base.Add(24 * time.Hour)},
		}
		SortNotes(notes, SortByCreatedAt, Ascending)
		if got := ids(notes); !reflect.DeepEqual(got, []string{"old", "mid", "new"}) {
			t.Errorf("created_at asc got %v", got)
		}
		SortNotes(notes, SortByCreatedAt, Descending)
		if got := ids(notes); !reflect.DeepEqual(got, []string{"new", "mid", "old"}) {
			t.Errorf("created_at desc got %v", got)
		}
	})

	t.Run("Stable On Equal Keys", func(t *testing.T) {
		notes := []Note{
			{ID: "first", Status: "open"},
			{ID: "second", Status: "open"},
			{ID: "third", Status: "open"},
		}
		SortNotes(notes, SortByStatus, Ascending)
		if got := ids(notes); !reflect.DeepEqual(got, []string{"first", "second", "third"}) {
			t.Errorf("stability lost: %v", got)
		}
	})
}

func TestParseSortField(t *testing.T) {
	for _, valid := range []string{"title", "status", "due_date", "created_at", "updated_at"} {
		if _, err := ParseSortField(valid); err != nil {
			t.Errorf("ParseSortField(%q) = %v", valid, err)
		}
	}

	// Unknown fields are rejected instead of being treated as dates.
	if _, err := ParseSortField("priority"); err == nil {
		t.Error("expected error for unlisted field")
	}
	if _, err := ParseSortField(""); err == nil {
		t.Error("expected error for empty field")
	}
}

func TestParseSortDirection(t *testing.T) {
	if _, err := ParseSortDirection("asc"); err != nil {
		t.Errorf("asc: %v", err)
	}
	if _, err := ParseSortDirection("desc"); err != nil {
		t.Errorf("desc: %v", err)
	}
	if _, err := ParseSortDirection("sideways"); err == nil {
		t.Error("expected error for unknown direction")
	}
}
