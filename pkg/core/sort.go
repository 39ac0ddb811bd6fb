package core

import (
	"fmt"
	"sort"
	"strings"
)

// SortField enumerates the fields notes can be ordered by. The set is
// closed on purpose: an unknown field name is rejected by ParseSortField
// instead of being silently treated as a date.
type SortField string

const (
	SortByTitle     SortField = "title"
	SortByStatus    SortField = "status"
	SortByDueDate   SortField = "due_date"
	SortByCreatedAt SortField = "created_at"
	SortByUpdatedAt SortField = "updated_at"
)

// SortDirection orders ascending or descending.
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// ParseSortField validates a user-supplied sort field name.
func ParseSortField(s string) (SortField, error) {
	switch f := SortField(s); f {
	case SortByTitle, SortByStatus, SortByDueDate, SortByCreatedAt, SortByUpdatedAt:
		return f, nil
	default:
		return "", fmt.Errorf("unknown sort field %q", s)
	}
}

// ParseSortDirection validates a user-supplied sort direction.
func ParseSortDirection(s string) (SortDirection, error) {
	switch d := SortDirection(s); d {
	case Ascending, Descending:
		return d, nil
	default:
		return "", fmt.Errorf("unknown sort direction %q", s)
	}
}

// CompareNotes orders two notes by the given field and direction, returning
// a negative, zero or positive value in the usual comparator convention.
// Notes without a due date always sort after notes that have one, in either
// direction; the direction only flips the comparison between present values.
func CompareNotes(a, b Note, field SortField, dir SortDirection) int {
	var cmp int
	switch field {
	case SortByTitle:
		cmp = compareFolded(a.Title, b.Title)
	case SortByStatus:
		cmp = compareFolded(a.Status, b.Status)
	case SortByDueDate:
		switch {
		case a.DueDate == nil && b.DueDate == nil:
			return 0
		case a.DueDate == nil:
			return 1
		case b.DueDate == nil:
			return -1
		default:
			cmp = a.DueDate.Compare(*b.DueDate)
		}
	case SortByCreatedAt:
		cmp = a.CreatedAt.Compare(b.CreatedAt)
	case SortByUpdatedAt:
		cmp = a.UpdatedAt.Compare(b.UpdatedAt)
	}
	if dir == Descending {
		cmp = -cmp
	}
	return cmp
}

// SortNotes stable-sorts the list in place. Filtering always precedes
// sorting in the pipeline, so equal elements keep their snapshot order.
func SortNotes(notes []Note, field SortField, dir SortDirection) {
	sort.SliceStable(notes, func(i, j int) bool {
		return CompareNotes(notes[i], notes[j], field, dir) < 0
	})
}

func compareFolded(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
