package core

import (
	"strings"
	"time"
)

// Presence is a tri-state constraint on an optional field (due date, URL).
type Presence string

const (
	// PresenceAny imposes no constraint. It is the zero value.
	PresenceAny     Presence = ""
	PresenceWith    Presence = "with"
	PresenceWithout Presence = "without"
)

// FilterState is the simple (non-advanced) filter configuration.
// All active criteria are combined conjunctively; within the tags facet a
// note passes if it carries at least one of the selected tags.
type FilterState struct {
	Tags        []string
	Categories  []string
	Types       []string
	Priorities  []string
	Importances []string
	Statuses    []string

	// Tri-state flags: nil means "don't care", otherwise exact match.
	IsTask *bool
	IsList *bool
	IsIdea *bool

	// DueOn matches notes whose due date falls on the same calendar day.
	// Notes without a due date never match.
	DueOn *time.Time

	DueDate Presence
	URL     Presence
}

// FacetOptions holds the distinct values present per facet across a note
// list, in first-occurrence order.
type FacetOptions struct {
	Tags        []string
	Categories  []string
	Types       []string
	Priorities  []string
	Importances []string
	Statuses    []string
}

// ComputeFilterOptions collects the distinct non-empty facet values across
// all notes. Tag sets are flattened. Order is first occurrence; callers must
// not rely on it being significant.
func ComputeFilterOptions(notes []Note) FacetOptions {
	var opts FacetOptions
	tags := newDistinct()
	categories := newDistinct()
	types := newDistinct()
	priorities := newDistinct()
	importances := newDistinct()
	statuses := newDistinct()

	for _, n := range notes {
		for _, tag := range n.Tags {
			tags.add(tag)
		}
		categories.add(n.Category)
		types.add(n.Type)
		priorities.add(n.Priority)
		importances.add(n.Importance)
		statuses.add(n.Status)
	}

	opts.Tags = tags.values
	opts.Categories = categories.values
	opts.Types = types.values
	opts.Priorities = priorities.values
	opts.Importances = importances.values
	opts.Statuses = statuses.values
	return opts
}

// ApplyFilters returns the subset of notes matching the search term and
// every active criterion of the filter state. Facet values are compared
// verbatim against the stored field values, no normalization.
func ApplyFilters(notes []Note, state FilterState, searchTerm string) []Note {
	out := make([]Note, 0, len(notes))
	term := strings.ToLower(strings.TrimSpace(searchTerm))

	for _, n := range notes {
		if !matchesSearch(n, term) {
			continue
		}
		if !matchesAnyTag(n.Tags, state.Tags) {
			continue
		}
		if !memberOf(n.Category, state.Categories) {
			continue
		}
		if !memberOf(n.Type, state.Types) {
			continue
		}
		if !memberOf(n.Priority, state.Priorities) {
			continue
		}
		if !memberOf(n.Importance, state.Importances) {
			continue
		}
		if !memberOf(n.Status, state.Statuses) {
			continue
		}
		if !matchesFlag(n.IsTask, state.IsTask) ||
			!matchesFlag(n.IsList, state.IsList) ||
			!matchesFlag(n.IsIdea, state.IsIdea) {
			continue
		}
		if state.DueOn != nil {
			if n.DueDate == nil || !sameDay(*n.DueDate, *state.DueOn) {
				continue
			}
		}
		if !matchesPresence(n.DueDate != nil, state.DueDate) {
			continue
		}
		if !matchesPresence(n.URL != "", state.URL) {
			continue
		}
		out = append(out, n)
	}
	return out
}

func matchesSearch(n Note, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(n.Title), term) ||
		strings.Contains(strings.ToLower(n.Content), term) ||
		strings.Contains(strings.ToLower(n.URL), term)
}

// matchesAnyTag is OR-within-facet: at least one selected tag must be
// present. A note with no tags never matches a non-empty selection.
func matchesAnyTag(tags, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, want := range selected {
		for _, tag := range tags {
			if tag == want {
				return true
			}
		}
	}
	return false
}

func memberOf(value string, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, s := range selected {
		if value == s {
			return true
		}
	}
	return false
}

func matchesFlag(value bool, want *bool) bool {
	return want == nil || value == *want
}

func matchesPresence(present bool, want Presence) bool {
	switch want {
	case PresenceWith:
		return present
	case PresenceWithout:
		return !present
	default:
		return true
	}
}

// sameDay compares two timestamps as calendar days, ignoring the time
// component.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// distinct accumulates unique non-empty strings in insertion order.
type distinct struct {
	seen   map[string]bool
	values []string
}

func newDistinct() *distinct {
	return &distinct{seen: make(map[string]bool)}
}

func (d *distinct) add(v string) {
	if v == "" || d.seen[v] {
		return
	}
	d.seen[v] = true
	d.values = append(d.values, v)
}
