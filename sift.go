package sift

import (
	"log/slog"
	"time"

	"github.com/aretw0/sift/internal/platform"
	"github.com/aretw0/sift/pkg/core"
)

// --- Types ---

// Note is a public alias for the domain entity.
type Note = core.Note

// FilterState is a public alias for the simple filter configuration.
type FilterState = core.FilterState

// FacetOptions is a public alias for the facet value sets.
type FacetOptions = core.FacetOptions

// Search, Condition and ValidationResult are public aliases for the
// advanced-query types.
type (
	Search           = core.Search
	Condition        = core.Condition
	ValidationResult = core.ValidationResult
)

// ChangeEvent is a public alias for realtime change events.
type ChangeEvent = core.ChangeEvent

// Service is a public alias for the domain service.
type Service = core.Service

// Sort and match enumerations.
const (
	SortByTitle     = core.SortByTitle
	SortByStatus    = core.SortByStatus
	SortByDueDate   = core.SortByDueDate
	SortByCreatedAt = core.SortByCreatedAt
	SortByUpdatedAt = core.SortByUpdatedAt

	Ascending  = core.Ascending
	Descending = core.Descending

	MatchAll = core.MatchAll
	MatchAny = core.MatchAny
)

// --- Configuration ---

// Option defines a functional option for configuring sift.
type Option = platform.Option

// WithLogger sets the logger for the service and the cache.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithCache injects a custom cache implementation.
func WithCache(cache core.NoteCache) Option {
	return platform.WithCache(cache)
}

// WithCachePath enables the SQLite cache at the given path.
func WithCachePath(path string) Option {
	return platform.WithCachePath(path)
}

// WithStaleAfter overrides the cache staleness window.
func WithStaleAfter(d time.Duration) Option {
	return platform.WithStaleAfter(d)
}

// --- Factory ---

// New creates a new sift Service over a snapshot source.
func New(snapshots core.Snapshots, opts ...Option) (*core.Service, error) {
	return platform.New(snapshots, opts...)
}

// --- Pure engines ---

// ComputeFilterOptions derives the distinct facet values of a note list.
func ComputeFilterOptions(notes []Note) FacetOptions {
	return core.ComputeFilterOptions(notes)
}

// ApplyFilters runs the simple conjunctive filter over a note list.
func ApplyFilters(notes []Note, state FilterState, searchTerm string) []Note {
	return core.ApplyFilters(notes, state, searchTerm)
}

// SortNotes stable-sorts a note list in place.
func SortNotes(notes []Note, field core.SortField, dir core.SortDirection) {
	core.SortNotes(notes, field, dir)
}

// ExecuteAdvancedSearch runs an advanced search over a note list.
func ExecuteAdvancedSearch(notes []Note, s Search) []Note {
	return core.ExecuteAdvancedSearch(notes, s)
}

// ValidateSearch checks an advanced-search condition list.
func ValidateSearch(queries []Condition) ValidationResult {
	return core.ValidateSearch(queries)
}
