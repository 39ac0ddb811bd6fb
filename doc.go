// Package sift is the Composition Root for the sift library.
//
// It connects the core note engines (Domain Layer) with the infrastructure
// adapters (Persistence Layer) using the Hexagonal Architecture pattern.
//
// Philosophy:
//
// sift is the offline-friendly half of a note-taking client. The
// authoritative note set lives in a hosted backend; sift takes snapshots of
// it, filters, sorts and queries them in memory, and mirrors them into a
// best-effort local SQLite cache so fresh reads can skip the network.
//
// Features:
//
//   - **Hexagonal Architecture**: Core engines are isolated from persistence details.
//   - **Filter Engine**: Facet extraction and a conjunctive filter over tags, facets, flags and dates.
//   - **Sort Engine**: Stable ordering with due-date nulls-last semantics.
//   - **Advanced Queries**: Field/operator/value conditions combined with all/any match modes.
//   - **Local Cache (SQLite)**: Partitioned mirror with a fixed staleness window; failures degrade to misses.
//   - **Change Feed**: fsnotify-backed snapshot diffing that keeps the cache warm.
//
// Usage:
//
//	// Wire a service with functional options
//	svc, err := sift.New(remote,
//		sift.WithCachePath(".sift/cache.db"),
//		sift.WithLogger(logger),
//	)
//
//	// Cache-first listing, then filter and sort
//	notes, err := svc.FilterNotes(ctx, userID, false,
//		sift.FilterState{Tags: []string{"work"}}, "report",
//		sift.SortByDueDate, sift.Ascending)
package sift
