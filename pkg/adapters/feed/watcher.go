// Package feed turns changes to a snapshot file into note change events.
// It stands in for the hosted backend's realtime channel when working
// against a local export: every time the file is rewritten, the watcher
// diffs consecutive snapshots by note id and emits INSERT/UPDATE/DELETE
// events.
package feed

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/sift/pkg/core"
)

// Watcher observes one snapshot file and emits change events. It
// implements core.Feed.
type Watcher struct {
	path   string
	logger *slog.Logger
	settle time.Duration
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) WatcherOption {
	return func(w *Watcher) { w.logger = logger }
}

// WithSettle overrides the debounce window applied to bursts of filesystem
// events (editors typically fire several per save).
func WithSettle(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.settle = d }
}

// NewWatcher creates a Watcher for the snapshot file at path.
func NewWatcher(path string, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		path:   filepath.Clean(path),
		settle: 50 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch emits change events until ctx is cancelled. The parent directory is
// watched rather than the file itself, so atomic replace-by-rename saves
// keep being observed.
func (w *Watcher) Watch(ctx context.Context) (<-chan core.ChangeEvent, error) {
	notes, err := LoadSnapshot(w.path)
	if err != nil {
		return nil, err
	}
	prev := snapshotByID(notes)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}

	out := make(chan core.ChangeEvent, 16)
	go w.run(ctx, fsw, prev, out)
	return out, nil
}

func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher, prev map[string]core.Note, out chan<- core.ChangeEvent) {
	defer close(out)
	defer fsw.Close()

	settle := time.NewTimer(w.settle)
	if !settle.Stop() {
		<-settle.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if pending && !settle.Stop() {
				<-settle.C
			}
			settle.Reset(w.settle)
			pending = true

		case <-settle.C:
			pending = false
			next, err := w.reload()
			if err != nil {
				// Half-written file, keep the previous snapshot and wait
				// for the next event.
				w.warn("reload snapshot", err)
				continue
			}
			for _, change := range diffSnapshots(prev, next) {
				select {
				case out <- change:
				case <-ctx.Done():
					return
				}
			}
			prev = next

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.warn("watch snapshot", err)
		}
	}
}

func (w *Watcher) reload() (map[string]core.Note, error) {
	notes, err := LoadSnapshot(w.path)
	if err != nil {
		return nil, err
	}
	return snapshotByID(notes), nil
}

func (w *Watcher) warn(msg string, err error) {
	if w.logger != nil {
		w.logger.Warn(msg, "error", err)
	}
}

// diffSnapshots compares two snapshots by note id. Notes present only in
// next are inserts, only in prev deletes; notes in both whose UpdatedAt
// moved are updates. Events are ordered by id for determinism.
func diffSnapshots(prev, next map[string]core.Note) []core.ChangeEvent {
	ids := make([]string, 0, len(prev)+len(next))
	for id := range next {
		ids = append(ids, id)
	}
	for id := range prev {
		if _, ok := next[id]; !ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	var changes []core.ChangeEvent
	for _, id := range ids {
		after, inNext := next[id]
		before, inPrev := prev[id]
		switch {
		case inNext && !inPrev:
			n := after
			changes = append(changes, core.ChangeEvent{Type: core.ChangeInsert, Note: &n, ID: id})
		case !inNext && inPrev:
			changes = append(changes, core.ChangeEvent{Type: core.ChangeDelete, ID: id})
		case !after.UpdatedAt.Equal(before.UpdatedAt):
			n := after
			changes = append(changes, core.ChangeEvent{Type: core.ChangeUpdate, Note: &n, ID: id})
		}
	}
	return changes
}

var _ core.Feed = (*Watcher)(nil)
