// Package sqlite implements core.NoteCache on a local SQLite database.
//
// The cache is a best-effort mirror of the remote note set: every exported
// method swallows storage errors and returns a safe default, so a broken
// cache degrades to a miss instead of breaking the authoritative path.
// Unexported counterparts return the underlying error for logging.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/aretw0/sift/pkg/core"
)

// StaleAfter is the fixed staleness window for a cache partition. A fixed
// threshold is a deliberate simplicity trade-off: no adaptive TTL, no
// per-note staleness.
const StaleAfter = 5 * time.Minute

const dueDateLayout = "2006-01-02"

// Cache is a SQLite-backed note cache. Construct it once at process start
// and pass the handle to whatever needs cache access; there is no package
// singleton.
type Cache struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
	ttl    time.Duration
}

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the logger used to report swallowed storage errors.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) { c.logger = logger }
}

// WithClock overrides the time source (tests).
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// WithStaleAfter overrides the staleness window.
func WithStaleAfter(d time.Duration) Option {
	return func(c *Cache) { c.ttl = d }
}

// Open opens (or creates) the cache database at path and ensures the
// schema. Use ":memory:" for an ephemeral cache.
func Open(path string, opts ...Option) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	c := &Cache{
		db:  db,
		now: time.Now,
		ttl: StaleAfter,
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.init(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init cache schema: %w", err)
	}
	return c, nil
}

// Close releases the database handle.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

func (c *Cache) init(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, schemaSQL); err != nil {
		return err
	}
	var version int
	err := c.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		version = 0
	} else if err != nil {
		return err
	}
	if version == schemaVersion {
		return nil
	}
	// Cached data is disposable: on a schema change, start fresh instead of
	// migrating.
	for _, stmt := range []string{
		"DELETE FROM notes",
		"DELETE FROM sync_meta",
		"DELETE FROM schema_version",
	} {
		if _, err := c.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	_, err = c.db.ExecContext(ctx, "INSERT INTO schema_version(version) VALUES(?)", schemaVersion)
	return err
}

// CacheNotes bulk-upserts a partition snapshot and stamps the partition's
// sync metadata. On failure the stamp is left untouched, so staleness stays
// correctly pessimistic.
func (c *Cache) CacheNotes(ctx context.Context, notes []core.Note, archived bool) bool {
	if err := c.cacheNotes(ctx, notes, archived); err != nil {
		c.warn("cache notes", err)
		return false
	}
	return true
}

func (c *Cache) cacheNotes(ctx context.Context, notes []core.Note, archived bool) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, n := range notes {
		if err := upsertNote(ctx, tx, n); err != nil {
			return err
		}
	}

	stamp := c.now().Unix()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO sync_meta(partition, stamped_at) VALUES(?, ?)
		 ON CONFLICT(partition) DO UPDATE SET stamped_at = excluded.stamped_at`,
		string(core.PartitionFor(archived)), stamp)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// CachedNotes returns the stored notes for (userID, archived), most
// recently updated first. Empty on any failure.
func (c *Cache) CachedNotes(ctx context.Context, userID string, archived bool) []core.Note {
	notes, err := c.cachedNotes(ctx, userID, archived)
	if err != nil {
		c.warn("read cached notes", err)
		return nil
	}
	return notes
}

func (c *Cache) cachedNotes(ctx context.Context, userID string, archived bool) ([]core.Note, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT id, user_id, title, content, tags, category, type, priority,
		        importance, status, is_task, is_list, is_idea, due_date, url,
		        archived, created_at, updated_at
		   FROM notes
		  WHERE user_id = ? AND archived = ?
		  ORDER BY updated_at DESC`,
		userID, boolToInt(archived))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []core.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// UpdateNote upserts a single note by id (create/update/realtime push).
func (c *Cache) UpdateNote(ctx context.Context, n core.Note) bool {
	if err := upsertNote(ctx, c.db, n); err != nil {
		c.warn("upsert cached note", err)
		return false
	}
	return true
}

// DeleteNote removes a single note by id (delete/realtime delete).
func (c *Cache) DeleteNote(ctx context.Context, id string) bool {
	if _, err := c.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id); err != nil {
		c.warn("delete cached note", err)
		return false
	}
	return true
}

// LastSync returns the partition's last full-population time, or the zero
// time if never populated (or on failure).
func (c *Cache) LastSync(ctx context.Context, archived bool) time.Time {
	var stamp int64
	err := c.db.QueryRowContext(ctx,
		"SELECT stamped_at FROM sync_meta WHERE partition = ?",
		string(core.PartitionFor(archived))).Scan(&stamp)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}
	}
	if err != nil {
		c.warn("read sync stamp", err)
		return time.Time{}
	}
	return time.Unix(stamp, 0)
}

// Stale reports whether the partition was last populated longer than the
// staleness window ago. A never-populated partition is always stale.
func (c *Cache) Stale(ctx context.Context, archived bool) bool {
	last := c.LastSync(ctx, archived)
	return c.now().Sub(last) > c.ttl
}

// Clear wipes all notes and sync metadata.
func (c *Cache) Clear(ctx context.Context) bool {
	for _, stmt := range []string{"DELETE FROM notes", "DELETE FROM sync_meta"} {
		if _, err := c.db.ExecContext(ctx, stmt); err != nil {
			c.warn("clear cache", err)
			return false
		}
	}
	return true
}

func (c *Cache) warn(msg string, err error) {
	if c.logger != nil {
		c.logger.Warn(msg, "error", err)
	}
}

// execer covers both *sql.DB and *sql.Tx for the upsert.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsertNote(ctx context.Context, db execer, n core.Note) error {
	tags, err := json.Marshal(core.NormalizeTags(n.Tags))
	if err != nil {
		return err
	}
	var due any
	if n.DueDate != nil {
		due = n.DueDate.Format(dueDateLayout)
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO notes (id, user_id, title, content, tags, category, type,
		                    priority, importance, status, is_task, is_list,
		                    is_idea, due_date, url, archived, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		    user_id = excluded.user_id,
		    title = excluded.title,
		    content = excluded.content,
		    tags = excluded.tags,
		    category = excluded.category,
		    type = excluded.type,
		    priority = excluded.priority,
		    importance = excluded.importance,
		    status = excluded.status,
		    is_task = excluded.is_task,
		    is_list = excluded.is_list,
		    is_idea = excluded.is_idea,
		    due_date = excluded.due_date,
		    url = excluded.url,
		    archived = excluded.archived,
		    created_at = excluded.created_at,
		    updated_at = excluded.updated_at`,
		n.ID, n.UserID, n.Title, n.Content, string(tags), n.Category, n.Type,
		n.Priority, n.Importance, n.Status, boolToInt(n.IsTask),
		boolToInt(n.IsList), boolToInt(n.IsIdea), due, n.URL,
		boolToInt(n.Archived), n.CreatedAt.Unix(), n.UpdatedAt.Unix())
	return err
}

func scanNote(rows *sql.Rows) (core.Note, error) {
	var (
		n          core.Note
		tags       string
		due        sql.NullString
		isTask     int
		isList     int
		isIdea     int
		archived   int
		createdAt  int64
		updatedAt  int64
	)
	err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &tags,
		&n.Category, &n.Type, &n.Priority, &n.Importance, &n.Status,
		&isTask, &isList, &isIdea, &due, &n.URL, &archived,
		&createdAt, &updatedAt)
	if err != nil {
		return core.Note{}, err
	}
	if err := json.Unmarshal([]byte(tags), &n.Tags); err != nil {
		// Self-heal: a corrupted tag column degrades to "no tags".
		n.Tags = nil
	}
	if due.Valid && due.String != "" {
		t, err := time.Parse(dueDateLayout, due.String)
		if err == nil {
			n.DueDate = &t
		}
	}
	n.IsTask = isTask != 0
	n.IsList = isList != 0
	n.IsIdea = isIdea != 0
	n.Archived = archived != 0
	n.CreatedAt = time.Unix(createdAt, 0)
	n.UpdatedAt = time.Unix(updatedAt, 0)
	return n, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ core.NoteCache = (*Cache)(nil)
