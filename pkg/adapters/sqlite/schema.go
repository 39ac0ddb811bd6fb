package sqlite

const schemaVersion = 1

const schemaSQL = `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS notes (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	title TEXT NOT NULL DEFAULT '',
	content TEXT NOT NULL,
	tags TEXT NOT NULL DEFAULT '[]',
	category TEXT NOT NULL DEFAULT '',
	type TEXT NOT NULL DEFAULT '',
	priority TEXT NOT NULL DEFAULT '',
	importance TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT '',
	is_task INTEGER NOT NULL DEFAULT 0,
	is_list INTEGER NOT NULL DEFAULT 0,
	is_idea INTEGER NOT NULL DEFAULT 0,
	due_date TEXT,
	url TEXT NOT NULL DEFAULT '',
	archived INTEGER NOT NULL DEFAULT 0,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notes_owner ON notes(user_id, archived);

CREATE TABLE IF NOT EXISTS sync_meta (
	partition TEXT PRIMARY KEY,
	stamped_at INTEGER NOT NULL
);
`
