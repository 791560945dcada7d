package library

import (
	"database/sql"
)

const currentSchemaVersion = 4

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS artists (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			sort_name TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS albums (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			artist_id INTEGER NOT NULL REFERENCES artists(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			date TEXT NOT NULL DEFAULT '',
			cover_path TEXT NOT NULL DEFAULT '',
			UNIQUE(artist_id, title)
		);

		CREATE INDEX IF NOT EXISTS idx_albums_artist ON albums(artist_id);

		CREATE TABLE IF NOT EXISTS tracks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			album_id INTEGER NOT NULL REFERENCES albums(id) ON DELETE CASCADE,
			path TEXT NOT NULL UNIQUE,
			mtime INTEGER NOT NULL,
			title TEXT NOT NULL,
			artist TEXT NOT NULL,
			disc_number INTEGER,
			track_number INTEGER,
			genre TEXT,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			file_size INTEGER NOT NULL DEFAULT 0,
			added_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_tracks_album ON tracks(album_id);
		CREATE INDEX IF NOT EXISTS idx_tracks_added_at ON tracks(added_at);

		-- Listens carry a denormalized copy of the track metadata so the
		-- history survives rescans that remove the track rows.
		CREATE TABLE IF NOT EXISTS listens (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			track_id INTEGER NOT NULL,
			album_id INTEGER NOT NULL,
			title TEXT NOT NULL,
			artist TEXT NOT NULL,
			album TEXT NOT NULL,
			album_artist TEXT NOT NULL DEFAULT '',
			duration_ms INTEGER NOT NULL DEFAULT 0,
			track_number INTEGER,
			disc_number INTEGER,
			started_at TEXT NOT NULL,
			completed_at TEXT,
			scrobbled_at TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_listens_track ON listens(track_id);
		CREATE INDEX IF NOT EXISTS idx_listens_started ON listens(started_at DESC);

		CREATE VIRTUAL TABLE IF NOT EXISTS search_fts USING fts5(
			search_text,
			kind UNINDEXED,
			artist_id UNINDEXED,
			album_id UNINDEXED,
			track_id UNINDEXED,
			tokenize='trigram'
		);
	`)
	if err != nil {
		return err
	}

	// Set initial version if not exists
	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	if err != nil {
		return err
	}

	// Additive migrations; "duplicate column" errors mean already applied.
	_, _ = db.Exec(`ALTER TABLE tracks ADD COLUMN duration_ms INTEGER NOT NULL DEFAULT 0`)
	_, _ = db.Exec(`ALTER TABLE tracks ADD COLUMN file_size INTEGER NOT NULL DEFAULT 0`)
	_, _ = db.Exec(`ALTER TABLE listens ADD COLUMN scrobbled_at TEXT`)

	return nil
}
