package state

import (
	"database/sql"
)

const currentSchemaVersion = 2

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS nav_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			kind INTEGER NOT NULL DEFAULT 0,
			artist_id INTEGER NOT NULL DEFAULT 0,
			artist TEXT NOT NULL DEFAULT '',
			album_id INTEGER NOT NULL DEFAULT 0,
			album TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS player_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			volume INTEGER NOT NULL DEFAULT 100,
			shuffle INTEGER NOT NULL DEFAULT 0,
			queue_index INTEGER NOT NULL DEFAULT -1
		);

		CREATE TABLE IF NOT EXISTS queue_tracks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			position INTEGER NOT NULL,
			track_id INTEGER NOT NULL,
			UNIQUE(position)
		);

		CREATE INDEX IF NOT EXISTS idx_queue_tracks_position ON queue_tracks(position);
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

	// Migration: add shuffle column if missing
	_, _ = db.Exec(`ALTER TABLE player_state ADD COLUMN shuffle INTEGER NOT NULL DEFAULT 0`)

	return nil
}
