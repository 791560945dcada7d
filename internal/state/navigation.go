package state

import (
	"database/sql"
	"errors"
)

// NavState is a snapshot of the browser location, enough to restore the
// view on startup.
type NavState struct {
	Kind     int
	ArtistID int64
	Artist   string
	AlbumID  int64
	Album    string
}

func getNavigation(db *sql.DB) (*NavState, error) {
	row := db.QueryRow(`
		SELECT kind, artist_id, artist, album_id, album
		FROM nav_state WHERE id = 1
	`)

	var state NavState
	err := row.Scan(&state.Kind, &state.ArtistID, &state.Artist, &state.AlbumID, &state.Album)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved state is valid on first run
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func saveNavigation(db *sql.DB, state NavState) error {
	_, err := db.Exec(`
		INSERT INTO nav_state (id, kind, artist_id, artist, album_id, album)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			kind = excluded.kind,
			artist_id = excluded.artist_id,
			artist = excluded.artist,
			album_id = excluded.album_id,
			album = excluded.album
	`, state.Kind, state.ArtistID, state.Artist, state.AlbumID, state.Album)
	return err
}
