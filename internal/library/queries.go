package library

import (
	"database/sql"
	"strings"
	"time"
)

// Artists returns all artists sorted by their sort name.
func (l *Library) Artists() ([]Artist, error) {
	rows, err := l.db.Query(`
		SELECT id, name, sort_name FROM artists ORDER BY sort_name COLLATE NOCASE
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var artists []Artist
	for rows.Next() {
		var a Artist
		if err := rows.Scan(&a.ID, &a.Name, &a.SortName); err != nil {
			return nil, err
		}
		artists = append(artists, a)
	}
	return artists, rows.Err()
}

// ArtistByName returns an artist by exact name, or sql.ErrNoRows.
func (l *Library) ArtistByName(name string) (*Artist, error) {
	var a Artist
	err := l.db.QueryRow(`
		SELECT id, name, sort_name FROM artists WHERE name = ?
	`, name).Scan(&a.ID, &a.Name, &a.SortName)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// AlbumsByArtist returns an artist's albums in release order, undated last.
func (l *Library) AlbumsByArtist(artistID int64) ([]Album, error) {
	rows, err := l.db.Query(`
		SELECT al.id, al.artist_id, ar.name, al.title, al.date, al.cover_path
		FROM albums al
		JOIN artists ar ON ar.id = al.artist_id
		WHERE al.artist_id = ?
		ORDER BY (al.date = ''), al.date, al.title COLLATE NOCASE
	`, artistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAlbums(rows)
}

// Albums returns all albums sorted by artist then release order.
func (l *Library) Albums() ([]Album, error) {
	rows, err := l.db.Query(`
		SELECT al.id, al.artist_id, ar.name, al.title, al.date, al.cover_path
		FROM albums al
		JOIN artists ar ON ar.id = al.artist_id
		ORDER BY ar.sort_name COLLATE NOCASE, (al.date = ''), al.date, al.title COLLATE NOCASE
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAlbums(rows)
}

// AlbumByID returns an album by its ID.
func (l *Library) AlbumByID(id int64) (*Album, error) {
	var a Album
	err := l.db.QueryRow(`
		SELECT al.id, al.artist_id, ar.name, al.title, al.date, al.cover_path
		FROM albums al
		JOIN artists ar ON ar.id = al.artist_id
		WHERE al.id = ?
	`, id).Scan(&a.ID, &a.ArtistID, &a.Artist, &a.Title, &a.Date, &a.CoverPath)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func scanAlbums(rows *sql.Rows) ([]Album, error) {
	var albums []Album
	for rows.Next() {
		var a Album
		if err := rows.Scan(&a.ID, &a.ArtistID, &a.Artist, &a.Title, &a.Date, &a.CoverPath); err != nil {
			return nil, err
		}
		albums = append(albums, a)
	}
	return albums, rows.Err()
}

const trackColumns = `
	t.id, t.album_id, t.path, t.mtime, t.title, t.artist,
	t.disc_number, t.track_number, t.genre, t.duration_ms,
	al.title, ar.name
`

const trackJoins = `
	FROM tracks t
	JOIN albums al ON al.id = t.album_id
	JOIN artists ar ON ar.id = al.artist_id
`

// TracksByAlbum returns an album's tracks in disc and track order.
func (l *Library) TracksByAlbum(albumID int64) ([]Track, error) {
	rows, err := l.db.Query(`
		SELECT `+trackColumns+trackJoins+`
		WHERE t.album_id = ?
		ORDER BY t.disc_number, t.track_number, t.title COLLATE NOCASE
	`, albumID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []Track
	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, *t)
	}
	return tracks, rows.Err()
}

// TrackByID returns a track by its ID.
func (l *Library) TrackByID(id int64) (*Track, error) {
	row := l.db.QueryRow(`
		SELECT `+trackColumns+trackJoins+`
		WHERE t.id = ?
	`, id)
	return scanTrack(row)
}

// TrackByPath returns a track by its file path.
func (l *Library) TrackByPath(path string) (*Track, error) {
	row := l.db.QueryRow(`
		SELECT `+trackColumns+trackJoins+`
		WHERE t.path = ?
	`, path)
	return scanTrack(row)
}

// TracksByIDs returns tracks for the given IDs, skipping any that no longer
// exist. Order follows the input slice.
func (l *Library) TracksByIDs(ids []int64) ([]Track, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := l.db.Query(`
		SELECT `+trackColumns+trackJoins+`
		WHERE t.id IN (`+placeholders+`)
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[int64]Track, len(ids))
	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			return nil, err
		}
		byID[t.ID] = *t
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tracks := make([]Track, 0, len(ids))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			tracks = append(tracks, t)
		}
	}
	return tracks, nil
}

type rowScanner interface {
	Scan(...any) error
}

func scanTrack(row rowScanner) (*Track, error) {
	var t Track
	var discNum, trackNum sql.NullInt64
	var genre sql.NullString
	var durationMS int64

	err := row.Scan(&t.ID, &t.AlbumID, &t.Path, &t.Mtime, &t.Title, &t.Artist,
		&discNum, &trackNum, &genre, &durationMS, &t.Album, &t.AlbumArtist)
	if err != nil {
		return nil, err
	}
	t.DiscNumber = int(discNum.Int64)
	t.TrackNumber = int(trackNum.Int64)
	t.Genre = genre.String
	t.Duration = time.Duration(durationMS) * time.Millisecond
	return &t, nil
}
