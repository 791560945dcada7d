// Package library manages the music library database: tracks discovered on
// disk, the artist and album catalog derived from their tags, the full-text
// search index, and the listen history.
package library

import (
	"database/sql"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/test99500/musium/internal/db"
)

const (
	appName    = "musium"
	dbFileName = "library.db"
)

// Artist is a row of the artist catalog.
type Artist struct {
	ID       int64
	Name     string
	SortName string
}

// Album is a row of the album catalog.
type Album struct {
	ID        int64
	ArtistID  int64
	Artist    string
	Title     string
	Date      string // YYYY-MM-DD or YYYY, empty when untagged
	CoverPath string // path of a track whose file or folder holds the cover art
}

// Track is a playable file in the library.
type Track struct {
	ID          int64
	AlbumID     int64
	Path        string
	Mtime       int64
	Title       string
	Artist      string
	Album       string
	AlbumArtist string
	DiscNumber  int
	TrackNumber int
	Genre       string
	Duration    time.Duration
}

// Stats summarizes the library contents.
type Stats struct {
	Artists       int
	Albums        int
	Tracks        int
	TotalBytes    int64
	TotalDuration time.Duration
}

type Library struct {
	db *sql.DB
}

// Open opens the library database at its default location under the XDG data
// directory, creating it and its schema as needed.
func Open() (*Library, error) {
	path, err := xdg.DataFile(filepath.Join(appName, dbFileName))
	if err != nil {
		return nil, err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	return New(sqldb)
}

// New wraps an already-open database, initializing the schema.
func New(sqldb *sql.DB) (*Library, error) {
	if err := initSchema(sqldb); err != nil {
		sqldb.Close()
		return nil, err
	}
	return &Library{db: sqldb}, nil
}

func (l *Library) Close() error {
	return l.db.Close()
}

// Stats returns catalog counts and the library's total size and runtime.
func (l *Library) Stats() (Stats, error) {
	var s Stats
	var totalMS int64
	row := l.db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM artists),
			(SELECT COUNT(*) FROM albums),
			(SELECT COUNT(*) FROM tracks),
			(SELECT COALESCE(SUM(file_size), 0) FROM tracks),
			(SELECT COALESCE(SUM(duration_ms), 0) FROM tracks)
	`)
	if err := row.Scan(&s.Artists, &s.Albums, &s.Tracks, &s.TotalBytes, &totalMS); err != nil {
		return Stats{}, err
	}
	s.TotalDuration = time.Duration(totalMS) * time.Millisecond
	return s, nil
}
