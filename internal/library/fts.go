package library

// EnsureSearchIndex rebuilds the search index only if it's empty.
// Call this on startup to populate the index for existing databases.
func (l *Library) EnsureSearchIndex() error {
	var count int
	err := l.db.QueryRow(`SELECT COUNT(*) FROM search_fts`).Scan(&count)
	if err != nil {
		return err
	}
	if count == 0 {
		return l.RebuildSearchIndex()
	}
	return nil
}

// RebuildSearchIndex rebuilds the full-text search index from the catalog.
// Called after library scans complete.
func (l *Library) RebuildSearchIndex() error {
	if _, err := l.db.Exec(`DELETE FROM search_fts`); err != nil {
		return err
	}

	if err := l.indexArtists(); err != nil {
		return err
	}
	if err := l.indexAlbums(); err != nil {
		return err
	}
	return l.indexTracks()
}

func (l *Library) indexArtists() error {
	_, err := l.db.Exec(`
		INSERT INTO search_fts (search_text, kind, artist_id, album_id, track_id)
		SELECT name, 'artist', id, NULL, NULL
		FROM artists
	`)
	return err
}

func (l *Library) indexAlbums() error {
	_, err := l.db.Exec(`
		INSERT INTO search_fts (search_text, kind, artist_id, album_id, track_id)
		SELECT ar.name || ' ' || al.title, 'album', ar.id, al.id, NULL
		FROM albums al
		JOIN artists ar ON ar.id = al.artist_id
	`)
	return err
}

func (l *Library) indexTracks() error {
	_, err := l.db.Exec(`
		INSERT INTO search_fts (search_text, kind, artist_id, album_id, track_id)
		SELECT
			ar.name || ' ' || al.title || ' ' || t.title ||
				CASE WHEN t.artist != ar.name THEN ' ' || t.artist ELSE '' END,
			'track', ar.id, al.id, t.id
		FROM tracks t
		JOIN albums al ON al.id = t.album_id
		JOIN artists ar ON ar.id = al.artist_id
	`)
	return err
}
