package library

import (
	"context"
	"strings"
	"unicode/utf8"
)

// Result limits per group. Tracks are the most numerous and the most likely
// target, so they get the largest share.
const (
	maxArtistResults = 20
	maxAlbumResults  = 40
	maxTrackResults  = 60
)

// Trigram queries shorter than three characters never match.
const minTrigramQueryLen = 3

// SearchArtist is an artist matched by a search, with its album IDs in
// release order.
type SearchArtist struct {
	ID     int64
	Name   string
	Albums []int64
}

// SearchAlbum is an album matched by a search.
type SearchAlbum struct {
	ID     int64
	Title  string
	Artist string
	Date   string // YYYY-MM-DD or YYYY, may be empty
}

// SearchTrack is a track matched by a search.
type SearchTrack struct {
	ID      int64
	Title   string
	Artist  string
	AlbumID int64
	Album   string
}

// SearchResult groups search matches by kind.
type SearchResult struct {
	Artists []SearchArtist
	Albums  []SearchAlbum
	Tracks  []SearchTrack
}

// Empty reports whether the result contains no matches of any kind.
func (r *SearchResult) Empty() bool {
	return len(r.Artists) == 0 && len(r.Albums) == 0 && len(r.Tracks) == 0
}

// Search finds artists, albums and tracks matching the query.
// It uses the FTS5 trigram index, falling back to LIKE matching for queries
// too short to form a trigram or that FTS5 rejects.
func (l *Library) Search(ctx context.Context, query string) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return &SearchResult{}, nil
	}

	escaped := escapeFTSQuery(query)
	if escaped == "" {
		return l.searchLike(ctx, query)
	}

	res, err := l.searchFTS(ctx, escaped)
	if err != nil {
		return l.searchLike(ctx, query)
	}
	return res, nil
}

func (l *Library) searchFTS(ctx context.Context, escaped string) (*SearchResult, error) {
	res := &SearchResult{}

	rows, err := l.db.QueryContext(ctx, `
		SELECT s.artist_id, a.name
		FROM search_fts s
		JOIN artists a ON a.id = s.artist_id
		WHERE s.kind = 'artist' AND s.search_text MATCH ?
		ORDER BY rank
		LIMIT ?
	`, escaped, maxArtistResults)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var a SearchArtist
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, err
		}
		res.Artists = append(res.Artists, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = l.db.QueryContext(ctx, `
		SELECT s.album_id, al.title, ar.name, al.date
		FROM search_fts s
		JOIN albums al ON al.id = s.album_id
		JOIN artists ar ON ar.id = al.artist_id
		WHERE s.kind = 'album' AND s.search_text MATCH ?
		ORDER BY rank
		LIMIT ?
	`, escaped, maxAlbumResults)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var a SearchAlbum
		if err := rows.Scan(&a.ID, &a.Title, &a.Artist, &a.Date); err != nil {
			return nil, err
		}
		res.Albums = append(res.Albums, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = l.db.QueryContext(ctx, `
		SELECT s.track_id, t.title, t.artist, t.album_id, al.title
		FROM search_fts s
		JOIN tracks t ON t.id = s.track_id
		JOIN albums al ON al.id = t.album_id
		WHERE s.kind = 'track' AND s.search_text MATCH ?
		ORDER BY rank
		LIMIT ?
	`, escaped, maxTrackResults)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var t SearchTrack
		if err := rows.Scan(&t.ID, &t.Title, &t.Artist, &t.AlbumID, &t.Album); err != nil {
			return nil, err
		}
		res.Tracks = append(res.Tracks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return res, l.fillArtistAlbums(ctx, res)
}

// searchLike matches by substring against the catalog tables directly.
func (l *Library) searchLike(ctx context.Context, query string) (*SearchResult, error) {
	pattern := "%" + escapeLikePattern(query) + "%"
	res := &SearchResult{}

	rows, err := l.db.QueryContext(ctx, `
		SELECT id, name FROM artists
		WHERE name LIKE ? ESCAPE '\' COLLATE NOCASE
		ORDER BY sort_name COLLATE NOCASE
		LIMIT ?
	`, pattern, maxArtistResults)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var a SearchArtist
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, err
		}
		res.Artists = append(res.Artists, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = l.db.QueryContext(ctx, `
		SELECT al.id, al.title, ar.name, al.date
		FROM albums al
		JOIN artists ar ON ar.id = al.artist_id
		WHERE al.title LIKE ? ESCAPE '\' COLLATE NOCASE
		ORDER BY al.title COLLATE NOCASE
		LIMIT ?
	`, pattern, maxAlbumResults)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var a SearchAlbum
		if err := rows.Scan(&a.ID, &a.Title, &a.Artist, &a.Date); err != nil {
			return nil, err
		}
		res.Albums = append(res.Albums, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = l.db.QueryContext(ctx, `
		SELECT t.id, t.title, t.artist, t.album_id, al.title
		FROM tracks t
		JOIN albums al ON al.id = t.album_id
		WHERE (t.title LIKE ? ESCAPE '\' OR t.artist LIKE ? ESCAPE '\') COLLATE NOCASE
		ORDER BY t.title COLLATE NOCASE
		LIMIT ?
	`, pattern, pattern, maxTrackResults)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var t SearchTrack
		if err := rows.Scan(&t.ID, &t.Title, &t.Artist, &t.AlbumID, &t.Album); err != nil {
			return nil, err
		}
		res.Tracks = append(res.Tracks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return res, l.fillArtistAlbums(ctx, res)
}

// fillArtistAlbums loads album IDs for each matched artist, release order.
func (l *Library) fillArtistAlbums(ctx context.Context, res *SearchResult) error {
	for i := range res.Artists {
		rows, err := l.db.QueryContext(ctx, `
			SELECT id FROM albums
			WHERE artist_id = ?
			ORDER BY (date = ''), date, title COLLATE NOCASE
		`, res.Artists[i].ID)
		if err != nil {
			return err
		}
		for rows.Next() {
			var id int64
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return err
			}
			res.Artists[i].Albums = append(res.Artists[i].Albums, id)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return err
		}
		rows.Close()
	}
	return nil
}

// escapeFTSQuery escapes a query string for FTS5 trigram search.
// Each word is wrapped in quotes for substring matching, with implicit AND
// between words. Words too short to form a trigram would match nothing, so
// they are dropped; returns empty string if no word survives.
func escapeFTSQuery(query string) string {
	words := strings.Fields(query)
	quoted := make([]string, 0, len(words))
	for _, word := range words {
		if utf8.RuneCountInString(word) < minTrigramQueryLen {
			continue
		}
		escaped := strings.ReplaceAll(word, `"`, `""`)
		quoted = append(quoted, `"`+escaped+`"`)
	}
	return strings.Join(quoted, " ")
}

// escapeLikePattern escapes LIKE wildcards in a query string.
func escapeLikePattern(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
