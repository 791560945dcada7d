package library

import (
	"database/sql"
	"time"

	"github.com/test99500/musium/internal/db"
)

// timeFormat is RFC3339 with millisecond precision, always UTC, so listen
// timestamps sort lexicographically.
const timeFormat = "2006-01-02T15:04:05.000Z07:00"

// Listen is one playback of a track. The track metadata is copied at insert
// time, so a listen stays meaningful after the track itself is rescanned away.
type Listen struct {
	ID          int64
	TrackID     int64
	AlbumID     int64
	Title       string
	Artist      string
	Album       string
	AlbumArtist string
	Duration    time.Duration
	TrackNumber int
	DiscNumber  int
	StartedAt   time.Time
	CompletedAt *time.Time
	ScrobbledAt *time.Time
}

// InsertListenStarted records that playback of a track started and returns
// the listen ID, used later to mark completion and scrobbling.
func (l *Library) InsertListenStarted(track *Track, startedAt time.Time) (int64, error) {
	res, err := l.db.Exec(`
		INSERT INTO listens (track_id, album_id, title, artist, album, album_artist,
			duration_ms, track_number, disc_number, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, track.ID, track.AlbumID, track.Title, track.Artist, track.Album, track.AlbumArtist,
		track.Duration.Milliseconds(), db.NullInt64(int64(track.TrackNumber)), db.NullInt64(int64(track.DiscNumber)),
		startedAt.UTC().Format(timeFormat))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// MarkListenCompleted records that the listen played through to the end.
func (l *Library) MarkListenCompleted(listenID int64, completedAt time.Time) error {
	_, err := l.db.Exec(`
		UPDATE listens SET completed_at = ? WHERE id = ?
	`, completedAt.UTC().Format(timeFormat), listenID)
	return err
}

// MarkListenScrobbled records that the listen was submitted to Last.fm.
func (l *Library) MarkListenScrobbled(listenID int64, scrobbledAt time.Time) error {
	_, err := l.db.Exec(`
		UPDATE listens SET scrobbled_at = ? WHERE id = ?
	`, scrobbledAt.UTC().Format(timeFormat), listenID)
	return err
}

// UnscrobbledListens returns completed listens not yet scrobbled, oldest
// first, so a scrobble backlog drains in play order.
func (l *Library) UnscrobbledListens(limit int) ([]Listen, error) {
	rows, err := l.db.Query(`
		SELECT `+listenColumns+`
		FROM listens
		WHERE completed_at IS NOT NULL AND scrobbled_at IS NULL
		ORDER BY started_at
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanListens(rows)
}

// RecentListens returns the most recently started listens, newest first.
func (l *Library) RecentListens(limit int) ([]Listen, error) {
	rows, err := l.db.Query(`
		SELECT `+listenColumns+`
		FROM listens
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanListens(rows)
}

// ListenCounts returns completed listen counts per track ID.
func (l *Library) ListenCounts() (map[int64]int, error) {
	rows, err := l.db.Query(`
		SELECT track_id, COUNT(*)
		FROM listens
		WHERE completed_at IS NOT NULL
		GROUP BY track_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var trackID int64
		var n int
		if err := rows.Scan(&trackID, &n); err != nil {
			return nil, err
		}
		counts[trackID] = n
	}
	return counts, rows.Err()
}

const listenColumns = `
	id, track_id, album_id, title, artist, album, album_artist,
	duration_ms, track_number, disc_number, started_at, completed_at, scrobbled_at
`

func scanListens(rows *sql.Rows) ([]Listen, error) {
	var listens []Listen
	for rows.Next() {
		var ln Listen
		var trackNum, discNum sql.NullInt64
		var durationMS int64
		var started string
		var completed, scrobbled sql.NullString

		err := rows.Scan(&ln.ID, &ln.TrackID, &ln.AlbumID, &ln.Title, &ln.Artist,
			&ln.Album, &ln.AlbumArtist, &durationMS, &trackNum, &discNum,
			&started, &completed, &scrobbled)
		if err != nil {
			return nil, err
		}

		ln.TrackNumber = int(trackNum.Int64)
		ln.DiscNumber = int(discNum.Int64)
		ln.Duration = time.Duration(durationMS) * time.Millisecond
		if ln.StartedAt, err = time.Parse(timeFormat, started); err != nil {
			return nil, err
		}
		if ln.CompletedAt, err = parseNullTime(completed); err != nil {
			return nil, err
		}
		if ln.ScrobbledAt, err = parseNullTime(scrobbled); err != nil {
			return nil, err
		}
		listens = append(listens, ln)
	}
	return listens, rows.Err()
}

func parseNullTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := time.Parse(timeFormat, s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
