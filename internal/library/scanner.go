package library

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/test99500/musium/internal/db"
	"github.com/test99500/musium/internal/tags"
)

const (
	numWorkers     = 8
	writeBatchSize = 64
)

// ScanProgress reports the progress of a library scan.
type ScanProgress struct {
	Phase       string // "scanning", "processing", "cleaning", "indexing", "done"
	Current     int
	Total       int
	CurrentFile string
	Stats       *ScanStats // Only populated when Phase == "done"
}

// ScanStats holds statistics for a completed scan.
type ScanStats struct {
	Added   int
	Updated int
	Removed int
}

// fileInfo holds information about a discovered music file.
type fileInfo struct {
	path  string
	mtime int64
	size  int64
}

// trackResult holds the result of reading a music file's metadata.
type trackResult struct {
	mtime int64
	size  int64
	meta  *tags.Metadata
	isNew bool
}

// Refresh performs an incremental scan of the given root directories.
// Files whose modification time is unchanged are skipped. Tracks whose files
// are gone are removed, and the search index is rebuilt at the end.
// Progress is reported on the given channel, which is closed when done.
func (l *Library) Refresh(roots []string, progress chan<- ScanProgress) error {
	return l.refresh(roots, progress, false)
}

// FullRefresh rescans all files, ignoring modification times.
// Use this to pick up metadata changes without file modifications.
func (l *Library) FullRefresh(roots []string, progress chan<- ScanProgress) error {
	return l.refresh(roots, progress, true)
}

func (l *Library) refresh(roots []string, progress chan<- ScanProgress, forceRescan bool) error {
	defer close(progress)

	stats := &ScanStats{}

	progress <- ScanProgress{Phase: "scanning"}
	files, discovered := discoverFiles(roots, progress)

	existing, err := l.existingTracks(roots)
	if err != nil {
		return err
	}

	filesToProcess := make([]fileInfo, 0, len(files))
	fileIsNew := make(map[string]bool)
	for _, f := range files {
		if !forceRescan {
			if mtime, ok := existing[f.path]; ok && mtime == f.mtime {
				continue
			}
		}
		_, existed := existing[f.path]
		fileIsNew[f.path] = !existed
		filesToProcess = append(filesToProcess, f)
	}

	if len(filesToProcess) > 0 {
		l.processFiles(filesToProcess, fileIsNew, stats, progress)
	}

	progress <- ScanProgress{Phase: "cleaning"}
	for path := range existing {
		if _, ok := discovered[path]; !ok {
			if err := l.deleteTrackByPath(path); err == nil {
				stats.Removed++
			}
		}
	}
	if err := l.pruneEmpty(); err != nil {
		return err
	}

	progress <- ScanProgress{Phase: "indexing"}
	if err := l.RebuildSearchIndex(); err != nil {
		return err
	}

	progress <- ScanProgress{Phase: "done", Current: len(files), Total: len(files), Stats: stats}
	return nil
}

// discoverFiles walks the root directories and returns all music files found.
// Returns the list of files and a set of their paths for the deletion phase.
func discoverFiles(roots []string, progress chan<- ScanProgress) (files []fileInfo, discovered map[string]struct{}) {
	for _, root := range roots {
		_ = filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
			// Skip walk errors to keep scanning the remaining paths
			if walkErr != nil {
				return nil //nolint:nilerr // intentionally skipping errors
			}
			if d.IsDir() || !tags.IsMusicFile(path) {
				return nil
			}

			info, infoErr := d.Info()
			if infoErr != nil {
				return nil //nolint:nilerr // intentionally skipping errors
			}

			files = append(files, fileInfo{path: path, mtime: info.ModTime().Unix(), size: info.Size()})

			if len(files)%100 == 0 {
				progress <- ScanProgress{Phase: "scanning", Current: len(files)}
			}
			return nil
		})
	}

	discovered = make(map[string]struct{}, len(files))
	for _, f := range files {
		discovered[f.path] = struct{}{}
	}
	return files, discovered
}

// processFiles reads metadata in parallel and updates the database.
func (l *Library) processFiles(
	filesToProcess []fileInfo,
	fileIsNew map[string]bool,
	stats *ScanStats,
	progress chan<- ScanProgress,
) {
	total := len(filesToProcess)
	var processed atomic.Int64

	workCh := make(chan fileInfo, total)
	resultCh := make(chan trackResult, total)

	var wg sync.WaitGroup
	for range numWorkers {
		wg.Go(func() {
			for f := range workCh {
				meta, err := tags.Read(f.path)
				if err != nil {
					processed.Add(1)
					continue
				}

				// Grouping needs an artist and an album
				if meta.Artist == "" || meta.Album == "" {
					processed.Add(1)
					continue
				}

				resultCh <- trackResult{
					mtime: f.mtime,
					size:  f.size,
					meta:  meta,
					isNew: fileIsNew[f.path],
				}
				processed.Add(1)
			}
		})
	}

	go func() {
		for _, f := range filesToProcess {
			workCh <- f
		}
		close(workCh)
	}()

	done := make(chan struct{})
	tickerDone := make(chan struct{})
	go func() {
		defer close(tickerDone)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				progress <- ScanProgress{
					Phase:   "processing",
					Current: int(processed.Load()),
					Total:   total,
				}
			case <-done:
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	// Database writes stay sequential to avoid SQLite contention, batched
	// into one transaction per writeBatchSize rows.
	batch := make([]trackResult, 0, writeBatchSize)
	for result := range resultCh {
		batch = append(batch, result)
		if len(batch) >= writeBatchSize {
			l.writeBatch(batch, stats)
			batch = batch[:0]
		}
	}
	l.writeBatch(batch, stats)

	close(done)
	// Join the ticker goroutine so no progress send can race the channel
	// close in refresh.
	<-tickerDone
	progress <- ScanProgress{Phase: "processing", Current: total, Total: total}
}

// writeBatch upserts a batch of tracks in a single transaction. If the batch
// fails, rows are retried one by one so a single bad file cannot discard its
// neighbors.
func (l *Library) writeBatch(batch []trackResult, stats *ScanStats) {
	if len(batch) == 0 {
		return
	}
	ctx := context.Background()
	err := db.WithTx(ctx, l.db, func(tx *sql.Tx) error {
		for _, r := range batch {
			if err := upsertTrackTx(tx, r.meta, r.mtime, r.size); err != nil {
				return err
			}
		}
		return nil
	})
	if err == nil {
		countBatch(batch, stats)
		return
	}

	for _, r := range batch {
		rowErr := db.WithTx(ctx, l.db, func(tx *sql.Tx) error {
			return upsertTrackTx(tx, r.meta, r.mtime, r.size)
		})
		if rowErr == nil {
			countBatch([]trackResult{r}, stats)
		}
	}
}

func countBatch(batch []trackResult, stats *ScanStats) {
	for _, r := range batch {
		if r.isNew {
			stats.Added++
		} else {
			stats.Updated++
		}
	}
}

// existingTracks returns a map of path to mtime for tracks under the given
// roots. Paths must sit strictly under a root: a root of /music/a must not
// claim /music/ab.
func (l *Library) existingTracks(roots []string) (map[string]int64, error) {
	rows, err := l.db.Query(`SELECT path, mtime FROM tracks`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tracks := make(map[string]int64)
	for rows.Next() {
		var path string
		var mtime int64
		if err := rows.Scan(&path, &mtime); err != nil {
			return nil, err
		}
		for _, root := range roots {
			if strings.HasPrefix(path, root+string(filepath.Separator)) {
				tracks[path] = mtime
				break
			}
		}
	}
	return tracks, rows.Err()
}

// upsertTrack inserts or updates a single track in its own transaction.
func (l *Library) upsertTrack(meta *tags.Metadata, mtime, size int64) error {
	return db.WithTx(context.Background(), l.db, func(tx *sql.Tx) error {
		return upsertTrackTx(tx, meta, mtime, size)
	})
}

// upsertTrackTx inserts or updates a track and its artist and album rows.
// Uses file mtime for added_at on new tracks (preserved across copies).
func upsertTrackTx(tx *sql.Tx, meta *tags.Metadata, mtime, size int64) error {
	artistID, err := ensureArtist(tx, meta.AlbumArtist)
	if err != nil {
		return err
	}
	albumID, err := ensureAlbum(tx, artistID, meta.Album, meta.Date, meta.Path)
	if err != nil {
		return err
	}

	now := time.Now().Unix()
	_, err = tx.Exec(`
		INSERT INTO tracks (album_id, path, mtime, title, artist, disc_number, track_number, genre, duration_ms, file_size, added_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			album_id = excluded.album_id,
			mtime = excluded.mtime,
			title = excluded.title,
			artist = excluded.artist,
			disc_number = excluded.disc_number,
			track_number = excluded.track_number,
			genre = excluded.genre,
			duration_ms = excluded.duration_ms,
			file_size = excluded.file_size,
			updated_at = excluded.updated_at
	`, albumID, meta.Path, mtime, meta.Title, meta.Artist, meta.DiscNumber, meta.TrackNumber,
		meta.Genre, meta.Duration.Milliseconds(), size, mtime, now)
	return err
}

// ensureArtist returns the ID of the artist row, creating it if needed.
func ensureArtist(tx *sql.Tx, name string) (int64, error) {
	_, err := tx.Exec(`
		INSERT OR IGNORE INTO artists (name, sort_name) VALUES (?, ?)
	`, name, sortName(name))
	if err != nil {
		return 0, err
	}

	var id int64
	err = tx.QueryRow(`SELECT id FROM artists WHERE name = ?`, name).Scan(&id)
	return id, err
}

// ensureAlbum returns the ID of the album row, creating it if needed.
// The release date is filled in once a track carries one, and the first
// track's path becomes the cover source.
func ensureAlbum(tx *sql.Tx, artistID int64, title, date, trackPath string) (int64, error) {
	_, err := tx.Exec(`
		INSERT INTO albums (artist_id, title, date, cover_path) VALUES (?, ?, ?, ?)
		ON CONFLICT(artist_id, title) DO UPDATE SET
			date = CASE WHEN excluded.date != '' THEN excluded.date ELSE date END,
			cover_path = CASE WHEN cover_path = '' THEN excluded.cover_path ELSE cover_path END
	`, artistID, title, date, trackPath)
	if err != nil {
		return 0, err
	}

	var id int64
	err = tx.QueryRow(`
		SELECT id FROM albums WHERE artist_id = ? AND title = ?
	`, artistID, title).Scan(&id)
	return id, err
}

// deleteTrackByPath removes a track from the library by its path.
func (l *Library) deleteTrackByPath(path string) error {
	res, err := l.db.Exec(`DELETE FROM tracks WHERE path = ?`, path)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// pruneEmpty removes albums without tracks and artists without albums.
func (l *Library) pruneEmpty() error {
	if _, err := l.db.Exec(`
		DELETE FROM albums WHERE id NOT IN (SELECT DISTINCT album_id FROM tracks)
	`); err != nil {
		return err
	}
	_, err := l.db.Exec(`
		DELETE FROM artists WHERE id NOT IN (SELECT DISTINCT artist_id FROM albums)
	`)
	return err
}

// sortName strips a leading English article for sorting.
func sortName(name string) string {
	lower := strings.ToLower(name)
	for _, article := range []string{"the ", "a ", "an "} {
		if strings.HasPrefix(lower, article) && len(name) > len(article) {
			return name[len(article):]
		}
	}
	return name
}
