// Package thumbs generates and caches album thumbnails on disk. Desktop
// notifications use them as icons.
package thumbs

import (
	"bytes"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/adrg/xdg"
	"github.com/nfnt/resize"

	"github.com/test99500/musium/internal/errmsg"
	"github.com/test99500/musium/internal/tags"
)

const (
	thumbSize    = 140
	numWorkers   = 4
	jpegQuality  = 85
	queueBacklog = 256
)

type job struct {
	albumID   int64
	coverPath string // track file whose tags or folder hold the art
}

// Generator produces thumbnails in the background. Enqueued albums whose
// thumbnail already exists on disk are skipped.
type Generator struct {
	dir  string
	jobs chan job
	wg   sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewGenerator creates the cache directory and starts the worker pool.
func NewGenerator() (*Generator, error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, errmsg.Wrap(errmsg.OpThumbGenerate, err)
	}

	g := &Generator{
		dir:  dir,
		jobs: make(chan job, queueBacklog),
	}
	for range numWorkers {
		g.wg.Go(g.worker)
	}
	return g, nil
}

func cacheDir() (string, error) {
	dir := filepath.Join(xdg.CacheHome, "musium", "thumbs")
	return dir, os.MkdirAll(dir, 0o755)
}

// Path returns the thumbnail file for an album and whether it exists yet.
func (g *Generator) Path(albumID int64) (string, bool) {
	path := filepath.Join(g.dir, strconv.FormatInt(albumID, 10)+".jpg")
	_, err := os.Stat(path)
	return path, err == nil
}

// Enqueue schedules thumbnail generation for an album. Non-blocking: when
// the backlog is full the album is dropped and picked up on a later scan.
func (g *Generator) Enqueue(albumID int64, coverPath string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed || coverPath == "" {
		return
	}
	select {
	case g.jobs <- job{albumID: albumID, coverPath: coverPath}:
	default:
	}
}

// Close stops accepting work and waits for in-flight jobs.
func (g *Generator) Close() {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.closed = true
	close(g.jobs)
	g.mu.Unlock()

	g.wg.Wait()
}

func (g *Generator) worker() {
	for j := range g.jobs {
		path, exists := g.Path(j.albumID)
		if exists {
			continue
		}
		// Best effort: albums without art, or with art we cannot decode,
		// simply have no thumbnail.
		_ = g.generate(path, j.coverPath)
	}
}

func (g *Generator) generate(path, coverPath string) error {
	data, _, err := tags.ExtractCoverArt(coverPath)
	if err != nil || data == nil {
		return errmsg.Wrap(errmsg.OpThumbGenerate, err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return errmsg.Wrap(errmsg.OpThumbGenerate, err)
	}

	thumb := resize.Thumbnail(thumbSize, thumbSize, img, resize.Lanczos3)

	// Write to a temp file first so readers never see a partial thumbnail.
	tmp, err := os.CreateTemp(g.dir, ".tmp-*")
	if err != nil {
		return errmsg.Wrap(errmsg.OpThumbGenerate, err)
	}
	if err := jpeg.Encode(tmp, thumb, &jpeg.Options{Quality: jpegQuality}); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errmsg.Wrap(errmsg.OpThumbGenerate, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errmsg.Wrap(errmsg.OpThumbGenerate, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return errmsg.Wrap(errmsg.OpThumbGenerate, err)
	}
	return nil
}
