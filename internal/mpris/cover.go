//go:build linux

package mpris

import (
	"os"
	"path/filepath"
)

var (
	coverStems = []string{"cover", "folder", "album", "front"}
	coverExts  = []string{".jpg", ".png", ".jpeg", ".webp"}
)

// FindAlbumArt looks for a sidecar art file next to the track, trying the
// usual stems in priority order. Returns "" when none exists.
func FindAlbumArt(trackPath string) string {
	dir := filepath.Dir(trackPath)
	for _, stem := range coverStems {
		for _, ext := range coverExts {
			path := filepath.Join(dir, stem+ext)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}
