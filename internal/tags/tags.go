// Package tags reads metadata from music files.
// It handles MP3, FLAC, Opus, Ogg, and M4A formats.
package tags

import (
	"strconv"
	"strings"
	"time"
)

// File extensions supported by the tags package.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtOPUS = ".opus"
	ExtOGG  = ".ogg"
	ExtM4A  = ".m4a"
	ExtMP4  = ".mp4"
)

// Metadata contains the tag fields and stream properties the library stores
// for a track.
type Metadata struct {
	Path        string
	Title       string
	Artist      string
	AlbumArtist string
	Album       string
	Genre       string

	TrackNumber int
	DiscNumber  int

	// Date is the release date as written in the file, either YYYY-MM-DD
	// or just YYYY.
	Date string

	Duration time.Duration
}

// Year derives the year from the Date field.
// Returns 0 if Date is empty or cannot be parsed.
func (m *Metadata) Year() int {
	if m.Date == "" {
		return 0
	}
	year := m.Date
	if len(year) > 4 {
		year = year[:4]
	}
	y, _ := strconv.Atoi(year)
	return y
}

// IsMusicFile returns true if the path has a supported music file extension.
func IsMusicFile(path string) bool {
	ext := strings.ToLower(path)
	if idx := strings.LastIndex(ext, "."); idx >= 0 {
		ext = ext[idx:]
	} else {
		return false
	}
	return ext == ExtMP3 || ext == ExtFLAC || ext == ExtOPUS || ext == ExtOGG || ext == ExtM4A || ext == ExtMP4
}

// taglibTags wraps a taglib result map with helper methods.
type taglibTags map[string][]string

// get returns the first value for any of the given keys, or empty string if not found.
func (t taglibTags) get(keys ...string) string {
	for _, key := range keys {
		if values, ok := t[key]; ok && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// getInt returns the first value as an integer, or 0 if not found or invalid.
// Handles "N/M" pair values by parsing the part before the slash.
func (t taglibTags) getInt(key string) int {
	s := t.get(key)
	if s == "" {
		return 0
	}
	if idx := strings.Index(s, "/"); idx > 0 {
		s = s[:idx]
	}
	n, _ := strconv.Atoi(s)
	return n
}
