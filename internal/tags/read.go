package tags

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dhowden/tag"
	"go.senan.xyz/taglib"
)

// Read reads metadata from a music file.
// It uses dhowden/tag for the common fields and falls back to TagLib for
// files dhowden/tag cannot parse. Stream duration always comes from TagLib.
func Read(path string) (*Metadata, error) {
	m, err := readTags(path)
	if err != nil {
		return nil, err
	}

	if props, err := taglib.ReadProperties(path); err == nil {
		m.Duration = props.Length
	}

	return m, nil
}

func readTags(path string) (*Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := tag.ReadFrom(f)
	if err != nil {
		// dhowden/tag fails on some UTF-16 ID3 tags, ffmpeg-created M4A
		// files, and the occasional Ogg stream. TagLib handles them all.
		return readWithTaglib(path)
	}

	title := t.Title()
	if title == "" {
		title = filepath.Base(path)
	}

	albumArtist := t.AlbumArtist()
	if albumArtist == "" {
		albumArtist = t.Artist()
	}

	track, _ := t.Track()
	disc, _ := t.Disc()

	m := &Metadata{
		Path:        path,
		Title:       title,
		Artist:      t.Artist(),
		AlbumArtist: albumArtist,
		Album:       t.Album(),
		Genre:       t.Genre(),
		Date:        yearToDate(t.Year()),
		TrackNumber: track,
		DiscNumber:  disc,
	}

	// dhowden/tag only exposes the year. Read the full release date from
	// the format's native tag block when one is present.
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtMP3:
		if date := readMP3Date(path); date != "" {
			m.Date = date
		}
	case ExtFLAC:
		if date := readFLACDate(path); date != "" {
			m.Date = date
		}
	case ExtOPUS, ExtOGG, ExtM4A, ExtMP4:
		if raw, err := taglib.ReadTags(path); err == nil {
			if date := taglibTags(raw).get(taglib.Date, "YEAR"); date != "" {
				m.Date = date
			}
		}
	}

	return m, nil
}

// readWithTaglib reads metadata using TagLib alone.
func readWithTaglib(path string) (*Metadata, error) {
	raw, err := taglib.ReadTags(path)
	if err != nil {
		return nil, err
	}
	tags := taglibTags(raw)

	title := tags.get(taglib.Title)
	if title == "" {
		title = filepath.Base(path)
	}

	artist := tags.get(taglib.Artist)
	albumArtist := tags.get(taglib.AlbumArtist)
	if albumArtist == "" {
		albumArtist = artist
	}

	return &Metadata{
		Path:        path,
		Title:       title,
		Artist:      artist,
		AlbumArtist: albumArtist,
		Album:       tags.get(taglib.Album),
		Genre:       tags.get(taglib.Genre),
		Date:        tags.get(taglib.Date, "YEAR"),
		TrackNumber: tags.getInt(taglib.TrackNumber),
		DiscNumber:  tags.getInt(taglib.DiscNumber),
	}, nil
}

// yearToDate converts a year integer to a date string.
// Returns empty string for year 0.
func yearToDate(year int) string {
	if year == 0 {
		return ""
	}
	return strconv.Itoa(year)
}
