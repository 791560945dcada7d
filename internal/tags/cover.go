package tags

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// Cover art filenames to look for in album folders, in preference order.
var coverArtFilenames = []string{
	"cover.jpg", "cover.jpeg", "cover.png",
	"folder.jpg", "folder.jpeg", "folder.png",
	"album.jpg", "album.jpeg", "album.png",
	"front.jpg", "front.jpeg", "front.png",
}

// ExtractCoverArt reads cover art for an audio file.
// Embedded art wins; otherwise common image files in the track's directory
// are tried. Returns nil data if no art is found.
func ExtractCoverArt(path string) (data []byte, mimeType string, err error) {
	data, mimeType, err = embeddedArt(path)
	if err != nil {
		return nil, "", err
	}
	if data != nil {
		return data, mimeType, nil
	}
	return folderArt(filepath.Dir(path))
}

func embeddedArt(path string) (data []byte, mimeType string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, "", err
	}

	pic := m.Picture()
	if pic == nil {
		return nil, "", nil
	}
	return pic.Data, pic.MIMEType, nil
}

func folderArt(dir string) (data []byte, mimeType string, err error) {
	for _, name := range coverArtFilenames {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}

		switch strings.ToLower(filepath.Ext(name)) {
		case ".jpg", ".jpeg":
			mimeType = "image/jpeg"
		case ".png":
			mimeType = "image/png"
		}
		return data, mimeType, nil
	}
	return nil, "", nil
}
