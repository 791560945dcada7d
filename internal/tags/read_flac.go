package tags

import (
	"strings"

	goflac "github.com/go-flac/go-flac"
)

// readFLACDate reads the release date from a file's Vorbis comment block.
// Vorbis comments carry full dates in DATE where ID3 would only have a year.
// Returns empty string when no date is tagged.
func readFLACDate(path string) string {
	f, err := goflac.ParseFile(path)
	if err != nil {
		return ""
	}

	for _, meta := range f.Meta {
		if meta.Type != goflac.VorbisComment {
			continue
		}
		comments := parseVorbisComments(meta.Data)
		if date := comments["DATE"]; date != "" {
			return date
		}
		return comments["YEAR"]
	}
	return ""
}

// parseVorbisComments parses raw Vorbis comment data into a map.
func parseVorbisComments(data []byte) map[string]string {
	comments := make(map[string]string)

	if len(data) < 4 {
		return comments
	}

	// Skip vendor string
	vendorLen := int(data[0]) | int(data[1])<<8 | int(data[2])<<16 | int(data[3])<<24
	pos := 4 + vendorLen
	if pos+4 > len(data) {
		return comments
	}

	commentCount := int(data[pos]) | int(data[pos+1])<<8 | int(data[pos+2])<<16 | int(data[pos+3])<<24
	pos += 4

	for i := 0; i < commentCount && pos+4 <= len(data); i++ {
		commentLen := int(data[pos]) | int(data[pos+1])<<8 | int(data[pos+2])<<16 | int(data[pos+3])<<24
		pos += 4

		if pos+commentLen > len(data) {
			break
		}

		comment := string(data[pos : pos+commentLen])
		pos += commentLen

		if idx := strings.Index(comment, "="); idx > 0 {
			comments[strings.ToUpper(comment[:idx])] = comment[idx+1:]
		}
	}

	return comments
}
