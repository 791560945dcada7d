package tags

import (
	"github.com/bogem/id3v2/v2"
)

// readMP3Date reads the release date from a file's ID3v2 tag.
// It tries the ID3v2.4 TDRC frame first, then reconstructs a date from the
// ID3v2.3 TYER and TDAT frames. Returns empty string when no date is tagged.
func readMP3Date(path string) string {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return ""
	}
	defer id3tag.Close()

	if date := getID3TextFrame(id3tag, "TDRC"); date != "" {
		return date
	}

	year := getID3TextFrame(id3tag, "TYER")
	if year == "" {
		return ""
	}
	tdat := getID3TextFrame(id3tag, "TDAT")
	if len(tdat) == 4 {
		// TDAT is DDMM
		return year + "-" + tdat[2:4] + "-" + tdat[0:2]
	}
	return year
}

// getID3TextFrame returns the text of a frame, or empty string if absent.
func getID3TextFrame(t *id3v2.Tag, id string) string {
	frames := t.GetFrames(id)
	if len(frames) == 0 {
		return ""
	}
	if tf, ok := frames[0].(id3v2.TextFrame); ok {
		return tf.Text
	}
	return ""
}
