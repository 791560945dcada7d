// Package overlay composes a popup over an already-rendered screen.
package overlay

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Compose draws overlay on top of base, line by line. Only the visible span
// of each overlay line (leading and trailing blanks excluded) replaces the
// base; styled text is handled ANSI-aware so escape sequences stay intact.
func Compose(base, overlay string, width, _ int) string {
	baseLines := strings.Split(base, "\n")
	for i, line := range strings.Split(overlay, "\n") {
		if i >= len(baseLines) {
			break
		}
		start, end, ok := visibleSpan(line)
		if !ok {
			continue
		}

		bg := baseLines[i]
		if pad := width - ansi.StringWidth(ansi.Strip(bg)); pad > 0 {
			bg += strings.Repeat(" ", pad)
		}

		composed := ansi.Cut(bg, 0, start) + ansi.Cut(line, start, end)
		if end < width {
			composed += ansi.Cut(bg, end, width)
		}
		baseLines[i] = composed
	}
	return strings.Join(baseLines, "\n")
}

// visibleSpan returns the display-column range holding the line's non-blank
// content. ok is false for lines that are blank once styling is stripped.
func visibleSpan(line string) (start, end int, ok bool) {
	plain := ansi.Strip(line)
	if strings.TrimSpace(plain) == "" {
		return 0, 0, false
	}
	for _, r := range plain {
		if r != ' ' {
			break
		}
		start++
	}
	trimmed := strings.TrimRight(plain, " ")
	end = start + ansi.StringWidth(trimmed[start:])
	return start, end, true
}
