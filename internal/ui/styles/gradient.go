package styles

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// Gradient renders text with a horizontal color sweep from one color to the
// other. Text is split into grapheme clusters so combining marks and wide
// runes each get a single color.
func Gradient(text string, bold bool, from, to lipgloss.Color) string {
	clusters := graphemes(text)
	if len(clusters) == 0 {
		return ""
	}

	ramp := Ramp(len(clusters), from, to)
	var b strings.Builder
	for i, g := range clusters {
		st := lipgloss.NewStyle().Foreground(ramp[i]).Bold(bold)
		b.WriteString(st.Render(g))
	}
	return b.String()
}

func graphemes(text string) []string {
	var out []string
	for gr := uniseg.NewGraphemes(text); gr.Next(); {
		out = append(out, gr.Str())
	}
	return out
}

// Ramp returns size colors blended between from and to. Blending happens in
// HCL space so the sweep looks perceptually even.
func Ramp(size int, from, to lipgloss.Color) []lipgloss.Color {
	switch {
	case size < 1:
		return nil
	case size == 1:
		return []lipgloss.Color{from}
	}

	c1, _ := colorful.MakeColor(parseHex(from))
	c2, _ := colorful.MakeColor(parseHex(to))

	ramp := make([]lipgloss.Color, size)
	for i := range ramp {
		t := float64(i) / float64(size-1)
		ramp[i] = lipgloss.Color(c1.BlendHcl(c2, t).Hex())
	}
	return ramp
}

// parseHex resolves a "#rrggbb" lipgloss color. ANSI palette indexes have no
// RGB value here, so they fall back to mid gray.
func parseHex(c lipgloss.Color) color.Color {
	if s := string(c); len(s) == 7 && s[0] == '#' {
		if col, err := colorful.Hex(s); err == nil {
			return col
		}
	}
	return color.Gray{Y: 128}
}
