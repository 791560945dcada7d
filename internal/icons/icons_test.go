package icons

import (
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	defer Init("none")

	sets := map[string]Icons{
		"nerd":    nerdIcons,
		"unicode": unicodeIcons,
		"none":    noneIcons,
		"":        noneIcons, // empty falls back to none
		"invalid": noneIcons,
		"NERD":    noneIcons, // style names are case sensitive
	}
	for style, want := range sets {
		Init(style)
		if current != want {
			t.Errorf("Init(%q) selected the wrong icon set", style)
		}
	}
}

func TestFormatArtist(t *testing.T) {
	defer Init("none")

	want := map[string]string{
		"none":    "Miles Davis",
		"nerd":    " Miles Davis",
		"unicode": "👤 Miles Davis",
	}
	for style, expected := range want {
		t.Run(style, func(t *testing.T) {
			Init(style)
			if got := FormatArtist("Miles Davis"); got != expected {
				t.Errorf("FormatArtist = %q, want %q", got, expected)
			}
		})
	}
}

func TestFormatAlbum(t *testing.T) {
	Init("unicode")
	defer Init("none")

	got := FormatAlbum("Kind of Blue")
	if !strings.HasSuffix(got, "Kind of Blue") {
		t.Errorf("FormatAlbum should end with the album title, got %q", got)
	}
	if got == "Kind of Blue" {
		t.Error("unicode style should prepend an icon")
	}
}

func TestFormatTrack_NoneStyleIsBare(t *testing.T) {
	Init("none")

	if got := FormatTrack("So What"); got != "So What" {
		t.Errorf("FormatTrack with none style = %q, want bare name", got)
	}
}

func TestPlaybackIndicators(t *testing.T) {
	tests := []struct {
		style     string
		wantPlay  string
		wantPause string
	}{
		{"none", ">", "||"},
		{"unicode", "▶", "⏸"},
	}

	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			Init(tt.style)
			if got := Play(); got != tt.wantPlay {
				t.Errorf("Play() = %q, want %q", got, tt.wantPlay)
			}
			if got := Pause(); got != tt.wantPause {
				t.Errorf("Pause() = %q, want %q", got, tt.wantPause)
			}
		})
	}

	Init("none")
}

func TestAllStylesHaveIndicators(t *testing.T) {
	for _, style := range []string{"nerd", "unicode", "none"} {
		t.Run(style, func(t *testing.T) {
			Init(style)
			for name, got := range map[string]string{
				"Play":    Play(),
				"Pause":   Pause(),
				"Stop":    Stop(),
				"Shuffle": Shuffle(),
				"Volume":  Volume(),
			} {
				if got == "" {
					t.Errorf("%s() is empty for style %q", name, style)
				}
			}
		})
	}

	Init("none")
}
