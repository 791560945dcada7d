package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Artist    string
	Album     string
	Track     string
	Queue     string
	Play      string
	Pause     string
	Stop      string
	Shuffle   string
	RepeatAll string
	RepeatOne string
	Volume    string
	Muted     string
}

var (
	nerdIcons = Icons{
		Artist:    " ", // nf-fa-user
		Album:     "󰀥 ", // nf-md-album
		Track:     " ", // nf-fa-music
		Queue:     "󰲸 ", // nf-md-playlist_music
		Play:      "",  // nf-fa-play
		Pause:     "",  // nf-fa-pause
		Stop:      "",  // nf-fa-stop
		Shuffle:   "󰒟",  // nf-md-shuffle
		RepeatAll: "󰑖",  // nf-md-repeat
		RepeatOne: "󰑘",  // nf-md-repeat_once
		Volume:    "󰕾",  // nf-md-volume_high
		Muted:     "󰝟",  // nf-md-volume_mute
	}

	unicodeIcons = Icons{
		Artist:    "👤 ",
		Album:     "💿 ",
		Track:     "🎵 ",
		Queue:     "📋 ",
		Play:      "▶",
		Pause:     "⏸",
		Stop:      "⏹",
		Shuffle:   "🔀",
		RepeatAll: "🔁",
		RepeatOne: "🔂",
		Volume:    "🔊",
		Muted:     "🔇",
	}

	noneIcons = Icons{
		Artist:    "",
		Album:     "",
		Track:     "",
		Queue:     "",
		Play:      ">",
		Pause:     "||",
		Stop:      "#",
		Shuffle:   "[S]",
		RepeatAll: "[R]",
		RepeatOne: "[R1]",
		Volume:    "vol",
		Muted:     "mute",
	}

	// current holds the active icon set
	current = noneIcons
)

// Init initializes the icons based on the style.
// Call this once at startup with the config value.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleUnicode:
		current = unicodeIcons
	case StyleNone:
		current = noneIcons
	default:
		current = noneIcons
	}
}

// FormatArtist formats an artist name with the appropriate icon.
func FormatArtist(name string) string {
	if current == noneIcons {
		return name
	}
	return current.Artist + name
}

// FormatAlbum formats an album name with the appropriate icon.
func FormatAlbum(name string) string {
	if current == noneIcons {
		return name
	}
	return current.Album + name
}

// FormatTrack formats a track title with the appropriate icon.
func FormatTrack(name string) string {
	if current == noneIcons {
		return name
	}
	return current.Track + name
}

// FormatQueue formats the queue label with the appropriate icon.
func FormatQueue(name string) string {
	if current == noneIcons {
		return name
	}
	return current.Queue + name
}

// Play returns the play indicator.
func Play() string {
	return current.Play
}

// Pause returns the pause indicator.
func Pause() string {
	return current.Pause
}

// Stop returns the stop indicator.
func Stop() string {
	return current.Stop
}

// Shuffle returns the shuffle icon.
func Shuffle() string {
	return current.Shuffle
}

// RepeatAll returns the repeat-all icon.
func RepeatAll() string {
	return current.RepeatAll
}

// RepeatOne returns the repeat-one icon.
func RepeatOne() string {
	return current.RepeatOne
}

// Muted returns the muted volume indicator.
func Muted() string {
	return current.Muted
}

// Volume returns the volume icon.
func Volume() string {
	return current.Volume
}
