package keymap

// Binding maps keys to an action, with metadata for help output.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "library", "playback", "queue"
}

// defaults is the built-in key map. Config entries under [keys] replace the
// key list of the named action.
var defaults = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionSearch, []string{"/"}, "Search library", "global"},
	{ActionToggleQueue, []string{"p"}, "Toggle queue view", "global"},
	{ActionBack, []string{"alt+left", "["}, "Navigate back", "global"},
	{ActionForward, []string{"alt+right", "]"}, "Navigate forward", "global"},
	{ActionHelp, []string{"?"}, "Show key bindings", "global"},

	// Library
	{ActionRefreshLibrary, []string{"r"}, "Refresh library", "library"},
	{ActionFullRescan, []string{"R"}, "Full rescan", "library"},

	// Playback
	{ActionPlayPause, []string{" ", "space"}, "Play/pause", "playback"},
	{ActionStop, []string{"s"}, "Stop", "playback"},
	{ActionNextTrack, []string{"pgdown", ">"}, "Next track", "playback"},
	{ActionPrevTrack, []string{"pgup", "<"}, "Previous track", "playback"},
	{ActionSeekForward, []string{"shift+right"}, "Seek +5s", "playback"},
	{ActionSeekBack, []string{"shift+left"}, "Seek -5s", "playback"},
	{ActionVolumeUp, []string{"+", "="}, "Volume up", "playback"},
	{ActionVolumeDown, []string{"-"}, "Volume down", "playback"},
	{ActionToggleMute, []string{"m"}, "Toggle mute", "playback"},
	{ActionCycleRepeat, []string{"e"}, "Cycle repeat mode", "playback"},
	{ActionToggleShuffle, []string{"S"}, "Toggle shuffle", "playback"},

	// Queue
	{ActionAdd, []string{"a"}, "Add to queue", "queue"},
	{ActionUndo, []string{"u", "ctrl+z"}, "Undo queue change", "queue"},
	{ActionRedo, []string{"ctrl+r"}, "Redo queue change", "queue"},
}

// Defaults returns a copy of the built-in bindings.
func Defaults() []Binding {
	out := make([]Binding, len(defaults))
	copy(out, defaults)
	return out
}

// ByContext returns the default bindings for a context, for help output.
func ByContext(context string) []Binding {
	var result []Binding
	for _, b := range defaults {
		if b.Context == context {
			result = append(result, b)
		}
	}
	return result
}
