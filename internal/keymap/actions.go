// Package keymap defines key bindings and action dispatch for the app-level
// keys. Panel-internal movement (cursor up/down, paging) stays with the
// panels; only keys with app-wide meaning resolve through here.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// ActionNone is returned for unbound keys.
	ActionNone Action = ""

	// Global actions
	ActionQuit        Action = "quit"
	ActionSearch      Action = "search"
	ActionToggleQueue Action = "toggle_queue"
	ActionBack        Action = "back"
	ActionForward     Action = "forward"
	ActionHelp        Action = "help"

	// Library actions
	ActionRefreshLibrary Action = "refresh_library"
	ActionFullRescan     Action = "full_rescan"

	// Playback actions
	ActionPlayPause     Action = "play_pause"
	ActionStop          Action = "stop"
	ActionNextTrack     Action = "next_track"
	ActionPrevTrack     Action = "prev_track"
	ActionSeekForward   Action = "seek_forward"
	ActionSeekBack      Action = "seek_back"
	ActionVolumeUp      Action = "volume_up"
	ActionVolumeDown    Action = "volume_down"
	ActionToggleMute    Action = "toggle_mute"
	ActionCycleRepeat   Action = "cycle_repeat"
	ActionToggleShuffle Action = "toggle_shuffle"

	// Queue actions
	ActionAdd  Action = "add"
	ActionUndo Action = "undo"
	ActionRedo Action = "redo"
)
