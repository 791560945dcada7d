// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Library operations
	OpLibraryOpen    Op = "open library"
	OpLibraryScan    Op = "scan library"
	OpLibraryLoad    Op = "load library"
	OpLibrarySearch  Op = "search library"
	OpLibraryRebuild Op = "rebuild search index"

	// Queue operations
	OpQueueAdd  Op = "add to queue"
	OpQueueLoad Op = "load queue"
	OpQueueSave Op = "save queue"

	// Playback operations
	OpPlaybackStart  Op = "start playback"
	OpPlaybackStop   Op = "stop playback"
	OpPlaybackPause  Op = "pause playback"
	OpPlaybackVolume Op = "change volume"

	// Listen history
	OpListenRecord Op = "record listen"
	OpScrobble     Op = "scrobble track"

	// State persistence
	OpStateSave    Op = "save session state"
	OpStateRestore Op = "restore session state"

	// Thumbnails
	OpThumbGenerate Op = "generate album thumbnail"

	// Desktop integration
	OpNotify Op = "send notification"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// Wrap returns an error carrying the formatted message, preserving err
// for errors.Is/As chains.
func Wrap(op Op, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
