package state

import (
	"database/sql"
	"errors"
)

// PlayerState holds the saved player settings.
type PlayerState struct {
	Volume     int
	Shuffle    bool
	QueueIndex int
}

// GetPlayer returns the saved player state, or nil on first run.
func (m *Manager) GetPlayer() (*PlayerState, error) {
	var state PlayerState
	row := m.db.QueryRow(`SELECT volume, shuffle, queue_index FROM player_state WHERE id = 1`)
	err := row.Scan(&state.Volume, &state.Shuffle, &state.QueueIndex)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // nil state means nothing saved yet
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// SavePlayer persists the player settings.
func (m *Manager) SavePlayer(state PlayerState) error {
	_, err := m.db.Exec(`
		INSERT INTO player_state (id, volume, shuffle, queue_index)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			volume = excluded.volume,
			shuffle = excluded.shuffle,
			queue_index = excluded.queue_index
	`, state.Volume, state.Shuffle, state.QueueIndex)
	return err
}
