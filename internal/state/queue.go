package state

import (
	"context"
	"database/sql"

	dbutil "github.com/test99500/musium/internal/db"
)

// GetQueue returns the saved queue as library track IDs in order.
// Tracks deleted from the library since the last session are resolved by
// the caller when loading them.
func (m *Manager) GetQueue() ([]int64, error) {
	rows, err := m.db.Query(`SELECT track_id FROM queue_tracks ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SaveQueue replaces the saved queue with the given track IDs.
func (m *Manager) SaveQueue(ids []int64) error {
	return dbutil.WithTx(context.Background(), m.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM queue_tracks`); err != nil {
			return err
		}

		stmt, err := tx.Prepare(`INSERT INTO queue_tracks (position, track_id) VALUES (?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, id := range ids {
			if _, err := stmt.Exec(i, id); err != nil {
				return err
			}
		}
		return nil
	})
}
