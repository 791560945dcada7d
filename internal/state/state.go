// Package state persists UI state between sessions: the current view,
// the play queue, player settings and the Last.fm session.
package state

import (
	"database/sql"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"

	dbutil "github.com/test99500/musium/internal/db"
)

const (
	appName      = "musium"
	dbFileName   = "state.db"
	saveDebounce = 500 * time.Millisecond
)

type Manager struct {
	db        *sql.DB
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *NavState
}

// Open opens the state database at its default location under the XDG data
// directory, creating it and its schema as needed.
func Open() (*Manager, error) {
	path, err := xdg.DataFile(filepath.Join(appName, dbFileName))
	if err != nil {
		return nil, err
	}
	sqldb, err := dbutil.Open(path)
	if err != nil {
		return nil, err
	}
	return New(sqldb)
}

// New wraps an already-open database, initializing the schema.
func New(sqldb *sql.DB) (*Manager, error) {
	if err := initSchema(sqldb); err != nil {
		sqldb.Close()
		return nil, err
	}
	return &Manager{db: sqldb}, nil
}

func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pending
	m.pending = nil
	m.saveMu.Unlock()

	// Flush pending state
	if pending != nil {
		_ = saveNavigation(m.db, *pending)
	}

	return m.db.Close()
}

func (m *Manager) DB() *sql.DB {
	return m.db
}

// SaveNavigation schedules a debounced write of the navigation state.
// Navigation changes on every cursor move, so writes are coalesced.
func (m *Manager) SaveNavigation(state NavState) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &state

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = nil
		m.saveMu.Unlock()

		if pending != nil {
			_ = saveNavigation(m.db, *pending)
		}
	})
}

// GetNavigation returns the saved navigation state, or nil on first run.
func (m *Manager) GetNavigation() (*NavState, error) {
	return getNavigation(m.db)
}
