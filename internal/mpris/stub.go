//go:build !linux

package mpris

import "github.com/test99500/musium/internal/playback"

// Adapter is a no-op on platforms without a session bus.
type Adapter struct{}

// New returns a no-op adapter.
func New(_ playback.Service) (*Adapter, error) {
	return &Adapter{}, nil
}

// Close is a no-op.
func (a *Adapter) Close() error {
	return nil
}
