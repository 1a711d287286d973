package mapengine

import (
	"context"
	"errors"
	"sync"
)

// ErrBadPosition rejects markers with non-finite coordinates.
var ErrBadPosition = errors.New("mapengine: marker position is not a finite coordinate")

// Headless returns an Engine that needs no credential and renders nowhere.
// Used by the rendercheck CLI to audit a pass without a browser.
func Headless() Engine {
	return headlessEngine{}
}

type headlessEngine struct{}

func (headlessEngine) Configured() bool               { return true }
func (headlessEngine) Load(ctx context.Context) error { return ctx.Err() }
func (headlessEngine) NewMap(mt MapType) (Map, error) { return &headlessMap{mapType: mt}, nil }

type headlessMap struct {
	mu      sync.Mutex
	mapType MapType
	placed  int
	fitted  bool
}

func (m *headlessMap) Place(mk Marker) (Handle, error) {
	if !mk.Position.Finite() {
		return nil, ErrBadPosition
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.placed++
	return nopHandle{}, nil
}

func (m *headlessMap) FitBounds(Bounds) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fitted = true
}

func (m *headlessMap) SetType(mt MapType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mapType = mt
}

type nopHandle struct{}

func (nopHandle) Release() {}
