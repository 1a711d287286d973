// Package mapengine owns the lifecycle of one map rendering session: engine
// bootstrap, marker placement, viewport fitting and teardown.
package mapengine

import (
	"context"
	"fmt"
	"math"
)

// Coord is a geographic coordinate.
type Coord struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Finite reports whether both components are real numbers. Every engine
// rejects non-finite positions the same way.
func (c Coord) Finite() bool {
	return !math.IsNaN(c.Lat) && !math.IsInf(c.Lat, 0) &&
		!math.IsNaN(c.Lng) && !math.IsInf(c.Lng, 0)
}

// MapType is the base layer selection.
type MapType string

const (
	MapTypeRoadmap   MapType = "roadmap"
	MapTypeSatellite MapType = "satellite"
	MapTypeHybrid    MapType = "hybrid"
	MapTypeTerrain   MapType = "terrain"
)

// ParseMapType validates a user-supplied map type string.
func ParseMapType(s string) (MapType, error) {
	switch MapType(s) {
	case MapTypeRoadmap, MapTypeSatellite, MapTypeHybrid, MapTypeTerrain:
		return MapType(s), nil
	}
	return "", fmt.Errorf("mapengine: unknown map type %q", s)
}

// Marker is one annotation ready for placement: numbered glyph, title and
// popup payload at a coordinate.
type Marker struct {
	ID        string
	Label     string
	Title     string
	Position  Coord
	PopupHTML string
}

// Handle is a placed marker. Release detaches its listeners and clears its
// map association; it must be safe to call more than once.
type Handle interface {
	Release()
}

// Map is one live map instance.
type Map interface {
	Place(Marker) (Handle, error)
	FitBounds(Bounds)
	SetType(MapType)
}

// Engine abstracts the external mapping SDK.
type Engine interface {
	// Configured reports whether the engine has the credentials it needs.
	Configured() bool
	// Load performs the one-shot asynchronous SDK bootstrap. Concurrent and
	// repeated calls share a single attempt; the result is cached.
	Load(ctx context.Context) error
	// NewMap instantiates a map with the given base layer.
	NewMap(MapType) (Map, error)
}
