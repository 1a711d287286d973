package gmaps

import (
	"errors"
	"math"
	"testing"

	"github.com/yourorg/housemap-api/internal/mapengine"
)

func TestPageMapPlaceAndSnapshot(t *testing.T) {
	m := newPageMap(mapengine.MapTypeRoadmap)

	_, err := m.Place(mapengine.Marker{
		ID: "1", Label: "1", Title: "12 Oak Street",
		Position:  mapengine.Coord{Lat: 30.0, Lng: -95.0},
		PopupHTML: `<div class="popup"></div>`,
	})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}

	snap := m.Snapshot()
	if len(snap.Markers) != 1 {
		t.Fatalf("snapshot has %d markers, want 1", len(snap.Markers))
	}
	mk := snap.Markers[0]
	if mk.Label != "1" || mk.Lat != 30.0 || mk.Lng != -95.0 {
		t.Errorf("marker view = %+v", mk)
	}
	if snap.Fitted {
		t.Error("snapshot fitted before FitBounds")
	}
}

func TestPageMapRejectsNonFinitePositions(t *testing.T) {
	m := newPageMap(mapengine.MapTypeRoadmap)
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := m.Place(mapengine.Marker{ID: "x", Position: mapengine.Coord{Lat: bad}})
		if !errors.Is(err, mapengine.ErrBadPosition) {
			t.Errorf("Place(lat=%v) = %v, want ErrBadPosition", bad, err)
		}
	}
	if got := len(m.Snapshot().Markers); got != 0 {
		t.Errorf("rejected markers leaked into model: %d", got)
	}
}

func TestPageMapReleaseRemovesMarker(t *testing.T) {
	m := newPageMap(mapengine.MapTypeRoadmap)
	h1, _ := m.Place(mapengine.Marker{ID: "a", Position: mapengine.Coord{Lat: 1, Lng: 1}})
	_, _ = m.Place(mapengine.Marker{ID: "b", Position: mapengine.Coord{Lat: 2, Lng: 2}})

	h1.Release()
	h1.Release() // idempotent

	snap := m.Snapshot()
	if len(snap.Markers) != 1 || snap.Markers[0].ID != "b" {
		t.Errorf("markers after release = %+v", snap.Markers)
	}
}

func TestPageMapFitBoundsAndSetType(t *testing.T) {
	m := newPageMap(mapengine.MapTypeRoadmap)
	var b mapengine.Bounds
	b.Extend(mapengine.Coord{Lat: 30, Lng: -96})
	b.Extend(mapengine.Coord{Lat: 32, Lng: -94})
	m.FitBounds(b)
	m.SetType(mapengine.MapTypeHybrid)

	snap := m.Snapshot()
	if !snap.Fitted {
		t.Error("Fitted not set")
	}
	if snap.Center.Lat != 31 || snap.Center.Lng != -95 {
		t.Errorf("Center = %+v", snap.Center)
	}
	if snap.MapType != mapengine.MapTypeHybrid {
		t.Errorf("MapType = %q", snap.MapType)
	}
}

func TestEngineConfigured(t *testing.T) {
	if New("").Configured() {
		t.Error("engine without key reports configured")
	}
	if !New("abc").Configured() {
		t.Error("engine with key reports unconfigured")
	}
}
