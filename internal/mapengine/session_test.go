package mapengine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"
)

type fakeEngine struct {
	configured bool
	loadErr    error
	newMapErr  error
	m          *fakeMap
}

func (e *fakeEngine) Configured() bool               { return e.configured }
func (e *fakeEngine) Load(ctx context.Context) error { return e.loadErr }

func (e *fakeEngine) NewMap(mt MapType) (Map, error) {
	if e.newMapErr != nil {
		return nil, e.newMapErr
	}
	e.m = &fakeMap{mapType: mt}
	return e.m, nil
}

type fakeMap struct {
	mapType  MapType
	placeErr error
	placed   []Marker
	fits     int
	released int
}

func (m *fakeMap) Place(mk Marker) (Handle, error) {
	if m.placeErr != nil {
		return nil, m.placeErr
	}
	m.placed = append(m.placed, mk)
	return &fakeHandle{m: m}, nil
}

func (m *fakeMap) FitBounds(Bounds)   { m.fits++ }
func (m *fakeMap) SetType(mt MapType) { m.mapType = mt }

type fakeHandle struct{ m *fakeMap }

func (h *fakeHandle) Release() { h.m.released++ }

func testLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSessionStartHappyPath(t *testing.T) {
	e := &fakeEngine{configured: true}
	s := NewSession(e, testLog())

	if s.State() != StateUnloaded {
		t.Fatalf("initial state = %v", s.State())
	}
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.State() != StateReady {
		t.Errorf("state = %v, want ready", s.State())
	}
	if err := s.Start(context.Background()); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("second Start = %v, want ErrAlreadyStarted", err)
	}
}

func TestSessionMissingCredential(t *testing.T) {
	s := NewSession(&fakeEngine{configured: false}, testLog())
	err := s.Start(context.Background())
	if !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("Start = %v, want ErrMissingCredential", err)
	}
	if s.State() != StateConfigError {
		t.Errorf("state = %v, want config_error", s.State())
	}
	if err := s.Place(Marker{ID: "1"}); !errors.Is(err, ErrNotReady) {
		t.Errorf("Place in config_error = %v, want ErrNotReady", err)
	}
}

func TestSessionBootstrapFailure(t *testing.T) {
	s := NewSession(&fakeEngine{configured: true, loadErr: errors.New("offline")}, testLog())
	err := s.Start(context.Background())
	if !errors.Is(err, ErrBootstrap) {
		t.Fatalf("Start = %v, want ErrBootstrap", err)
	}
	if s.State() != StateLoadError {
		t.Errorf("state = %v, want load_error", s.State())
	}
	if !errors.Is(s.Err(), ErrBootstrap) {
		t.Errorf("Err() = %v", s.Err())
	}
}

func TestSessionInitFailure(t *testing.T) {
	s := NewSession(&fakeEngine{configured: true, newMapErr: errors.New("no canvas")}, testLog())
	if err := s.Start(context.Background()); !errors.Is(err, ErrInit) {
		t.Fatalf("Start = %v, want ErrInit", err)
	}
	if s.State() != StateInitError {
		t.Errorf("state = %v, want init_error", s.State())
	}
}

func TestSessionPlaceAndFit(t *testing.T) {
	e := &fakeEngine{configured: true}
	s := NewSession(e, testLog())
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if s.FitViewport() {
		t.Error("FitViewport with no markers should be a no-op")
	}

	for i, c := range []Coord{{30, -95}, {31, -96}} {
		mk := Marker{ID: string(rune('a' + i)), Position: c}
		if err := s.Place(mk); err != nil {
			t.Fatalf("Place %d: %v", i, err)
		}
	}
	if got := s.PlacedCount(); got != 2 {
		t.Errorf("PlacedCount = %d, want 2", got)
	}
	if !s.FitViewport() {
		t.Error("FitViewport should fire with markers placed")
	}
	if e.m.fits != 1 {
		t.Errorf("FitBounds called %d times, want 1", e.m.fits)
	}
}

func TestSessionPlaceFailureLeavesReady(t *testing.T) {
	e := &fakeEngine{configured: true}
	s := NewSession(e, testLog())
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	e.m.placeErr = errors.New("overlay rejected")
	if err := s.Place(Marker{ID: "x"}); err == nil {
		t.Fatal("expected placement error")
	}
	if s.State() != StateReady {
		t.Errorf("state after placement failure = %v, want ready", s.State())
	}
	if got := s.PlacedCount(); got != 0 {
		t.Errorf("PlacedCount = %d, want 0", got)
	}

	e.m.placeErr = nil
	if err := s.Place(Marker{ID: "y", Position: Coord{30, -95}}); err != nil {
		t.Errorf("Place after recovery: %v", err)
	}
}

func TestSessionSetMapType(t *testing.T) {
	e := &fakeEngine{configured: true}
	s := NewSession(e, testLog())

	// Before Ready the preference is only recorded.
	s.SetMapType(MapTypeSatellite)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if e.m.mapType != MapTypeSatellite {
		t.Errorf("map created with type %q, want satellite", e.m.mapType)
	}

	s.SetMapType(MapTypeTerrain)
	if e.m.mapType != MapTypeTerrain {
		t.Errorf("map type = %q, want terrain", e.m.mapType)
	}
	if s.MapType() != MapTypeTerrain {
		t.Errorf("MapType() = %q", s.MapType())
	}
}

func TestSessionDispose(t *testing.T) {
	e := &fakeEngine{configured: true}
	s := NewSession(e, testLog())
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.Place(Marker{ID: "a", Position: Coord{30, -95}})
	s.Place(Marker{ID: "b", Position: Coord{31, -96}})
	m := e.m

	s.Dispose()
	if s.State() != StateDisposed {
		t.Errorf("state = %v, want disposed", s.State())
	}
	if m.released != 2 {
		t.Errorf("released %d handles, want 2", m.released)
	}
	if got := s.PlacedCount(); got != 0 {
		t.Errorf("PlacedCount after dispose = %d, want 0", got)
	}
	if err := s.Place(Marker{ID: "c"}); !errors.Is(err, ErrNotReady) {
		t.Errorf("Place after dispose = %v, want ErrNotReady", err)
	}

	// Second dispose is a no-op, not a double release.
	s.Dispose()
	if m.released != 2 {
		t.Errorf("released %d handles after double dispose, want 2", m.released)
	}
}

func TestSessionDisposeBeforeStart(t *testing.T) {
	s := NewSession(&fakeEngine{configured: true}, testLog())
	s.Dispose()
	if s.State() != StateDisposed {
		t.Errorf("state = %v, want disposed", s.State())
	}
	if err := s.Start(context.Background()); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("Start after dispose = %v, want ErrAlreadyStarted", err)
	}
}

func TestHeadlessEngineRejectsNonFinitePositions(t *testing.T) {
	s := NewSession(Headless(), testLog())
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		mk := Marker{ID: "n", Position: Coord{Lat: bad, Lng: 0}}
		if err := s.Place(mk); !errors.Is(err, ErrBadPosition) {
			t.Errorf("Place(lat=%v) = %v, want ErrBadPosition", bad, err)
		}
	}
	if got := s.PlacedCount(); got != 0 {
		t.Errorf("PlacedCount = %d after rejected placements", got)
	}
}

func TestCoordFinite(t *testing.T) {
	if !(Coord{Lat: 30, Lng: -95}).Finite() {
		t.Error("real coordinate reported non-finite")
	}
	for _, bad := range []Coord{
		{Lat: math.NaN(), Lng: 0},
		{Lat: 0, Lng: math.NaN()},
		{Lat: math.Inf(1), Lng: 0},
		{Lat: 0, Lng: math.Inf(-1)},
	} {
		if bad.Finite() {
			t.Errorf("Finite(%+v) = true", bad)
		}
	}
}
