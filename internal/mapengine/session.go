package mapengine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// State is the session lifecycle position. ConfigError, LoadError,
// InitError and Disposed are terminal; a new rendering pass requires a
// fresh session.
type State int

const (
	StateUnloaded State = iota
	StateLoading
	StateReady
	StateDisposed
	StateConfigError
	StateLoadError
	StateInitError
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateDisposed:
		return "disposed"
	case StateConfigError:
		return "config_error"
	case StateLoadError:
		return "load_error"
	case StateInitError:
		return "init_error"
	}
	return "unknown"
}

var (
	// ErrMissingCredential means the engine credential is absent. Fatal for
	// the pass, surfaced to the user, never a crash.
	ErrMissingCredential = errors.New("mapengine: missing API credential")
	// ErrBootstrap wraps an SDK load failure.
	ErrBootstrap = errors.New("mapengine: sdk bootstrap failed")
	// ErrInit wraps a map instantiation failure.
	ErrInit = errors.New("mapengine: map initialization failed")
	// ErrNotReady is returned for Ready-only operations in other states.
	ErrNotReady = errors.New("mapengine: session not ready")
	// ErrAlreadyStarted is returned when Start is called twice.
	ErrAlreadyStarted = errors.New("mapengine: session already started")
)

// Session drives one map instance from bootstrap to disposal. It owns the
// placed marker handles and the cumulative bounds; the handle set always
// matches the set of successfully placed annotations.
type Session struct {
	id     string
	engine Engine
	log    *slog.Logger

	mu      sync.Mutex
	state   State
	fatal   error
	m       Map
	handles []Handle
	bounds  Bounds
	mapType MapType
}

func NewSession(engine Engine, log *slog.Logger) *Session {
	return &Session{
		id:      uuid.NewString(),
		engine:  engine,
		log:     log,
		state:   StateUnloaded,
		mapType: MapTypeRoadmap,
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the fatal error for terminal failure states.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fatal
}

// Start moves the session Unloaded → Loading → Ready, or into one of the
// terminal error states. It is not restartable.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateUnloaded {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	if !s.engine.Configured() {
		s.state = StateConfigError
		s.fatal = ErrMissingCredential
		s.mu.Unlock()
		return ErrMissingCredential
	}
	s.state = StateLoading
	s.mu.Unlock()

	if err := s.engine.Load(ctx); err != nil {
		wrapped := fmt.Errorf("%w: %v", ErrBootstrap, err)
		s.fail(StateLoadError, wrapped)
		return wrapped
	}

	s.mu.Lock()
	if s.state != StateLoading {
		// Disposed while the bootstrap was in flight; results discarded.
		s.mu.Unlock()
		return ErrNotReady
	}
	mapType := s.mapType
	s.mu.Unlock()

	m, err := s.engine.NewMap(mapType)
	if err != nil {
		wrapped := fmt.Errorf("%w: %v", ErrInit, err)
		s.fail(StateInitError, wrapped)
		return wrapped
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateLoading {
		return ErrNotReady
	}
	s.m = m
	s.state = StateReady
	s.log.Debug("map session ready", "sessionId", s.id)
	return nil
}

func (s *Session) fail(state State, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateDisposed {
		return
	}
	s.state = state
	s.fatal = err
}

// Place puts one marker on the map and folds its position into the bounds.
// A placement error leaves the session Ready; the caller records the skip.
func (s *Session) Place(mk Marker) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return ErrNotReady
	}
	h, err := s.m.Place(mk)
	if err != nil {
		return err
	}
	s.handles = append(s.handles, h)
	s.bounds.Extend(mk.Position)
	return nil
}

// PlacedCount reports how many markers the session currently holds.
func (s *Session) PlacedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handles)
}

// FitViewport fits the map to the union of all placed markers. It does
// nothing when no placement succeeded.
func (s *Session) FitViewport() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady || s.bounds.Empty() {
		return false
	}
	s.m.FitBounds(s.bounds)
	return true
}

// SetMapType switches the base layer. Idempotent, effective immediately,
// and never requires re-placing markers. Before Ready it only records the
// preference used at map creation.
func (s *Session) SetMapType(mt MapType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mapType = mt
	if s.state == StateReady {
		s.m.SetType(mt)
	}
}

func (s *Session) MapType() MapType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mapType
}

// Dispose releases every marker handle, empties the collection and drops
// the map reference. Safe to call in any state, any number of times.
func (s *Session) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range s.handles {
		h.Release()
	}
	s.handles = nil
	s.m = nil
	s.state = StateDisposed
}
