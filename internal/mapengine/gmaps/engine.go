package gmaps

import (
	"context"
	"sync"

	"github.com/yourorg/housemap-api/internal/mapengine"
)

// Engine implements mapengine.Engine on top of the Maps JavaScript SDK.
type Engine struct {
	apiKey string
	loader *Loader

	mu   sync.Mutex
	page *PageMap
}

type Option func(*Engine)

// WithSDKBaseURL overrides the script host, for tests.
func WithSDKBaseURL(baseURL string) Option {
	return func(e *Engine) {
		e.loader = NewLoader(e.apiKey, baseURL)
	}
}

func New(apiKey string, opts ...Option) *Engine {
	e := &Engine{
		apiKey: apiKey,
		loader: NewLoader(apiKey, ""),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Configured() bool { return e.apiKey != "" }

func (e *Engine) Load(ctx context.Context) error { return e.loader.Load(ctx) }

// ScriptURL is the SDK script src the map page embeds.
func (e *Engine) ScriptURL() string { return e.loader.ScriptURL() }

// NewMap creates a fresh page model. The engine keeps a reference to the
// most recent one; that is what the page handler renders.
func (e *Engine) NewMap(mt mapengine.MapType) (mapengine.Map, error) {
	m := newPageMap(mt)
	e.mu.Lock()
	e.page = m
	e.mu.Unlock()
	return m, nil
}

// Page returns the most recently created page model, or nil before the
// first rendering pass reaches Ready.
func (e *Engine) Page() *PageMap {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.page
}
