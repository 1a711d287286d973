// Package gmaps backs the map engine contract with the Google Maps
// JavaScript SDK: the loader verifies the SDK is reachable with the given
// credential, and the page map accumulates placed markers into the model
// the HTML template renders for the browser.
package gmaps

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const defaultSDKBaseURL = "https://maps.googleapis.com/maps/api/js"

// Loader performs the SDK bootstrap: a single fetch of the script URL,
// shared by every concurrent caller. A successful fetch is cached for the
// life of the process; a failed one is not, so the next session starts a
// fresh attempt. There is no process-wide mutable registry; each Loader
// owns its own in-flight attempt.
type Loader struct {
	scriptURL string
	client    *http.Client

	mu       sync.Mutex
	inflight chan struct{}
	done     bool
	err      error
}

func NewLoader(apiKey, baseURL string) *Loader {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultSDKBaseURL
	}
	q := url.Values{}
	q.Set("key", apiKey)
	q.Set("libraries", "marker")
	q.Set("loading", "async")
	return &Loader{
		scriptURL: strings.TrimRight(baseURL, "?") + "?" + q.Encode(),
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// ScriptURL is the src attribute the map page injects.
func (l *Loader) ScriptURL() string { return l.scriptURL }

// Load blocks until the shared bootstrap attempt settles, starting one if
// none is in flight. Once an attempt succeeds, repeated calls return nil
// without refetching; after a failure the next call retries.
func (l *Loader) Load(ctx context.Context) error {
	l.mu.Lock()
	if l.done {
		err := l.err
		l.mu.Unlock()
		return err
	}
	if l.inflight == nil {
		l.inflight = make(chan struct{})
		go l.fetch(l.inflight)
	}
	ch := l.inflight
	l.mu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-ch:
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

func (l *Loader) fetch(done chan struct{}) {
	err := l.fetchOnce()

	l.mu.Lock()
	l.done = err == nil
	l.err = err
	l.inflight = nil
	l.mu.Unlock()
	close(done)
}

func (l *Loader) fetchOnce() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.scriptURL, nil)
	if err != nil {
		return err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return fmt.Errorf("gmaps: fetch sdk script: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gmaps: sdk script returned status %d", resp.StatusCode)
	}
	return nil
}
