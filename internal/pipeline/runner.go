package pipeline

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/yourorg/housemap-api/internal/listing"
)

// LoadFunc supplies the listing collection for a pass.
type LoadFunc func(ctx context.Context) ([]listing.House, error)

// Runner executes passes on a single background worker. At most one pass
// runs and at most one more is queued; extra requests are coalesced.
type Runner struct {
	ch       chan struct{}
	pending  atomic.Bool
	renderer *Renderer
	load     LoadFunc
	log      *slog.Logger
}

func NewRunner(renderer *Renderer, load LoadFunc, log *slog.Logger) *Runner {
	r := &Runner{
		ch:       make(chan struct{}, 1),
		renderer: renderer,
		load:     load,
		log:      log,
	}
	go r.worker()
	return r
}

// Enqueue requests a pass. Returns false when one is already queued.
func (r *Runner) Enqueue() bool {
	if !r.pending.CompareAndSwap(false, true) {
		return false
	}
	select {
	case r.ch <- struct{}{}:
		return true
	default:
		r.pending.Store(false)
		return false
	}
}

func (r *Runner) worker() {
	for range r.ch {
		r.pending.Store(false)
		r.runOnce()
	}
}

func (r *Runner) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	houses, err := r.load(ctx)
	if err != nil {
		r.renderer.ReportLoadFailure(err)
		return
	}
	if _, err := r.renderer.Run(ctx, houses); err != nil {
		r.log.Error("render pass aborted", "error", err)
	}
}
