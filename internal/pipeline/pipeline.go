// Package pipeline orchestrates one rendering pass: resolve every listing,
// build annotations, place them on a fresh map session and aggregate the
// outcome for the presentation layer.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/yourorg/housemap-api/internal/annotate"
	"github.com/yourorg/housemap-api/internal/events"
	"github.com/yourorg/housemap-api/internal/geocode"
	"github.com/yourorg/housemap-api/internal/listing"
	"github.com/yourorg/housemap-api/internal/mapengine"
	"github.com/yourorg/housemap-api/internal/outcome"
)

// ErrPassInProgress rejects a pass started while another still owns the
// shared marker collection and aggregator.
var ErrPassInProgress = errors.New("pipeline: rendering pass already in progress")

// User-visible messages.
const (
	msgNoHouses   = "No houses to display."
	msgNonePlaced = "No houses could be displayed."
	msgMissingKey = "The map API key is not configured."
	msgBootstrap  = "The map failed to load."
	msgInit       = "The map could not be initialized."
	msgLoadData   = "Listing data could not be loaded."
)

// State is the reactive read-only surface the presentation layer polls.
type State struct {
	Loading      bool                 `json:"loading"`
	Error        string               `json:"error,omitempty"`
	Message      string               `json:"message,omitempty"`
	SuccessCount int                  `json:"successCount"`
	Skipped      []outcome.SkipRecord `json:"skipped"`
	MapType      mapengine.MapType    `json:"mapType"`
}

type Deps struct {
	Resolver *geocode.Resolver
	Engine   mapengine.Engine
	Pub      events.Publisher
	Log      *slog.Logger
}

// Renderer runs rendering passes. One pass at a time; the previous pass's
// session is disposed before the next touches any shared state.
type Renderer struct {
	resolver *geocode.Resolver
	engine   mapengine.Engine
	pub      events.Publisher
	log      *slog.Logger
	agg      *outcome.Aggregator

	passMu sync.Mutex

	mu      sync.RWMutex
	session *mapengine.Session
	loading bool
	fatal   string
	message string
	mapType mapengine.MapType
}

func NewRenderer(d Deps) *Renderer {
	return &Renderer{
		resolver: d.Resolver,
		engine:   d.Engine,
		pub:      d.Pub,
		log:      d.Log,
		agg:      outcome.NewAggregator(),
		mapType:  mapengine.MapTypeRoadmap,
	}
}

// Run executes one full pass over the given listings. Per-listing failures
// become skips; only configuration, bootstrap and initialization errors
// abort the pass.
func (r *Renderer) Run(ctx context.Context, houses []listing.House) (outcome.Outcome, error) {
	if !r.passMu.TryLock() {
		return outcome.Outcome{}, ErrPassInProgress
	}
	defer r.passMu.Unlock()

	passID := uuid.NewString()
	r.log.Info("render pass starting", "passId", passID, "listings", len(houses))

	r.mu.Lock()
	if r.session != nil {
		r.session.Dispose()
	}
	sess := mapengine.NewSession(r.engine, r.log)
	sess.SetMapType(r.mapType)
	r.session = sess
	r.loading = true
	r.fatal = ""
	r.message = ""
	r.mu.Unlock()

	r.agg.Reset()

	if err := sess.Start(ctx); err != nil {
		r.finish(ctx, passID, fatalMessage(sess.State()), "")
		return r.agg.Snapshot(), err
	}

	for _, h := range houses {
		loc, skip := r.resolver.Resolve(ctx, h)
		if skip != nil {
			r.agg.RecordSkip(*skip)
			continue
		}

		mk := annotate.Build(h, *loc, sess.PlacedCount()+1)
		if err := sess.Place(mk); err != nil {
			r.log.Warn("marker placement failed", "listingId", h.ID, "error", err)
			r.agg.RecordSkip(outcome.SkipRecord{
				ID:      h.ID,
				Address: mk.Title,
				Reason:  outcome.ReasonMarkerFailed,
			})
			continue
		}
		r.agg.RecordSuccess()
	}

	message := ""
	switch {
	case sess.PlacedCount() > 0:
		sess.FitViewport()
	case len(houses) == 0:
		message = msgNoHouses
	default:
		message = msgNonePlaced
	}

	r.finish(ctx, passID, "", message)
	return r.agg.Snapshot(), nil
}

func (r *Renderer) finish(ctx context.Context, passID, fatal, message string) {
	r.mu.Lock()
	r.loading = false
	r.fatal = fatal
	r.message = message
	r.mu.Unlock()

	snap := r.agg.Snapshot()
	if r.pub != nil {
		r.pub.PublishPassCompleted(ctx, events.PassCompleted{
			PassID:       passID,
			SuccessCount: snap.SuccessCount,
			SkipCount:    len(snap.Skipped),
			Fatal:        fatal,
		})
	}
}

func fatalMessage(s mapengine.State) string {
	switch s {
	case mapengine.StateConfigError:
		return msgMissingKey
	case mapengine.StateLoadError:
		return msgBootstrap
	case mapengine.StateInitError:
		return msgInit
	}
	return msgInit
}

// ReportLoadFailure surfaces a listing-file load error as the pass-fatal
// message without running a pass.
func (r *Renderer) ReportLoadFailure(err error) {
	r.log.Error("listing data load failed", "error", err)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading = false
	r.fatal = msgLoadData
}

// SetMapType switches the base layer for the live session and records the
// preference for subsequent passes.
func (r *Renderer) SetMapType(mt mapengine.MapType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mapType = mt
	if r.session != nil {
		r.session.SetMapType(mt)
	}
}

// State snapshots the presentation surface.
func (r *Renderer) State() State {
	snap := r.agg.Snapshot()
	r.mu.RLock()
	defer r.mu.RUnlock()
	return State{
		Loading:      r.loading,
		Error:        r.fatal,
		Message:      r.message,
		SuccessCount: snap.SuccessCount,
		Skipped:      snap.Skipped,
		MapType:      r.mapType,
	}
}

// Dispose tears down the live session, releasing every marker handle. Safe
// to call repeatedly.
func (r *Renderer) Dispose() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session != nil {
		r.session.Dispose()
	}
}
