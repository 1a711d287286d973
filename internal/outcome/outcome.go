// Package outcome accumulates the result of one rendering pass: how many
// listings were placed and which were skipped, with reasons.
package outcome

import "sync"

// Skip reasons. These are user-visible.
const (
	ReasonInvalidAddress = "invalid address"
	ReasonNoAddress      = "no address"
	ReasonLookupFailed   = "lookup failed"
	ReasonMarkerFailed   = "marker failed"
)

// SkipRecord describes one listing excluded from the current pass.
type SkipRecord struct {
	ID      string `json:"id"`
	Address string `json:"address"`
	Reason  string `json:"reason"`
}

// Outcome is a read-only snapshot of one pass.
type Outcome struct {
	SuccessCount int          `json:"successCount"`
	Skipped      []SkipRecord `json:"skipped"`
}

// Aggregator collects successes and skips for the pass in progress. No
// history is kept across passes; Reset starts every pass from zero.
type Aggregator struct {
	mu      sync.Mutex
	success int
	skipped []SkipRecord
}

func NewAggregator() *Aggregator {
	return &Aggregator{skipped: []SkipRecord{}}
}

func (a *Aggregator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.success = 0
	a.skipped = []SkipRecord{}
}

func (a *Aggregator) RecordSuccess() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.success++
}

func (a *Aggregator) RecordSkip(rec SkipRecord) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.skipped = append(a.skipped, rec)
}

// Snapshot returns a copy safe to hand to the presentation layer.
func (a *Aggregator) Snapshot() Outcome {
	a.mu.Lock()
	defer a.mu.Unlock()
	skipped := make([]SkipRecord, len(a.skipped))
	copy(skipped, a.skipped)
	return Outcome{SuccessCount: a.success, Skipped: skipped}
}
