// Package report consumes pass-completed events and logs a per-pass
// summary line.
package report

import (
	"context"
	"log/slog"

	"github.com/yourorg/housemap-api/internal/events"
)

type Reporter struct {
	pub events.Publisher
	log *slog.Logger
}

func New(pub events.Publisher, log *slog.Logger) *Reporter {
	return &Reporter{pub: pub, log: log}
}

func (r *Reporter) Run(ctx context.Context) {
	sub := r.pub.SubscribePassCompleted()
	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-sub:
			if evt.Fatal != "" {
				r.log.Warn("render pass failed",
					"passId", evt.PassID,
					"fatal", evt.Fatal,
				)
				continue
			}
			r.log.Info("render pass completed",
				"passId", evt.PassID,
				"placed", evt.SuccessCount,
				"skipped", evt.SkipCount,
			)
		}
	}
}
