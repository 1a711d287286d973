package events

import (
	"context"
)

// PassCompleted fires after each rendering pass, fatal or not.
type PassCompleted struct {
	PassID       string
	SuccessCount int
	SkipCount    int
	Fatal        string
}

type Publisher interface {
	PublishPassCompleted(ctx context.Context, evt PassCompleted)
	SubscribePassCompleted() <-chan PassCompleted
}

type inMemory struct{ ch chan PassCompleted }

func NewInMemory(buffer int) Publisher {
	if buffer <= 0 {
		buffer = 64
	}
	return &inMemory{ch: make(chan PassCompleted, buffer)}
}

func (m *inMemory) PublishPassCompleted(_ context.Context, evt PassCompleted) {
	select {
	case m.ch <- evt:
	default:
	}
}

func (m *inMemory) SubscribePassCompleted() <-chan PassCompleted { return m.ch }
