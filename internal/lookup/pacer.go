// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lookup

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultDelay is the spacing between consecutive requests to a backend.
const DefaultDelay = 1 * time.Second

// Pacer spaces requests to one backend at least interval apart. It is a
// token bucket with a burst of one, so the first Wait returns immediately
// and nothing is waited for after the last request. A nil *Pacer never
// waits.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer returns a Pacer for interval, or nil when interval <= 0.
func NewPacer(interval time.Duration) *Pacer {
	if interval <= 0 {
		return nil
	}
	return &Pacer{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the next request may be sent or ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil {
		return nil
	}
	return p.limiter.Wait(ctx)
}
