package fetch

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Meter throttles outbound IMDb traffic with two token buckets: a
// short-term cap that smooths bursts and the long-term window (250
// requests per 60 s, authenticated or not) that IP blocks are keyed on.
type Meter struct {
	short *rate.Limiter
	long  *rate.Limiter
}

// NewMeter builds a meter for the given window. requests and window
// default to 250 per minute when zero.
func NewMeter(requests int, window time.Duration) *Meter {
	if requests <= 0 {
		requests = 250
	}
	if window <= 0 {
		window = time.Minute
	}
	perSecond := rate.Limit(float64(requests) / window.Seconds())
	return &Meter{
		// Bursting a quarter of the window at once is still short of a
		// block, while keeping page fan-outs fast.
		short: rate.NewLimiter(perSecond*4, requests/4+1),
		long:  rate.NewLimiter(perSecond, requests),
	}
}

// Wait blocks until a request may proceed or the context is done.
func (m *Meter) Wait(ctx context.Context) error {
	if err := m.short.Wait(ctx); err != nil {
		return err
	}
	return m.long.Wait(ctx)
}

// Allow reports whether a request could proceed right now without
// consuming a token.
func (m *Meter) Allow() bool {
	return m.short.Tokens() >= 1 && m.long.Tokens() >= 1
}
