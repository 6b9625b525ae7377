package http

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// domainLimiter provides per-domain rate limiting using token buckets.
// Each domain gets its own limiter with a burst of 1, so probes to one
// host are spaced out while probes to different hosts proceed freely.
type domainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

func newDomainLimiter(rps float64) *domainLimiter {
	return &domainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *domainLimiter) wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
