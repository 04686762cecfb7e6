package offline

import (
	"context"
	"strings"
	"sync"

	"github.com/fwojciec/offsync"
	"golang.org/x/time/rate"
)

var _ offsync.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter throttles requests per host with one token bucket each
// (burst 1). A batch spanning several sites is throttled per site, not
// globally.
type DomainLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	limit   rate.Limit
}

// NewDomainLimiter allows rps requests per second to each host.
// A non-positive rps disables throttling.
func NewDomainLimiter(rps float64) *DomainLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &DomainLimiter{
		buckets: make(map[string]*rate.Limiter),
		limit:   limit,
	}
}

// Wait blocks until a request to host is allowed or ctx is done.
// Host names are compared case-insensitively.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	return d.bucket(strings.ToLower(host)).Wait(ctx)
}

func (d *DomainLimiter) bucket(host string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()

	b, ok := d.buckets[host]
	if !ok {
		b = rate.NewLimiter(d.limit, 1)
		d.buckets[host] = b
	}
	return b
}
