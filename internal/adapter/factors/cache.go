package factors

import (
	"context"
	"time"

	"github.com/couchcryptid/neighborhood-insights/internal/domain"
	"github.com/couchcryptid/neighborhood-insights/internal/observability"
	gocache "github.com/patrickmn/go-cache"
)

// CachedStore wraps a PlaceStore with a TTL cache of resolved records.
type CachedStore struct {
	inner   domain.PlaceStore
	cache   *gocache.Cache
	metrics *observability.Metrics
}

// NewCachedStore creates a cache decorator. Entries expire after ttl and are
// purged every 2*ttl.
func NewCachedStore(inner domain.PlaceStore, ttl time.Duration, metrics *observability.Metrics) *CachedStore {
	return &CachedStore{
		inner:   inner,
		cache:   gocache.New(ttl, 2*ttl),
		metrics: metrics,
	}
}

func (c *CachedStore) Lookup(ctx context.Context, key string) (domain.MetricsRecord, error) {
	if v, ok := c.cache.Get(key); ok {
		c.metrics.ProviderCache.WithLabelValues("hit").Inc()
		return cloneRecord(v.(domain.MetricsRecord)), nil
	}
	c.metrics.ProviderCache.WithLabelValues("miss").Inc()

	rec, err := c.inner.Lookup(ctx, key)
	if err != nil {
		// Misses and failures are not cached so they can be retried.
		return rec, err
	}
	c.cache.SetDefault(key, cloneRecord(rec))
	return rec, nil
}

// CheckReadiness delegates to the wrapped store when it supports it.
func (c *CachedStore) CheckReadiness(ctx context.Context) error {
	if rc, ok := c.inner.(interface {
		CheckReadiness(ctx context.Context) error
	}); ok {
		return rc.CheckReadiness(ctx)
	}
	return nil
}

func cloneRecord(r domain.MetricsRecord) domain.MetricsRecord {
	r.Demographics = append([]domain.Demographic(nil), r.Demographics...)
	return r
}
