package insight

import (
	"context"
	"errors"
	"log/slog"

	"github.com/couchcryptid/neighborhood-insights/internal/domain"
	"github.com/couchcryptid/neighborhood-insights/internal/observability"
)

// Resolution is the outcome of resolving a (city, region) pair. A miss is a
// normal result with Found set to false and a zero Record.
type Resolution struct {
	Key    string
	Found  bool
	Record domain.MetricsRecord
}

// RecordOrNil returns the resolved record, or nil on a miss.
func (r Resolution) RecordOrNil() *domain.MetricsRecord {
	if !r.Found {
		return nil
	}
	rec := r.Record
	return &rec
}

// Resolver maps user-entered places to metrics records through a PlaceStore.
type Resolver struct {
	store     domain.PlaceStore
	normalize bool
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithKeyNormalization trims whitespace and upper-cases the region before
// building the place key. Off by default: keys are joined verbatim.
func WithKeyNormalization(enabled bool) ResolverOption {
	return func(r *Resolver) { r.normalize = enabled }
}

// NewResolver creates a Resolver over the given store.
func NewResolver(store domain.PlaceStore, logger *slog.Logger, metrics *observability.Metrics, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		store:   store,
		logger:  logger,
		metrics: metrics,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Key builds the place key the resolver will look up for the given inputs.
func (r *Resolver) Key(city, region string) string {
	if r.normalize {
		return domain.NormalizePlaceKey(city, region)
	}
	return domain.PlaceKey(city, region)
}

// Resolve looks up the record for (city, region).
//
// A missing place and any store failure both come back as a miss with a nil
// error; store failures are logged. The only error returned is one wrapping
// domain.ErrInvalidMetric, for a record outside its documented domains.
func (r *Resolver) Resolve(ctx context.Context, city, region string) (Resolution, error) {
	key := r.Key(city, region)
	res := Resolution{Key: key}

	rec, err := r.store.Lookup(ctx, key)
	switch {
	case errors.Is(err, domain.ErrPlaceNotFound):
		r.metrics.ResolveOutcomes.WithLabelValues("not_found").Inc()
		r.logger.Debug("place not found", "key", key)
		return res, nil
	case err != nil:
		r.metrics.ResolveOutcomes.WithLabelValues("provider_error").Inc()
		r.logger.Warn("place lookup failed, treating as not found", "key", key, "error", err)
		return res, nil
	}

	if err := rec.Validate(); err != nil {
		r.metrics.ResolveOutcomes.WithLabelValues("invalid").Inc()
		r.logger.Error("rejected invalid metrics record", "key", key, "error", err)
		return res, err
	}

	r.metrics.ResolveOutcomes.WithLabelValues("found").Inc()
	res.Found = true
	res.Record = rec
	return res, nil
}

// CheckReadiness delegates to the store when it can report readiness.
func (r *Resolver) CheckReadiness(ctx context.Context) error {
	if rc, ok := r.store.(interface {
		CheckReadiness(ctx context.Context) error
	}); ok {
		return rc.CheckReadiness(ctx)
	}
	return nil
}
