package domain

import "context"

// PlaceStore resolves a place key to a complete MetricsRecord.
// Implementations return ErrPlaceNotFound (possibly wrapped) on a miss and must
// be safe for concurrent use.
type PlaceStore interface {
	Lookup(ctx context.Context, key string) (MetricsRecord, error)
}
