package memstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/couchcryptid/neighborhood-insights/internal/domain"
)

// Store is a read-only, in-memory domain.PlaceStore. It is never mutated after
// construction, so concurrent lookups need no locking.
type Store struct {
	places map[string]domain.MetricsRecord
}

// New builds a Store from a key -> record table. Every record is validated
// up front so a bad table fails at startup rather than at lookup time.
func New(places map[string]domain.MetricsRecord) (*Store, error) {
	copied := make(map[string]domain.MetricsRecord, len(places))
	for key, rec := range places {
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("place %q: %w", key, err)
		}
		rec.Demographics = append([]domain.Demographic(nil), rec.Demographics...)
		copied[key] = rec
	}
	return &Store{places: copied}, nil
}

// NewSeeded returns a Store holding domain.SeedPlaces.
func NewSeeded() *Store {
	s, err := New(domain.SeedPlaces())
	if err != nil {
		panic(fmt.Sprintf("seed places are invalid: %v", err))
	}
	return s
}

// Lookup returns the record for key, or domain.ErrPlaceNotFound.
func (s *Store) Lookup(_ context.Context, key string) (domain.MetricsRecord, error) {
	rec, ok := s.places[key]
	if !ok {
		return domain.MetricsRecord{}, fmt.Errorf("%w: %q", domain.ErrPlaceNotFound, key)
	}
	rec.Demographics = append([]domain.Demographic(nil), rec.Demographics...)
	return rec, nil
}

// Keys lists every place key in sorted order.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.places))
	for k := range s.places {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CheckReadiness fails when the store holds no places.
func (s *Store) CheckReadiness(_ context.Context) error {
	if len(s.places) == 0 {
		return fmt.Errorf("place store is empty")
	}
	return nil
}
