// Package bootstrap assembles the place store shared by the service and CLI.
package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/couchcryptid/neighborhood-insights/internal/adapter/factors"
	"github.com/couchcryptid/neighborhood-insights/internal/adapter/memstore"
	"github.com/couchcryptid/neighborhood-insights/internal/config"
	"github.com/couchcryptid/neighborhood-insights/internal/domain"
	"github.com/couchcryptid/neighborhood-insights/internal/observability"
)

// NewPlaceStore picks the place store for cfg: the external factors provider
// when enabled (behind a TTL cache unless FACTORS_CACHE_TTL is 0), otherwise
// an in-memory table loaded from PLACE_SEED_FILE or the built-in places.
func NewPlaceStore(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) (domain.PlaceStore, error) {
	if cfg.FactorsEnabled {
		client := factors.NewClient(cfg.FactorsBaseURL, cfg.FactorsAPIKey, cfg.FactorsTimeout, metrics, logger)
		logger.Info("factors provider enabled", "base_url", cfg.FactorsBaseURL, "timeout", cfg.FactorsTimeout, "cache_ttl", cfg.FactorsCacheTTL)
		if cfg.FactorsCacheTTL == 0 {
			return client, nil
		}
		return factors.NewCachedStore(client, cfg.FactorsCacheTTL, metrics), nil
	}

	if cfg.PlaceSeedFile != "" {
		store, err := memstore.LoadFile(cfg.PlaceSeedFile)
		if err != nil {
			return nil, fmt.Errorf("load place seed file: %w", err)
		}
		logger.Info("loaded place seed file", "path", cfg.PlaceSeedFile, "places", len(store.Keys()))
		return store, nil
	}

	logger.Info("using built-in places")
	return memstore.NewSeeded(), nil
}
