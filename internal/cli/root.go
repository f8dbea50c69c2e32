// Package cli implements the insights command-line tool.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/couchcryptid/neighborhood-insights/internal/bootstrap"
	"github.com/couchcryptid/neighborhood-insights/internal/config"
	"github.com/couchcryptid/neighborhood-insights/internal/domain"
	"github.com/couchcryptid/neighborhood-insights/internal/insight"
	"github.com/couchcryptid/neighborhood-insights/internal/observability"
	"github.com/spf13/cobra"
)

type options struct {
	seedFile  string
	normalize bool
	format    string
	verbose   bool
}

// NewRootCmd builds the command tree. Settings come from the same environment
// variables as the service; flags override them.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "insights",
		Short:         "Neighborhood pros and cons from place metrics",
		Long:          "Look up a city and state, print its metrics summary with pros and cons, or list the places the local store knows about.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.seedFile, "seed-file", "", "YAML place seed file (default: $PLACE_SEED_FILE or built-in places)")
	root.PersistentFlags().BoolVar(&opts.normalize, "normalize", false, "Trim whitespace and upper-case the region before lookup")
	root.PersistentFlags().StringVarP(&opts.format, "format", "f", "text", "Output format: text or json")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log store activity to stderr")

	root.AddCommand(newLookupCmd(opts), newPlacesCmd(opts), newValidateCmd())
	return root
}

// env bundles what a command needs to resolve places.
type env struct {
	cfg      *config.Config
	store    domain.PlaceStore
	resolver *insight.Resolver
	service  *insight.Service
}

func (o *options) load(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if o.seedFile != "" {
		cfg.PlaceSeedFile = o.seedFile
		cfg.FactorsEnabled = false
	}
	if cmd.Flags().Changed("normalize") {
		cfg.PlaceKeyNormalize = o.normalize
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if o.verbose {
		logger = observability.NewLogger("debug", "text")
	}
	metrics := observability.NewMetricsForTesting()

	store, err := bootstrap.NewPlaceStore(cfg, logger, metrics)
	if err != nil {
		return nil, err
	}
	resolver := insight.NewResolver(store, logger, metrics, insight.WithKeyNormalization(cfg.PlaceKeyNormalize))
	return &env{
		cfg:      cfg,
		store:    store,
		resolver: resolver,
		service:  insight.NewService(resolver, nil, logger, metrics),
	}, nil
}

func (o *options) checkFormat() error {
	switch o.format {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("unknown format %q: want text or json", o.format)
	}
}
