package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	CORSOrigins     []string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Place data.
	PlaceSeedFile     string
	PlaceKeyNormalize bool

	// External factors provider configuration.
	FactorsBaseURL  string
	FactorsEnabled  bool
	FactorsAPIKey   string
	FactorsTimeout  time.Duration
	FactorsCacheTTL time.Duration

	ReplyDelay time.Duration

	KafkaEnabled       bool
	KafkaBrokers       []string
	KafkaInsightsTopic string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	factorsTimeout, err := parseDuration("FACTORS_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}
	if factorsTimeout <= 0 {
		return nil, errors.New("invalid FACTORS_TIMEOUT: must be positive")
	}

	cacheTTL, err := parseDuration("FACTORS_CACHE_TTL", "10m")
	if err != nil {
		return nil, err
	}
	if cacheTTL < 0 {
		return nil, errors.New("invalid FACTORS_CACHE_TTL: must not be negative")
	}

	replyDelay, err := parseDuration("REPLY_DELAY", "600ms")
	if err != nil {
		return nil, err
	}
	if replyDelay < 0 {
		return nil, errors.New("invalid REPLY_DELAY: must not be negative")
	}

	factorsURL := os.Getenv("FACTORS_BASE_URL")
	factorsEnabled := factorsURL != ""
	if v := os.Getenv("FACTORS_ENABLED"); v != "" {
		factorsEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		CORSOrigins:     parseList(sharedcfg.EnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		PlaceSeedFile:     os.Getenv("PLACE_SEED_FILE"),
		PlaceKeyNormalize: os.Getenv("PLACE_KEY_NORMALIZE") == "true",

		FactorsBaseURL:  factorsURL,
		FactorsEnabled:  factorsEnabled,
		FactorsAPIKey:   os.Getenv("FACTORS_API_KEY"),
		FactorsTimeout:  factorsTimeout,
		FactorsCacheTTL: cacheTTL,

		ReplyDelay: replyDelay,

		KafkaEnabled:       os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaInsightsTopic: sharedcfg.EnvOrDefault("KAFKA_INSIGHTS_TOPIC", "place-insights"),
	}

	if cfg.FactorsEnabled && cfg.FactorsBaseURL == "" {
		return nil, errors.New("FACTORS_ENABLED is true but FACTORS_BASE_URL is not set")
	}
	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required")
		}
		if cfg.KafkaInsightsTopic == "" {
			return nil, errors.New("KAFKA_INSIGHTS_TOPIC is required")
		}
	}

	return cfg, nil
}

// parseList splits a comma-separated value, dropping empty entries.
func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseDuration(name, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(name, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return d, nil
}
