package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	DatasetPath  string
	DatasetSheet string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	BatchSize       int

	// Dashboard defaults and limits.
	DefaultContinent   string
	DefaultYearStart   int
	DefaultYearEnd     int
	FigureCacheTTL     time.Duration
	FigureCacheSize    int
	RateLimitPerMinute int

	// Mapbox geocoding configuration.
	MapboxToken     string
	MapboxEnabled   bool
	MapboxTimeout   time.Duration
	MapboxCacheSize int

	// Snapshot publishing configuration.
	KafkaEnabled       bool
	KafkaBrokers       []string
	KafkaSnapshotTopic string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	mapboxTimeout, err := parsePositiveDuration("MAPBOX_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	cacheTTL, err := parsePositiveDuration("FIGURE_CACHE_TTL", "5m")
	if err != nil {
		return nil, err
	}

	yearStart, err := parseInt("DEFAULT_YEAR_START", 2001)
	if err != nil {
		return nil, err
	}
	yearEnd, err := parseInt("DEFAULT_YEAR_END", 2010)
	if err != nil {
		return nil, err
	}

	cacheSize, err := parseInt("FIGURE_CACHE_SIZE", 256)
	if err != nil || cacheSize < 0 {
		return nil, errors.New("invalid FIGURE_CACHE_SIZE")
	}

	rateLimit, err := parseInt("RATE_LIMIT_PER_MINUTE", 600)
	if err != nil || rateLimit < 0 {
		return nil, errors.New("invalid RATE_LIMIT_PER_MINUTE")
	}

	mapboxToken := os.Getenv("MAPBOX_TOKEN")
	mapboxEnabled := mapboxToken != ""
	if v := os.Getenv("MAPBOX_ENABLED"); v != "" {
		mapboxEnabled = v == "true"
	}

	cfg := &Config{
		DatasetPath:     sharedcfg.EnvOrDefault("DATASET_PATH", "World_Energy_Generation_DV_Project.xlsx"),
		DatasetSheet:    os.Getenv("DATASET_SHEET"),
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		BatchSize:       batchSize,

		DefaultContinent:   sharedcfg.EnvOrDefault("DEFAULT_CONTINENT", "Europe"),
		DefaultYearStart:   yearStart,
		DefaultYearEnd:     yearEnd,
		FigureCacheTTL:     cacheTTL,
		FigureCacheSize:    cacheSize,
		RateLimitPerMinute: rateLimit,

		MapboxToken:     mapboxToken,
		MapboxEnabled:   mapboxEnabled,
		MapboxTimeout:   mapboxTimeout,
		MapboxCacheSize: parseMapboxCacheSize(),

		KafkaEnabled:       os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSnapshotTopic: sharedcfg.EnvOrDefault("KAFKA_SNAPSHOT_TOPIC", "energy-generation-records"),
	}

	if cfg.DatasetPath == "" {
		return nil, errors.New("DATASET_PATH is required")
	}
	if cfg.DefaultYearStart > cfg.DefaultYearEnd {
		return nil, errors.New("DEFAULT_YEAR_START must not be after DEFAULT_YEAR_END")
	}
	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		return nil, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}
	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required when KAFKA_ENABLED is true")
		}
		if cfg.KafkaSnapshotTopic == "" {
			return nil, errors.New("KAFKA_SNAPSHOT_TOPIC is required when KAFKA_ENABLED is true")
		}
	}

	return cfg, nil
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func parseMapboxCacheSize() int {
	if s := os.Getenv("MAPBOX_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
