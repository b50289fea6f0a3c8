package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMapboxToken = "pk.test-token"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "World_Energy_Generation_DV_Project.xlsx", cfg.DatasetPath)
	assert.Empty(t, cfg.DatasetSheet)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, "Europe", cfg.DefaultContinent)
	assert.Equal(t, 2001, cfg.DefaultYearStart)
	assert.Equal(t, 2010, cfg.DefaultYearEnd)
	assert.Equal(t, 5*time.Minute, cfg.FigureCacheTTL)
	assert.Equal(t, 256, cfg.FigureCacheSize)
	assert.Equal(t, 600, cfg.RateLimitPerMinute)
	assert.False(t, cfg.MapboxEnabled)
	assert.Empty(t, cfg.MapboxToken)
	assert.Equal(t, 5*time.Second, cfg.MapboxTimeout)
	assert.Equal(t, 1000, cfg.MapboxCacheSize)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "energy-generation-records", cfg.KafkaSnapshotTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("DATASET_PATH", "/data/energy.xlsx")
	t.Setenv("DATASET_SHEET", "World")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("BATCH_SIZE", "100")
	t.Setenv("DEFAULT_CONTINENT", "Asia")
	t.Setenv("DEFAULT_YEAR_START", "1990")
	t.Setenv("DEFAULT_YEAR_END", "2000")
	t.Setenv("FIGURE_CACHE_TTL", "30s")
	t.Setenv("FIGURE_CACHE_SIZE", "10")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "0")
	t.Setenv("MAPBOX_TOKEN", testMapboxToken)
	t.Setenv("MAPBOX_TIMEOUT", "10s")
	t.Setenv("MAPBOX_CACHE_SIZE", "500")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_SNAPSHOT_TOPIC", "custom-snapshot")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/energy.xlsx", cfg.DatasetPath)
	assert.Equal(t, "World", cfg.DatasetSheet)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, "Asia", cfg.DefaultContinent)
	assert.Equal(t, 1990, cfg.DefaultYearStart)
	assert.Equal(t, 2000, cfg.DefaultYearEnd)
	assert.Equal(t, 30*time.Second, cfg.FigureCacheTTL)
	assert.Equal(t, 10, cfg.FigureCacheSize)
	assert.Equal(t, 0, cfg.RateLimitPerMinute)
	assert.True(t, cfg.MapboxEnabled)
	assert.Equal(t, testMapboxToken, cfg.MapboxToken)
	assert.Equal(t, 10*time.Second, cfg.MapboxTimeout)
	assert.Equal(t, 500, cfg.MapboxCacheSize)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-snapshot", cfg.KafkaSnapshotTopic)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidBatchSize(t *testing.T) {
	t.Setenv("BATCH_SIZE", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BATCH_SIZE")
}

func TestLoad_InvalidFigureCacheTTL(t *testing.T) {
	t.Setenv("FIGURE_CACHE_TTL", "0s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FIGURE_CACHE_TTL")
}

func TestLoad_InvalidDefaultYear(t *testing.T) {
	t.Setenv("DEFAULT_YEAR_START", "twenty")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEFAULT_YEAR_START")
}

func TestLoad_DefaultYearsReversed(t *testing.T) {
	t.Setenv("DEFAULT_YEAR_START", "2015")
	t.Setenv("DEFAULT_YEAR_END", "2005")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEFAULT_YEAR_START")
}

func TestLoad_NegativeRateLimit(t *testing.T) {
	t.Setenv("RATE_LIMIT_PER_MINUTE", "-5")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RATE_LIMIT_PER_MINUTE")
}

func TestLoad_InvalidMapboxTimeout(t *testing.T) {
	t.Setenv("MAPBOX_TIMEOUT", "bad")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAPBOX_TIMEOUT")
}

func TestLoad_MapboxEnabledWithoutToken(t *testing.T) {
	t.Setenv("MAPBOX_ENABLED", "true")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAPBOX_TOKEN")
}

func TestLoad_MapboxExplicitlyDisabled(t *testing.T) {
	t.Setenv("MAPBOX_TOKEN", testMapboxToken)
	t.Setenv("MAPBOX_ENABLED", "false")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.MapboxEnabled)
}
