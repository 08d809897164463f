package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("WEATHER_CONFIG_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 0, cfg.UpstreamMaxRetries)
	assert.Equal(t, "https://geocoding-api.open-meteo.com/v1", cfg.GeocodingBaseURL)
	assert.Equal(t, "https://api.open-meteo.com/v1", cfg.ForecastBaseURL)

	loc := cfg.DefaultLocation.Record()
	assert.Equal(t, "Berlin, Germany", loc.Header())
	assert.Equal(t, 52.52, loc.Latitude)
	assert.Equal(t, 13.41, loc.Longitude)
	assert.Equal(t, "Europe/Berlin", loc.Timezone)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := writeConfigFile(t, `
port: "9090"
http_timeout: 3s
upstream_max_retries: 2
default_location:
  name: Paris
  admin1: Île-de-France
  country: France
  latitude: 48.85
  longitude: 2.35
  timezone: Europe/Paris
session:
  max_age: 2h
  max_count: 50
  prune_interval: 1m
suggest:
  rate_per_second: 2.5
  burst: 4
`)
	t.Setenv("WEATHER_CONFIG_FILE", path)
	t.Setenv("PORT", "7070")
	t.Setenv("SESSION_MAX_AGE", "90m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 2, cfg.UpstreamMaxRetries)
	assert.Equal(t, 90*time.Minute, cfg.SessionMaxAge)
	assert.Equal(t, 50, cfg.SessionMaxCount)
	assert.Equal(t, time.Minute, cfg.SessionPruneInterval)
	assert.Equal(t, 2.5, cfg.SuggestRatePerSecond)
	assert.Equal(t, 4, cfg.SuggestBurst)
	assert.Equal(t, "Paris, Île-de-France, France", cfg.DefaultLocation.Record().DisplayName)

	b := cfg.Backoff()
	assert.Equal(t, 2, b.MaxRetries)
	assert.Greater(t, b.InitialInterval, time.Duration(0))
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string][2]string{
		"bad duration":      {"HTTP_TIMEOUT", "soon"},
		"non-numeric port":  {"PORT", "http"},
		"latitude range":    {"DEFAULT_LOCATION_LATITUDE", "123"},
		"forecast base url": {"FORECAST_BASE_URL", "not a url"},
	}
	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv("WEATHER_CONFIG_FILE", "")
			t.Setenv(kv[0], kv[1])

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("WEATHER_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadMalformedFile(t *testing.T) {
	t.Setenv("WEATHER_CONFIG_FILE", writeConfigFile(t, "session: [unclosed"))

	_, err := Load()
	assert.Error(t, err)
}
