package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/i474232898/weather-dashboard/internal/weather"
	"github.com/i474232898/weather-dashboard/internal/weather/providers"
)

// LocationConfig describes the location a new session starts at.
type LocationConfig struct {
	Name      string  `yaml:"name" validate:"required"`
	Admin1    string  `yaml:"admin1"`
	Country   string  `yaml:"country"`
	Latitude  float64 `yaml:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `yaml:"longitude" validate:"gte=-180,lte=180"`
	Timezone  string  `yaml:"timezone"`
}

// Record converts the configured location into a resolved LocationRecord.
func (l LocationConfig) Record() weather.LocationRecord {
	return weather.Normalize(weather.RawLocation{
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
		Name:      l.Name,
		Country:   l.Country,
		Admin1:    l.Admin1,
		Timezone:  l.Timezone,
	})
}

type AppConfig struct {
	Port string `validate:"required,numeric"`

	// Outbound HTTP settings shared by geocoding and forecast clients.
	HTTPTimeout        time.Duration `validate:"gt=0"`
	UpstreamMaxRetries int           `validate:"gte=0"`
	GeocodingBaseURL   string        `validate:"required,url"`
	ForecastBaseURL    string        `validate:"required,url"`

	DefaultLocation LocationConfig

	// Session retention.
	SessionMaxAge        time.Duration // idle sessions older than this are pruned
	SessionMaxCount      int           // max live sessions (0 = unlimited)
	SessionPruneInterval time.Duration `validate:"gt=0"`

	// Suggestion throttling.
	SuggestRatePerSecond float64 `validate:"gt=0"`
	SuggestBurst         int     `validate:"gt=0"`

	// Optional Google geocoding fallback.
	GoogleGeocoderAPIKey string
}

// fileConfig is the optional YAML overlay. Durations are strings such as "15m".
type fileConfig struct {
	Port               string          `yaml:"port"`
	HTTPTimeout        string          `yaml:"http_timeout"`
	UpstreamMaxRetries *int            `yaml:"upstream_max_retries"`
	GeocodingBaseURL   string          `yaml:"geocoding_base_url"`
	ForecastBaseURL    string          `yaml:"forecast_base_url"`
	DefaultLocation    *LocationConfig `yaml:"default_location"`
	Session            struct {
		MaxAge        string `yaml:"max_age"`
		MaxCount      *int   `yaml:"max_count"`
		PruneInterval string `yaml:"prune_interval"`
	} `yaml:"session"`
	Suggest struct {
		RatePerSecond float64 `yaml:"rate_per_second"`
		Burst         int     `yaml:"burst"`
	} `yaml:"suggest"`
}

var validate = validator.New()

// Defaults returns the configuration used when nothing is overridden.
func Defaults() *AppConfig {
	return &AppConfig{
		Port:             "8080",
		HTTPTimeout:      10 * time.Second,
		GeocodingBaseURL: providers.DefaultGeocodingBaseURL,
		ForecastBaseURL:  providers.DefaultForecastBaseURL,
		DefaultLocation: LocationConfig{
			Name:      "Berlin",
			Country:   "Germany",
			Latitude:  52.52,
			Longitude: 13.41,
			Timezone:  "Europe/Berlin",
		},
		SessionMaxAge:        24 * time.Hour,
		SessionMaxCount:      10000,
		SessionPruneInterval: 5 * time.Minute,
		SuggestRatePerSecond: 5,
		SuggestBurst:         10,
	}
}

// Load reads configuration from .env, an optional YAML file named by
// WEATHER_CONFIG_FILE, and the environment, in that order of precedence
// (environment wins).
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded", "error", err)
	}
	cfg := Defaults()

	if path := os.Getenv("WEATHER_CONFIG_FILE"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *AppConfig) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fc.Port != "" {
		c.Port = fc.Port
	}
	if err := setDuration(&c.HTTPTimeout, "http_timeout", fc.HTTPTimeout); err != nil {
		return err
	}
	if fc.UpstreamMaxRetries != nil {
		c.UpstreamMaxRetries = *fc.UpstreamMaxRetries
	}
	if fc.GeocodingBaseURL != "" {
		c.GeocodingBaseURL = fc.GeocodingBaseURL
	}
	if fc.ForecastBaseURL != "" {
		c.ForecastBaseURL = fc.ForecastBaseURL
	}
	if fc.DefaultLocation != nil {
		c.DefaultLocation = *fc.DefaultLocation
	}
	if err := setDuration(&c.SessionMaxAge, "session.max_age", fc.Session.MaxAge); err != nil {
		return err
	}
	if fc.Session.MaxCount != nil {
		c.SessionMaxCount = *fc.Session.MaxCount
	}
	if err := setDuration(&c.SessionPruneInterval, "session.prune_interval", fc.Session.PruneInterval); err != nil {
		return err
	}
	if fc.Suggest.RatePerSecond > 0 {
		c.SuggestRatePerSecond = fc.Suggest.RatePerSecond
	}
	if fc.Suggest.Burst > 0 {
		c.SuggestBurst = fc.Suggest.Burst
	}
	return nil
}

func (c *AppConfig) applyEnv() error {
	c.Port = getenvDefault("PORT", c.Port)
	c.GeocodingBaseURL = getenvDefault("GEOCODING_BASE_URL", c.GeocodingBaseURL)
	c.ForecastBaseURL = getenvDefault("FORECAST_BASE_URL", c.ForecastBaseURL)
	c.GoogleGeocoderAPIKey = getenvDefault("GOOGLE_GEOCODER_API_KEY", c.GoogleGeocoderAPIKey)

	c.UpstreamMaxRetries = getenvInt("UPSTREAM_MAX_RETRIES", c.UpstreamMaxRetries)
	c.SessionMaxCount = getenvInt("SESSION_MAX_COUNT", c.SessionMaxCount)
	c.SuggestBurst = getenvInt("SUGGEST_BURST", c.SuggestBurst)
	c.SuggestRatePerSecond = getenvFloat("SUGGEST_RATE_PER_SECOND", c.SuggestRatePerSecond)

	for key, dst := range map[string]*time.Duration{
		"HTTP_TIMEOUT":           &c.HTTPTimeout,
		"SESSION_MAX_AGE":        &c.SessionMaxAge,
		"SESSION_PRUNE_INTERVAL": &c.SessionPruneInterval,
	} {
		if err := setDuration(dst, key, os.Getenv(key)); err != nil {
			return err
		}
	}

	loc := &c.DefaultLocation
	loc.Name = getenvDefault("DEFAULT_LOCATION_NAME", loc.Name)
	loc.Country = getenvDefault("DEFAULT_LOCATION_COUNTRY", loc.Country)
	loc.Timezone = getenvDefault("DEFAULT_LOCATION_TIMEZONE", loc.Timezone)
	loc.Latitude = getenvFloat("DEFAULT_LOCATION_LATITUDE", loc.Latitude)
	loc.Longitude = getenvFloat("DEFAULT_LOCATION_LONGITUDE", loc.Longitude)
	return nil
}

// Backoff returns the retry policy for upstream clients.
func (c *AppConfig) Backoff() providers.BackoffConfig {
	return providers.BackoffConfig{
		MaxRetries:      c.UpstreamMaxRetries,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
	}
}

func setDuration(dst *time.Duration, name, raw string) error {
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	*dst = d
	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
