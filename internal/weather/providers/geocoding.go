package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// DefaultGeocodingBaseURL is the public Open-Meteo geocoding API.
const DefaultGeocodingBaseURL = "https://geocoding-api.open-meteo.com/v1"

// OpenMeteoGeocoder implements weather.Geocoder for Open-Meteo geocoding.
type OpenMeteoGeocoder struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoGeocoder(client *http.Client, baseURL string, backoff BackoffConfig) *OpenMeteoGeocoder {
	if baseURL == "" {
		baseURL = DefaultGeocodingBaseURL
	}
	return &OpenMeteoGeocoder{
		name:    "openmeteo-geocoding",
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: backoff,
		},
		circuit: newBreaker("openmeteo-geocoding"),
	}
}

func (g *OpenMeteoGeocoder) Name() string {
	return g.name
}

// Search returns at most limit matches. A response without results is an
// empty slice, not an error.
func (g *OpenMeteoGeocoder) Search(ctx context.Context, query string, limit int) ([]weather.RawLocation, error) {
	values := url.Values{}
	values.Set("name", query)
	values.Set("count", strconv.Itoa(limit))
	values.Set("language", "en")
	values.Set("format", "json")

	u := fmt.Sprintf("%s/search?%s", g.baseURL, values.Encode())

	var payload struct {
		Results []weather.RawLocation `json:"results"`
	}
	if err := getJSON(ctx, g.httpCfg, g.circuit, u, &payload); err != nil {
		return nil, err
	}

	if len(payload.Results) > limit {
		payload.Results = payload.Results[:limit]
	}
	return payload.Results, nil
}
