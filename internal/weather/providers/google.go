package providers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// GoogleGeocoder implements weather.Geocoder on top of the Google Geocoding
// API. It yields at most one match and no timezone, so forecasts for its
// results are requested with timezone=auto.
type GoogleGeocoder struct {
	name string
}

// NewGoogleGeocoder configures the package-level key used by kelvins/geocoder.
func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	geocoder.ApiKey = apiKey
	return &GoogleGeocoder{name: "google-geocoding"}
}

func (g *GoogleGeocoder) Name() string {
	return g.name
}

// Search ignores ctx: the underlying client has no context support.
func (g *GoogleGeocoder) Search(_ context.Context, query string, limit int) ([]weather.RawLocation, error) {
	if limit <= 0 {
		return []weather.RawLocation{}, nil
	}

	loc, err := geocoder.Geocoding(geocoder.Address{City: query})
	if err != nil {
		return nil, err
	}

	raw := weather.RawLocation{
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		Name:      query,
	}

	addresses, err := geocoder.GeocodingReverse(loc)
	if err != nil {
		slog.Debug("reverse geocoding failed, keeping query as name", "query", query, "error", err)
	} else if len(addresses) > 0 {
		a := addresses[0]
		if a.City != "" {
			raw.Name = a.City
		}
		raw.Admin1 = a.State
		raw.Country = a.Country
	}
	return []weather.RawLocation{raw}, nil
}

// FallbackGeocoder asks primary first and secondary only when primary fails.
// Empty results from primary are final.
type FallbackGeocoder struct {
	primary   weather.Geocoder
	secondary weather.Geocoder
}

func NewFallbackGeocoder(primary, secondary weather.Geocoder) *FallbackGeocoder {
	return &FallbackGeocoder{primary: primary, secondary: secondary}
}

func (f *FallbackGeocoder) Name() string {
	return f.primary.Name() + "+" + f.secondary.Name()
}

func (f *FallbackGeocoder) Search(ctx context.Context, query string, limit int) ([]weather.RawLocation, error) {
	results, err := f.primary.Search(ctx, query, limit)
	if err == nil {
		return results, nil
	}
	slog.Warn("primary geocoder failed, trying fallback", "primary", f.primary.Name(), "secondary", f.secondary.Name(), "error", err)

	results, ferr := f.secondary.Search(ctx, query, limit)
	if ferr != nil {
		return nil, errors.Join(err, ferr)
	}
	return results, nil
}
