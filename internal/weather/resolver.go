package weather

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/i474232898/weather-dashboard/internal/common"
)

const (
	// MinSuggestQueryLen is the shortest query that produces suggestions.
	MinSuggestQueryLen = 3

	suggestLimit = 5
)

// Resolver turns free-text queries into LocationRecords.
type Resolver struct {
	geocoder  Geocoder
	suggester Geocoder
}

// NewResolver creates a Resolver backed by g for both exact searches and
// suggestions.
func NewResolver(g Geocoder) *Resolver {
	return NewResolverWithSuggester(g, g)
}

// NewResolverWithSuggester serves exact searches from g and suggestions from
// suggester, typically g behind a rate limiter.
func NewResolverWithSuggester(g, suggester Geocoder) *Resolver {
	return &Resolver{geocoder: g, suggester: suggester}
}

// ResolveOne returns the best match for query. An empty query or an empty
// result set is ErrNotFound; transport failures are *ResolutionError.
func (r *Resolver) ResolveOne(ctx context.Context, query string) (LocationRecord, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return LocationRecord{}, ErrNotFound
	}

	results, err := r.geocoder.Search(ctx, query, 1)
	if err != nil {
		return LocationRecord{}, &ResolutionError{Query: query, Err: err}
	}
	if len(results) == 0 {
		return LocationRecord{}, ErrNotFound
	}
	return Normalize(results[0]), nil
}

// Suggest returns up to five candidates in upstream order. Short queries and
// any upstream failure yield an empty slice.
func (r *Resolver) Suggest(ctx context.Context, query string) []LocationRecord {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinSuggestQueryLen {
		return []LocationRecord{}
	}

	results, err := r.suggester.Search(ctx, query, suggestLimit)
	if err != nil {
		slog.Warn("suggestion lookup failed", "geocoder", r.suggester.Name(), "query", query, "error", err)
		return []LocationRecord{}
	}

	out := make([]LocationRecord, 0, len(results))
	for _, raw := range results {
		out = append(out, Normalize(raw))
	}
	return out
}

// Normalize builds a LocationRecord with display name "name[, admin1][, country]".
func Normalize(raw RawLocation) LocationRecord {
	return LocationRecord{
		Latitude:    raw.Latitude,
		Longitude:   raw.Longitude,
		Name:        raw.Name,
		DisplayName: common.JoinNonEmpty(", ", raw.Name, raw.Admin1, raw.Country),
		Country:     raw.Country,
		Timezone:    raw.Timezone,
	}
}
