package weather

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type searchCall struct {
	query string
	limit int
}

type fakeGeocoder struct {
	results []RawLocation
	err     error
	calls   []searchCall
}

func (g *fakeGeocoder) Name() string { return "fake" }

func (g *fakeGeocoder) Search(_ context.Context, query string, limit int) ([]RawLocation, error) {
	g.calls = append(g.calls, searchCall{query: query, limit: limit})
	if g.err != nil {
		return nil, g.err
	}
	if len(g.results) > limit {
		return g.results[:limit], nil
	}
	return g.results, nil
}

var berlin = RawLocation{Latitude: 52.52, Longitude: 13.41, Name: "Berlin", Admin1: "Land Berlin", Country: "Germany", Timezone: "Europe/Berlin"}

func TestResolveOne(t *testing.T) {
	g := &fakeGeocoder{results: []RawLocation{berlin, {Name: "Berlin", Country: "United States"}}}
	r := NewResolver(g)

	loc, err := r.ResolveOne(context.Background(), "  Berlin ")
	require.NoError(t, err)
	assert.Equal(t, "Berlin, Land Berlin, Germany", loc.DisplayName)
	assert.Equal(t, "Berlin, Germany", loc.Header())
	assert.Equal(t, 52.52, loc.Latitude)
	assert.Equal(t, []searchCall{{query: "Berlin", limit: 1}}, g.calls)
}

func TestResolveOneEmptyQuery(t *testing.T) {
	g := &fakeGeocoder{results: []RawLocation{berlin}}

	_, err := NewResolver(g).ResolveOne(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, g.calls)
}

func TestResolveOneNoMatch(t *testing.T) {
	_, err := NewResolver(&fakeGeocoder{}).ResolveOne(context.Background(), "Xyzzyville")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveOneTransportFailure(t *testing.T) {
	boom := errors.New("connection refused")

	_, err := NewResolver(&fakeGeocoder{err: boom}).ResolveOne(context.Background(), "Berlin")

	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "Berlin", resErr.Query)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestSuggestShortQueryMakesNoRequest(t *testing.T) {
	g := &fakeGeocoder{results: []RawLocation{berlin}}
	r := NewResolver(g)

	for _, q := range []string{"", "b", "be", "  be  ", "ö"} {
		out := r.Suggest(context.Background(), q)
		assert.NotNil(t, out)
		assert.Empty(t, out)
	}
	assert.Empty(t, g.calls)
}

func TestSuggestKeepsOrderAndLimit(t *testing.T) {
	var raw []RawLocation
	for _, name := range []string{"Berlin", "Bern", "Bergen", "Berat", "Berdyansk", "Berkeley", "Bertoua"} {
		raw = append(raw, RawLocation{Name: name, Country: "X"})
	}
	g := &fakeGeocoder{results: raw}

	out := NewResolver(g).Suggest(context.Background(), "ber")
	require.Len(t, out, 5)
	assert.Equal(t, "Berlin, X", out[0].DisplayName)
	assert.Equal(t, "Berdyansk, X", out[4].DisplayName)
	assert.Equal(t, []searchCall{{query: "ber", limit: 5}}, g.calls)
}

func TestSuggestFailureYieldsEmpty(t *testing.T) {
	out := NewResolver(&fakeGeocoder{err: errors.New("timeout")}).Suggest(context.Background(), "Berlin")
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestNormalizeDisplayName(t *testing.T) {
	tests := []struct {
		raw  RawLocation
		want string
	}{
		{RawLocation{Name: "Berlin", Admin1: "Land Berlin", Country: "Germany"}, "Berlin, Land Berlin, Germany"},
		{RawLocation{Name: "Monaco", Country: "Monaco"}, "Monaco, Monaco"},
		{RawLocation{Name: "Nowhere"}, "Nowhere"},
		{RawLocation{Name: "Springfield", Admin1: "Illinois"}, "Springfield, Illinois"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.raw).DisplayName)
	}

	assert.Equal(t, "Nowhere", Normalize(RawLocation{Name: "Nowhere"}).Header())
}

func TestResolverSplitsExactAndSuggestionGeocoders(t *testing.T) {
	exact := &fakeGeocoder{results: []RawLocation{berlin}}
	suggest := &fakeGeocoder{results: []RawLocation{berlin}}
	r := NewResolverWithSuggester(exact, suggest)

	_, err := r.ResolveOne(context.Background(), "Berlin")
	require.NoError(t, err)
	r.Suggest(context.Background(), "Ber")

	assert.Equal(t, []searchCall{{query: "Berlin", limit: 1}}, exact.calls)
	assert.Equal(t, []searchCall{{query: "Ber", limit: 5}}, suggest.calls)
}
