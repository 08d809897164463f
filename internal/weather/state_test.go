package weather

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedState(t *testing.T) State {
	t.Helper()
	f := sampleForecast(t)
	return State{
		SessionID:   "s1",
		Units:       DefaultUnits(),
		Forecast:    &f,
		SelectedDay: 3,
		Generation:  4,
		Settled:     4,
	}
}

func TestReduceSetLocationStartsNewGeneration(t *testing.T) {
	s := loadedState(t)
	loc := LocationRecord{Name: "Paris", Country: "France", Latitude: 48.85, Longitude: 2.35}

	next, err := Reduce(s, SetLocation{Location: loc})
	require.NoError(t, err)
	assert.Equal(t, loc, next.Location)
	assert.Equal(t, uint64(5), next.Generation)
	assert.True(t, next.Pending())
	// Previous forecast stays visible until the new one arrives.
	assert.Same(t, s.Forecast, next.Forecast)

	// The input snapshot is untouched.
	assert.Equal(t, uint64(4), s.Generation)
}

func TestReduceSetUnitSystemChangesAllDimensions(t *testing.T) {
	next, err := Reduce(loadedState(t), SetUnitSystem{System: Imperial})
	require.NoError(t, err)
	assert.Equal(t, Units{Temperature: Fahrenheit, WindSpeed: MilesPerHour, Precipitation: Inches}, next.Units)
	assert.Equal(t, uint64(5), next.Generation)
}

func TestReduceFetchSucceededResetsDay(t *testing.T) {
	s, err := Reduce(loadedState(t), SetUnitSystem{System: Imperial})
	require.NoError(t, err)
	s.Notice = NoticeFetchFailed

	f := sampleForecast(t)
	f.Units = s.Units
	next, err := Reduce(s, FetchSucceeded{Generation: s.Generation, Forecast: f})
	require.NoError(t, err)

	require.NotNil(t, next.Forecast)
	assert.Equal(t, Imperial, next.Forecast.Units.System())
	assert.Equal(t, 0, next.SelectedDay)
	assert.Equal(t, NoticeNone, next.Notice)
	assert.False(t, next.Pending())
}

func TestReduceDiscardsStaleResults(t *testing.T) {
	s := loadedState(t)
	s.Generation = 6

	f := sampleForecast(t)
	f.Timezone = "Asia/Tokyo"

	next, err := Reduce(s, FetchSucceeded{Generation: 5, Forecast: f})
	require.NoError(t, err)
	assert.Equal(t, s, next)

	next, err = Reduce(s, FetchFailed{Generation: 5, Err: errors.New("boom")})
	require.NoError(t, err)
	assert.Equal(t, s, next)
}

func TestReduceFetchFailedKeepsForecast(t *testing.T) {
	s := loadedState(t)
	s.Generation++

	next, err := Reduce(s, FetchFailed{Generation: s.Generation, Err: errors.New("boom")})
	require.NoError(t, err)
	assert.Same(t, s.Forecast, next.Forecast)
	assert.Equal(t, 3, next.SelectedDay)
	assert.Equal(t, NoticeFetchFailed, next.Notice)
	assert.False(t, next.Pending())
}

func TestReduceSelectDay(t *testing.T) {
	s := loadedState(t)

	next, err := Reduce(s, SelectDay{Index: 6})
	require.NoError(t, err)
	assert.Equal(t, 6, next.SelectedDay)
	assert.Equal(t, s.Generation, next.Generation)

	_, err = Reduce(s, SelectDay{Index: 7})
	assert.ErrorIs(t, err, ErrDayOutOfRange)

	_, err = Reduce(s, SelectDay{Index: -1})
	assert.ErrorIs(t, err, ErrDayOutOfRange)

	_, err = Reduce(State{}, SelectDay{Index: 0})
	assert.ErrorIs(t, err, ErrNoForecast)
}

func TestReduceNotices(t *testing.T) {
	s, err := Reduce(loadedState(t), SearchIssued{})
	require.NoError(t, err)
	assert.True(t, s.Pending())

	next, err := Reduce(s, LocationNotFound{Generation: s.Generation})
	require.NoError(t, err)
	assert.Equal(t, NoticeNoResult, next.Notice)
	assert.Same(t, s.Forecast, next.Forecast)
	assert.Equal(t, s.Generation, next.Generation)
	assert.False(t, next.Pending())

	next, err = Reduce(s, ResolutionFailed{Generation: s.Generation, Err: errors.New("dns")})
	require.NoError(t, err)
	assert.Equal(t, NoticeResolutionFailed, next.Notice)
	assert.False(t, next.Pending())
}

func TestReduceSearchCompletions(t *testing.T) {
	s := loadedState(t)
	issued, err := Reduce(s, SearchIssued{})
	require.NoError(t, err)
	assert.Equal(t, s.Generation+1, issued.Generation)

	paris := LocationRecord{Name: "Paris", Country: "France"}
	next, err := Reduce(issued, LocationResolved{Generation: issued.Generation, Location: paris})
	require.NoError(t, err)
	assert.Equal(t, paris, next.Location)
	// The forecast for the match is fetched under the same generation.
	assert.Equal(t, issued.Generation, next.Generation)
	assert.True(t, next.Pending())
}

func TestReduceDiscardsStaleSearchCompletions(t *testing.T) {
	older, err := Reduce(loadedState(t), SearchIssued{})
	require.NoError(t, err)
	newer, err := Reduce(older, SearchIssued{})
	require.NoError(t, err)

	for _, a := range []Action{
		LocationResolved{Generation: older.Generation, Location: LocationRecord{Name: "London"}},
		LocationNotFound{Generation: older.Generation},
		ResolutionFailed{Generation: older.Generation, Err: errors.New("dns")},
	} {
		next, err := Reduce(newer, a)
		require.NoError(t, err)
		assert.Equal(t, newer, next, "%T", a)
	}
}

func TestStateView(t *testing.T) {
	s := loadedState(t)
	s.Location = Normalize(RawLocation{Name: "Berlin", Admin1: "Land Berlin", Country: "Germany", Timezone: "Europe/Berlin"})

	v := s.View()
	assert.Equal(t, "Berlin, Germany", v.Location)
	assert.Equal(t, "Berlin, Land Berlin, Germany", v.DisplayName)
	assert.Equal(t, Metric, v.System)
	assert.Equal(t, "Switch to Imperial", v.UnitSwitchLabel)
	assert.False(t, v.Pending)
	require.NotNil(t, v.Forecast)
	assert.Equal(t, 3, v.Forecast.SelectedDay)
	assert.Equal(t, "Sunday", v.Forecast.SelectedDayLabel)

	assert.Nil(t, State{Units: DefaultUnits()}.View().Forecast)
}
