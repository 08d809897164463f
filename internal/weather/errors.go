package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when geocoding yields no match for a query.
	ErrNotFound = errors.New("no location matches query")

	// ErrMalformedPayload marks a forecast response that failed validation.
	ErrMalformedPayload = errors.New("malformed forecast payload")

	// ErrDayOutOfRange is returned when a selected day is outside the forecast.
	ErrDayOutOfRange = errors.New("selected day out of range")

	// ErrNoForecast is returned when an action needs a forecast that has not arrived yet.
	ErrNoForecast = errors.New("no forecast loaded")
)

// ResolutionError reports a geocoding transport failure.
type ResolutionError struct {
	Query string
	Err   error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve %q: %v", e.Query, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// FetchError reports a forecast transport failure, bad status or rejected payload.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch forecast: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
