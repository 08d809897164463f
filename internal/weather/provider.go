package weather

import (
	"context"
)

// Geocoder abstracts a place-name search backend (e.g. Open-Meteo geocoding).
type Geocoder interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]RawLocation, error)
}

// ForecastSource abstracts a forecast backend.
type ForecastSource interface {
	Name() string
	Fetch(ctx context.Context, req ForecastRequest) (Forecast, error)
}

// Store is the contract the in-memory session store must satisfy.
type Store interface {
	Save(state State)
	Get(id string) (State, error)
	// Update applies fn to the stored state and commits its result atomically.
	Update(id string, fn func(State) (State, error)) (State, error)
	Delete(id string) error
}
