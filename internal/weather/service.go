package weather

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
)

// Service drives dashboard sessions: it resolves locations, fetches forecasts
// and commits every change to the store through Reduce.
type Service struct {
	store           Store
	resolver        *Resolver
	forecasts       ForecastSource
	defaultLocation LocationRecord
}

// NewService creates a new Service.
func NewService(store Store, resolver *Resolver, forecasts ForecastSource, defaultLocation LocationRecord) *Service {
	return &Service{
		store:           store,
		resolver:        resolver,
		forecasts:       forecasts,
		defaultLocation: defaultLocation,
	}
}

// Open starts a session at the default location and performs the initial
// fetch. A failed fetch still returns the stored session together with the error.
func (s *Service) Open(ctx context.Context) (State, error) {
	st := State{
		SessionID:  uuid.NewString(),
		Location:   s.defaultLocation,
		Units:      DefaultUnits(),
		Generation: 1,
	}
	s.store.Save(st)
	slog.Debug("session opened", "session", st.SessionID, "location", st.Location.Header())

	return s.refresh(ctx, st)
}

// Snapshot returns the current state of a session.
func (s *Service) Snapshot(id string) (State, error) {
	return s.store.Get(id)
}

// Close discards a session.
func (s *Service) Close(id string) error {
	return s.store.Delete(id)
}

// Search resolves query and, on a match, switches the session to it.
// ErrNotFound and *ResolutionError leave the forecast untouched and set a notice.
// When a newer action supersedes the search, its outcome is dropped and the
// newer state is returned without error.
func (s *Service) Search(ctx context.Context, id, query string) (State, error) {
	st, err := s.dispatch(id, SearchIssued{})
	if err != nil {
		return State{}, err
	}

	loc, resErr := s.resolver.ResolveOne(ctx, query)
	var act Action
	switch {
	case errors.Is(resErr, ErrNotFound):
		act = LocationNotFound{Generation: st.Generation}
	case resErr != nil:
		act = ResolutionFailed{Generation: st.Generation, Err: resErr}
	default:
		act = LocationResolved{Generation: st.Generation, Location: loc}
	}

	next, stale, err := s.commit(id, st.Generation, act)
	if err != nil {
		return State{}, err
	}
	if stale {
		slog.Debug("discarding stale search", "session", id, "query", query, "generation", st.Generation, "current", next.Generation)
		return next, nil
	}
	if resErr != nil {
		if !errors.Is(resErr, ErrNotFound) {
			slog.Warn("location resolution failed", "session", id, "query", query, "error", resErr)
		}
		return next, resErr
	}
	return s.refresh(ctx, next)
}

// PickLocation switches the session to an already resolved location.
func (s *Service) PickLocation(ctx context.Context, id string, loc LocationRecord) (State, error) {
	st, err := s.dispatch(id, SetLocation{Location: loc})
	if err != nil {
		return State{}, err
	}
	return s.refresh(ctx, st)
}

// SetUnits switches the unit system and refetches in the new units.
func (s *Service) SetUnits(ctx context.Context, id string, system UnitSystem) (State, error) {
	st, err := s.dispatch(id, SetUnitSystem{System: system})
	if err != nil {
		return State{}, err
	}
	return s.refresh(ctx, st)
}

// SelectDay changes the day whose hourly detail is shown. It never fetches.
func (s *Service) SelectDay(id string, index int) (State, error) {
	return s.dispatch(id, SelectDay{Index: index})
}

// Suggest returns location candidates for a partial query.
func (s *Service) Suggest(ctx context.Context, query string) []LocationRecord {
	return s.resolver.Suggest(ctx, query)
}

func (s *Service) dispatch(id string, a Action) (State, error) {
	return s.store.Update(id, func(cur State) (State, error) {
		return Reduce(cur, a)
	})
}

// refresh fetches a forecast for st and commits the outcome under
// st.Generation. If a newer action has been dispatched meanwhile, the outcome
// is dropped and the newer state is returned.
func (s *Service) refresh(ctx context.Context, st State) (State, error) {
	forecast, fetchErr := s.forecasts.Fetch(ctx, ForecastRequest{
		Latitude:  st.Location.Latitude,
		Longitude: st.Location.Longitude,
		Timezone:  st.Location.Timezone,
		Units:     st.Units,
	})

	var act Action
	if fetchErr != nil {
		var fe *FetchError
		if !errors.As(fetchErr, &fe) {
			fetchErr = &FetchError{Err: fetchErr}
		}
		act = FetchFailed{Generation: st.Generation, Err: fetchErr}
	} else {
		act = FetchSucceeded{Generation: st.Generation, Forecast: forecast}
	}

	next, stale, err := s.commit(st.SessionID, st.Generation, act)
	if err != nil {
		return State{}, err
	}

	if stale {
		slog.Debug("discarding stale forecast", "session", st.SessionID, "generation", st.Generation, "current", next.Generation)
		return next, nil
	}
	if fetchErr != nil {
		slog.Warn("forecast fetch failed", "session", st.SessionID, "source", s.forecasts.Name(), "error", fetchErr)
		return next, fetchErr
	}
	return next, nil
}

// commit applies a completion issued under gen. stale reports that a newer
// action had already been dispatched, in which case Reduce leaves the state as is.
func (s *Service) commit(id string, gen uint64, a Action) (next State, stale bool, err error) {
	next, err = s.store.Update(id, func(cur State) (State, error) {
		stale = cur.Generation != gen
		return Reduce(cur, a)
	})
	return next, stale, err
}
