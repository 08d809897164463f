package weather

import "fmt"

// Notice is the user-visible indicator left by the last failed action.
type Notice string

const (
	NoticeNone             Notice = ""
	NoticeNoResult         Notice = "no_result"
	NoticeResolutionFailed Notice = "resolution_failed"
	NoticeFetchFailed      Notice = "fetch_failed"
)

// State is one immutable dashboard snapshot. Every user action produces a new
// State through Reduce; nothing mutates a State in place.
type State struct {
	SessionID   string         `json:"sessionId"`
	Location    LocationRecord `json:"location"`
	Units       Units          `json:"units"`
	Forecast    *Forecast      `json:"-"`
	SelectedDay int            `json:"selectedDay"`
	Notice      Notice         `json:"notice,omitempty"`

	// Generation increases on every search and on every action that requires
	// a new forecast. Settled is the last generation whose search or fetch
	// completed either way.
	Generation uint64 `json:"generation"`
	Settled    uint64 `json:"settled"`
}

// Pending reports whether a search or fetch issued for the current generation is still outstanding.
func (s State) Pending() bool {
	return s.Settled != s.Generation
}

// Action is an input to Reduce.
type Action interface {
	isAction()
}

// SetLocation replaces the current location and requests a new forecast.
type SetLocation struct {
	Location LocationRecord
}

// SetUnitSystem switches all units together and requests a new forecast.
type SetUnitSystem struct {
	System UnitSystem
}

// SelectDay chooses the day whose hourly detail is shown.
type SelectDay struct {
	Index int
}

// FetchSucceeded delivers a forecast fetched under Generation.
type FetchSucceeded struct {
	Generation uint64
	Forecast   Forecast
}

// FetchFailed reports that the fetch issued under Generation failed.
type FetchFailed struct {
	Generation uint64
	Err        error
}

// SearchIssued starts an exact search. It supersedes every outstanding
// search and fetch.
type SearchIssued struct{}

// LocationResolved delivers the match of the search issued under Generation.
// The forecast for it is fetched under the same generation.
type LocationResolved struct {
	Generation uint64
	Location   LocationRecord
}

// LocationNotFound records that the search issued under Generation had no match.
type LocationNotFound struct {
	Generation uint64
}

// ResolutionFailed records a geocoding transport failure of the search
// issued under Generation.
type ResolutionFailed struct {
	Generation uint64
	Err        error
}

func (SetLocation) isAction()      {}
func (SetUnitSystem) isAction()    {}
func (SelectDay) isAction()        {}
func (FetchSucceeded) isAction()   {}
func (FetchFailed) isAction()      {}
func (SearchIssued) isAction()     {}
func (LocationResolved) isAction() {}
func (LocationNotFound) isAction() {}
func (ResolutionFailed) isAction() {}

// Reduce is the single update function of the dashboard. It returns the
// unchanged state and an error when the action is not applicable.
func Reduce(s State, a Action) (State, error) {
	switch a := a.(type) {
	case SetLocation:
		s.Location = a.Location
		s.Generation++
		return s, nil

	case SetUnitSystem:
		s.Units = s.Units.SetSystem(a.System)
		s.Generation++
		return s, nil

	case SelectDay:
		if s.Forecast == nil {
			return s, ErrNoForecast
		}
		if a.Index < 0 || a.Index >= len(s.Forecast.Daily) {
			return s, fmt.Errorf("%w: %d not in [0, %d)", ErrDayOutOfRange, a.Index, len(s.Forecast.Daily))
		}
		s.SelectedDay = a.Index
		return s, nil

	case FetchSucceeded:
		if a.Generation != s.Generation {
			return s, nil
		}
		f := a.Forecast
		s.Forecast = &f
		s.SelectedDay = 0
		s.Notice = NoticeNone
		s.Settled = a.Generation
		return s, nil

	case FetchFailed:
		if a.Generation != s.Generation {
			return s, nil
		}
		s.Notice = NoticeFetchFailed
		s.Settled = a.Generation
		return s, nil

	case SearchIssued:
		s.Generation++
		return s, nil

	case LocationResolved:
		if a.Generation != s.Generation {
			return s, nil
		}
		s.Location = a.Location
		return s, nil

	case LocationNotFound:
		if a.Generation != s.Generation {
			return s, nil
		}
		s.Notice = NoticeNoResult
		s.Settled = a.Generation
		return s, nil

	case ResolutionFailed:
		if a.Generation != s.Generation {
			return s, nil
		}
		s.Notice = NoticeResolutionFailed
		s.Settled = a.Generation
		return s, nil
	}
	return s, fmt.Errorf("unknown action %T", a)
}

// DashboardView is the full set of output slots for one snapshot.
type DashboardView struct {
	Location        string        `json:"location"`
	DisplayName     string        `json:"displayName"`
	Timezone        string        `json:"timezone"`
	System          UnitSystem    `json:"system"`
	Units           Units         `json:"units"`
	UnitSwitchLabel string        `json:"unitSwitchLabel"`
	Notice          Notice        `json:"notice,omitempty"`
	Pending         bool          `json:"pending"`
	Forecast        *ForecastView `json:"forecast,omitempty"`
}

// View derives the output slots of s.
func (s State) View() DashboardView {
	v := DashboardView{
		Location:        s.Location.Header(),
		DisplayName:     s.Location.DisplayName,
		Timezone:        s.Location.Timezone,
		System:          s.Units.System(),
		Units:           s.Units,
		UnitSwitchLabel: s.Units.SwitchLabel(),
		Notice:          s.Notice,
		Pending:         s.Pending(),
	}
	if s.Forecast != nil {
		fv := BuildView(*s.Forecast, s.SelectedDay)
		v.Forecast = &fv
		v.Timezone = s.Forecast.Timezone
	}
	return v
}
