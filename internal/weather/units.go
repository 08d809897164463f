package weather

import (
	"fmt"
	"strings"
)

// UnitSystem is the linked metric/imperial choice.
type UnitSystem string

const (
	Metric   UnitSystem = "metric"
	Imperial UnitSystem = "imperial"
)

// Dimension names one of the three independently displayed quantities.
type Dimension string

const (
	DimTemperature   Dimension = "temperature"
	DimWindSpeed     Dimension = "wind_speed"
	DimPrecipitation Dimension = "precipitation"
)

type TemperatureUnit string

const (
	Celsius    TemperatureUnit = "celsius"
	Fahrenheit TemperatureUnit = "fahrenheit"
)

type WindSpeedUnit string

const (
	KmPerHour    WindSpeedUnit = "kmh"
	MilesPerHour WindSpeedUnit = "mph"
)

type PrecipitationUnit string

const (
	Millimeters PrecipitationUnit = "mm"
	Inches      PrecipitationUnit = "inch"
)

// Units holds the three unit selections. The zero value is not valid; use
// DefaultUnits.
type Units struct {
	Temperature   TemperatureUnit   `json:"temperature"`
	WindSpeed     WindSpeedUnit     `json:"windSpeed"`
	Precipitation PrecipitationUnit `json:"precipitation"`
}

// DefaultUnits returns the metric selection used at startup.
func DefaultUnits() Units {
	return Units{}.SetSystem(Metric)
}

// ParseSystem accepts "metric" or "imperial", case-insensitively.
func ParseSystem(s string) (UnitSystem, error) {
	switch UnitSystem(strings.ToLower(strings.TrimSpace(s))) {
	case Metric:
		return Metric, nil
	case Imperial:
		return Imperial, nil
	}
	return "", fmt.Errorf("unknown unit system %q", s)
}

// SetSystem returns a copy with all three dimensions moved to the system.
func (u Units) SetSystem(system UnitSystem) Units {
	if system == Imperial {
		return Units{Temperature: Fahrenheit, WindSpeed: MilesPerHour, Precipitation: Inches}
	}
	return Units{Temperature: Celsius, WindSpeed: KmPerHour, Precipitation: Millimeters}
}

// System reports the system the temperature unit belongs to.
func (u Units) System() UnitSystem {
	if u.Temperature == Fahrenheit {
		return Imperial
	}
	return Metric
}

// Symbol returns the display suffix for a dimension.
func (u Units) Symbol(d Dimension) string {
	switch d {
	case DimTemperature:
		if u.Temperature == Fahrenheit {
			return "°F"
		}
		return "°C"
	case DimWindSpeed:
		if u.WindSpeed == MilesPerHour {
			return "mph"
		}
		return "km/h"
	case DimPrecipitation:
		if u.Precipitation == Inches {
			return "in"
		}
		return "mm"
	}
	return ""
}

// APIParam returns the value the forecast API expects for a dimension.
func (u Units) APIParam(d Dimension) string {
	switch d {
	case DimTemperature:
		if u.Temperature == Fahrenheit {
			return string(Fahrenheit)
		}
		return string(Celsius)
	case DimWindSpeed:
		if u.WindSpeed == MilesPerHour {
			return string(MilesPerHour)
		}
		return string(KmPerHour)
	case DimPrecipitation:
		if u.Precipitation == Inches {
			return string(Inches)
		}
		return string(Millimeters)
	}
	return ""
}

// SwitchLabel is the text of the toggle that flips to the other system.
func (u Units) SwitchLabel() string {
	if u.System() == Metric {
		return "Switch to Imperial"
	}
	return "Switch to Metric"
}
