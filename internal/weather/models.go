package weather

import (
	"time"
)

// IconKind is the display bucket a WMO weather code falls into.
type IconKind string

const (
	IconClear        IconKind = "clear"
	IconPartlyCloudy IconKind = "partly_cloudy"
	IconFog          IconKind = "fog"
	IconRain         IconKind = "rain"
	IconSnow         IconKind = "snow"
	IconStorm        IconKind = "storm"
	IconOvercast     IconKind = "overcast"
)

// LocationRecord is a normalized geocoding result. It is replaced wholesale,
// never merged.
type LocationRecord struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Name        string  `json:"name"`
	DisplayName string  `json:"displayName"`
	Country     string  `json:"country"`
	Timezone    string  `json:"timezone"`
}

// Header returns the "City, Country" text shown above the current conditions.
func (l LocationRecord) Header() string {
	if l.Country == "" {
		return l.Name
	}
	return l.Name + ", " + l.Country
}

// RawLocation is a geocoding result as the upstream reports it.
type RawLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Admin1    string  `json:"admin1,omitempty"`
	Timezone  string  `json:"timezone"`
}

// CurrentConditions holds the scalar readings of a forecast, expressed in the
// units the forecast was requested with.
type CurrentConditions struct {
	Time                time.Time `json:"time"`
	Temperature         float64   `json:"temperature"`
	ApparentTemperature float64   `json:"apparentTemperature"`
	Humidity            float64   `json:"humidity"`
	WindSpeed           float64   `json:"windSpeed"`
	Precipitation       float64   `json:"precipitation"`
	WeatherCode         int       `json:"weatherCode"`
}

// DailyEntry describes one forecast day. Date is midnight in the forecast timezone.
type DailyEntry struct {
	Date        time.Time `json:"date"`
	WeatherCode int       `json:"weatherCode"`
	TempMax     float64   `json:"tempMax"`
	TempMin     float64   `json:"tempMin"`
}

// HourlyEntry describes one forecast hour.
type HourlyEntry struct {
	Time        time.Time `json:"time"`
	WeatherCode int       `json:"weatherCode"`
	Temperature float64   `json:"temperature"`
}

// Forecast is one fetched snapshot of weather data for a location.
// Hourly entries are contiguous and ascending, covering every daily entry.
type Forecast struct {
	Timezone string            `json:"timezone"`
	Units    Units             `json:"units"`
	Current  CurrentConditions `json:"current"`
	Daily    []DailyEntry      `json:"daily"`
	Hourly   []HourlyEntry     `json:"hourly"`
}

// ForecastRequest carries everything a ForecastSource needs for one fetch.
type ForecastRequest struct {
	Latitude  float64 `validate:"gte=-90,lte=90"`
	Longitude float64 `validate:"gte=-180,lte=180"`
	Timezone  string
	Units     Units
}
