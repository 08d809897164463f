package providers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

const (
	// DefaultForecastBaseURL is the public Open-Meteo forecast API.
	DefaultForecastBaseURL = "https://api.open-meteo.com/v1"

	// ForecastDays is the number of daily entries every fetch requests.
	ForecastDays = 7

	currentFields = "temperature_2m,weather_code,apparent_temperature,relative_humidity_2m,wind_speed_10m,precipitation"
	hourlyFields  = "temperature_2m,weather_code"
	dailyFields   = "weather_code,temperature_2m_max,temperature_2m_min"

	openMeteoMinuteLayout = "2006-01-02T15:04"
	openMeteoDateLayout   = "2006-01-02"
)

var validate = validator.New()

// OpenMeteoProvider implements weather.ForecastSource for Open-Meteo.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewOpenMeteoProvider creates a forecast client. An empty baseURL selects
// the public endpoint.
func NewOpenMeteoProvider(client *http.Client, baseURL string, backoff BackoffConfig) *OpenMeteoProvider {
	if baseURL == "" {
		baseURL = DefaultForecastBaseURL
	}
	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: backoff,
		},
		circuit: newBreaker("openmeteo-forecast"),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

// forecastResponse mirrors the Open-Meteo JSON document.
type forecastResponse struct {
	Timezone string `json:"timezone"`
	Current  struct {
		Time                string  `json:"time"`
		Temperature         float64 `json:"temperature_2m"`
		WeatherCode         int     `json:"weather_code"`
		ApparentTemperature float64 `json:"apparent_temperature"`
		RelativeHumidity    float64 `json:"relative_humidity_2m"`
		WindSpeed           float64 `json:"wind_speed_10m"`
		Precipitation       float64 `json:"precipitation"`
	} `json:"current"`
	Hourly struct {
		Time        []string  `json:"time"`
		Temperature []float64 `json:"temperature_2m"`
		WeatherCode []int     `json:"weather_code"`
	} `json:"hourly"`
	Daily struct {
		Time        []string  `json:"time"`
		WeatherCode []int     `json:"weather_code"`
		TempMax     []float64 `json:"temperature_2m_max"`
		TempMin     []float64 `json:"temperature_2m_min"`
	} `json:"daily"`
}

// Fetch retrieves and validates a forecast. Every failure is a *weather.FetchError.
func (p *OpenMeteoProvider) Fetch(ctx context.Context, req weather.ForecastRequest) (weather.Forecast, error) {
	if err := validate.Struct(req); err != nil {
		return weather.Forecast{}, &weather.FetchError{Err: err}
	}

	var payload forecastResponse
	if err := getJSON(ctx, p.httpCfg, p.circuit, p.forecastURL(req), &payload); err != nil {
		return weather.Forecast{}, &weather.FetchError{Err: err}
	}

	forecast, err := parseForecast(payload, req.Units)
	if err != nil {
		return weather.Forecast{}, &weather.FetchError{Err: err}
	}
	return forecast, nil
}

func (p *OpenMeteoProvider) forecastURL(req weather.ForecastRequest) string {
	tz := req.Timezone
	if tz == "" {
		tz = "auto"
	}

	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(req.Latitude, 'f', -1, 64))
	values.Set("longitude", strconv.FormatFloat(req.Longitude, 'f', -1, 64))
	values.Set("current", currentFields)
	values.Set("hourly", hourlyFields)
	values.Set("daily", dailyFields)
	values.Set("temperature_unit", req.Units.APIParam(weather.DimTemperature))
	values.Set("wind_speed_unit", req.Units.APIParam(weather.DimWindSpeed))
	values.Set("precipitation_unit", req.Units.APIParam(weather.DimPrecipitation))
	values.Set("timezone", tz)
	values.Set("forecast_days", strconv.Itoa(ForecastDays))

	return fmt.Sprintf("%s/forecast?%s", p.baseURL, values.Encode())
}

// parseForecast turns the parallel arrays of the response into per-day and
// per-hour records, rejecting misaligned or unparseable payloads.
func parseForecast(payload forecastResponse, units weather.Units) (weather.Forecast, error) {
	d, h := payload.Daily, payload.Hourly

	if len(d.Time) == 0 {
		return weather.Forecast{}, fmt.Errorf("%w: no daily entries", weather.ErrMalformedPayload)
	}
	if len(d.WeatherCode) != len(d.Time) || len(d.TempMax) != len(d.Time) || len(d.TempMin) != len(d.Time) {
		return weather.Forecast{}, fmt.Errorf("%w: daily series lengths differ (time=%d code=%d max=%d min=%d)",
			weather.ErrMalformedPayload, len(d.Time), len(d.WeatherCode), len(d.TempMax), len(d.TempMin))
	}
	if len(h.WeatherCode) != len(h.Time) || len(h.Temperature) != len(h.Time) {
		return weather.Forecast{}, fmt.Errorf("%w: hourly series lengths differ (time=%d code=%d temp=%d)",
			weather.ErrMalformedPayload, len(h.Time), len(h.WeatherCode), len(h.Temperature))
	}

	loc, err := time.LoadLocation(payload.Timezone)
	if err != nil {
		slog.Warn("unknown forecast timezone, using UTC", "timezone", payload.Timezone, "error", err)
		loc = time.UTC
	}

	currentTime, err := time.ParseInLocation(openMeteoMinuteLayout, payload.Current.Time, loc)
	if err != nil {
		return weather.Forecast{}, fmt.Errorf("%w: current time: %v", weather.ErrMalformedPayload, err)
	}

	daily := make([]weather.DailyEntry, len(d.Time))
	for i, s := range d.Time {
		date, err := time.ParseInLocation(openMeteoDateLayout, s, loc)
		if err != nil {
			return weather.Forecast{}, fmt.Errorf("%w: daily time %d: %v", weather.ErrMalformedPayload, i, err)
		}
		daily[i] = weather.DailyEntry{
			Date:        date,
			WeatherCode: d.WeatherCode[i],
			TempMax:     d.TempMax[i],
			TempMin:     d.TempMin[i],
		}
	}

	hourly := make([]weather.HourlyEntry, len(h.Time))
	for i, s := range h.Time {
		ts, err := time.ParseInLocation(openMeteoMinuteLayout, s, loc)
		if err != nil {
			return weather.Forecast{}, fmt.Errorf("%w: hourly time %d: %v", weather.ErrMalformedPayload, i, err)
		}
		hourly[i] = weather.HourlyEntry{
			Time:        ts,
			WeatherCode: h.WeatherCode[i],
			Temperature: h.Temperature[i],
		}
	}

	return weather.Forecast{
		Timezone: payload.Timezone,
		Units:    units,
		Current: weather.CurrentConditions{
			Time:                currentTime,
			Temperature:         payload.Current.Temperature,
			ApparentTemperature: payload.Current.ApparentTemperature,
			Humidity:            payload.Current.RelativeHumidity,
			WindSpeed:           payload.Current.WindSpeed,
			Precipitation:       payload.Current.Precipitation,
			WeatherCode:         payload.Current.WeatherCode,
		},
		Daily:  daily,
		Hourly: hourly,
	}, nil
}
