package weather

import (
	"math"
	"strconv"
	"time"
)

const (
	currentDateLayout = "Monday, Jan 2, 2006"
	shortDayLayout    = "Mon"
	longDayLayout     = "Monday"
	hourLayout        = "3 PM"

	todayLabel = "Today"
)

// CurrentView holds the formatted current-conditions fields.
type CurrentView struct {
	Date          string   `json:"date"`
	Icon          IconKind `json:"icon"`
	IconAsset     string   `json:"iconAsset"`
	Temperature   string   `json:"temperature"`
	FeelsLike     string   `json:"feelsLike"`
	Humidity      string   `json:"humidity"`
	Wind          string   `json:"wind"`
	Precipitation string   `json:"precipitation"`
}

// DailyCard is one entry of the daily summary list.
type DailyCard struct {
	Index     int      `json:"index"`
	Day       string   `json:"day"`
	Max       int      `json:"max"`
	Min       int      `json:"min"`
	Icon      IconKind `json:"icon"`
	IconAsset string   `json:"iconAsset"`
}

// DayOption is one entry of the day selector.
type DayOption struct {
	Index  int    `json:"index"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// HourlyRow is one hour of the selected day.
type HourlyRow struct {
	Time        string   `json:"time"`
	Temperature int      `json:"temperature"`
	Icon        IconKind `json:"icon"`
	IconAsset   string   `json:"iconAsset"`
}

// ForecastView is everything derived from a forecast and a selected day.
type ForecastView struct {
	TemperatureSymbol string      `json:"temperatureSymbol"`
	Current           CurrentView `json:"current"`
	Daily             []DailyCard `json:"daily"`
	Days              []DayOption `json:"days"`
	SelectedDay       int         `json:"selectedDay"`
	SelectedDayLabel  string      `json:"selectedDayLabel"`
	Hourly            []HourlyRow `json:"hourly"`
}

// BuildView derives the rendered values of f for the selected day. Symbols
// come from f.Units, the units the values were fetched in. An out-of-range
// day falls back to the first day.
func BuildView(f Forecast, day int) ForecastView {
	if day < 0 || day >= len(f.Daily) {
		day = 0
	}
	units := f.Units
	tempSym := units.Symbol(DimTemperature)

	v := ForecastView{
		TemperatureSymbol: tempSym,
		Current:           buildCurrent(f.Current, units),
		Daily:             make([]DailyCard, 0, len(f.Daily)),
		Days:              make([]DayOption, 0, len(f.Daily)),
		SelectedDay:       day,
		Hourly:            []HourlyRow{},
	}

	for i, d := range f.Daily {
		kind := Classify(d.WeatherCode)
		v.Daily = append(v.Daily, DailyCard{
			Index:     i,
			Day:       d.Date.Format(shortDayLayout),
			Max:       round(d.TempMax),
			Min:       round(d.TempMin),
			Icon:      kind,
			IconAsset: kind.Asset(),
		})
		v.Days = append(v.Days, DayOption{
			Index:  i,
			Label:  dayLabel(f.Daily, i),
			Active: i == day,
		})
	}

	if len(f.Daily) == 0 {
		return v
	}
	v.SelectedDayLabel = dayLabel(f.Daily, day)

	start, end, ok := HourlyWindow(f, day)
	if !ok {
		return v
	}
	for _, h := range f.Hourly[start:end] {
		kind := Classify(h.WeatherCode)
		v.Hourly = append(v.Hourly, HourlyRow{
			Time:        h.Time.Format(hourLayout),
			Temperature: round(h.Temperature),
			Icon:        kind,
			IconAsset:   kind.Asset(),
		})
	}
	return v
}

// HourlyWindow returns the [start, end) range of f.Hourly covering the given
// day. ok is false when no hour falls on that day.
func HourlyWindow(f Forecast, day int) (start, end int, ok bool) {
	if day < 0 || day >= len(f.Daily) {
		return 0, 0, false
	}
	start = firstHourOn(f.Hourly, f.Daily[day].Date)
	if start < 0 {
		return 0, 0, false
	}

	end = len(f.Hourly)
	if day+1 < len(f.Daily) {
		if next := firstHourOn(f.Hourly, f.Daily[day+1].Date); next >= 0 {
			end = next
		}
	}
	if end < start {
		end = start
	}
	return start, end, true
}

func buildCurrent(c CurrentConditions, units Units) CurrentView {
	kind := Classify(c.WeatherCode)
	tempSym := units.Symbol(DimTemperature)
	return CurrentView{
		Date:          c.Time.Format(currentDateLayout),
		Icon:          kind,
		IconAsset:     kind.Asset(),
		Temperature:   strconv.Itoa(round(c.Temperature)) + tempSym,
		FeelsLike:     strconv.Itoa(round(c.ApparentTemperature)) + tempSym,
		Humidity:      strconv.Itoa(round(c.Humidity)) + "%",
		Wind:          formatNumber(c.WindSpeed) + " " + units.Symbol(DimWindSpeed),
		Precipitation: formatNumber(c.Precipitation) + " " + units.Symbol(DimPrecipitation),
	}
}

func dayLabel(days []DailyEntry, i int) string {
	if i == 0 {
		return todayLabel
	}
	return days[i].Date.Format(longDayLayout)
}

func firstHourOn(hours []HourlyEntry, date time.Time) int {
	y, m, d := date.Date()
	for i, h := range hours {
		hy, hm, hd := h.Time.Date()
		if hy == y && hm == m && hd == d {
			return i
		}
	}
	return -1
}

// round rounds half up, so -2.5 becomes -2.
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
