package openmeteo

import (
	"net/url"
	"strconv"
)

// Default hourly variable sets substituted when a request leaves the list
// empty, matching the upstream API's most useful metrics per family.
const (
	DefaultAirQualityHourly = "pm10,pm2_5,carbon_monoxide,nitrogen_dioxide,sulphur_dioxide,ozone,us_aqi,european_aqi"
	DefaultMarineHourly     = "wave_height,wave_direction,wave_period,wind_wave_height,swell_wave_height,sea_level_height_msl"
)

// ForecastRequest holds query parameters for the forecast API.
// Hourly and Daily are comma-joined variable name lists, passed through to
// the upstream API verbatim. ForecastDays is not range-checked locally; the
// upstream service enforces its 1-16 limit.
type ForecastRequest struct {
	Latitude          float64
	Longitude         float64
	TemperatureUnit   string // celsius, fahrenheit
	WindSpeedUnit     string // kmh, ms, mph, kn
	PrecipitationUnit string // mm, inch
	Timezone          string // IANA name or "auto"
	ForecastDays      int
	CurrentWeather    bool
	Hourly            string
	Daily             string
}

func (r ForecastRequest) Values() url.Values {
	v := url.Values{}
	setCoords(v, r.Latitude, r.Longitude)
	setNonEmpty(v, "temperature_unit", r.TemperatureUnit)
	setNonEmpty(v, "wind_speed_unit", r.WindSpeedUnit)
	setNonEmpty(v, "precipitation_unit", r.PrecipitationUnit)
	setNonEmpty(v, "timezone", r.Timezone)
	if r.ForecastDays > 0 {
		v.Set("forecast_days", strconv.Itoa(r.ForecastDays))
	}
	if r.CurrentWeather {
		v.Set("current_weather", "true")
	}
	setNonEmpty(v, "hourly", r.Hourly)
	setNonEmpty(v, "daily", r.Daily)
	return v
}

// GeocodeRequest holds query parameters for the geocoding search API.
type GeocodeRequest struct {
	Name     string
	Count    int
	Language string
	Format   string
}

func (r GeocodeRequest) Values() url.Values {
	v := url.Values{}
	v.Set("name", r.Name)
	if r.Count > 0 {
		v.Set("count", strconv.Itoa(r.Count))
	}
	setNonEmpty(v, "language", r.Language)
	setNonEmpty(v, "format", r.Format)
	return v
}

// HistoricalRequest holds query parameters for the archive API. StartDate
// and EndDate are ISO calendar dates (YYYY-MM-DD); ordering is not validated
// locally, a malformed range surfaces as an upstream error.
type HistoricalRequest struct {
	Latitude          float64
	Longitude         float64
	StartDate         string
	EndDate           string
	TemperatureUnit   string
	WindSpeedUnit     string
	PrecipitationUnit string
	Timezone          string
	Hourly            string
	Daily             string
}

func (r HistoricalRequest) Values() url.Values {
	v := url.Values{}
	setCoords(v, r.Latitude, r.Longitude)
	v.Set("start_date", r.StartDate)
	v.Set("end_date", r.EndDate)
	setNonEmpty(v, "temperature_unit", r.TemperatureUnit)
	setNonEmpty(v, "wind_speed_unit", r.WindSpeedUnit)
	setNonEmpty(v, "precipitation_unit", r.PrecipitationUnit)
	setNonEmpty(v, "timezone", r.Timezone)
	setNonEmpty(v, "hourly", r.Hourly)
	setNonEmpty(v, "daily", r.Daily)
	return v
}

// AirQualityRequest holds query parameters for the air quality API. An empty
// Hourly list is replaced with DefaultAirQualityHourly before the request is
// issued.
type AirQualityRequest struct {
	Latitude  float64
	Longitude float64
	Timezone  string
	Hourly    string
	Domains   string // auto, cams_global, cams_europe
}

func (r AirQualityRequest) Values() url.Values {
	v := url.Values{}
	setCoords(v, r.Latitude, r.Longitude)
	setNonEmpty(v, "timezone", r.Timezone)
	setNonEmpty(v, "domains", r.Domains)
	hourly := r.Hourly
	if hourly == "" {
		hourly = DefaultAirQualityHourly
	}
	v.Set("hourly", hourly)
	return v
}

// MarineRequest holds query parameters for the marine API. An empty Hourly
// list is replaced with DefaultMarineHourly before the request is issued.
type MarineRequest struct {
	Latitude     float64
	Longitude    float64
	Timezone     string
	Hourly       string
	Daily        string
	ForecastDays int
}

func (r MarineRequest) Values() url.Values {
	v := url.Values{}
	setCoords(v, r.Latitude, r.Longitude)
	setNonEmpty(v, "timezone", r.Timezone)
	if r.ForecastDays > 0 {
		v.Set("forecast_days", strconv.Itoa(r.ForecastDays))
	}
	hourly := r.Hourly
	if hourly == "" {
		hourly = DefaultMarineHourly
	}
	v.Set("hourly", hourly)
	setNonEmpty(v, "daily", r.Daily)
	return v
}

func setCoords(v url.Values, lat, lon float64) {
	v.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	v.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
}

func setNonEmpty(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}
