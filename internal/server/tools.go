package server

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"openmeteo-mcp/internal/openmeteo"
	"openmeteo-mcp/internal/weathercode"
)

var validate = validator.New()

// handlers binds the tool implementations to one Open-Meteo client.
type handlers struct {
	client *openmeteo.Client
}

// ForecastInput is the argument shape for get_weather_forecast. Coordinates
// are range-checked locally; forecast_days is passed through and the upstream
// service enforces its 1-16 range.
type ForecastInput struct {
	Latitude          float64 `json:"latitude" validate:"gte=-90,lte=90" jsonschema:"Latitude in decimal degrees (-90 to 90)"`
	Longitude         float64 `json:"longitude" validate:"gte=-180,lte=180" jsonschema:"Longitude in decimal degrees (-180 to 180)"`
	TemperatureUnit   string  `json:"temperature_unit,omitempty" jsonschema:"Temperature unit: celsius (default) or fahrenheit"`
	WindSpeedUnit     string  `json:"wind_speed_unit,omitempty" jsonschema:"Wind speed unit: kmh (default), ms, mph or kn"`
	PrecipitationUnit string  `json:"precipitation_unit,omitempty" jsonschema:"Precipitation unit: mm (default) or inch"`
	Timezone          string  `json:"timezone,omitempty" jsonschema:"Timezone name (e.g. Europe/London) or auto (default)"`
	ForecastDays      int     `json:"forecast_days,omitempty" jsonschema:"Number of forecast days (1-16, default 7)"`
	CurrentWeather    *bool   `json:"current_weather,omitempty" jsonschema:"Include current conditions (default true)"`
	Hourly            string  `json:"hourly,omitempty" jsonschema:"Comma-separated hourly variables, e.g. temperature_2m,precipitation,wind_speed_10m"`
	Daily             string  `json:"daily,omitempty" jsonschema:"Comma-separated daily variables, e.g. temperature_2m_max,temperature_2m_min,precipitation_sum"`
}

func (h *handlers) getWeatherForecast(ctx context.Context, _ *mcp.CallToolRequest, in ForecastInput) (*mcp.CallToolResult, any, error) {
	if err := validate.Struct(in); err != nil {
		return nil, nil, err
	}
	forecast, err := h.client.Forecast(ctx, openmeteo.ForecastRequest{
		Latitude:          in.Latitude,
		Longitude:         in.Longitude,
		TemperatureUnit:   orDefault(in.TemperatureUnit, "celsius"),
		WindSpeedUnit:     orDefault(in.WindSpeedUnit, "kmh"),
		PrecipitationUnit: orDefault(in.PrecipitationUnit, "mm"),
		Timezone:          orDefault(in.Timezone, "auto"),
		ForecastDays:      orDefaultInt(in.ForecastDays, 7),
		CurrentWeather:    in.CurrentWeather == nil || *in.CurrentWeather,
		Hourly:            in.Hourly,
		Daily:             in.Daily,
	})
	if err != nil {
		return nil, nil, err
	}
	return nil, forecast, nil
}

// GeocodeInput is the argument shape for geocode_location.
type GeocodeInput struct {
	Name     string `json:"name" validate:"required" jsonschema:"Location name to search for, e.g. London or Paris, France"`
	Count    int    `json:"count,omitempty" jsonschema:"Maximum number of results (1-100, default 10)"`
	Language string `json:"language,omitempty" jsonschema:"Language code for result names (default en)"`
	Format   string `json:"format,omitempty" jsonschema:"Response format, always json"`
}

func (h *handlers) geocodeLocation(ctx context.Context, _ *mcp.CallToolRequest, in GeocodeInput) (*mcp.CallToolResult, any, error) {
	if err := validate.Struct(in); err != nil {
		return nil, nil, err
	}
	resp, err := h.client.Geocode(ctx, openmeteo.GeocodeRequest{
		Name:     in.Name,
		Count:    orDefaultInt(in.Count, 10),
		Language: orDefault(in.Language, "en"),
		Format:   orDefault(in.Format, "json"),
	})
	if err != nil {
		return nil, nil, err
	}
	return nil, resp, nil
}

// HistoricalInput is the argument shape for get_historical_weather. Date
// ordering is not validated here; a start after the end surfaces as an
// upstream error.
type HistoricalInput struct {
	Latitude          float64 `json:"latitude" validate:"gte=-90,lte=90" jsonschema:"Latitude in decimal degrees (-90 to 90)"`
	Longitude         float64 `json:"longitude" validate:"gte=-180,lte=180" jsonschema:"Longitude in decimal degrees (-180 to 180)"`
	StartDate         string  `json:"start_date" validate:"required" jsonschema:"Start date in YYYY-MM-DD format"`
	EndDate           string  `json:"end_date" validate:"required" jsonschema:"End date in YYYY-MM-DD format"`
	TemperatureUnit   string  `json:"temperature_unit,omitempty" jsonschema:"Temperature unit: celsius (default) or fahrenheit"`
	WindSpeedUnit     string  `json:"wind_speed_unit,omitempty" jsonschema:"Wind speed unit: kmh (default), ms, mph or kn"`
	PrecipitationUnit string  `json:"precipitation_unit,omitempty" jsonschema:"Precipitation unit: mm (default) or inch"`
	Timezone          string  `json:"timezone,omitempty" jsonschema:"Timezone name or auto (default)"`
	Hourly            string  `json:"hourly,omitempty" jsonschema:"Comma-separated hourly variables"`
	Daily             string  `json:"daily,omitempty" jsonschema:"Comma-separated daily variables"`
}

func (h *handlers) getHistoricalWeather(ctx context.Context, _ *mcp.CallToolRequest, in HistoricalInput) (*mcp.CallToolResult, any, error) {
	if err := validate.Struct(in); err != nil {
		return nil, nil, err
	}
	hist, err := h.client.Historical(ctx, openmeteo.HistoricalRequest{
		Latitude:          in.Latitude,
		Longitude:         in.Longitude,
		StartDate:         in.StartDate,
		EndDate:           in.EndDate,
		TemperatureUnit:   orDefault(in.TemperatureUnit, "celsius"),
		WindSpeedUnit:     orDefault(in.WindSpeedUnit, "kmh"),
		PrecipitationUnit: orDefault(in.PrecipitationUnit, "mm"),
		Timezone:          orDefault(in.Timezone, "auto"),
		Hourly:            in.Hourly,
		Daily:             in.Daily,
	})
	if err != nil {
		return nil, nil, err
	}
	return nil, hist, nil
}

// AirQualityInput is the argument shape for get_air_quality.
type AirQualityInput struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90" jsonschema:"Latitude in decimal degrees (-90 to 90)"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180" jsonschema:"Longitude in decimal degrees (-180 to 180)"`
	Timezone  string  `json:"timezone,omitempty" jsonschema:"Timezone name or auto (default)"`
	Hourly    string  `json:"hourly,omitempty" jsonschema:"Comma-separated air quality variables; a default pollutant set is used when omitted"`
	Domains   string  `json:"domains,omitempty" jsonschema:"Model domain: auto (default), cams_global or cams_europe"`
}

func (h *handlers) getAirQuality(ctx context.Context, _ *mcp.CallToolRequest, in AirQualityInput) (*mcp.CallToolResult, any, error) {
	if err := validate.Struct(in); err != nil {
		return nil, nil, err
	}
	aq, err := h.client.AirQuality(ctx, openmeteo.AirQualityRequest{
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		Timezone:  orDefault(in.Timezone, "auto"),
		Hourly:    in.Hourly,
		Domains:   orDefault(in.Domains, "auto"),
	})
	if err != nil {
		return nil, nil, err
	}
	return nil, aq, nil
}

// MarineInput is the argument shape for get_marine_forecast.
type MarineInput struct {
	Latitude     float64 `json:"latitude" validate:"gte=-90,lte=90" jsonschema:"Latitude in decimal degrees (-90 to 90), over ocean or coastal areas"`
	Longitude    float64 `json:"longitude" validate:"gte=-180,lte=180" jsonschema:"Longitude in decimal degrees (-180 to 180), over ocean or coastal areas"`
	Timezone     string  `json:"timezone,omitempty" jsonschema:"Timezone name or auto (default)"`
	Hourly       string  `json:"hourly,omitempty" jsonschema:"Comma-separated marine variables; a default wave and sea level set is used when omitted"`
	Daily        string  `json:"daily,omitempty" jsonschema:"Comma-separated daily marine variables, e.g. wave_height_max,wave_direction_dominant"`
	ForecastDays int     `json:"forecast_days,omitempty" jsonschema:"Number of forecast days (1-16, default 7)"`
}

func (h *handlers) getMarineForecast(ctx context.Context, _ *mcp.CallToolRequest, in MarineInput) (*mcp.CallToolResult, any, error) {
	if err := validate.Struct(in); err != nil {
		return nil, nil, err
	}
	marine, err := h.client.Marine(ctx, openmeteo.MarineRequest{
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		Timezone:     orDefault(in.Timezone, "auto"),
		Hourly:       in.Hourly,
		Daily:        in.Daily,
		ForecastDays: orDefaultInt(in.ForecastDays, 7),
	})
	if err != nil {
		return nil, nil, err
	}
	return nil, marine, nil
}

// WeatherCodeInput is the argument shape for interpret_weather_code.
type WeatherCodeInput struct {
	WeatherCode int `json:"weather_code" jsonschema:"WMO weather code from forecast data (the weathercode field)"`
}

func (h *handlers) interpretWeatherCode(_ context.Context, _ *mcp.CallToolRequest, in WeatherCodeInput) (*mcp.CallToolResult, any, error) {
	return nil, weathercode.Interpret(in.WeatherCode), nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func orDefaultInt(n, def int) int {
	if n == 0 {
		return def
	}
	return n
}
