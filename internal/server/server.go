// Package server exposes the Open-Meteo tools over the Model Context
// Protocol. Tool registration happens once at construction; the SDK's
// protocol layer serves initialize, tools/list and tools/call from the
// resulting catalog.
package server

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"openmeteo-mcp/internal/openmeteo"
)

const (
	serverName    = "openmeteo-mcp"
	serverVersion = "1.0.0"
)

// New builds the MCP server with all weather tools registered.
func New(client *openmeteo.Client) *mcp.Server {
	s := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}, nil)

	h := &handlers{client: client}

	mcp.AddTool(s, &mcp.Tool{
		Name: "get_weather_forecast",
		Description: "Get a weather forecast with current conditions plus optional hourly and daily series. " +
			"Use geocode_location first to turn place names into coordinates.",
	}, h.getWeatherForecast)

	mcp.AddTool(s, &mcp.Tool{
		Name: "geocode_location",
		Description: "Convert a location name into coordinates and geographic metadata. " +
			"Results keep the upstream relevance order; if nothing matches, retry with a simpler name.",
	}, h.geocodeLocation)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_historical_weather",
		Description: "Get archived weather for an inclusive start/end date range (YYYY-MM-DD).",
	}, h.getHistoricalWeather)

	mcp.AddTool(s, &mcp.Tool{
		Name: "get_air_quality",
		Description: "Get air quality forecasts: pollutant concentrations plus US and European AQI. " +
			"A default variable set is requested when no hourly list is given.",
	}, h.getAirQuality)

	mcp.AddTool(s, &mcp.Tool{
		Name: "get_marine_forecast",
		Description: "Get marine forecasts: waves, swell, ocean currents and sea level height (tides). " +
			"Coordinates must be over ocean or coastal areas.",
	}, h.getMarineForecast)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "interpret_weather_code",
		Description: "Translate a WMO weather code (0-99) into a description and severity category.",
	}, h.interpretWeatherCode)

	return s
}
