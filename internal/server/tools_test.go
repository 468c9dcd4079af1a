package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"openmeteo-mcp/internal/openmeteo"
	"openmeteo-mcp/internal/weathercode"
)

// newTestHandlers returns handlers backed by a stub upstream that records
// the query of the last request and replies with body.
func newTestHandlers(t *testing.T, body string, gotQuery *url.Values) *handlers {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if gotQuery != nil {
			*gotQuery = r.URL.Query()
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	client := openmeteo.NewClient(openmeteo.Config{
		HTTPClient:    srv.Client(),
		ForecastURL:   srv.URL,
		GeocodingURL:  srv.URL,
		ArchiveURL:    srv.URL,
		AirQualityURL: srv.URL,
		MarineURL:     srv.URL,
	})
	return &handlers{client: client}
}

func TestGetWeatherForecastAppliesDefaults(t *testing.T) {
	var gotQuery url.Values
	h := newTestHandlers(t, `{"latitude": 51.5072, "longitude": -0.1276}`, &gotQuery)

	_, out, err := h.getWeatherForecast(context.Background(), nil, ForecastInput{
		Latitude:  51.5072,
		Longitude: -0.1276,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out == nil {
		t.Fatal("expected a forecast result")
	}

	expected := map[string]string{
		"temperature_unit":   "celsius",
		"wind_speed_unit":    "kmh",
		"precipitation_unit": "mm",
		"timezone":           "auto",
		"forecast_days":      "7",
		"current_weather":    "true",
	}
	for key, want := range expected {
		if got := gotQuery.Get(key); got != want {
			t.Errorf("expected default %s=%q, got %q", key, want, got)
		}
	}
}

func TestGetWeatherForecastCurrentWeatherOptOut(t *testing.T) {
	var gotQuery url.Values
	h := newTestHandlers(t, `{"latitude": 51.5072, "longitude": -0.1276}`, &gotQuery)

	off := false
	_, _, err := h.getWeatherForecast(context.Background(), nil, ForecastInput{
		Latitude:       51.5072,
		Longitude:      -0.1276,
		CurrentWeather: &off,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery.Has("current_weather") {
		t.Error("current_weather param must be omitted when opted out")
	}
}

func TestGetWeatherForecastRejectsBadCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request must be issued for invalid coordinates")
	}))
	defer srv.Close()

	client := openmeteo.NewClient(openmeteo.Config{HTTPClient: srv.Client(), ForecastURL: srv.URL})
	h := &handlers{client: client}

	cases := []ForecastInput{
		{Latitude: 91, Longitude: 0},
		{Latitude: -90.5, Longitude: 0},
		{Latitude: 0, Longitude: 181},
		{Latitude: 0, Longitude: -180.5},
	}
	for _, in := range cases {
		if _, _, err := h.getWeatherForecast(context.Background(), nil, in); err == nil {
			t.Errorf("expected validation error for lat=%v lon=%v", in.Latitude, in.Longitude)
		}
	}
}

func TestGeocodeLocationRequiresName(t *testing.T) {
	h := newTestHandlers(t, `{}`, nil)

	if _, _, err := h.geocodeLocation(context.Background(), nil, GeocodeInput{}); err == nil {
		t.Fatal("expected validation error for empty name")
	}
}

func TestGeocodeLocationAppliesDefaults(t *testing.T) {
	var gotQuery url.Values
	h := newTestHandlers(t, `{"results": [{"name": "London", "latitude": 51.5072, "longitude": -0.1276}]}`, &gotQuery)

	_, out, err := h.geocodeLocation(context.Background(), nil, GeocodeInput{Name: "London"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotQuery.Get("count") != "10" {
		t.Errorf("expected default count=10, got %q", gotQuery.Get("count"))
	}
	if gotQuery.Get("language") != "en" {
		t.Errorf("expected default language=en, got %q", gotQuery.Get("language"))
	}
	if gotQuery.Get("format") != "json" {
		t.Errorf("expected default format=json, got %q", gotQuery.Get("format"))
	}

	resp, ok := out.(*openmeteo.GeocodingResponse)
	if !ok {
		t.Fatalf("unexpected result type %T", out)
	}
	if len(resp.Results) != 1 || resp.Results[0].Name != "London" {
		t.Errorf("unexpected results: %+v", resp.Results)
	}
}

func TestGetHistoricalWeatherRequiresDates(t *testing.T) {
	h := newTestHandlers(t, `{"latitude": 48.8566, "longitude": 2.3522}`, nil)

	_, _, err := h.getHistoricalWeather(context.Background(), nil, HistoricalInput{
		Latitude: 48.8566, Longitude: 2.3522,
	})
	if err == nil {
		t.Fatal("expected validation error for missing dates")
	}
}

func TestGetAirQualityDefaultDomains(t *testing.T) {
	var gotQuery url.Values
	h := newTestHandlers(t, `{"latitude": 34.0522, "longitude": -118.2437}`, &gotQuery)

	_, _, err := h.getAirQuality(context.Background(), nil, AirQualityInput{
		Latitude: 34.0522, Longitude: -118.2437,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery.Get("domains") != "auto" {
		t.Errorf("expected default domains=auto, got %q", gotQuery.Get("domains"))
	}
	if gotQuery.Get("hourly") != openmeteo.DefaultAirQualityHourly {
		t.Errorf("expected default pollutant set, got %q", gotQuery.Get("hourly"))
	}
}

func TestGetMarineForecastDefaults(t *testing.T) {
	var gotQuery url.Values
	h := newTestHandlers(t, `{"latitude": 21.25, "longitude": -157.75}`, &gotQuery)

	_, _, err := h.getMarineForecast(context.Background(), nil, MarineInput{
		Latitude: 21.3099, Longitude: -157.8581,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery.Get("forecast_days") != "7" {
		t.Errorf("expected default forecast_days=7, got %q", gotQuery.Get("forecast_days"))
	}
	if gotQuery.Get("hourly") != openmeteo.DefaultMarineHourly {
		t.Errorf("expected default marine set, got %q", gotQuery.Get("hourly"))
	}
}

func TestInterpretWeatherCodeKnown(t *testing.T) {
	h := &handlers{}

	_, out, err := h.interpretWeatherCode(context.Background(), nil, WeatherCodeInput{WeatherCode: 61})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	interp, ok := out.(weathercode.Interpretation)
	if !ok {
		t.Fatalf("unexpected result type %T", out)
	}
	if interp.Description != "Slight rain" || interp.Severity != weathercode.SeverityRain {
		t.Errorf("unexpected interpretation: %+v", interp)
	}
}

func TestInterpretWeatherCodeUnknown(t *testing.T) {
	h := &handlers{}

	_, out, err := h.interpretWeatherCode(context.Background(), nil, WeatherCodeInput{WeatherCode: 200})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	interp := out.(weathercode.Interpretation)
	if interp.Severity != weathercode.SeverityUnknown {
		t.Errorf("expected severity unknown for code 200, got %q", interp.Severity)
	}
}

func TestUpstreamErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := openmeteo.NewClient(openmeteo.Config{HTTPClient: srv.Client(), ForecastURL: srv.URL})
	h := &handlers{client: client}

	_, out, err := h.getWeatherForecast(context.Background(), nil, ForecastInput{Latitude: 51.5, Longitude: -0.1})
	if err == nil {
		t.Fatal("expected error for upstream failure")
	}
	if out != nil {
		t.Error("an upstream failure must not yield a result")
	}
}
