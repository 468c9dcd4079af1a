package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// Production base URLs, one per Open-Meteo API family.
const (
	forecastBaseURL   = "https://api.open-meteo.com/v1/forecast"
	geocodingBaseURL  = "https://geocoding-api.open-meteo.com/v1/search"
	archiveBaseURL    = "https://archive-api.open-meteo.com/v1/archive"
	airQualityBaseURL = "https://air-quality-api.open-meteo.com/v1/air-quality"
	marineBaseURL     = "https://marine-api.open-meteo.com/v1/marine"
)

// DefaultTimeout bounds each outbound request end to end.
const DefaultTimeout = 30 * time.Second

// StatusError reports a non-2xx upstream HTTP status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("open-meteo returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("open-meteo returned status %d: %s", e.StatusCode, e.Body)
}

// Config bundles client settings. The zero value gives a production client
// with the default timeout and no rate limiting or circuit breaking.
type Config struct {
	// HTTPClient may be nil, in which case a client with DefaultTimeout is used.
	HTTPClient *http.Client

	// Base URL overrides, one per API family. Empty means production.
	ForecastURL   string
	GeocodingURL  string
	ArchiveURL    string
	AirQualityURL string
	MarineURL     string

	// RateLimitRPS enables client-side rate limiting of outbound calls when
	// greater than zero. RateLimitBurst defaults to 1 when unset.
	RateLimitRPS   float64
	RateLimitBurst int

	// CircuitBreaker wraps outbound calls in a breaker so a failing upstream
	// is not hammered. Off by default: each call then maps one-to-one to one
	// HTTP request with no intermediate state.
	CircuitBreaker bool
}

// Client performs one GET per call against the Open-Meteo APIs and decodes
// the JSON body into the matching typed envelope. It holds no mutable state;
// concurrent calls are independent.
type Client struct {
	httpClient    *http.Client
	forecastURL   string
	geocodingURL  string
	archiveURL    string
	airQualityURL string
	marineURL     string
	limiter       *rate.Limiter
	breaker       *gobreaker.CircuitBreaker
}

// NewClient creates a Client from cfg, filling in production defaults.
func NewClient(cfg Config) *Client {
	c := &Client{
		httpClient:    cfg.HTTPClient,
		forecastURL:   cfg.ForecastURL,
		geocodingURL:  cfg.GeocodingURL,
		archiveURL:    cfg.ArchiveURL,
		airQualityURL: cfg.AirQualityURL,
		marineURL:     cfg.MarineURL,
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if c.forecastURL == "" {
		c.forecastURL = forecastBaseURL
	}
	if c.geocodingURL == "" {
		c.geocodingURL = geocodingBaseURL
	}
	if c.archiveURL == "" {
		c.archiveURL = archiveBaseURL
	}
	if c.airQualityURL == "" {
		c.airQualityURL = airQualityBaseURL
	}
	if c.marineURL == "" {
		c.marineURL = marineBaseURL
	}
	if cfg.RateLimitRPS > 0 {
		burst := cfg.RateLimitBurst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), burst)
	}
	if cfg.CircuitBreaker {
		c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "openmeteo",
			MaxRequests: 5,
			Interval:    1 * time.Minute,
			Timeout:     2 * time.Minute,
		})
	}
	return c
}

// Forecast fetches a weather forecast.
func (c *Client) Forecast(ctx context.Context, req ForecastRequest) (*WeatherForecast, error) {
	var out WeatherForecast
	if err := c.get(ctx, c.forecastURL, req.Values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Geocode searches locations by name. Zero results is not an error.
func (c *Client) Geocode(ctx context.Context, req GeocodeRequest) (*GeocodingResponse, error) {
	var out GeocodingResponse
	if err := c.get(ctx, c.geocodingURL, req.Values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Historical fetches archived weather for an inclusive date range.
func (c *Client) Historical(ctx context.Context, req HistoricalRequest) (*HistoricalWeather, error) {
	var out HistoricalWeather
	if err := c.get(ctx, c.archiveURL, req.Values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AirQuality fetches pollutant concentrations and air quality indexes.
func (c *Client) AirQuality(ctx context.Context, req AirQualityRequest) (*AirQualityResponse, error) {
	var out AirQualityResponse
	if err := c.get(ctx, c.airQualityURL, req.Values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Marine fetches wave, swell, current and sea level forecasts.
func (c *Client) Marine(ctx context.Context, req MarineRequest) (*MarineForecast, error) {
	var out MarineForecast
	if err := c.get(ctx, c.marineURL, req.Values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// get issues a single GET request and decodes the body into out. There are
// no retries: transport failures, non-2xx statuses and decode errors all
// propagate to the caller, and a decode error never leaves out partially
// usable alongside a nil error.
func (c *Client) get(ctx context.Context, base string, params url.Values, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait canceled: %w", err)
		}
	}

	var body []byte
	var err error
	if c.breaker != nil {
		result, berr := c.breaker.Execute(func() (interface{}, error) {
			return c.do(ctx, base, params)
		})
		if berr != nil {
			err = berr
		} else {
			body = result.([]byte)
		}
	} else {
		body, err = c.do(ctx, base, params)
	}
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, base string, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching weather data: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: snippet(body)}
	}
	return body, nil
}

// snippet trims a response body for inclusion in error messages.
func snippet(body []byte) string {
	const max = 256
	if len(body) > max {
		body = body[:max]
	}
	return string(body)
}
