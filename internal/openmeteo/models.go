package openmeteo

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// ErrMissingField is returned when a response body lacks a field the schema
// requires. The wrapped message names the offending field path.
var ErrMissingField = errors.New("missing required field")

// CurrentWeather is a snapshot of current conditions. Every field is required
// once the current_weather block is present in a response.
type CurrentWeather struct {
	Temperature   float64 `json:"temperature"`
	WindSpeed     float64 `json:"windspeed"`
	WindDirection float64 `json:"winddirection"`
	WeatherCode   int     `json:"weathercode"`
	Time          string  `json:"time"`
}

func (c *CurrentWeather) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if err := requireFields(data, "current_weather",
		"temperature", "windspeed", "winddirection", "weathercode", "time"); err != nil {
		return err
	}
	type plain CurrentWeather
	return json.Unmarshal(data, (*plain)(c))
}

// HourlyWeather holds hourly forecast series. All populated slices are
// parallel to Time: index i in every slice refers to the same hour.
// Variables the schema does not declare are kept in Extra so nothing the
// upstream API returns is dropped.
type HourlyWeather struct {
	Time               []string                   `json:"time"`
	Temperature2m      []float64                  `json:"temperature_2m,omitempty"`
	RelativeHumidity2m []float64                  `json:"relative_humidity_2m,omitempty"`
	Precipitation      []float64                  `json:"precipitation,omitempty"`
	Rain               []float64                  `json:"rain,omitempty"`
	Showers            []float64                  `json:"showers,omitempty"`
	Snowfall           []float64                  `json:"snowfall,omitempty"`
	CloudCover         []float64                  `json:"cloud_cover,omitempty"`
	WindSpeed10m       []float64                  `json:"wind_speed_10m,omitempty"`
	WindDirection10m   []float64                  `json:"wind_direction_10m,omitempty"`
	PressureMSL        []float64                  `json:"pressure_msl,omitempty"`
	Extra              map[string]json.RawMessage `json:"-"`
}

func (h *HourlyWeather) UnmarshalJSON(data []byte) error {
	type plain HourlyWeather
	return decodeSeries(data, (*plain)(h), &h.Extra, "hourly")
}

func (h HourlyWeather) MarshalJSON() ([]byte, error) {
	type plain HourlyWeather
	return marshalSeries(plain(h), h.Extra)
}

// DailyWeather holds daily aggregate series, parallel to Time (one entry per day).
type DailyWeather struct {
	Time               []string                   `json:"time"`
	Temperature2mMax   []float64                  `json:"temperature_2m_max,omitempty"`
	Temperature2mMin   []float64                  `json:"temperature_2m_min,omitempty"`
	PrecipitationSum   []float64                  `json:"precipitation_sum,omitempty"`
	PrecipitationHours []float64                  `json:"precipitation_hours,omitempty"`
	RainSum            []float64                  `json:"rain_sum,omitempty"`
	Sunrise            []string                   `json:"sunrise,omitempty"`
	Sunset             []string                   `json:"sunset,omitempty"`
	WindSpeed10mMax    []float64                  `json:"wind_speed_10m_max,omitempty"`
	Extra              map[string]json.RawMessage `json:"-"`
}

func (d *DailyWeather) UnmarshalJSON(data []byte) error {
	type plain DailyWeather
	return decodeSeries(data, (*plain)(d), &d.Extra, "daily")
}

func (d DailyWeather) MarshalJSON() ([]byte, error) {
	type plain DailyWeather
	return marshalSeries(plain(d), d.Extra)
}

// WeatherForecast is the forecast response envelope. Latitude and longitude
// are required; everything else depends on what the request asked for.
type WeatherForecast struct {
	Latitude             float64         `json:"latitude"`
	Longitude            float64         `json:"longitude"`
	Elevation            *float64        `json:"elevation,omitempty"`
	Timezone             *string         `json:"timezone,omitempty"`
	TimezoneAbbreviation *string         `json:"timezone_abbreviation,omitempty"`
	CurrentWeather       *CurrentWeather `json:"current_weather,omitempty"`
	Hourly               *HourlyWeather  `json:"hourly,omitempty"`
	Daily                *DailyWeather   `json:"daily,omitempty"`
}

func (f *WeatherForecast) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "", "latitude", "longitude"); err != nil {
		return err
	}
	type plain WeatherForecast
	return json.Unmarshal(data, (*plain)(f))
}

// HistoricalWeather is the archive response envelope. Same shape as
// WeatherForecast without a current_weather block.
type HistoricalWeather struct {
	Latitude             float64        `json:"latitude"`
	Longitude            float64        `json:"longitude"`
	Elevation            *float64       `json:"elevation,omitempty"`
	Timezone             *string        `json:"timezone,omitempty"`
	TimezoneAbbreviation *string        `json:"timezone_abbreviation,omitempty"`
	Hourly               *HourlyWeather `json:"hourly,omitempty"`
	Daily                *DailyWeather  `json:"daily,omitempty"`
}

func (h *HistoricalWeather) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "", "latitude", "longitude"); err != nil {
		return err
	}
	type plain HistoricalWeather
	return json.Unmarshal(data, (*plain)(h))
}

// HourlyAirQuality holds hourly pollutant series. Entries inside a sequence
// may be null (no reading for that hour), so elements are pointers.
type HourlyAirQuality struct {
	Time            []string                   `json:"time"`
	PM10            []*float64                 `json:"pm10,omitempty"`
	PM25            []*float64                 `json:"pm2_5,omitempty"`
	CarbonMonoxide  []*float64                 `json:"carbon_monoxide,omitempty"`
	NitrogenDioxide []*float64                 `json:"nitrogen_dioxide,omitempty"`
	SulphurDioxide  []*float64                 `json:"sulphur_dioxide,omitempty"`
	Ozone           []*float64                 `json:"ozone,omitempty"`
	Dust            []*float64                 `json:"dust,omitempty"`
	UVIndex         []*float64                 `json:"uv_index,omitempty"`
	USAQI           []*int                     `json:"us_aqi,omitempty"`
	EuropeanAQI     []*int                     `json:"european_aqi,omitempty"`
	Extra           map[string]json.RawMessage `json:"-"`
}

func (h *HourlyAirQuality) UnmarshalJSON(data []byte) error {
	type plain HourlyAirQuality
	return decodeSeries(data, (*plain)(h), &h.Extra, "hourly")
}

func (h HourlyAirQuality) MarshalJSON() ([]byte, error) {
	type plain HourlyAirQuality
	return marshalSeries(plain(h), h.Extra)
}

// AirQualityResponse is the air quality response envelope.
type AirQualityResponse struct {
	Latitude  float64           `json:"latitude"`
	Longitude float64           `json:"longitude"`
	Elevation *float64          `json:"elevation,omitempty"`
	Timezone  *string           `json:"timezone,omitempty"`
	Hourly    *HourlyAirQuality `json:"hourly,omitempty"`
}

func (a *AirQualityResponse) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "", "latitude", "longitude"); err != nil {
		return err
	}
	type plain AirQualityResponse
	return json.Unmarshal(data, (*plain)(a))
}

// HourlyMarine holds hourly wave, swell, current and sea level series.
// Like air quality, individual readings may be null over land grid points.
type HourlyMarine struct {
	Time                  []string                   `json:"time"`
	WaveHeight            []*float64                 `json:"wave_height,omitempty"`
	WaveDirection         []*float64                 `json:"wave_direction,omitempty"`
	WavePeriod            []*float64                 `json:"wave_period,omitempty"`
	WindWaveHeight        []*float64                 `json:"wind_wave_height,omitempty"`
	WindWaveDirection     []*float64                 `json:"wind_wave_direction,omitempty"`
	WindWavePeriod        []*float64                 `json:"wind_wave_period,omitempty"`
	SwellWaveHeight       []*float64                 `json:"swell_wave_height,omitempty"`
	SwellWaveDirection    []*float64                 `json:"swell_wave_direction,omitempty"`
	SwellWavePeriod       []*float64                 `json:"swell_wave_period,omitempty"`
	OceanCurrentVelocity  []*float64                 `json:"ocean_current_velocity,omitempty"`
	OceanCurrentDirection []*float64                 `json:"ocean_current_direction,omitempty"`
	SeaLevelHeightMSL     []*float64                 `json:"sea_level_height_msl,omitempty"`
	Extra                 map[string]json.RawMessage `json:"-"`
}

func (h *HourlyMarine) UnmarshalJSON(data []byte) error {
	type plain HourlyMarine
	return decodeSeries(data, (*plain)(h), &h.Extra, "hourly")
}

func (h HourlyMarine) MarshalJSON() ([]byte, error) {
	type plain HourlyMarine
	return marshalSeries(plain(h), h.Extra)
}

// DailyMarine holds daily marine aggregates.
type DailyMarine struct {
	Time                  []string                   `json:"time"`
	WaveHeightMax         []*float64                 `json:"wave_height_max,omitempty"`
	WaveDirectionDominant []*float64                 `json:"wave_direction_dominant,omitempty"`
	WavePeriodMax         []*float64                 `json:"wave_period_max,omitempty"`
	Extra                 map[string]json.RawMessage `json:"-"`
}

func (d *DailyMarine) UnmarshalJSON(data []byte) error {
	type plain DailyMarine
	return decodeSeries(data, (*plain)(d), &d.Extra, "daily")
}

func (d DailyMarine) MarshalJSON() ([]byte, error) {
	type plain DailyMarine
	return marshalSeries(plain(d), d.Extra)
}

// MarineForecast is the marine response envelope. Coordinates may be adjusted
// by the upstream API to the nearest ocean grid point.
type MarineForecast struct {
	Latitude  float64       `json:"latitude"`
	Longitude float64       `json:"longitude"`
	Elevation *float64      `json:"elevation,omitempty"`
	Timezone  *string       `json:"timezone,omitempty"`
	Hourly    *HourlyMarine `json:"hourly,omitempty"`
	Daily     *DailyMarine  `json:"daily,omitempty"`
}

func (m *MarineForecast) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "", "latitude", "longitude"); err != nil {
		return err
	}
	type plain MarineForecast
	return json.Unmarshal(data, (*plain)(m))
}

// GeocodingResult is a single location match. Results keep the upstream
// relevance order; no re-ranking happens here.
type GeocodingResult struct {
	ID          *int64   `json:"id,omitempty"`
	Name        string   `json:"name"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Elevation   *float64 `json:"elevation,omitempty"`
	FeatureCode *string  `json:"feature_code,omitempty"`
	CountryCode *string  `json:"country_code,omitempty"`
	Country     *string  `json:"country,omitempty"`
	CountryID   *int64   `json:"country_id,omitempty"`
	Timezone    *string  `json:"timezone,omitempty"`
	Population  *int64   `json:"population,omitempty"`
	Postcodes   []string `json:"postcodes,omitempty"`
	Admin1      *string  `json:"admin1,omitempty"`
	Admin2      *string  `json:"admin2,omitempty"`
	Admin3      *string  `json:"admin3,omitempty"`
	Admin4      *string  `json:"admin4,omitempty"`
}

func (r *GeocodingResult) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "results", "name", "latitude", "longitude"); err != nil {
		return err
	}
	type plain GeocodingResult
	return json.Unmarshal(data, (*plain)(r))
}

// GeocodingResponse is the geocoding envelope. Results is absent when the
// search matched nothing; the caller decides how to handle that.
type GeocodingResponse struct {
	Results          []GeocodingResult `json:"results,omitempty"`
	GenerationTimeMS *float64          `json:"generationtime_ms,omitempty"`
}

// requireFields fails with ErrMissingField when any of the named keys is
// absent from the JSON object. path prefixes the field name in the error.
func requireFields(data []byte, path string, fields ...string) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, f := range fields {
		if _, ok := raw[f]; !ok {
			if path != "" {
				f = path + "." + f
			}
			return fmt.Errorf("%w: %s", ErrMissingField, f)
		}
	}
	return nil
}

// decodeSeries unmarshals a series block into dst, requires the time
// sequence, and collects keys the struct does not declare into extra.
// A literal null block is a no-op, per the encoding/json convention.
func decodeSeries(data []byte, dst any, extra *map[string]json.RawMessage, path string) error {
	if string(data) == "null" {
		return nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if _, ok := raw["time"]; !ok {
		return fmt.Errorf("%w: %s.time", ErrMissingField, path)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return err
	}
	for name := range jsonFieldNames(reflect.TypeOf(dst).Elem()) {
		delete(raw, name)
	}
	if len(raw) > 0 {
		*extra = raw
	}
	return nil
}

// marshalSeries emits the declared fields of src plus any retained extra
// keys, so re-serialization preserves what the upstream API sent.
func marshalSeries(src any, extra map[string]json.RawMessage) ([]byte, error) {
	base, err := json.Marshal(src)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return base, nil
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if _, ok := merged[k]; !ok {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

var fieldNameCache sync.Map // reflect.Type -> map[string]struct{}

func jsonFieldNames(t reflect.Type) map[string]struct{} {
	if cached, ok := fieldNameCache.Load(t); ok {
		return cached.(map[string]struct{})
	}
	names := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		names[name] = struct{}{}
	}
	fieldNameCache.Store(t, names)
	return names
}
