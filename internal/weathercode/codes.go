// Package weathercode translates WMO weather interpretation codes, as used
// by Open-Meteo, into human-readable descriptions and severity categories.
package weathercode

import "fmt"

// Interpretation is the meaning of a single WMO weather code.
type Interpretation struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// Severity categories returned by Interpret.
const (
	SeverityClear        = "clear"
	SeverityCloudy       = "cloudy"
	SeverityFog          = "fog"
	SeverityDrizzle      = "drizzle"
	SeverityRain         = "rain"
	SeverityFreezing     = "freezing"
	SeveritySnow         = "snow"
	SeverityShowers      = "showers"
	SeverityThunderstorm = "thunderstorm"
	SeverityUnknown      = "unknown"
)

var codes = map[int]struct {
	description string
	severity    string
}{
	0:  {"Clear sky", SeverityClear},
	1:  {"Mainly clear", SeverityClear},
	2:  {"Partly cloudy", SeverityCloudy},
	3:  {"Overcast", SeverityCloudy},
	45: {"Fog", SeverityFog},
	48: {"Depositing rime fog", SeverityFog},
	51: {"Light drizzle", SeverityDrizzle},
	53: {"Moderate drizzle", SeverityDrizzle},
	55: {"Dense drizzle", SeverityDrizzle},
	56: {"Light freezing drizzle", SeverityFreezing},
	57: {"Dense freezing drizzle", SeverityFreezing},
	61: {"Slight rain", SeverityRain},
	63: {"Moderate rain", SeverityRain},
	65: {"Heavy rain", SeverityRain},
	66: {"Light freezing rain", SeverityFreezing},
	67: {"Heavy freezing rain", SeverityFreezing},
	71: {"Slight snow fall", SeveritySnow},
	73: {"Moderate snow fall", SeveritySnow},
	75: {"Heavy snow fall", SeveritySnow},
	77: {"Snow grains", SeveritySnow},
	80: {"Slight rain showers", SeverityShowers},
	81: {"Moderate rain showers", SeverityShowers},
	82: {"Violent rain showers", SeverityShowers},
	85: {"Slight snow showers", SeveritySnow},
	86: {"Heavy snow showers", SeveritySnow},
	95: {"Thunderstorm", SeverityThunderstorm},
	96: {"Thunderstorm with slight hail", SeverityThunderstorm},
	99: {"Thunderstorm with heavy hail", SeverityThunderstorm},
}

// Interpret looks up a WMO weather code. It is total: codes outside the
// documented set yield an "unknown" severity, never an error.
func Interpret(code int) Interpretation {
	if c, ok := codes[code]; ok {
		return Interpretation{Code: code, Description: c.description, Severity: c.severity}
	}
	return Interpretation{
		Code:        code,
		Description: fmt.Sprintf("Unknown weather code: %d", code),
		Severity:    SeverityUnknown,
	}
}
