package weathercode

import "testing"

func TestInterpretDocumentedCodes(t *testing.T) {
	cases := []struct {
		code        int
		description string
		severity    string
	}{
		{0, "Clear sky", SeverityClear},
		{2, "Partly cloudy", SeverityCloudy},
		{45, "Fog", SeverityFog},
		{51, "Light drizzle", SeverityDrizzle},
		{56, "Light freezing drizzle", SeverityFreezing},
		{61, "Slight rain", SeverityRain},
		{67, "Heavy freezing rain", SeverityFreezing},
		{77, "Snow grains", SeveritySnow},
		{82, "Violent rain showers", SeverityShowers},
		{85, "Slight snow showers", SeveritySnow},
		{95, "Thunderstorm", SeverityThunderstorm},
		{99, "Thunderstorm with heavy hail", SeverityThunderstorm},
	}

	for _, tc := range cases {
		got := Interpret(tc.code)
		if got.Code != tc.code {
			t.Errorf("code %d: result carries code %d", tc.code, got.Code)
		}
		if got.Description != tc.description {
			t.Errorf("code %d: expected description %q, got %q", tc.code, tc.description, got.Description)
		}
		if got.Severity != tc.severity {
			t.Errorf("code %d: expected severity %q, got %q", tc.code, tc.severity, got.Severity)
		}
	}
}

func TestInterpretUnknownCodes(t *testing.T) {
	for _, code := range []int{4, 50, 200, -1, 1000} {
		got := Interpret(code)
		if got.Severity != SeverityUnknown {
			t.Errorf("code %d: expected severity unknown, got %q", code, got.Severity)
		}
		if got.Description == "" {
			t.Errorf("code %d: expected a non-empty description", code)
		}
		if got.Code != code {
			t.Errorf("code %d: result carries code %d", code, got.Code)
		}
	}
}

func TestInterpretIsTotal(t *testing.T) {
	// Every code in the WMO range yields a usable result.
	for code := 0; code <= 99; code++ {
		got := Interpret(code)
		if got.Description == "" || got.Severity == "" {
			t.Fatalf("code %d: incomplete interpretation %+v", code, got)
		}
	}
}
