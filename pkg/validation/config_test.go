package validation

import (
	"strings"
	"testing"
)

func TestValidateConstructionWindow(t *testing.T) {
	tests := []struct {
		name        string
		currentYear int
		eventYear   int
		expectWarn  bool
		contains    string
	}{
		{
			name:        "Distant event",
			currentYear: 2024,
			eventYear:   2036,
			expectWarn:  false,
		},
		{
			name:        "Window starts this year",
			currentYear: 2024,
			eventYear:   2030,
			expectWarn:  false,
		},
		{
			name:        "Three years away",
			currentYear: 2024,
			eventYear:   2027,
			expectWarn:  true,
			contains:    "3 of 6",
		},
		{
			name:        "Event this year",
			currentYear: 2024,
			eventYear:   2024,
			expectWarn:  true,
			contains:    "6 of 6",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warning := ValidateConstructionWindow("test", tt.currentYear, tt.eventYear)
			hasWarning := warning != ""
			if hasWarning != tt.expectWarn {
				t.Errorf("ValidateConstructionWindow() warning = %t, expected %t", hasWarning, tt.expectWarn)
			}
			if tt.contains != "" && !strings.Contains(warning, tt.contains) {
				t.Errorf("ValidateConstructionWindow() = %q, expected it to contain %q", warning, tt.contains)
			}
		})
	}
}

func TestValidateDiscountRateRange(t *testing.T) {
	tests := []struct {
		rate       float64
		expectWarn bool
	}{
		{0.045, false},
		{0.02, false},
		{0.08, false},
		{0.01, true},
		{0.12, true},
	}

	for _, tt := range tests {
		warning := ValidateDiscountRateRange("test", tt.rate)
		if (warning != "") != tt.expectWarn {
			t.Errorf("ValidateDiscountRateRange(%v) = %q, expected warning %t", tt.rate, warning, tt.expectWarn)
		}
	}
}

func TestConfigValidatorValidateAll(t *testing.T) {
	baseline := ScenarioConfig{
		Name:                 "baseline",
		Active:               true,
		IncludesConstruction: true,
		CurrentYear:          2024,
		EventYear:            2036,
		DiscountRate:         0.045,
		PrivateSharePct:      0.3,
		CrowdOutPct:          0.5,
	}

	tests := []struct {
		name          string
		scenarios     []ScenarioConfig
		expectedCount int
		contains      string
	}{
		{
			name:          "Clean configuration",
			scenarios:     []ScenarioConfig{baseline},
			expectedCount: 0,
		},
		{
			name:          "No scenarios",
			scenarios:     nil,
			expectedCount: 1,
			contains:      "No active scenarios",
		},
		{
			name: "Inactive scenarios are not checked",
			scenarios: []ScenarioConfig{
				{Name: "draft", Active: false, CurrentYear: 2024, EventYear: 2025, DiscountRate: 0.2},
				baseline,
			},
			expectedCount: 0,
		},
		{
			name: "Construction check skipped when the stream does not run",
			scenarios: []ScenarioConfig{
				{Name: "basic", Active: true, CurrentYear: 2024, EventYear: 2024, DiscountRate: 0.045},
			},
			expectedCount: 0,
		},
		{
			name:          "Duplicate names",
			scenarios:     []ScenarioConfig{baseline, baseline},
			expectedCount: 1,
			contains:      "more than once",
		},
		{
			name: "Every advisory at once",
			scenarios: []ScenarioConfig{
				{Name: "rushed", Active: true, IncludesConstruction: true, CurrentYear: 2024, EventYear: 2026, DiscountRate: 0.15, PrivateSharePct: 1, CrowdOutPct: 1},
			},
			expectedCount: 4,
			contains:      "fully privately funded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cv := &ConfigValidator{Scenarios: tt.scenarios}
			warnings := cv.ValidateAll()
			if len(warnings) != tt.expectedCount {
				t.Errorf("ValidateAll() returned %d warnings, expected %d: %v", len(warnings), tt.expectedCount, warnings)
			}
			if tt.contains == "" {
				return
			}
			found := false
			for _, w := range warnings {
				if strings.Contains(w, tt.contains) {
					found = true
				}
			}
			if !found {
				t.Errorf("ValidateAll() warnings %v do not mention %q", warnings, tt.contains)
			}
		})
	}
}
