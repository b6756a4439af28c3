package validation

import (
	"fmt"

	"github.com/iwvelando/event-viability/pkg/constants"
)

// ValidateConstructionWindow warns when the event is too close for the whole
// construction window to fall on or after the current year.
func ValidateConstructionWindow(scenarioName string, currentYear, eventYear int) string {
	yearsUntil := eventYear - currentYear
	if yearsUntil >= constants.ConstructionWindowYears {
		return ""
	}
	excluded := constants.ConstructionWindowYears - max(yearsUntil, 0)
	return fmt.Sprintf("Scenario '%s': event is %d years away - %d of %d construction years fall before %d and are excluded from the sales tax offset",
		scenarioName, yearsUntil, excluded, constants.ConstructionWindowYears, currentYear)
}

// ValidateDiscountRateRange warns when the discount rate is outside the
// usual public-sector range.
func ValidateDiscountRateRange(scenarioName string, rate float64) string {
	if rate >= constants.TypicalDiscountRateMin && rate <= constants.TypicalDiscountRateMax {
		return ""
	}
	return fmt.Sprintf("Scenario '%s': discount rate %.3f is outside the typical range %.2f-%.2f",
		scenarioName, rate, constants.TypicalDiscountRateMin, constants.TypicalDiscountRateMax)
}

// ConfigValidator collects the figures needed for advisory checks.
type ConfigValidator struct {
	Scenarios []ScenarioConfig
}

// ScenarioConfig is the resolved view of one scenario.
type ScenarioConfig struct {
	Name   string
	Active bool
	// IncludesConstruction is false for modes that skip the construction
	// sales tax stream.
	IncludesConstruction bool
	CurrentYear          int
	EventYear            int
	DiscountRate         float64
	PrivateSharePct      float64
	CrowdOutPct          float64
}

// ValidateAll validates the entire configuration and returns warnings
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string

	seen := make(map[string]bool, len(cv.Scenarios))
	active := 0
	for _, scenario := range cv.Scenarios {
		if seen[scenario.Name] {
			warnings = append(warnings, fmt.Sprintf("Scenario name '%s' is used more than once", scenario.Name))
		}
		seen[scenario.Name] = true

		if !scenario.Active {
			continue
		}
		active++

		if scenario.IncludesConstruction {
			if w := ValidateConstructionWindow(scenario.Name, scenario.CurrentYear, scenario.EventYear); w != "" {
				warnings = append(warnings, w)
			}
		}
		if w := ValidateDiscountRateRange(scenario.Name, scenario.DiscountRate); w != "" {
			warnings = append(warnings, w)
		}
		if scenario.PrivateSharePct >= 1 {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s': fully privately funded - BCR will be reported as 0", scenario.Name))
		}
		if scenario.CrowdOutPct >= 1 {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s': crowd-out of 100%% removes all tourism revenue", scenario.Name))
		}
	}

	if active == 0 {
		warnings = append(warnings, "No active scenarios - nothing will be evaluated")
	}

	return warnings
}
