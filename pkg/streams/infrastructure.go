package streams

import (
	"fmt"
	"math"

	"github.com/iwvelando/event-viability/pkg/constants"
	"github.com/iwvelando/event-viability/pkg/finance"
)

// InfrastructureAssumptions describes the transit and resilience legacy of the
// event's capital program.
type InfrastructureAssumptions struct {
	TransitBenefits    float64 `mapstructure:"transitBenefits" yaml:"transitBenefits" json:"transitBenefits"`          // $M per year at full use
	ResilienceBenefits float64 `mapstructure:"resilienceBenefits" yaml:"resilienceBenefits" json:"resilienceBenefits"` // $M per year at full use
	IncrementalCosts   float64 `mapstructure:"incrementalCosts" yaml:"incrementalCosts" json:"incrementalCosts"`       // $M
	Years              int     `mapstructure:"years" yaml:"years" json:"years"`
}

// Validate checks every field against its valid range.
func (a InfrastructureAssumptions) Validate() error {
	return finance.FirstError(
		finance.ValidateNonNegative("infrastructure.transitBenefits", a.TransitBenefits),
		finance.ValidateNonNegative("infrastructure.resilienceBenefits", a.ResilienceBenefits),
		finance.ValidateNonNegative("infrastructure.incrementalCosts", a.IncrementalCosts),
		finance.ValidateYears("infrastructure.years", a.Years),
	)
}

// InfrastructureYear is one year of the infrastructure schedule.
type InfrastructureYear struct {
	Offset      int     `json:"offset"` // years after the event
	Utilization float64 `json:"utilization"`
	Benefit     float64 `json:"benefit"`
	Cost        float64 `json:"cost"`
	NetPV       float64 `json:"netPV"`
}

// InfrastructureResult holds the infrastructure NPV. NPV may be negative.
type InfrastructureResult struct {
	NPV      float64              `json:"npv"`
	Schedule []InfrastructureYear `json:"schedule,omitempty"`
}

// Total returns the infrastructure NPV.
func (r InfrastructureResult) Total() float64 { return r.NPV }

// Utilization is the share of full benefit realised yearsAfterEvent years
// after the event.
func Utilization(yearsAfterEvent int) float64 {
	return math.Min(1.0, constants.UtilizationBase+float64(yearsAfterEvent)*constants.UtilizationStep)
}

// CostShare is the fraction of incremental cost incurred in a given year.
func CostShare(yearsAfterEvent int) float64 {
	switch {
	case yearsAfterEvent <= constants.EarlyCostLastYear:
		return constants.EarlyCostShare
	case yearsAfterEvent <= constants.MidCostLastYear:
		return constants.MidCostShare
	default:
		return constants.MaintenanceCostShare
	}
}

// ProjectInfrastructure nets ramping benefits against front-loaded costs for
// the event year and each of the following Years years.
func ProjectInfrastructure(a InfrastructureAssumptions, h finance.Horizon) (InfrastructureResult, error) {
	if err := finance.FirstError(h.Validate(), a.Validate()); err != nil {
		return InfrastructureResult{}, fmt.Errorf("infrastructure: %w", err)
	}

	yearsUntil := h.YearsUntilEvent()
	r := InfrastructureResult{Schedule: make([]InfrastructureYear, 0, a.Years+1)}
	for year := 0; year <= a.Years; year++ {
		utilization := Utilization(year)
		benefit := a.TransitBenefits*utilization + a.ResilienceBenefits*utilization
		cost := a.IncrementalCosts * CostShare(year)

		pv, err := h.PresentValue(benefit-cost, yearsUntil+year)
		if err != nil {
			return InfrastructureResult{}, fmt.Errorf("infrastructure: year %d: %w", year, err)
		}
		r.NPV += pv
		r.Schedule = append(r.Schedule, InfrastructureYear{
			Offset:      year,
			Utilization: utilization,
			Benefit:     benefit,
			Cost:        cost,
			NetPV:       pv,
		})
	}
	return r, nil
}
