package streams

import (
	"fmt"

	"github.com/iwvelando/event-viability/pkg/finance"
)

// MajorEventsAssumptions covers championship-level events the new venues attract.
type MajorEventsAssumptions struct {
	EventsPerYear  float64 `mapstructure:"eventsPerYear" yaml:"eventsPerYear" json:"eventsPerYear"`
	AvgTaxPerEvent float64 `mapstructure:"avgTaxPerEvent" yaml:"avgTaxPerEvent" json:"avgTaxPerEvent"` // $M
	BenefitYears   int     `mapstructure:"benefitYears" yaml:"benefitYears" json:"benefitYears"`
}

// Validate checks every field against its valid range.
func (a MajorEventsAssumptions) Validate() error {
	return finance.FirstError(
		finance.ValidateNonNegative("majorEvents.eventsPerYear", a.EventsPerYear),
		finance.ValidateNonNegative("majorEvents.avgTaxPerEvent", a.AvgTaxPerEvent),
		finance.ValidateYears("majorEvents.benefitYears", a.BenefitYears),
	)
}

// MajorEventsResult holds the major-events pipeline projection.
type MajorEventsResult struct {
	AnnualRevenue float64 `json:"annualRevenue"` // $M per year
	TotalEvents   float64 `json:"totalEvents"`
	TotalPV       float64 `json:"totalPV"`
}

// Total returns the present value of the major-events stream.
func (r MajorEventsResult) Total() float64 { return r.TotalPV }

// ProjectMajorEvents discounts the constant annual event tax for BenefitYears
// years starting the year after the event.
func ProjectMajorEvents(a MajorEventsAssumptions, h finance.Horizon) (MajorEventsResult, error) {
	if err := finance.FirstError(h.Validate(), a.Validate()); err != nil {
		return MajorEventsResult{}, fmt.Errorf("major events: %w", err)
	}

	annual := a.EventsPerYear * a.AvgTaxPerEvent
	total, err := annuity(h, annual, h.YearsUntilEvent()+1, a.BenefitYears)
	if err != nil {
		return MajorEventsResult{}, fmt.Errorf("major events: %w", err)
	}

	return MajorEventsResult{
		AnnualRevenue: annual,
		TotalEvents:   a.EventsPerYear * float64(a.BenefitYears),
		TotalPV:       total,
	}, nil
}

// ConventionBusinessAssumptions covers growth in convention and conference trade.
type ConventionBusinessAssumptions struct {
	BaselineRevenue float64 `mapstructure:"baselineRevenue" yaml:"baselineRevenue" json:"baselineRevenue"` // $M per year
	IncreasePct     float64 `mapstructure:"increasePct" yaml:"increasePct" json:"increasePct"`
	TaxRate         float64 `mapstructure:"taxRate" yaml:"taxRate" json:"taxRate"`
	BenefitYears    int     `mapstructure:"benefitYears" yaml:"benefitYears" json:"benefitYears"`
}

// Validate checks every field against its valid range.
func (a ConventionBusinessAssumptions) Validate() error {
	return finance.FirstError(
		finance.ValidateNonNegative("conventionBusiness.baselineRevenue", a.BaselineRevenue),
		finance.ValidateRate("conventionBusiness.increasePct", a.IncreasePct),
		finance.ValidateRate("conventionBusiness.taxRate", a.TaxRate),
		finance.ValidateYears("conventionBusiness.benefitYears", a.BenefitYears),
	)
}

// ConventionBusinessResult holds the convention business projection.
type ConventionBusinessResult struct {
	AdditionalRevenue float64 `json:"additionalRevenue"` // $M per year
	AnnualTax         float64 `json:"annualTax"`         // $M per year
	TotalPV           float64 `json:"totalPV"`
}

// Total returns the present value of the convention stream.
func (r ConventionBusinessResult) Total() float64 { return r.TotalPV }

// ProjectConventionBusiness discounts the tax on additional convention revenue
// for BenefitYears years starting the year after the event.
func ProjectConventionBusiness(a ConventionBusinessAssumptions, h finance.Horizon) (ConventionBusinessResult, error) {
	if err := finance.FirstError(h.Validate(), a.Validate()); err != nil {
		return ConventionBusinessResult{}, fmt.Errorf("convention business: %w", err)
	}

	additional := a.BaselineRevenue * a.IncreasePct
	annualTax := additional * a.TaxRate
	total, err := annuity(h, annualTax, h.YearsUntilEvent()+1, a.BenefitYears)
	if err != nil {
		return ConventionBusinessResult{}, fmt.Errorf("convention business: %w", err)
	}

	return ConventionBusinessResult{
		AdditionalRevenue: additional,
		AnnualTax:         annualTax,
		TotalPV:           total,
	}, nil
}
