package streams

import (
	"fmt"

	"github.com/iwvelando/event-viability/pkg/constants"
	"github.com/iwvelando/event-viability/pkg/finance"
)

// PropertyTaxAssumptions describes a one-time appreciation of part of the
// housing stock and the property tax it yields.
type PropertyTaxAssumptions struct {
	MedianHomeValue float64 `mapstructure:"medianHomeValue" yaml:"medianHomeValue" json:"medianHomeValue"` // dollars
	TotalProperties float64 `mapstructure:"totalProperties" yaml:"totalProperties" json:"totalProperties"`
	AppreciationPct float64 `mapstructure:"appreciationPct" yaml:"appreciationPct" json:"appreciationPct"`
	AffectedPct     float64 `mapstructure:"affectedPct" yaml:"affectedPct" json:"affectedPct"`
	PropertyTaxRate float64 `mapstructure:"propertyTaxRate" yaml:"propertyTaxRate" json:"propertyTaxRate"`
	BenefitYears    int     `mapstructure:"benefitYears" yaml:"benefitYears" json:"benefitYears"`
}

// Validate checks every field against its valid range.
func (a PropertyTaxAssumptions) Validate() error {
	return finance.FirstError(
		finance.ValidateNonNegative("propertyTax.medianHomeValue", a.MedianHomeValue),
		finance.ValidateNonNegative("propertyTax.totalProperties", a.TotalProperties),
		finance.ValidateRate("propertyTax.appreciationPct", a.AppreciationPct),
		finance.ValidateRate("propertyTax.affectedPct", a.AffectedPct),
		finance.ValidateRate("propertyTax.propertyTaxRate", a.PropertyTaxRate),
		finance.ValidateYears("propertyTax.benefitYears", a.BenefitYears),
	)
}

// PropertyTaxResult holds the property tax projection.
type PropertyTaxResult struct {
	ValueIncrease float64 `json:"valueIncrease"` // $M
	AnnualTax     float64 `json:"annualTax"`     // $M per year
	TotalPV       float64 `json:"totalPV"`
}

// Total returns the present value of the property tax stream.
func (r PropertyTaxResult) Total() float64 { return r.TotalPV }

// ProjectPropertyTax discounts the permanent property tax uplift for
// BenefitYears years starting in the event year. No decay is applied.
func ProjectPropertyTax(a PropertyTaxAssumptions, h finance.Horizon) (PropertyTaxResult, error) {
	if err := finance.FirstError(h.Validate(), a.Validate()); err != nil {
		return PropertyTaxResult{}, fmt.Errorf("property tax: %w", err)
	}

	valueIncrease := a.TotalProperties * a.AffectedPct * a.MedianHomeValue * a.AppreciationPct
	annualTax := valueIncrease * a.PropertyTaxRate / constants.DollarsPerMillion

	total, err := annuity(h, annualTax, h.YearsUntilEvent(), a.BenefitYears)
	if err != nil {
		return PropertyTaxResult{}, fmt.Errorf("property tax: %w", err)
	}

	return PropertyTaxResult{
		ValueIncrease: valueIncrease / constants.DollarsPerMillion,
		AnnualTax:     annualTax,
		TotalPV:       total,
	}, nil
}
