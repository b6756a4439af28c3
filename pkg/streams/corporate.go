package streams

import (
	"fmt"

	"github.com/iwvelando/event-viability/pkg/constants"
	"github.com/iwvelando/event-viability/pkg/finance"
)

// CorporateRelocationAssumptions covers companies relocating to the region.
type CorporateRelocationAssumptions struct {
	NumCompanies           float64 `mapstructure:"numCompanies" yaml:"numCompanies" json:"numCompanies"`
	AvgTaxPerCompany       float64 `mapstructure:"avgTaxPerCompany" yaml:"avgTaxPerCompany" json:"avgTaxPerCompany"`                   // dollars per year
	ConstructionTaxOneTime float64 `mapstructure:"constructionTaxOneTime" yaml:"constructionTaxOneTime" json:"constructionTaxOneTime"` // $M
	BenefitYears           int     `mapstructure:"benefitYears" yaml:"benefitYears" json:"benefitYears"`
}

// Validate checks every field against its valid range.
func (a CorporateRelocationAssumptions) Validate() error {
	return finance.FirstError(
		finance.ValidateNonNegative("corporateRelocation.numCompanies", a.NumCompanies),
		finance.ValidateNonNegative("corporateRelocation.avgTaxPerCompany", a.AvgTaxPerCompany),
		finance.ValidateNonNegative("corporateRelocation.constructionTaxOneTime", a.ConstructionTaxOneTime),
		finance.ValidateYears("corporateRelocation.benefitYears", a.BenefitYears),
	)
}

// CorporateRelocationResult holds the corporate relocation projection.
type CorporateRelocationResult struct {
	AnnualTax      float64 `json:"annualTax"` // $M per year
	ConstructionPV float64 `json:"constructionPV"`
	OngoingPV      float64 `json:"ongoingPV"`
	TotalPV        float64 `json:"totalPV"`
}

// Total returns the present value of the corporate relocation stream.
func (r CorporateRelocationResult) Total() float64 { return r.TotalPV }

// ProjectCorporateRelocation combines a one-time construction-phase credit in
// the event year with ongoing corporate tax starting the year after.
func ProjectCorporateRelocation(a CorporateRelocationAssumptions, h finance.Horizon) (CorporateRelocationResult, error) {
	if err := finance.FirstError(h.Validate(), a.Validate()); err != nil {
		return CorporateRelocationResult{}, fmt.Errorf("corporate relocation: %w", err)
	}

	yearsUntil := h.YearsUntilEvent()
	annualTax := a.NumCompanies * a.AvgTaxPerCompany / constants.DollarsPerMillion

	constructionPV, err := h.PresentValue(a.ConstructionTaxOneTime, yearsUntil)
	if err != nil {
		return CorporateRelocationResult{}, fmt.Errorf("corporate relocation: %w", err)
	}
	ongoingPV, err := annuity(h, annualTax, yearsUntil+1, a.BenefitYears)
	if err != nil {
		return CorporateRelocationResult{}, fmt.Errorf("corporate relocation: %w", err)
	}

	return CorporateRelocationResult{
		AnnualTax:      annualTax,
		ConstructionPV: constructionPV,
		OngoingPV:      ongoingPV,
		TotalPV:        constructionPV + ongoingPV,
	}, nil
}
