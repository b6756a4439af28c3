package streams

import (
	"fmt"

	"github.com/iwvelando/event-viability/pkg/constants"
	"github.com/iwvelando/event-viability/pkg/finance"
)

// ConstructionSalesTaxAssumptions describes sales tax collected on public
// construction spending. The result offsets public cost.
type ConstructionSalesTaxAssumptions struct {
	PublicSpending float64 `mapstructure:"publicSpending" yaml:"publicSpending" json:"publicSpending"` // $M
	SalesTaxRate   float64 `mapstructure:"salesTaxRate" yaml:"salesTaxRate" json:"salesTaxRate"`
}

// Validate checks every field against its valid range.
func (a ConstructionSalesTaxAssumptions) Validate() error {
	return finance.FirstError(
		finance.ValidateNonNegative("constructionSalesTax.publicSpending", a.PublicSpending),
		finance.ValidateRate("constructionSalesTax.salesTaxRate", a.SalesTaxRate),
	)
}

// ConstructionSalesTaxResult holds the construction sales tax projection.
type ConstructionSalesTaxResult struct {
	TotalTax float64 `json:"totalTax"` // nominal $M over the whole window
	TotalPV  float64 `json:"totalPV"`
	// ExcludedYears counts window years that fell before the current year and
	// were dropped, under-counting the credit for near-term events.
	ExcludedYears int `json:"excludedYears"`
}

// Total returns the present value of the construction sales tax offset.
func (r ConstructionSalesTaxResult) Total() float64 { return r.TotalPV }

// ProjectConstructionSalesTax spreads public spending evenly across the
// construction window that closes the year before the event and discounts the
// sales tax on each year's portion.
func ProjectConstructionSalesTax(a ConstructionSalesTaxAssumptions, h finance.Horizon) (ConstructionSalesTaxResult, error) {
	if err := finance.FirstError(h.Validate(), a.Validate()); err != nil {
		return ConstructionSalesTaxResult{}, fmt.Errorf("construction sales tax: %w", err)
	}

	window := constants.ConstructionWindowYears
	annualTax := a.PublicSpending / float64(window) * a.SalesTaxRate
	start := h.YearsUntilEvent() - window

	r := ConstructionSalesTaxResult{TotalTax: a.PublicSpending * a.SalesTaxRate}
	for year := 0; year < window; year++ {
		actualYear := start + year
		if actualYear < 0 {
			r.ExcludedYears++
			continue
		}
		pv, err := h.PresentValue(annualTax, actualYear)
		if err != nil {
			return ConstructionSalesTaxResult{}, fmt.Errorf("construction sales tax: %w", err)
		}
		r.TotalPV += pv
	}
	return r, nil
}
