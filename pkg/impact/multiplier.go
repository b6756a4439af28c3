// Package impact converts public spending into headline economic figures using
// fixed multipliers. It does not discount.
package impact

import (
	"fmt"

	"github.com/iwvelando/event-viability/pkg/finance"
	"github.com/iwvelando/event-viability/pkg/mathutil"
)

// Multipliers hold the GDP and employment multipliers applied to spending.
type Multipliers struct {
	GDPMultiplier        float64 `mapstructure:"gdpMultiplier" yaml:"gdpMultiplier" json:"gdpMultiplier"`
	EmploymentMultiplier float64 `mapstructure:"employmentMultiplier" yaml:"employmentMultiplier" json:"employmentMultiplier"` // jobs per $M
}

// Validate rejects negative multipliers.
func (m Multipliers) Validate() error {
	return finance.FirstError(
		finance.ValidateNonNegative("multipliers.gdpMultiplier", m.GDPMultiplier),
		finance.ValidateNonNegative("multipliers.employmentMultiplier", m.EmploymentMultiplier),
	)
}

// Economic is the output of the multiplier calculator.
type Economic struct {
	GDPImpact   float64 `json:"gdpImpact"` // $M
	JobsCreated float64 `json:"jobsCreated"`
	ROI         float64 `json:"roi"`
}

// Calculate applies the multipliers to publicSpending ($M) and relates the
// tax benefit present value to it. ROI is 0 when there is no spending.
func Calculate(publicSpending, taxBenefitPV float64, m Multipliers) (Economic, error) {
	if err := finance.FirstError(
		finance.ValidateNonNegative("publicSpending", publicSpending),
		m.Validate(),
	); err != nil {
		return Economic{}, fmt.Errorf("economic impact: %w", err)
	}

	return Economic{
		GDPImpact:   publicSpending * m.GDPMultiplier,
		JobsCreated: publicSpending * m.EmploymentMultiplier,
		ROI:         mathutil.SafeDivide(taxBenefitPV, publicSpending),
	}, nil
}
