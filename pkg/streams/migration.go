package streams

import (
	"fmt"

	"github.com/iwvelando/event-viability/pkg/constants"
	"github.com/iwvelando/event-viability/pkg/finance"
)

// MigrationAssumptions covers residents drawn to the region after the event.
type MigrationAssumptions struct {
	NetMigrantsAnnual             float64 `mapstructure:"netMigrantsAnnual" yaml:"netMigrantsAnnual" json:"netMigrantsAnnual"`
	FiscalContributionPerResident float64 `mapstructure:"fiscalContributionPerResident" yaml:"fiscalContributionPerResident" json:"fiscalContributionPerResident"` // dollars per year
	Years                         int     `mapstructure:"years" yaml:"years" json:"years"`
}

// Validate checks every field against its valid range.
func (a MigrationAssumptions) Validate() error {
	return finance.FirstError(
		finance.ValidateNonNegative("migration.netMigrantsAnnual", a.NetMigrantsAnnual),
		finance.ValidateNonNegative("migration.fiscalContributionPerResident", a.FiscalContributionPerResident),
		finance.ValidateYears("migration.years", a.Years),
	)
}

// MigrationYear is one year of accumulated migrant contributions.
type MigrationYear struct {
	Offset             int     `json:"offset"`
	CumulativeMigrants float64 `json:"cumulativeMigrants"`
	Contribution       float64 `json:"contribution"` // nominal $M
	ContributionPV     float64 `json:"contributionPV"`
}

// MigrationResult holds the migration value projection.
type MigrationResult struct {
	TotalPV float64         `json:"totalPV"`
	Series  []MigrationYear `json:"series,omitempty"`
}

// Total returns the present value of migrant fiscal contributions.
func (r MigrationResult) Total() float64 { return r.TotalPV }

// ProjectMigration accumulates migrants linearly and discounts their yearly
// fiscal contribution. The retention multiplier is applied to the cumulative
// count as a flat factor, not compounded per year.
func ProjectMigration(a MigrationAssumptions, h finance.Horizon) (MigrationResult, error) {
	if err := finance.FirstError(h.Validate(), a.Validate()); err != nil {
		return MigrationResult{}, fmt.Errorf("migration: %w", err)
	}

	yearsUntil := h.YearsUntilEvent()
	r := MigrationResult{Series: make([]MigrationYear, 0, a.Years)}
	for year := 1; year <= a.Years; year++ {
		cumulative := a.NetMigrantsAnnual * float64(year) * constants.MigrationRetentionMultiplier
		contribution := cumulative * a.FiscalContributionPerResident / constants.DollarsPerMillion

		pv, err := h.PresentValue(contribution, yearsUntil+year)
		if err != nil {
			return MigrationResult{}, fmt.Errorf("migration: year %d: %w", year, err)
		}
		r.TotalPV += pv
		r.Series = append(r.Series, MigrationYear{
			Offset:             year,
			CumulativeMigrants: cumulative,
			Contribution:       contribution,
			ContributionPV:     pv,
		})
	}
	return r, nil
}
