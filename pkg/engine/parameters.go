// Package engine runs a complete viability analysis: every enabled stream
// calculator over a shared horizon, the economic multipliers, the aggregate
// cost-benefit position and the scores derived from it.
package engine

import (
	"github.com/iwvelando/event-viability/pkg/assessment"
	"github.com/iwvelando/event-viability/pkg/finance"
	"github.com/iwvelando/event-viability/pkg/impact"
	"github.com/iwvelando/event-viability/pkg/streams"
)

// Parameters is the full input of one analysis.
type Parameters struct {
	Mode    Mode            `mapstructure:"mode" yaml:"mode" json:"mode"`
	Horizon finance.Horizon `mapstructure:",squash" yaml:",inline" json:"horizon"`

	Costs        assessment.Costs   `mapstructure:"costs" yaml:"costs" json:"costs"`
	SalesTaxRate float64            `mapstructure:"salesTaxRate" yaml:"salesTaxRate" json:"salesTaxRate"`
	Multipliers  impact.Multipliers `mapstructure:"multipliers" yaml:"multipliers" json:"multipliers"`

	Tourism             streams.TourismAssumptions             `mapstructure:"tourism" yaml:"tourism" json:"tourism"`
	PropertyTax         streams.PropertyTaxAssumptions         `mapstructure:"propertyTax" yaml:"propertyTax" json:"propertyTax"`
	CorporateRelocation streams.CorporateRelocationAssumptions `mapstructure:"corporateRelocation" yaml:"corporateRelocation" json:"corporateRelocation"`
	MajorEvents         streams.MajorEventsAssumptions         `mapstructure:"majorEvents" yaml:"majorEvents" json:"majorEvents"`
	ConventionBusiness  streams.ConventionBusinessAssumptions  `mapstructure:"conventionBusiness" yaml:"conventionBusiness" json:"conventionBusiness"`
	Infrastructure      streams.InfrastructureAssumptions      `mapstructure:"infrastructure" yaml:"infrastructure" json:"infrastructure"`
	Migration           streams.MigrationAssumptions           `mapstructure:"migration" yaml:"migration" json:"migration"`
}

// Construction derives the construction sales tax assumptions from the public
// spending and the sales tax rate.
func (p Parameters) Construction() streams.ConstructionSalesTaxAssumptions {
	return streams.ConstructionSalesTaxAssumptions{
		PublicSpending: p.Costs.PublicSpending,
		SalesTaxRate:   p.SalesTaxRate,
	}
}

// DefaultParameters returns the reference scenario: a 2036 event assessed in
// 2024 at a 4.5% discount rate.
func DefaultParameters() Parameters {
	return Parameters{
		Mode:         ModeFull,
		Horizon:      finance.NewHorizon(2024, 2036, 0.045),
		Costs:        assessment.Costs{PublicSpending: 10000, PrivateSharePct: 0.30},
		SalesTaxRate: 0.06,
		Multipliers:  impact.Multipliers{GDPMultiplier: 1.8, EmploymentMultiplier: 12},
		Tourism: streams.TourismAssumptions{
			BaselineVisitors:  140_000_000,
			UpliftPct:         0.10,
			CrowdOutPct:       0.50,
			SpendPerVisitor:   1200,
			TaxRate:           0.065,
			LegacyYears:       5,
			LegacyUpliftPct:   0.15,
			InflationRate:     0.03,
			TourismGrowthRate: 0.025,
		},
		PropertyTax: streams.PropertyTaxAssumptions{
			MedianHomeValue: 306000,
			TotalProperties: 10_000_000,
			AppreciationPct: 0.10,
			AffectedPct:     0.05,
			PropertyTaxRate: 0.015,
			BenefitYears:    20,
		},
		CorporateRelocation: streams.CorporateRelocationAssumptions{
			NumCompanies:           200,
			AvgTaxPerCompany:       2000,
			ConstructionTaxOneTime: 150,
			BenefitYears:           20,
		},
		MajorEvents: streams.MajorEventsAssumptions{
			EventsPerYear:  0.5,
			AvgTaxPerEvent: 35,
			BenefitYears:   20,
		},
		ConventionBusiness: streams.ConventionBusinessAssumptions{
			BaselineRevenue: 3000,
			IncreasePct:     0.30,
			TaxRate:         0.065,
			BenefitYears:    20,
		},
		Infrastructure: streams.InfrastructureAssumptions{
			TransitBenefits:    350,
			ResilienceBenefits: 150,
			IncrementalCosts:   3000,
			Years:              20,
		},
		Migration: streams.MigrationAssumptions{
			NetMigrantsAnnual:             8000,
			FiscalContributionPerResident: 1500,
			Years:                         10,
		},
	}
}
