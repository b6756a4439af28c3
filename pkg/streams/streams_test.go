package streams

import (
	"errors"
	"testing"

	"github.com/iwvelando/event-viability/pkg/finance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const refTolerance = 1e-6

func referenceHorizon() finance.Horizon {
	return finance.NewHorizon(2024, 2036, 0.045)
}

func referenceTourism() TourismAssumptions {
	return TourismAssumptions{
		BaselineVisitors:  140_000_000,
		UpliftPct:         0.10,
		CrowdOutPct:       0.50,
		SpendPerVisitor:   1200,
		TaxRate:           0.065,
		LegacyYears:       5,
		LegacyUpliftPct:   0.15,
		InflationRate:     0.03,
		TourismGrowthRate: 0.025,
	}
}

func TestProjectTourismGolden(t *testing.T) {
	r, err := ProjectTourism(referenceTourism(), referenceHorizon())
	require.NoError(t, err)

	assert.InDelta(t, 617.3482743318908, r.GamesYearTaxPV, 1e-9)
	assert.InDelta(t, 872.005687616032, r.TotalTaxPV, 1e-9)
	assert.InDelta(t, 1046.9494759907363, r.GamesYearTaxNominal, 1e-9)
	assert.InDelta(t, 254.65741328414123, r.LegacyPV, 1e-9)
	assert.InDelta(t, 188284435.3944816, r.FutureBaseline, 1e-3)
	assert.Equal(t, r.TotalTaxPV, r.Total())

	require.Len(t, r.Legacy, 5)
	expectedLegacy := []float64{74.72803034666926, 60.30392407523031, 48.663978456287914, 39.270791005900406, 31.690689400053348}
	for i, want := range expectedLegacy {
		assert.Equal(t, i+1, r.Legacy[i].Offset)
		assert.InDelta(t, want, r.Legacy[i].TaxPV, 1e-9)
	}
	assert.InDelta(t, 1156156.931875399, r.Legacy[0].Visitors, 1e-3)
}

func TestProjectTourismEdgeCases(t *testing.T) {
	t.Run("Full crowd-out yields zero", func(t *testing.T) {
		for _, uplift := range []float64{0, 0.1, 0.3, 1} {
			a := referenceTourism()
			a.CrowdOutPct = 1
			a.UpliftPct = uplift
			a.LegacyYears = 10
			r, err := ProjectTourism(a, referenceHorizon())
			require.NoError(t, err)
			assert.Zero(t, r.TotalTaxPV)
			assert.Zero(t, r.NetVisitors)
		}
	})

	t.Run("No legacy years yields zero legacy", func(t *testing.T) {
		a := referenceTourism()
		a.LegacyYears = 0
		r, err := ProjectTourism(a, referenceHorizon())
		require.NoError(t, err)
		assert.Zero(t, r.LegacyPV)
		assert.Empty(t, r.Legacy)
		assert.Equal(t, r.GamesYearTaxPV, r.TotalTaxPV)
	})

	t.Run("Event this year is not discounted", func(t *testing.T) {
		a := referenceTourism()
		a.LegacyYears = 0
		r, err := ProjectTourism(a, referenceHorizon().Collapsed())
		require.NoError(t, err)
		// 140M * 0.1 * 0.5 * 1200 * 0.065 / 1e6
		assert.InDelta(t, 546.0, r.GamesYearTaxPV, refTolerance)
		assert.Equal(t, r.GamesYearTaxNominal, r.GamesYearTaxPV)
	})
}

func TestProjectTourismDomainErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TourismAssumptions)
		field  string
	}{
		{"Negative visitors", func(a *TourismAssumptions) { a.BaselineVisitors = -1 }, "tourism.baselineVisitors"},
		{"Uplift above one", func(a *TourismAssumptions) { a.UpliftPct = 1.5 }, "tourism.upliftPct"},
		{"Negative crowd-out", func(a *TourismAssumptions) { a.CrowdOutPct = -0.1 }, "tourism.crowdOutPct"},
		{"Negative legacy years", func(a *TourismAssumptions) { a.LegacyYears = -1 }, "tourism.legacyYears"},
		{"Negative growth", func(a *TourismAssumptions) { a.TourismGrowthRate = -0.02 }, "tourism.tourismGrowthRate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := referenceTourism()
			tt.mutate(&a)
			_, err := ProjectTourism(a, referenceHorizon())
			require.ErrorIs(t, err, finance.ErrDomain)

			var domainErr *finance.DomainError
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, tt.field, domainErr.Field)
		})
	}

	_, err := ProjectTourism(referenceTourism(), finance.NewHorizon(2024, 2036, 1.0))
	assert.ErrorIs(t, err, finance.ErrDomain)
}

func TestProjectPropertyTax(t *testing.T) {
	a := PropertyTaxAssumptions{
		MedianHomeValue: 306000,
		TotalProperties: 10_000_000,
		AppreciationPct: 0.10,
		AffectedPct:     0.05,
		PropertyTaxRate: 0.015,
		BenefitYears:    20,
	}
	r, err := ProjectPropertyTax(a, referenceHorizon())
	require.NoError(t, err)
	assert.InDelta(t, 15300.0, r.ValueIncrease, refTolerance)
	assert.InDelta(t, 229.5, r.AnnualTax, refTolerance)
	assert.InDelta(t, 1839.55129116508, r.TotalPV, refTolerance)

	a.BenefitYears = 1
	r, err = ProjectPropertyTax(a, referenceHorizon().Collapsed())
	require.NoError(t, err)
	assert.InDelta(t, 229.5, r.TotalPV, refTolerance, "a single year in the event year is undiscounted when the event is now")

	a.AffectedPct = 2
	_, err = ProjectPropertyTax(a, referenceHorizon())
	assert.ErrorIs(t, err, finance.ErrDomain)
}

func TestProjectCorporateRelocation(t *testing.T) {
	a := CorporateRelocationAssumptions{
		NumCompanies:           200,
		AvgTaxPerCompany:       2000,
		ConstructionTaxOneTime: 150,
		BenefitYears:           20,
	}
	r, err := ProjectCorporateRelocation(a, referenceHorizon())
	require.NoError(t, err)
	assert.InDelta(t, 0.4, r.AnnualTax, refTolerance)
	assert.InDelta(t, 88.44957972986558, r.ConstructionPV, refTolerance)
	assert.InDelta(t, 3.068124032757012, r.OngoingPV, refTolerance)
	assert.InDelta(t, 91.51770376262259, r.Total(), refTolerance)

	a.NumCompanies = -5
	_, err = ProjectCorporateRelocation(a, referenceHorizon())
	assert.ErrorIs(t, err, finance.ErrDomain)
}

func TestProjectConstructionSalesTax(t *testing.T) {
	a := ConstructionSalesTaxAssumptions{PublicSpending: 10000, SalesTaxRate: 0.06}

	tests := []struct {
		name          string
		eventYear     int
		expectedPV    float64
		excludedYears int
	}{
		{"Full window", 2036, 413.89401714656486, 0},
		{"Window starting now", 2030, 100 * (1 + 1/1.045 + 1/(1.045*1.045) + 1/(1.045*1.045*1.045) + 1/(1.045*1.045*1.045*1.045) + 1/(1.045*1.045*1.045*1.045*1.045)), 0},
		{"Three years truncated", 2027, 100 * (1 + 1/1.045 + 1/(1.045*1.045)), 3},
		{"Event this year drops whole window", 2024, 0, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ProjectConstructionSalesTax(a, finance.NewHorizon(2024, tt.eventYear, 0.045))
			require.NoError(t, err)
			assert.InDelta(t, tt.expectedPV, r.TotalPV, refTolerance)
			assert.Equal(t, tt.excludedYears, r.ExcludedYears)
			assert.InDelta(t, 600.0, r.TotalTax, refTolerance)
		})
	}
}

func TestProjectMajorEventsAndConvention(t *testing.T) {
	events, err := ProjectMajorEvents(MajorEventsAssumptions{EventsPerYear: 0.5, AvgTaxPerEvent: 35, BenefitYears: 20}, referenceHorizon())
	require.NoError(t, err)
	assert.InDelta(t, 17.5, events.AnnualRevenue, refTolerance)
	assert.InDelta(t, 10.0, events.TotalEvents, refTolerance)
	assert.InDelta(t, 134.23042643311928, events.TotalPV, refTolerance)

	convention, err := ProjectConventionBusiness(ConventionBusinessAssumptions{BaselineRevenue: 3000, IncreasePct: 0.30, TaxRate: 0.065, BenefitYears: 20}, referenceHorizon())
	require.NoError(t, err)
	assert.InDelta(t, 900.0, convention.AdditionalRevenue, refTolerance)
	assert.InDelta(t, 58.5, convention.AnnualTax, refTolerance)
	assert.InDelta(t, 448.7131397907129, convention.TotalPV, refTolerance)

	zero, err := ProjectMajorEvents(MajorEventsAssumptions{EventsPerYear: 3, AvgTaxPerEvent: 35}, referenceHorizon())
	require.NoError(t, err)
	assert.Zero(t, zero.TotalPV)

	_, err = ProjectConventionBusiness(ConventionBusinessAssumptions{BaselineRevenue: 3000, IncreasePct: 0.3, TaxRate: 0.065, BenefitYears: -1}, referenceHorizon())
	assert.ErrorIs(t, err, finance.ErrDomain)
}

func TestProjectInfrastructure(t *testing.T) {
	a := InfrastructureAssumptions{TransitBenefits: 350, ResilienceBenefits: 150, IncrementalCosts: 3000, Years: 20}
	r, err := ProjectInfrastructure(a, referenceHorizon())
	require.NoError(t, err)
	assert.InDelta(t, 179.72956563162762, r.NPV, refTolerance)
	require.Len(t, r.Schedule, 21)
	assert.InDelta(t, 900.0, r.Schedule[0].Cost, refTolerance)
	assert.InDelta(t, 300.0, r.Schedule[3].Cost, refTolerance)
	assert.InDelta(t, 60.0, r.Schedule[6].Cost, refTolerance)

	heavy := a
	heavy.IncrementalCosts = 20000
	r, err = ProjectInfrastructure(heavy, referenceHorizon())
	require.NoError(t, err)
	assert.Less(t, r.NPV, 0.0, "infrastructure NPV may be negative")
}

func TestUtilizationAndCostShare(t *testing.T) {
	assert.InDelta(t, 0.3, Utilization(0), 1e-12)
	assert.InDelta(t, 0.65, Utilization(10), 1e-12)
	assert.InDelta(t, 1.0, Utilization(20), 1e-12)
	assert.Equal(t, 1.0, Utilization(40))

	for year, want := range map[int]float64{0: 0.3, 2: 0.3, 3: 0.1, 5: 0.1, 6: 0.02, 19: 0.02} {
		assert.Equal(t, want, CostShare(year), "year %d", year)
	}
}

func TestProjectMigration(t *testing.T) {
	a := MigrationAssumptions{NetMigrantsAnnual: 8000, FiscalContributionPerResident: 1500, Years: 10}
	r, err := ProjectMigration(a, referenceHorizon())
	require.NoError(t, err)
	assert.InDelta(t, 302.06346920270516, r.TotalPV, refTolerance)
	require.Len(t, r.Series, 10)
	assert.InDelta(t, 8400.0, r.Series[0].CumulativeMigrants, refTolerance)
	assert.InDelta(t, 84000.0, r.Series[9].CumulativeMigrants, refTolerance, "retention factor is flat, not compounded")

	a.Years = 0
	r, err = ProjectMigration(a, referenceHorizon())
	require.NoError(t, err)
	assert.Zero(t, r.TotalPV)
}

func TestNameLabels(t *testing.T) {
	assert.Len(t, All, 8)
	for _, name := range All {
		assert.NotEqual(t, string(name), name.Label())
	}
	assert.Equal(t, "unknown", Name("unknown").Label())
}
