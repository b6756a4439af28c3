package streams

import (
	"fmt"
	"math"

	"github.com/iwvelando/event-viability/pkg/constants"
	"github.com/iwvelando/event-viability/pkg/finance"
)

// TourismAssumptions drives the tourism tax projection.
type TourismAssumptions struct {
	BaselineVisitors  float64 `mapstructure:"baselineVisitors" yaml:"baselineVisitors" json:"baselineVisitors"`
	UpliftPct         float64 `mapstructure:"upliftPct" yaml:"upliftPct" json:"upliftPct"`
	CrowdOutPct       float64 `mapstructure:"crowdOutPct" yaml:"crowdOutPct" json:"crowdOutPct"`
	SpendPerVisitor   float64 `mapstructure:"spendPerVisitor" yaml:"spendPerVisitor" json:"spendPerVisitor"` // dollars
	TaxRate           float64 `mapstructure:"taxRate" yaml:"taxRate" json:"taxRate"`
	LegacyYears       int     `mapstructure:"legacyYears" yaml:"legacyYears" json:"legacyYears"`
	LegacyUpliftPct   float64 `mapstructure:"legacyUpliftPct" yaml:"legacyUpliftPct" json:"legacyUpliftPct"`
	InflationRate     float64 `mapstructure:"inflationRate" yaml:"inflationRate" json:"inflationRate"`
	TourismGrowthRate float64 `mapstructure:"tourismGrowthRate" yaml:"tourismGrowthRate" json:"tourismGrowthRate"`
}

// Validate checks every field against its valid range.
func (a TourismAssumptions) Validate() error {
	return finance.FirstError(
		finance.ValidateNonNegative("tourism.baselineVisitors", a.BaselineVisitors),
		finance.ValidateRate("tourism.upliftPct", a.UpliftPct),
		finance.ValidateRate("tourism.crowdOutPct", a.CrowdOutPct),
		finance.ValidateNonNegative("tourism.spendPerVisitor", a.SpendPerVisitor),
		finance.ValidateRate("tourism.taxRate", a.TaxRate),
		finance.ValidateYears("tourism.legacyYears", a.LegacyYears),
		finance.ValidateRate("tourism.legacyUpliftPct", a.LegacyUpliftPct),
		finance.ValidateRate("tourism.inflationRate", a.InflationRate),
		finance.ValidateRate("tourism.tourismGrowthRate", a.TourismGrowthRate),
	)
}

// LegacyYear is one post-event year of residual tourism.
type LegacyYear struct {
	Offset     int     `json:"offset"` // years after the event
	Visitors   float64 `json:"visitors"`
	TaxNominal float64 `json:"taxNominal"`
	TaxPV      float64 `json:"taxPV"`
}

// TourismResult holds the tourism projection.
type TourismResult struct {
	FutureBaseline      float64      `json:"futureBaseline"`
	FutureSpend         float64      `json:"futureSpend"`
	NetVisitors         float64      `json:"netVisitors"`
	GamesYearTaxNominal float64      `json:"gamesYearTaxNominal"`
	GamesYearTaxPV      float64      `json:"gamesYearTaxPV"`
	LegacyPV            float64      `json:"legacyPV"`
	TotalTaxPV          float64      `json:"totalTaxPV"`
	Legacy              []LegacyYear `json:"legacy,omitempty"`
}

// Total returns the present value of event-year and legacy tourism tax.
func (r TourismResult) Total() float64 { return r.TotalTaxPV }

// ProjectTourism projects incremental tourism tax revenue for the event year
// and the decaying legacy years that follow it.
func ProjectTourism(a TourismAssumptions, h finance.Horizon) (TourismResult, error) {
	if err := finance.FirstError(h.Validate(), a.Validate()); err != nil {
		return TourismResult{}, fmt.Errorf("tourism: %w", err)
	}

	yearsUntil := h.YearsUntilEvent()
	var r TourismResult
	r.FutureBaseline = a.BaselineVisitors * math.Pow(1+a.TourismGrowthRate, float64(yearsUntil))
	r.FutureSpend = a.SpendPerVisitor * math.Pow(1+a.InflationRate, float64(yearsUntil))

	r.NetVisitors = r.FutureBaseline * a.UpliftPct * (1 - a.CrowdOutPct)
	r.GamesYearTaxNominal = r.NetVisitors * r.FutureSpend * a.TaxRate / constants.DollarsPerMillion

	var err error
	r.GamesYearTaxPV, err = h.PresentValue(r.GamesYearTaxNominal, yearsUntil)
	if err != nil {
		return TourismResult{}, fmt.Errorf("tourism: %w", err)
	}

	if a.LegacyYears > 0 {
		r.Legacy = make([]LegacyYear, 0, a.LegacyYears)
	}
	for year := 1; year <= a.LegacyYears; year++ {
		visitors := r.NetVisitors * a.LegacyUpliftPct * math.Exp(-constants.LegacyDecayRate*float64(year))
		spending := visitors * r.FutureSpend * math.Pow(1+a.InflationRate, float64(year))
		taxNominal := spending * a.TaxRate / constants.DollarsPerMillion

		pv, err := h.PresentValue(taxNominal, yearsUntil+year)
		if err != nil {
			return TourismResult{}, fmt.Errorf("tourism: legacy year %d: %w", year, err)
		}
		r.LegacyPV += pv
		r.Legacy = append(r.Legacy, LegacyYear{
			Offset:     year,
			Visitors:   visitors,
			TaxNominal: taxNominal,
			TaxPV:      pv,
		})
	}

	r.TotalTaxPV = r.GamesYearTaxPV + r.LegacyPV
	return r, nil
}
