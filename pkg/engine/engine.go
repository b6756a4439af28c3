package engine

import (
	"fmt"

	"github.com/iwvelando/event-viability/pkg/assessment"
	"github.com/iwvelando/event-viability/pkg/finance"
	"github.com/iwvelando/event-viability/pkg/impact"
	"github.com/iwvelando/event-viability/pkg/streams"
)

// taxStreams feed the economic return on public spending.
var taxStreams = []streams.Name{
	streams.Tourism,
	streams.PropertyTax,
	streams.CorporateRelocation,
	streams.MajorEvents,
	streams.ConventionBusiness,
}

// StreamResults holds the detailed projection of every stream that ran
// successfully. Skipped and failed streams are nil.
type StreamResults struct {
	Tourism              *streams.TourismResult              `json:"tourism,omitempty"`
	PropertyTax          *streams.PropertyTaxResult          `json:"propertyTax,omitempty"`
	CorporateRelocation  *streams.CorporateRelocationResult  `json:"corporateRelocation,omitempty"`
	ConstructionSalesTax *streams.ConstructionSalesTaxResult `json:"constructionSalesTax,omitempty"`
	MajorEvents          *streams.MajorEventsResult          `json:"majorEvents,omitempty"`
	ConventionBusiness   *streams.ConventionBusinessResult   `json:"conventionBusiness,omitempty"`
	Infrastructure       *streams.InfrastructureResult       `json:"infrastructure,omitempty"`
	Migration            *streams.MigrationResult            `json:"migration,omitempty"`
}

// Summary carries the rough return figures derived from the BCR. Available is
// false when the BCR is not positive.
type Summary struct {
	ImpliedAnnualReturn float64 `json:"impliedAnnualReturn"`
	PaybackYears        float64 `json:"paybackYears"`
	Available           bool    `json:"available"`
}

// Report is the outcome of one analysis.
type Report struct {
	Mode    Mode            `json:"mode"`
	Horizon finance.Horizon `json:"horizon"` // as evaluated, after any collapse

	Streams      StreamResults              `json:"streams"`
	Outcomes     []assessment.StreamOutcome `json:"-"`
	Aggregate    assessment.AggregateResult `json:"aggregate"`
	Tier         assessment.Tier            `json:"tier"`
	TaxBenefitPV float64                    `json:"taxBenefitPV"`
	Economic     impact.Economic            `json:"economic"`
	Score        assessment.Score           `json:"score"`
	Summary      Summary                    `json:"summary"`
	Comparison   *Comparison                `json:"comparison,omitempty"`
}

// Run evaluates every stream enabled by the mode, then aggregates and scores
// the results. A stream that fails is reported in Aggregate.Failures and does
// not stop the others. Run only returns an error when the horizon, costs or
// multipliers are invalid, since no stream can be assessed without them.
func Run(p Parameters) (Report, error) {
	mode, err := ParseMode(string(p.Mode))
	if err != nil {
		return Report{}, fmt.Errorf("engine: %w", err)
	}
	if err := finance.FirstError(p.Horizon.Validate(), p.Costs.Validate(), p.Multipliers.Validate()); err != nil {
		return Report{}, fmt.Errorf("engine: %w", err)
	}

	h := p.Horizon
	if mode.CollapsesTimeline() {
		h = h.Collapsed()
	}

	rep := Report{Mode: mode, Horizon: h}
	rep.Outcomes = make([]assessment.StreamOutcome, 0, len(streams.All))
	for _, name := range streams.All {
		if !mode.Includes(name) {
			rep.Outcomes = append(rep.Outcomes, assessment.StreamOutcome{Stream: name, Skipped: true})
			continue
		}
		pv, err := rep.Streams.evaluate(name, p, h)
		rep.Outcomes = append(rep.Outcomes, assessment.StreamOutcome{Stream: name, PresentValue: pv, Err: err})
	}

	rep.Aggregate, err = assessment.Aggregate(rep.Outcomes, p.Costs)
	if err != nil {
		return Report{}, fmt.Errorf("engine: %w", err)
	}
	rep.Tier = assessment.Classify(rep.Aggregate.BCR)

	rep.TaxBenefitPV = sumOf(rep.Aggregate.Contributions, taxStreams)
	rep.Economic, err = impact.Calculate(p.Costs.PublicSpending, rep.TaxBenefitPV, p.Multipliers)
	if err != nil {
		return Report{}, fmt.Errorf("engine: %w", err)
	}

	revenue := rep.TaxBenefitPV
	if mode == ModeBasic {
		revenue = rep.Aggregate.Contributions[streams.Tourism]
	}
	rep.Score = assessment.Composite(assessment.ScoreInputs{
		RevenuePV:      revenue,
		RevenueMax:     assessment.RevenueScoreMax(mode == ModeBasic),
		ROI:            rep.Economic.ROI,
		Infrastructure: rep.Aggregate.Contributions[streams.InfrastructureNPV],
		Migration:      rep.Aggregate.Contributions[streams.MigrationValue],
	})
	rep.Summary = summarize(rep.Aggregate.BCR)

	if mode != ModeBasic {
		rep.Comparison = compareBasic(rep, p)
	}
	return rep, nil
}

func summarize(bcr float64) Summary {
	rate, ok := assessment.ImpliedAnnualReturn(bcr)
	if !ok {
		return Summary{}
	}
	years, _ := assessment.PaybackYears(bcr)
	return Summary{ImpliedAnnualReturn: rate, PaybackYears: years, Available: true}
}

func sumOf(contributions map[streams.Name]float64, names []streams.Name) float64 {
	total := 0.0
	for _, name := range names {
		total += contributions[name]
	}
	return total
}

// evaluate runs one stream calculator and records its detailed result.
func (s *StreamResults) evaluate(name streams.Name, p Parameters, h finance.Horizon) (float64, error) {
	switch name {
	case streams.Tourism:
		return project(&s.Tourism, func() (streams.TourismResult, error) {
			return streams.ProjectTourism(p.Tourism, h)
		})
	case streams.PropertyTax:
		return project(&s.PropertyTax, func() (streams.PropertyTaxResult, error) {
			return streams.ProjectPropertyTax(p.PropertyTax, h)
		})
	case streams.CorporateRelocation:
		return project(&s.CorporateRelocation, func() (streams.CorporateRelocationResult, error) {
			return streams.ProjectCorporateRelocation(p.CorporateRelocation, h)
		})
	case streams.ConstructionSalesTax:
		return project(&s.ConstructionSalesTax, func() (streams.ConstructionSalesTaxResult, error) {
			return streams.ProjectConstructionSalesTax(p.Construction(), h)
		})
	case streams.MajorEvents:
		return project(&s.MajorEvents, func() (streams.MajorEventsResult, error) {
			return streams.ProjectMajorEvents(p.MajorEvents, h)
		})
	case streams.ConventionBusiness:
		return project(&s.ConventionBusiness, func() (streams.ConventionBusinessResult, error) {
			return streams.ProjectConventionBusiness(p.ConventionBusiness, h)
		})
	case streams.InfrastructureNPV:
		return project(&s.Infrastructure, func() (streams.InfrastructureResult, error) {
			return streams.ProjectInfrastructure(p.Infrastructure, h)
		})
	case streams.MigrationValue:
		return project(&s.Migration, func() (streams.MigrationResult, error) {
			return streams.ProjectMigration(p.Migration, h)
		})
	default:
		return 0, fmt.Errorf("unknown stream %q", name)
	}
}

func project[R streams.Result](dst **R, fn func() (R, error)) (float64, error) {
	r, err := fn()
	if err != nil {
		return 0, err
	}
	*dst = &r
	return r.Total(), nil
}
