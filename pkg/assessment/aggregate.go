// Package assessment turns stream present values into a cost-benefit verdict:
// the aggregate benefit pool, the net public cost, the benefit-cost ratio, the
// viability tier and the advisory composite score.
package assessment

import (
	"fmt"

	"github.com/iwvelando/event-viability/pkg/finance"
	"github.com/iwvelando/event-viability/pkg/mathutil"
	"github.com/iwvelando/event-viability/pkg/streams"
)

// Costs describes the public outlay for the event.
type Costs struct {
	PublicSpending  float64 `mapstructure:"publicSpending" yaml:"publicSpending" json:"publicSpending"` // $M
	PrivateSharePct float64 `mapstructure:"privateSharePct" yaml:"privateSharePct" json:"privateSharePct"`
}

// Validate checks spending is non-negative and the private share is a fraction.
func (c Costs) Validate() error {
	return finance.FirstError(
		finance.ValidateNonNegative("costs.publicSpending", c.PublicSpending),
		finance.ValidateRate("costs.privateSharePct", c.PrivateSharePct),
	)
}

// StreamOutcome is the result of evaluating one stream. Exactly one of
// PresentValue, Err or Skipped is meaningful.
type StreamOutcome struct {
	Stream       streams.Name
	PresentValue float64
	Err          error
	Skipped      bool
}

// Failure records a stream that could not be evaluated.
type Failure struct {
	Stream  streams.Name `json:"stream"`
	Message string       `json:"message"`
	Err     error        `json:"-"`
}

// AggregateResult is the combined cost-benefit position. Money is in $M.
type AggregateResult struct {
	TotalBenefits         float64                  `json:"totalBenefits"`
	GrossPublicCost       float64                  `json:"grossPublicCost"`
	PrivateContribution   float64                  `json:"privateContribution"`
	ConstructionTaxOffset float64                  `json:"constructionTaxOffset"`
	NetPublicCost         float64                  `json:"netPublicCost"`
	NetFiscalGain         float64                  `json:"netFiscalGain"`
	BCR                   float64                  `json:"bcr"`
	Contributions         map[streams.Name]float64 `json:"contributions"`
	Shares                map[streams.Name]float64 `json:"shares"`
	ComponentBCR          map[streams.Name]float64 `json:"componentBcr"`
	Skipped               []streams.Name           `json:"skipped,omitempty"`
	Failures              []Failure                `json:"failures,omitempty"`
}

// Failed reports whether any stream could not be evaluated.
func (r AggregateResult) Failed() bool { return len(r.Failures) > 0 }

// BenefitCostRatio divides benefits by cost, returning 0 when the cost is not
// positive.
func BenefitCostRatio(totalBenefits, netPublicCost float64) float64 {
	return mathutil.SafeDivide(totalBenefits, netPublicCost)
}

// Aggregate sums the successful outcomes and relates them to the net public
// cost. Failed streams are left out of every sum and listed in Failures;
// skipped streams contribute zero. The construction stream's present value is
// both a benefit and an offset against the public cost.
func Aggregate(outcomes []StreamOutcome, costs Costs) (AggregateResult, error) {
	if err := costs.Validate(); err != nil {
		return AggregateResult{}, fmt.Errorf("aggregate: %w", err)
	}

	r := AggregateResult{
		Contributions: make(map[streams.Name]float64, len(outcomes)),
		Shares:        make(map[streams.Name]float64, len(outcomes)),
		ComponentBCR:  make(map[streams.Name]float64, len(outcomes)),
	}

	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			r.Failures = append(r.Failures, Failure{Stream: o.Stream, Message: o.Err.Error(), Err: o.Err})
			continue
		case o.Skipped:
			r.Skipped = append(r.Skipped, o.Stream)
			r.Contributions[o.Stream] = 0
			continue
		}
		r.Contributions[o.Stream] += o.PresentValue
		r.TotalBenefits += o.PresentValue
		if o.Stream == streams.ConstructionSalesTax {
			r.ConstructionTaxOffset += o.PresentValue
		}
	}

	r.GrossPublicCost = costs.PublicSpending
	r.PrivateContribution = costs.PublicSpending * costs.PrivateSharePct
	r.NetPublicCost = r.GrossPublicCost - r.PrivateContribution - r.ConstructionTaxOffset
	r.NetFiscalGain = r.TotalBenefits - r.NetPublicCost
	r.BCR = BenefitCostRatio(r.TotalBenefits, r.NetPublicCost)

	for name, pv := range r.Contributions {
		r.Shares[name] = mathutil.SafeDivide(pv, r.TotalBenefits)
		r.ComponentBCR[name] = BenefitCostRatio(pv, r.NetPublicCost)
	}

	return r, nil
}
