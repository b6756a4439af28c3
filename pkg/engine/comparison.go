package engine

import (
	"github.com/iwvelando/event-viability/pkg/assessment"
	"github.com/iwvelando/event-viability/pkg/mathutil"
	"github.com/iwvelando/event-viability/pkg/streams"
)

// Comparison sets the basic benefit pool (tourism, infrastructure and
// migration) of a run against the same net public cost as the run itself.
type Comparison struct {
	BasicBenefits      float64         `json:"basicBenefits"`
	BasicBCR           float64         `json:"basicBcr"`
	BasicNetFiscalGain float64         `json:"basicNetFiscalGain"`
	BasicTier          assessment.Tier `json:"basicTier"`
	BasicScore         float64         `json:"basicScore"`

	BenefitsDelta      float64 `json:"benefitsDelta"`
	BCRDelta           float64 `json:"bcrDelta"`
	NetFiscalGainDelta float64 `json:"netFiscalGainDelta"`
	ScoreDelta         float64 `json:"scoreDelta"`
}

func compareBasic(rep Report, p Parameters) *Comparison {
	agg := rep.Aggregate
	tourism := agg.Contributions[streams.Tourism]

	c := &Comparison{BasicBenefits: sumOf(agg.Contributions, BasicStreams)}
	c.BasicBCR = assessment.BenefitCostRatio(c.BasicBenefits, agg.NetPublicCost)
	c.BasicNetFiscalGain = c.BasicBenefits - agg.NetPublicCost
	c.BasicTier = assessment.Classify(c.BasicBCR)
	c.BasicScore = assessment.Composite(assessment.ScoreInputs{
		RevenuePV:      tourism,
		RevenueMax:     assessment.RevenueScoreMax(true),
		ROI:            mathutil.SafeDivide(c.BasicBenefits, p.Costs.PublicSpending),
		Infrastructure: agg.Contributions[streams.InfrastructureNPV],
		Migration:      agg.Contributions[streams.MigrationValue],
	}).Total

	c.BenefitsDelta = agg.TotalBenefits - c.BasicBenefits
	c.BCRDelta = agg.BCR - c.BasicBCR
	c.NetFiscalGainDelta = agg.NetFiscalGain - c.BasicNetFiscalGain
	c.ScoreDelta = rep.Score.Total - c.BasicScore
	return c
}
