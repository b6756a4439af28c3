// Package output provides utilities for formatting and displaying evaluation results.
package output

import (
	"time"

	"github.com/iwvelando/event-viability/internal/evaluation"
	"github.com/iwvelando/event-viability/pkg/constants"
	"github.com/iwvelando/event-viability/pkg/streams"
	"github.com/shopspring/decimal"
)

const ratioPlaces = 4

// Stream statuses.
const (
	StatusOK      = "ok"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

// StreamLine is one stream's contribution, rounded for reporting.
type StreamLine struct {
	Stream       streams.Name `json:"stream"`
	Label        string       `json:"label"`
	Status       string       `json:"status"`
	PresentValue float64      `json:"presentValue"`
	Share        float64      `json:"share"`
	ComponentBCR float64      `json:"componentBcr"`
	Error        string       `json:"error,omitempty"`
}

// ComparisonLine is the rounded basic-vs-selected comparison.
type ComparisonLine struct {
	BasicBenefits      float64 `json:"basicBenefits"`
	BasicBCR           float64 `json:"basicBcr"`
	BasicTier          string  `json:"basicTier"`
	BasicNetFiscalGain float64 `json:"basicNetFiscalGain"`
	BCRDelta           float64 `json:"bcrDelta"`
	NetFiscalGainDelta float64 `json:"netFiscalGainDelta"`
}

// ScenarioSummary flattens one scenario's report into rounded figures.
type ScenarioSummary struct {
	Scenario            string          `json:"scenario"`
	Mode                string          `json:"mode,omitempty"`
	Tier                string          `json:"tier,omitempty"`
	BCR                 float64         `json:"bcr"`
	TotalBenefits       float64         `json:"totalBenefits"`
	NetPublicCost       float64         `json:"netPublicCost"`
	NetFiscalGain       float64         `json:"netFiscalGain"`
	ROI                 float64         `json:"roi"`
	GDPImpact           float64         `json:"gdpImpact"`
	JobsCreated         float64         `json:"jobsCreated"`
	CompositeScore      float64         `json:"compositeScore"`
	ImpliedAnnualReturn *float64        `json:"impliedAnnualReturn,omitempty"`
	PaybackYears        *float64        `json:"paybackYears,omitempty"`
	Streams             []StreamLine    `json:"streams,omitempty"`
	Comparison          *ComparisonLine `json:"comparison,omitempty"`
	Error               string          `json:"error,omitempty"`
}

// Document is the JSON form of a batch.
type Document struct {
	RunID       string            `json:"runId"`
	GeneratedAt time.Time         `json:"generatedAt"`
	Scenarios   []ScenarioSummary `json:"scenarios"`
}

// Money rounds a $M amount to cents.
func Money(v float64) float64 {
	return roundTo(v, constants.DecimalPlaces)
}

// Ratio rounds a ratio or score to four places.
func Ratio(v float64) float64 {
	return roundTo(v, ratioPlaces)
}

func roundTo(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// Summarize converts every result of the batch, in order.
func Summarize(batch evaluation.Batch) []ScenarioSummary {
	summaries := make([]ScenarioSummary, 0, len(batch.Results))
	for _, r := range batch.Results {
		summaries = append(summaries, summarize(r))
	}
	return summaries
}

func summarize(r evaluation.Result) ScenarioSummary {
	s := ScenarioSummary{Scenario: r.Name}
	if r.Err != nil {
		s.Error = r.Err.Error()
		return s
	}

	rep := r.Report
	agg := rep.Aggregate
	s.Mode = string(rep.Mode)
	s.Tier = rep.Tier.String()
	s.BCR = Ratio(agg.BCR)
	s.TotalBenefits = Money(agg.TotalBenefits)
	s.NetPublicCost = Money(agg.NetPublicCost)
	s.NetFiscalGain = Money(agg.NetFiscalGain)
	s.ROI = Ratio(rep.Economic.ROI)
	s.GDPImpact = Money(rep.Economic.GDPImpact)
	s.JobsCreated = roundTo(rep.Economic.JobsCreated, 0)
	s.CompositeScore = Ratio(rep.Score.Total)
	if rep.Summary.Available {
		ret, payback := Ratio(rep.Summary.ImpliedAnnualReturn), roundTo(rep.Summary.PaybackYears, 1)
		s.ImpliedAnnualReturn, s.PaybackYears = &ret, &payback
	}

	failures := make(map[streams.Name]string, len(agg.Failures))
	for _, f := range agg.Failures {
		failures[f.Stream] = f.Message
	}
	skipped := make(map[streams.Name]bool, len(agg.Skipped))
	for _, name := range agg.Skipped {
		skipped[name] = true
	}

	for _, name := range streams.All {
		line := StreamLine{Stream: name, Label: name.Label(), Status: StatusOK}
		switch {
		case failures[name] != "":
			line.Status = StatusFailed
			line.Error = failures[name]
		case skipped[name]:
			line.Status = StatusSkipped
		default:
			line.PresentValue = Money(agg.Contributions[name])
			line.Share = Ratio(agg.Shares[name])
			line.ComponentBCR = Ratio(agg.ComponentBCR[name])
		}
		s.Streams = append(s.Streams, line)
	}

	if c := rep.Comparison; c != nil {
		s.Comparison = &ComparisonLine{
			BasicBenefits:      Money(c.BasicBenefits),
			BasicBCR:           Ratio(c.BasicBCR),
			BasicTier:          c.BasicTier.String(),
			BasicNetFiscalGain: Money(c.BasicNetFiscalGain),
			BCRDelta:           Ratio(c.BCRDelta),
			NetFiscalGainDelta: Money(c.NetFiscalGainDelta),
		}
	}
	return s
}
