package assessment

import (
	"github.com/iwvelando/event-viability/pkg/constants"
	"github.com/iwvelando/event-viability/pkg/mathutil"
)

// ScoreInputs are the raw figures blended into the composite score.
type ScoreInputs struct {
	RevenuePV      float64
	RevenueMax     float64 // upper reference bound for RevenuePV
	ROI            float64
	Infrastructure float64
	Migration      float64
}

// Score is the composite score with its normalized components.
type Score struct {
	Revenue        float64 `json:"revenue"`
	Economic       float64 `json:"economic"`
	Infrastructure float64 `json:"infrastructure"`
	Migration      float64 `json:"migration"`
	Total          float64 `json:"total"`
}

// RevenueScoreMax is the revenue reference bound. The tourism-only pool of a
// basic analysis is scored against a lower ceiling than total tax revenue.
func RevenueScoreMax(tourismOnly bool) float64 {
	if tourismOnly {
		return constants.TourismRevenueScoreMax
	}
	return constants.TotalRevenueScoreMax
}

// Composite blends the normalized inputs into a single score in [0,1]. It is
// advisory and plays no part in Classify.
func Composite(in ScoreInputs) Score {
	s := Score{
		Revenue:        mathutil.Normalize(in.RevenuePV, 0, in.RevenueMax),
		Economic:       mathutil.Normalize(in.ROI, constants.ROIScoreMin, constants.ROIScoreMax),
		Infrastructure: mathutil.Normalize(in.Infrastructure, 0, constants.InfrastructureScoreMax),
		Migration:      mathutil.Normalize(in.Migration, 0, constants.MigrationScoreMax),
	}
	s.Total = s.Revenue*constants.RevenueWeight +
		s.Economic*constants.EconomicWeight +
		s.Infrastructure*constants.InfrastructureWeight +
		s.Migration*constants.MigrationWeight
	return s
}
