// Package breakeven searches for the value of a single parameter at which a
// scenario's benefit-cost ratio reaches 1.0.
package breakeven

import (
	"fmt"
	"math"

	"github.com/iwvelando/event-viability/pkg/constants"
	"github.com/iwvelando/event-viability/pkg/engine"
	"github.com/iwvelando/event-viability/pkg/mathutil"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

const (
	defaultTolerance     = 1e-6
	defaultMaxIterations = 200
)

// Options tune the search. Zero values select the defaults and the field's
// own bounds.
type Options struct {
	Lower         *float64
	Upper         *float64
	Tolerance     float64 // on the BCR
	MaxIterations int
}

// Summary captures the result of a single break-even search.
type Summary struct {
	Scenario        string   `json:"scenario"`
	Field           Field    `json:"field"`
	Original        float64  `json:"original"`
	OriginalBCR     float64  `json:"originalBcr"`
	Value           float64  `json:"value"`
	BCR             float64  `json:"bcr"`
	Lower           float64  `json:"lower"`
	Upper           float64  `json:"upper"`
	Iterations      int      `json:"iterations"`
	Converged       bool     `json:"converged"`
	Notes           []string `json:"notes,omitempty"`
	OriginalDisplay string   `json:"originalDisplay,omitempty"`
	ValueDisplay    string   `json:"valueDisplay,omitempty"`
}

type evaluation struct {
	value float64
	bcr   float64
}

func (e evaluation) gap() float64 {
	return e.bcr - constants.MarginalThreshold
}

func (e evaluation) converged(tolerance float64) bool {
	return mathutil.WithinTolerance(e.bcr, constants.MarginalThreshold, tolerance)
}

// Solver runs break-even searches for one parameter set.
type Solver struct {
	logger *zap.Logger
	name   string
	params engine.Parameters
}

// NewSolver constructs a Solver for the named scenario parameters.
func NewSolver(logger *zap.Logger, name string, p engine.Parameters) *Solver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Solver{logger: logger, name: name, params: p}
}

// Solve bisects the field's interval for a BCR of 1.0. When the interval does
// not bracket the break-even point the summary is not converged and reports
// the bound whose BCR comes closest.
func (s *Solver) Solve(field Field, opts Options) (Summary, error) {
	lo, hi := field.Bounds()
	if opts.Lower != nil {
		lo = *opts.Lower
	}
	if opts.Upper != nil {
		hi = *opts.Upper
	}
	if !(lo < hi) {
		return Summary{}, fmt.Errorf("break-even bounds must satisfy lower < upper, got %g and %g", lo, hi)
	}
	tolerance := opts.Tolerance
	if tolerance <= 0 {
		tolerance = defaultTolerance
	}
	maxIterations := opts.MaxIterations
	if maxIterations <= 0 {
		maxIterations = defaultMaxIterations
	}

	log := s.logger.With(
		zap.String("op", "breakeven.Solve"),
		zap.String("scenario", s.name),
		zap.String("field", string(field)),
	)

	original := field.get(s.params)
	originalEval, err := s.evaluate(field, original)
	if err != nil {
		return Summary{}, err
	}
	summary := Summary{
		Scenario:        s.name,
		Field:           field,
		Original:        original,
		OriginalBCR:     originalEval.bcr,
		OriginalDisplay: field.Display(original),
		Lower:           lo,
		Upper:           hi,
	}

	lower, err := s.evaluate(field, lo)
	if err != nil {
		return Summary{}, err
	}
	upper, err := s.evaluate(field, hi)
	if err != nil {
		return Summary{}, err
	}

	if lower.gap()*upper.gap() > 0 {
		closest := upper
		if math.Abs(lower.gap()) < math.Abs(upper.gap()) {
			closest = lower
		}
		summary.finish(closest, field)
		summary.Notes = append(summary.Notes, fmt.Sprintf(
			"no break-even between %s and %s: BCR ranges from %.3f to %.3f",
			field.Display(lo), field.Display(hi), lower.bcr, upper.bcr,
		))
		log.Info("break-even not bracketed",
			zap.Float64("lower_bcr", lower.bcr),
			zap.Float64("upper_bcr", upper.bcr),
		)
		return summary, nil
	}

	best := lower
	if math.Abs(upper.gap()) < math.Abs(lower.gap()) {
		best = upper
	}
	for summary.Iterations < maxIterations && !best.converged(tolerance) {
		summary.Iterations++
		mid, err := s.evaluate(field, lower.value+(upper.value-lower.value)/2)
		if err != nil {
			return Summary{}, err
		}
		if math.Abs(mid.gap()) < math.Abs(best.gap()) {
			best = mid
		}
		if lower.gap()*mid.gap() <= 0 {
			upper = mid
		} else {
			lower = mid
		}
	}

	summary.finish(best, field)
	summary.Converged = best.converged(tolerance)
	if !summary.Converged {
		summary.Notes = append(summary.Notes, fmt.Sprintf("stopped after %d iterations with BCR %.6f", summary.Iterations, best.bcr))
	}

	log.Info("break-even search complete",
		zap.Float64("value", summary.Value),
		zap.Float64("bcr", summary.BCR),
		zap.Int("iterations", summary.Iterations),
		zap.Bool("converged", summary.Converged),
	)
	return summary, nil
}

func (s *Summary) finish(e evaluation, field Field) {
	s.Value = e.value
	s.BCR = e.bcr
	s.ValueDisplay = field.Display(e.value)
}

func (s *Solver) evaluate(field Field, value float64) (evaluation, error) {
	p := s.params
	field.set(&p, value)

	report, err := engine.Run(p)
	if err != nil {
		return evaluation{}, eris.Wrapf(err, "break-even evaluation of %s at %g", field, value)
	}
	if report.Aggregate.Failed() {
		f := report.Aggregate.Failures[0]
		return evaluation{}, eris.Wrapf(f.Err, "break-even evaluation of %s at %g: stream %s failed", field, value, f.Stream)
	}
	return evaluation{value: value, bcr: report.Aggregate.BCR}, nil
}
