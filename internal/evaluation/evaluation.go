// Package evaluation runs the viability engine for every active scenario in a
// configuration and collects the reports.
package evaluation

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/event-viability/internal/config"
	"github.com/iwvelando/event-viability/pkg/engine"
	"github.com/iwvelando/event-viability/pkg/streams"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Result holds the outcome of one scenario. Err is set when the scenario's
// shared inputs were invalid and no report could be produced.
type Result struct {
	Name       string            `json:"name"`
	Parameters engine.Parameters `json:"parameters"`
	Report     engine.Report     `json:"report"`
	Err        error             `json:"-"`
	Error      string            `json:"error,omitempty"`
}

// Batch is the set of results from one evaluation run, in configuration order.
type Batch struct {
	RunID       string    `json:"runId"`
	GeneratedAt time.Time `json:"generatedAt"`
	Results     []Result  `json:"results"`
}

// Succeeded returns the results that produced a report.
func (b Batch) Succeeded() []Result {
	var ok []Result
	for _, r := range b.Results {
		if r.Err == nil {
			ok = append(ok, r)
		}
	}
	return ok
}

// Evaluate resolves the active scenarios and runs them concurrently, bounded
// by conf.Concurrency. A scenario that fails is recorded on its Result and
// does not stop the batch.
func Evaluate(ctx context.Context, logger *zap.Logger, conf *config.Configuration) (Batch, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	resolved, err := conf.ActiveScenarios()
	if err != nil {
		return Batch{}, eris.Wrap(err, "resolving scenarios")
	}

	batch := Batch{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Results:     make([]Result, len(resolved)),
	}
	log := logger.With(zap.String("op", "evaluation.Evaluate"), zap.String("run_id", batch.RunID))

	if len(resolved) == 0 {
		log.Info("no active scenarios")
		return batch, nil
	}

	concurrency := max(conf.Concurrency, 1)
	log.Info("evaluating scenarios",
		zap.Int("scenarios", len(resolved)),
		zap.Int("concurrency", concurrency),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var succeeded, failed atomic.Int64
	for i, scenario := range resolved {
		i, scenario := i, scenario
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result := Run(log, scenario.Name, scenario.Parameters)
			if result.Err != nil {
				failed.Add(1)
			} else {
				succeeded.Add(1)
			}
			batch.Results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Batch{}, eris.Wrap(err, "evaluation cancelled")
	}

	log.Info("evaluation complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
	)
	return batch, nil
}

// Run evaluates a single named parameter set and logs the verdict.
func Run(logger *zap.Logger, name string, p engine.Parameters) Result {
	log := logger.With(zap.String("scenario", name))
	result := Result{Name: name, Parameters: p}

	report, err := engine.Run(p)
	if err != nil {
		result.Err = eris.Wrapf(err, "scenario %s", name)
		result.Error = result.Err.Error()
		log.Error("scenario could not be evaluated", zap.Error(err))
		return result
	}
	result.Report = report

	for _, f := range report.Aggregate.Failures {
		log.Warn("stream failed",
			zap.String("stream", string(f.Stream)),
			zap.String("label", f.Stream.Label()),
			zap.Error(f.Err),
		)
	}
	if cst := report.Streams.ConstructionSalesTax; cst != nil && cst.ExcludedYears > 0 {
		log.Debug("construction window truncated",
			zap.String("stream", string(streams.ConstructionSalesTax)),
			zap.Int("excluded_years", cst.ExcludedYears),
		)
	}

	log.Info("scenario evaluated",
		zap.String("mode", string(report.Mode)),
		zap.Float64("bcr", report.Aggregate.BCR),
		zap.String("tier", report.Tier.String()),
		zap.Float64("net_fiscal_gain", report.Aggregate.NetFiscalGain),
		zap.Float64("composite_score", report.Score.Total),
	)
	return result
}
