// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/event-viability/internal/evaluation"
	"github.com/iwvelando/event-viability/pkg/mathutil"
	"github.com/iwvelando/event-viability/pkg/streams"
)

// FindScenario finds a scenario by name in the results slice.
// Returns a pointer to the result if found, nil otherwise.
func FindScenario(results []evaluation.Result, name string) *evaluation.Result {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// StreamValue returns the present value the aggregator credited to a stream,
// and whether the stream contributed at all.
func StreamValue(r *evaluation.Result, name streams.Name) (float64, bool) {
	if r == nil {
		return 0, false
	}
	v, ok := r.Report.Aggregate.Contributions[name]
	return v, ok
}

// Close reports whether two $M amounts agree within tolerance.
func Close(actual, expected, tolerance float64) bool {
	return mathutil.WithinTolerance(actual, expected, tolerance)
}
