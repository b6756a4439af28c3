// Package mathutil provides common mathematical utility functions.
package mathutil

import "math"

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Clamp limits val to [lo, hi].
func Clamp(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}

// Normalize maps value linearly onto [0,1] against the reference bounds and
// clamps the result. Degenerate bounds yield the midpoint.
func Normalize(value, minVal, maxVal float64) float64 {
	if maxVal == minVal {
		return 0.5
	}
	return Clamp((value-minVal)/(maxVal-minVal), 0, 1)
}

// SafeDivide returns numerator/denominator, or 0 when the denominator is not positive.
func SafeDivide(numerator, denominator float64) float64 {
	if denominator <= 0 {
		return 0
	}
	return numerator / denominator
}
