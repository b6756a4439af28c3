package mathutil

import (
	"math"
	"testing"
)

func TestWithinTolerance(t *testing.T) {
	tests := []struct {
		name      string
		a, b, tol float64
		expected  bool
	}{
		{"Equal values", 1.0, 1.0, 0.0, true},
		{"Within tolerance", 1.0, 1.005, 0.01, true},
		{"Exactly at tolerance", 1.0, 1.5, 0.5, true},
		{"Outside tolerance", 1.0, 1.02, 0.01, false},
		{"Negative difference", -5.0, -5.001, 0.01, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithinTolerance(tt.a, tt.b, tt.tol); got != tt.expected {
				t.Errorf("WithinTolerance(%v, %v, %v) = %v, expected %v", tt.a, tt.b, tt.tol, got, tt.expected)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{"Midpoint", 7500, 0, 15000, 0.5},
		{"Lower bound", 0, 0, 15000, 0},
		{"Upper bound", 15000, 0, 15000, 1},
		{"Clamped below", -10, 0, 15000, 0},
		{"Clamped above", 30000, 0, 15000, 1},
		{"Offset range", 1.25, 0.5, 2.0, 0.5},
		{"Degenerate bounds", 42, 3, 3, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.value, tt.min, tt.max); math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("Normalize(%v, %v, %v) = %v, expected %v", tt.value, tt.min, tt.max, got, tt.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 1); got != 1 {
		t.Errorf("Clamp(5, 0, 1) = %v, expected 1", got)
	}
	if got := Clamp(-5, 0, 1); got != 0 {
		t.Errorf("Clamp(-5, 0, 1) = %v, expected 0", got)
	}
	if got := Clamp(0.25, 0, 1); got != 0.25 {
		t.Errorf("Clamp(0.25, 0, 1) = %v, expected 0.25", got)
	}
}

func TestSafeDivide(t *testing.T) {
	tests := []struct {
		name     string
		num, den float64
		expected float64
	}{
		{"Positive denominator", 10, 4, 2.5},
		{"Zero denominator", 10, 0, 0},
		{"Negative denominator", 10, -4, 0},
		{"Negative numerator", -10, 4, -2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafeDivide(tt.num, tt.den); got != tt.expected {
				t.Errorf("SafeDivide(%v, %v) = %v, expected %v", tt.num, tt.den, got, tt.expected)
			}
		})
	}
}
