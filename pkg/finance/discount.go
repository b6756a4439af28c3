// Package finance provides the discounting primitives shared by every revenue
// stream: present-value conversion, the analysis timeline and the domain
// errors raised when an input falls outside its valid range.
package finance

import (
	"errors"
	"fmt"
	"math"
)

// ErrDomain is matched by every DomainError via errors.Is.
var ErrDomain = errors.New("parameter outside valid domain")

// DomainError reports an input parameter outside its valid numeric range.
type DomainError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// Is lets errors.Is(err, ErrDomain) match any DomainError.
func (e *DomainError) Is(target error) bool {
	return target == ErrDomain
}

// DiscountFactor returns 1/(1+rate)^years without validating its inputs.
func DiscountFactor(years int, rate float64) float64 {
	return 1 / math.Pow(1+rate, float64(years))
}

// PresentValue converts a nominal amount received yearsFromNow years in the
// future into today's terms.
func PresentValue(nominal float64, yearsFromNow int, discountRate float64) (float64, error) {
	if yearsFromNow < 0 {
		return 0, &DomainError{Field: "yearsFromNow", Value: float64(yearsFromNow), Reason: "must not be negative"}
	}
	if err := ValidateDiscountRate("discountRate", discountRate); err != nil {
		return 0, err
	}
	return nominal / math.Pow(1+discountRate, float64(yearsFromNow)), nil
}

// ValidateDiscountRate requires 0 < rate < 1.
func ValidateDiscountRate(field string, rate float64) error {
	if math.IsNaN(rate) || rate <= 0 || rate >= 1 {
		return &DomainError{Field: field, Value: rate, Reason: "must be in (0,1)"}
	}
	return nil
}

// ValidateRate requires a fraction in [0,1].
func ValidateRate(field string, rate float64) error {
	if math.IsNaN(rate) || rate < 0 || rate > 1 {
		return &DomainError{Field: field, Value: rate, Reason: "must be in [0,1]"}
	}
	return nil
}

// ValidateNonNegative requires a finite value >= 0.
func ValidateNonNegative(field string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return &DomainError{Field: field, Value: value, Reason: "must be a finite value >= 0"}
	}
	return nil
}

// ValidateYears requires a year count >= 0.
func ValidateYears(field string, years int) error {
	if years < 0 {
		return &DomainError{Field: field, Value: float64(years), Reason: "must not be negative"}
	}
	return nil
}

// FirstError returns the first non-nil error, used to chain field checks.
func FirstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
