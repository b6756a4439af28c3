package assessment

import (
	"math"

	"github.com/iwvelando/event-viability/pkg/constants"
)

// ImpliedAnnualReturn spreads the benefit-cost ratio over the standard return
// horizon as a compound annual rate. ok is false when bcr is not positive.
func ImpliedAnnualReturn(bcr float64) (rate float64, ok bool) {
	if bcr <= 0 {
		return 0, false
	}
	return math.Pow(bcr, 1.0/constants.ReturnHorizonYears) - 1, true
}

// PaybackYears is a rough estimate of the years needed to recover the net
// public cost. ok is false when bcr is not positive.
func PaybackYears(bcr float64) (years float64, ok bool) {
	if bcr <= 0 {
		return 0, false
	}
	return constants.ReturnHorizonYears / bcr, true
}
