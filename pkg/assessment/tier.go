package assessment

import (
	"fmt"
	"strings"

	"github.com/iwvelando/event-viability/pkg/constants"
)

// Tier is the qualitative viability verdict for a benefit-cost ratio.
type Tier int

// Tiers in ascending order. Each has a closed lower bound.
const (
	NotViable Tier = iota
	Marginal
	Viable
	HighlyViable
)

var tierNames = [...]string{"Not Viable", "Marginal", "Viable", "Highly Viable"}

// Classify maps a benefit-cost ratio to its tier.
func Classify(bcr float64) Tier {
	switch {
	case bcr >= constants.HighlyViableThreshold:
		return HighlyViable
	case bcr >= constants.ViableThreshold:
		return Viable
	case bcr >= constants.MarginalThreshold:
		return Marginal
	default:
		return NotViable
	}
}

func (t Tier) String() string {
	if t < NotViable || t > HighlyViable {
		return fmt.Sprintf("Tier(%d)", int(t))
	}
	return tierNames[t]
}

// IsViable reports whether benefits at least cover the net public cost.
func (t Tier) IsViable() bool {
	return t >= Marginal
}

// MarshalText renders the tier by its label.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText accepts a tier label, ignoring case.
func (t *Tier) UnmarshalText(text []byte) error {
	for i, name := range tierNames {
		if strings.EqualFold(name, string(text)) {
			*t = Tier(i)
			return nil
		}
	}
	return fmt.Errorf("unknown viability tier %q", string(text))
}
