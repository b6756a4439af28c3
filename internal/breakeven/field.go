package breakeven

import (
	"fmt"
	"strings"

	"github.com/iwvelando/event-viability/pkg/engine"
	"github.com/iwvelando/event-viability/pkg/format"
)

// Field names a parameter the solver may move.
type Field string

const (
	FieldPublicSpending Field = "public-spending"
	FieldUplift         Field = "uplift"
	FieldCrowdOut       Field = "crowd-out"
	FieldDiscountRate   Field = "discount-rate"
)

// Fields lists every solvable field.
var Fields = []Field{FieldPublicSpending, FieldUplift, FieldCrowdOut, FieldDiscountRate}

// ParseField resolves a field name, accepting underscores and any case.
func ParseField(s string) (Field, error) {
	f := Field(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-"))
	for _, known := range Fields {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown break-even field %q: must be one of %v", s, Fields)
}

// Bounds returns the default search interval of the field.
func (f Field) Bounds() (lo, hi float64) {
	switch f {
	case FieldPublicSpending:
		return 1, 200_000
	case FieldDiscountRate:
		return 0.001, 0.5
	default:
		return 0, 1
	}
}

func (f Field) get(p engine.Parameters) float64 {
	switch f {
	case FieldPublicSpending:
		return p.Costs.PublicSpending
	case FieldUplift:
		return p.Tourism.UpliftPct
	case FieldCrowdOut:
		return p.Tourism.CrowdOutPct
	case FieldDiscountRate:
		return p.Horizon.Rate
	}
	return 0
}

func (f Field) set(p *engine.Parameters, v float64) {
	switch f {
	case FieldPublicSpending:
		p.Costs.PublicSpending = v
	case FieldUplift:
		p.Tourism.UpliftPct = v
	case FieldCrowdOut:
		p.Tourism.CrowdOutPct = v
	case FieldDiscountRate:
		p.Horizon.Rate = v
	}
}

// Display renders a value of the field for reports.
func (f Field) Display(v float64) string {
	if f == FieldPublicSpending {
		return format.MillionsPrecise(v)
	}
	return format.Percent(v)
}
