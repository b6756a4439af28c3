// Package streams implements the independent revenue stream calculators. Each
// calculator is a pure function of its assumptions and the shared horizon and
// returns a present-value projection in millions of dollars.
package streams

import (
	"github.com/iwvelando/event-viability/pkg/finance"
)

// Name identifies a revenue stream.
type Name string

// Stream names, in reporting order.
const (
	Tourism              Name = "tourism"
	PropertyTax          Name = "property_tax"
	CorporateRelocation  Name = "corporate_relocation"
	ConstructionSalesTax Name = "construction_sales_tax"
	MajorEvents          Name = "major_events"
	ConventionBusiness   Name = "convention_business"
	InfrastructureNPV    Name = "infrastructure_npv"
	MigrationValue       Name = "migration_value"
)

// All lists every stream in reporting order.
var All = []Name{
	Tourism,
	PropertyTax,
	CorporateRelocation,
	ConstructionSalesTax,
	MajorEvents,
	ConventionBusiness,
	InfrastructureNPV,
	MigrationValue,
}

var labels = map[Name]string{
	Tourism:              "Core Tourism Revenue",
	PropertyTax:          "Property Tax Growth",
	CorporateRelocation:  "Corporate Relocations",
	ConstructionSalesTax: "Construction Tax Offset",
	MajorEvents:          "Major Events Pipeline",
	ConventionBusiness:   "Convention Business",
	InfrastructureNPV:    "Infrastructure NPV",
	MigrationValue:       "Migration Value",
}

// Label returns the human-readable name of the stream.
func (n Name) Label() string {
	if label, ok := labels[n]; ok {
		return label
	}
	return string(n)
}

// Result is implemented by every stream result.
type Result interface {
	Total() float64
}

// annuity discounts a constant annual amount received for count years, the
// first of them firstYear years from now.
func annuity(h finance.Horizon, amount float64, firstYear, count int) (float64, error) {
	total := 0.0
	for year := 0; year < count; year++ {
		pv, err := h.PresentValue(amount, firstYear+year)
		if err != nil {
			return 0, err
		}
		total += pv
	}
	return total, nil
}
