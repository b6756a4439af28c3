package finance

// TimelineConfig anchors every projection: amounts are discounted back to
// CurrentYear, and the event takes place in EventYear.
type TimelineConfig struct {
	CurrentYear int `mapstructure:"currentYear" yaml:"currentYear" json:"currentYear"`
	EventYear   int `mapstructure:"eventYear" yaml:"eventYear" json:"eventYear"`
}

// YearsUntilEvent is the number of whole years between now and the event.
func (t TimelineConfig) YearsUntilEvent() int {
	return t.EventYear - t.CurrentYear
}

// Validate checks that the event does not precede the current year.
func (t TimelineConfig) Validate() error {
	if t.EventYear < t.CurrentYear {
		return &DomainError{Field: "eventYear", Value: float64(t.EventYear), Reason: "must not precede currentYear"}
	}
	return nil
}

// DiscountConfig holds the annual discount rate applied to future amounts.
type DiscountConfig struct {
	Rate float64 `mapstructure:"discountRate" yaml:"discountRate" json:"discountRate"`
}

// Validate checks that the rate lies in (0,1).
func (d DiscountConfig) Validate() error {
	return ValidateDiscountRate("discountRate", d.Rate)
}

// Horizon combines the timeline and discount rate shared by all streams.
type Horizon struct {
	TimelineConfig `mapstructure:",squash" yaml:",inline"`
	DiscountConfig `mapstructure:",squash" yaml:",inline"`
}

// NewHorizon builds a Horizon from its parts.
func NewHorizon(currentYear, eventYear int, discountRate float64) Horizon {
	return Horizon{
		TimelineConfig: TimelineConfig{CurrentYear: currentYear, EventYear: eventYear},
		DiscountConfig: DiscountConfig{Rate: discountRate},
	}
}

// Validate checks both the timeline and the discount rate.
func (h Horizon) Validate() error {
	return FirstError(h.TimelineConfig.Validate(), h.DiscountConfig.Validate())
}

// PresentValue discounts nominal at this horizon's rate.
func (h Horizon) PresentValue(nominal float64, yearsFromNow int) (float64, error) {
	return PresentValue(nominal, yearsFromNow, h.Rate)
}

// Collapsed returns a copy of the horizon with the event moved to the current
// year, so nothing is projected forward or discounted for the wait.
func (h Horizon) Collapsed() Horizon {
	h.EventYear = h.CurrentYear
	return h
}
