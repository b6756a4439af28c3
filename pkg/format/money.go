// Package format renders amounts for human-readable reports. All money in
// this module is expressed in millions of dollars.
package format

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Millions renders a $M amount with thousands separators and no decimals (e.g., "-$2,304M").
func Millions(amount float64) string {
	return signed(amount, "$%.0fM")
}

// MillionsPrecise renders a $M amount to the cent (e.g., "$4,281.71M").
func MillionsPrecise(amount float64) string {
	return signed(amount, "$%.2fM")
}

// Billions renders a $M amount in billions to one decimal (e.g., "$10.0B").
func Billions(amount float64) string {
	return signed(amount/1000, "$%.1fB")
}

// Compact picks Billions from $1,000M upwards and Millions below.
func Compact(amount float64) string {
	if math.Abs(amount) >= 1000 {
		return Billions(amount)
	}
	return Millions(amount)
}

// Percent renders a fraction as a percentage to one decimal (e.g., "65.0%").
func Percent(fraction float64) string {
	return printer.Sprintf("%.1f%%", fraction*100)
}

// Ratio renders a benefit-cost ratio to two decimals.
func Ratio(r float64) string {
	return printer.Sprintf("%.2f", r)
}

// Count renders a whole quantity with separators (e.g., "120,000").
func Count(n float64) string {
	return printer.Sprintf("%.0f", n)
}

func signed(amount float64, layout string) string {
	s := printer.Sprintf(layout, math.Abs(amount))
	if amount < 0 && s != printer.Sprintf(layout, 0.0) {
		return "-" + s
	}
	return s
}
