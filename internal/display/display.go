// Package display formats dashboard figures for people: the web page and the
// terminal summary render KPIs through the same helpers.
package display

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NoData stands in for a figure that cannot be computed.
const NoData = "no data"

var printer = message.NewPrinter(language.English)

// Percent renders a mean with one decimal and a percent sign.
func Percent(x float64) string {
	if !finite(x) {
		return NoData
	}
	return printer.Sprintf("%.1f%%", x)
}

// Volume renders a TB/year total rounded to whole terabytes with thousands separators.
func Volume(x float64) string {
	if !finite(x) {
		return NoData
	}
	return Number(x) + " TB/year"
}

// Number rounds x and groups its digits in thousands.
func Number(x float64) string {
	return printer.Sprintf("%.0f", math.Round(x))
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
