// Package format renders prices for display.
package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const rupee = "₹"

var printer = message.NewPrinter(language.MustParse("en-IN"))

// Price renders v in Indian Rupees with en-IN digit grouping and exactly two
// fraction digits.
func Price(v float64) string {
	return rupee + printer.Sprint(number.Decimal(v,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}
