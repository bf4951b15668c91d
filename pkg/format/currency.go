// Package format renders currency amounts for display and export.
package format

import (
	"strconv"

	"github.com/iwvelando/loan-amortizer/pkg/constants"
	"github.com/iwvelando/loan-amortizer/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var currencyTag = language.MustParse(constants.CurrencyLocale)

// Currency returns a whole-unit amount with es-BO digit grouping and the
// boliviano suffix (e.g., "140.000 Bs").
func Currency(amount float64) string {
	return Grouped(amount) + constants.CurrencySuffix
}

// Grouped returns a whole-unit amount with es-BO digit grouping and no suffix.
func Grouped(amount float64) string {
	p := message.NewPrinter(currencyTag)
	return p.Sprint(number.Decimal(mathutil.RoundWhole(amount), number.MaxFractionDigits(0)))
}

// Plain returns a whole-unit amount with no grouping, as typed into a
// payment field (e.g., "3377").
func Plain(amount float64) string {
	return strconv.FormatFloat(mathutil.RoundWhole(amount), 'f', -1, 64)
}
