// Package money holds the rounding and display rules shared by the metrics
// and narrative code.
package money

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const DefaultCurrency = "USD"

// Round2 rounds half away from zero to cents.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Format renders amount as a locale-aware currency string, e.g. "-$50.00" for
// en-US/USD. Digits follow the currency's standard minor units (JPY has none)
// and separators follow the locale; the symbol is always a prefix. Unknown
// currencies or malformed locales fall back to "<CUR> <amount with 2
// decimals>". It never panics.
func Format(amount float64, cur, locale string) (out string) {
	if cur == "" {
		cur = DefaultCurrency
	}
	defer func() {
		if r := recover(); r != nil {
			out = Fallback(amount, cur)
		}
	}()

	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Fallback(amount, cur)
	}
	unit, err := currency.ParseISO(strings.ToUpper(cur))
	if err != nil {
		return Fallback(amount, cur)
	}
	if locale == "" {
		locale = "en-US"
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return Fallback(amount, cur)
	}

	p := message.NewPrinter(tag)
	scale, _ := currency.Standard.Rounding(unit)
	rounded := decimal.NewFromFloat(amount).Round(int32(scale)).InexactFloat64()
	sign := ""
	if rounded < 0 {
		sign = "-"
	}
	sym := p.Sprint(currency.Symbol(unit))
	num := p.Sprint(number.Decimal(math.Abs(rounded), number.Scale(scale)))
	return sign + sym + num
}

func Fallback(amount float64, cur string) string {
	return fmt.Sprintf("%s %.2f", cur, amount)
}
