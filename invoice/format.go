package invoice

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/kakehashi-asia/auditreport/document"
)

type style struct {
	unit   currency.Unit
	symbol string
	tag    language.Tag
}

var styles = map[document.Currency]style{
	// U+00A5; the cp1252 core fonts have no full-width yen.
	document.JPY: {currency.MustParseISO("JPY"), "¥", language.MustParse("ja-JP")},
	document.USD: {currency.MustParseISO("USD"), "$", language.MustParse("en-US")},
	document.PHP: {currency.MustParseISO("PHP"), "₱", language.MustParse("en-PH")},
}

func styleOf(c document.Currency) style {
	if s, ok := styles[c]; ok {
		return s
	}
	return styles[document.USD]
}

// FractionDigits returns the number of minor-unit digits of c according to
// ISO 4217: 0 for JPY, 2 for USD and PHP.
func FractionDigits(c document.Currency) int {
	scale, _ := currency.Standard.Rounding(styleOf(c).unit)
	return scale
}

// Format renders amount in c with the currency symbol, locale grouping and
// the currency's fraction digits. Unknown currencies are formatted as USD.
func Format(amount decimal.Decimal, c document.Currency) string {
	s := styleOf(c)
	scale := FractionDigits(c)

	rounded := amount.Round(int32(scale))
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}

	p := message.NewPrinter(s.tag)
	digits := p.Sprint(number.Decimal(rounded.InexactFloat64(),
		number.MinFractionDigits(scale),
		number.MaxFractionDigits(scale),
	))
	return sign + s.symbol + digits
}

// FormatFloat is Format for a plain float amount.
func FormatFloat(amount float64, c document.Currency) string {
	return Format(decimal.NewFromFloat(amount), c)
}
