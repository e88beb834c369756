// Package invoice computes invoice totals and formats money amounts.
//
// Arithmetic is done in decimal so that sums of prices like 0.1 and 0.2 are
// exact; amounts are in the invoice currency as entered, never converted.
package invoice

import (
	"github.com/shopspring/decimal"

	"github.com/kakehashi-asia/auditreport/document"
)

var hundred = decimal.NewFromInt(100)

// Totals is the result of Calculate. Lines holds quantity × unit price for
// each item, in input order.
type Totals struct {
	Lines    []decimal.Decimal
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Calculate returns subtotal, tax and total of items at taxRatePercent.
// Tax is floor(subtotal × rate / 100), so it never exceeds the exact
// proportional amount. Negative inputs are not rejected.
func Calculate(items []document.LineItem, taxRatePercent float64) Totals {
	t := Totals{
		Lines:    make([]decimal.Decimal, len(items)),
		Subtotal: decimal.Zero,
	}
	for i, it := range items {
		line := decimal.NewFromInt(int64(it.Quantity)).Mul(decimal.NewFromFloat(it.UnitPrice))
		t.Lines[i] = line
		t.Subtotal = t.Subtotal.Add(line)
	}

	t.Tax = t.Subtotal.Mul(decimal.NewFromFloat(taxRatePercent)).Div(hundred).Floor()
	t.Total = t.Subtotal.Add(t.Tax)
	return t
}
