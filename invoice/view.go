package invoice

import (
	"strconv"

	"github.com/kakehashi-asia/auditreport/document"
)

// Line is a formatted invoice row.
type Line struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
	Amount      string `json:"amount"`
}

// View is the invoice page as the renderer needs it: every amount already
// formatted in the invoice currency.
type View struct {
	Currency     document.Currency `json:"currency"`
	Lines        []Line            `json:"lines"`
	Subtotal     string            `json:"subtotal"`
	Tax          string            `json:"tax"`
	Total        string            `json:"total"`
	TaxRateLabel string            `json:"taxRateLabel"`
	Totals       Totals            `json:"-"`
}

// Summary calculates inv and formats the result.
func Summary(inv document.Invoice) View {
	t := Calculate(inv.Items, inv.TaxRatePercent)

	v := View{
		Currency:     inv.Currency,
		Lines:        make([]Line, len(inv.Items)),
		Subtotal:     Format(t.Subtotal, inv.Currency),
		Tax:          Format(t.Tax, inv.Currency),
		Total:        Format(t.Total, inv.Currency),
		TaxRateLabel: strconv.FormatFloat(inv.TaxRatePercent, 'f', -1, 64) + "%",
		Totals:       t,
	}
	for i, it := range inv.Items {
		v.Lines[i] = Line{
			ID:          it.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   FormatFloat(it.UnitPrice, inv.Currency),
			Amount:      Format(t.Lines[i], inv.Currency),
		}
	}
	return v
}
