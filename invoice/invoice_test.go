package invoice

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/kakehashi-asia/auditreport/document"
)

func sampleItems() []document.LineItem {
	return []document.LineItem{
		{ID: "1", Quantity: 1, UnitPrice: 4500},
		{ID: "2", Quantity: 2, UnitPrice: 45},
		{ID: "3", Quantity: 1, UnitPrice: 250},
	}
}

func TestCalculateSample(t *testing.T) {
	got := Calculate(sampleItems(), 0)

	assert.True(t, got.Subtotal.Equal(decimal.NewFromInt(4840)), got.Subtotal.String())
	assert.True(t, got.Tax.IsZero())
	assert.True(t, got.Total.Equal(decimal.NewFromInt(4840)))
	assert.True(t, got.Lines[1].Equal(decimal.NewFromInt(90)))
}

func TestCalculateTaxIsFloored(t *testing.T) {
	tests := []struct {
		rate float64
		tax  int64
	}{
		{10, 484},
		{8, 387},
		{7.5, 363},
		{0.1, 4},
		{100, 4840},
	}
	for _, tt := range tests {
		got := Calculate(sampleItems(), tt.rate)
		assert.True(t, got.Tax.Equal(decimal.NewFromInt(tt.tax)), "rate %v: tax %s", tt.rate, got.Tax)
		assert.True(t, got.Total.Equal(got.Subtotal.Add(got.Tax)))
	}
}

func TestCalculateDecimalExactness(t *testing.T) {
	got := Calculate([]document.LineItem{{Quantity: 1, UnitPrice: 0.1}, {Quantity: 1, UnitPrice: 0.2}}, 0)
	assert.Equal(t, "0.3", got.Subtotal.String())
}

func TestCalculateEmpty(t *testing.T) {
	got := Calculate(nil, 10)

	assert.Empty(t, got.Lines)
	assert.True(t, got.Subtotal.IsZero())
	assert.True(t, got.Tax.IsZero())
	assert.True(t, got.Total.IsZero())
}

func TestFractionDigits(t *testing.T) {
	assert.Equal(t, 0, FractionDigits(document.JPY))
	assert.Equal(t, 2, FractionDigits(document.USD))
	assert.Equal(t, 2, FractionDigits(document.PHP))
}

func TestFormat(t *testing.T) {
	amount := decimal.NewFromInt(4840)

	jpy := Format(amount, document.JPY)
	assert.True(t, strings.HasPrefix(jpy, "¥"), jpy)
	assert.NotContains(t, jpy, "\uFFE5")
	assert.NotContains(t, jpy, ".")
	assert.True(t, strings.HasSuffix(jpy, "840"), jpy)

	usd := Format(amount, document.USD)
	assert.Equal(t, "$4,840.00", usd)

	php := Format(amount, document.PHP)
	assert.True(t, strings.HasPrefix(php, "₱"), php)
	assert.True(t, strings.HasSuffix(php, ".00"), php)
}

func TestFormatRoundsAndSigns(t *testing.T) {
	assert.Equal(t, "$0.00", Format(decimal.Zero, document.USD))
	assert.Equal(t, "$12.35", FormatFloat(12.345, document.USD))
	assert.Equal(t, "-$5.50", FormatFloat(-5.5, document.USD))
	assert.True(t, strings.HasPrefix(FormatFloat(-100, document.JPY), "-¥"))
}

func TestFormatIsPure(t *testing.T) {
	a := Format(decimal.NewFromFloat(1234567.891), document.USD)
	b := Format(decimal.NewFromFloat(1234567.891), document.USD)
	assert.Equal(t, a, b)
	assert.Equal(t, "$1,234,567.89", a)
}

func TestSummary(t *testing.T) {
	inv := document.Default().Invoice
	v := Summary(inv)

	assert.Equal(t, document.USD, v.Currency)
	assert.Len(t, v.Lines, 3)
	assert.Equal(t, "$90.00", v.Lines[1].Amount)
	assert.Equal(t, "$45.00", v.Lines[1].UnitPrice)
	assert.Equal(t, "$4,840.00", v.Subtotal)
	assert.Equal(t, "$0.00", v.Tax)
	assert.Equal(t, "$4,840.00", v.Total)
	assert.Equal(t, "0%", v.TaxRateLabel)
}
