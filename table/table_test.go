package table_test

import (
	"bytes"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kakehashi-asia/auditreport/table"
)

func newTestPDF() *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 15)
	pdf.SetFont("Helvetica", "", 10)
	pdf.AddPage()
	return pdf
}

func output(t *testing.T, pdf *fpdf.Fpdf) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	return buf.Bytes()
}

func TestBasicTable(t *testing.T) {
	pdf := newTestPDF()

	tb := table.New(pdf)
	tb.SetColumnWidths(40, 60, 30, 30)

	h := tb.AddHeaderRow()
	h.AddCell("ID")
	h.AddCell("Host")
	h.AddCell("OS")
	h.AddCell("Status")

	r := tb.AddRow()
	r.AddCell("NAS-01")
	r.AddCell("Re:NAS Primary")
	r.AddCell("TrueNAS")
	r.AddCell("Healthy")

	res, err := tb.Render()
	require.NoError(t, err)
	assert.Equal(t, 1, res.Drawn)
	assert.Zero(t, res.Omitted)
	assert.Greater(t, res.Bottom, 10.0)

	assert.True(t, bytes.HasPrefix(output(t, pdf), []byte("%PDF")))
}

func TestHeaderRowsDrawnFirst(t *testing.T) {
	pdf := newTestPDF()

	tb := table.New(pdf)
	tb.SetColumnWidths(60, 60)
	r := tb.AddRow()
	r.AddCell("body")
	r.AddCell("body")
	tb.AddHeaderRow().AddCell("head")

	res, err := tb.Render()
	require.NoError(t, err)
	assert.Equal(t, 1, res.Drawn)
}

func TestTableStopsAtBottomLimit(t *testing.T) {
	pdf := newTestPDF()

	tb := table.New(pdf)
	tb.SetColumnWidths(60, 60, 60)
	tb.SetStyle(table.ReportStyle("Helvetica"))
	h := tb.AddHeaderRow()
	h.AddCell("#")
	h.AddCell("Item")
	h.AddCell("Value")

	for i := 0; i < 200; i++ {
		r := tb.AddRow()
		r.AddCellf("%d", i+1)
		r.AddCellf("Item %d", i+1)
		r.AddCellf("$%.2f", float64(i+1)*1.5)
	}

	res, err := tb.Render()
	require.NoError(t, err)
	assert.Equal(t, 200, res.Drawn+res.Omitted)
	assert.Positive(t, res.Omitted)
	assert.LessOrEqual(t, res.Bottom, 297.0-15)
	assert.Equal(t, 1, pdf.PageCount())
}

func TestBottomLimit(t *testing.T) {
	pdf := newTestPDF()
	pdf.SetY(20)

	tb := table.New(pdf)
	tb.SetColumnWidths(90, 90)
	tb.SetBottomLimit(40)
	for i := 0; i < 10; i++ {
		r := tb.AddRow()
		r.AddCell("a")
		r.AddCell("b")
		r.SetMinHeight(8)
	}

	res, err := tb.Render()
	require.NoError(t, err)
	assert.Equal(t, 2, res.Drawn)
	assert.Equal(t, 8, res.Omitted)
}

func TestWrappedCellGrowsRow(t *testing.T) {
	pdf := newTestPDF()
	y0 := pdf.GetY()

	tb := table.New(pdf)
	tb.SetColumnWidths(30, 30)
	r := tb.AddRow()
	r.AddCell("short")
	r.AddCell("a rather long description that has to wrap over several lines")

	res, err := tb.Render()
	require.NoError(t, err)
	assert.Greater(t, res.Bottom-y0, 10.0)
}

func TestColspan(t *testing.T) {
	pdf := newTestPDF()

	tb := table.New(pdf)
	tb.SetColumnWidths(40, 40, 40, 40)

	r1 := tb.AddRow()
	r1.AddCell("Subtotal").SetColspan(3).SetAlign("R")
	r1.AddCell("$4,840.00")

	r2 := tb.AddRow()
	r2.AddCell("A")
	r2.AddCell("B")
	r2.AddCell("C")
	r2.AddCell("D")

	res, err := tb.Render()
	require.NoError(t, err)
	assert.Equal(t, 2, res.Drawn)
}

func TestStyledCells(t *testing.T) {
	pdf := newTestPDF()

	tb := table.New(pdf)
	tb.SetColumnWidths(60, 60, 60)
	tb.SetStyle(table.TableStyle{
		HeaderStyle: &table.CellStyle{
			FillColor: &table.RGBColor{0, 51, 102},
			TextColor: &table.RGBColor{255, 255, 255},
			Font:      &table.FontSpec{Family: "Helvetica", Style: "B", Size: 11},
		},
		AlternateRows: &table.AlternateStyle{
			Even: table.CellStyle{FillColor: &table.RGBColor{240, 240, 240}},
			Odd:  table.CellStyle{FillColor: &table.RGBColor{255, 255, 255}},
		},
	})

	h := tb.AddHeaderRow()
	h.AddCell("Host")
	h.AddCell("Role")
	h.AddCell("Status")

	for i := 0; i < 4; i++ {
		r := tb.AddRow()
		r.AddCellf("MOB-%03d", i+1)
		r.AddCell("Secure smartphone")
		r.AddCell("Warning").SetFillColor(254, 243, 199).SetTextColor(180, 83, 9).SetAlign("C")
	}
	r := tb.AddRow()
	r.SetStyle(table.CellStyle{TextColor: &table.RGBColor{185, 28, 28}})
	r.AddCell("incident")

	_, err := tb.Render()
	require.NoError(t, err)
	assert.NotEmpty(t, output(t, pdf))
}

func TestTranslator(t *testing.T) {
	pdf := newTestPDF()

	tb := table.New(pdf).SetTranslator(pdf.UnicodeTranslatorFromDescriptor(""))
	tb.SetColumnWidths(60)
	tb.AddRow().AddCell("Café – 5 €")

	_, err := tb.Render()
	require.NoError(t, err)
}

func TestEmptyTable(t *testing.T) {
	pdf := newTestPDF()

	tb := table.New(pdf)
	tb.SetColumnWidths(60, 60)

	res, err := tb.Render()
	require.NoError(t, err)
	assert.Zero(t, res.Drawn)
	assert.Zero(t, res.Omitted)
}

func TestPropagatesPDFError(t *testing.T) {
	pdf := newTestPDF()
	pdf.SetError(assert.AnError)

	_, err := table.New(pdf).Render()
	assert.ErrorIs(t, err, assert.AnError)
}
