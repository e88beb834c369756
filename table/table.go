package table

import (
	"github.com/go-pdf/fpdf"
)

// ColumnDef defines the properties of a table column.
type ColumnDef struct {
	Width    float64 // Fixed width. 0 means auto/fill.
	MinWidth float64 // Minimum width for auto columns.
	MaxWidth float64 // Maximum width for auto columns. 0 means unlimited.
	Align    string  // Default alignment for this column ("L", "C", "R").
}

// Table is a table builder for a single report page.
type Table struct {
	pdf        *fpdf.Fpdf
	tr         func(string) string
	columns    []ColumnDef
	rows       []*Row
	style      TableStyle
	x, y       float64 // starting position (0,0 means current)
	tableWidth float64 // total table width (0 means page width minus margins)
	limit      float64 // bottom limit (0 means page height minus bottom margin)
}

// Result reports what Render drew.
type Result struct {
	Drawn   int     // body rows drawn
	Omitted int     // body rows that did not fit above the bottom limit
	Bottom  float64 // y position below the last drawn row
}

// New creates a new Table drawing on pdf.
func New(pdf *fpdf.Fpdf) *Table {
	return &Table{
		pdf: pdf,
		tr:  func(s string) string { return s },
		style: TableStyle{
			CellPadding: UniformPadding(1),
		},
	}
}

// SetTranslator sets the function applied to cell text before drawing,
// typically the code page translator of a core font.
func (t *Table) SetTranslator(tr func(string) string) *Table {
	if tr != nil {
		t.tr = tr
	}
	return t
}

// SetColumns sets column definitions for the table.
func (t *Table) SetColumns(cols ...ColumnDef) *Table {
	t.columns = cols
	return t
}

// SetColumnWidths is a convenience method to set column widths directly.
// A width of 0 means the column will auto-fill remaining space.
func (t *Table) SetColumnWidths(widths ...float64) *Table {
	t.columns = make([]ColumnDef, len(widths))
	for i, w := range widths {
		t.columns[i] = ColumnDef{Width: w}
	}
	return t
}

// SetStyle sets the table-wide style.
func (t *Table) SetStyle(s TableStyle) *Table {
	t.style = s
	return t
}

// SetPosition sets the starting position for the table.
// If not called, the table starts at the current PDF cursor position.
func (t *Table) SetPosition(x, y float64) *Table {
	t.x = x
	t.y = y
	return t
}

// SetWidth sets the total table width. If not called, uses page width minus margins.
func (t *Table) SetWidth(w float64) *Table {
	t.tableWidth = w
	return t
}

// SetBottomLimit sets the y position no row may cross.
func (t *Table) SetBottomLimit(y float64) *Table {
	t.limit = y
	return t
}

// AddRow adds a new data row to the table and returns it for chaining.
func (t *Table) AddRow() *Row {
	r := &Row{}
	t.rows = append(t.rows, r)
	return r
}

// AddHeaderRow adds a new header row and returns it for chaining.
// Header rows are drawn before all data rows regardless of insertion order.
func (t *Table) AddHeaderRow() *Row {
	r := &Row{isHeader: true}
	t.rows = append(t.rows, r)
	return r
}

// Render draws the table on the current page. It stops before the first
// body row that would cross the bottom limit.
func (t *Table) Render() (Result, error) {
	var res Result
	if t.pdf.Err() {
		return res, t.pdf.Error()
	}

	widths := t.calculateWidths()

	startX := t.x
	if startX == 0 {
		startX = t.pdf.GetX()
	}
	if t.y != 0 {
		t.pdf.SetY(t.y)
	}

	limit := t.limit
	if limit == 0 {
		_, pageH := t.pdf.GetPageSize()
		_, _, _, bMargin := t.pdf.GetMargins()
		limit = pageH - bMargin
	}

	var headerRows, bodyRows []*Row
	for _, r := range t.rows {
		if r.isHeader {
			headerRows = append(headerRows, r)
		} else {
			bodyRows = append(bodyRows, r)
		}
	}

	for _, r := range headerRows {
		t.renderRow(r, widths, startX, -1, true)
	}

	for i, r := range bodyRows {
		rowH := t.calculateRowHeight(r, widths, i, false)
		if t.pdf.GetY()+rowH > limit {
			res.Omitted = len(bodyRows) - i
			break
		}
		t.renderRow(r, widths, startX, i, false)
		res.Drawn++
	}

	res.Bottom = t.pdf.GetY()
	return res, t.pdf.Error()
}

// calculateWidths computes final column widths based on definitions and available space.
func (t *Table) calculateWidths() []float64 {
	totalWidth := t.tableWidth
	if totalWidth == 0 {
		pageW, _ := t.pdf.GetPageSize()
		lMargin, _, rMargin, _ := t.pdf.GetMargins()
		totalWidth = pageW - lMargin - rMargin
	}

	numCols := len(t.columns)
	if numCols == 0 {
		if len(t.rows) > 0 {
			numCols = len(t.rows[0].cells)
		}
		if numCols == 0 {
			return nil
		}
		t.columns = make([]ColumnDef, numCols)
	}

	widths := make([]float64, numCols)
	fixedTotal := 0.0
	autoCount := 0

	for i, col := range t.columns {
		if col.Width > 0 {
			widths[i] = col.Width
			fixedTotal += col.Width
		} else {
			autoCount++
		}
	}

	if autoCount > 0 {
		remaining := max(totalWidth-fixedTotal, 0)
		autoWidth := remaining / float64(autoCount)
		for i, col := range t.columns {
			if col.Width == 0 {
				w := autoWidth
				if col.MinWidth > 0 && w < col.MinWidth {
					w = col.MinWidth
				}
				if col.MaxWidth > 0 && w > col.MaxWidth {
					w = col.MaxWidth
				}
				widths[i] = w
			}
		}
	}

	return widths
}

func (t *Table) cellWidth(widths []float64, i int, c *Cell) float64 {
	w := widths[i]
	for j := 1; j < c.colspan && i+j < len(widths); j++ {
		w += widths[i+j]
	}
	return w
}

func (t *Table) lineHeight() float64 {
	_, unitSize := t.pdf.GetFontSize()
	factor := t.style.LineHeight
	if factor == 0 {
		factor = 1.4
	}
	return unitSize * factor
}

func (t *Table) applyFont(f *FontSpec) {
	if f != nil {
		t.pdf.SetFont(f.Family, f.Style, f.Size)
	}
}

// calculateRowHeight computes the height needed for a row based on cell content.
// Each cell is measured with its own font.
func (t *Table) calculateRowHeight(r *Row, widths []float64, bodyIdx int, isHeader bool) float64 {
	maxH := max(5.0, r.minH)
	padding := t.style.CellPadding

	col := 0
	for _, cell := range r.cells {
		if col >= len(widths) {
			break
		}
		style := t.resolveCellStyle(cell, r, bodyIdx, isHeader)
		t.applyFont(style.Font)

		contentW := max(t.cellWidth(widths, col, cell)-padding.Left-padding.Right, 1)
		col += cell.colspan
		lines := t.pdf.SplitLines([]byte(t.tr(cell.text)), contentW)
		n := max(len(lines), 1)
		cellH := float64(n)*t.lineHeight() + padding.Top + padding.Bottom
		maxH = max(maxH, cellH)
	}

	return maxH
}

// renderRow renders a single row to the PDF.
func (t *Table) renderRow(r *Row, widths []float64, startX float64, bodyIdx int, isHeader bool) {
	rowH := t.calculateRowHeight(r, widths, bodyIdx, isHeader)
	padding := t.style.CellPadding

	t.pdf.SetX(startX)
	y := t.pdf.GetY()

	col := 0
	for _, cell := range r.cells {
		if col >= len(widths) {
			break
		}

		i := col
		cellW := t.cellWidth(widths, i, cell)
		col += cell.colspan
		style := t.resolveCellStyle(cell, r, bodyIdx, isHeader)
		x := t.pdf.GetX()

		if style.FillColor != nil {
			t.pdf.SetFillColor(style.FillColor.R, style.FillColor.G, style.FillColor.B)
			t.pdf.Rect(x, y, cellW, rowH, "F")
		}

		if b := t.style.Border; b != nil {
			t.pdf.SetDrawColor(b.Color.R, b.Color.G, b.Color.B)
			if b.Width > 0 {
				t.pdf.SetLineWidth(b.Width)
			}
			t.pdf.Rect(x, y, cellW, rowH, "D")
		}

		if style.TextColor != nil {
			t.pdf.SetTextColor(style.TextColor.R, style.TextColor.G, style.TextColor.B)
		} else {
			t.pdf.SetTextColor(0, 0, 0)
		}
		t.applyFont(style.Font)

		align := "L"
		if style.Align != "" {
			align = style.Align
		} else if i < len(t.columns) && t.columns[i].Align != "" {
			align = t.columns[i].Align
		}

		contentW := cellW - padding.Left - padding.Right
		t.pdf.SetXY(x+padding.Left, y+padding.Top)
		t.pdf.MultiCell(contentW, t.lineHeight(), t.tr(cell.text), "", align, false)

		t.pdf.SetXY(x+cellW, y)
	}

	t.pdf.SetDrawColor(0, 0, 0)
	t.pdf.SetFillColor(0, 0, 0)
	t.pdf.SetTextColor(0, 0, 0)

	t.pdf.SetXY(startX, y+rowH)
}

// resolveCellStyle determines the effective style for a cell by merging
// table, alternate row, header, row, and cell-level styles.
func (t *Table) resolveCellStyle(cell *Cell, row *Row, bodyIdx int, isHeader bool) CellStyle {
	var result CellStyle

	if t.style.CellFont != nil {
		result.Font = t.style.CellFont
	}

	if isHeader && t.style.HeaderStyle != nil {
		mergeStyle(&result, t.style.HeaderStyle)
	}

	if !isHeader && t.style.AlternateRows != nil && bodyIdx >= 0 {
		if bodyIdx%2 == 0 {
			mergeStyle(&result, &t.style.AlternateRows.Even)
		} else {
			mergeStyle(&result, &t.style.AlternateRows.Odd)
		}
	}

	if row.style != nil {
		mergeStyle(&result, row.style)
	}

	// Cell-level style has the highest priority.
	if cell.style != nil {
		mergeStyle(&result, cell.style)
	}

	return result
}

// mergeStyle copies non-nil fields from src to dst.
func mergeStyle(dst, src *CellStyle) {
	if src.FillColor != nil {
		dst.FillColor = src.FillColor
	}
	if src.TextColor != nil {
		dst.TextColor = src.TextColor
	}
	if src.Font != nil {
		dst.Font = src.Font
	}
	if src.Align != "" {
		dst.Align = src.Align
	}
}
