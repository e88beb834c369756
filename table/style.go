// Package table draws tables on fixed-size report pages.
//
// Tables never add pages. Rows are drawn until the next one would cross the
// bottom limit; the remaining rows are counted as omitted and reported by
// Render, so the caller can note the overflow while the page count of the
// document stays fixed.
package table

// RGBColor represents an RGB color value.
type RGBColor struct {
	R, G, B int
}

// FontSpec defines font properties for text rendering.
type FontSpec struct {
	Family string
	Style  string  // "", "B", "I", "BI"
	Size   float64 // in points
}

// Padding defines spacing inside a cell.
type Padding struct {
	Top, Right, Bottom, Left float64
}

// UniformPadding creates a Padding with the same value on all sides.
func UniformPadding(v float64) Padding {
	return Padding{Top: v, Right: v, Bottom: v, Left: v}
}

// BorderStyle defines the appearance of cell borders.
type BorderStyle struct {
	Width float64
	Color RGBColor
}

// CellStyle defines the visual appearance of a cell.
type CellStyle struct {
	FillColor *RGBColor
	TextColor *RGBColor
	Font      *FontSpec
	Align     string // "L", "C", "R"
}

// AlternateStyle defines alternating row colors.
type AlternateStyle struct {
	Even CellStyle
	Odd  CellStyle
}

// TableStyle defines the overall appearance of a table.
type TableStyle struct {
	Border        *BorderStyle
	AlternateRows *AlternateStyle
	HeaderStyle   *CellStyle
	CellPadding   Padding
	CellFont      *FontSpec
	// LineHeight is the height of one text line as a multiple of the font
	// size. 0 means 1.4.
	LineHeight float64
}

// ReportStyle is the slate look used by every table of the audit report.
func ReportStyle(family string) TableStyle {
	return TableStyle{
		Border:      &BorderStyle{Width: 0.2, Color: RGBColor{226, 232, 240}},
		CellPadding: Padding{Top: 1.5, Right: 2, Bottom: 1.5, Left: 2},
		CellFont:    &FontSpec{Family: family, Size: 9},
		HeaderStyle: &CellStyle{
			FillColor: &RGBColor{241, 245, 249},
			TextColor: &RGBColor{51, 65, 85},
			Font:      &FontSpec{Family: family, Style: "B", Size: 9},
		},
		AlternateRows: &AlternateStyle{
			Even: CellStyle{FillColor: &RGBColor{255, 255, 255}},
			Odd:  CellStyle{FillColor: &RGBColor{248, 250, 252}},
		},
	}
}
