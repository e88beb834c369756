package render

import (
	"fmt"
	"strconv"

	"github.com/kakehashi-asia/auditreport/chart"
	"github.com/kakehashi-asia/auditreport/pagination"
)

// pie draws the threat pie with its legend inside the w x h area at (x, y)
// and returns the y below it.
func (r *renderer) pie(sec pagination.Section, x, y, w, h float64) float64 {
	pdf := r.pdf
	p := r.v.Threats
	radius := h/2 - 5
	cx, cy := x+radius+5, y+h/2

	switch {
	case p.Empty:
		r.draw(slate200)
		pdf.SetLineWidth(0.8)
		pdf.Circle(cx, cy, radius, "D")
		r.font("", 9)
		r.color(slate400)
		pdf.SetXY(cx-radius, cy-3)
		pdf.CellFormat(2*radius, 6, "No data", "", 0, "C", false, 0, "")
	default:
		r.draw(white)
		pdf.SetLineWidth(0.6)
		for _, s := range p.Visible() {
			r.fill(parseHex(s.Color, slate400))
			if s.FullCircle {
				pdf.Circle(cx, cy, radius, "F")
				continue
			}
			// fpdf measures angles counter-clockwise; slices run clockwise.
			start := -(s.End + p.RotationDeg)
			end := -(s.Start + p.RotationDeg)
			pdf.MoveTo(cx, cy)
			pdf.ArcTo(cx, cy, radius, radius, 0, start, end)
			pdf.ClosePath()
			pdf.DrawPath("FD")
		}
	}

	// legend
	lx := x + 2*radius + 20
	lw := x + w - lx
	ly := y + max(h/2-float64(len(p.Legend))*4, 0)
	for _, e := range p.Legend {
		if ly+8 > y+h {
			r.res.Overflow[sec]++
			continue
		}
		r.fill(parseHex(e.Color, slate400))
		pdf.Rect(lx, ly+1.5, 4, 4, "F")
		r.font("", 9)
		r.color(slate700)
		pdf.SetXY(lx+6, ly)
		pdf.CellFormat(lw-46, 7, r.tr(e.Label), "", 0, "L", false, 0, "")
		r.font("B", 9)
		r.color(slate900)
		pdf.CellFormat(24, 7, counts.Sprintf("%d", e.Count), "", 0, "R", false, 0, "")
		r.font("", 9)
		r.color(slate500)
		pdf.CellFormat(16, 7, fmt.Sprintf("%d%%", e.Percent), "", 0, "R", false, 0, "")
		ly += 8
	}

	r.font("B", 9)
	r.color(slate700)
	pdf.SetXY(lx+6, y+h-8)
	pdf.CellFormat(lw-6, 6, "Total "+counts.Sprintf("%d", p.Total), "", 0, "R", false, 0, "")
	r.color(slate900)
	return y + h
}

// bars draws a titled bar chart in the w x h area at (x, y).
func (r *renderer) bars(x, y, w, h float64, title string, b chart.Bars, c rgb) {
	pdf := r.pdf

	r.font("B", 9)
	r.color(slate700)
	pdf.SetXY(x, y)
	pdf.CellFormat(w, 6, r.tr(title), "", 0, "L", false, 0, "")

	areaTop := y + 12
	areaH := h - 20
	base := areaTop + areaH

	r.draw(slate200)
	pdf.SetLineWidth(0.2)
	for _, f := range []float64{0.25, 0.5, 0.75, 1} {
		gy := base - f*areaH
		pdf.Line(x, gy, x+w, gy)
	}
	r.draw(slate400)
	pdf.Line(x, base, x+w, base)

	if len(b.Bars) == 0 {
		return
	}
	slot := w / float64(len(b.Bars))
	barW := slot * 0.55
	r.fill(c)
	for i, bar := range b.Bars {
		bx := x + float64(i)*slot + (slot-barW)/2
		bh := bar.Fraction * areaH
		pdf.Rect(bx, base-bh, barW, bh, "F")

		r.font("B", 7.5)
		r.color(slate700)
		pdf.SetXY(x+float64(i)*slot, base-bh-5)
		pdf.CellFormat(slot, 4, strconv.FormatFloat(bar.Value, 'f', -1, 64)+"%", "", 0, "C", false, 0, "")

		r.font("", 7.5)
		r.color(slate500)
		pdf.SetXY(x+float64(i)*slot, base+1.5)
		pdf.CellFormat(slot, 4, r.tr(bar.Label), "", 0, "C", false, 0, "")
	}
	r.color(slate900)
}
