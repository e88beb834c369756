// Package chart turns report series into geometry descriptors.
//
// The descriptors are plain data: a pie is a list of slices with start and
// end angles, a bar chart is a list of height fractions. Renderers draw them
// with whatever technology they use; nothing here draws.
package chart

import (
	"math"
	"strconv"
	"strings"
)

// Entry is one category of a pie chart.
type Entry struct {
	Label string `json:"label"`
	Count int    `json:"count"`
	Color string `json:"color"`
}

// Slice describes one wedge. Angles are in degrees, measured clockwise from
// the reference direction (3 o'clock before the figure rotation is applied).
type Slice struct {
	Label      string  `json:"label"`
	Color      string  `json:"color"`
	Count      int     `json:"count"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Span       float64 `json:"span"`
	LargeArc   bool    `json:"largeArc"`
	FullCircle bool    `json:"fullCircle"`
}

// LegendEntry is the per-category line shown next to the pie.
type LegendEntry struct {
	Label   string `json:"label"`
	Color   string `json:"color"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"`
}

// Pie is the derived pie chart.
type Pie struct {
	Total int `json:"total"`
	// Empty is set when Total is zero; Slices is then nil.
	Empty  bool          `json:"empty"`
	Slices []Slice       `json:"slices"`
	Legend []LegendEntry `json:"legend"`
	// RotationDeg is applied to the whole figure when drawing so that the
	// first slice starts at 12 o'clock.
	RotationDeg float64 `json:"rotationDeg"`
}

// PieRotation is the fixed rotation of every pie.
const PieRotation = -90.0

// NewPie derives slices and legend percentages from entries, in input order.
// Percentages are rounded per entry and may not add up to 100.
func NewPie(entries []Entry) Pie {
	p := Pie{RotationDeg: PieRotation}
	for _, e := range entries {
		p.Total += e.Count
	}

	p.Legend = make([]LegendEntry, len(entries))
	for i, e := range entries {
		p.Legend[i] = LegendEntry{Label: e.Label, Color: e.Color, Count: e.Count}
	}
	if p.Total == 0 {
		p.Empty = true
		return p
	}

	total := float64(p.Total)
	p.Slices = make([]Slice, 0, len(entries))
	current := 0.0
	for i, e := range entries {
		share := float64(e.Count) / total
		span := share * 360
		p.Slices = append(p.Slices, Slice{
			Label:      e.Label,
			Color:      e.Color,
			Count:      e.Count,
			Start:      current,
			End:        current + span,
			Span:       span,
			LargeArc:   span > 180,
			FullCircle: e.Count == p.Total,
		})
		p.Legend[i].Percent = int(math.Round(share * 100))
		current += span
	}
	return p
}

// Visible returns the slices with a non-zero span.
func (p Pie) Visible() []Slice {
	var out []Slice
	for _, s := range p.Slices {
		if s.Span > 0 {
			out = append(out, s)
		}
	}
	return out
}

// pointOn returns the point at angle deg on the circle of radius r around
// (cx, cy), with y growing downwards.
func pointOn(cx, cy, r, deg float64) (x, y float64) {
	rad := math.Pi * deg / 180
	return cx + r*math.Cos(rad), cy + r*math.Sin(rad)
}

// SVGPath returns the path data of s for a circle of radius r around
// (cx, cy). A full-circle slice is drawn as two half arcs since a single arc
// whose start and end points coincide draws nothing.
func (s Slice) SVGPath(cx, cy, r float64) string {
	var b strings.Builder
	if s.FullCircle {
		b.WriteString("M " + num(cx) + " " + num(cy))
		b.WriteString(" m -" + num(r) + ", 0")
		b.WriteString(" a " + num(r) + "," + num(r) + " 0 1,0 " + num(2*r) + ",0")
		b.WriteString(" a " + num(r) + "," + num(r) + " 0 1,0 -" + num(2*r) + ",0")
		return b.String()
	}

	x1, y1 := pointOn(cx, cy, r, s.Start)
	x2, y2 := pointOn(cx, cy, r, s.End)
	large := "0"
	if s.LargeArc {
		large = "1"
	}
	b.WriteString("M " + num(cx) + " " + num(cy))
	b.WriteString(" L " + num(x1) + " " + num(y1))
	b.WriteString(" A " + num(r) + " " + num(r) + " 0 " + large + " 1 " + num(x2) + " " + num(y2))
	b.WriteString(" Z")
	return b.String()
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
