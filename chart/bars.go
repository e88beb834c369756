package chart

// Defaults used by DefaultBars.
const (
	DefaultFloor       = 100.0
	DefaultMinFraction = 0.02
)

// Point is one labelled value of a bar series.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Bar is a derived bar. Fraction is the height relative to the chart area,
// in [MinFraction, 1] for non-negative input.
type Bar struct {
	Label    string  `json:"label"`
	Value    float64 `json:"value"`
	Fraction float64 `json:"fraction"`
}

// Bars is the derived bar chart.
type Bars struct {
	RefMax      float64 `json:"refMax"`
	MinFraction float64 `json:"minFraction"`
	Bars        []Bar   `json:"bars"`
}

// NewBars scales points against the larger of their own maximum and floor.
// No bar is ever shorter than minFraction.
func NewBars(points []Point, floor, minFraction float64) Bars {
	ref := floor
	for _, p := range points {
		if p.Value > ref {
			ref = p.Value
		}
	}

	b := Bars{RefMax: ref, MinFraction: minFraction, Bars: make([]Bar, len(points))}
	for i, p := range points {
		f := minFraction
		if ref > 0 {
			f = max(p.Value/ref, minFraction)
		}
		b.Bars[i] = Bar{Label: p.Label, Value: p.Value, Fraction: f}
	}
	return b
}

// DefaultBars applies the report defaults: a floor of 100 so that low
// percentages read as mostly empty, and a 2 % minimum visible height.
func DefaultBars(points []Point) Bars {
	return NewBars(points, DefaultFloor, DefaultMinFraction)
}
