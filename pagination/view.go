package pagination

import (
	"github.com/kakehashi-asia/auditreport/chart"
	"github.com/kakehashi-asia/auditreport/document"
	"github.com/kakehashi-asia/auditreport/invoice"
)

// Header is the running header block of a page.
type Header struct {
	RunningTitle string `json:"runningTitle"`
	ClientName   string `json:"clientName"`
	Organization string `json:"organization"`
	PageTitle    string `json:"pageTitle"`
	PageNumber   int    `json:"pageNumber"`
	TotalPages   int    `json:"totalPages"`
}

// Page is one physical page of the view.
type Page struct {
	PageSpec
	Title string `json:"title"`
	// BreakAfter marks an explicit page break after this page.
	BreakAfter bool   `json:"breakAfter"`
	Header     Header `json:"header"`
}

// TOCEntry is one line of the table of contents.
type TOCEntry struct {
	Chapter int    `json:"chapter"`
	Title   string `json:"title"`
	Page    int    `json:"page"`
}

// View is the fully derived view model of a document snapshot. It holds
// everything the renderer needs; the renderer computes nothing else.
type View struct {
	Document   *document.Document `json:"document"`
	Labels     Labels             `json:"labels"`
	TotalPages int                `json:"totalPages"`
	Pages      []Page             `json:"pages"`
	TOC        []TOCEntry         `json:"toc"`
	Threats    chart.Pie          `json:"threats"`
	Storage    chart.Bars         `json:"storage"`
	CPU        chart.Bars         `json:"cpu"`
	Invoice    invoice.View       `json:"invoice"`
}

// Option configures Build.
type Option func(*options)

type options struct {
	labels      Labels
	floor       float64
	minFraction float64
}

// WithLabels overrides the report copy. Empty fields keep the defaults.
func WithLabels(l Labels) Option {
	return func(o *options) {
		o.labels = l.merge(DefaultLabels())
	}
}

// WithBarScale sets the reference floor and minimum visible fraction of the
// resource bar charts.
func WithBarScale(floor, minFraction float64) Option {
	return func(o *options) {
		o.floor = floor
		o.minFraction = minFraction
	}
}

// Build derives the view of doc. doc is cloned so that the view stays valid
// after further edits of the session.
func Build(doc *document.Document, opts ...Option) *View {
	o := options{
		labels:      DefaultLabels(),
		floor:       chart.DefaultFloor,
		minFraction: chart.DefaultMinFraction,
	}
	for _, opt := range opts {
		opt(&o)
	}

	doc = doc.Clone()
	v := &View{
		Document:   doc,
		Labels:     o.labels,
		TotalPages: TotalPages,
		Threats:    chart.NewPie(threatEntries(doc.ThreatStats)),
		Storage:    chart.NewBars(barPoints(doc.ResourceStats.Storage), o.floor, o.minFraction),
		CPU:        chart.NewBars(barPoints(doc.ResourceStats.CPU), o.floor, o.minFraction),
		Invoice:    invoice.Summary(doc.Invoice),
	}

	running := o.labels.RunningTitle(doc.Meta)
	for _, spec := range Pages() {
		title := o.labels.PageTitle(spec.Sections[0])
		p := Page{
			PageSpec:   spec,
			Title:      title,
			BreakAfter: spec.Number < TotalPages,
		}
		if spec.ShowHeader {
			p.Header = Header{
				RunningTitle: running,
				ClientName:   doc.Meta.ClientName,
				Organization: doc.Meta.Organization,
				PageTitle:    title,
				PageNumber:   spec.Number,
				TotalPages:   TotalPages,
			}
		}
		v.Pages = append(v.Pages, p)

		if spec.InTOC {
			v.TOC = append(v.TOC, TOCEntry{
				Chapter: spec.Chapter,
				Title:   o.labels.tocTitle(spec.Sections[0]),
				Page:    spec.Number,
			})
		}
	}
	return v
}

// Page returns page n (1-based), or nil.
func (v *View) Page(n int) *Page {
	if n < 1 || n > len(v.Pages) {
		return nil
	}
	return &v.Pages[n-1]
}

func threatEntries(stats []document.ThreatStat) []chart.Entry {
	out := make([]chart.Entry, len(stats))
	for i, s := range stats {
		out[i] = chart.Entry{Label: s.Name, Count: s.Count, Color: s.Color}
	}
	return out
}

func barPoints(stats []document.ResourceStat) []chart.Point {
	out := make([]chart.Point, len(stats))
	for i, s := range stats {
		out[i] = chart.Point{Label: s.Month, Value: s.Value}
	}
	return out
}
