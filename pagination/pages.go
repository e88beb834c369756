// Package pagination maps report sections onto a fixed sequence of physical
// pages and builds the view model the renderer draws.
//
// The page table is static: the printed report always has TotalPages pages
// no matter how long the asset, evidence, change or news lists get. Content
// that does not fit a growable page overflows and is cut by the renderer.
package pagination

// Section names a logical block of the report.
type Section string

const (
	SectionCover       Section = "cover"
	SectionTOC         Section = "toc"
	SectionSummary     Section = "summary"
	SectionStatistics  Section = "statistics"
	SectionAssets      Section = "assets"
	SectionPerformance Section = "performance"
	SectionEvidence    Section = "evidence"
	SectionChanges     Section = "changes"
	SectionNews        Section = "news"
	SectionRoadmap     Section = "roadmap"
	SectionInvoice     Section = "invoice"
)

// TotalPages is the page count of every rendered report.
const TotalPages = 11

// PageSpec is one row of the static page table.
type PageSpec struct {
	Number   int       `json:"number"`
	Sections []Section `json:"sections"`
	// Chapter is the numbered heading shown on the page, 0 for none.
	Chapter    int  `json:"chapter"`
	Growable   bool `json:"growable"`
	ShowHeader bool `json:"showHeader"`
	InTOC      bool `json:"inToc"`
}

var pageTable = [TotalPages]PageSpec{
	{Number: 1, Sections: []Section{SectionCover}},
	{Number: 2, Sections: []Section{SectionTOC}, ShowHeader: true},
	{Number: 3, Sections: []Section{SectionSummary}, Chapter: 1, ShowHeader: true, InTOC: true},
	{Number: 4, Sections: []Section{SectionStatistics}, Chapter: 2, ShowHeader: true, InTOC: true},
	{Number: 5, Sections: []Section{SectionAssets}, Chapter: 3, Growable: true, ShowHeader: true, InTOC: true},
	{Number: 6, Sections: []Section{SectionPerformance}, Chapter: 4, ShowHeader: true, InTOC: true},
	{Number: 7, Sections: []Section{SectionEvidence}, Chapter: 5, Growable: true, ShowHeader: true, InTOC: true},
	{Number: 8, Sections: []Section{SectionChanges}, Chapter: 6, Growable: true, ShowHeader: true, InTOC: true},
	{Number: 9, Sections: []Section{SectionNews}, Chapter: 7, Growable: true, ShowHeader: true, InTOC: true},
	{Number: 10, Sections: []Section{SectionRoadmap}, Chapter: 8, ShowHeader: true, InTOC: true},
	{Number: 11, Sections: []Section{SectionInvoice}, InTOC: true},
}

// Pages returns a copy of the page table in print order.
func Pages() []PageSpec {
	out := make([]PageSpec, TotalPages)
	for i, p := range pageTable {
		p.Sections = append([]Section(nil), p.Sections...)
		out[i] = p
	}
	return out
}

// PageOf returns the page number holding s, or 0 if s is not placed.
func PageOf(s Section) int {
	for _, p := range pageTable {
		for _, ps := range p.Sections {
			if ps == s {
				return p.Number
			}
		}
	}
	return 0
}
