package pagination

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kakehashi-asia/auditreport/document"
)

func TestPageTable(t *testing.T) {
	pages := Pages()
	require.Len(t, pages, TotalPages)

	for i, p := range pages {
		assert.Equal(t, i+1, p.Number)
		assert.NotEmpty(t, p.Sections)
	}
	assert.Equal(t, 5, PageOf(SectionAssets))
	assert.Equal(t, 11, PageOf(SectionInvoice))
	assert.Equal(t, 0, PageOf("appendix"))

	var growable []Section
	for _, p := range pages {
		if p.Growable {
			growable = append(growable, p.Sections[0])
		}
	}
	assert.Equal(t, []Section{SectionAssets, SectionEvidence, SectionChanges, SectionNews}, growable)
}

func TestPagesReturnsCopy(t *testing.T) {
	p := Pages()
	p[0].Sections[0] = "mutated"
	assert.Equal(t, SectionCover, Pages()[0].Sections[0])
}

func TestBuildPageCountIsConstant(t *testing.T) {
	for _, n := range []int{0, 1, 4, 50, 300} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			doc := document.Default()
			doc.Assets = nil
			doc.Changes = nil
			doc.News = nil
			for i := 0; i < n; i++ {
				doc.Assets = append(doc.Assets, document.Asset{ID: fmt.Sprintf("A-%d", i), Status: document.StatusHealthy})
				doc.Changes = append(doc.Changes, document.ChangeLogEntry{ID: fmt.Sprintf("c%d", i)})
				doc.News = append(doc.News, document.NewsItem{ID: fmt.Sprintf("n%d", i)})
			}

			v := Build(doc)
			assert.Equal(t, TotalPages, v.TotalPages)
			assert.Len(t, v.Pages, TotalPages)
		})
	}
}

func TestBuildHeadersAndBreaks(t *testing.T) {
	doc := document.Default()
	v := Build(doc)

	for _, p := range v.Pages {
		assert.Equal(t, p.Number < TotalPages, p.BreakAfter, "page %d", p.Number)
		if !p.ShowHeader {
			assert.Zero(t, p.Header)
			continue
		}
		assert.Equal(t, p.Number, p.Header.PageNumber)
		assert.Equal(t, TotalPages, p.Header.TotalPages)
		assert.Equal(t, doc.Meta.ClientName, p.Header.ClientName)
		assert.Equal(t, "Monthly System Audit Report - 2025/05", p.Header.RunningTitle)
	}
	assert.False(t, v.Page(1).ShowHeader)
	assert.False(t, v.Page(TotalPages).ShowHeader)
	assert.Equal(t, "Asset Details", v.Page(5).Header.PageTitle)
	assert.Nil(t, v.Page(0))
	assert.Nil(t, v.Page(TotalPages+1))
}

func TestBuildTOC(t *testing.T) {
	v := Build(document.Default())

	require.Len(t, v.TOC, 9)
	assert.Equal(t, TOCEntry{Chapter: 1, Title: "Executive Summary", Page: 3}, v.TOC[0])
	assert.Equal(t, TOCEntry{Chapter: 0, Title: "Invoice", Page: 11}, v.TOC[8])
	for _, e := range v.TOC {
		assert.Equal(t, e.Page, PageOf(v.Page(e.Page).Sections[0]))
	}
}

func TestBuildDerivations(t *testing.T) {
	doc := document.Default()
	v := Build(doc)

	assert.Equal(t, 14280, v.Threats.Total)
	assert.Len(t, v.Threats.Slices, len(doc.ThreatStats))
	assert.Len(t, v.Storage.Bars, len(doc.ResourceStats.Storage))
	assert.Equal(t, 100.0, v.CPU.RefMax)
	assert.Equal(t, "$4,840.00", v.Invoice.Total)
}

func TestBuildIsolatedFromLaterEdits(t *testing.T) {
	doc := document.Default()
	v := Build(doc)

	doc.Meta.ClientName = "changed"
	doc.Assets[0].HostName = "changed"
	assert.NotEqual(t, "changed", v.Document.Meta.ClientName)
	assert.NotEqual(t, "changed", v.Document.Assets[0].HostName)
}

func TestBuildWithOptions(t *testing.T) {
	v := Build(document.Default(),
		WithLabels(Labels{
			ReportTitle: "Rapport mensuel",
			PageTitles:  map[Section]string{SectionAssets: "Actifs"},
		}),
		WithBarScale(10, 0.1),
	)

	assert.Equal(t, "Rapport mensuel - 2025/05", v.Page(3).Header.RunningTitle)
	assert.Equal(t, "Actifs", v.Page(5).Title)
	assert.Equal(t, "Executive Summary", v.Page(3).Title)
	assert.Equal(t, "Confidential", v.Labels.Confidential)
	assert.Equal(t, 65.0, v.CPU.RefMax)
}

func TestRunningTitle(t *testing.T) {
	l := DefaultLabels()
	assert.Equal(t, "Monthly System Audit Report", l.RunningTitle(document.Meta{}))
	assert.Equal(t, "Monthly System Audit Report - 05", l.RunningTitle(document.Meta{Month: "05"}))
}

func TestViewJSON(t *testing.T) {
	data, err := json.Marshal(Build(document.Default()))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.EqualValues(t, TotalPages, decoded["totalPages"])
	pages := decoded["pages"].([]any)
	assert.Equal(t, true, pages[4].(map[string]any)["growable"])
}
