package render_test

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kakehashi-asia/auditreport/document"
	"github.com/kakehashi-asia/auditreport/logo"
	"github.com/kakehashi-asia/auditreport/pagination"
	"github.com/kakehashi-asia/auditreport/render"
)

func renderDoc(t *testing.T, doc *document.Document, opts ...render.Option) ([]byte, *render.Result) {
	t.Helper()
	opts = append([]render.Option{render.WithLogger(zerolog.New(zerolog.NewTestWriter(t)))}, opts...)
	var buf bytes.Buffer
	res, err := render.Render(&buf, pagination.Build(doc), opts...)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	return buf.Bytes(), res
}

func pageObjects(pdf []byte) int {
	return bytes.Count(pdf, []byte("/Type /Page\n"))
}

func TestRenderDefaultDocument(t *testing.T) {
	out, res := renderDoc(t, document.Default())
	assert.Equal(t, pagination.TotalPages, res.Pages)
	assert.Equal(t, pagination.TotalPages, pageObjects(out))
	assert.Empty(t, res.Overflow)
}

func TestRenderPageCountIsFixed(t *testing.T) {
	doc := document.Default()
	for i := 0; i < 200; i++ {
		doc.Assets = append(doc.Assets, document.Asset{
			ID:       fmt.Sprintf("SRV-%03d", i),
			HostName: fmt.Sprintf("host-%03d", i),
			Role:     "Application server",
			OS:       "Debian 12",
			Status:   document.StatusWarning,
			Detail:   "Pending kernel update",
		})
	}
	for i := 0; i < 60; i++ {
		doc.News = append(doc.News, document.NewsItem{
			ID:      fmt.Sprintf("n%d", i),
			Title:   "Ransomware campaign",
			Date:    "2025/05/20",
			Source:  "CERT",
			Content: strings.Repeat("Attackers exploit unpatched VPN appliances. ", 5),
			Impact:  "Patch applied",
		})
	}

	out, res := renderDoc(t, doc)
	assert.Equal(t, pagination.TotalPages, res.Pages)
	assert.Equal(t, pagination.TotalPages, pageObjects(out))
	assert.Positive(t, res.Overflow[pagination.SectionAssets])
	assert.Positive(t, res.Overflow[pagination.SectionNews])
	assert.Less(t, res.Overflow[pagination.SectionAssets], len(doc.Assets))
}

func TestRenderIsDeterministic(t *testing.T) {
	a, _ := renderDoc(t, document.Default())
	b, _ := renderDoc(t, document.Default())
	assert.True(t, bytes.Equal(a, b))
}

func TestRenderCreationDate(t *testing.T) {
	when := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	a, _ := renderDoc(t, document.Default())
	b, _ := renderDoc(t, document.Default(), render.WithCreationDate(when))
	assert.True(t, bytes.Equal(a, b))

	c, _ := renderDoc(t, document.Default(), render.WithCreationDate(when.AddDate(1, 0, 0)))
	assert.False(t, bytes.Equal(a, c))
}

func TestRenderRemittanceCodes(t *testing.T) {
	for _, code := range []render.RemittanceCode{render.CodeQR, render.CodePDF417, render.CodeNone} {
		t.Run(string(code), func(t *testing.T) {
			_, res := renderDoc(t, document.Default(), render.WithRemittanceCode(code))
			assert.Equal(t, pagination.TotalPages, res.Pages)
		})
	}
}

func TestRenderCurrencies(t *testing.T) {
	for _, c := range []document.Currency{document.JPY, document.USD, document.PHP} {
		t.Run(string(c), func(t *testing.T) {
			doc := document.Default()
			doc.Invoice.Currency = c
			doc.Invoice.TaxRatePercent = 10
			_, res := renderDoc(t, doc)
			assert.Equal(t, pagination.TotalPages, res.Pages)
		})
	}
}

func TestRenderEmptyThreats(t *testing.T) {
	doc := document.Default()
	for i := range doc.ThreatStats {
		doc.ThreatStats[i].Count = 0
	}
	_, res := renderDoc(t, doc)
	assert.Equal(t, pagination.TotalPages, res.Pages)
}

func TestRenderSingleThreat(t *testing.T) {
	doc := document.Default()
	doc.ThreatStats = []document.ThreatStat{{Name: "Port Scan", Count: 10, Color: "#64748b"}}
	_, res := renderDoc(t, doc)
	assert.Equal(t, pagination.TotalPages, res.Pages)
}

func TestRenderWithLogo(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for x := 0; x < 40; x++ {
		for y := 0; y < 20; y++ {
			img.Set(x, y, color.RGBA{R: 37, G: 99, B: 235, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	uri, err := logo.DataURI(buf.Bytes())
	require.NoError(t, err)

	doc := document.Default()
	doc.Invoice.LogoSrc = uri
	out, res := renderDoc(t, doc)
	assert.Equal(t, pagination.TotalPages, res.Pages)
	assert.Contains(t, string(out), "/Subtype /Image")
}

func TestRenderWithBrokenLogoFallsBack(t *testing.T) {
	doc := document.Default()
	doc.Invoice.LogoSrc = "data:image/png;base64,AAAA"
	_, res := renderDoc(t, doc)
	assert.Equal(t, pagination.TotalPages, res.Pages)
}

func TestRenderWithStationery(t *testing.T) {
	bg := fpdf.New("P", "mm", "A4", "")
	bg.AddPage()
	bg.SetFont("Helvetica", "", 8)
	bg.Text(15, 290, "KAKEHASHI ASIA inc.")
	var buf bytes.Buffer
	require.NoError(t, bg.Output(&buf))

	_, res := renderDoc(t, document.Default(), render.WithStationery(buf.Bytes()))
	assert.Equal(t, pagination.TotalPages, res.Pages)
}

func TestRenderRejectsNonPDFStationery(t *testing.T) {
	var buf bytes.Buffer
	_, err := render.Render(&buf, pagination.Build(document.Default()), render.WithStationery([]byte("plain text")))
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestRenderNilView(t *testing.T) {
	_, err := render.Render(&bytes.Buffer{}, nil)
	assert.Error(t, err)
}

func TestRenderCustomLabels(t *testing.T) {
	l := pagination.Labels{
		ReportTitle:  "Monatlicher Prüfbericht",
		ClientSuffix: "GmbH",
	}
	var buf bytes.Buffer
	res, err := render.Render(&buf, pagination.Build(document.Default(), pagination.WithLabels(l)), render.WithPageSize("Letter"))
	require.NoError(t, err)
	assert.Equal(t, pagination.TotalPages, res.Pages)
}
