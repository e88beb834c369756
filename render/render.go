// Package render draws a derived report view as a print-ready PDF.
//
// The renderer performs no business computation: every number, angle and
// formatted amount comes from the pagination.View it is given. It emits
// exactly one physical page per view page, never more; content that does
// not fit a page is cut and reported in Result.Overflow.
package render

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-pdf/fpdf"
	"github.com/go-pdf/fpdf/contrib/gofpdi"

	"github.com/kakehashi-asia/auditreport/pagination"
)

// Result describes a finished render.
type Result struct {
	Pages int `json:"pages"`
	// Overflow counts the rows or text lines per section that did not fit
	// their page and were left out.
	Overflow map[pagination.Section]int `json:"overflow,omitempty"`
}

const (
	margin   = 15.0
	headerH  = 18.0
	lineH    = 5.0
	smallLnH = 4.2
)

type rgb struct{ r, g, b int }

var (
	slate900 = rgb{15, 23, 42}
	slate700 = rgb{51, 65, 85}
	slate600 = rgb{71, 85, 105}
	slate500 = rgb{100, 116, 139}
	slate400 = rgb{148, 163, 184}
	slate300 = rgb{203, 213, 225}
	slate200 = rgb{226, 232, 240}
	slate100 = rgb{241, 245, 249}
	slate50  = rgb{248, 250, 252}
	blue600  = rgb{37, 99, 235}
	blue50   = rgb{239, 246, 255}
	indigo50 = rgb{238, 242, 255}
	white    = rgb{255, 255, 255}
)

type renderer struct {
	pdf    *fpdf.Fpdf
	cfg    config
	v      *pagination.View
	res    *Result
	tr     func(string) string
	pageW  float64
	pageH  float64
	bottom float64 // lowest y content may reach

	stationeryTpl int
	useTemplate   func()
}

// Render draws v and writes the PDF to w.
func Render(w io.Writer, v *pagination.View, opts ...Option) (*Result, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if v == nil || v.Document == nil {
		return nil, fmt.Errorf("render: nil view")
	}
	if len(cfg.stationery) > 0 && !mimetype.Detect(cfg.stationery).Is("application/pdf") {
		return nil, fmt.Errorf("render: stationery is not a PDF")
	}

	pdf := fpdf.New("P", "mm", cfg.pageSize, "")
	r := &renderer{
		pdf:           pdf,
		cfg:           cfg,
		v:             v,
		res:           &Result{Overflow: map[pagination.Section]int{}},
		tr:            func(s string) string { return s },
		stationeryTpl: -1,
	}
	r.pageW, r.pageH = pdf.GetPageSize()
	r.bottom = r.pageH - margin

	r.setup()
	for i := range v.Pages {
		pdf.AddPage()
		r.page(&v.Pages[i])
		if pdf.Err() {
			return nil, fmt.Errorf("render: page %d: %w", v.Pages[i].Number, pdf.Error())
		}
	}

	if err := pdf.Output(w); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	r.res.Pages = pdf.PageCount()
	for sec, n := range r.res.Overflow {
		cfg.log.Warn().Str("section", string(sec)).Int("omitted", n).Msg("content did not fit its page")
	}
	if len(r.res.Overflow) == 0 {
		r.res.Overflow = nil
	}
	return r.res, nil
}

func (r *renderer) setup() {
	pdf := r.pdf
	doc := r.v.Document

	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)
	pdf.SetCatalogSort(true)
	created := r.creationDate()
	pdf.SetCreationDate(created)
	pdf.SetModificationDate(created)
	pdf.SetTitle(r.v.Labels.RunningTitle(doc.Meta), true)
	pdf.SetAuthor(doc.Meta.Author, true)
	pdf.SetSubject(doc.Meta.ClientName, true)
	pdf.SetCreator(doc.Meta.Organization, true)

	if len(r.cfg.utf8Regular) > 0 {
		pdf.AddUTF8FontFromBytes(r.cfg.family, "", r.cfg.utf8Regular)
		pdf.AddUTF8FontFromBytes(r.cfg.family, "B", r.cfg.utf8Bold)
	} else {
		coreSafe := strings.NewReplacer("₱", "PHP ", "✓", "v")
		translate := pdf.UnicodeTranslatorFromDescriptor("")
		r.tr = func(s string) string { return translate(coreSafe.Replace(s)) }
	}
	r.font("", 10)

	pdf.SetHeaderFunc(func() {
		r.stationery()
		p := r.v.Page(pdf.PageNo())
		if p != nil && p.ShowHeader {
			r.header(p.Header)
		}
	})
}

func (r *renderer) creationDate() time.Time {
	if !r.cfg.creationDate.IsZero() {
		return r.cfg.creationDate
	}
	doc := r.v.Document
	for _, s := range []string{doc.Invoice.IssueDate, doc.Meta.IssueDate} {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			return t
		}
	}
	return time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
}

// stationery draws the imported background page. The import happens on the
// first page; gofpdi panics on malformed input, which is turned into a PDF
// error.
func (r *renderer) stationery() {
	if len(r.cfg.stationery) == 0 || r.pdf.Err() {
		return
	}
	if r.stationeryTpl < 0 {
		func() {
			defer func() {
				if p := recover(); p != nil {
					r.pdf.SetError(fmt.Errorf("importing stationery: %v", p))
				}
			}()
			imp := gofpdi.NewImporter()
			rs := io.ReadSeeker(bytes.NewReader(r.cfg.stationery))
			r.stationeryTpl = imp.ImportPageFromStream(r.pdf, &rs, 1, "/MediaBox")
			r.useTemplate = func() { imp.UseImportedTemplate(r.pdf, r.stationeryTpl, 0, 0, r.pageW, r.pageH) }
		}()
	}
	if r.useTemplate != nil && !r.pdf.Err() {
		r.useTemplate()
	}
}

func (r *renderer) page(p *pagination.Page) {
	top := margin
	if p.ShowHeader {
		top = margin + headerH
	}
	r.pdf.SetXY(margin, top)

	switch p.Sections[0] {
	case pagination.SectionCover:
		r.cover()
	case pagination.SectionTOC:
		r.toc(p, top)
	case pagination.SectionSummary:
		r.summary(p, top)
	case pagination.SectionStatistics:
		r.statistics(p, top)
	case pagination.SectionAssets:
		r.assets(p, top)
	case pagination.SectionPerformance:
		r.performance(p, top)
	case pagination.SectionEvidence:
		r.evidence(p, top)
	case pagination.SectionChanges:
		r.changes(p, top)
	case pagination.SectionNews:
		r.news(p, top)
	case pagination.SectionRoadmap:
		r.roadmap(p, top)
	case pagination.SectionInvoice:
		r.invoice()
	default:
		r.pdf.SetError(fmt.Errorf("unknown section %q", p.Sections[0]))
	}
}

func (r *renderer) header(h pagination.Header) {
	pdf := r.pdf
	contentW := r.pageW - 2*margin

	r.color(slate700)
	r.font("B", 10)
	pdf.SetXY(margin, 10)
	pdf.CellFormat(contentW/2, 5, r.tr(h.RunningTitle), "", 0, "L", false, 0, "")
	r.font("B", 8)
	r.color(slate400)
	pdf.CellFormat(contentW/2, 5, r.tr(h.PageTitle), "", 0, "R", false, 0, "")

	r.font("", 8)
	r.color(slate500)
	pdf.SetXY(margin, 15)
	pdf.CellFormat(contentW/2, 5, r.tr(h.ClientName), "", 0, "L", false, 0, "")
	page := fmt.Sprintf("%s | Page %d / %d", h.Organization, h.PageNumber, h.TotalPages)
	pdf.CellFormat(contentW/2, 5, r.tr(page), "", 0, "R", false, 0, "")

	r.draw(slate300)
	pdf.SetLineWidth(0.3)
	pdf.Line(margin, 21.5, r.pageW-margin, 21.5)
	r.color(slate900)
}

// chapter draws the numbered section heading and returns the y below it.
func (r *renderer) chapter(p *pagination.Page, y float64) float64 {
	pdf := r.pdf
	r.fill(blue600)
	pdf.Rect(margin, y, 8, 8, "F")
	r.color(white)
	r.font("B", 12)
	pdf.SetXY(margin, y)
	pdf.CellFormat(8, 8, strconv.Itoa(p.Chapter), "", 0, "C", false, 0, "")

	r.color(slate900)
	r.font("B", 16)
	pdf.SetXY(margin+11, y)
	pdf.CellFormat(r.pageW-2*margin-11, 8, r.tr(p.Title), "", 0, "L", false, 0, "")
	return y + 14
}

// paragraph draws s wrapped to w, clipped to maxH. Lines that do not fit
// are counted as overflow of sec. It returns the y below the last line.
func (r *renderer) paragraph(sec pagination.Section, x, y, w, maxH, lh float64, align, s string) float64 {
	lines := r.pdf.SplitLines([]byte(r.tr(s)), w)
	if maxLines := int(maxH / lh); len(lines) > maxLines {
		r.res.Overflow[sec] += len(lines) - max(maxLines, 0)
		lines = lines[:max(maxLines, 0)]
	}
	for i, ln := range lines {
		r.pdf.SetXY(x, y+float64(i)*lh)
		r.pdf.CellFormat(w, lh, string(ln), "", 0, align, false, 0, "")
	}
	return y + float64(len(lines))*lh
}

// box draws a titled panel with a body paragraph and returns its bottom.
func (r *renderer) box(sec pagination.Section, x, y, w, h float64, bg rgb, title, body string) float64 {
	pdf := r.pdf
	r.fill(bg)
	r.draw(slate200)
	pdf.SetLineWidth(0.2)
	pdf.Rect(x, y, w, h, "FD")

	r.font("B", 9)
	r.color(slate700)
	pdf.SetXY(x+4, y+3)
	pdf.CellFormat(w-8, 5, r.tr(title), "", 0, "L", false, 0, "")

	r.font("", 8.5)
	r.color(slate600)
	r.paragraph(sec, x+4, y+9, w-8, h-11, smallLnH, "L", body)
	r.color(slate900)
	return y + h
}

func (r *renderer) font(style string, size float64) {
	r.pdf.SetFont(r.cfg.family, style, size)
}

func (r *renderer) color(c rgb) { r.pdf.SetTextColor(c.r, c.g, c.b) }
func (r *renderer) fill(c rgb)  { r.pdf.SetFillColor(c.r, c.g, c.b) }
func (r *renderer) draw(c rgb)  { r.pdf.SetDrawColor(c.r, c.g, c.b) }

// parseHex reads "#rrggbb" or "#rgb"; anything else yields fallback.
func parseHex(s string, fallback rgb) rgb {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return fallback
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fallback
	}
	return rgb{int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)}
}
