package render

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kakehashi-asia/auditreport/document"
	"github.com/kakehashi-asia/auditreport/pagination"
	"github.com/kakehashi-asia/auditreport/table"
)

var counts = message.NewPrinter(language.English)

func (r *renderer) contentW() float64 { return r.pageW - 2*margin }

func (r *renderer) cover() {
	pdf := r.pdf
	doc := r.v.Document
	l := r.v.Labels
	w := r.contentW()

	r.fill(slate900)
	pdf.Rect(0, 0, r.pageW, 6, "F")

	r.font("B", 11)
	r.color(blue600)
	pdf.SetXY(margin, 40)
	pdf.CellFormat(w, 6, r.tr(doc.Meta.Organization), "", 0, "L", false, 0, "")

	r.font("B", 26)
	r.color(slate900)
	y := r.paragraph(pagination.SectionCover, margin, 60, w, 40, 11, "L", l.PageTitle(pagination.SectionCover))

	r.font("", 13)
	r.color(slate600)
	y = r.paragraph(pagination.SectionCover, margin, y+4, w, 14, 7, "L", l.RunningTitle(doc.Meta))

	r.draw(blue600)
	pdf.SetLineWidth(1)
	pdf.Line(margin, y+6, margin+40, y+6)

	r.font("B", 18)
	r.color(slate900)
	client := doc.Meta.ClientName
	if l.ClientSuffix != "" {
		client += " " + l.ClientSuffix
	}
	r.paragraph(pagination.SectionCover, margin, 150, w, 20, 9, "L", client)

	rows := [][2]string{
		{"Period", strings.Trim(doc.Meta.Year+"/"+doc.Meta.Month, "/")},
		{"Issue date", doc.Meta.IssueDate},
		{"Author", doc.Meta.Author},
		{"Organization", doc.Meta.Organization},
	}
	y = 200
	for _, kv := range rows {
		r.font("B", 9)
		r.color(slate500)
		pdf.SetXY(margin, y)
		pdf.CellFormat(35, 6, r.tr(kv[0]), "", 0, "L", false, 0, "")
		r.font("", 10)
		r.color(slate900)
		pdf.CellFormat(w-35, 6, r.tr(kv[1]), "", 0, "L", false, 0, "")
		y += 8
	}

	if l.Confidential != "" {
		r.fill(slate100)
		pdf.Rect(margin, r.bottom-12, 40, 8, "F")
		r.font("B", 9)
		r.color(slate700)
		pdf.SetXY(margin, r.bottom-12)
		pdf.CellFormat(40, 8, r.tr(strings.ToUpper(l.Confidential)), "", 0, "C", false, 0, "")
	}
	r.color(slate900)
}

func (r *renderer) toc(p *pagination.Page, y float64) {
	pdf := r.pdf
	w := r.contentW()

	r.font("B", 18)
	r.color(slate900)
	pdf.SetXY(margin, y)
	pdf.CellFormat(w, 10, r.tr(p.Title), "", 0, "L", false, 0, "")
	y += 18

	for _, e := range r.v.TOC {
		num := ""
		if e.Chapter > 0 {
			num = fmt.Sprintf("%02d", e.Chapter)
		}
		r.font("B", 12)
		r.color(blue600)
		pdf.SetXY(margin, y)
		pdf.CellFormat(14, 8, num, "", 0, "L", false, 0, "")

		r.font("", 12)
		r.color(slate900)
		title := r.tr(e.Title)
		pdf.CellFormat(pdf.GetStringWidth(title)+2, 8, title, "", 0, "L", false, 0, "")

		page := fmt.Sprintf("P.%d", e.Page)
		pageW := pdf.GetStringWidth(page) + 2
		leaderX := pdf.GetX()
		r.draw(slate300)
		pdf.SetLineWidth(0.2)
		pdf.SetDashPattern([]float64{0.5, 1}, 0)
		pdf.Line(leaderX+1, y+6, margin+w-pageW-1, y+6)
		pdf.SetDashPattern([]float64{}, 0)

		r.color(slate500)
		pdf.SetXY(margin+w-pageW, y)
		pdf.CellFormat(pageW, 8, page, "", 0, "R", false, 0, "")
		y += 12
	}
	r.color(slate900)
}

func (r *renderer) summary(p *pagination.Page, y float64) {
	pdf := r.pdf
	s := r.v.Document.Summary
	l := r.v.Labels
	w := r.contentW()
	sec := pagination.SectionSummary

	y = r.chapter(p, y)

	// score card
	cardW := 60.0
	cardH := 58.0
	bg, fg := scoreColors(s.Score)
	r.fill(bg)
	pdf.Rect(margin, y, cardW, cardH, "F")
	r.color(fg)
	r.font("B", 9)
	pdf.SetXY(margin, y+4)
	pdf.CellFormat(cardW, 5, "Overall Score", "", 0, "C", false, 0, "")
	r.font("B", 44)
	pdf.SetXY(margin, y+12)
	pdf.CellFormat(cardW, 20, string(s.Score), "", 0, "C", false, 0, "")
	r.font("", 8.5)
	r.paragraph(sec, margin+4, y+36, cardW-8, 18, smallLnH, "C", l.ScoreText[s.Score])

	// metrics
	mx := margin + cardW + 6
	mw := w - cardW - 6
	metrics := [][2]string{
		{"System uptime", s.Uptime},
		{"Threats blocked", counts.Sprintf("%d", s.ThreatsBlocked)},
		{"Backup status", s.BackupStatus},
	}
	mh := cardH / float64(len(metrics))
	for i, m := range metrics {
		my := y + float64(i)*mh
		r.fill(slate50)
		r.draw(slate200)
		pdf.SetLineWidth(0.2)
		pdf.Rect(mx, my, mw, mh-2, "FD")
		r.font("", 9)
		r.color(slate500)
		pdf.SetXY(mx+4, my+2)
		pdf.CellFormat(mw-8, 5, r.tr(m[0]), "", 0, "L", false, 0, "")
		r.font("B", 13)
		r.color(slate900)
		pdf.SetXY(mx+4, my+8)
		pdf.CellFormat(mw-8, 7, r.tr(m[1]), "", 0, "L", false, 0, "")
	}
	y += cardH + 4

	r.font("", 7.5)
	r.color(slate400)
	y = r.paragraph(sec, margin, y, w, 8, 4, "L", l.ScoreCriteria) + 4

	r.font("B", 11)
	r.color(slate900)
	pdf.SetXY(margin, y)
	pdf.CellFormat(w, 6, "Summary", "", 0, "L", false, 0, "")
	r.font("", 10)
	r.color(slate700)
	r.paragraph(sec, margin, y+8, w, r.bottom-y-8, lineH, "L", s.Comment)
	r.color(slate900)
}

func scoreColors(s document.HealthScore) (bg, fg rgb) {
	switch s {
	case document.ScoreS:
		return rgb{209, 250, 229}, rgb{4, 120, 87}
	case document.ScoreA:
		return rgb{219, 234, 254}, rgb{29, 78, 216}
	case document.ScoreB:
		return rgb{254, 243, 199}, rgb{180, 83, 9}
	default:
		return rgb{254, 226, 226}, rgb{185, 28, 28}
	}
}

func (r *renderer) statistics(p *pagination.Page, y float64) {
	sa := r.v.Document.SecurityAnalysis
	w := r.contentW()
	sec := pagination.SectionStatistics

	y = r.chapter(p, y)
	y = r.pie(sec, margin, y, w, 90)

	boxW := (w - 6) / 2
	boxH := min(70.0, r.bottom-y-6)
	r.box(sec, margin, y+6, boxW, boxH, slate50, sa.GlobalIPTitle, sa.GlobalIPComment)
	r.box(sec, margin+boxW+6, y+6, boxW, boxH, slate50, sa.BotDefenseTitle, sa.BotDefenseComment)
}

func (r *renderer) assets(p *pagination.Page, y float64) {
	y = r.chapter(p, y)

	t := r.table(y, 22, 32, 30, 32, 20, 0)
	h := t.AddHeaderRow()
	for _, c := range []string{"ID", "Host", "Role", "OS", "Status", "Detail"} {
		h.AddCell(c)
	}
	for _, a := range r.v.Document.Assets {
		row := t.AddRow()
		row.AddCell(a.ID)
		row.AddCell(a.HostName)
		row.AddCell(a.Role)
		row.AddCell(a.OS)
		bg, fg := statusColors(a.Status)
		row.AddCell(string(a.Status)).SetAlign("C").
			SetFillColor(bg.r, bg.g, bg.b).SetTextColor(fg.r, fg.g, fg.b)
		row.AddCell(a.Detail)
	}
	r.finishTable(pagination.SectionAssets, t)
}

func statusColors(s document.AssetStatus) (bg, fg rgb) {
	switch s {
	case document.StatusHealthy:
		return rgb{220, 252, 231}, rgb{21, 128, 61}
	case document.StatusWarning:
		return rgb{254, 243, 199}, rgb{180, 83, 9}
	default:
		return rgb{254, 226, 226}, rgb{185, 28, 28}
	}
}

func (r *renderer) performance(p *pagination.Page, y float64) {
	perf := r.v.Document.Performance
	w := r.contentW()
	sec := pagination.SectionPerformance

	y = r.chapter(p, y)
	colW := (w - 6) / 2

	r.bars(margin, y, colW, 60, "Storage usage", r.v.Storage, blue600)
	r.bars(margin+colW+6, y, colW, 60, "CPU load", r.v.CPU, rgb{99, 102, 241})
	y += 66

	boxH := (r.bottom - y - 6) / 2
	r.box(sec, margin, y, colW, boxH, blue50, "Storage", perf.StorageAnalysis)
	r.box(sec, margin+colW+6, y, colW, boxH, indigo50, "Load", perf.LoadAnalysis)
	y += boxH + 6
	r.box(sec, margin, y, colW, boxH, slate50, "Devices", perf.DeviceAnalysis)
	r.box(sec, margin+colW+6, y, colW, boxH, slate50, "Web", perf.WebAnalysis)
}

func (r *renderer) evidence(p *pagination.Page, y float64) {
	y = r.chapter(p, y)

	t := r.table(y, 24, 40, 22, 24, 0)
	h := t.AddHeaderRow()
	for _, c := range []string{"Category", "Title", "Status", "Date", "Description"} {
		h.AddCell(c)
	}
	for _, e := range r.v.Document.Evidence {
		row := t.AddRow()
		row.AddCell(string(e.Category))
		row.AddCell(e.Title)
		row.AddCell(e.Status).SetAlign("C").SetTextColor(21, 128, 61)
		row.AddCell(e.Date)
		row.AddCell(e.Description)
	}
	r.finishTable(pagination.SectionEvidence, t)
}

func (r *renderer) changes(p *pagination.Page, y float64) {
	y = r.chapter(p, y)

	t := r.table(y, 22, 26, 0, 26, 26)
	h := t.AddHeaderRow()
	for _, c := range []string{"Date", "Type", "Content", "Result", "Owner"} {
		h.AddCell(c)
	}
	for _, c := range r.v.Document.Changes {
		row := t.AddRow()
		if strings.Contains(strings.ToLower(c.Type), "incident") {
			row.SetStyle(table.CellStyle{
				FillColor: &table.RGBColor{R: 254, G: 242, B: 242},
				TextColor: &table.RGBColor{R: 185, G: 28, B: 28},
			})
		}
		row.AddCell(c.Date)
		row.AddCell(c.Type)
		row.AddCell(c.Content)
		row.AddCell(c.Result)
		row.AddCell(c.Owner)
	}
	r.finishTable(pagination.SectionChanges, t)
}

func (r *renderer) news(p *pagination.Page, y float64) {
	y = r.chapter(p, y)

	t := r.table(y, 24, 0, 50)
	h := t.AddHeaderRow()
	for _, c := range []string{"Date / Source", "Article", "Impact"} {
		h.AddCell(c)
	}
	for _, n := range r.v.Document.News {
		row := t.AddRow()
		row.AddCell(n.Date + "\n" + n.Source)
		row.AddCell(n.Title + "\n" + n.Content)
		row.AddCell(n.Impact).SetTextColor(blue600.r, blue600.g, blue600.b)
	}
	r.finishTable(pagination.SectionNews, t)
}

func (r *renderer) roadmap(p *pagination.Page, y float64) {
	pdf := r.pdf
	rm := r.v.Document.Roadmap
	w := r.contentW()
	sec := pagination.SectionRoadmap

	y = r.chapter(p, y)
	boxH := (r.bottom - y - 26) / 2
	r.box(sec, margin, y, w, boxH, blue50, "Plan for next month", rm.NextMonthPlan)
	y += boxH + 6
	r.box(sec, margin, y, w, boxH, slate50, "Strategic advice", rm.StrategicAdvice)

	r.font("B", 10)
	r.color(slate400)
	pdf.SetXY(margin, r.bottom-10)
	pdf.CellFormat(w, 6, "End of Report", "", 0, "C", false, 0, "")
	r.color(slate900)
}

// table starts a report-styled table at y spanning the content width.
func (r *renderer) table(y float64, widths ...float64) *table.Table {
	return table.New(r.pdf).
		SetTranslator(r.tr).
		SetStyle(table.ReportStyle(r.cfg.family)).
		SetColumnWidths(widths...).
		SetPosition(margin, y).
		SetWidth(r.contentW()).
		SetBottomLimit(r.bottom)
}

func (r *renderer) finishTable(sec pagination.Section, t *table.Table) float64 {
	res, err := t.Render()
	if err != nil {
		return r.bottom
	}
	if res.Omitted > 0 {
		r.res.Overflow[sec] += res.Omitted
	}
	return res.Bottom
}
