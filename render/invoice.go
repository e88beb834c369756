package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/boombuler/barcode/qr"
	"github.com/go-pdf/fpdf"
	"github.com/go-pdf/fpdf/contrib/barcode"
	pdf417 "github.com/ruudk/golang-pdf417"

	"github.com/kakehashi-asia/auditreport/document"
	"github.com/kakehashi-asia/auditreport/invoice"
	"github.com/kakehashi-asia/auditreport/logo"
	"github.com/kakehashi-asia/auditreport/pagination"
	"github.com/kakehashi-asia/auditreport/table"
)

const (
	logoBoxW = 50.0
	logoBoxH = 20.0
	codeSize = 30.0
	bankH    = 46.0
)

func (r *renderer) invoice() {
	pdf := r.pdf
	inv := r.v.Document.Invoice
	iv := r.v.Invoice
	w := r.contentW()
	sec := pagination.SectionInvoice

	y := margin
	r.font("B", 28)
	r.color(slate900)
	pdf.SetXY(margin, y)
	pdf.CellFormat(w-logoBoxW, 12, "INVOICE", "", 0, "L", false, 0, "")
	r.drawLogo(inv, margin+w-logoBoxW, y)

	y += 16
	meta := [][2]string{
		{"Invoice No.", inv.Number},
		{"Issue date", inv.IssueDate},
		{"Due date", inv.DueDate},
	}
	for _, kv := range meta {
		r.font("", 9)
		r.color(slate500)
		pdf.SetXY(margin, y)
		pdf.CellFormat(25, 5, r.tr(kv[0]), "", 0, "L", false, 0, "")
		r.font("B", 9)
		r.color(slate900)
		pdf.CellFormat(60, 5, r.tr(kv[1]), "", 0, "L", false, 0, "")
		y += 5
	}

	y += 6
	colW := (w - 10) / 2
	r.party(sec, margin, y, colW, "Bill to", inv.Client)
	r.party(sec, margin+colW+10, y, colW, "From", inv.Sender)
	y += 36

	// amount due
	r.fill(slate900)
	pdf.Rect(margin, y, w, 12, "F")
	r.color(white)
	r.font("B", 10)
	pdf.SetXY(margin+4, y)
	pdf.CellFormat(w/2, 12, "Amount due", "", 0, "L", false, 0, "")
	r.font("B", 14)
	pdf.CellFormat(w/2-8, 12, r.tr(iv.Total), "", 0, "R", false, 0, "")
	y += 18

	bankY := r.bottom - bankH
	t := r.table(y, 0, 18, 36, 36).SetBottomLimit(bankY - 6)
	h := t.AddHeaderRow()
	h.AddCell("Description")
	h.AddCell("Qty").SetAlign("R")
	h.AddCell("Unit price").SetAlign("R")
	h.AddCell("Amount").SetAlign("R")
	for _, l := range iv.Lines {
		row := t.AddRow()
		row.AddCell(l.Description)
		row.AddCellf("%d", l.Quantity).SetAlign("R")
		row.AddCell(l.UnitPrice).SetAlign("R")
		row.AddCell(l.Amount).SetAlign("R")
	}
	res, err := t.Render()
	if err != nil {
		return
	}
	if res.Omitted > 0 {
		r.res.Overflow[sec] += res.Omitted
	}
	r.totals(sec, res.Bottom, bankY-6, iv)

	codeW := r.codeWidth()
	bankW := w - codeW
	if codeW > 0 {
		bankW -= 8
	}
	r.bank(margin, bankY, bankW, inv.Bank)
	r.remittance(margin+w-codeW, bankY, inv, iv)

	if inv.Notes != "" {
		r.font("", 8)
		r.color(slate500)
		r.paragraph(sec, margin, bankY+bankH-10, bankW, 10, smallLnH, "L", inv.Notes)
	}
	r.color(slate900)
}

// totals draws the subtotal, tax and total rows below the item table. Rows
// that would cross limit are counted as overflow.
func (r *renderer) totals(sec pagination.Section, y, limit float64, iv invoice.View) {
	t := r.table(y, 0, 18, 36, 36).SetBottomLimit(limit)
	t.SetStyle(table.TableStyle{
		CellPadding: table.Padding{Top: 1.5, Right: 2, Bottom: 1.5, Left: 2},
		CellFont:    &table.FontSpec{Family: r.cfg.family, Size: 9},
	})
	rows := []struct {
		label, amount string
		bold          bool
	}{
		{"Subtotal", iv.Subtotal, false},
		{fmt.Sprintf("Tax (%s)", iv.TaxRateLabel), iv.Tax, false},
		{"Total", iv.Total, true},
	}
	for _, tr := range rows {
		row := t.AddRow()
		if tr.bold {
			row.SetStyle(table.CellStyle{
				FillColor: &table.RGBColor{R: slate100.r, G: slate100.g, B: slate100.b},
				Font:      &table.FontSpec{Family: r.cfg.family, Style: "B", Size: 10},
			})
		}
		row.AddCell(tr.label).SetColspan(3).SetAlign("R")
		row.AddCell(tr.amount).SetAlign("R")
	}
	if res, err := t.Render(); err == nil && res.Omitted > 0 {
		r.res.Overflow[sec] += res.Omitted
	}
}

func (r *renderer) party(sec pagination.Section, x, y, w float64, title string, p document.Party) {
	pdf := r.pdf
	r.font("B", 8)
	r.color(slate400)
	pdf.SetXY(x, y)
	pdf.CellFormat(w, 5, strings.ToUpper(title), "", 0, "L", false, 0, "")

	r.draw(slate200)
	pdf.SetLineWidth(0.2)
	pdf.Line(x, y+6, x+w, y+6)

	r.font("B", 11)
	r.color(slate900)
	pdf.SetXY(x, y+8)
	pdf.CellFormat(w, 6, r.tr(p.Name), "", 0, "L", false, 0, "")

	r.font("", 8.5)
	r.color(slate600)
	r.paragraph(sec, x, y+15, w, 20, smallLnH, "L", p.Details)
}

// drawLogo draws the invoice logo into the logo box at (x, y). Without a usable
// logo the sender organization is printed as a faint watermark instead.
func (r *renderer) drawLogo(inv document.Invoice, x, y float64) {
	pdf := r.pdf
	if inv.LogoSrc != "" {
		img, err := logo.Prepare(inv.LogoSrc)
		if err == nil && img.Width > 0 && img.Height > 0 {
			opt := fpdf.ImageOptions{ImageType: img.Type}
			pdf.RegisterImageOptionsReader("invoice-logo", opt, bytes.NewReader(img.Data))
			iw, ih := logoBoxW, logoBoxW*float64(img.Height)/float64(img.Width)
			if ih > logoBoxH {
				iw, ih = logoBoxH*float64(img.Width)/float64(img.Height), logoBoxH
			}
			pdf.ImageOptions("invoice-logo", x+logoBoxW-iw, y, iw, ih, false, opt, 0, "")
			return
		}
		r.cfg.log.Warn().Err(err).Msg("invoice logo skipped")
	}

	org := r.v.Document.Meta.Organization
	if org == "" {
		org = inv.Sender.Name
	}
	pdf.SetAlpha(0.12, "Normal")
	r.font("B", 14)
	r.color(slate900)
	pdf.SetXY(x, y+3)
	pdf.CellFormat(logoBoxW, 8, r.tr(org), "", 0, "R", false, 0, "")
	pdf.SetAlpha(1, "Normal")
}

func (r *renderer) bank(x, y, w float64, b document.Bank) {
	pdf := r.pdf
	r.fill(slate50)
	r.draw(slate200)
	pdf.SetLineWidth(0.2)
	pdf.Rect(x, y, w, bankH-12, "FD")

	r.font("B", 9)
	r.color(slate700)
	pdf.SetXY(x+4, y+2)
	pdf.CellFormat(w-8, 5, "Bank transfer", "", 0, "L", false, 0, "")

	rows := [][2]string{{"Bank", joinNonEmpty(" / ", b.Name, b.Branch)}}
	if b.SWIFT != "" {
		rows = append(rows, [2]string{"SWIFT", b.SWIFT})
	}
	rows = append(rows,
		[2]string{"Account", joinNonEmpty(" ", b.AccountType, b.AccountNo)},
		[2]string{"Holder", b.Holder},
	)
	ly := y + 8
	for _, kv := range rows {
		r.font("", 8.5)
		r.color(slate500)
		pdf.SetXY(x+4, ly)
		pdf.CellFormat(20, smallLnH, kv[0], "", 0, "L", false, 0, "")
		r.color(slate900)
		pdf.CellFormat(w-28, smallLnH, r.tr(kv[1]), "", 0, "L", false, 0, "")
		ly += smallLnH + 1
	}
}

func (r *renderer) codeWidth() float64 {
	switch r.cfg.code {
	case CodeQR:
		return codeSize
	case CodePDF417:
		return 2 * codeSize
	}
	return 0
}

// remittance prints the machine-readable transfer details at (x, y).
func (r *renderer) remittance(x, y float64, inv document.Invoice, iv invoice.View) {
	payload := remittancePayload(inv, iv)
	switch r.cfg.code {
	case CodeQR:
		key := barcode.RegisterQR(r.pdf, payload, qr.M, qr.Auto)
		if r.pdf.Err() {
			return
		}
		barcode.Barcode(r.pdf, key, x, y, codeSize, codeSize, false)
	case CodePDF417:
		key := barcode.Register(pdf417.Encode(asciiOnly(payload), 6, 2))
		barcode.Barcode(r.pdf, key, x, y+codeSize/6, 2*codeSize, codeSize*2/3, false)
	}
}

func remittancePayload(inv document.Invoice, iv invoice.View) string {
	total := iv.Totals.Total.StringFixed(int32(invoice.FractionDigits(iv.Currency)))
	lines := []string{
		"INV:" + inv.Number,
		"AMT:" + total + " " + string(iv.Currency),
		"DUE:" + inv.DueDate,
		"BANK:" + joinNonEmpty(" / ", inv.Bank.Name, inv.Bank.Branch),
	}
	if inv.Bank.SWIFT != "" {
		lines = append(lines, "SWIFT:"+inv.Bank.SWIFT)
	}
	lines = append(lines,
		"ACCT:"+joinNonEmpty(" ", inv.Bank.AccountType, inv.Bank.AccountNo),
		"NAME:"+inv.Bank.Holder,
	)
	return strings.Join(lines, "\n")
}

func asciiOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || (r >= 0x20 && r < 0x7f) {
			return r
		}
		return '?'
	}, s)
}

func joinNonEmpty(sep string, parts ...string) string {
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
