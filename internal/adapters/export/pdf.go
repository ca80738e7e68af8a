// Package export renders a ParcelRecord (and optionally its memo) into the
// two artifact formats: a styled PDF document and a single-row CSV.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"parcel_research/internal/adapters/observability"
	"parcel_research/internal/domain"
)

const (
	pageMargin = 15.0
	labelWidth = 50.0
	lineHeight = 6.0
)

// ToPDF renders the research document: title block, metadata header, memo
// sections in fixed order, then the full property table. A nil memo is fine;
// the document then carries the property table only.
func ToPDF(p domain.ParcelRecord, memo *domain.Memo) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Commercial Property Research Memo", false)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	// title block
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "Commercial Property Research Memo", "", 1, "L", false, 0, "")
	pdf.SetDrawColor(52, 152, 219)
	pdf.SetLineWidth(0.6)
	x := pdf.GetX()
	y := pdf.GetY()
	pdf.Line(x, y, 210-pageMargin, y)
	pdf.Ln(4)

	// metadata header
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 5, fmt.Sprintf("APN: %s", p.APN), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Generated: %s", time.Now().UTC().Format(time.RFC3339)), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	if memo != nil {
		writeMemo(pdf, memo)
	}

	writePropertyTable(pdf, p)

	var buf bytes.Buffer
	err := pdf.Output(&buf)
	observability.ObserveExport("pdf", err)
	if err != nil {
		return nil, &domain.ExportError{Format: "pdf", Err: err}
	}
	return buf.Bytes(), nil
}

func writeMemo(pdf *fpdf.Fpdf, memo *domain.Memo) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Research Memo", "", 1, "L", false, 0, "")
	if memo.Provenance == domain.ProvenanceFallback {
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 4, "Generated from record data without AI assistance.", "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.Ln(2)
	for _, s := range memo.Sections {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 7, s.Title, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, s.Body, "", "L", false)
		pdf.Ln(2)
	}
	pdf.Ln(2)
}

func writePropertyTable(pdf *fpdf.Fpdf, p domain.ParcelRecord) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Property Information", "", 1, "L", false, 0, "")
	pdf.Ln(1)

	valueWidth := 210 - 2*pageMargin - labelWidth
	pdf.SetFillColor(242, 242, 242)
	for _, row := range tableRows(p) {
		// measure with the value font so label and value rows stay level
		pdf.SetFont("Helvetica", "", 10)
		lines := pdf.SplitText(row[1], valueWidth-2)
		rowH := float64(len(lines)) * lineHeight
		if rowH < lineHeight {
			rowH = lineHeight
		}
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(labelWidth, rowH, row[0], "1", 0, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(valueWidth, lineHeight, row[1], "1", "L", false)
	}
}

func tableRows(p domain.ParcelRecord) [][2]string {
	saleDate := "No recent sale"
	if p.SaleDate != nil {
		saleDate = *p.SaleDate
	}
	salePrice := "No recent sale"
	if p.SalePrice != nil {
		salePrice = currency.Sprintf("$%d", *p.SalePrice)
	}
	return [][2]string{
		{"Owner", p.Owner},
		{"Mailing Address", p.MailingAddress},
		{"APN", p.APN},
		{"Parcel Size", p.ParcelSize},
		{"Legal Description", p.LegalDescription},
		{"Valuation", p.Valuation},
		{"Sale Date", saleDate},
		{"Sale Price", salePrice},
		{"Zoning", p.Zoning},
		{"Source", p.SourceURL},
	}
}

var currency = message.NewPrinter(language.English)
