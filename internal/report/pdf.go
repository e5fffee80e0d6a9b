package report

import (
	"bytes"
	"time"

	"github.com/jung-kurt/gofpdf"
)

var pdfColWidths = []float64{18, 62, 42, 24, 32}

// EncodePDF renders the projected rows as a single gridded table:
// bold white-on-grey header, shaded body rows. The creation date is
// pinned so the same row set produces the same bytes on every run.
func EncodePDF(rows [][]string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetCreationDate(time.Date(2006, time.January, 2, 15, 4, 5, 0, time.UTC))
	pdf.AddPage()

	// Header row: bold white text on grey, extra padding.
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(128, 128, 128)
	pdf.SetTextColor(255, 255, 255)
	for i, col := range Columns {
		pdf.CellFormat(pdfColWidths[i], 10, col, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	// Body rows: shaded, grid-lined.
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetFillColor(245, 245, 220)
	pdf.SetTextColor(0, 0, 0)
	for _, row := range rows {
		for i, cell := range row {
			pdf.CellFormat(pdfColWidths[i], 8, cell, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
