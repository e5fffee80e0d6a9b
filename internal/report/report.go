// Package report turns a filtered item list into downloadable files.
// The tabular projection is shared; the three encoders are pure
// functions of the projected rows, so every format carries identical
// cell values in the same column order.
package report

import (
	"strconv"

	"github.com/mandazavee22/Pharmaceutical-Inventory-Tracking/domain"
)

// Download filenames, fixed regardless of the filter that produced
// the rows.
const (
	CSVFilename  = "filtered_report.csv"
	XLSXFilename = "filtered_report.xlsx"
	PDFFilename  = "filtered_report.pdf"
)

// Columns is the fixed header row of every report.
var Columns = []string{"ID", "Name", "Category", "Status", "Expiry Date"}

// Project flattens items into report rows, one per item, preserving
// the input order. The header is not included; encoders prepend it.
func Project(items []domain.Item) [][]string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			strconv.FormatInt(it.ID, 10),
			it.Name,
			it.Category,
			it.Status(),
			it.ExpiryDate,
		})
	}
	return rows
}
