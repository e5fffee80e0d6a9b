package report

import (
	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

// EncodeXLSX renders the projected rows as a single-sheet workbook
// with a header row and no styling beyond the defaults. Document
// properties are pinned so the same row set encodes the same way on
// every run.
func EncodeXLSX(rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetDocProps(&excelize.DocProperties{
		Creator:  "inventory-tracker",
		Created:  "2006-01-02T15:04:05Z",
		Modified: "2006-01-02T15:04:05Z",
	}); err != nil {
		return nil, err
	}

	writeRow := func(rowIdx int, values []string) error {
		cells := make([]interface{}, len(values))
		for i, v := range values {
			cells[i] = v
		}
		start, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return err
		}
		return f.SetSheetRow(sheetName, start, &cells)
	}

	if err := writeRow(1, Columns); err != nil {
		return nil, err
	}
	for i, row := range rows {
		if err := writeRow(i+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
