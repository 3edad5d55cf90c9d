package extract

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Excel extracts columns and sample rows from the first worksheet of an
// xlsx workbook.
func Excel(r io.Reader) ([]Column, []map[string]any, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("no worksheets found in workbook")
	}

	grid, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read worksheet %q: %w", sheets[0], err)
	}
	if len(grid) == 0 {
		return nil, nil, fmt.Errorf("worksheet %q contains no data", sheets[0])
	}

	return fromGrid(grid)
}
