// Package extract implements the (column name, value) extraction
// contract for uploaded tabular data: the first worksheet of an xlsx
// workbook, or the first table of a pasted HTML fragment. Column
// headers come from the first row; subsequent rows provide sample
// values used downstream as representative raw data.
package extract

import (
	"fmt"
	"strings"
	"time"

	"github.com/Falkyouall/xbrl-tool/pkg/numfmt"
)

// MaxColumns caps how many columns a single upload may map.
const MaxColumns = 50

// MaxSampleValues caps how many non-empty cells are kept per column.
const MaxSampleValues = 5

// Column describes one extracted spreadsheet column.
type Column struct {
	Name         string   `json:"name"`
	Index        int      `json:"index"`
	Type         string   `json:"type"` // "string", "number", "date" or "boolean"
	SampleValues []string `json:"sampleValues,omitempty"`
}

// fromGrid builds columns and rows from a header row plus data rows.
// Blank-named columns are dropped.
func fromGrid(grid [][]string) ([]Column, []map[string]any, error) {
	if len(grid) == 0 {
		return nil, nil, fmt.Errorf("no data found")
	}
	headers := grid[0]
	if len(headers) == 0 {
		return nil, nil, fmt.Errorf("no column headers found")
	}

	var columns []Column
	for i, header := range headers {
		name := strings.TrimSpace(header)
		if name == "" {
			continue
		}
		col := Column{Name: name, Index: i, Type: "string"}
		for _, row := range grid[1:] {
			if i >= len(row) {
				continue
			}
			val := strings.TrimSpace(row[i])
			if val == "" {
				continue
			}
			col.SampleValues = append(col.SampleValues, val)
			if len(col.SampleValues) == MaxSampleValues {
				break
			}
		}
		if len(col.SampleValues) > 0 {
			col.Type = inferType(col.SampleValues[0])
		}
		columns = append(columns, col)
	}
	if len(columns) == 0 {
		return nil, nil, fmt.Errorf("no column headers found")
	}
	if len(columns) > MaxColumns {
		return nil, nil, fmt.Errorf("too many columns: %d (maximum %d)", len(columns), MaxColumns)
	}

	var rows []map[string]any
	for _, raw := range grid[1:] {
		row := make(map[string]any, len(columns))
		empty := true
		for _, col := range columns {
			if col.Index >= len(raw) {
				continue
			}
			val := strings.TrimSpace(raw[col.Index])
			if val == "" {
				continue
			}
			row[col.Name] = val
			empty = false
		}
		if !empty {
			rows = append(rows, row)
		}
	}

	return columns, rows, nil
}

// inferType makes a coarse guess at a column's data type from its first
// sample value.
func inferType(sample string) string {
	switch strings.ToLower(sample) {
	case "true", "false", "ja", "nein":
		return "boolean"
	}
	if _, err := time.Parse("2006-01-02", sample); err == nil {
		return "date"
	}
	if _, ok := numfmt.Normalize(sample); ok {
		return "number"
	}
	return "string"
}
