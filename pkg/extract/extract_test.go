package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromGrid(t *testing.T) {
	grid := [][]string{
		{"Position", "Summe Aktiva", "", "Stichtag", "Konsolidiert"},
		{"Bilanz", "1.500.000,00", "ignored", "2024-12-31", "ja"},
		{"Vorjahr", "1.400.000,00", "", "2023-12-31", "nein"},
	}

	columns, rows, err := fromGrid(grid)
	require.NoError(t, err)

	// the blank header is dropped
	require.Len(t, columns, 4)
	assert.Equal(t, Column{Name: "Position", Index: 0, Type: "string", SampleValues: []string{"Bilanz", "Vorjahr"}}, columns[0])
	assert.Equal(t, "number", columns[1].Type)
	assert.Equal(t, "date", columns[2].Type)
	assert.Equal(t, "boolean", columns[3].Type)

	require.Len(t, rows, 2)
	assert.Equal(t, "1.500.000,00", rows[0]["Summe Aktiva"])
	assert.NotContains(t, rows[0], "")
}

func TestFromGridSampleCap(t *testing.T) {
	grid := [][]string{{"Wert"}}
	for i := 0; i < MaxSampleValues+3; i++ {
		grid = append(grid, []string{"100"})
	}

	columns, rows, err := fromGrid(grid)
	require.NoError(t, err)
	assert.Len(t, columns[0].SampleValues, MaxSampleValues)
	assert.Len(t, rows, MaxSampleValues+3)
}

func TestFromGridSkipsEmptyRows(t *testing.T) {
	grid := [][]string{
		{"Wert"},
		{""},
		{"100"},
		{},
	}

	_, rows, err := fromGrid(grid)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestFromGridErrors(t *testing.T) {
	_, _, err := fromGrid(nil)
	assert.ErrorContains(t, err, "no data")

	_, _, err = fromGrid([][]string{{"", "  "}})
	assert.ErrorContains(t, err, "no column headers")

	wide := make([]string, MaxColumns+1)
	for i := range wide {
		wide[i] = "c" + string(rune('A'+i%26)) + string(rune('0'+i/26))
	}
	_, _, err = fromGrid([][]string{wide})
	assert.ErrorContains(t, err, "too many columns")
}

func TestInferType(t *testing.T) {
	assert.Equal(t, "boolean", inferType("Ja"))
	assert.Equal(t, "date", inferType("2024-12-31"))
	assert.Equal(t, "number", inferType("1.500.000,00"))
	assert.Equal(t, "number", inferType("-42"))
	assert.Equal(t, "string", inferType("Eigenkapital"))
}
