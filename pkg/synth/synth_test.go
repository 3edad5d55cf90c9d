package synth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Falkyouall/xbrl-tool/pkg/mapping"
)

func TestSynthesizeBalanceSheetLexicon(t *testing.T) {
	aktiva := Synthesize("Summe Aktiva", mapping.KindMonetary)
	passiva := Synthesize("Summe Passiva", mapping.KindMonetary)

	a, ok := aktiva.Decimal()
	require.True(t, ok)
	p, ok := passiva.Decimal()
	require.True(t, ok)
	assert.True(t, a.Equal(p), "sample balance sheet must balance")
	assert.Equal(t, "1500000", a.String())
}

func TestSynthesizeLexiconBeatsKindDefault(t *testing.T) {
	got := Synthesize("Eigenkapital", mapping.KindMonetary)
	d, ok := got.Decimal()
	require.True(t, ok)
	assert.Equal(t, "600000", d.String())

	// specific terms win over their substring parents
	got = Synthesize("Verbindlichkeiten gegenüber Kreditinstituten", mapping.KindMonetary)
	d, ok = got.Decimal()
	require.True(t, ok)
	assert.Equal(t, "400000", d.String())
}

func TestSynthesizeByKind(t *testing.T) {
	tests := []struct {
		name     string
		column   string
		kind     mapping.ValueKind
		expected string
		numeric  bool
	}{
		{"monetary default", "Sonstige Posten", mapping.KindMonetary, "250000", true},
		{"shares default", "Anzahl Aktien", mapping.KindShares, "10000", true},
		{"decimal default", "Quote", mapping.KindDecimal, "12.5", true},
		{"boolean", "Konsolidiert", mapping.KindBoolean, "true", false},
		{"plain string", "Bemerkung", mapping.KindString, "Sample Value", false},
		{"no kind monetary keyword", "Buchwert", "", "250000", true},
		{"no kind no hint", "Notiz", "", "Sample Value", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Synthesize(tt.column, tt.kind)
			assert.Equal(t, tt.numeric, got.IsNumeric())
			assert.Equal(t, tt.expected, got.String())
		})
	}
}

func TestSynthesizeDate(t *testing.T) {
	restore := now
	defer func() { now = restore }()
	now = func() time.Time { return time.Date(2024, 12, 31, 10, 0, 0, 0, time.UTC) }

	got := Synthesize("Stichtag", mapping.KindDate)
	assert.False(t, got.IsNumeric())
	assert.Equal(t, "2024-12-31", got.String())
}
