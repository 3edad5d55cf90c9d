package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Falkyouall/xbrl-tool/pkg/mapping"
	"github.com/Falkyouall/xbrl-tool/pkg/taxonomy"
	"github.com/Falkyouall/xbrl-tool/pkg/xbrl"
)

func hgbConfig() Config {
	return Config{
		EntityID:      "DE123456",
		ReportingDate: "2024-12-31",
		Currency:      "EUR",
		Regulation:    taxonomy.HGB,
		Perspective:   taxonomy.Bilanz,
		Recipient:     taxonomy.Bundesbank,
	}
}

func TestBuildBalanceSheet(t *testing.T) {
	mappings := []mapping.Mapping{{
		ExcelColumn: "Summe Aktiva",
		XBRLTag:     "ifrs-full:Assets",
		Confidence:  0.95,
		DataType:    mapping.KindMonetary,
	}}

	inst, err := Build(mappings, hgbConfig(), nil, nil)
	require.NoError(t, err)

	require.Len(t, inst.Contexts, 1)
	ctx := inst.Contexts[0]
	assert.Equal(t, "c1", ctx.ID)
	assert.Equal(t, "http://www.bundesbank.de", ctx.Entity.Scheme)
	assert.Equal(t, "DE123456", ctx.Entity.Value)
	assert.Equal(t, "2024-12-31", ctx.Period.Instant)
	assert.Empty(t, ctx.Period.StartDate)

	require.Len(t, inst.Units, 3)
	assert.Equal(t, "iso4217:EUR", inst.Units[0].Measure)

	require.Len(t, inst.Facts, 1)
	fact := inst.Facts[0]
	assert.Equal(t, "de-gaap", fact.Namespace)
	assert.Equal(t, "Aktiva", fact.Name)
	assert.Equal(t, "de-gaap:Aktiva", fact.Tag())
	assert.Equal(t, "c1", fact.ContextRef)
	assert.Equal(t, xbrl.UnitCurrency, fact.UnitRef)
	assert.Equal(t, "0", fact.Decimals)
	assert.True(t, fact.Exact)

	d, ok := fact.Value.Decimal()
	require.True(t, ok)
	assert.True(t, d.IsPositive())
	assert.Equal(t, "1500000", d.String())

	assert.Equal(t, taxonomy.SchemaRef(taxonomy.HGB), inst.SchemaRef)
}

func TestBuildIncomeStatementPeriod(t *testing.T) {
	cfg := hgbConfig()
	cfg.Perspective = taxonomy.GuV
	cfg.ReportingDate = "2024-06-30"

	inst, err := Build([]mapping.Mapping{{
		ExcelColumn: "Umsatzerlöse",
		XBRLTag:     "Revenue",
		Confidence:  0.9,
		DataType:    mapping.KindMonetary,
	}}, cfg, nil, nil)
	require.NoError(t, err)

	period := inst.Contexts[0].Period
	assert.Empty(t, period.Instant)
	assert.Equal(t, "2024-01-01", period.StartDate)
	assert.Equal(t, "2024-06-30", period.EndDate)
}

func TestBuildDropsLowConfidence(t *testing.T) {
	mappings := []mapping.Mapping{
		{ExcelColumn: "Summe Aktiva", XBRLTag: "Assets", Confidence: 0.95, DataType: mapping.KindMonetary},
		{ExcelColumn: "Unklar", XBRLTag: "Unknown", Confidence: 0.1, DataType: mapping.KindMonetary},
	}

	inst, err := Build(mappings, hgbConfig(), nil, nil)
	require.NoError(t, err)
	require.Len(t, inst.Facts, 1)
	assert.Equal(t, "Aktiva", inst.Facts[0].Name)
}

func TestBuildCustomThreshold(t *testing.T) {
	mappings := []mapping.Mapping{
		{ExcelColumn: "Summe Aktiva", XBRLTag: "Assets", Confidence: 0.3, DataType: mapping.KindMonetary},
	}

	inst, err := BuildWithOptions(mappings, hgbConfig(), nil, nil, Options{RetentionThreshold: 0.5})
	require.NoError(t, err)
	assert.Empty(t, inst.Facts)
}

func TestBuildDeduplicatesResolvedTags(t *testing.T) {
	// both columns resolve to de-gaap:Aktiva; the first wins
	mappings := []mapping.Mapping{
		{ExcelColumn: "Summe Aktiva", XBRLTag: "ifrs-full:Assets", Confidence: 0.95, DataType: mapping.KindMonetary},
		{ExcelColumn: "Bilanzsumme", XBRLTag: "de-gaap:Aktiva", Confidence: 0.9, DataType: mapping.KindMonetary},
	}
	rows := []Row{{"Summe Aktiva": "1.500.000,00", "Bilanzsumme": "999"}}

	inst, err := Build(mappings, hgbConfig(), rows, nil)
	require.NoError(t, err)
	require.Len(t, inst.Facts, 1)

	d, ok := inst.Facts[0].Value.Decimal()
	require.True(t, ok)
	assert.Equal(t, "1500000.00", d.String())
}

func TestBuildNormalizesRawCells(t *testing.T) {
	mappings := []mapping.Mapping{
		{ExcelColumn: "Eigenkapital", XBRLTag: "Equity", Confidence: 0.9, DataType: mapping.KindMonetary},
	}
	rows := []Row{{"Eigenkapital": "600.000,50 €"}}

	inst, err := Build(mappings, hgbConfig(), rows, nil)
	require.NoError(t, err)
	require.Len(t, inst.Facts, 1)

	d, ok := inst.Facts[0].Value.Decimal()
	require.True(t, ok)
	assert.Equal(t, "600000.50", d.String())
}

func TestBuildSynthesizesUnparseableNumericCells(t *testing.T) {
	mappings := []mapping.Mapping{
		{ExcelColumn: "Eigenkapital", XBRLTag: "Equity", Confidence: 0.9, DataType: mapping.KindMonetary},
	}
	rows := []Row{{"Eigenkapital": "n/a"}}

	inst, err := Build(mappings, hgbConfig(), rows, nil)
	require.NoError(t, err)
	require.Len(t, inst.Facts, 1)

	// numeric kinds always end up with a numeric value
	d, ok := inst.Facts[0].Value.Decimal()
	require.True(t, ok)
	assert.Equal(t, "600000", d.String())
}

func TestBuildStringFactsCarryNoUnit(t *testing.T) {
	mappings := []mapping.Mapping{
		{ExcelColumn: "Bemerkung", XBRLTag: "Notes", Confidence: 0.9, DataType: mapping.KindString},
	}
	rows := []Row{{"Bemerkung": "  geprüft  "}}

	inst, err := Build(mappings, hgbConfig(), rows, nil)
	require.NoError(t, err)
	require.Len(t, inst.Facts, 1)

	fact := inst.Facts[0]
	assert.Empty(t, fact.UnitRef)
	assert.Empty(t, fact.Decimals)
	assert.False(t, fact.Value.IsNumeric())
	assert.Equal(t, "geprüft", fact.Value.String())
	assert.False(t, fact.Exact, "mechanically rewritten tags are not exact")
}

func TestBuildAnalysisOverridesMappingKind(t *testing.T) {
	mappings := []mapping.Mapping{
		{ExcelColumn: "Anzahl Aktien", XBRLTag: "NumberOfShares", Confidence: 0.9, DataType: mapping.KindMonetary},
	}
	analyses := mapping.AnalysisIndex([]mapping.ColumnAnalysis{{
		ColumnName:        "Anzahl Aktien",
		ValueKind:         mapping.KindShares,
		SuggestedUnitKind: "shares",
	}})

	inst, err := Build(mappings, hgbConfig(), nil, analyses)
	require.NoError(t, err)
	require.Len(t, inst.Facts, 1)
	assert.Equal(t, xbrl.UnitShares, inst.Facts[0].UnitRef)
	assert.Equal(t, "0", inst.Facts[0].Decimals)
}

func TestBuildAnalysisSuggestedDecimals(t *testing.T) {
	mappings := []mapping.Mapping{
		{ExcelColumn: "Quote", XBRLTag: "Ratio", Confidence: 0.9},
	}
	analyses := mapping.AnalysisIndex([]mapping.ColumnAnalysis{{
		ColumnName:        "Quote",
		ValueKind:         mapping.KindDecimal,
		SuggestedUnitKind: "pure",
		SuggestedDecimals: "4",
	}})

	inst, err := Build(mappings, hgbConfig(), nil, analyses)
	require.NoError(t, err)
	require.Len(t, inst.Facts, 1)
	assert.Equal(t, xbrl.UnitPure, inst.Facts[0].UnitRef)
	assert.Equal(t, "4", inst.Facts[0].Decimals)
}

func TestBuildErrors(t *testing.T) {
	_, err := Build(nil, hgbConfig(), nil, nil)
	assert.ErrorContains(t, err, "no mappings")

	cfg := hgbConfig()
	cfg.EntityID = ""
	cfg.Currency = ""
	_, err = Build([]mapping.Mapping{{ExcelColumn: "A", XBRLTag: "Assets", Confidence: 1}}, cfg, nil, nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, "entityId")
	assert.ErrorContains(t, err, "currency")

	cfg = hgbConfig()
	cfg.ReportingDate = "31.12.2024"
	_, err = Build([]mapping.Mapping{{ExcelColumn: "A", XBRLTag: "Assets", Confidence: 1}}, cfg, nil, nil)
	assert.ErrorContains(t, err, "invalid reporting date")
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "DE123456_hgb_bilanz_2024-12-31.xbrl", Filename(hgbConfig()))

	cfg := hgbConfig()
	cfg.Regulation = taxonomy.FINREP
	cfg.Perspective = taxonomy.GuV
	assert.Equal(t, "DE123456_finrep_guv_2024-12-31.xbrl", Filename(cfg))
}
