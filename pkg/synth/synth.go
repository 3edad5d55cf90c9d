// Package synth produces illustrative fallback values for mapped
// columns when no real spreadsheet data is available, e.g. in
// schema-preview mode. It is a best-effort generator, not a source of
// truth; values are fixed so that preview documents are reproducible and
// internally plausible.
package synth

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Falkyouall/xbrl-tool/pkg/mapping"
	"github.com/Falkyouall/xbrl-tool/pkg/xbrl"
)

// now is swapped out in tests.
var now = time.Now

// Fallback magnitudes by value kind.
var (
	defaultMonetary = decimal.NewFromInt(250000)
	defaultShares   = decimal.NewFromInt(10000)
	defaultPercent  = decimal.NewFromFloat(12.5)
)

// lineItem pairs a German balance-sheet term with its canonical
// illustrative magnitude.
type lineItem struct {
	keyword string
	amount  int64
}

// balanceSheetLexicon maps well-known German balance-sheet line items to
// magnitudes that keep the sample balance sheet consistent: both totals
// are 1.500.000 and equity + provisions + liabilities sum back to the
// total. Checked in order, most specific terms first.
var balanceSheetLexicon = []lineItem{
	{"summe aktiva", 1500000},
	{"summe passiva", 1500000},
	{"bilanzsumme", 1500000},
	{"gesamtvermögen", 1500000},
	{"anlagevermögen", 600000},
	{"umlaufvermögen", 850000},
	{"kassenbestand", 50000},
	{"liquide mittel", 50000},
	{"roh-, hilfs- und betriebsstoffe", 100000},
	{"vorräte", 100000},
	{"forderungen", 200000},
	{"gewinnrücklagen", 150000},
	{"eigenkapital", 600000},
	{"rückstellungen", 150000},
	{"kreditinstituten", 400000},
	{"lieferungen", 350000},
	{"verbindlichkeiten", 750000},
}

// monetaryKeywords mark column names that imply a currency amount even
// when the suggester declared no value kind.
var monetaryKeywords = []string{"betrag", "amount", "value", "summe", "wert", "saldo", "kapital"}

// Synthesize returns a plausible value for a column given its declared
// value kind. Known German balance-sheet line items resolve to their
// canonical magnitudes regardless of kind; otherwise the kind decides.
func Synthesize(columnName string, kind mapping.ValueKind) xbrl.FactValue {
	lowered := strings.ToLower(columnName)

	if kind == "" || kind.Numeric() {
		if amount, ok := lookupLineItem(lowered); ok {
			return xbrl.Number(amount)
		}
	}

	switch kind {
	case mapping.KindMonetary:
		return xbrl.Number(defaultMonetary)
	case mapping.KindShares:
		return xbrl.Number(defaultShares)
	case mapping.KindDecimal:
		return xbrl.Number(defaultPercent)
	case mapping.KindBoolean:
		return xbrl.Text("true")
	case mapping.KindDate:
		return xbrl.Text(now().Format("2006-01-02"))
	}

	// No kind (or plain string): infer a currency amount from the
	// column name before giving up on a numeric value.
	if amount, ok := lookupLineItem(lowered); ok {
		return xbrl.Number(amount)
	}
	for _, kw := range monetaryKeywords {
		if strings.Contains(lowered, kw) {
			return xbrl.Number(defaultMonetary)
		}
	}
	return xbrl.Text("Sample Value")
}

func lookupLineItem(lowered string) (decimal.Decimal, bool) {
	for _, item := range balanceSheetLexicon {
		if strings.Contains(lowered, item.keyword) {
			return decimal.NewFromInt(item.amount), true
		}
	}
	return decimal.Zero, false
}
