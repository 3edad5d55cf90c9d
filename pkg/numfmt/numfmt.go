// Package numfmt parses the heterogeneous number formats that show up in
// uploaded financial spreadsheets: German grouping ("1.500.000,50"),
// US grouping ("1,500,000.50"), plain machine floats, and cells with
// currency symbols or stray whitespace mixed in.
package numfmt

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Normalize converts an arbitrary cell value into a canonical decimal.
// Numeric inputs pass through unchanged; strings are cleaned of currency
// symbols and parsed according to whichever separator convention they
// appear to use. The second return value is false when the input holds
// no parseable number. Normalize is pure and never panics.
func Normalize(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case nil:
		return decimal.Zero, false
	case decimal.Decimal:
		return n, true
	case float64:
		return decimal.NewFromFloat(n), true
	case float32:
		return decimal.NewFromFloat32(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int32:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	}

	cleaned := clean(fmt.Sprint(v))
	if !strings.ContainsAny(cleaned, "0123456789") {
		return decimal.Zero, false
	}

	commas := strings.Count(cleaned, ",")
	periods := strings.Count(cleaned, ".")

	switch {
	case commas == 0 && periods == 0:
		// Plain integer.
	case commas > 1 || periods > 1:
		cleaned = keepLastSeparator(cleaned)
	case commas == 1 && periods == 1:
		// The earlier separator groups thousands, the later one is the
		// decimal point.
		if strings.Index(cleaned, ",") < strings.Index(cleaned, ".") {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		} else {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		}
	case commas == 1:
		// A lone comma is a decimal point only when at most two digits
		// follow it ("1500,5"); otherwise it groups thousands ("1,500").
		if len(cleaned)-strings.Index(cleaned, ",")-1 <= 2 {
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	default:
		// A lone period keeps its conventional decimal-point meaning.
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// clean strips currency symbols and every character that is not a digit,
// comma, period or minus sign.
func clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ',' || r == '.' || r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// keepLastSeparator handles multi-grouped forms like "1.500.000,50" and
// "1,500,000.50": the last-occurring separator becomes the decimal point
// and every earlier comma or period is removed.
func keepLastSeparator(s string) string {
	last := strings.LastIndexAny(s, ",.")
	head := strings.ReplaceAll(s[:last], ",", "")
	head = strings.ReplaceAll(head, ".", "")
	return head + "." + s[last+1:]
}
