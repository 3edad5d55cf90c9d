// Package xbrl models an XBRL 2.1 instance document (contexts, units,
// facts and the schema reference binding them to a taxonomy) together
// with serialization to wire-format XML, structural validation and a
// decode path for reading a serialized instance back in.
package xbrl

import "github.com/shopspring/decimal"

// Fixed unit ids reused by every fact needing that unit kind.
const (
	UnitCurrency = "u1"
	UnitPure     = "pure"
	UnitShares   = "shares"
)

// Identifier names the reporting entity under a scheme URI.
type Identifier struct {
	Scheme string
	Value  string
}

// Period is either a single instant or a start/end range.
type Period struct {
	Instant   string
	StartDate string
	EndDate   string
}

// ExplicitMember is one dimensional breakdown entry in a scenario.
type ExplicitMember struct {
	Dimension string
	Value     string
}

// Context binds the reporting entity to a time period, optionally
// qualified by dimensional scenario members.
type Context struct {
	ID       string
	Entity   Identifier
	Period   Period
	Scenario []ExplicitMember
}

// Unit is a named measure referenced by numeric facts, e.g. a
// currency-qualified monetary measure ("iso4217:EUR"), "pure" or "shares".
type Unit struct {
	ID      string
	Measure string
}

// Fact is one reported value: a namespaced element bound to a context
// and, for numeric facts, a unit.
type Fact struct {
	Name       string // local element name
	Namespace  string // namespace prefix
	ContextRef string
	UnitRef    string // empty when the fact carries no unit
	Decimals   string // empty when the fact carries no decimals attribute
	Value      FactValue
	// Exact reports whether the fact's tag came from the regulation's
	// translation table rather than a mechanical prefix rewrite.
	Exact bool
}

// Tag returns the fact's full namespaced tag.
func (f Fact) Tag() string {
	return f.Namespace + ":" + f.Name
}

// Metadata echoes the generation request on the instance.
type Metadata struct {
	Entity      string
	Period      string
	Regulation  string
	Perspective string
}

// Instance is the complete in-memory document. It is built in one pass
// and never mutated afterwards.
type Instance struct {
	Contexts  []Context
	Units     []Unit
	Facts     []Fact
	SchemaRef string
	Metadata  Metadata
}

// FactValue holds either a canonical numeric value or a string value.
// Numeric facts never carry an un-parsed placeholder string.
type FactValue struct {
	number  decimal.Decimal
	text    string
	numeric bool
}

// Number wraps a decimal as a numeric fact value.
func Number(d decimal.Decimal) FactValue {
	return FactValue{number: d, numeric: true}
}

// Text wraps a string as a textual fact value.
func Text(s string) FactValue {
	return FactValue{text: s}
}

// IsNumeric reports whether the value is numeric.
func (v FactValue) IsNumeric() bool {
	return v.numeric
}

// Decimal returns the numeric value; ok is false for textual values.
func (v FactValue) Decimal() (d decimal.Decimal, ok bool) {
	return v.number, v.numeric
}

// String renders the value as it appears in the document.
func (v FactValue) String() string {
	if v.numeric {
		return v.number.String()
	}
	return v.text
}
