// Package report assembles XBRL instance documents from suggested
// column-to-tag mappings, the reporting context chosen in the wizard,
// and (optionally) raw spreadsheet rows.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/Falkyouall/xbrl-tool/pkg/mapping"
	"github.com/Falkyouall/xbrl-tool/pkg/numfmt"
	"github.com/Falkyouall/xbrl-tool/pkg/synth"
	"github.com/Falkyouall/xbrl-tool/pkg/taxonomy"
	"github.com/Falkyouall/xbrl-tool/pkg/xbrl"
)

const dateLayout = "2006-01-02"

// DefaultThreshold is the minimum suggester confidence a mapping needs
// to produce a fact.
const DefaultThreshold = 0.2

// Row is one spreadsheet row keyed by column name.
type Row map[string]any

// Config is the reporting context for one generated document.
type Config struct {
	EntityID      string               `json:"entityId"`
	ReportingDate string               `json:"reportingDate"` // ISO date
	Currency      string               `json:"currency"`      // ISO 4217
	Regulation    taxonomy.Regulation  `json:"regulation"`
	Perspective   taxonomy.Perspective `json:"perspective"`
	Recipient     taxonomy.Recipient   `json:"recipient"`
}

// Validate rejects configs with absent or unparseable required fields.
// Missing inputs are surfaced to the caller, never silently fabricated.
func (c Config) Validate() error {
	var missing []string
	if c.EntityID == "" {
		missing = append(missing, "entityId")
	}
	if c.ReportingDate == "" {
		missing = append(missing, "reportingDate")
	}
	if c.Currency == "" {
		missing = append(missing, "currency")
	}
	if c.Regulation == "" {
		missing = append(missing, "regulation")
	}
	if c.Perspective == "" {
		missing = append(missing, "perspective")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config fields: %s", strings.Join(missing, ", "))
	}
	if _, err := time.Parse(dateLayout, c.ReportingDate); err != nil {
		return fmt.Errorf("invalid reporting date %q: %w", c.ReportingDate, err)
	}
	return nil
}

// Options tune the build; the zero value selects the defaults.
type Options struct {
	// RetentionThreshold drops mappings whose confidence falls below
	// it. Zero selects DefaultThreshold.
	RetentionThreshold float64
}

// Build constructs a complete instance with the default options.
func Build(mappings []mapping.Mapping, cfg Config, rows []Row, analyses map[string]mapping.ColumnAnalysis) (*xbrl.Instance, error) {
	return BuildWithOptions(mappings, cfg, rows, analyses, Options{})
}

// BuildWithOptions constructs the in-memory instance in a single pass:
// one reporting context, the fixed three units, and one fact per
// retained mapping. Malformed individual mappings never fail the build;
// they fall back to synthesized values or mechanically rewritten tags.
// Only an empty mapping list or an invalid config is an error.
func BuildWithOptions(mappings []mapping.Mapping, cfg Config, rows []Row, analyses map[string]mapping.ColumnAnalysis, opts Options) (*xbrl.Instance, error) {
	if len(mappings) == 0 {
		return nil, fmt.Errorf("no mappings provided")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	threshold := opts.RetentionThreshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}

	inst := &xbrl.Instance{
		Contexts: []xbrl.Context{{
			ID: "c1",
			Entity: xbrl.Identifier{
				Scheme: taxonomy.EntityScheme(cfg.Recipient),
				Value:  cfg.EntityID,
			},
			Period: period(cfg),
		}},
		Units: []xbrl.Unit{
			{ID: xbrl.UnitCurrency, Measure: "iso4217:" + cfg.Currency},
			{ID: xbrl.UnitPure, Measure: "pure"},
			{ID: xbrl.UnitShares, Measure: "shares"},
		},
		SchemaRef: taxonomy.SchemaRef(cfg.Regulation),
		Metadata: xbrl.Metadata{
			Entity:      cfg.EntityID,
			Period:      cfg.ReportingDate,
			Regulation:  string(cfg.Regulation),
			Perspective: string(cfg.Perspective),
		},
	}

	seen := make(map[string]bool, len(mappings))
	for _, m := range mappings {
		if m.Confidence < threshold {
			continue
		}
		tag, exact := taxonomy.Resolve(m.XBRLTag, cfg.Regulation)
		if seen[tag] {
			// First-seen mapping wins; later duplicates are dropped.
			continue
		}
		seen[tag] = true

		prefix, local := taxonomy.SplitTag(tag)
		kind, analysis := effectiveKind(m, analyses)

		fact := xbrl.Fact{
			Name:       local,
			Namespace:  prefix,
			ContextRef: "c1",
			Value:      factValue(m.ExcelColumn, kind, rows),
			Exact:      exact,
		}
		fact.UnitRef, fact.Decimals = unitAndDecimals(kind, analysis)
		inst.Facts = append(inst.Facts, fact)
	}

	return inst, nil
}

// period computes the context period: a single instant for
// balance-sheet-like perspectives, otherwise a range spanning the
// reporting year up to the reporting date.
func period(cfg Config) xbrl.Period {
	if cfg.Perspective.Instantaneous() {
		return xbrl.Period{Instant: cfg.ReportingDate}
	}
	return xbrl.Period{
		StartDate: cfg.ReportingDate[:4] + "-01-01",
		EndDate:   cfg.ReportingDate,
	}
}

// effectiveKind prefers the per-column analysis result, then the
// mapping's own declared kind, and defaults to monetary because
// balance-sheet reporting dominates.
func effectiveKind(m mapping.Mapping, analyses map[string]mapping.ColumnAnalysis) (mapping.ValueKind, *mapping.ColumnAnalysis) {
	if a, ok := analyses[m.ExcelColumn]; ok {
		if a.ValueKind != "" {
			return a.ValueKind, &a
		}
		kind := m.DataType
		if kind == "" {
			kind = mapping.KindMonetary
		}
		return kind, &a
	}
	if m.DataType != "" {
		return m.DataType, nil
	}
	return mapping.KindMonetary, nil
}

// factValue picks the fact's value: a normalized raw cell when row data
// is supplied, the synthesizer otherwise. Normalization failures for
// numeric kinds recover via the synthesizer; a fact never keeps an
// un-parsed placeholder string as a numeric value.
func factValue(column string, kind mapping.ValueKind, rows []Row) xbrl.FactValue {
	if len(rows) > 0 {
		// First row only, as a representative sample.
		if cell, ok := rows[0][column]; ok && cell != nil {
			if kind.Numeric() {
				if d, ok := numfmt.Normalize(cell); ok {
					return xbrl.Number(d)
				}
				return synth.Synthesize(column, kind)
			}
			if text := strings.TrimSpace(fmt.Sprint(cell)); text != "" {
				return xbrl.Text(text)
			}
		}
	}
	return synth.Synthesize(column, kind)
}

// unitAndDecimals applies the unit and decimals rules. A suggested unit
// or decimals from the column analysis takes precedence; non-numeric
// kinds force both to none regardless of suggestions.
func unitAndDecimals(kind mapping.ValueKind, analysis *mapping.ColumnAnalysis) (unitRef, decimals string) {
	if !kind.Numeric() {
		return "", ""
	}
	switch kind {
	case mapping.KindMonetary:
		unitRef, decimals = xbrl.UnitCurrency, "0"
	case mapping.KindShares:
		unitRef, decimals = xbrl.UnitShares, "0"
	case mapping.KindDecimal:
		unitRef, decimals = xbrl.UnitPure, "2"
	}
	if analysis != nil {
		switch analysis.SuggestedUnitKind {
		case "currency":
			unitRef = xbrl.UnitCurrency
		case "pure":
			unitRef = xbrl.UnitPure
		case "shares":
			unitRef = xbrl.UnitShares
		}
		if analysis.SuggestedDecimals != "" {
			decimals = analysis.SuggestedDecimals
		}
	}
	return unitRef, decimals
}

// Filename derives the deterministic download name for a generated
// document: entity, regulation, perspective and reporting date.
func Filename(cfg Config) string {
	perspective := strings.ToLower(string(cfg.Perspective))
	var b strings.Builder
	for _, r := range perspective {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return fmt.Sprintf("%s_%s_%s_%s.xbrl",
		cfg.EntityID, strings.ToLower(string(cfg.Regulation)), b.String(), cfg.ReportingDate)
}
