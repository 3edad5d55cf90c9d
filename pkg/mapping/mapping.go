// Package mapping defines the column-to-tag mapping input consumed from
// the external LLM suggester, plus a lenient decoder for its JSON
// output. The suggestion logic itself lives outside this codebase; this
// package only normalizes what comes back.
package mapping

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
)

// ValueKind classifies what a mapped column holds.
type ValueKind string

const (
	KindMonetary ValueKind = "monetary"
	KindDecimal  ValueKind = "decimal"
	KindShares   ValueKind = "shares"
	KindString   ValueKind = "string"
	KindDate     ValueKind = "date"
	KindBoolean  ValueKind = "boolean"
)

// Numeric reports whether facts of this kind must carry a numeric value.
func (k ValueKind) Numeric() bool {
	switch k {
	case KindMonetary, KindDecimal, KindShares:
		return true
	}
	return false
}

// Mapping is one suggested column-to-tag assignment. Confidence is a
// [0,1] trust score; it does not guarantee tag correctness.
type Mapping struct {
	ExcelColumn string    `json:"excelColumn"`
	XBRLTag     string    `json:"xbrlTag"`
	Confidence  float64   `json:"confidence"`
	Description string    `json:"description,omitempty"`
	DataType    ValueKind `json:"dataType,omitempty"`
	Namespace   string    `json:"namespace,omitempty"`
}

// ColumnAnalysis is the optional per-column annotation produced by the
// suggester's data-type analysis pass. When present for a column it
// overrides the mapping's own declared kind.
type ColumnAnalysis struct {
	ColumnName          string    `json:"columnName"`
	ValueKind           ValueKind `json:"valueKind"`
	HasNumericIndicator bool      `json:"hasNumericIndicator"`
	Confidence          float64   `json:"confidence"`
	SuggestedUnitKind   string    `json:"suggestedUnitKind,omitempty"` // "currency", "pure" or "shares"
	SuggestedDecimals   string    `json:"suggestedDecimals,omitempty"`
}

// SuggesterResponse is the full JSON object the suggester returns.
type SuggesterResponse struct {
	Mappings        []Mapping `json:"mappings"`
	Reasoning       string    `json:"reasoning,omitempty"`
	Warnings        []string  `json:"warnings,omitempty"`
	ConfidenceScore float64   `json:"confidence_score"`
}

// ParseSuggesterResponse decodes a suggester reply. LLM output is not
// always valid JSON, so a failed strict decode is retried after running
// the text through json-repair (strips markdown fences, fixes quoting,
// closes dangling brackets). Each mapping is normalized afterwards.
func ParseSuggesterResponse(raw string) (*SuggesterResponse, error) {
	var resp SuggesterResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		repaired, repairErr := jsonrepair.RepairJSON(raw)
		if repairErr != nil {
			return nil, fmt.Errorf("failed to parse suggester response: %w", err)
		}
		if err := json.Unmarshal([]byte(repaired), &resp); err != nil {
			return nil, fmt.Errorf("failed to parse repaired suggester response: %w", err)
		}
	}
	if len(resp.Mappings) == 0 {
		return nil, fmt.Errorf("suggester response contains no mappings")
	}
	for i := range resp.Mappings {
		resp.Mappings[i].normalize()
	}
	return &resp, nil
}

// normalize clamps confidence into [0,1] and defaults missing fields the
// way the original wizard did.
func (m *Mapping) normalize() {
	if m.Confidence < 0 {
		m.Confidence = 0
	}
	if m.Confidence > 1 {
		m.Confidence = 1
	}
	if m.DataType == "" {
		m.DataType = KindString
	}
	if m.Namespace == "" {
		if prefix, _, found := strings.Cut(m.XBRLTag, ":"); found {
			m.Namespace = prefix
		} else {
			m.Namespace = "unknown"
		}
	}
}

// AnalysisIndex keys analyses by column name for builder lookups.
func AnalysisIndex(analyses []ColumnAnalysis) map[string]ColumnAnalysis {
	if len(analyses) == 0 {
		return nil
	}
	idx := make(map[string]ColumnAnalysis, len(analyses))
	for _, a := range analyses {
		idx[a.ColumnName] = a
	}
	return idx
}
