package xbrl

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/Falkyouall/xbrl-tool/pkg/taxonomy"
)

// prefixForNamespace maps a namespace URI back to its declared prefix.
func prefixForNamespace(uri string) string {
	for prefix, ns := range taxonomy.Namespaces {
		if ns == uri {
			return prefix
		}
	}
	return ""
}

// Wire-format shadows for decoding a serialized instance. Element
// matching is by local name, so the decoder accepts both prefixed and
// default-namespace forms.
type xmlInstance struct {
	XMLName   xml.Name     `xml:"xbrl"`
	SchemaRef xmlSchemaRef `xml:"schemaRef"`
	Contexts  []xmlContext `xml:"context"`
	Units     []xmlUnit    `xml:"unit"`
	Facts     []xmlFact    `xml:",any"`
}

type xmlSchemaRef struct {
	Href string `xml:"href,attr"`
}

type xmlContext struct {
	ID     string `xml:"id,attr"`
	Entity struct {
		Identifier struct {
			Scheme string `xml:"scheme,attr"`
			Value  string `xml:",chardata"`
		} `xml:"identifier"`
	} `xml:"entity"`
	Period struct {
		Instant   string `xml:"instant"`
		StartDate string `xml:"startDate"`
		EndDate   string `xml:"endDate"`
	} `xml:"period"`
	Scenario struct {
		Members []struct {
			Dimension string `xml:"dimension,attr"`
			Value     string `xml:",chardata"`
		} `xml:"explicitMember"`
	} `xml:"scenario"`
}

type xmlUnit struct {
	ID      string `xml:"id,attr"`
	Measure string `xml:"measure"`
}

type xmlFact struct {
	XMLName    xml.Name
	ContextRef string `xml:"contextRef,attr"`
	UnitRef    string `xml:"unitRef,attr"`
	Decimals   string `xml:"decimals,attr"`
	Value      string `xml:",chardata"`
}

// Parse reads a serialized instance document back into the model. Fact
// values that parse as decimals come back numeric; everything else stays
// textual. Namespace prefixes are reconstructed from the fact elements'
// namespace URIs where known, so a Serialize/Parse round trip preserves
// counts, references and values.
func Parse(r io.Reader) (*Instance, error) {
	var doc xmlInstance
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse instance document: %w", err)
	}

	inst := &Instance{SchemaRef: doc.SchemaRef.Href}

	for _, c := range doc.Contexts {
		ctx := Context{
			ID: c.ID,
			Entity: Identifier{
				Scheme: c.Entity.Identifier.Scheme,
				Value:  c.Entity.Identifier.Value,
			},
			Period: Period{
				Instant:   c.Period.Instant,
				StartDate: c.Period.StartDate,
				EndDate:   c.Period.EndDate,
			},
		}
		for _, m := range c.Scenario.Members {
			ctx.Scenario = append(ctx.Scenario, ExplicitMember{Dimension: m.Dimension, Value: m.Value})
		}
		inst.Contexts = append(inst.Contexts, ctx)
	}

	for _, u := range doc.Units {
		inst.Units = append(inst.Units, Unit{ID: u.ID, Measure: u.Measure})
	}

	for _, f := range doc.Facts {
		// The ",any" rule also catches schemaRef/context/unit if they
		// appear with unexpected namespaces; facts are the elements
		// carrying a contextRef.
		if f.ContextRef == "" {
			continue
		}
		fact := Fact{
			Name:       f.XMLName.Local,
			Namespace:  prefixForNamespace(f.XMLName.Space),
			ContextRef: f.ContextRef,
			UnitRef:    f.UnitRef,
			Decimals:   f.Decimals,
		}
		if d, err := decimal.NewFromString(f.Value); err == nil {
			fact.Value = Number(d)
		} else {
			fact.Value = Text(f.Value)
		}
		inst.Facts = append(inst.Facts, fact)
	}

	return inst, nil
}
