package xbrl

import (
	"fmt"
	"io"
	"strings"

	"github.com/Falkyouall/xbrl-tool/pkg/taxonomy"
)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Escape replaces the five reserved XML characters. Every attribute
// value and text node in a serialized instance passes through here.
func Escape(s string) string {
	return xmlEscaper.Replace(s)
}

// Serialize renders the instance as a single well-formed XBRL 2.1
// document. Output is deterministic: namespaces are declared in a fixed
// order and contexts, units and facts appear in creation order.
func Serialize(inst *Instance) string {
	var b strings.Builder
	Write(&b, inst)
	return b.String()
}

// Write renders the instance to w. strings.Builder never returns write
// errors, so Serialize ignores them; other writers get them propagated.
func Write(w io.Writer, inst *Instance) error {
	ew := &errWriter{w: w}

	ew.printf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	ew.printf("<xbrl xmlns=\"%s\"", taxonomy.XBRLInstanceNS)
	for _, prefix := range taxonomy.NamespacePrefixes {
		ew.printf("\n    xmlns:%s=\"%s\"", prefix, taxonomy.Namespaces[prefix])
	}
	ew.printf("\n    xsi:schemaLocation=\"%s\">\n", taxonomy.InstanceSchemaLocation)

	ew.printf("\n  <link:schemaRef\n    xlink:type=\"simple\"\n    xlink:href=\"%s\"\n    xlink:arcrole=\"http://www.w3.org/1999/xlink/properties/linkbase\"/>\n",
		Escape(inst.SchemaRef))

	ew.printf("\n  <!--\n    Entity: %s\n    Period: %s\n    Regulation: %s\n    Perspective: %s\n  -->\n",
		Escape(inst.Metadata.Entity), Escape(inst.Metadata.Period),
		Escape(inst.Metadata.Regulation), Escape(inst.Metadata.Perspective))

	for _, ctx := range inst.Contexts {
		writeContext(ew, ctx)
	}
	for _, unit := range inst.Units {
		ew.printf("\n  <unit id=\"%s\">\n    <measure>%s</measure>\n  </unit>\n",
			Escape(unit.ID), Escape(unit.Measure))
	}
	ew.printf("\n")
	for _, fact := range inst.Facts {
		writeFact(ew, fact)
	}
	ew.printf("\n</xbrl>\n")

	return ew.err
}

func writeContext(ew *errWriter, ctx Context) {
	ew.printf("\n  <context id=\"%s\">\n", Escape(ctx.ID))
	ew.printf("    <entity>\n      <identifier scheme=\"%s\">%s</identifier>\n    </entity>\n",
		Escape(ctx.Entity.Scheme), Escape(ctx.Entity.Value))
	ew.printf("    <period>\n")
	if ctx.Period.Instant != "" {
		ew.printf("      <instant>%s</instant>\n", Escape(ctx.Period.Instant))
	} else {
		ew.printf("      <startDate>%s</startDate>\n", Escape(ctx.Period.StartDate))
		ew.printf("      <endDate>%s</endDate>\n", Escape(ctx.Period.EndDate))
	}
	ew.printf("    </period>\n")
	if len(ctx.Scenario) > 0 {
		ew.printf("    <scenario>\n")
		for _, m := range ctx.Scenario {
			ew.printf("      <xbrldi:explicitMember dimension=\"%s\">%s</xbrldi:explicitMember>\n",
				Escape(m.Dimension), Escape(m.Value))
		}
		ew.printf("    </scenario>\n")
	}
	ew.printf("  </context>\n")
}

func writeFact(ew *errWriter, fact Fact) {
	tag := Escape(fact.Namespace) + ":" + Escape(fact.Name)
	ew.printf("  <%s contextRef=\"%s\"", tag, Escape(fact.ContextRef))
	if fact.UnitRef != "" {
		ew.printf(" unitRef=\"%s\"", Escape(fact.UnitRef))
	}
	if fact.Decimals != "" {
		ew.printf(" decimals=\"%s\"", Escape(fact.Decimals))
	}
	ew.printf(">%s</%s>\n", Escape(fact.Value.String()), tag)
}

type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
