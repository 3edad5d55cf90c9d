// Package taxonomy holds the static reporting-framework tables: XBRL
// namespaces, schema references, entity identifier schemes and the
// per-regulation tag translation tables used to rewrite abstract tags
// into the namespace a target regulation expects.
package taxonomy

import "strings"

// Regulation identifies the target reporting framework.
type Regulation string

const (
	IFRS   Regulation = "IFRS"
	FINREP Regulation = "FINREP"
	COREP  Regulation = "COREP"
	HGB    Regulation = "HGB"
)

// Perspective identifies the report view selected in the wizard.
type Perspective string

const (
	Bilanz         Perspective = "Bilanz"
	GuV            Perspective = "GuV"
	Segmentbericht Perspective = "Segmentbericht"
)

// Instantaneous reports whether the perspective describes a point-in-time
// statement (balance sheet) rather than a period statement.
func (p Perspective) Instantaneous() bool {
	return p == Bilanz
}

// Recipient identifies the institution the report is addressed to.
type Recipient string

const (
	Bundesbank     Recipient = "Bundesbank"
	BaFin          Recipient = "BaFin"
	InterneMeldung Recipient = "Interne Meldung"
)

// XBRLInstanceNS is the default namespace of every instance document.
const XBRLInstanceNS = "http://www.xbrl.org/2003/instance"

// InstanceSchemaLocation pairs the instance namespace with its schema.
const InstanceSchemaLocation = XBRLInstanceNS + " http://www.xbrl.org/2003/xbrl-instance-2003-12-31.xsd"

// NamespacePrefixes lists every declared prefix in emission order. The
// xbrli namespace is excluded because it is declared as the default.
var NamespacePrefixes = []string{
	"link", "xlink", "xsi", "xbrldi", "iso4217", "ifrs-full", "finrep", "corep", "de-gaap",
}

// Namespaces maps each declared prefix to its URI.
var Namespaces = map[string]string{
	"link":      "http://www.xbrl.org/2003/linkbase",
	"xlink":     "http://www.w3.org/1999/xlink",
	"xsi":       "http://www.w3.org/2001/XMLSchema-instance",
	"xbrldi":    "http://xbrl.org/2006/xbrldi",
	"iso4217":   "http://www.xbrl.org/2003/iso4217",
	"ifrs-full": "http://xbrl.ifrs.org/taxonomy/2023-03-23/ifrs-full",
	"finrep":    "http://www.eba.europa.eu/xbrl/crr/fws/finrep/its-005-2020",
	"corep":     "http://www.eba.europa.eu/xbrl/crr/fws/corep/its-005-2020",
	"de-gaap":   "http://www.xbrl.de/taxonomies/de-gaap",
}

var schemaRefs = map[Regulation]string{
	IFRS:   "http://xbrl.ifrs.org/taxonomy/2023-03-23/full_ifrs/full_ifrs-cor_2023-03-23.xsd",
	FINREP: "./EBA_CRD_IV_XBRL_3.2_Dictionary_3.2.2.0/www.eba.europa.eu/eu/fr/xbrl/crr/fws/fws.xsd",
	COREP:  "http://www.eba.europa.eu/eu/fr/xbrl/crr/fws/corep/its-005-2020/2023-10-31/mod/corep_cor.xsd",
	HGB:    "http://www.xbrl.de/taxonomies/de-gaap/2023-12-31/de-gaap-ci-2023-12-31.xsd",
}

// SchemaRef returns the taxonomy schema reference for a regulation,
// falling back to the IFRS schema for unrecognized regulations.
func SchemaRef(reg Regulation) string {
	if ref, ok := schemaRefs[reg]; ok {
		return ref
	}
	return schemaRefs[IFRS]
}

var entitySchemes = map[Recipient]string{
	Bundesbank:     "http://www.bundesbank.de",
	BaFin:          "http://www.bafin.de",
	InterneMeldung: "http://internal.reporting",
}

// EntityScheme returns the identifier scheme URI for a recipient. Unknown
// recipients report under the internal scheme.
func EntityScheme(r Recipient) string {
	if scheme, ok := entitySchemes[r]; ok {
		return scheme
	}
	return entitySchemes[InterneMeldung]
}

// Prefix returns the canonical namespace prefix for a regulation.
func (r Regulation) Prefix() string {
	switch r {
	case FINREP:
		return "finrep"
	case COREP:
		return "corep"
	case HGB:
		return "de-gaap"
	default:
		return "ifrs-full"
	}
}

// translations maps abstract local element names to the namespaced tag a
// regulation's taxonomy uses for the same concept. Keys are local names;
// callers strip any foreign prefix before the lookup.
var translations = map[Regulation]map[string]string{
	FINREP: {
		"CashAndCashEquivalents":                       "finrep:CashBalancesAtCentralBanks",
		"LoansAndReceivables":                          "finrep:LoansAndAdvances",
		"EquityInstruments":                            "finrep:EquityInstruments",
		"FinancialLiabilitiesMeasuredAtAmortisedCost":  "finrep:FinancialLiabilitiesAtAmortisedCost",
		"DerivativeFinancialInstruments":               "finrep:Derivatives",
		"DepositsByBanks":                              "finrep:Deposits",
		"Assets":                                       "finrep:TotalAssets",
		"Equity":                                       "finrep:Equity",
		"Liabilities":                                  "finrep:TotalLiabilities",
		"Cash":                                         "finrep:CashBalancesAtCentralBanks",
		"Loans":                                        "finrep:LoansAndAdvances",
		"Securities":                                   "finrep:EquityInstruments",
		"Derivatives":                                  "finrep:Derivatives",
		"OtherAssets":                                  "finrep:OtherAssets",
		"Deposits":                                     "finrep:Deposits",
		"Debt":                                         "finrep:DebtSecuritiesIssued",
		"Provisions":                                   "finrep:Provisions",
		"PropertyPlantAndEquipment":                    "finrep:PropertyPlantAndEquipment",
		"IntangibleAssets":                             "finrep:IntangibleAssets",
		"DeferredTaxAssets":                            "finrep:DeferredTaxAssets",
	},
	COREP: {
		"CashAndCashEquivalents": "corep:CashAndCashEquivalents",
		"LoansAndReceivables":    "corep:LoansAndAdvances",
		"EquityInstruments":      "corep:EquityInstruments",
		"Assets":                 "corep:TotalAssets",
		"Equity":                 "corep:OwnFunds",
		"RiskWeightedAssets":     "corep:RiskWeightedExposureAmounts",
		"CapitalRatio":           "corep:CommonEquityTier1Ratio",
		"Tier1Capital":           "corep:Tier1Capital",
		"TotalCapital":           "corep:TotalCapital",
	},
	IFRS: {
		"CashAndCashEquivalents":                      "ifrs-full:CashAndCashEquivalents",
		"LoansAndReceivables":                         "ifrs-full:LoansAndReceivables",
		"EquityInstruments":                           "ifrs-full:EquityInstruments",
		"FinancialLiabilitiesMeasuredAtAmortisedCost": "ifrs-full:FinancialLiabilitiesMeasuredAtAmortisedCost",
		"DerivativeFinancialInstruments":              "ifrs-full:DerivativeFinancialInstruments",
		"DepositsByBanks":                             "ifrs-full:DepositsByBanks",
		"Assets":                                      "ifrs-full:Assets",
		"Equity":                                      "ifrs-full:Equity",
		"Liabilities":                                 "ifrs-full:Liabilities",
	},
	HGB: {
		"CashAndCashEquivalents":    "de-gaap:LiquideMittel",
		"LoansAndReceivables":       "de-gaap:Forderungen",
		"Assets":                    "de-gaap:Aktiva",
		"Equity":                    "de-gaap:Eigenkapital",
		"Liabilities":               "de-gaap:Verbindlichkeiten",
		"Revenue":                   "de-gaap:Umsatzerlöse",
		"PropertyPlantAndEquipment": "de-gaap:Sachanlagen",
	},
}

// SplitTag splits a namespaced tag on the first colon. A tag without a
// colon has no prefix; the whole string is the local name.
func SplitTag(tag string) (prefix, local string) {
	if i := strings.Index(tag, ":"); i >= 0 {
		return tag[:i], tag[i+1:]
	}
	return "", tag
}

// Resolve rewrites an abstract tag into the namespace the target
// regulation expects. It never fails: tags already in the target
// namespace pass through, known concepts are translated, and anything
// else is mechanically re-prefixed with the regulation's canonical
// prefix. The second return value reports whether the result came from
// the translation table (or was already correctly namespaced); callers
// should treat exact=false tags as unverified against the taxonomy.
func Resolve(abstractTag string, reg Regulation) (tag string, exact bool) {
	prefix, local := SplitTag(abstractTag)
	if prefix == reg.Prefix() {
		return abstractTag, true
	}
	table, ok := translations[reg]
	if !ok {
		table = translations[IFRS]
		reg = IFRS
		if prefix == reg.Prefix() {
			return abstractTag, true
		}
	}
	if translated, ok := table[local]; ok {
		return translated, true
	}
	return reg.Prefix() + ":" + local, false
}
