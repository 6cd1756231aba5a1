// Package ontology defines the financial ontology schema: class and property
// registries, the class hierarchy, and the mappings from entity and relation
// type names to ontology URIs. The schema is a pure lookup structure with no
// external dependencies; construct it once and pass it into the components
// that need it.
package ontology

import (
	"fmt"
	"sort"
	"strings"
)

// Namespace base URIs. Class and property URIs are formed as <base><LocalName>.
const (
	NSCompany   = "http://www.semanticdataservices.com/ontology/company#"
	NSFinancial = "http://www.semanticdataservices.com/ontology/financial#"
	NSDocument  = "http://www.semanticdataservices.com/ontology/document#"
	NSRisk      = "http://www.semanticdataservices.com/ontology/risk#"
	NSEconomic  = "http://www.semanticdataservices.com/ontology/economic#"
	NSXSD       = "http://www.w3.org/2001/XMLSchema#"
)

// Class describes an ontology class. Classes form a forest: every class has
// at most one parent and the parent map must be acyclic.
type Class struct {
	URI         string   `json:"uri"`
	Label       string   `json:"label"`
	ParentURI   string   `json:"parent,omitempty"`
	Description string   `json:"description,omitempty"`
	Aliases     []string `json:"aliases,omitempty"`
}

// LocalName returns the fragment after the last '#' (or '/') of the URI.
func (c Class) LocalName() string {
	if i := strings.LastIndex(c.URI, "#"); i >= 0 {
		return c.URI[i+1:]
	}
	if i := strings.LastIndex(c.URI, "/"); i >= 0 {
		return c.URI[i+1:]
	}
	return c.URI
}

// Property describes an object property with domain and range constraints.
type Property struct {
	URI       string `json:"uri"`
	Label     string `json:"label"`
	DomainURI string `json:"domain"`
	RangeURI  string `json:"range"`
}

// Schema is the registry of ontology classes, properties, and the entity and
// relation type mappings used throughout extraction and graph assembly.
type Schema struct {
	classes       map[string]*Class    // keyed by URI and by local name
	properties    map[string]*Property // keyed by relation type (e.g. COMPETES_WITH)
	entityTypes   map[string]string    // entity type -> class URI
	relationTypes map[string]string    // relation type -> property URI
	aliases       map[string]string    // lowercased alias -> class URI
}

// SchemaOption configures a Schema before validation.
type SchemaOption func(*Schema)

// WithClass registers an additional class.
func WithClass(c Class) SchemaOption {
	return func(s *Schema) {
		s.addClass(c)
	}
}

// WithProperty registers an additional property under the given relation type.
func WithProperty(relationType string, p Property) SchemaOption {
	return func(s *Schema) {
		cp := p
		s.properties[relationType] = &cp
		s.relationTypes[relationType] = p.URI
	}
}

// WithEntityMapping maps an entity type name to a class URI.
func WithEntityMapping(entityType, classURI string) SchemaOption {
	return func(s *Schema) {
		s.entityTypes[entityType] = classURI
	}
}

// NewSchema builds the default financial ontology schema. It returns an error
// if the resulting class hierarchy contains a cycle; a cyclic parent map is a
// configuration defect and must never survive initialization.
func NewSchema(opts ...SchemaOption) (*Schema, error) {
	s := &Schema{
		classes:       make(map[string]*Class),
		properties:    make(map[string]*Property),
		entityTypes:   make(map[string]string),
		relationTypes: make(map[string]string),
		aliases:       make(map[string]string),
	}

	s.registerClasses()
	s.registerProperties()
	s.registerMappings()

	for _, opt := range opts {
		opt(s)
	}

	s.buildAliases()

	if err := s.checkAcyclic(); err != nil {
		return nil, err
	}
	return s, nil
}

// Class returns the class registered under the given URI or local name.
func (s *Schema) Class(identifier string) *Class {
	return s.classes[identifier]
}

// Property returns the property registered for the given relation type.
func (s *Schema) Property(relationType string) *Property {
	return s.properties[relationType]
}

// MapEntityType maps an entity type name to its ontology class URI.
// It returns "" for unknown types; an unknown type is not an error.
func (s *Schema) MapEntityType(entityType string) string {
	return s.entityTypes[entityType]
}

// MapRelationType maps a relation type name to its ontology property URI.
func (s *Schema) MapRelationType(relationType string) string {
	return s.relationTypes[relationType]
}

// ResolveAlias resolves free text (a label or registered alias) to a class URI.
func (s *Schema) ResolveAlias(text string) string {
	return s.aliases[strings.ToLower(strings.TrimSpace(text))]
}

// ClassHierarchy returns the URI followed by its ancestor chain, root last.
func (s *Schema) ClassHierarchy(classURI string) []string {
	hierarchy := []string{classURI}
	current := s.classes[classURI]
	for current != nil && current.ParentURI != "" {
		hierarchy = append(hierarchy, current.ParentURI)
		current = s.classes[current.ParentURI]
	}
	return hierarchy
}

// IsSubclassOf reports whether classURI equals ancestorURI or has it in its
// ancestor chain.
func (s *Schema) IsSubclassOf(classURI, ancestorURI string) bool {
	for _, uri := range s.ClassHierarchy(classURI) {
		if uri == ancestorURI {
			return true
		}
	}
	return false
}

// ValidateRelation reports whether the (subjectType, relationType, objectType)
// combination satisfies the domain/range constraints of the relation's
// property. Relation types with no registered property are permitted
// unconditionally, as are entity types with no registered class mapping:
// unknown vocabulary is an absent constraint, not an error. A generalized
// class declared as domain or range (e.g. the Risk root) is satisfied by any
// of its subclasses.
func (s *Schema) ValidateRelation(subjectType, relationType, objectType string) bool {
	prop := s.properties[relationType]
	if prop == nil {
		return true
	}

	subjectURI := s.MapEntityType(subjectType)
	objectURI := s.MapEntityType(objectType)
	if subjectURI == "" || objectURI == "" {
		return true
	}

	return s.IsSubclassOf(subjectURI, prop.DomainURI) && s.IsSubclassOf(objectURI, prop.RangeURI)
}

// EntityTypes returns all registered entity type names, sorted.
func (s *Schema) EntityTypes() []string {
	types := make([]string, 0, len(s.entityTypes))
	for t := range s.entityTypes {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// RelationTypes returns all registered relation type names, sorted.
func (s *Schema) RelationTypes() []string {
	types := make([]string, 0, len(s.relationTypes))
	for t := range s.relationTypes {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

func (s *Schema) addClass(c Class) {
	cp := c
	s.classes[c.URI] = &cp
	s.classes[c.LocalName()] = &cp
}

// checkAcyclic walks every class's parent chain and fails on a revisit.
func (s *Schema) checkAcyclic() error {
	for key, c := range s.classes {
		if key != c.URI {
			continue // skip local-name dupes
		}
		seen := map[string]bool{c.URI: true}
		current := c
		for current != nil && current.ParentURI != "" {
			if seen[current.ParentURI] {
				return fmt.Errorf("ontology: cyclic class hierarchy at %s", current.ParentURI)
			}
			seen[current.ParentURI] = true
			current = s.classes[current.ParentURI]
		}
	}
	return nil
}

func (s *Schema) buildAliases() {
	for key, c := range s.classes {
		if key != c.URI {
			continue
		}
		s.aliases[strings.ToLower(c.Label)] = c.URI
		for _, alias := range c.Aliases {
			s.aliases[strings.ToLower(alias)] = c.URI
		}
	}
}

func (s *Schema) registerClasses() {
	// Company namespace.
	s.addClass(Class{
		URI:         NSCompany + "Organization",
		Label:       "Organization",
		Description: "A legal entity or group organized for a purpose",
	})
	s.addClass(Class{
		URI:         NSCompany + "Company",
		Label:       "Company",
		ParentURI:   NSCompany + "Organization",
		Description: "A business entity engaged in commercial activities",
		Aliases:     []string{"corporation", "firm", "enterprise", "business"},
	})
	s.addClass(Class{
		URI:         NSCompany + "PublicCompany",
		Label:       "Public Company",
		ParentURI:   NSCompany + "Company",
		Description: "A company whose shares trade on public exchanges",
		Aliases:     []string{"listed company", "publicly traded"},
	})
	s.addClass(Class{
		URI:         NSCompany + "Person",
		Label:       "Person",
		Description: "An individual person",
		Aliases:     []string{"executive", "officer", "director"},
	})
	s.addClass(Class{
		URI:         NSCompany + "Product",
		Label:       "Product",
		Description: "A product or service offered by a company",
		Aliases:     []string{"service", "offering"},
	})
	s.addClass(Class{URI: NSCompany + "IndustrySector", Label: "Industry Sector"})
	for _, sector := range []string{"Technology", "Healthcare", "Financial", "Consumer", "Energy", "Industrials"} {
		s.addClass(Class{
			URI:       NSCompany + sector + "Sector",
			Label:     sector + " Sector",
			ParentURI: NSCompany + "IndustrySector",
		})
	}

	// Financial namespace.
	s.addClass(Class{
		URI:         NSFinancial + "FinancialMetric",
		Label:       "Financial Metric",
		Description: "A quantitative measure of financial performance",
	})
	for _, m := range []struct {
		name    string
		desc    string
		aliases []string
	}{
		{"Revenue", "Total revenue or sales", []string{"sales", "net sales", "total revenue"}},
		{"NetIncome", "Net income or profit", []string{"profit", "earnings", "net profit", "net earnings"}},
		{"GrossProfit", "Gross profit", []string{"gross margin"}},
		{"OperatingIncome", "Operating income", []string{"EBIT", "operating profit"}},
		{"EarningsPerShare", "Earnings per share", []string{"EPS", "diluted EPS"}},
		{"TotalAssets", "Total assets", []string{"assets"}},
		{"TotalLiabilities", "Total liabilities", []string{"liabilities", "debt"}},
		{"ShareholdersEquity", "Shareholders equity", []string{"book value", "stockholders equity"}},
		{"CashFlow", "Cash flow", nil},
		{"OperatingCashFlow", "Operating cash flow", []string{"cash from operations"}},
		{"FreeCashFlow", "Free cash flow", []string{"FCF"}},
	} {
		s.addClass(Class{
			URI:         NSFinancial + m.name,
			Label:       m.name,
			ParentURI:   NSFinancial + "FinancialMetric",
			Description: m.desc,
			Aliases:     m.aliases,
		})
	}

	// Document namespace.
	s.addClass(Class{
		URI:         NSDocument + "Document",
		Label:       "Document",
		Description: "A written or electronic record",
	})
	s.addClass(Class{URI: NSDocument + "SECFiling", Label: "SEC Filing", ParentURI: NSDocument + "Document"})
	for _, d := range []struct{ name, label string }{
		{"Form10K", "Form 10-K"},
		{"Form10Q", "Form 10-Q"},
		{"Form8K", "Form 8-K"},
		{"ProxyStatement", "Proxy Statement"},
	} {
		s.addClass(Class{URI: NSDocument + d.name, Label: d.label, ParentURI: NSDocument + "SECFiling"})
	}
	for _, d := range []struct{ name, label string }{
		{"EquityResearchReport", "Equity Research Report"},
		{"EarningsCallTranscript", "Earnings Call Transcript"},
		{"PressRelease", "Press Release"},
	} {
		s.addClass(Class{URI: NSDocument + d.name, Label: d.label, ParentURI: NSDocument + "Document"})
	}

	// Risk namespace. Single-parent tree rooted at Risk.
	s.addClass(Class{
		URI:         NSRisk + "Risk",
		Label:       "Risk",
		Description: "A potential event that may negatively impact an entity",
	})
	for _, r := range []struct {
		name    string
		label   string
		parent  string
		aliases []string
	}{
		{"OperationalRisk", "Operational Risk", "Risk", []string{"operations risk"}},
		{"SupplyChainRisk", "Supply Chain Risk", "OperationalRisk", []string{"supplier risk", "logistics risk", "manufacturing risk"}},
		{"CybersecurityRisk", "Cybersecurity Risk", "OperationalRisk", []string{"cyber risk", "data breach risk", "security risk"}},
		{"FinancialRisk", "Financial Risk", "Risk", nil},
		{"CreditRisk", "Credit Risk", "FinancialRisk", []string{"default risk", "counterparty risk"}},
		{"LiquidityRisk", "Liquidity Risk", "FinancialRisk", []string{"funding risk"}},
		{"MarketRisk", "Market Risk", "FinancialRisk", nil},
		{"CurrencyRisk", "Currency Risk", "MarketRisk", []string{"FX risk", "foreign exchange risk", "exchange rate risk"}},
		{"InterestRateRisk", "Interest Rate Risk", "MarketRisk", []string{"rate risk"}},
		{"RegulatoryRisk", "Regulatory Risk", "Risk", []string{"compliance risk", "legal risk", "government risk"}},
		{"GeopoliticalRisk", "Geopolitical Risk", "Risk", []string{"political risk", "trade risk", "sanction risk"}},
		{"CompetitiveRisk", "Competitive Risk", "Risk", []string{"competition risk", "market share risk"}},
		{"TechnologyRisk", "Technology Risk", "Risk", []string{"tech risk", "disruption risk", "obsolescence risk"}},
		{"ReputationalRisk", "Reputational Risk", "Risk", []string{"brand risk"}},
		{"EnvironmentalRisk", "Environmental Risk", "Risk", []string{"climate risk", "ESG risk"}},
	} {
		s.addClass(Class{
			URI:       NSRisk + r.name,
			Label:     r.label,
			ParentURI: NSRisk + r.parent,
			Aliases:   r.aliases,
		})
	}

	// Economic namespace.
	s.addClass(Class{
		URI:         NSEconomic + "EconomicIndicator",
		Label:       "Economic Indicator",
		Description: "A statistic about economic activity",
	})
	for _, e := range []struct {
		name    string
		label   string
		aliases []string
	}{
		{"GDP", "Gross Domestic Product", []string{"gross domestic product"}},
		{"InflationRate", "Inflation Rate", []string{"CPI", "consumer price index"}},
		{"UnemploymentRate", "Unemployment Rate", []string{"jobless rate"}},
		{"InterestRate", "Interest Rate", []string{"rates"}},
		{"FederalFundsRate", "Federal Funds Rate", []string{"fed funds rate", "fed rate"}},
		{"ConsumerConfidence", "Consumer Confidence Index", []string{"consumer sentiment"}},
	} {
		s.addClass(Class{
			URI:       NSEconomic + e.name,
			Label:     e.label,
			ParentURI: NSEconomic + "EconomicIndicator",
			Aliases:   e.aliases,
		})
	}
}

func (s *Schema) registerProperties() {
	register := func(relationType, uri, label, domainURI, rangeURI string) {
		s.properties[relationType] = &Property{
			URI:       uri,
			Label:     label,
			DomainURI: domainURI,
			RangeURI:  rangeURI,
		}
		s.relationTypes[relationType] = uri
	}

	register("COMPETES_WITH", NSCompany+"competesWith", "competes with", NSCompany+"Company", NSCompany+"Company")
	register("PARTNERS_WITH", NSCompany+"partnersWith", "partners with", NSCompany+"Company", NSCompany+"Company")
	register("ACQUIRED", NSCompany+"acquired", "acquired", NSCompany+"Company", NSCompany+"Company")
	register("SUBSIDIARY_OF", NSCompany+"isSubsidiaryOf", "is subsidiary of", NSCompany+"Company", NSCompany+"Company")
	register("REPORTED", NSFinancial+"hasFinancialMetric", "reported", NSCompany+"Company", NSFinancial+"FinancialMetric")
	register("GENERATED", NSFinancial+"hasFinancialMetric", "generated", NSCompany+"Company", NSFinancial+"FinancialMetric")
	register("FACES_RISK", NSRisk+"facesRisk", "faces risk", NSCompany+"Company", NSRisk+"Risk")
	register("MANUFACTURES", NSCompany+"manufactures", "manufactures", NSCompany+"Company", NSCompany+"Product")
	register("SELLS", NSCompany+"sells", "sells", NSCompany+"Company", NSCompany+"Product")
	register("CEO_OF", NSCompany+"isCEOOf", "is CEO of", NSCompany+"Person", NSCompany+"Company")
	register("WORKS_AT", NSCompany+"worksAt", "works at", NSCompany+"Person", NSCompany+"Company")
	register("IMPACTED_BY", NSEconomic+"impactedBy", "impacted by", NSCompany+"Company", NSEconomic+"EconomicIndicator")
}

func (s *Schema) registerMappings() {
	s.entityTypes = map[string]string{
		"Company":      NSCompany + "PublicCompany",
		"Organization": NSCompany + "Organization",
		"Person":       NSCompany + "Person",
		"Product":      NSCompany + "Product",

		"Revenue":          NSFinancial + "Revenue",
		"NetIncome":        NSFinancial + "NetIncome",
		"EarningsPerShare": NSFinancial + "EarningsPerShare",
		"TotalAssets":      NSFinancial + "TotalAssets",
		"CashFlow":         NSFinancial + "CashFlow",
		"MonetaryAmount":   NSFinancial + "FinancialMetric",
		"FinancialMetric":  NSFinancial + "FinancialMetric",

		"Risk":              NSRisk + "Risk",
		"SupplyChainRisk":   NSRisk + "SupplyChainRisk",
		"CurrencyRisk":      NSRisk + "CurrencyRisk",
		"RegulatoryRisk":    NSRisk + "RegulatoryRisk",
		"GeopoliticalRisk":  NSRisk + "GeopoliticalRisk",
		"CompetitiveRisk":   NSRisk + "CompetitiveRisk",
		"CybersecurityRisk": NSRisk + "CybersecurityRisk",
		"TechnologyRisk":    NSRisk + "TechnologyRisk",

		"Document": NSDocument + "Document",
		"Form10K":  NSDocument + "Form10K",
		"Form10Q":  NSDocument + "Form10Q",

		"EconomicIndicator": NSEconomic + "EconomicIndicator",

		"Date":       NSXSD + "date",
		"Percentage": NSXSD + "decimal",
	}
}
