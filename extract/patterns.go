package extract

import "regexp"

// entityRule pairs a compiled pattern with the base confidence its matches
// carry. The first capturing group, when present, is the span text; otherwise
// the full match is used.
type entityRule struct {
	re         *regexp.Regexp
	confidence float64
}

// relationRule describes one pattern-strategy relation rule. The first two
// capturing groups are raw subject and object text.
type relationRule struct {
	re          *regexp.Regexp
	subjectType string
	objectType  string
	confidence  float64
}

func rule(pattern string, confidence float64) entityRule {
	return entityRule{re: regexp.MustCompile(`(?i)` + pattern), confidence: confidence}
}

// entityRules is the default pattern table, keyed by entity type.
var entityRules = map[string][]entityRule{
	"Company": {
		rule(`\b([A-Z][a-z]+(?:\s[A-Z][a-z]+)*)\s+(?:Inc\.|Corp\.|Corporation|Company|Co\.|Ltd\.|LLC|L\.P\.|LP|PLC)\b`, 0.9),
		rule(`\b(Apple|Google|Alphabet|Microsoft|Amazon|Meta|Tesla|NVIDIA|AMD|Intel|IBM|Oracle|Cisco|Salesforce|Adobe)\b`, 0.95),
		rule(`\b(JPMorgan|Goldman\s+Sachs|Morgan\s+Stanley|Bank\s+of\s+America|Citigroup|Wells\s+Fargo)\b`, 0.95),
		rule(`\b(Johnson\s*&\s*Johnson|Pfizer|Merck|AbbVie|Bristol[- ]Myers|Eli\s+Lilly)\b`, 0.95),
		rule(`\b(Walmart|Target|Costco|Home\s+Depot|Coca[- ]Cola|PepsiCo|Procter\s*&\s*Gamble)\b`, 0.95),
		rule(`\b(ExxonMobil|Chevron|ConocoPhillips|Shell|BP)\b`, 0.95),
	},
	"Person": {
		rule(`\b(?:CEO|CFO|CTO|COO|Chairman|President|Director)\s+([A-Z][a-z]+\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)\b`, 0.85),
		rule(`\b([A-Z][a-z]+\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?),?\s+(?:CEO|CFO|CTO|COO|Chairman|President|Director)\b`, 0.85),
		rule(`\b(Tim\s+Cook|Satya\s+Nadella|Sundar\s+Pichai|Andy\s+Jassy|Mark\s+Zuckerberg|Jensen\s+Huang|Elon\s+Musk|Jamie\s+Dimon)\b`, 0.95),
	},
	"Product": {
		rule(`\b(iPhone|iPad|Mac|MacBook|Apple\s+Watch|AirPods|Vision\s+Pro|App\s+Store|iCloud)\b`, 0.9),
		rule(`\b(Windows|Azure|Office\s+365|Microsoft\s+365|Xbox|Surface|LinkedIn|GitHub)\b`, 0.9),
		rule(`\b(Android|Chrome|Gmail|YouTube|Google\s+Cloud|Google\s+Search|Pixel)\b`, 0.9),
		rule(`\b(AWS|Amazon\s+Web\s+Services|Prime|Alexa|Kindle|Echo)\b`, 0.9),
	},
	"Revenue": {
		rule(`(?:total\s+)?(?:net\s+)?(?:revenue|sales)\s+(?:of\s+)?\$?([\d,]+(?:\.\d+)?)\s*(billion|million|B|M|thousand|K)?`, 0.9),
		rule(`\$?([\d,]+(?:\.\d+)?)\s*(billion|million|B|M)?\s+(?:in\s+)?(?:total\s+)?(?:net\s+)?(?:revenue|sales)`, 0.9),
		rule(`(?:revenue|sales)\s+(?:increased|decreased|grew|declined)\s+(?:by\s+)?\$?([\d,]+(?:\.\d+)?)\s*(billion|million|B|M)?`, 0.85),
	},
	"NetIncome": {
		rule(`(?:net\s+)?(?:income|earnings|profit)\s+(?:of\s+)?\$?([\d,]+(?:\.\d+)?)\s*(billion|million|B|M)?`, 0.9),
		rule(`\$?([\d,]+(?:\.\d+)?)\s*(billion|million|B|M)?\s+(?:in\s+)?(?:net\s+)?(?:income|earnings|profit)`, 0.9),
	},
	"EarningsPerShare": {
		rule(`(?:EPS|earnings\s+per\s+share)\s+(?:of\s+)?\$?([\d]+(?:\.\d+)?)`, 0.9),
		rule(`\$?([\d]+\.\d+)\s+(?:per\s+)?(?:diluted\s+)?(?:share|EPS)`, 0.85),
	},
	"TotalAssets": {
		rule(`total\s+assets\s+(?:of\s+)?\$?([\d,]+(?:\.\d+)?)\s*(trillion|billion|million|T|B|M)?`, 0.9),
		rule(`\$?([\d,]+(?:\.\d+)?)\s*(trillion|billion|million|T|B|M)?\s+(?:in\s+)?total\s+assets`, 0.9),
	},
	"CashFlow": {
		rule(`(?:operating\s+)?cash\s+flow\s+(?:of\s+)?\$?([\d,]+(?:\.\d+)?)\s*(billion|million|B|M)?`, 0.85),
		rule(`free\s+cash\s+flow\s+(?:of\s+)?\$?([\d,]+(?:\.\d+)?)\s*(billion|million|B|M)?`, 0.85),
	},
	"SupplyChainRisk": {
		rule(`supply\s+chain\s+(?:risk|disruption|challenge|issue|concentration)`, 0.85),
		rule(`(?:manufacturing|production|logistics|distribution)\s+(?:risk|disruption|challenge)`, 0.8),
		rule(`(?:supplier|vendor)\s+(?:concentration|dependency|risk|disruption)`, 0.8),
		rule(`(?:single|sole|limited)\s+source\s+(?:supplier|manufacturing)`, 0.85),
	},
	"CurrencyRisk": {
		rule(`(?:foreign\s+)?(?:currency|exchange\s+rate|fx)\s+(?:risk|exposure|fluctuation|volatility)`, 0.85),
		rule(`(?:foreign\s+exchange|currency)\s+(?:hedging|exposure|translation)`, 0.8),
	},
	"RegulatoryRisk": {
		rule(`regulatory\s+(?:risk|compliance|change|uncertainty|environment|requirement)`, 0.85),
		rule(`(?:government|legal|legislative)\s+(?:risk|action|change|regulation)`, 0.8),
		rule(`(?:antitrust|data\s+privacy|environmental)\s+(?:regulation|compliance|law)`, 0.85),
	},
	"GeopoliticalRisk": {
		rule(`geopolitical\s+(?:risk|tension|uncertainty|event|instability)`, 0.85),
		rule(`(?:trade\s+war|tariff|sanction|embargo|trade\s+restriction)`, 0.85),
	},
	"CompetitiveRisk": {
		rule(`competit(?:ive|ion)\s+(?:risk|pressure|threat|landscape|environment)`, 0.85),
		rule(`(?:intense|increasing|significant)\s+competition`, 0.8),
		rule(`market\s+(?:share|position)\s+(?:loss|decline|pressure)`, 0.8),
	},
	"CybersecurityRisk": {
		rule(`(?:cyber(?:security)?|information\s+security|data\s+security)\s+(?:risk|threat|breach|incident)`, 0.85),
		rule(`(?:data|security)\s+breach`, 0.85),
		rule(`(?:ransomware|malware|phishing|hacking)\s+(?:attack|threat|risk)`, 0.85),
	},
	"TechnologyRisk": {
		rule(`technolog(?:y|ical)\s+(?:risk|change|disruption|obsolescence)`, 0.85),
		rule(`(?:digital|technology)\s+transformation\s+(?:risk|challenge)`, 0.8),
		rule(`(?:rapid|accelerating)\s+technological\s+change`, 0.8),
	},
	"Date": {
		rule(`\b((?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4})\b`, 0.95),
		rule(`\b(\d{1,2}/\d{1,2}/\d{4})\b`, 0.9),
		rule(`\b(Q[1-4]\s*\d{4}|FY\s*\d{4}|\d{4}\s*Q[1-4])\b`, 0.9),
		rule(`\b(?:fiscal\s+)?(?:year|quarter)\s+(?:ended|ending)\s+(\w+\s+\d{1,2},?\s+\d{4})`, 0.9),
	},
	"Percentage": {
		rule(`(\d+(?:\.\d+)?)\s*%`, 0.9),
		rule(`(\d+(?:\.\d+)?)\s+percent`, 0.85),
	},
	"MonetaryAmount": {
		rule(`\$\s*([\d,]+(?:\.\d+)?)\s*(trillion|billion|million|thousand|T|B|M|K)?`, 0.9),
		rule(`([\d,]+(?:\.\d+)?)\s*(trillion|billion|million|thousand)\s*(?:dollars|USD)`, 0.85),
	},
}

// companyAliases normalizes textual variants of a company to its canonical
// name before span identity is computed, so variants collapse to one node.
var companyAliases = map[string]string{
	"alphabet":          "Alphabet Inc.",
	"google":            "Alphabet Inc.",
	"apple":             "Apple Inc.",
	"microsoft":         "Microsoft Corporation",
	"amazon":            "Amazon.com Inc.",
	"meta":              "Meta Platforms Inc.",
	"facebook":          "Meta Platforms Inc.",
	"tesla":             "Tesla Inc.",
	"nvidia":            "NVIDIA Corporation",
	"jpmorgan":          "JPMorgan Chase & Co.",
	"jp morgan":         "JPMorgan Chase & Co.",
	"goldman sachs":     "The Goldman Sachs Group, Inc.",
	"johnson & johnson": "Johnson & Johnson",
	"j&j":               "Johnson & Johnson",
	"coca-cola":         "The Coca-Cola Company",
	"coke":              "The Coca-Cola Company",
	"exxonmobil":        "Exxon Mobil Corporation",
	"exxon mobil":       "Exxon Mobil Corporation",
}

func relRule(pattern, subjectType, objectType string, confidence float64) relationRule {
	return relationRule{
		re:          regexp.MustCompile(`(?i)` + pattern),
		subjectType: subjectType,
		objectType:  objectType,
		confidence:  confidence,
	}
}

// relationRules is the default pattern-strategy table, keyed by relation type.
var relationRules = map[string][]relationRule{
	"COMPETES_WITH": {
		relRule(`(\w+)\s+(?:competes?|competing)\s+(?:with|against)\s+(\w+)`, "Company", "Company", 0.85),
		relRule(`(\w+)\s+(?:is\s+)?(?:a\s+)?(?:major\s+)?competitor\s+(?:of|to)\s+(\w+)`, "Company", "Company", 0.85),
	},
	"PARTNERS_WITH": {
		relRule(`(\w+)\s+(?:partners?|partnering|partnered)\s+with\s+(\w+)`, "Company", "Company", 0.85),
		relRule(`partnership\s+(?:with|between)\s+(\w+)\s+and\s+(\w+)`, "Company", "Company", 0.85),
		relRule(`(\w+)\s+(?:and|&)\s+(\w+)\s+(?:announced|formed)\s+(?:a\s+)?partnership`, "Company", "Company", 0.8),
	},
	"ACQUIRED": {
		relRule(`(\w+)\s+(?:acquired|acquires|acquiring|bought|purchased)\s+(\w+)`, "Company", "Company", 0.9),
		relRule(`acquisition\s+of\s+(\w+)\s+by\s+(\w+)`, "Company", "Company", 0.9),
	},
	"SUBSIDIARY_OF": {
		relRule(`(\w+),?\s+(?:a\s+)?(?:wholly[- ]owned\s+)?subsidiary\s+of\s+(\w+)`, "Company", "Company", 0.9),
	},
	"REPORTED": {
		relRule(`(\w+)\s+reported\s+(?:.*?)(\$[\d,\.]+\s*(?:billion|million|B|M)?)`, "Company", "FinancialMetric", 0.85),
		relRule(`(\w+)(?:'s|’s)?\s+(?:revenue|sales|income|earnings)\s+(?:was|were|of)\s+(\$[\d,\.]+)`, "Company", "FinancialMetric", 0.85),
	},
	"GENERATED": {
		relRule(`(\w+)\s+generated\s+(\$[\d,\.]+\s*(?:billion|million)?)\s+(?:in\s+)?(?:revenue|sales)`, "Company", "Revenue", 0.85),
	},
	"FACES_RISK": {
		relRule(`(\w+)\s+(?:faces?|facing|confronts?)\s+(?:.*?)((?:supply\s+chain|regulatory|currency|competitive|cybersecurity|geopolitical)\s+risk)`, "Company", "Risk", 0.85),
		relRule(`(\w+)\s+(?:is\s+)?(?:exposed|vulnerable|susceptible)\s+to\s+(.*?risk)`, "Company", "Risk", 0.8),
	},
	"MANUFACTURES": {
		relRule(`(\w+)\s+(?:manufactures?|produces?|makes?|builds?)\s+(?:the\s+)?(\w+)`, "Company", "Product", 0.8),
	},
	"SELLS": {
		relRule(`(\w+)\s+(?:sells?|markets?|offers?|provides?)\s+(?:the\s+)?(\w+)`, "Company", "Product", 0.8),
	},
	"CEO_OF": {
		relRule(`(\w+\s+\w+),?\s+(?:the\s+)?CEO\s+of\s+(\w+)`, "Person", "Company", 0.9),
	},
	"WORKS_AT": {
		relRule(`(\w+\s+\w+),?\s+(?:\w+\s+)?(?:at|of)\s+(\w+)`, "Person", "Company", 0.7),
	},
	"IMPACTED_BY": {
		relRule(`(\w+)\s+(?:is\s+)?(?:impacted|affected|influenced)\s+by\s+(.*?(?:rate|inflation|GDP|unemployment))`, "Company", "EconomicIndicator", 0.8),
	},
}

// riskEntityTypes are the risk subtypes eligible for co-occurrence pairing
// with companies.
var riskEntityTypes = []string{
	"SupplyChainRisk",
	"CurrencyRisk",
	"RegulatoryRisk",
	"GeopoliticalRisk",
	"CompetitiveRisk",
	"CybersecurityRisk",
	"TechnologyRisk",
}

// metricEntityTypes are the metric subtypes eligible for co-occurrence
// pairing with companies.
var metricEntityTypes = []string{"Revenue", "NetIncome", "MonetaryAmount"}

// sectionEntityTypes restricts extraction to a type subset per document
// section label. Friendly labels alias the 10-K item names.
var sectionEntityTypes = map[string][]string{
	"item_1": {"Company", "Product", "Person", "Date"},
	"item_1a": {
		"Company", "SupplyChainRisk", "CurrencyRisk", "RegulatoryRisk",
		"GeopoliticalRisk", "CompetitiveRisk", "CybersecurityRisk",
		"TechnologyRisk", "Percentage",
	},
	"item_7": {
		"Company", "Revenue", "NetIncome", "EarningsPerShare",
		"MonetaryAmount", "Percentage", "Date",
	},
	"item_8": {
		"Revenue", "NetIncome", "TotalAssets", "CashFlow",
		"MonetaryAmount", "Date",
	},
}

func init() {
	for alias, item := range map[string]string{
		"business":             "item_1",
		"risk_factors":         "item_1a",
		"risk factors":         "item_1a",
		"mda":                  "item_7",
		"financial_statements": "item_8",
	} {
		sectionEntityTypes[alias] = sectionEntityTypes[item]
	}
}
