// Package registry holds the built-in catalog of public companies used to
// seed document acquisition and alias normalization. Each entry carries the
// SEC EDGAR metadata (ticker, CIK) needed to fetch filings plus sector
// classification for grouping.
package registry

import (
	"sort"
	"strings"
)

// Sector classifies a company's primary industry group.
type Sector string

const (
	SectorTechnology         Sector = "Technology"
	SectorHealthcare         Sector = "Healthcare"
	SectorFinancial          Sector = "Financial Services"
	SectorConsumer           Sector = "Consumer"
	SectorEnergy             Sector = "Energy"
	SectorIndustrials        Sector = "Industrials"
	SectorTelecommunications Sector = "Telecommunications"
	SectorUtilities          Sector = "Utilities"
	SectorRealEstate         Sector = "Real Estate"
	SectorMaterials          Sector = "Materials"
)

// Company is one registry entry with SEC EDGAR metadata.
type Company struct {
	Ticker            string   `json:"ticker" yaml:"ticker"`
	Name              string   `json:"name" yaml:"name"`
	CIK               string   `json:"cik" yaml:"cik"`
	Sector            Sector   `json:"sector" yaml:"sector"`
	Industry          string   `json:"industry,omitempty" yaml:"industry,omitempty"`
	Headquarters      string   `json:"headquarters,omitempty" yaml:"headquarters,omitempty"`
	Description       string   `json:"description,omitempty" yaml:"description,omitempty"`
	MarketCapCategory string   `json:"marketCapCategory,omitempty" yaml:"marketCapCategory,omitempty"`
	SP500             bool     `json:"sp500" yaml:"sp500"`
	FiscalYearEnd     string   `json:"fiscalYearEnd,omitempty" yaml:"fiscalYearEnd,omitempty"`
	Competitors       []string `json:"competitors,omitempty" yaml:"competitors,omitempty"`
}

// CIKPadded returns the CIK zero-padded to the 10 digits EDGAR URLs expect.
func (c Company) CIKPadded() string {
	trimmed := strings.TrimLeft(c.CIK, "0")
	if len(trimmed) >= 10 {
		return trimmed
	}
	return strings.Repeat("0", 10-len(trimmed)) + trimmed
}

// Registry is an immutable-after-construction company catalog keyed by
// ticker symbol.
type Registry struct {
	companies map[string]Company
	tickers   []string
}

// RegistryOption configures a Registry during construction.
type RegistryOption func(*Registry)

// WithCompany adds or replaces a registry entry.
func WithCompany(company Company) RegistryOption {
	return func(r *Registry) {
		r.add(company)
	}
}

// NewRegistry creates a registry pre-populated with the built-in catalog.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{companies: make(map[string]Company)}
	for _, company := range defaultCompanies {
		r.add(company)
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) add(company Company) {
	ticker := strings.ToUpper(company.Ticker)
	if _, exists := r.companies[ticker]; !exists {
		r.tickers = append(r.tickers, ticker)
	}
	r.companies[ticker] = company
}

// Get looks up a company by ticker symbol, case-insensitively.
func (r *Registry) Get(ticker string) (Company, bool) {
	company, ok := r.companies[strings.ToUpper(ticker)]
	return company, ok
}

// GetByCIK looks up a company by CIK, ignoring leading zeros.
func (r *Registry) GetByCIK(cik string) (Company, bool) {
	normalized := strings.TrimLeft(cik, "0")
	for _, ticker := range r.tickers {
		company := r.companies[ticker]
		if strings.TrimLeft(company.CIK, "0") == normalized {
			return company, true
		}
	}
	return Company{}, false
}

// BySector returns every company in the given sector, in registration order.
func (r *Registry) BySector(sector Sector) []Company {
	var out []Company
	for _, ticker := range r.tickers {
		if company := r.companies[ticker]; company.Sector == sector {
			out = append(out, company)
		}
	}
	return out
}

// All returns every registered company in registration order.
func (r *Registry) All() []Company {
	out := make([]Company, 0, len(r.tickers))
	for _, ticker := range r.tickers {
		out = append(out, r.companies[ticker])
	}
	return out
}

// SP500 returns every S&P 500 member in the registry.
func (r *Registry) SP500() []Company {
	var out []Company
	for _, ticker := range r.tickers {
		if company := r.companies[ticker]; company.SP500 {
			out = append(out, company)
		}
	}
	return out
}

// Tickers returns all ticker symbols, sorted.
func (r *Registry) Tickers() []string {
	out := make([]string, len(r.tickers))
	copy(out, r.tickers)
	sort.Strings(out)
	return out
}

// Search returns companies whose ticker or name contains the query,
// case-insensitively.
func (r *Registry) Search(query string) []Company {
	lower := strings.ToLower(query)
	var out []Company
	for _, ticker := range r.tickers {
		company := r.companies[ticker]
		if strings.Contains(strings.ToLower(company.Ticker), lower) ||
			strings.Contains(strings.ToLower(company.Name), lower) {
			out = append(out, company)
		}
	}
	return out
}

// Aliases returns a normalization table mapping lowercased tickers, full
// names, and short names (suffix-stripped, e.g. "chevron") to canonical
// company names, suitable for the entity extractor's alias options.
func (r *Registry) Aliases() map[string]string {
	aliases := make(map[string]string, 3*len(r.tickers))
	for _, ticker := range r.tickers {
		company := r.companies[ticker]
		aliases[strings.ToLower(company.Ticker)] = company.Name
		aliases[strings.ToLower(company.Name)] = company.Name
		if short := shortName(company.Name); short != "" {
			aliases[short] = company.Name
		}
	}
	return aliases
}

var nameSuffixes = []string{
	" & co., inc.", " & company", " & co.",
	", incorporated", " incorporated", ", inc.", " inc.", ", inc", " inc",
	" corporation", " corp.", " company", ", l.p.", " plc", " group",
}

// shortName strips a leading article and one trailing corporate suffix
// from a company name, lowercased. Returns "" when nothing was stripped.
func shortName(name string) string {
	lower := strings.ToLower(name)
	stripped := strings.TrimPrefix(lower, "the ")
	for _, suffix := range nameSuffixes {
		if strings.HasSuffix(stripped, suffix) {
			stripped = strings.TrimSuffix(stripped, suffix)
			break
		}
	}
	if stripped == lower {
		return ""
	}
	return strings.TrimSpace(stripped)
}

// Sample returns up to perSector companies from each sector that has any,
// in sector declaration order.
func (r *Registry) Sample(perSector int) []Company {
	sectors := []Sector{
		SectorTechnology, SectorHealthcare, SectorFinancial, SectorConsumer,
		SectorEnergy, SectorIndustrials, SectorTelecommunications,
		SectorUtilities, SectorRealEstate, SectorMaterials,
	}
	var out []Company
	for _, sector := range sectors {
		companies := r.BySector(sector)
		if len(companies) > perSector {
			companies = companies[:perSector]
		}
		out = append(out, companies...)
	}
	return out
}

// Len returns the number of registered companies.
func (r *Registry) Len() int {
	return len(r.companies)
}
