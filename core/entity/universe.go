package entity

import (
	"regexp"
	"sort"
	"strings"

	"github.com/finraglabs/finrag/model"
)

var tokenRegex = regexp.MustCompile(`[a-z0-9]+`)

// corporateStopwords are name tokens too generic to identify a company.
var corporateStopwords = map[string]bool{
	"inc":          true,
	"incorporated": true,
	"corp":         true,
	"corporation":  true,
	"company":      true,
	"co":           true,
	"ltd":          true,
	"limited":      true,
	"plc":          true,
	"llc":          true,
	"lp":           true,
	"the":          true,
	"group":        true,
	"holdings":     true,
	"holding":      true,
}

// NormalizeText lowercases, trims and collapses whitespace.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), " ")
}

// Tokenize splits normalized text into alphanumeric tokens.
func Tokenize(s string) []string {
	return tokenRegex.FindAllString(NormalizeText(s), -1)
}

// CompanyUniverse indexes the known companies for fast resolution by
// ticker, CIK, name token and full name.
type CompanyUniverse struct {
	byTicker    map[string]*model.CompanyInfo
	byCIK       map[int]*model.CompanyInfo
	aliasTokens map[string][]*model.CompanyInfo
	companies   []*model.CompanyInfo
}

// NewCompanyUniverse builds the lookup maps from the company list.
// Name tokens that are pure corporate boilerplate are not indexed as aliases.
func NewCompanyUniverse(companies []*model.CompanyInfo) *CompanyUniverse {
	universe := &CompanyUniverse{
		byTicker:    map[string]*model.CompanyInfo{},
		byCIK:       map[int]*model.CompanyInfo{},
		aliasTokens: map[string][]*model.CompanyInfo{},
		companies:   companies,
	}

	for _, company := range companies {
		if company.Ticker != "" {
			universe.byTicker[strings.ToUpper(company.Ticker)] = company
		}
		universe.byCIK[company.CIKInt] = company

		seen := map[string]bool{}
		for _, token := range Tokenize(company.Name) {
			if corporateStopwords[token] || seen[token] {
				continue
			}
			seen[token] = true
			universe.aliasTokens[token] = append(universe.aliasTokens[token], company)
		}
	}

	return universe
}

// Size returns the number of companies in the universe.
func (u *CompanyUniverse) Size() int {
	return len(u.companies)
}

// GetByTicker returns the company with the given ticker symbol.
func (u *CompanyUniverse) GetByTicker(ticker string) (*model.CompanyInfo, bool) {
	company, ok := u.byTicker[strings.ToUpper(ticker)]
	return company, ok
}

// GetByCIK returns the company with the given integer CIK.
func (u *CompanyUniverse) GetByCIK(cikInt int) (*model.CompanyInfo, bool) {
	company, ok := u.byCIK[cikInt]
	return company, ok
}

// MatchAliasToken returns all companies whose name contains the token.
func (u *CompanyUniverse) MatchAliasToken(token string) []*model.CompanyInfo {
	return u.aliasTokens[token]
}

// AliasTokens returns the indexed name tokens in sorted order, used as
// candidates for fuzzy matching.
func (u *CompanyUniverse) AliasTokens() []string {
	tokens := make([]string, 0, len(u.aliasTokens))
	for token := range u.aliasTokens {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	return tokens
}

// FindByNameSubstring returns all companies whose full normalized name
// appears as a substring of the normalized query.
func (u *CompanyUniverse) FindByNameSubstring(normalizedQuery string) []*model.CompanyInfo {
	var matches []*model.CompanyInfo
	for _, company := range u.companies {
		name := NormalizeText(company.Name)
		if name != "" && strings.Contains(normalizedQuery, name) {
			matches = append(matches, company)
		}
	}
	return matches
}

// SectionUniverse is the set of canonical section items present in the corpus.
type SectionUniverse struct {
	items map[string]bool
}

// NewSectionUniverse builds the section set from the section list.
func NewSectionUniverse(sections []*model.SectionInfo) *SectionUniverse {
	universe := &SectionUniverse{items: map[string]bool{}}
	for _, section := range sections {
		universe.items[section.SecItemCanonical] = true
	}
	return universe
}

// Size returns the number of sections in the universe.
func (u *SectionUniverse) Size() int {
	return len(u.items)
}

// Has reports whether the canonical item exists in the corpus.
func (u *SectionUniverse) Has(item string) bool {
	return u.items[item]
}

// FilterExisting keeps only items that exist in the corpus, preserving order.
// An empty universe passes everything through.
func (u *SectionUniverse) FilterExisting(items []string) []string {
	if len(u.items) == 0 {
		return items
	}
	var filtered []string
	for _, item := range items {
		if u.items[item] {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
