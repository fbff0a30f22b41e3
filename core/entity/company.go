package entity

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/finraglabs/finrag/helper"
	"github.com/finraglabs/finrag/model"
)

var (
	tickerRegex = regexp.MustCompile(`\b([A-Z]{1,5})\b`)
	cikRegex    = regexp.MustCompile(`\b(\d{5,10})\b`)
)

// CompanyExtractor resolves company references against the company universe
// using independent strategies: ticker symbols, raw CIK numbers, name token
// matching (exact then fuzzy) and full-name substring matching. All
// strategies run on every query and their matches are unioned.
type CompanyExtractor struct {
	Universe       *CompanyUniverse
	FuzzyThreshold float64
}

// NewCompanyExtractor returns an extractor over the given universe.
func NewCompanyExtractor(universe *CompanyUniverse) *CompanyExtractor {
	return &CompanyExtractor{
		Universe:       universe,
		FuzzyThreshold: 0.85,
	}
}

// Extract returns all companies referenced by the query, deduplicated by CIK.
func (e *CompanyExtractor) Extract(query string) model.CompanyMatches {
	found := map[int]*model.CompanyInfo{}

	// Strategy 1: ticker symbols, uppercase in the original query.
	for _, candidate := range tickerRegex.FindAllString(query, -1) {
		if company, ok := e.Universe.GetByTicker(candidate); ok {
			found[company.CIKInt] = company
		}
	}

	// Strategy 2: raw CIK numbers.
	for _, candidate := range cikRegex.FindAllString(query, -1) {
		cik, err := strconv.Atoi(candidate)
		if err != nil {
			continue
		}
		if company, ok := e.Universe.GetByCIK(cik); ok {
			found[company.CIKInt] = company
		}
	}

	// Strategy 3: name tokens, exact first, then fuzzy on what is left.
	tokens := Tokenize(query)
	matchedTokens := map[string]bool{}
	for _, token := range tokens {
		companies := e.Universe.MatchAliasToken(token)
		if len(companies) > 0 {
			matchedTokens[token] = true
		}
		for _, company := range companies {
			found[company.CIKInt] = company
		}
	}
	aliasCandidates := e.Universe.AliasTokens()
	for _, token := range tokens {
		if matchedTokens[token] || len(token) < 4 {
			continue
		}
		best, score := helper.FuzzyMatch(token, aliasCandidates, e.FuzzyThreshold)
		if best == "" || score < e.FuzzyThreshold {
			continue
		}
		for _, company := range e.Universe.MatchAliasToken(best) {
			found[company.CIKInt] = company
		}
	}

	// Strategy 4: full-name substring. Runs unconditionally so companies
	// whose name tokens are all corporate boilerplate still resolve in
	// multi-company queries.
	for _, company := range e.Universe.FindByNameSubstring(NormalizeText(query)) {
		found[company.CIKInt] = company
	}

	return buildCompanyMatches(found)
}

func buildCompanyMatches(found map[int]*model.CompanyInfo) model.CompanyMatches {
	matches := model.CompanyMatches{}
	for cik := range found {
		matches.CIKsInt = append(matches.CIKsInt, cik)
	}
	sort.Ints(matches.CIKsInt)

	for _, cik := range matches.CIKsInt {
		company := found[cik]
		matches.CIKsStr = append(matches.CIKsStr, company.CIKStr)
		if company.Ticker != "" {
			matches.Tickers = append(matches.Tickers, strings.ToUpper(company.Ticker))
		}
		matches.Names = append(matches.Names, company.Name)
	}

	return matches
}
