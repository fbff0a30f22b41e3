package entity

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/finraglabs/finrag/helper"
	"github.com/finraglabs/finrag/model"
)

// fuzzyStopwords are query words too common to fuzzy match against metric
// phrases.
var fuzzyStopwords = map[string]bool{
	"the":  true,
	"and":  true,
	"what": true,
	"how":  true,
	"was":  true,
	"is":   true,
	"are":  true,
	"were": true,
	"from": true,
	"with": true,
}

// MetricExtractor maps natural-language metric phrases onto canonical
// metric IDs. Exact phrase matches run longest-first so that e.g.
// "operating cash flow" wins over "cash flow"; a fuzzy pass then catches
// misspelled single words.
type MetricExtractor struct {
	keywords       []string
	keywordPattern map[string]*regexp.Regexp
	FuzzyThreshold float64
}

// NewMetricExtractor compiles the keyword patterns once.
func NewMetricExtractor() *MetricExtractor {
	keywords := make([]string, 0, len(metricMappings))
	for keyword := range metricMappings {
		keywords = append(keywords, keyword)
	}
	// Longest first, ties broken alphabetically for determinism.
	sort.Slice(keywords, func(i, j int) bool {
		if len(keywords[i]) != len(keywords[j]) {
			return len(keywords[i]) > len(keywords[j])
		}
		return keywords[i] < keywords[j]
	})

	patterns := make(map[string]*regexp.Regexp, len(keywords))
	for _, keyword := range keywords {
		patterns[keyword] = regexp.MustCompile(`\b` + regexp.QuoteMeta(keyword) + `\b`)
	}

	return &MetricExtractor{
		keywords:       keywords,
		keywordPattern: patterns,
		FuzzyThreshold: 0.70,
	}
}

// Extract returns the canonical metric IDs referenced by the query, sorted.
func (e *MetricExtractor) Extract(query string) model.MetricMatches {
	lowered := strings.ToLower(query)

	metricSet := map[string]bool{}
	matchedWords := map[string]bool{}
	var matchedSpans [][]int

	for _, keyword := range e.keywords {
		for _, span := range e.keywordPattern[keyword].FindAllStringIndex(lowered, -1) {
			if overlapsAny(span[0], span[1], matchedSpans) {
				continue
			}
			matchedSpans = append(matchedSpans, span)
			metricSet[metricMappings[keyword]] = true
			for _, word := range strings.Fields(keyword) {
				matchedWords[word] = true
			}
		}
	}

	// Fuzzy pass over the remaining words catches typos like "revenu".
	for _, word := range strings.Fields(lowered) {
		word = strings.Trim(word, ".,;:?!()'\"")
		if matchedWords[word] || len(word) < 4 || fuzzyStopwords[word] || containsDigit(word) {
			continue
		}
		best, score := helper.FuzzyMatch(word, e.keywords, e.FuzzyThreshold)
		if best == "" || score < e.FuzzyThreshold {
			continue
		}
		metricSet[metricMappings[best]] = true
	}

	matches := model.MetricMatches{}
	for metric := range metricSet {
		matches.Metrics = append(matches.Metrics, metric)
	}
	sort.Strings(matches.Metrics)

	return matches
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
