package entity

import (
	"regexp"
	"strings"

	"github.com/finraglabs/finrag/model"
)

// canonicalItemOrder is the filing order of 10-K items, used to keep
// extracted section lists deterministic.
var canonicalItemOrder = []string{
	"ITEM_1", "ITEM_1A", "ITEM_1B", "ITEM_2", "ITEM_3", "ITEM_4",
	"ITEM_5", "ITEM_6", "ITEM_7", "ITEM_7A", "ITEM_8", "ITEM_9",
	"ITEM_9A", "ITEM_9B", "ITEM_10", "ITEM_11", "ITEM_12", "ITEM_13",
	"ITEM_14", "ITEM_15", "ITEM_16",
}

// primaryPriority ranks sections for primary selection. MD&A answers most
// financial questions, then financial statements, then risk factors,
// business and market risk.
var primaryPriority = []string{"ITEM_7", "ITEM_8", "ITEM_1A", "ITEM_1", "ITEM_7A"}

// SectionExtractor maps section names, "Item X" references and risk topics
// onto canonical section items, validated against the section universe.
type SectionExtractor struct {
	Universe     *SectionUniverse
	itemPatterns map[string]*regexp.Regexp
}

// NewSectionExtractor compiles the item reference patterns once.
func NewSectionExtractor(universe *SectionUniverse) *SectionExtractor {
	patterns := make(map[string]*regexp.Regexp, len(sectionItemPatterns))
	for pattern, item := range sectionItemPatterns {
		patterns[item+"|"+pattern] = regexp.MustCompile(pattern)
	}
	return &SectionExtractor{
		Universe:     universe,
		itemPatterns: patterns,
	}
}

// Extract returns the sections and risk topics referenced by the query.
// Any matched risk topic implies the risk factors section.
func (e *SectionExtractor) Extract(query string) (model.SectionMatches, model.RiskMatches) {
	lowered := strings.ToLower(query)

	candidateSet := map[string]bool{}

	for keyword, item := range sectionKeywords {
		if strings.Contains(lowered, keyword) {
			candidateSet[item] = true
		}
	}

	for key, pattern := range e.itemPatterns {
		if pattern.MatchString(lowered) {
			item := key[:strings.Index(key, "|")]
			candidateSet[item] = true
		}
	}

	risks := model.RiskMatches{}
	for _, topic := range riskTopicOrder {
		for _, keyword := range riskTopicKeywords[topic] {
			if strings.Contains(lowered, keyword) {
				risks.Topics = append(risks.Topics, topic)
				break
			}
		}
	}
	if len(risks.Topics) > 0 {
		candidateSet["ITEM_1A"] = true
	}

	// Order candidates by filing order, then drop items absent from the corpus.
	var candidates []string
	for _, item := range canonicalItemOrder {
		if candidateSet[item] {
			candidates = append(candidates, item)
		}
	}
	if e.Universe != nil {
		candidates = e.Universe.FilterExisting(candidates)
	}

	sections := model.SectionMatches{Items: candidates}
	sections.Primary = selectPrimary(candidates)

	return sections, risks
}

func selectPrimary(candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	candidateSet := map[string]bool{}
	for _, item := range candidates {
		candidateSet[item] = true
	}
	for _, item := range primaryPriority {
		if candidateSet[item] {
			return item
		}
	}
	return candidates[0]
}
