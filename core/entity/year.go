package entity

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/finraglabs/finrag/model"
)

var (
	yearRegex      = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	yearRangeRegex = regexp.MustCompile(`\b((?:19|20)\d{2})\s*(?:to|-)\s*((?:19|20)\d{2})\b`)
	betweenRegex   = regexp.MustCompile(`\bbetween\s+((?:19|20)\d{2})\s+and\s+((?:19|20)\d{2})\b`)
	fromThruRegex  = regexp.MustCompile(`\bfrom\s+((?:19|20)\d{2})\s+(?:through|thru)\s+((?:19|20)\d{2})\b`)
	tillUntilRegex = regexp.MustCompile(`\b((?:19|20)\d{2})\s+(?:till|until)\s+((?:19|20)\d{2})\b`)
	pastNRegex     = regexp.MustCompile(`\b(?:last|past)\s+(\d{1,2})\s+years?\b`)

	dashNormalizer = strings.NewReplacer("–", "-", "—", "-", "−", "-")
)

// YearExtractor finds explicit years, year ranges and relative year phrases
// in a query and categorizes them against the current year.
type YearExtractor struct {
	MinYear int
	MaxYear int
	now     func() time.Time
}

// NewYearExtractor returns an extractor with wide default bounds: old
// enough for historical references, and a few years ahead so forward-looking
// years are kept and flagged with a warning instead of silently dropped.
func NewYearExtractor() *YearExtractor {
	return &YearExtractor{
		MinYear: 1950,
		MaxYear: time.Now().Year() + 5,
		now:     time.Now,
	}
}

// Extract returns all years referenced by the query, expanded from ranges,
// clamped to the extractor bounds, deduplicated and sorted.
func (e *YearExtractor) Extract(query string) model.YearMatches {
	normalized := dashNormalizer.Replace(strings.ToLower(query))
	currentYear := e.now().Year()

	yearSet := map[int]bool{}
	// Spans of the query already consumed by a range expression, so the
	// single-year pass does not double count the endpoints.
	var consumed [][]int

	for _, rangeRegex := range []*regexp.Regexp{yearRangeRegex, betweenRegex, fromThruRegex, tillUntilRegex} {
		for _, match := range rangeRegex.FindAllStringSubmatchIndex(normalized, -1) {
			start, _ := strconv.Atoi(normalized[match[2]:match[3]])
			end, _ := strconv.Atoi(normalized[match[4]:match[5]])
			for _, year := range e.expandRange(start, end) {
				yearSet[year] = true
			}
			consumed = append(consumed, []int{match[0], match[1]})
		}
	}

	for _, match := range yearRegex.FindAllStringIndex(normalized, -1) {
		if overlapsAny(match[0], match[1], consumed) {
			continue
		}
		year, _ := strconv.Atoi(normalized[match[0]:match[1]])
		if year >= e.MinYear && year <= e.MaxYear {
			yearSet[year] = true
		}
	}

	// Relative phrases resolve against the current year.
	if match := pastNRegex.FindStringSubmatch(normalized); match != nil {
		n, _ := strconv.Atoi(match[1])
		for year := currentYear - n; year <= currentYear-1; year++ {
			if year >= e.MinYear && year <= e.MaxYear {
				yearSet[year] = true
			}
		}
	} else if strings.Contains(normalized, "last year") {
		yearSet[currentYear-1] = true
	}
	if strings.Contains(normalized, "this year") || strings.Contains(normalized, "current year") ||
		strings.Contains(normalized, "recent") || strings.Contains(normalized, "latest") {
		yearSet[currentYear] = true
	}

	matches := model.YearMatches{}
	for year := range yearSet {
		matches.Years = append(matches.Years, year)
	}
	sort.Ints(matches.Years)

	var warnings []string
	for _, year := range matches.Years {
		switch {
		case year < currentYear:
			matches.PastYears = append(matches.PastYears, year)
		case year == currentYear:
			matches.CurrentYears = append(matches.CurrentYears, year)
			warnings = append(warnings, fmt.Sprintf("year %d is the current year, filings may be incomplete", year))
		default:
			matches.FutureYears = append(matches.FutureYears, year)
			warnings = append(warnings, fmt.Sprintf("year %d is in the future, filings do not exist yet", year))
		}
	}
	matches.Warning = strings.Join(warnings, "; ")

	return matches
}

// expandRange expands an inclusive year range, swapping reversed bounds and
// clamping to the extractor bounds. A range entirely out of bounds is dropped.
func (e *YearExtractor) expandRange(start int, end int) []int {
	if start > end {
		start, end = end, start
	}
	if end < e.MinYear || start > e.MaxYear {
		return nil
	}
	if start < e.MinYear {
		start = e.MinYear
	}
	if end > e.MaxYear {
		end = e.MaxYear
	}

	years := make([]int, 0, end-start+1)
	for year := start; year <= end; year++ {
		years = append(years, year)
	}
	return years
}

func overlapsAny(start int, end int, spans [][]int) bool {
	for _, span := range spans {
		if start < span[1] && end > span[0] {
			return true
		}
	}
	return false
}
