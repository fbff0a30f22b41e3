// Package retrieval implements the entity-aware retrieval pipeline:
// filter construction, multi-call vector search, window expansion and
// context assembly.
package retrieval

import (
	"sort"

	"github.com/finraglabs/finrag/model"
)

// FilterBuilder turns extraction results into metadata filters for the
// vector index. The filtered call constrains by everything that was
// extracted; the global call keeps only the company constraint plus a
// recency floor, so strong evidence outside the requested years and
// sections can still surface.
type FilterBuilder struct {
	RecentYearThreshold int
}

// NewFilterBuilder returns a builder with the given recency floor for
// global calls.
func NewFilterBuilder(recentYearThreshold int) *FilterBuilder {
	return &FilterBuilder{RecentYearThreshold: recentYearThreshold}
}

// BuildFiltered builds the strict filter from all extracted entities.
// Returns nil when nothing constrains the search or when forceNoFilters
// is set.
func (b *FilterBuilder) BuildFiltered(entities *model.EntityExtractionResult, forceNoFilters bool) model.Filter {
	if forceNoFilters || entities == nil {
		return nil
	}

	var conditions []model.Filter

	if condition := cikCondition(entities); condition != nil {
		conditions = append(conditions, condition)
	}

	// Past years are preferred: current and future years have no or
	// incomplete filings and would empty out the result set.
	years := entities.Years.PastYears
	if len(years) == 0 {
		years = entities.Years.Years
	}
	if len(years) > 0 {
		sorted := append([]int{}, years...)
		sort.Ints(sorted)
		if len(sorted) == 1 {
			conditions = append(conditions, model.Eq{Field: model.FieldReportYear, Value: sorted[0]})
		} else {
			conditions = append(conditions, model.In{Field: model.FieldReportYear, Values: model.IntValues(sorted)})
		}
	}

	sections := append([]string{}, entities.Sections...)
	if entities.PrimarySection != "" && !containsString(sections, entities.PrimarySection) {
		sections = append(sections, entities.PrimarySection)
	}
	if len(sections) == 1 {
		conditions = append(conditions, model.Eq{Field: model.FieldSection, Value: sections[0]})
	} else if len(sections) > 1 {
		var sectionConditions []model.Filter
		for _, section := range sections {
			sectionConditions = append(sectionConditions, model.Eq{Field: model.FieldSection, Value: section})
		}
		conditions = append(conditions, model.Or{Conditions: sectionConditions})
	}

	return wrapConditions(conditions)
}

// BuildGlobal builds the relaxed filter for the global call: company
// constraint if present, plus the recency floor.
func (b *FilterBuilder) BuildGlobal(entities *model.EntityExtractionResult) model.Filter {
	var conditions []model.Filter

	if entities != nil {
		if condition := cikCondition(entities); condition != nil {
			conditions = append(conditions, condition)
		}
	}
	conditions = append(conditions, model.Gte{Field: model.FieldReportYear, Value: b.RecentYearThreshold})

	return wrapConditions(conditions)
}

// Explain renders a filter for debug logs.
func (b *FilterBuilder) Explain(filter model.Filter) string {
	if filter == nil {
		return "no filters"
	}
	return filter.String()
}

func cikCondition(entities *model.EntityExtractionResult) model.Filter {
	ciks := entities.Companies.CIKsInt
	if len(ciks) == 1 {
		return model.Eq{Field: model.FieldCIK, Value: ciks[0]}
	}
	if len(ciks) > 1 {
		return model.In{Field: model.FieldCIK, Values: model.IntValues(ciks)}
	}
	return nil
}

func wrapConditions(conditions []model.Filter) model.Filter {
	switch len(conditions) {
	case 0:
		return nil
	case 1:
		return conditions[0]
	default:
		return model.And{Conditions: conditions}
	}
}

func containsString(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
