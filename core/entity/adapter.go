package entity

import (
	"log/slog"

	"github.com/finraglabs/finrag/model"
)

// Adapter runs all extractors over a query and merges their output into a
// single extraction result.
type Adapter struct {
	Years     *YearExtractor
	Companies *CompanyExtractor
	Metrics   *MetricExtractor
	Sections  *SectionExtractor
	logger    *slog.Logger
}

// NewAdapter wires the extractors over the given universes.
func NewAdapter(companyUniverse *CompanyUniverse, sectionUniverse *SectionUniverse, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{
		Years:     NewYearExtractor(),
		Companies: NewCompanyExtractor(companyUniverse),
		Metrics:   NewMetricExtractor(),
		Sections:  NewSectionExtractor(sectionUniverse),
		logger:    logger,
	}
}

// Extract resolves all entity types referenced by the query.
func (a *Adapter) Extract(query string) *model.EntityExtractionResult {
	result := &model.EntityExtractionResult{Query: query}

	result.Companies = a.Companies.Extract(query)
	result.Years = a.Years.Extract(query)
	result.Metrics = a.Metrics.Extract(query)

	sections, risks := a.Sections.Extract(query)
	result.Sections = sections.Items
	result.PrimarySection = sections.Primary
	result.RiskTopics = risks.Topics

	if result.Years.Warning != "" {
		a.logger.Warn("Year extraction warning", slog.String("warning", result.Years.Warning))
	}
	a.logger.Debug("Extracted entities",
		slog.Int("companies", len(result.Companies.CIKsInt)),
		slog.Int("years", len(result.Years.Years)),
		slog.Int("metrics", len(result.Metrics.Metrics)),
		slog.Int("sections", len(result.Sections)),
		slog.Int("risk_topics", len(result.RiskTopics)),
	)

	return result
}
