package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricExtractor(t *testing.T) {
	extractor := NewMetricExtractor()

	t.Run("Extract simple metric", func(t *testing.T) {
		matches := extractor.Extract("What was Apple's revenue in 2022?")
		assert.Equal(t, []string{"income_stmt_Revenue"}, matches.Metrics)
	})

	t.Run("Longest phrase wins over contained phrase", func(t *testing.T) {
		matches := extractor.Extract("Show me the operating cash flow for 2021")
		assert.Equal(t, []string{"cash_flow_Operating Cash Flow"}, matches.Metrics,
			"Expected operating cash flow to not also match cash flow")
	})

	t.Run("Net loss maps to net income", func(t *testing.T) {
		matches := extractor.Extract("How large was the net loss?")
		assert.Equal(t, []string{"income_stmt_Net Income"}, matches.Metrics)
	})

	t.Run("Abbreviations are recognized", func(t *testing.T) {
		matches := extractor.Extract("Compare cogs and sg&a trends")
		assert.Equal(t, []string{"income_stmt_Cost of Revenue", "income_stmt_Operating Expenses"}, matches.Metrics)
	})

	t.Run("Multiple metrics are deduplicated and sorted", func(t *testing.T) {
		matches := extractor.Extract("revenue, total revenue and net income")
		assert.Equal(t, []string{"income_stmt_Net Income", "income_stmt_Revenue"}, matches.Metrics)
	})

	t.Run("Fuzzy match catches typos", func(t *testing.T) {
		matches := extractor.Extract("What was the revenu in 2020?")
		assert.Equal(t, []string{"income_stmt_Revenue"}, matches.Metrics)
	})

	t.Run("Short words and stopwords are not fuzzy matched", func(t *testing.T) {
		matches := extractor.Extract("How was the tea?")
		assert.Empty(t, matches.Metrics)
	})

	t.Run("Words with digits are not fuzzy matched", func(t *testing.T) {
		matches := extractor.Extract("Form 10k405 details")
		assert.Empty(t, matches.Metrics)
	})

	t.Run("No metrics found", func(t *testing.T) {
		matches := extractor.Extract("Who sits on the board of directors?")
		assert.False(t, matches.HasAny())
	})
}
