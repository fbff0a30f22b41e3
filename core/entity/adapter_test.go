package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapterExtract(t *testing.T) {
	adapter := NewAdapter(testCompanyUniverse(), testSectionUniverse(), nil)

	t.Run("Extract all entity types from one query", func(t *testing.T) {
		result := adapter.Extract("What does Apple's 2022 md&a say about revenue and liquidity risks?")
		require.NotNil(t, result)

		assert.Equal(t, []int{320193}, result.Companies.CIKsInt)
		assert.Equal(t, []int{2022}, result.Years.Years)
		assert.Contains(t, result.Metrics.Metrics, "income_stmt_Revenue")
		assert.Contains(t, result.Sections, "ITEM_7")
		assert.Contains(t, result.Sections, "ITEM_1A")
		assert.Equal(t, "ITEM_7", result.PrimarySection)
		assert.Contains(t, result.RiskTopics, "liquidity_credit")
		assert.False(t, result.IsEmpty())
	})

	t.Run("Empty result for query without any entities", func(t *testing.T) {
		result := adapter.Extract("hello there friend")
		assert.True(t, result.IsEmpty())
	})

	t.Run("Query text is preserved", func(t *testing.T) {
		result := adapter.Extract("MSFT net income 2021")
		assert.Equal(t, "MSFT net income 2021", result.Query)
		assert.Equal(t, []int{789019}, result.Companies.CIKsInt)
		assert.Equal(t, []string{"income_stmt_Net Income"}, result.Metrics.Metrics)
		assert.Equal(t, []int{2021}, result.Years.Years)
	})
}
