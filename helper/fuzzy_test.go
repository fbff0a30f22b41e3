package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshteinDistance(t *testing.T) {
	t.Run("Identical strings", func(t *testing.T) {
		assert.Equal(t, 0, LevenshteinDistance("revenue", "revenue"), "Expected zero distance for identical strings")
	})

	t.Run("Empty strings", func(t *testing.T) {
		assert.Equal(t, 0, LevenshteinDistance("", ""), "Expected zero distance for two empty strings")
		assert.Equal(t, 5, LevenshteinDistance("apple", ""), "Expected distance to equal length against empty string")
		assert.Equal(t, 5, LevenshteinDistance("", "apple"), "Expected distance to be symmetric")
	})

	t.Run("Single edit", func(t *testing.T) {
		assert.Equal(t, 1, LevenshteinDistance("revenue", "revenu"), "Expected one deletion")
		assert.Equal(t, 1, LevenshteinDistance("profit", "prifit"), "Expected one substitution")
		assert.Equal(t, 1, LevenshteinDistance("eps", "epss"), "Expected one insertion")
	})

	t.Run("Multiple edits", func(t *testing.T) {
		assert.Equal(t, 3, LevenshteinDistance("kitten", "sitting"), "Expected classic kitten/sitting distance")
	})
}

func TestSimilarity(t *testing.T) {
	t.Run("Identical strings score 1", func(t *testing.T) {
		assert.InDelta(t, 1.0, Similarity("nvidia", "nvidia"), 1e-9, "Expected perfect similarity")
	})

	t.Run("Case insensitive", func(t *testing.T) {
		assert.InDelta(t, 1.0, Similarity("NVIDIA", "nvidia"), 1e-9, "Expected case to be ignored")
	})

	t.Run("Empty strings score 0", func(t *testing.T) {
		assert.Equal(t, 0.0, Similarity("", ""), "Expected zero similarity for empty input")
	})

	t.Run("Typo scores high", func(t *testing.T) {
		score := Similarity("microsft", "microsoft")
		assert.Greater(t, score, 0.85, "Expected one-character typo to score above 0.85")
	})

	t.Run("Unrelated strings score low", func(t *testing.T) {
		score := Similarity("weather", "revenue")
		assert.Less(t, score, 0.5, "Expected unrelated strings to score below 0.5")
	})
}

func TestFuzzyMatch(t *testing.T) {
	candidates := []string{"nvidia", "apple", "microsoft", "amazon"}

	t.Run("Finds best match above threshold", func(t *testing.T) {
		match, score := FuzzyMatch("microsft", candidates, 0.85)
		assert.Equal(t, "microsoft", match, "Expected typo to resolve to microsoft")
		assert.GreaterOrEqual(t, score, 0.85, "Expected score at or above threshold")
	})

	t.Run("Returns empty below threshold", func(t *testing.T) {
		match, score := FuzzyMatch("tesla", candidates, 0.85)
		assert.Empty(t, match, "Expected no match for unrelated word")
		assert.Equal(t, 0.0, score, "Expected zero score when below threshold")
	})

	t.Run("Empty candidate list", func(t *testing.T) {
		match, score := FuzzyMatch("nvidia", nil, 0.5)
		assert.Empty(t, match, "Expected no match with no candidates")
		assert.Equal(t, 0.0, score, "Expected zero score with no candidates")
	})
}
