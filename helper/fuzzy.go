package helper

import "strings"

// LevenshteinDistance computes the standard edit distance between two strings.
func LevenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)

	if len(r1) < len(r2) {
		r1, r2 = r2, r1
	}
	if len(r2) == 0 {
		return len(r1)
	}

	previousRow := make([]int, len(r2)+1)
	currentRow := make([]int, len(r2)+1)
	for i := range previousRow {
		previousRow[i] = i
	}

	for i, c1 := range r1 {
		currentRow[0] = i + 1
		for j, c2 := range r2 {
			insertions := previousRow[j+1] + 1
			deletions := currentRow[j] + 1
			substitutions := previousRow[j]
			if c1 != c2 {
				substitutions++
			}
			currentRow[j+1] = min(insertions, deletions, substitutions)
		}
		copy(previousRow, currentRow)
	}

	return previousRow[len(r2)]
}

// Similarity returns a normalized similarity in [0, 1] based on the
// Levenshtein distance over the longer string.
func Similarity(s1, s2 string) float64 {
	maxLen := max(len([]rune(s1)), len([]rune(s2)))
	if maxLen == 0 {
		return 0.0
	}
	distance := LevenshteinDistance(strings.ToLower(s1), strings.ToLower(s2))
	return 1.0 - float64(distance)/float64(maxLen)
}

// FuzzyMatch finds the best matching candidate for word. It returns the best
// match and its similarity, or ("", 0) if no candidate reaches the threshold.
func FuzzyMatch(word string, candidates []string, threshold float64) (string, float64) {
	bestMatch := ""
	bestScore := 0.0

	for _, candidate := range candidates {
		score := Similarity(word, candidate)
		if score > bestScore {
			bestScore = score
			bestMatch = candidate
		}
	}

	if bestScore >= threshold {
		return bestMatch, bestScore
	}
	return "", 0.0
}
