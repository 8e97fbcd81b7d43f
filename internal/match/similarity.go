package match

import (
	"sort"
	"strings"
)

// TokenSortRatio computes a word-order-insensitive similarity score in
// [0, 100]. Both strings are tokenized, their tokens sorted and rejoined,
// and the normalized edit-distance similarity of the sorted forms is
// scaled to 0-100. Identical strings after reordering score 100.
func TokenSortRatio(a, b string) int {
	sortedA := sortTokens(a)
	sortedB := sortTokens(b)

	if sortedA == sortedB {
		return 100
	}

	maxLen := len(sortedA)
	if len(sortedB) > maxLen {
		maxLen = len(sortedB)
	}
	if maxLen == 0 {
		return 100
	}

	distance := levenshteinDistance(sortedA, sortedB)
	similarity := 1.0 - float64(distance)/float64(maxLen)
	return int(similarity*100 + 0.5)
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// levenshteinDistance computes the edit distance between two strings
// using the two-row dynamic programming formulation.
func levenshteinDistance(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	row := make([]int, len(b)+1)
	prevRow := make([]int, len(b)+1)

	for j := 0; j <= len(b); j++ {
		prevRow[j] = j
	}

	for i := 1; i <= len(a); i++ {
		row[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			row[j] = min(min(row[j-1]+1, prevRow[j]+1), prevRow[j-1]+cost)
		}
		row, prevRow = prevRow, row
	}

	return prevRow[len(b)]
}
