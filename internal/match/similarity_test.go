package match

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestTokenSortRatio(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected int
	}{
		{"identical strings", "neem face wash", "neem face wash", 100},
		{"reordered tokens", "neem face wash", "face wash neem", 100},
		{"both empty", "", "", 100},
		{"completely different", "a", "b", 0},
		{"one character drop", "tata tea gold", "tata tea gol", 92},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TokenSortRatio(tt.a, tt.b); got != tt.expected {
				t.Errorf("TokenSortRatio(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"same", "same", 0},
	}

	for _, tt := range tests {
		if got := levenshteinDistance(tt.a, tt.b); got != tt.expected {
			t.Errorf("levenshteinDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.expected)
		}
	}
}

func TestProperty_TokenSortRatio(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("score is symmetric", prop.ForAll(
		func(a, b string) bool {
			return TokenSortRatio(a, b) == TokenSortRatio(b, a)
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.Property("score stays in [0, 100]", prop.ForAll(
		func(a, b string) bool {
			score := TokenSortRatio(a, b)
			return score >= 0 && score <= 100
		},
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.Property("a string scores 100 against itself", prop.ForAll(
		func(a string) bool {
			return TokenSortRatio(a, a) == 100
		},
		gen.AnyString(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
