// Package normalize turns raw brand, name, and quantity strings into
// canonical comparable forms. All functions are deterministic and never
// fail: dirty input degrades to an empty string or a sentinel value so
// the resolution pipeline is never blocked on bad data.
package normalize

import (
	"regexp"
	"strings"
)

var (
	separatorPattern  = regexp.MustCompile(`[_\-/\\|]`)
	punctuationRe     = regexp.MustCompile(`[^a-z0-9\s.]`)
	whitespacePattern = regexp.MustCompile(`\s+`)

	// quantity fragments embedded in product names, e.g. "tea gold 500g"
	embeddedQuantityRe = regexp.MustCompile(`\b\d+\.?\d*\s*(kg|kgs|kilograms?|g|gm|gms|grams?|l|ltr|litres?|liters?|ml|millilitres?|milliliters?)\b`)
	bareUnitRe         = regexp.MustCompile(`\b(kg|kgs|g|gm|gms|gram|grams|l|ltr|litre|liter|ml|pc|pcs|pack)\b`)
	packMultiplierRe   = regexp.MustCompile(`\s*[x*]\s*\d+\b`)
)

// Normalizer canonicalizes brand, name, and quantity strings using
// immutable alias and stop-word tables loaded at construction.
type Normalizer struct {
	aliases   map[string]string
	stopWords map[string]struct{}
}

// New returns a Normalizer with the default alias and stop-word tables.
func New() *Normalizer {
	return NewWithTables(defaultBrandAliases, defaultStopWords)
}

// NewWithTables returns a Normalizer over custom tables. The maps are
// copied so callers cannot mutate them after construction.
func NewWithTables(aliases map[string]string, stopWords []string) *Normalizer {
	n := &Normalizer{
		aliases:   make(map[string]string, len(aliases)),
		stopWords: make(map[string]struct{}, len(stopWords)),
	}
	for k, v := range aliases {
		n.aliases[strings.ToLower(k)] = strings.ToLower(v)
	}
	for _, w := range stopWords {
		n.stopWords[strings.ToLower(w)] = struct{}{}
	}
	return n
}

// CleanText lowercases, strips punctuation to single spaces, collapses
// runs of whitespace, and trims. Dots are kept so decimal quantities
// survive cleaning. Empty input yields an empty string.
func (n *Normalizer) CleanText(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	s = separatorPattern.ReplaceAllString(s, " ")
	s = punctuationRe.ReplaceAllString(s, " ")
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Brand canonicalizes a brand name: cleans the text, resolves it against
// the alias table (exact match first, then alias-prefix match), and
// strips stop words from unresolved brands. Missing or blank brands map
// to the BrandUnknown sentinel.
func (n *Normalizer) Brand(s string) string {
	clean := n.CleanText(s)
	if clean == "" {
		return BrandUnknown
	}
	if canonical, ok := n.aliases[clean]; ok {
		return canonical
	}
	for alias, canonical := range n.aliases {
		if strings.HasPrefix(clean, alias+" ") {
			return canonical
		}
	}
	clean = n.StripStopWords(clean)
	if clean == "" {
		return BrandUnknown
	}
	return clean
}

// Name canonicalizes a product name for matching: cleans the text,
// removes embedded quantity fragments and pack multipliers, strips stop
// words, and drops standalone numeric tokens. The result may be empty.
func (n *Normalizer) Name(s string) string {
	clean := n.CleanText(s)
	if clean == "" {
		return ""
	}
	clean = embeddedQuantityRe.ReplaceAllString(clean, " ")
	clean = packMultiplierRe.ReplaceAllString(clean, " ")
	clean = bareUnitRe.ReplaceAllString(clean, " ")
	clean = n.StripStopWords(clean)

	words := strings.Fields(clean)
	kept := words[:0]
	for _, w := range words {
		if isNumericToken(w) {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

// StripStopWords drops stop-word tokens and rejoins with single spaces.
// If every token is a stop word the result is an empty string.
func (n *Normalizer) StripStopWords(s string) string {
	words := strings.Fields(s)
	kept := words[:0]
	for _, w := range words {
		if _, stop := n.stopWords[w]; stop {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

func isNumericToken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}
	return true
}
