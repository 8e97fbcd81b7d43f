package match

import "shelfmatch/internal/domain"

// Thresholds holds the tunable fuzzy-matching score boundaries.
//
// Scores at or above AmbiguousCeil accept a candidate whenever the
// quantities are compatible. Scores inside the ambiguous band
// [AmbiguousFloor, AmbiguousCeil) are only trusted when both quantities
// are present and canonically identical. Scores below AmbiguousFloor
// never match. MatchThreshold is the tuned operating point and gates
// any score above the band should the band ever be reconfigured below
// it.
type Thresholds struct {
	MatchThreshold int
	AmbiguousFloor int
	AmbiguousCeil  int
}

// DefaultThresholds returns the boundaries tuned against labeled
// product pairs: threshold 87 with an 85-90 ambiguous band.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MatchThreshold: 87,
		AmbiguousFloor: 85,
		AmbiguousCeil:  90,
	}
}

// Result is a successful fuzzy match: the candidate entry and the
// token-sort similarity score that accepted it.
type Result struct {
	Entry *domain.CatalogEntry
	Score int
}

// FuzzyMatcher finds, among same-brand catalog entries, a candidate
// whose canonical name is similar enough and whose quantity is
// compatible with the input.
type FuzzyMatcher struct {
	thresholds Thresholds
}

// NewFuzzyMatcher returns a matcher using the given thresholds.
func NewFuzzyMatcher(t Thresholds) *FuzzyMatcher {
	return &FuzzyMatcher{thresholds: t}
}

// Match scans candidates in list order and returns the first one whose
// token-sort score and quantity pass the acceptance rule. It is a
// first-match tie-break, not best-of-all: later candidates with higher
// scores are never preferred over an earlier acceptable one. An empty
// candidate list simply yields no match.
func (m *FuzzyMatcher) Match(name, quantity string, candidates []*domain.CatalogEntry) (Result, bool) {
	for _, candidate := range candidates {
		score := TokenSortRatio(name, candidate.Name)
		if m.accept(score, quantity, candidate.Quantity) {
			return Result{Entry: candidate, Score: score}, true
		}
	}
	return Result{}, false
}

func (m *FuzzyMatcher) accept(score int, quantity, candidateQuantity string) bool {
	if score < m.thresholds.AmbiguousFloor {
		return false
	}
	if score < m.thresholds.AmbiguousCeil {
		// inside the ambiguous band only an exact quantity agreement
		// is trusted
		return quantitiesEqual(quantity, candidateQuantity)
	}
	if score < m.thresholds.MatchThreshold {
		return false
	}
	return QuantitiesCompatible(quantity, candidateQuantity)
}

// QuantitiesCompatible reports whether two canonical quantity tokens do
// not rule each other out. An unknown (empty) quantity never
// disqualifies a match; two known quantities must be canonically equal,
// which also keeps a multipack from matching its single-unit form.
func QuantitiesCompatible(a, b string) bool {
	if a == "" || b == "" {
		return true
	}
	return a == b
}

func quantitiesEqual(a, b string) bool {
	return a != "" && a == b
}
