package engine

// Stats counts resolution outcomes since startup or the last rebuild.
type Stats struct {
	Processed         uint64 `json:"processed"`
	FingerprintHits   uint64 `json:"fingerprint_hits"`
	FuzzyHits         uint64 `json:"fuzzy_hits"`
	Created           uint64 `json:"created"`
	CandidatesChecked uint64 `json:"candidates_checked"`
}

// MatchRate returns the fraction of processed listings resolved to an
// existing entry, as a percentage.
func (s Stats) MatchRate() float64 {
	if s.Processed == 0 {
		return 0
	}
	return float64(s.FingerprintHits+s.FuzzyHits) / float64(s.Processed) * 100
}

// Stats returns a snapshot of the engine's counters along with current
// index sizes.
func (e *Engine) Stats() (Stats, int, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats, e.fingerprints.Len(), e.brands.Brands()
}
