package match

import "shelfmatch/internal/domain"

// BrandIndex groups catalog entries by canonical brand so Stage 2 can
// fetch candidates with a single lookup instead of a full scan. Entries
// are kept in insertion order, which is the candidate order the fuzzy
// matcher's first-match tie-break relies on. Like the fingerprint index
// it is a rebuildable cache with mutation serialized by the engine.
type BrandIndex struct {
	byBrand map[string][]*domain.CatalogEntry
}

// NewBrandIndex returns an empty brand index.
func NewBrandIndex() *BrandIndex {
	return &BrandIndex{byBrand: make(map[string][]*domain.CatalogEntry)}
}

// Add appends an entry to its brand's candidate list.
func (b *BrandIndex) Add(entry *domain.CatalogEntry) {
	b.byBrand[entry.Brand] = append(b.byBrand[entry.Brand], entry)
}

// Candidates returns all entries sharing the given canonical brand, in
// insertion order. A brand with no entries yields nil.
func (b *BrandIndex) Candidates(brand string) []*domain.CatalogEntry {
	return b.byBrand[brand]
}

// Brands returns the number of distinct brands indexed.
func (b *BrandIndex) Brands() int {
	return len(b.byBrand)
}
