// Package match implements the two matching stages of the resolution
// engine: exact fingerprint lookup and brand-scoped fuzzy similarity.
package match

import (
	"errors"
	"sort"
	"strings"

	"shelfmatch/internal/normalize"

	"github.com/google/uuid"
)

// ErrDuplicateFingerprint signals an index invariant violation: an
// attempt to map an existing fingerprint to a different entry id.
// Never expected under correct sequencing.
var ErrDuplicateFingerprint = errors.New("duplicate fingerprint")

// Fingerprint derives the canonical exact-match key for a raw
// brand/name/quantity triple. The union of canonical brand tokens, stop
// word stripped name tokens, and the non-empty canonical quantity token
// is deduplicated, sorted lexicographically, and joined with
// underscores. Token order in the input never affects the output.
func Fingerprint(n *normalize.Normalizer, brand, name, quantity string) string {
	seen := make(map[string]struct{})
	tokens := make([]string, 0, 8)

	add := func(tok string) {
		if tok == "" {
			return
		}
		if _, dup := seen[tok]; dup {
			return
		}
		seen[tok] = struct{}{}
		tokens = append(tokens, tok)
	}

	for _, tok := range strings.Fields(n.Brand(brand)) {
		add(tok)
	}
	for _, tok := range strings.Fields(n.Name(name)) {
		add(tok)
	}
	add(n.Quantity(quantity))

	sort.Strings(tokens)
	return strings.Join(tokens, "_")
}

// Index maps fingerprints to catalog entry ids. It is a derived,
// rebuildable cache over catalog state, not a source of truth, and is
// not safe for concurrent mutation: the resolution engine serializes
// access to it.
type Index struct {
	entries map[string]uuid.UUID
}

// NewIndex returns an empty fingerprint index.
func NewIndex() *Index {
	return &Index{entries: make(map[string]uuid.UUID)}
}

// Lookup returns the entry id for an exact fingerprint, if present.
func (idx *Index) Lookup(fingerprint string) (uuid.UUID, bool) {
	id, ok := idx.entries[fingerprint]
	return id, ok
}

// Insert records a fingerprint -> id mapping. Re-inserting the same
// pair is a no-op; mapping an existing fingerprint to a different id
// fails with ErrDuplicateFingerprint rather than silently overwriting.
func (idx *Index) Insert(fingerprint string, id uuid.UUID) error {
	if existing, ok := idx.entries[fingerprint]; ok {
		if existing == id {
			return nil
		}
		return ErrDuplicateFingerprint
	}
	idx.entries[fingerprint] = id
	return nil
}

// Len returns the number of indexed fingerprints.
func (idx *Index) Len() int {
	return len(idx.entries)
}
