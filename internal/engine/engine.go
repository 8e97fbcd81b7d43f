// Package engine orchestrates the two-stage resolution of incoming
// listings against the master catalog: exact fingerprint lookup,
// brand-scoped fuzzy matching, and find-or-create catalog mutation.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"shelfmatch/internal/domain"
	"shelfmatch/internal/match"
	"shelfmatch/internal/normalize"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Stage identifies which step of the pipeline resolved a listing.
type Stage string

const (
	StageFingerprint Stage = "fingerprint"
	StageFuzzy       Stage = "fuzzy"
	StageCreated     Stage = "created"
)

// Catalog is the persistence collaborator owning catalog entry
// lifecycle. CreateEntry must reject a fingerprint that already exists
// with an error wrapping match.ErrDuplicateFingerprint; any other
// failure is a persistence error and is propagated untouched. Retry
// policy belongs to the implementation, not to the engine.
type Catalog interface {
	AllEntries(ctx context.Context) ([]*domain.CatalogEntry, error)
	CreateEntry(ctx context.Context, entry *domain.CatalogEntry) error
	TouchUpdatedAt(ctx context.Context, id uuid.UUID) error
}

// Input is one raw listing to resolve.
type Input struct {
	Brand    string
	Name     string
	Quantity string
	Category string
}

// Resolution is the outcome of resolving one listing: the catalog entry
// it now points at, the stage that decided it, and the similarity score
// for fuzzy resolutions (100 for fingerprint hits, 0 for creations).
type Resolution struct {
	CatalogID uuid.UUID
	Stage     Stage
	Score     int
}

// Engine resolves listings against in-memory fingerprint and brand
// indexes derived from catalog state. A single mutex serializes every
// resolution so two concurrent misses on the same fingerprint can never
// both create an entry.
type Engine struct {
	catalog Catalog
	norm    *normalize.Normalizer
	fuzzy   *match.FuzzyMatcher
	logger  *zap.Logger

	mu           sync.Mutex
	fingerprints *match.Index
	brands       *match.BrandIndex
	stats        Stats
}

// New creates an engine over the given catalog. Call Rebuild before the
// first resolution to load the indexes from catalog state.
func New(catalog Catalog, norm *normalize.Normalizer, fuzzy *match.FuzzyMatcher, logger *zap.Logger) *Engine {
	return &Engine{
		catalog:      catalog,
		norm:         norm,
		fuzzy:        fuzzy,
		logger:       logger,
		fingerprints: match.NewIndex(),
		brands:       match.NewBrandIndex(),
	}
}

// Rebuild discards the indexes and reloads them from the catalog. The
// indexes are derived caches; the catalog remains the source of truth.
func (e *Engine) Rebuild(ctx context.Context) error {
	entries, err := e.catalog.AllEntries(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog entries: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.fingerprints = match.NewIndex()
	e.brands = match.NewBrandIndex()
	for _, entry := range entries {
		if err := e.fingerprints.Insert(entry.Fingerprint, entry.ID); err != nil {
			return fmt.Errorf("catalog entry %s: %w", entry.ID, err)
		}
		e.brands.Add(entry)
	}

	e.logger.Info("Resolution indexes rebuilt",
		zap.Int("fingerprints", e.fingerprints.Len()),
		zap.Int("brands", e.brands.Brands()),
	)
	return nil
}

// Resolve runs one listing through the pipeline:
// fingerprint lookup, then brand-scoped fuzzy matching, then creation
// of a new catalog entry. Resolution is idempotent at the fingerprint
// level: re-resolving the same canonical record after its creation
// always returns the same id via the fingerprint stage.
func (e *Engine) Resolve(ctx context.Context, in Input) (Resolution, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stats.Processed++

	brand := e.norm.Brand(in.Brand)
	name := e.norm.Name(in.Name)
	quantity := e.norm.Quantity(in.Quantity)
	fingerprint := match.Fingerprint(e.norm, in.Brand, in.Name, in.Quantity)

	// Stage 1: exact fingerprint lookup, no catalog mutation.
	if id, ok := e.fingerprints.Lookup(fingerprint); ok {
		e.stats.FingerprintHits++
		return Resolution{CatalogID: id, Stage: StageFingerprint, Score: 100}, nil
	}

	// Stage 2: fuzzy match among same-brand candidates.
	candidates := e.brands.Candidates(brand)
	e.stats.CandidatesChecked += uint64(len(candidates))
	if result, ok := e.fuzzy.Match(name, quantity, candidates); ok {
		if err := e.catalog.TouchUpdatedAt(ctx, result.Entry.ID); err != nil {
			return Resolution{}, fmt.Errorf("failed to refresh matched entry: %w", err)
		}
		e.stats.FuzzyHits++
		e.logger.Debug("Fuzzy match accepted",
			zap.String("brand", brand),
			zap.String("name", name),
			zap.Int("score", result.Score),
			zap.String("catalog_id", result.Entry.ID.String()),
		)
		return Resolution{CatalogID: result.Entry.ID, Stage: StageFuzzy, Score: result.Score}, nil
	}

	// No match: register a new master entry.
	now := time.Now()
	entry := &domain.CatalogEntry{
		ID:          uuid.New(),
		Fingerprint: fingerprint,
		Brand:       brand,
		Name:        name,
		Quantity:    quantity,
		Category:    e.norm.CleanText(in.Category),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := e.catalog.CreateEntry(ctx, entry); err != nil {
		return Resolution{}, fmt.Errorf("failed to create catalog entry: %w", err)
	}
	if err := e.fingerprints.Insert(fingerprint, entry.ID); err != nil {
		// The store accepted a fingerprint the index already holds: a
		// defect signal, surfaced rather than silently picking a side.
		return Resolution{}, fmt.Errorf("index insert after create: %w", err)
	}
	e.brands.Add(entry)
	e.stats.Created++

	return Resolution{CatalogID: entry.ID, Stage: StageCreated}, nil
}
