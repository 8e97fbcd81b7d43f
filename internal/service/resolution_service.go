package service

import (
	"context"
	"fmt"
	"time"

	"shelfmatch/internal/domain"
	"shelfmatch/internal/engine"
	"shelfmatch/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ListingInput is one raw platform listing submitted for resolution.
type ListingInput struct {
	Platform          string
	PlatformProductID string
	Brand             string
	Name              string
	Quantity          string
	Category          string
	Price             float64
}

// ResolvedListing reports where a listing ended up: the persisted
// listing row, the catalog entry it points at, and how the engine
// decided.
type ResolvedListing struct {
	ListingID uuid.UUID    `json:"listing_id"`
	CatalogID uuid.UUID    `json:"catalog_id"`
	Stage     engine.Stage `json:"stage"`
	Score     int          `json:"score"`
}

// ResolutionService defines the business operations over the
// resolution engine and the catalog.
type ResolutionService interface {
	ResolveListing(ctx context.Context, in ListingInput) (*ResolvedListing, error)
	ResolveBatch(ctx context.Context, inputs []ListingInput) ([]*ResolvedListing, error)
	GetEntry(ctx context.Context, id uuid.UUID) (*domain.CatalogEntry, error)
	ListEntries(ctx context.Context, brand string, page, pageSize int) ([]*domain.CatalogEntry, int, error)
	ListingsForEntry(ctx context.Context, catalogEntryID uuid.UUID) ([]*domain.ListingRecord, error)
	Stats() ResolutionStats
}

// ResolutionStats is the engine's counters plus index sizes.
type ResolutionStats struct {
	engine.Stats
	MatchRatePercent float64 `json:"match_rate_percent"`
	Fingerprints     int     `json:"fingerprints"`
	Brands           int     `json:"brands"`
}

type resolutionService struct {
	engine      *engine.Engine
	catalogRepo repository.CatalogRepository
	listingRepo repository.ListingRepository
	logger      *zap.Logger
}

// NewResolutionService creates a new instance of ResolutionService
func NewResolutionService(
	eng *engine.Engine,
	catalogRepo repository.CatalogRepository,
	listingRepo repository.ListingRepository,
	logger *zap.Logger,
) ResolutionService {
	return &resolutionService{
		engine:      eng,
		catalogRepo: catalogRepo,
		listingRepo: listingRepo,
		logger:      logger,
	}
}

// ResolveListing resolves one listing against the catalog and persists
// the listing row pointing at the resolved entry. A persistence failure
// leaves the record unresolved and is propagated; retrying is the
// caller's decision.
func (s *resolutionService) ResolveListing(ctx context.Context, in ListingInput) (*ResolvedListing, error) {
	resolution, err := s.engine.Resolve(ctx, engine.Input{
		Brand:    in.Brand,
		Name:     in.Name,
		Quantity: in.Quantity,
		Category: in.Category,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve listing: %w", err)
	}

	listing := &domain.ListingRecord{
		ID:                uuid.New(),
		Platform:          in.Platform,
		PlatformProductID: in.PlatformProductID,
		Brand:             in.Brand,
		Name:              in.Name,
		Quantity:          in.Quantity,
		Category:          in.Category,
		Price:             in.Price,
		CatalogEntryID:    resolution.CatalogID,
		CreatedAt:         time.Now(),
	}
	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, fmt.Errorf("failed to persist listing: %w", err)
	}

	s.logger.Debug("Listing resolved",
		zap.String("platform", in.Platform),
		zap.String("platform_product_id", in.PlatformProductID),
		zap.String("stage", string(resolution.Stage)),
		zap.String("catalog_id", resolution.CatalogID.String()),
	)

	return &ResolvedListing{
		ListingID: listing.ID,
		CatalogID: resolution.CatalogID,
		Stage:     resolution.Stage,
		Score:     resolution.Score,
	}, nil
}

// ResolveBatch resolves an ordered sequence of listings one at a time.
// Order matters: an earlier creation can become a later fingerprint
// hit. Processing stops at the first failure; already-resolved listings
// stay resolved and are returned alongside the error.
func (s *resolutionService) ResolveBatch(ctx context.Context, inputs []ListingInput) ([]*ResolvedListing, error) {
	results := make([]*ResolvedListing, 0, len(inputs))
	for i, in := range inputs {
		resolved, err := s.ResolveListing(ctx, in)
		if err != nil {
			return results, fmt.Errorf("listing %d of %d: %w", i+1, len(inputs), err)
		}
		results = append(results, resolved)
	}
	return results, nil
}

func (s *resolutionService) GetEntry(ctx context.Context, id uuid.UUID) (*domain.CatalogEntry, error) {
	return s.catalogRepo.FindByID(ctx, id)
}

func (s *resolutionService) ListEntries(ctx context.Context, brand string, page, pageSize int) ([]*domain.CatalogEntry, int, error) {
	return s.catalogRepo.List(ctx, brand, page, pageSize)
}

func (s *resolutionService) ListingsForEntry(ctx context.Context, catalogEntryID uuid.UUID) ([]*domain.ListingRecord, error) {
	return s.listingRepo.ListByCatalogEntry(ctx, catalogEntryID)
}

func (s *resolutionService) Stats() ResolutionStats {
	stats, fingerprints, brands := s.engine.Stats()
	return ResolutionStats{
		Stats:            stats,
		MatchRatePercent: stats.MatchRate(),
		Fingerprints:     fingerprints,
		Brands:           brands,
	}
}
