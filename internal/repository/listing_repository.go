package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shelfmatch/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrListingNotFound = errors.New("listing not found")
)

// ListingRepository persists raw per-platform listings and their link
// to the catalog entry they resolved to. Rows are cascade-deleted with
// their entry, preserving referential integrity.
type ListingRepository interface {
	Create(ctx context.Context, listing *domain.ListingRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.ListingRecord, error)
	ListByCatalogEntry(ctx context.Context, catalogEntryID uuid.UUID) ([]*domain.ListingRecord, error)
}

type listingRepository struct {
	db *sql.DB
}

// NewListingRepository creates a new instance of ListingRepository
func NewListingRepository(db *sql.DB) ListingRepository {
	return &listingRepository{db: db}
}

// Create inserts a new listing row pointing at its resolved catalog entry
func (r *listingRepository) Create(ctx context.Context, listing *domain.ListingRecord) error {
	query := `
		INSERT INTO listings (id, platform, platform_product_id, brand, name, quantity, category, price, catalog_entry_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		listing.ID,
		listing.Platform,
		listing.PlatformProductID,
		listing.Brand,
		listing.Name,
		listing.Quantity,
		listing.Category,
		listing.Price,
		listing.CatalogEntryID,
		listing.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}

	return nil
}

// FindByID retrieves a listing by ID
func (r *listingRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ListingRecord, error) {
	query := `
		SELECT id, platform, platform_product_id, brand, name, quantity, category, price, catalog_entry_id, created_at
		FROM listings
		WHERE id = $1
	`

	listing := &domain.ListingRecord{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&listing.ID,
		&listing.Platform,
		&listing.PlatformProductID,
		&listing.Brand,
		&listing.Name,
		&listing.Quantity,
		&listing.Category,
		&listing.Price,
		&listing.CatalogEntryID,
		&listing.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to find listing by ID: %w", err)
	}

	return listing, nil
}

// ListByCatalogEntry returns every listing resolved to a catalog entry
func (r *listingRepository) ListByCatalogEntry(ctx context.Context, catalogEntryID uuid.UUID) ([]*domain.ListingRecord, error) {
	query := `
		SELECT id, platform, platform_product_id, brand, name, quantity, category, price, catalog_entry_id, created_at
		FROM listings
		WHERE catalog_entry_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, catalogEntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	defer rows.Close()

	listings := []*domain.ListingRecord{}
	for rows.Next() {
		listing := &domain.ListingRecord{}
		err := rows.Scan(
			&listing.ID,
			&listing.Platform,
			&listing.PlatformProductID,
			&listing.Brand,
			&listing.Name,
			&listing.Quantity,
			&listing.Category,
			&listing.Price,
			&listing.CatalogEntryID,
			&listing.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		listings = append(listings, listing)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating listings: %w", err)
	}

	return listings, nil
}
