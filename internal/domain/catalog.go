package domain

import (
	"time"

	"github.com/google/uuid"
)

// CatalogEntry represents a deduplicated master product record.
// The fingerprint is unique across all entries and write-once: it is
// computed at creation time and never mutated afterwards.
type CatalogEntry struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Fingerprint string    `json:"fingerprint" db:"fingerprint"`
	Brand       string    `json:"brand" db:"brand"`
	Name        string    `json:"name" db:"name"`
	Quantity    string    `json:"quantity" db:"quantity"`
	Category    string    `json:"category" db:"category"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ListingRecord is a raw per-platform observation of a product. Every
// listing points at exactly one catalog entry once resolved.
type ListingRecord struct {
	ID                uuid.UUID `json:"id" db:"id"`
	Platform          string    `json:"platform" db:"platform"`
	PlatformProductID string    `json:"platform_product_id" db:"platform_product_id"`
	Brand             string    `json:"brand" db:"brand"`
	Name              string    `json:"name" db:"name"`
	Quantity          string    `json:"quantity" db:"quantity"`
	Category          string    `json:"category" db:"category"`
	Price             float64   `json:"price" db:"price"`
	CatalogEntryID    uuid.UUID `json:"catalog_entry_id" db:"catalog_entry_id"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}
