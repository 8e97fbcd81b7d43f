package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shelfmatch/internal/domain"
	"shelfmatch/internal/match"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrEntryNotFound = errors.New("catalog entry not found")
)

// uniqueViolation is the Postgres SQLSTATE for unique constraint errors
const uniqueViolation = "23505"

// CatalogRepository defines the interface for master catalog data access.
// It deliberately carries the method set the resolution engine expects
// from its Catalog collaborator.
type CatalogRepository interface {
	CreateEntry(ctx context.Context, entry *domain.CatalogEntry) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.CatalogEntry, error)
	FindByFingerprint(ctx context.Context, fingerprint string) (*domain.CatalogEntry, error)
	AllEntries(ctx context.Context) ([]*domain.CatalogEntry, error)
	EntriesForBrand(ctx context.Context, brand string) ([]*domain.CatalogEntry, error)
	List(ctx context.Context, brand string, page, pageSize int) ([]*domain.CatalogEntry, int, error)
	TouchUpdatedAt(ctx context.Context, id uuid.UUID) error
}

type catalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new instance of CatalogRepository
func NewCatalogRepository(db *sql.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

// CreateEntry inserts a new catalog entry. A unique violation on the
// fingerprint column is reported as match.ErrDuplicateFingerprint so the
// engine can distinguish the index invariant from ordinary store failures.
func (r *catalogRepository) CreateEntry(ctx context.Context, entry *domain.CatalogEntry) error {
	query := `
		INSERT INTO catalog_entries (id, fingerprint, brand, name, quantity, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.Fingerprint,
		entry.Brand,
		entry.Name,
		entry.Quantity,
		entry.Category,
		entry.CreatedAt,
		entry.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("fingerprint %q: %w", entry.Fingerprint, match.ErrDuplicateFingerprint)
		}
		return fmt.Errorf("failed to create catalog entry: %w", err)
	}

	return nil
}

// FindByID retrieves a catalog entry by ID
func (r *catalogRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.CatalogEntry, error) {
	query := `
		SELECT id, fingerprint, brand, name, quantity, category, created_at, updated_at
		FROM catalog_entries
		WHERE id = $1
	`

	entry := &domain.CatalogEntry{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&entry.ID,
		&entry.Fingerprint,
		&entry.Brand,
		&entry.Name,
		&entry.Quantity,
		&entry.Category,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to find catalog entry by ID: %w", err)
	}

	return entry, nil
}

// FindByFingerprint retrieves a catalog entry by its exact fingerprint
func (r *catalogRepository) FindByFingerprint(ctx context.Context, fingerprint string) (*domain.CatalogEntry, error) {
	query := `
		SELECT id, fingerprint, brand, name, quantity, category, created_at, updated_at
		FROM catalog_entries
		WHERE fingerprint = $1
	`

	entry := &domain.CatalogEntry{}
	err := r.db.QueryRowContext(ctx, query, fingerprint).Scan(
		&entry.ID,
		&entry.Fingerprint,
		&entry.Brand,
		&entry.Name,
		&entry.Quantity,
		&entry.Category,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to find catalog entry by fingerprint: %w", err)
	}

	return entry, nil
}

// AllEntries streams every catalog entry, ordered by creation time so
// rebuilt brand indexes preserve the original candidate order.
func (r *catalogRepository) AllEntries(ctx context.Context) ([]*domain.CatalogEntry, error) {
	query := `
		SELECT id, fingerprint, brand, name, quantity, category, created_at, updated_at
		FROM catalog_entries
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// EntriesForBrand returns all entries with the given canonical brand,
// in creation order.
func (r *catalogRepository) EntriesForBrand(ctx context.Context, brand string) ([]*domain.CatalogEntry, error) {
	query := `
		SELECT id, fingerprint, brand, name, quantity, category, created_at, updated_at
		FROM catalog_entries
		WHERE brand = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, brand)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries for brand: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// List retrieves catalog entries with optional brand filtering and pagination
func (r *catalogRepository) List(ctx context.Context, brand string, page, pageSize int) ([]*domain.CatalogEntry, int, error) {
	whereClause := ""
	args := []interface{}{}
	argIndex := 1

	if brand != "" {
		whereClause = fmt.Sprintf("WHERE brand = $%d", argIndex)
		args = append(args, brand)
		argIndex++
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM catalog_entries %s", whereClause)
	var total int
	err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count catalog entries: %w", err)
	}

	offset := (page - 1) * pageSize

	query := fmt.Sprintf(`
		SELECT id, fingerprint, brand, name, quantity, category, created_at, updated_at
		FROM catalog_entries
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIndex, argIndex+1)

	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list catalog entries: %w", err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// TouchUpdatedAt bumps an entry's updated_at timestamp without changing
// anything else. The fingerprint is write-once and never mutated here.
func (r *catalogRepository) TouchUpdatedAt(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE catalog_entries SET updated_at = NOW() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to touch catalog entry: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

func scanEntries(rows *sql.Rows) ([]*domain.CatalogEntry, error) {
	entries := []*domain.CatalogEntry{}
	for rows.Next() {
		entry := &domain.CatalogEntry{}
		err := rows.Scan(
			&entry.ID,
			&entry.Fingerprint,
			&entry.Brand,
			&entry.Name,
			&entry.Quantity,
			&entry.Category,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan catalog entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating catalog entries: %w", err)
	}

	return entries, nil
}
