package postgres

import (
	"context"
	"database/sql"
	"errors"

	"travelapp/internal/domain"
	"travelapp/internal/repository"
)

// ListingRepository implements repository.ListingRepository using PostgreSQL.
type ListingRepository struct {
	db *sql.DB
}

// NewListingRepository creates a new ListingRepository.
func NewListingRepository(db *sql.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

const listingColumns = `id, title, description, price_per_night, available_from, available_to, created_at, updated_at`

// Create adds a new listing.
func (r *ListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	query := `
		INSERT INTO listings (id, title, description, price_per_night, available_from, available_to, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		listing.ID, listing.Title, listing.Description, listing.PricePerNight,
		listing.AvailableFrom, listing.AvailableTo, listing.CreatedAt, listing.UpdatedAt)
	return err
}

// GetByID retrieves a listing by ID.
func (r *ListingRepository) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`

	var listing domain.Listing
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&listing.ID, &listing.Title, &listing.Description, &listing.PricePerNight,
		&listing.AvailableFrom, &listing.AvailableTo, &listing.CreatedAt, &listing.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// GetAll retrieves all listings, newest first.
func (r *ListingRepository) GetAll(ctx context.Context) ([]*domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []*domain.Listing
	for rows.Next() {
		var listing domain.Listing
		if err := rows.Scan(
			&listing.ID, &listing.Title, &listing.Description, &listing.PricePerNight,
			&listing.AvailableFrom, &listing.AvailableTo, &listing.CreatedAt, &listing.UpdatedAt); err != nil {
			return nil, err
		}
		listings = append(listings, &listing)
	}
	return listings, rows.Err()
}

// Update persists changes to an existing listing.
func (r *ListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	query := `
		UPDATE listings
		SET title = $1, description = $2, price_per_night = $3, available_from = $4, available_to = $5, updated_at = $6
		WHERE id = $7
	`
	result, err := r.db.ExecContext(ctx, query,
		listing.Title, listing.Description, listing.PricePerNight,
		listing.AvailableFrom, listing.AvailableTo, listing.UpdatedAt, listing.ID)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// Delete removes a listing.
func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}
