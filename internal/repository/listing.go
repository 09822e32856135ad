package repository

import (
	"context"

	"travelapp/internal/domain"
)

// ListingRepository defines the persistence operations for listings.
type ListingRepository interface {
	// Create persists a new listing.
	Create(ctx context.Context, listing *domain.Listing) error

	// GetByID retrieves a listing by ID.
	GetByID(ctx context.Context, id string) (*domain.Listing, error)

	// GetAll retrieves all listings, newest first.
	GetAll(ctx context.Context) ([]*domain.Listing, error)

	// Update persists changes to an existing listing.
	Update(ctx context.Context, listing *domain.Listing) error

	// Delete removes a listing.
	Delete(ctx context.Context, id string) error
}
