package repository

import (
	"context"

	"travelapp/internal/domain"
)

// BookingRepository defines the persistence operations for bookings.
type BookingRepository interface {
	// Create persists a new booking.
	Create(ctx context.Context, booking *domain.Booking) error

	// GetOwnedByUser retrieves a booking by ID only if it belongs to the
	// given user. Returns ErrNotFound otherwise.
	GetOwnedByUser(ctx context.Context, id, userID string) (*domain.Booking, error)

	// GetByUser retrieves all bookings of a user, newest first.
	GetByUser(ctx context.Context, userID string) ([]*domain.Booking, error)
}
