package postgres

import (
	"context"
	"database/sql"
	"errors"

	"travelapp/internal/domain"
	"travelapp/internal/repository"
)

// BookingRepository implements repository.BookingRepository using PostgreSQL.
type BookingRepository struct {
	db *sql.DB
}

// NewBookingRepository creates a new BookingRepository.
func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `id, listing_id, user_id, start_date, end_date, created_at, updated_at`

// Create adds a new booking.
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (id, listing_id, user_id, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		booking.ID, booking.ListingID, booking.UserID,
		booking.StartDate, booking.EndDate, booking.CreatedAt, booking.UpdatedAt)
	return err
}

// GetOwnedByUser retrieves a booking by ID only when owned by the user.
func (r *BookingRepository) GetOwnedByUser(ctx context.Context, id, userID string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 AND user_id = $2`

	var booking domain.Booking
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&booking.ID, &booking.ListingID, &booking.UserID,
		&booking.StartDate, &booking.EndDate, &booking.CreatedAt, &booking.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// GetByUser retrieves all bookings of a user, newest first.
func (r *BookingRepository) GetByUser(ctx context.Context, userID string) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		var booking domain.Booking
		if err := rows.Scan(
			&booking.ID, &booking.ListingID, &booking.UserID,
			&booking.StartDate, &booking.EndDate, &booking.CreatedAt, &booking.UpdatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, &booking)
	}
	return bookings, rows.Err()
}
