package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"travelapp/internal/domain"
	"travelapp/internal/repository"
)

// BookingService handles bookings with ownership scoping.
type BookingService struct {
	bookingRepo repository.BookingRepository
	listingRepo repository.ListingRepository
}

// NewBookingService creates a new BookingService.
func NewBookingService(bookingRepo repository.BookingRepository, listingRepo repository.ListingRepository) *BookingService {
	return &BookingService{bookingRepo: bookingRepo, listingRepo: listingRepo}
}

// CreateBookingRequest contains the parameters for creating a booking.
type CreateBookingRequest struct {
	UserID    string
	ListingID string
	StartDate time.Time
	EndDate   time.Time
}

// CreateBooking creates a booking for the caller against an existing listing.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	if req.ListingID == "" {
		return nil, ErrInvalidListingID
	}
	if !req.EndDate.After(req.StartDate) {
		return nil, ErrInvalidDateRange
	}

	// The listing must exist; its dates are not enforced here, matching the
	// rest of the platform's loose availability model.
	if _, err := s.listingRepo.GetByID(ctx, req.ListingID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	booking := &domain.Booking{
		ID:        uuid.New().String(),
		ListingID: req.ListingID,
		UserID:    req.UserID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// GetBooking retrieves one of the caller's bookings.
func (s *BookingService) GetBooking(ctx context.Context, userID, bookingID string) (*domain.Booking, error) {
	if bookingID == "" {
		return nil, ErrInvalidBookingID
	}
	return s.bookingRepo.GetOwnedByUser(ctx, bookingID, userID)
}

// ListBookings retrieves all of the caller's bookings.
func (s *BookingService) ListBookings(ctx context.Context, userID string) ([]*domain.Booking, error) {
	return s.bookingRepo.GetByUser(ctx, userID)
}
