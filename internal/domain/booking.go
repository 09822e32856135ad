package domain

import "time"

// Booking represents a confirmed stay reservation for a listing.
type Booking struct {
	ID        string
	ListingID string
	UserID    string
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
