package domain

import "time"

// Listing represents a property available for booking.
type Listing struct {
	ID            string
	Title         string
	Description   string
	PricePerNight string
	AvailableFrom time.Time
	AvailableTo   time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
