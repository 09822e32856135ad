package domain

import "time"

// Review represents a user's review of a listing.
type Review struct {
	ID        string
	ListingID string
	UserID    string
	Rating    int
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
