package service

import "errors"

var (
	// ErrInvalidBookingID is returned when booking ID is empty.
	ErrInvalidBookingID = errors.New("booking_id is required")

	// ErrInvalidAmount is returned when the payment amount is missing or
	// not a positive decimal.
	ErrInvalidAmount = errors.New("amount is required and must be positive")

	// ErrInvalidTxRef is returned when the transaction reference is empty.
	ErrInvalidTxRef = errors.New("tx_ref is required")

	// ErrGatewayUnavailable is returned when the payment gateway could not
	// be reached or did not produce a readable response.
	ErrGatewayUnavailable = errors.New("failed to communicate with payment gateway")

	// ErrInvalidListingID is returned when listing ID is empty.
	ErrInvalidListingID = errors.New("listing_id is required")

	// ErrInvalidListingTitle is returned when a listing title is empty.
	ErrInvalidListingTitle = errors.New("title is required")

	// ErrInvalidDateRange is returned when a booking's end date is not
	// after its start date.
	ErrInvalidDateRange = errors.New("end_date must be after start_date")

	// ErrInvalidRating is returned when a review rating is outside 1-5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrNotReviewOwner is returned when a user modifies someone else's review.
	ErrNotReviewOwner = errors.New("review belongs to another user")

	// ErrInvalidCredentials is returned on bad email/password at login.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken is returned when registering an already-used email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidEmail is returned when a registration email is empty.
	ErrInvalidEmail = errors.New("email is required")

	// ErrInvalidPassword is returned when a registration password is too short.
	ErrInvalidPassword = errors.New("password must be at least 8 characters")
)
