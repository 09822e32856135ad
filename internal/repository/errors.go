package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrAmbiguousReference is returned when a reference fragment lookup
	// matches more than one payment.
	ErrAmbiguousReference = errors.New("ambiguous transaction reference")
)
