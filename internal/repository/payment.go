package repository

import (
	"context"

	"travelapp/internal/domain"
)

// PaymentRepository defines the persistence operations for payments.
type PaymentRepository interface {
	// Create persists a new payment. The caller assigns ID, TransactionID
	// and the initial pending status.
	Create(ctx context.Context, payment *domain.Payment) error

	// GetByID retrieves a payment by ID.
	GetByID(ctx context.Context, id string) (*domain.Payment, error)

	// GetByIDForUser retrieves a payment by ID, scoped to payments whose
	// booking belongs to the given user.
	GetByIDForUser(ctx context.Context, id, userID string) (*domain.Payment, error)

	// GetByUser retrieves all payments whose booking belongs to the user,
	// newest first.
	GetByUser(ctx context.Context, userID string) ([]*domain.Payment, error)

	// FindByReferenceFragment locates the payment whose transaction id
	// contains the given hex fragment, scoped to bookings owned by userID.
	// Returns ErrNotFound on zero matches and ErrAmbiguousReference when
	// more than one payment matches.
	FindByReferenceFragment(ctx context.Context, fragment, userID string) (*domain.Payment, error)

	// SetGatewayTransactionID records the gateway's transaction id.
	// Repeated calls overwrite: the last confirmed value wins.
	SetGatewayTransactionID(ctx context.Context, id, gatewayTxID string) error

	// UpdateStatus updates the status of a payment.
	UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus) error
}
