package domain

import (
	"strings"
	"time"
)

// PaymentStatus represents the current status of a payment.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// IsTerminal reports whether the status can no longer change.
// Payments only move pending -> completed or pending -> failed.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusCompleted || s == PaymentStatusFailed
}

// ReferencePrefix is prepended to every transaction reference sent to the
// payment gateway.
const ReferencePrefix = "CHAPA-"

// referenceLength is the number of hex characters taken from the
// transaction id when building a reference.
const referenceLength = 12

// Payment represents a payment for a booking.
//
// TransactionID is the undashed 32-char hex form of a UUID, assigned once at
// creation. GatewayTransactionID is whatever id the gateway reported back on
// initialization, empty until then.
type Payment struct {
	ID                   string
	BookingID            string
	Amount               string
	Status               PaymentStatus
	TransactionID        string
	GatewayTransactionID string
	CreatedAt            time.Time
}

// PaymentReference derives the public transaction reference for a
// transaction id. Deterministic: the same id always yields the same
// reference. The reference is the fixed prefix followed by the first 12 hex
// characters of the id, upper-cased.
func PaymentReference(transactionID string) string {
	frag := transactionID
	if len(frag) > referenceLength {
		frag = frag[:referenceLength]
	}
	return ReferencePrefix + strings.ToUpper(frag)
}

// TxRef returns the reference for this payment's transaction id.
func (p *Payment) TxRef() string {
	return PaymentReference(p.TransactionID)
}

// ReferenceFragment recovers the lookup fragment from a full reference by
// stripping the prefix and lower-casing back to the stored hex form.
func ReferenceFragment(txRef string) string {
	return strings.ToLower(strings.TrimPrefix(txRef, ReferencePrefix))
}
