package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"travelapp/internal/domain"
	"travelapp/internal/repository"
)

// PaymentRepository is a PostgreSQL implementation of repository.PaymentRepository.
type PaymentRepository struct {
	q Querier
}

// NewPaymentRepository creates a new PostgreSQL payment repository.
func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{q: db}
}

// NewPaymentRepositoryWithTx creates a payment repository using a transaction.
func NewPaymentRepositoryWithTx(tx *sql.Tx) *PaymentRepository {
	return &PaymentRepository{q: tx}
}

const paymentColumns = `id, booking_id, amount, status, transaction_id, COALESCE(gateway_transaction_id, ''), created_at`

// Create persists a new payment.
func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (id, booking_id, amount, status, transaction_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.q.ExecContext(ctx, query,
		payment.ID,
		payment.BookingID,
		payment.Amount,
		payment.Status,
		payment.TransactionID,
		payment.CreatedAt,
	)

	return err
}

// GetByID retrieves a payment by ID.
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	payment, err := scanPayment(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return payment, nil
}

// GetByIDForUser retrieves a payment by ID, scoped to the booking owner.
func (r *PaymentRepository) GetByIDForUser(ctx context.Context, id, userID string) (*domain.Payment, error) {
	query := `
		SELECT p.id, p.booking_id, p.amount, p.status, p.transaction_id, COALESCE(p.gateway_transaction_id, ''), p.created_at
		FROM payments p
		JOIN bookings b ON b.id = p.booking_id
		WHERE p.id = $1 AND b.user_id = $2
	`

	payment, err := scanPayment(r.q.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return payment, nil
}

// GetByUser retrieves all payments whose booking belongs to the user.
func (r *PaymentRepository) GetByUser(ctx context.Context, userID string) ([]*domain.Payment, error) {
	query := `
		SELECT p.id, p.booking_id, p.amount, p.status, p.transaction_id, COALESCE(p.gateway_transaction_id, ''), p.created_at
		FROM payments p
		JOIN bookings b ON b.id = p.booking_id
		WHERE b.user_id = $1
		ORDER BY p.created_at DESC
	`

	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*domain.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

// likeEscaper neutralizes LIKE metacharacters so the fragment only ever
// matches as a literal substring.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// FindByReferenceFragment locates the payment whose transaction id contains
// the given hex fragment, scoped to bookings owned by userID. The match is a
// case-insensitive containment match; two rows matching the same fragment is
// an error, not a pick-one.
func (r *PaymentRepository) FindByReferenceFragment(ctx context.Context, fragment, userID string) (*domain.Payment, error) {
	query := `
		SELECT p.id, p.booking_id, p.amount, p.status, p.transaction_id, COALESCE(p.gateway_transaction_id, ''), p.created_at
		FROM payments p
		JOIN bookings b ON b.id = p.booking_id
		WHERE p.transaction_id ILIKE '%' || $1 || '%' ESCAPE '\' AND b.user_id = $2
		LIMIT 2
	`

	rows, err := r.q.QueryContext(ctx, query, likeEscaper.Replace(fragment), userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []*domain.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch len(matches) {
	case 0:
		return nil, repository.ErrNotFound
	case 1:
		return matches[0], nil
	default:
		return nil, repository.ErrAmbiguousReference
	}
}

// SetGatewayTransactionID records the gateway's transaction id. Repeated
// calls overwrite the previous value.
func (r *PaymentRepository) SetGatewayTransactionID(ctx context.Context, id, gatewayTxID string) error {
	query := `UPDATE payments SET gateway_transaction_id = $1 WHERE id = $2`

	result, err := r.q.ExecContext(ctx, query, gatewayTxID, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// UpdateStatus updates the status of a payment.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus) error {
	query := `UPDATE payments SET status = $1 WHERE id = $2`

	result, err := r.q.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// scanner abstracts *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanPayment(s scanner) (*domain.Payment, error) {
	var payment domain.Payment
	err := s.Scan(
		&payment.ID,
		&payment.BookingID,
		&payment.Amount,
		&payment.Status,
		&payment.TransactionID,
		&payment.GatewayTransactionID,
		&payment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func requireRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
