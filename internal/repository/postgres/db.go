package postgres

import (
	"context"
	"database/sql"

	"travelapp/internal/repository"
)

// Querier is the subset of database/sql used by the repositories. Both
// *sql.DB and *sql.Tx satisfy it, so a repository can run inside a
// transaction without changing its code.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)

// Compile-time checks that each implementation matches its interface.
var (
	_ repository.PaymentRepository = (*PaymentRepository)(nil)
	_ repository.BookingRepository = (*BookingRepository)(nil)
	_ repository.ListingRepository = (*ListingRepository)(nil)
	_ repository.ReviewRepository  = (*ReviewRepository)(nil)
	_ repository.UserRepository    = (*UserRepository)(nil)
)
