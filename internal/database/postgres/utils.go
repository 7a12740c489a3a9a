package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osse101/Bossforge_Go/internal/domain"
	"github.com/osse101/Bossforge_Go/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgErrorCode returns the SQLSTATE of err, or "" when err is not from the server
func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// wrapWriteError maps constraint violations to domain errors and wraps the rest
func wrapWriteError(msg string, err error) error {
	switch pgErrorCode(err) {
	case PgErrorCodeUniqueViolation:
		return fmt.Errorf("%s: %w", msg, domain.ErrDuplicate)
	default:
		return fmt.Errorf("%s: %w", msg, err)
	}
}

// wrapRefWriteError is wrapWriteError for inserts whose only foreign key that
// can go missing mid-transaction is the catalog row; the player is locked.
func wrapRefWriteError(msg string, err error, missing error) error {
	if pgErrorCode(err) == PgErrorCodeForeignKeyViolation {
		return missing
	}
	return wrapWriteError(msg, err)
}

// notFoundOr returns notFound for pgx.ErrNoRows and a wrapped error otherwise
func notFoundOr(notFound error, msg string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// collect scans every row with scan and closes rows
func collect[T any](rows pgx.Rows, scan func(pgx.Row) (T, error)) ([]T, error) {
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
