package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"uims/pkg/platform/sentinel"
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// Classify tags driver errors with the sentinel the service layer translates.
// Missing rows become sentinel.ErrNotFound, constraint collisions
// sentinel.ErrConflict, and connection failures sentinel.ErrUnavailable.
// Anything else is returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", sentinel.ErrNotFound, err)
	}
	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err)
	}
	if code, ok := sqlState(err); ok {
		switch code {
		case pgForeignKeyViolation, pgUniqueViolation:
			return fmt.Errorf("%w: %w", sentinel.ErrConflict, err)
		}
	}
	return err
}

// IsForeignKeyViolation reports whether err is a Postgres foreign key
// violation from either driver.
func IsForeignKeyViolation(err error) bool {
	code, ok := sqlState(err)
	return ok && code == pgForeignKeyViolation
}

func sqlState(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, true
	}
	return "", false
}
