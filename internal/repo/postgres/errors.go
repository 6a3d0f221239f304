package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/renwic/trusthub/internal/domain/apperr"
)

const uniqueViolation = "23505"

// errPoolNotConfigured lets the API run in degraded mode: every call answers
// ErrDependency until postgres is reachable.
var errPoolNotConfigured = fmt.Errorf("%w: postgres pool is not configured", apperr.ErrDependency)

// wrapErr maps driver failures onto the apperr taxonomy: missing rows become
// ErrNotFound, unique violations ErrConflict, everything else ErrDependency.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w: %s", op, apperr.ErrConflict, pgErr.ConstraintName)
	}
	return apperr.Dependency(op, err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// wrapTxErr leaves errors already classified inside the transaction alone and
// treats begin/commit failures as dependency errors.
func wrapTxErr(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, sentinel := range []error{apperr.ErrNotFound, apperr.ErrConflict, apperr.ErrDependency, apperr.ErrValidation} {
		if errors.Is(err, sentinel) {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return wrapErr(op, err)
}
