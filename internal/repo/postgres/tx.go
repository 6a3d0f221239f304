package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/renwic/trusthub/internal/domain/apperr"
)

// testimonialTxOptions keeps a testimonial row and its photos visible together.
var testimonialTxOptions = pgx.TxOptions{IsoLevel: pgx.ReadCommitted}

// WithTx runs fn inside a single transaction. Errors returned by fn pass
// through untouched; begin and commit failures are reported as dependency
// errors so the HTTP layer answers 503.
func WithTx(ctx context.Context, pool *pgxpool.Pool, fn func(context.Context, pgx.Tx) error) error {
	if pool == nil {
		return errPoolNotConfigured
	}

	var fnErr error
	err := pgx.BeginTxFunc(ctx, pool, testimonialTxOptions, func(tx pgx.Tx) error {
		fnErr = fn(ctx, tx)
		return fnErr
	})
	switch {
	case err == nil:
		return nil
	case fnErr != nil:
		return fnErr
	default:
		return apperr.Dependency("postgres tx", err)
	}
}
