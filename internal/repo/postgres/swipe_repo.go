package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/renwic/trusthub/internal/domain/enums"
	"github.com/renwic/trusthub/internal/domain/model"
)

type SwipeRepo struct {
	pool *pgxpool.Pool
}

func NewSwipeRepo(pool *pgxpool.Pool) *SwipeRepo {
	return &SwipeRepo{pool: pool}
}

// Upsert runs outside any caller transaction so the swipe is committed before
// the reciprocal lookup that follows it.
func (r *SwipeRepo) Upsert(ctx context.Context, swipe model.Swipe) error {
	if swipe.ActorProfileID <= 0 || swipe.TargetProfileID <= 0 || swipe.Action == "" {
		return fmt.Errorf("invalid swipe payload")
	}
	if r.pool == nil {
		return errPoolNotConfigured
	}

	if _, err := r.pool.Exec(ctx, `
INSERT INTO swipes (
	actor_profile_id,
	target_profile_id,
	action,
	created_at
) VALUES ($1, $2, $3, $4)
ON CONFLICT (actor_profile_id, target_profile_id) DO UPDATE SET
	action = EXCLUDED.action,
	created_at = EXCLUDED.created_at
`, swipe.ActorProfileID, swipe.TargetProfileID, string(swipe.Action), swipe.CreatedAt); err != nil {
		return wrapErr("upsert swipe", err)
	}
	return nil
}

func (r *SwipeRepo) Get(ctx context.Context, actorProfileID, targetProfileID int64) (model.Swipe, bool, error) {
	if actorProfileID <= 0 || targetProfileID <= 0 {
		return model.Swipe{}, false, fmt.Errorf("invalid swipe lookup payload")
	}
	if r.pool == nil {
		return model.Swipe{}, false, errPoolNotConfigured
	}

	var (
		swipe  model.Swipe
		action string
	)
	err := r.pool.QueryRow(ctx, `
SELECT actor_profile_id, target_profile_id, action, created_at
FROM swipes
WHERE actor_profile_id = $1 AND target_profile_id = $2
`, actorProfileID, targetProfileID).Scan(&swipe.ActorProfileID, &swipe.TargetProfileID, &action, &swipe.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Swipe{}, false, nil
		}
		return model.Swipe{}, false, wrapErr("lookup swipe", err)
	}
	swipe.Action = enums.SwipeAction(action)
	swipe.CreatedAt = swipe.CreatedAt.UTC()
	return swipe, true, nil
}
