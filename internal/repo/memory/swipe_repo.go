package memory

import (
	"context"
	"fmt"

	"github.com/renwic/trusthub/internal/domain/model"
)

type SwipeRepo struct {
	db *DB
}

func NewSwipeRepo(db *DB) *SwipeRepo {
	return &SwipeRepo{db: db}
}

// Upsert stores the swipe, replacing any earlier swipe by the same actor on
// the same target.
func (r *SwipeRepo) Upsert(_ context.Context, swipe model.Swipe) error {
	if swipe.ActorProfileID <= 0 || swipe.TargetProfileID <= 0 || swipe.Action == "" {
		return fmt.Errorf("invalid swipe payload")
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.swipes[swipeKey{actor: swipe.ActorProfileID, target: swipe.TargetProfileID}] = swipe
	return nil
}

func (r *SwipeRepo) Get(_ context.Context, actorProfileID, targetProfileID int64) (model.Swipe, bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	swipe, ok := r.db.swipes[swipeKey{actor: actorProfileID, target: targetProfileID}]
	return swipe, ok, nil
}

func (r *SwipeRepo) Count() int {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return len(r.db.swipes)
}
