package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/renwic/trusthub/internal/domain/apperr"
	"github.com/renwic/trusthub/internal/domain/model"
)

type ProfileRepo struct {
	db  *DB
	now func() time.Time
}

func NewProfileRepo(db *DB) *ProfileRepo {
	return &ProfileRepo{db: db, now: time.Now}
}

func (r *ProfileRepo) GetByID(_ context.Context, profileID int64) (model.Profile, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	profile, ok := r.db.profiles[profileID]
	if !ok {
		return model.Profile{}, fmt.Errorf("%w: profile %d", apperr.ErrNotFound, profileID)
	}
	return cloneProfile(profile), nil
}

func (r *ProfileRepo) GetByUserID(_ context.Context, userID int64) (model.Profile, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	id, ok := r.db.profileByUser[userID]
	if !ok {
		return model.Profile{}, fmt.Errorf("%w: profile for user %d", apperr.ErrNotFound, userID)
	}
	return cloneProfile(r.db.profiles[id]), nil
}

// UpsertByUserID creates the user's profile on first call and overwrites the
// mutable attributes afterwards. ID and CreatedAt never change.
func (r *ProfileRepo) UpsertByUserID(_ context.Context, profile model.Profile) (model.Profile, error) {
	if profile.UserID <= 0 {
		return model.Profile{}, fmt.Errorf("invalid profile payload")
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	now := r.now().UTC()
	if id, ok := r.db.profileByUser[profile.UserID]; ok {
		existing := r.db.profiles[id]
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
	} else {
		r.db.nextProfileID++
		profile.ID = r.db.nextProfileID
		profile.CreatedAt = now
		r.db.profileByUser[profile.UserID] = profile.ID
	}
	profile.UpdatedAt = now

	r.db.profiles[profile.ID] = cloneProfile(profile)
	return cloneProfile(profile), nil
}
