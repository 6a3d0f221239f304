package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/renwic/trusthub/internal/domain/apperr"
	"github.com/renwic/trusthub/internal/domain/model"
)

type MatchRepo struct {
	db *DB
}

func NewMatchRepo(db *DB) *MatchRepo {
	return &MatchRepo{db: db}
}

// CreateIfAbsent inserts the match unless one already exists for the pair.
// The stored match is returned either way; created is false when another
// writer got there first.
func (r *MatchRepo) CreateIfAbsent(_ context.Context, match model.Match) (model.Match, bool, error) {
	if match.ID == uuid.Nil || match.ProfileAID <= 0 || match.ProfileBID <= 0 || match.ProfileAID >= match.ProfileBID {
		return model.Match{}, false, fmt.Errorf("invalid match payload")
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	key := pairKey{a: match.ProfileAID, b: match.ProfileBID}
	if existing, ok := r.db.matches[key]; ok {
		return existing, false, nil
	}
	r.db.matches[key] = match
	return match, true, nil
}

func (r *MatchRepo) GetByPair(_ context.Context, profileA, profileB int64) (model.Match, error) {
	a, b := model.PairKey(profileA, profileB)

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	match, ok := r.db.matches[pairKey{a: a, b: b}]
	if !ok {
		return model.Match{}, fmt.Errorf("%w: match for %d/%d", apperr.ErrNotFound, a, b)
	}
	return match, nil
}

// ListForProfile returns newest first.
func (r *MatchRepo) ListForProfile(_ context.Context, profileID int64, limit int) ([]model.Match, error) {
	if limit <= 0 {
		limit = 100
	}

	r.db.mu.Lock()
	items := make([]model.Match, 0)
	for key, m := range r.db.matches {
		if key.a == profileID || key.b == profileID {
			items = append(items, m)
		}
	}
	r.db.mu.Unlock()

	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID.String() > items[j].ID.String()
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (r *MatchRepo) Count() int {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return len(r.db.matches)
}
