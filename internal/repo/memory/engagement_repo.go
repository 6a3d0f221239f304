package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/renwic/trusthub/internal/domain/model"
)

type EngagementRepo struct {
	db *DB
}

func NewEngagementRepo(db *DB) *EngagementRepo {
	return &EngagementRepo{db: db}
}

// AddLike reports whether a new like was stored; a repeat like is a no-op.
func (r *EngagementRepo) AddLike(_ context.Context, like model.PhotoLike) (bool, error) {
	if like.TestimonialID == uuid.Nil || like.PhotoIndex < 0 || like.UserID <= 0 {
		return false, fmt.Errorf("invalid photo like payload")
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	key := likeKey{ref: like.PhotoRef, userID: like.UserID}
	if _, ok := r.db.likes[key]; ok {
		return false, nil
	}
	r.db.likes[key] = like
	return true, nil
}

func (r *EngagementRepo) AddComment(_ context.Context, comment model.PhotoComment) (model.PhotoComment, error) {
	if comment.ID == uuid.Nil || comment.TestimonialID == uuid.Nil || comment.PhotoIndex < 0 || comment.UserID <= 0 {
		return model.PhotoComment{}, fmt.Errorf("invalid photo comment payload")
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.comments = append(r.db.comments, comment)
	return comment, nil
}

// ListComments returns oldest first.
func (r *EngagementRepo) ListComments(_ context.Context, ref model.PhotoRef, limit int) ([]model.PhotoComment, error) {
	if limit <= 0 {
		limit = 100
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	items := make([]model.PhotoComment, 0)
	for _, c := range r.db.comments {
		if c.PhotoRef != ref {
			continue
		}
		items = append(items, c)
		if len(items) == limit {
			break
		}
	}
	return items, nil
}

func (r *EngagementRepo) CountForProfile(_ context.Context, profileID int64) (model.EngagementCounts, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	owned := make(map[uuid.UUID]struct{})
	for _, id := range r.db.testimonialOrder[profileID] {
		owned[id] = struct{}{}
	}

	var counts model.EngagementCounts
	for key := range r.db.likes {
		if _, ok := owned[key.ref.TestimonialID]; ok {
			counts.Likes++
		}
	}
	for _, c := range r.db.comments {
		if _, ok := owned[c.TestimonialID]; ok {
			counts.Comments++
		}
	}
	return counts, nil
}
