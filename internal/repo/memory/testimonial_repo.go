package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/renwic/trusthub/internal/domain/apperr"
	"github.com/renwic/trusthub/internal/domain/model"
)

type TestimonialRepo struct {
	db *DB
}

func NewTestimonialRepo(db *DB) *TestimonialRepo {
	return &TestimonialRepo{db: db}
}

func (r *TestimonialRepo) Create(_ context.Context, item model.Testimonial) (model.Testimonial, error) {
	if item.ID == uuid.Nil || item.ProfileID <= 0 {
		return model.Testimonial{}, fmt.Errorf("invalid testimonial payload")
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.profiles[item.ProfileID]; !ok {
		return model.Testimonial{}, fmt.Errorf("%w: profile %d", apperr.ErrNotFound, item.ProfileID)
	}
	if _, ok := r.db.testimonials[item.ID]; ok {
		return model.Testimonial{}, fmt.Errorf("%w: testimonial %s already exists", apperr.ErrConflict, item.ID)
	}

	r.db.testimonials[item.ID] = cloneTestimonial(item)
	r.db.testimonialOrder[item.ProfileID] = append(r.db.testimonialOrder[item.ProfileID], item.ID)
	return cloneTestimonial(item), nil
}

func (r *TestimonialRepo) GetByID(_ context.Context, id uuid.UUID) (model.Testimonial, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	item, ok := r.db.testimonials[id]
	if !ok {
		return model.Testimonial{}, fmt.Errorf("%w: testimonial %s", apperr.ErrNotFound, id)
	}
	return cloneTestimonial(item), nil
}

func (r *TestimonialRepo) SetApproved(_ context.Context, id uuid.UUID, approved bool) (model.Testimonial, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	item, ok := r.db.testimonials[id]
	if !ok {
		return model.Testimonial{}, fmt.Errorf("%w: testimonial %s", apperr.ErrNotFound, id)
	}
	item.Approved = approved
	r.db.testimonials[id] = item
	return cloneTestimonial(item), nil
}

// ListByProfile returns newest first.
func (r *TestimonialRepo) ListByProfile(_ context.Context, profileID int64, approvedOnly bool) ([]model.Testimonial, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	order := r.db.testimonialOrder[profileID]
	items := make([]model.Testimonial, 0, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		item := r.db.testimonials[order[i]]
		if approvedOnly && !item.Approved {
			continue
		}
		items = append(items, cloneTestimonial(item))
	}
	return items, nil
}
