// Package memory holds process-local stores used by tests and by the api in
// storage.driver=memory mode. Every write happens under one mutex, which gives
// the same per-key serialization the postgres unique indexes provide.
package memory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/renwic/trusthub/internal/domain/model"
)

type swipeKey struct {
	actor  int64
	target int64
}

type likeKey struct {
	ref    model.PhotoRef
	userID int64
}

type pairKey struct {
	a int64
	b int64
}

type DB struct {
	mu sync.Mutex

	nextProfileID int64
	profiles      map[int64]model.Profile
	profileByUser map[int64]int64

	testimonials map[uuid.UUID]model.Testimonial
	// insertion order per profile, oldest first
	testimonialOrder map[int64][]uuid.UUID

	likes    map[likeKey]model.PhotoLike
	comments []model.PhotoComment

	swipes  map[swipeKey]model.Swipe
	matches map[pairKey]model.Match
}

func NewDB() *DB {
	return &DB{
		profiles:         make(map[int64]model.Profile),
		profileByUser:    make(map[int64]int64),
		testimonials:     make(map[uuid.UUID]model.Testimonial),
		testimonialOrder: make(map[int64][]uuid.UUID),
		likes:            make(map[likeKey]model.PhotoLike),
		swipes:           make(map[swipeKey]model.Swipe),
		matches:          make(map[pairKey]model.Match),
	}
}

func cloneTestimonial(t model.Testimonial) model.Testimonial {
	t.Photos = append([]model.Photo(nil), t.Photos...)
	return t
}

func cloneProfile(p model.Profile) model.Profile {
	p.Interests = append([]string(nil), p.Interests...)
	return p
}
