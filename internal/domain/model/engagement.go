package model

import (
	"time"

	"github.com/google/uuid"
)

// PhotoRef addresses one photo attached to a testimonial.
type PhotoRef struct {
	TestimonialID uuid.UUID `json:"testimonial_id"`
	PhotoIndex    int       `json:"photo_index"`
}

type PhotoLike struct {
	PhotoRef
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type PhotoComment struct {
	ID uuid.UUID `json:"id"`
	PhotoRef
	UserID    int64     `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// EngagementCounts aggregates likes and comments over every photo of every
// testimonial written about one profile.
type EngagementCounts struct {
	Likes    int
	Comments int
}
