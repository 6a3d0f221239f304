package dto

import "time"

type LikePhotoResponse struct {
	OK bool `json:"ok"`
}

type CommentRequest struct {
	Text string `json:"text"`
}

type CommentResponse struct {
	ID            string    `json:"id"`
	TestimonialID string    `json:"testimonial_id"`
	PhotoIndex    int       `json:"photo_index"`
	UserID        int64     `json:"user_id"`
	Text          string    `json:"text"`
	CreatedAt     time.Time `json:"created_at"`
}

type CommentsResponse struct {
	Items []CommentResponse `json:"items"`
}
