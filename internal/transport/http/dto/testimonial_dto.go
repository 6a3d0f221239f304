package dto

import "time"

type RatingsPayload struct {
	Trustworthy int `json:"trustworthy"`
	Fun         int `json:"fun"`
	Caring      int `json:"caring"`
	Ambitious   int `json:"ambitious"`
	Reliable    int `json:"reliable"`
}

type PhotoPayload struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

type SubmitTestimonialRequest struct {
	AuthorName  string         `json:"author_name"`
	AuthorEmail string         `json:"author_email"`
	Body        string         `json:"body"`
	Ratings     RatingsPayload `json:"ratings"`
	Photos      []PhotoPayload `json:"photos"`
}

// TestimonialResponse omits the author email; it is only used for
// de-duplicating authors.
type TestimonialResponse struct {
	ID         string         `json:"id"`
	ProfileID  int64          `json:"profile_id"`
	AuthorName string         `json:"author_name"`
	Body       string         `json:"body"`
	Ratings    RatingsPayload `json:"ratings"`
	Approved   bool           `json:"approved"`
	Photos     []PhotoPayload `json:"photos"`
	CreatedAt  time.Time      `json:"created_at"`
}

type TestimonialsResponse struct {
	Items []TestimonialResponse `json:"items"`
}
