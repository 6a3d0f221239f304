package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Testimonial is a prop written by a RealOne about a profile.
type Testimonial struct {
	ID        uuid.UUID `json:"id"`
	ProfileID int64     `json:"profile_id"`
	Author    Author    `json:"author"`
	Body      string    `json:"body"`
	Ratings   Ratings   `json:"ratings"`
	Approved  bool      `json:"approved"`
	Photos    []Photo   `json:"photos"`
	CreatedAt time.Time `json:"created_at"`
}

type Author struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Key identifies a RealOne across props; email wins over name.
func (a Author) Key() string {
	if email := strings.ToLower(strings.TrimSpace(a.Email)); email != "" {
		return "email:" + email
	}
	return "name:" + strings.ToLower(strings.TrimSpace(a.Name))
}

type Ratings struct {
	Trustworthy int `json:"trustworthy"`
	Fun         int `json:"fun"`
	Caring      int `json:"caring"`
	Ambitious   int `json:"ambitious"`
	Reliable    int `json:"reliable"`
}

func (r Ratings) Values() []int {
	return []int{r.Trustworthy, r.Fun, r.Caring, r.Ambitious, r.Reliable}
}

type Photo struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// HasPhoto reports whether index addresses one of the attached photos.
func (t Testimonial) HasPhoto(index int) bool {
	return index >= 0 && index < len(t.Photos)
}
