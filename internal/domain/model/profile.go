package model

import (
	"strings"
	"time"
)

type Profile struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Bio         string    `json:"bio"`
	PhotoCount  int       `json:"photo_count"`
	Lifestyle   Lifestyle `json:"lifestyle"`
	Interests   []string  `json:"interests"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Lifestyle struct {
	Occupation string `json:"occupation"`
	Education  string `json:"education"`
	HeightCM   int    `json:"height_cm"`
	Drinking   string `json:"drinking"`
	Smoking    string `json:"smoking"`
	Exercise   string `json:"exercise"`
	Pets       string `json:"pets"`
	Religion   string `json:"religion"`
}

// FilledFields counts the lifestyle attributes the owner has answered.
func (l Lifestyle) FilledFields() int {
	filled := 0
	for _, v := range []string{l.Occupation, l.Education, l.Drinking, l.Smoking, l.Exercise, l.Pets, l.Religion} {
		if strings.TrimSpace(v) != "" {
			filled++
		}
	}
	if l.HeightCM > 0 {
		filled++
	}
	return filled
}

// Completeness is the slice of a profile the trust score looks at.
type Completeness struct {
	PhotoCount   int
	BioLength    int
	FilledFields int
}

func (p Profile) Completeness() Completeness {
	return Completeness{
		PhotoCount:   p.PhotoCount,
		BioLength:    len([]rune(strings.TrimSpace(p.Bio))),
		FilledFields: p.Lifestyle.FilledFields(),
	}
}
