package dto

import "time"

type LifestylePayload struct {
	Occupation string `json:"occupation"`
	Education  string `json:"education"`
	HeightCM   int    `json:"height_cm"`
	Drinking   string `json:"drinking"`
	Smoking    string `json:"smoking"`
	Exercise   string `json:"exercise"`
	Pets       string `json:"pets"`
	Religion   string `json:"religion"`
}

type ProfileResponse struct {
	ID          int64            `json:"id"`
	DisplayName string           `json:"display_name"`
	Bio         string           `json:"bio"`
	PhotoCount  int              `json:"photo_count"`
	Lifestyle   LifestylePayload `json:"lifestyle"`
	Interests   []string         `json:"interests"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

type UpdateProfileRequest struct {
	DisplayName string           `json:"display_name"`
	Bio         string           `json:"bio"`
	PhotoCount  int              `json:"photo_count"`
	Lifestyle   LifestylePayload `json:"lifestyle"`
	Interests   []string         `json:"interests"`
}
