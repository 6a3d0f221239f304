package dto

import "time"

type MatchItemResponse struct {
	ID              string    `json:"id"`
	TargetProfileID int64     `json:"target_profile_id"`
	DisplayName     string    `json:"display_name"`
	SharedInterests []string  `json:"shared_interests"`
	Compatibility   int       `json:"compatibility"`
	CreatedAt       time.Time `json:"created_at"`
}

type MatchesResponse struct {
	Items []MatchItemResponse `json:"items"`
}
