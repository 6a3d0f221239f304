package dto

import "time"

type ScoreResponse struct {
	ProfileID  int64     `json:"profile_id"`
	RealRep    int       `json:"real_rep"`
	RealBand   string    `json:"real_rep_band"`
	PopRep     int       `json:"pop_rep"`
	PopBand    string    `json:"pop_rep_band"`
	ComputedAt time.Time `json:"computed_at"`
}
