package model

import "time"

type Score struct {
	ProfileID  int64     `json:"profile_id"`
	RealRep    int       `json:"real_rep"`
	PopRep     int       `json:"pop_rep"`
	ComputedAt time.Time `json:"computed_at"`
}
