package dto

type SwipeRequest struct {
	TargetProfileID int64  `json:"target_profile_id"`
	Action          string `json:"action"`
}

type SwipeResponse struct {
	OK      bool   `json:"ok"`
	Matched bool   `json:"matched"`
	MatchID string `json:"match_id,omitempty"`
}
