package model

import (
	"time"

	"github.com/google/uuid"
)

type Match struct {
	ID         uuid.UUID     `json:"id"`
	ProfileAID int64         `json:"profile_a_id"`
	ProfileBID int64         `json:"profile_b_id"`
	UserAID    int64         `json:"user_a_id"`
	UserBID    int64         `json:"user_b_id"`
	Metadata   MatchMetadata `json:"metadata"`
	CreatedAt  time.Time     `json:"created_at"`
}

// MatchMetadata is computed once when the match is created and never
// refreshed afterwards.
type MatchMetadata struct {
	SharedInterests []string `json:"shared_interests"`
	Compatibility   int      `json:"compatibility"`
}

// PairKey orders two profile ids so {a,b} and {b,a} share one key.
func PairKey(a, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}

// Other returns the counterpart of profileID in the match.
func (m Match) Other(profileID int64) int64 {
	if m.ProfileAID == profileID {
		return m.ProfileBID
	}
	return m.ProfileAID
}
