package model

import (
	"time"

	"github.com/renwic/trusthub/internal/domain/enums"
)

type Swipe struct {
	ActorProfileID  int64             `json:"actor_profile_id"`
	TargetProfileID int64             `json:"target_profile_id"`
	Action          enums.SwipeAction `json:"action"`
	CreatedAt       time.Time         `json:"created_at"`
}
