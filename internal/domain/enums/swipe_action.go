package enums

import "strings"

type SwipeAction string

const (
	SwipeActionLike      SwipeAction = "like"
	SwipeActionPass      SwipeAction = "pass"
	SwipeActionSuperLike SwipeAction = "super_like"
)

// ParseSwipeAction accepts the canonical values plus the upper-case and
// underscore-free spellings older clients send ("LIKE", "SUPERLIKE").
func ParseSwipeAction(raw string) (SwipeAction, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch strings.ReplaceAll(value, "_", "") {
	case "like":
		return SwipeActionLike, true
	case "pass", "dislike":
		return SwipeActionPass, true
	case "superlike":
		return SwipeActionSuperLike, true
	default:
		return "", false
	}
}

// IsPositive reports whether the action counts toward a mutual match.
func (a SwipeAction) IsPositive() bool {
	return a == SwipeActionLike || a == SwipeActionSuperLike
}
