package auth

import (
	"errors"
	"time"
)

var ErrUnauthorized = errors.New("unauthorized")

const (
	RoleUser      = "USER"
	RoleModerator = "MODERATOR"
	RoleOwner     = "OWNER"
)

type AccessClaims struct {
	UserID    int64
	SID       string
	Role      string
	ExpiresAt time.Time
}
