package auth

import (
	"context"
	"strings"
)

type identityKey struct{}

// Identity is the authenticated caller attached to a request.
type Identity struct {
	UserID int64
	SID    string
	Role   string
}

// HasRole compares roles case-insensitively.
func (i Identity) HasRole(roles ...string) bool {
	role := strings.ToUpper(strings.TrimSpace(i.Role))
	for _, candidate := range roles {
		if role == strings.ToUpper(strings.TrimSpace(candidate)) {
			return true
		}
	}
	return false
}

func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(Identity)
	return identity, ok
}
