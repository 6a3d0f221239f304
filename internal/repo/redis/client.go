package redis

import (
	"context"
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/renwic/trusthub/internal/domain/apperr"
)

// errClientNotConfigured is reported as a dependency failure so callers fall
// back the same way they do for a dead server.
var errClientNotConfigured = fmt.Errorf("%w: redis client is not configured", apperr.ErrDependency)

func NewClient(addr, password string, db int) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// Ping reports whether the server answers; a blank addr means redis is not
// configured.
func Ping(ctx context.Context, client *goredis.Client) error {
	if client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(client.Options().Addr) == "" {
		return fmt.Errorf("redis addr is empty")
	}
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	return nil
}
