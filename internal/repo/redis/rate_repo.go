package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/renwic/trusthub/internal/domain/apperr"
)

// incrementWindowScript bumps a fixed-window counter, arming the expiry only
// on the first hit so the window never slides. Returns {count, pttl}.
const incrementWindowScript = `
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
if ttl < 0 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
  ttl = tonumber(ARGV[1])
end
return {count, ttl}
`

// RateRepo stores the swipe and comment windows used by rate.Limiter.
type RateRepo struct {
	client *goredis.Client
}

func NewRateRepo(client *goredis.Client) *RateRepo {
	return &RateRepo{client: client}
}

func (r *RateRepo) IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	if r.client == nil {
		return 0, 0, errClientNotConfigured
	}
	if key == "" || window <= 0 {
		return 0, 0, fmt.Errorf("%w: invalid rate window payload", apperr.ErrValidation)
	}

	res, err := r.client.Eval(ctx, incrementWindowScript, []string{key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return 0, 0, apperr.Dependency("increment rate window", err)
	}
	if len(res) != 2 {
		return 0, 0, apperr.Dependency("increment rate window", fmt.Errorf("unexpected script reply %v", res))
	}

	return res[0], time.Duration(res[1]) * time.Millisecond, nil
}

// WindowState reads a window without counting a hit. A missing key is an
// empty window.
func (r *RateRepo) WindowState(ctx context.Context, key string) (int64, time.Duration, error) {
	if r.client == nil {
		return 0, 0, errClientNotConfigured
	}
	if key == "" {
		return 0, 0, fmt.Errorf("%w: rate key is required", apperr.ErrValidation)
	}

	pipe := r.client.Pipeline()
	getCmd := pipe.Get(ctx, key)
	ttlCmd := pipe.PTTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, goredis.Nil) {
		return 0, 0, apperr.Dependency("read rate window", err)
	}

	count, err := getCmd.Int64()
	if errors.Is(err, goredis.Nil) {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, apperr.Dependency("read rate window", err)
	}

	ttl := ttlCmd.Val()
	if ttl < 0 {
		ttl = 0
	}
	return count, ttl, nil
}
