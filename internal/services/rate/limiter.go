package rate

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"
)

const (
	minuteWindow = time.Minute
	tenSecWindow = 10 * time.Second

	scopeSwipes   = "swipes"
	scopeComments = "comments"
)

// TooFastError is returned by services when a caller exceeds a window.
type TooFastError struct {
	RetryAfterSec int64
}

func (e TooFastError) Error() string {
	return "too fast"
}

func (e TooFastError) RetryAfter() int64 {
	if e.RetryAfterSec <= 0 {
		return 1
	}
	return e.RetryAfterSec
}

func IsTooFast(err error) (*TooFastError, bool) {
	var tf TooFastError
	if errors.As(err, &tf) {
		return &tf, true
	}
	return nil, false
}

type WindowStore interface {
	IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
	WindowState(ctx context.Context, key string) (int64, time.Duration, error)
}

type Limits struct {
	SwipesPerMinute   int
	SwipesPer10Sec    int
	CommentsPerMinute int
}

type Limiter struct {
	store  WindowStore
	limits Limits
}

func NewLimiter(store WindowStore, limits Limits) *Limiter {
	if limits.SwipesPerMinute < 0 {
		limits.SwipesPerMinute = 0
	}
	if limits.SwipesPer10Sec < 0 {
		limits.SwipesPer10Sec = 0
	}
	if limits.CommentsPerMinute < 0 {
		limits.CommentsPerMinute = 0
	}

	return &Limiter{
		store:  store,
		limits: limits,
	}
}

func (l *Limiter) AllowSwipe(ctx context.Context, userID int64) (int64, bool, error) {
	return l.allow(ctx, scopeSwipes, userID, []window{
		{key: minuteKey(scopeSwipes, userID), size: minuteWindow, limit: l.limits.SwipesPerMinute},
		{key: tenSecKey(scopeSwipes, userID), size: tenSecWindow, limit: l.limits.SwipesPer10Sec},
	})
}

func (l *Limiter) AllowComment(ctx context.Context, userID int64) (int64, bool, error) {
	return l.allow(ctx, scopeComments, userID, []window{
		{key: minuteKey(scopeComments, userID), size: minuteWindow, limit: l.limits.CommentsPerMinute},
	})
}

// RetryAfterSwipe reports the remaining wait without consuming a slot.
func (l *Limiter) RetryAfterSwipe(ctx context.Context, userID int64) (int64, error) {
	if userID <= 0 {
		return 0, fmt.Errorf("invalid user id")
	}
	if l.store == nil {
		return 0, fmt.Errorf("rate limiter store is nil")
	}

	retryAfterSec := int64(0)
	for _, w := range []window{
		{key: minuteKey(scopeSwipes, userID), limit: l.limits.SwipesPerMinute},
		{key: tenSecKey(scopeSwipes, userID), limit: l.limits.SwipesPer10Sec},
	} {
		if w.limit <= 0 {
			continue
		}
		count, ttl, err := l.store.WindowState(ctx, w.key)
		if err != nil {
			return 0, err
		}
		if count >= int64(w.limit) {
			retryAfterSec = maxInt64(retryAfterSec, ceilSeconds(ttl))
		}
	}

	return retryAfterSec, nil
}

type window struct {
	key   string
	size  time.Duration
	limit int
}

func (l *Limiter) allow(ctx context.Context, scope string, userID int64, windows []window) (int64, bool, error) {
	if userID <= 0 {
		return 0, false, fmt.Errorf("invalid user id")
	}
	if l.store == nil {
		return 0, false, fmt.Errorf("rate limiter store is nil")
	}

	retryAfterSec := int64(0)
	for _, w := range windows {
		if w.limit <= 0 {
			continue
		}
		count, ttl, err := l.store.IncrementWindow(ctx, w.key, w.size)
		if err != nil {
			return 0, false, fmt.Errorf("increment %s window: %w", scope, err)
		}
		if count > int64(w.limit) {
			retryAfterSec = maxInt64(retryAfterSec, ceilSeconds(ttl))
		}
	}

	if retryAfterSec > 0 {
		return retryAfterSec, false, nil
	}

	return 0, true, nil
}

func minuteKey(scope string, userID int64) string {
	return "rate:" + scope + ":min:" + strconv.FormatInt(userID, 10)
}

func tenSecKey(scope string, userID int64) string {
	return "rate:" + scope + ":10s:" + strconv.FormatInt(userID, 10)
}

func ceilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	sec := int64(d / time.Second)
	if d%time.Second != 0 {
		sec++
	}
	if sec <= 0 {
		sec = 1
	}
	return sec
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
