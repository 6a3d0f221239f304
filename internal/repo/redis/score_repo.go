package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/renwic/trusthub/internal/domain/apperr"
	"github.com/renwic/trusthub/internal/domain/model"
)

const (
	scorePrefix      = "score:profile:"
	scoreGenPrefix   = "score:gen:"
	defaultScoreTTL  = 10 * time.Minute
	scoreGenLifetime = 7 * 24 * time.Hour
)

// saveScoreScript writes the score only while the generation still matches
// the one observed before computing.
const saveScoreScript = `
local gen = redis.call("GET", KEYS[2])
if not gen then gen = "0" end
if gen ~= ARGV[1] then
	return 0
end
redis.call("HSET", KEYS[1], "real_rep", ARGV[2], "pop_rep", ARGV[3], "computed_at", ARGV[4])
redis.call("PEXPIRE", KEYS[1], ARGV[5])
return 1
`

const invalidateScoreScript = `
redis.call("INCR", KEYS[2])
redis.call("PEXPIRE", KEYS[2], ARGV[1])
redis.call("DEL", KEYS[1])
return 1
`

type ScoreRepo struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewScoreRepo(client *goredis.Client, ttl time.Duration) *ScoreRepo {
	if ttl <= 0 {
		ttl = defaultScoreTTL
	}
	return &ScoreRepo{client: client, ttl: ttl}
}

func (r *ScoreRepo) Load(ctx context.Context, profileID int64) (model.Score, bool, error) {
	if r.client == nil {
		return model.Score{}, false, errClientNotConfigured
	}
	if profileID <= 0 {
		return model.Score{}, false, fmt.Errorf("invalid profile id")
	}

	values, err := r.client.HGetAll(ctx, scoreKey(profileID)).Result()
	if err != nil {
		return model.Score{}, false, apperr.Dependency("load score", err)
	}
	if len(values) == 0 {
		return model.Score{}, false, nil
	}

	realRep, err := parseInt(values["real_rep"])
	if err != nil {
		return model.Score{}, false, fmt.Errorf("parse real_rep: %w", err)
	}
	popRep, err := parseInt(values["pop_rep"])
	if err != nil {
		return model.Score{}, false, fmt.Errorf("parse pop_rep: %w", err)
	}
	computedAt, err := parseInt64(values["computed_at"])
	if err != nil {
		return model.Score{}, false, fmt.Errorf("parse computed_at: %w", err)
	}

	return model.Score{
		ProfileID:  profileID,
		RealRep:    realRep,
		PopRep:     popRep,
		ComputedAt: time.Unix(0, computedAt).UTC(),
	}, true, nil
}

func (r *ScoreRepo) Generation(ctx context.Context, profileID int64) (int64, error) {
	if r.client == nil {
		return 0, errClientNotConfigured
	}
	gen, err := r.client.Get(ctx, scoreGenKey(profileID)).Int64()
	if err == goredis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, apperr.Dependency("read score generation", err)
	}
	return gen, nil
}

func (r *ScoreRepo) SaveIfGeneration(ctx context.Context, score model.Score, generation int64) (bool, error) {
	if r.client == nil {
		return false, errClientNotConfigured
	}
	if score.ProfileID <= 0 {
		return false, fmt.Errorf("invalid score payload")
	}

	result, err := r.client.Eval(ctx, saveScoreScript,
		[]string{scoreKey(score.ProfileID), scoreGenKey(score.ProfileID)},
		strconv.FormatInt(generation, 10),
		score.RealRep,
		score.PopRep,
		score.ComputedAt.UnixNano(),
		r.ttl.Milliseconds(),
	).Int64()
	if err != nil {
		return false, apperr.Dependency("save score", err)
	}
	return result == 1, nil
}

func (r *ScoreRepo) Invalidate(ctx context.Context, profileID int64) error {
	if r.client == nil {
		return errClientNotConfigured
	}
	if profileID <= 0 {
		return fmt.Errorf("invalid profile id")
	}

	if err := r.client.Eval(ctx, invalidateScoreScript,
		[]string{scoreKey(profileID), scoreGenKey(profileID)},
		scoreGenLifetime.Milliseconds(),
	).Err(); err != nil {
		return apperr.Dependency("invalidate score", err)
	}
	return nil
}

func scoreKey(profileID int64) string {
	return scorePrefix + strconv.FormatInt(profileID, 10)
}

func scoreGenKey(profileID int64) string {
	return scoreGenPrefix + strconv.FormatInt(profileID, 10)
}

func parseInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func parseInt64(raw string) (int64, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}
