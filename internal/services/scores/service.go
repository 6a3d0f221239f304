package scores

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/renwic/trusthub/internal/domain/apperr"
	"github.com/renwic/trusthub/internal/domain/model"
	"github.com/renwic/trusthub/internal/domain/rules"
)

// Store keeps computed scores keyed by profile. Every Invalidate bumps the
// profile's generation; SaveIfGeneration refuses to write once it moved.
type Store interface {
	Load(ctx context.Context, profileID int64) (model.Score, bool, error)
	Generation(ctx context.Context, profileID int64) (int64, error)
	SaveIfGeneration(ctx context.Context, score model.Score, generation int64) (bool, error)
	Invalidate(ctx context.Context, profileID int64) error
}

type ProfileStore interface {
	GetByID(ctx context.Context, profileID int64) (model.Profile, error)
}

type TestimonialStore interface {
	ListByProfile(ctx context.Context, profileID int64, approvedOnly bool) ([]model.Testimonial, error)
}

type EngagementStore interface {
	CountForProfile(ctx context.Context, profileID int64) (model.EngagementCounts, error)
}

type Metrics interface {
	ScoreCacheHit()
	ScoreCacheMiss()
	ScoreCacheError()
}

type Config struct {
	RealRep rules.RealRepConfig
	PopRep  rules.PopRepConfig
}

type Dependencies struct {
	Store        Store
	Profiles     ProfileStore
	Testimonials TestimonialStore
	Engagement   EngagementStore
	Metrics      Metrics
	Logger       *zap.Logger
}

type Service struct {
	store        Store
	profiles     ProfileStore
	testimonials TestimonialStore
	engagement   EngagementStore
	metrics      Metrics
	logger       *zap.Logger
	cfg          Config
	group        singleflight.Group
	now          func() time.Time
}

func NewService(deps Dependencies, cfg Config) *Service {
	if deps.Store == nil {
		deps.Store = NewMemoryStore()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if cfg.RealRep == (rules.RealRepConfig{}) {
		cfg.RealRep = rules.DefaultRealRepConfig()
	}
	if cfg.PopRep == (rules.PopRepConfig{}) {
		cfg.PopRep = rules.DefaultPopRepConfig()
	}

	return &Service{
		store:        deps.Store,
		profiles:     deps.Profiles,
		testimonials: deps.Testimonials,
		engagement:   deps.Engagement,
		metrics:      deps.Metrics,
		logger:       deps.Logger,
		cfg:          cfg,
		now:          time.Now,
	}
}

// Get returns the memoized score for a profile, computing it on a miss.
// Concurrent misses for the same profile and generation share one computation.
func (s *Service) Get(ctx context.Context, profileID int64) (model.Score, error) {
	if profileID <= 0 {
		return model.Score{}, fmt.Errorf("%w: invalid profile id", apperr.ErrValidation)
	}
	if s.profiles == nil || s.testimonials == nil || s.engagement == nil {
		return model.Score{}, fmt.Errorf("score dependencies are not configured")
	}

	score, ok, err := s.store.Load(ctx, profileID)
	if err != nil {
		s.cacheError("load", profileID, err)
		return s.compute(ctx, profileID)
	}
	if ok {
		s.hit()
		return score, nil
	}
	s.miss()

	generation, err := s.store.Generation(ctx, profileID)
	if err != nil {
		s.cacheError("generation", profileID, err)
		return s.compute(ctx, profileID)
	}

	key := strconv.FormatInt(profileID, 10) + ":" + strconv.FormatInt(generation, 10)
	value, err, _ := s.group.Do(key, func() (interface{}, error) {
		computed, err := s.compute(ctx, profileID)
		if err != nil {
			return model.Score{}, err
		}
		if _, err := s.store.SaveIfGeneration(ctx, computed, generation); err != nil {
			s.cacheError("save", profileID, err)
		}
		return computed, nil
	})
	if err != nil {
		return model.Score{}, err
	}
	return value.(model.Score), nil
}

// Invalidate drops the cached score so the next Get recomputes it.
func (s *Service) Invalidate(ctx context.Context, profileID int64) error {
	if profileID <= 0 {
		return fmt.Errorf("%w: invalid profile id", apperr.ErrValidation)
	}
	if err := s.store.Invalidate(ctx, profileID); err != nil {
		return fmt.Errorf("invalidate score for profile %d: %w", profileID, err)
	}
	return nil
}


func (s *Service) compute(ctx context.Context, profileID int64) (model.Score, error) {
	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return model.Score{}, err
	}
	items, err := s.testimonials.ListByProfile(ctx, profileID, true)
	if err != nil {
		return model.Score{}, err
	}
	counts, err := s.engagement.CountForProfile(ctx, profileID)
	if err != nil {
		return model.Score{}, err
	}

	return model.Score{
		ProfileID:  profile.ID,
		RealRep:    rules.ComputeRealRep(profile.Completeness(), items, s.cfg.RealRep),
		PopRep:     rules.ComputePopRep(counts.Likes, counts.Comments, s.cfg.PopRep),
		ComputedAt: s.now().UTC(),
	}, nil
}

func (s *Service) cacheError(op string, profileID int64, err error) {
	s.logger.Warn("score cache unavailable, computing directly",
		zap.String("op", op),
		zap.Int64("profile_id", profileID),
		zap.Error(err),
	)
	if s.metrics != nil {
		s.metrics.ScoreCacheError()
	}
}

func (s *Service) hit() {
	if s.metrics != nil {
		s.metrics.ScoreCacheHit()
	}
}

func (s *Service) miss() {
	if s.metrics != nil {
		s.metrics.ScoreCacheMiss()
	}
}
