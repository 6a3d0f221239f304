package swipes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/renwic/trusthub/internal/domain/apperr"
	"github.com/renwic/trusthub/internal/domain/enums"
	"github.com/renwic/trusthub/internal/domain/model"
	"github.com/renwic/trusthub/internal/domain/rules"
	notifysvc "github.com/renwic/trusthub/internal/services/notify"
	ratesvc "github.com/renwic/trusthub/internal/services/rate"
)

type ProfileStore interface {
	GetByID(ctx context.Context, profileID int64) (model.Profile, error)
	GetByUserID(ctx context.Context, userID int64) (model.Profile, error)
}

// SwipeStore must make Upsert durable before it returns: the reciprocity
// check of the other side relies on seeing it.
type SwipeStore interface {
	Upsert(ctx context.Context, swipe model.Swipe) error
	Get(ctx context.Context, actorProfileID, targetProfileID int64) (model.Swipe, bool, error)
}

type MatchStore interface {
	CreateIfAbsent(ctx context.Context, match model.Match) (model.Match, bool, error)
	GetByPair(ctx context.Context, profileA, profileB int64) (model.Match, error)
}

type RateLimiter interface {
	AllowSwipe(ctx context.Context, userID int64) (int64, bool, error)
}

type Metrics interface {
	Swipe(action string)
	MatchCreated()
}

type SwipeResult struct {
	Matched bool
	// Created is true only for the call that inserted the match.
	Created bool
	MatchID uuid.UUID
}

type Dependencies struct {
	Profiles    ProfileStore
	Swipes      SwipeStore
	Matches     MatchStore
	Notifier    notifysvc.Dispatcher
	RateLimiter RateLimiter
	Metrics     Metrics
	Logger      *zap.Logger
}

type Service struct {
	profiles    ProfileStore
	swipes      SwipeStore
	matches     MatchStore
	notifier    notifysvc.Dispatcher
	rateLimiter RateLimiter
	metrics     Metrics
	logger      *zap.Logger
	now         func() time.Time
	newID       func() uuid.UUID
}

func NewService(deps Dependencies) *Service {
	if deps.Notifier == nil {
		deps.Notifier = notifysvc.Noop{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Service{
		profiles:    deps.Profiles,
		swipes:      deps.Swipes,
		matches:     deps.Matches,
		notifier:    deps.Notifier,
		rateLimiter: deps.RateLimiter,
		metrics:     deps.Metrics,
		logger:      deps.Logger,
		now:         time.Now,
		newID:       uuid.New,
	}
}

func (s *Service) Swipe(ctx context.Context, actorUserID, targetProfileID int64, action string) (SwipeResult, error) {
	if actorUserID <= 0 || targetProfileID <= 0 {
		return SwipeResult{}, fmt.Errorf("%w: invalid swipe ids", apperr.ErrValidation)
	}
	normalized, ok := enums.ParseSwipeAction(action)
	if !ok {
		return SwipeResult{}, fmt.Errorf("%w: unsupported action %q", apperr.ErrValidation, action)
	}
	if s.profiles == nil || s.swipes == nil || s.matches == nil {
		return SwipeResult{}, fmt.Errorf("swipe dependencies are not configured")
	}

	actor, err := s.profiles.GetByUserID(ctx, actorUserID)
	if err != nil {
		return SwipeResult{}, err
	}
	if actor.ID == targetProfileID {
		return SwipeResult{}, fmt.Errorf("%w: cannot swipe on own profile", apperr.ErrValidation)
	}
	target, err := s.profiles.GetByID(ctx, targetProfileID)
	if err != nil {
		return SwipeResult{}, err
	}

	if s.rateLimiter != nil {
		retryAfter, allowed, err := s.rateLimiter.AllowSwipe(ctx, actorUserID)
		if err != nil {
			return SwipeResult{}, apperr.Dependency("apply swipe rate limiter", err)
		}
		if !allowed {
			return SwipeResult{}, ratesvc.TooFastError{RetryAfterSec: retryAfter}
		}
	}

	now := s.now().UTC()
	if err := s.swipes.Upsert(ctx, model.Swipe{
		ActorProfileID:  actor.ID,
		TargetProfileID: target.ID,
		Action:          normalized,
		CreatedAt:       now,
	}); err != nil {
		return SwipeResult{}, fmt.Errorf("record swipe: %w", err)
	}
	if s.metrics != nil {
		s.metrics.Swipe(string(normalized))
	}

	if !normalized.IsPositive() {
		return SwipeResult{}, nil
	}

	reciprocal, found, err := s.swipes.Get(ctx, target.ID, actor.ID)
	if err != nil {
		return SwipeResult{}, fmt.Errorf("lookup reciprocal swipe: %w", err)
	}
	if !found || !reciprocal.Action.IsPositive() {
		return SwipeResult{}, nil
	}

	return s.createMatch(ctx, actor, target, now)
}

func (s *Service) createMatch(ctx context.Context, actor, target model.Profile, now time.Time) (SwipeResult, error) {
	first, second := actor, target
	if first.ID > second.ID {
		first, second = second, first
	}

	candidate := model.Match{
		ID:         s.newID(),
		ProfileAID: first.ID,
		ProfileBID: second.ID,
		UserAID:    first.UserID,
		UserBID:    second.UserID,
		Metadata:   rules.MatchMetadata(first.Interests, second.Interests),
		CreatedAt:  now,
	}

	stored, created, err := s.matches.CreateIfAbsent(ctx, candidate)
	if errors.Is(err, apperr.ErrConflict) {
		stored, err = s.matches.GetByPair(ctx, first.ID, second.ID)
		created = false
	}
	if err != nil {
		return SwipeResult{}, fmt.Errorf("create match: %w", err)
	}

	if created {
		if s.metrics != nil {
			s.metrics.MatchCreated()
		}
		s.logger.Info("match created",
			zap.String("match_id", stored.ID.String()),
			zap.Int64("profile_a_id", stored.ProfileAID),
			zap.Int64("profile_b_id", stored.ProfileBID),
		)
		_ = s.notifier.MatchCreated(ctx, notifysvc.MatchCreatedEvent{
			MatchID:         stored.ID,
			ProfileAID:      stored.ProfileAID,
			ProfileBID:      stored.ProfileBID,
			RecipientIDs:    []int64{stored.UserAID, stored.UserBID},
			SharedInterests: stored.Metadata.SharedInterests,
			Compatibility:   stored.Metadata.Compatibility,
			CreatedAt:       stored.CreatedAt,
		})
	}

	return SwipeResult{Matched: true, Created: created, MatchID: stored.ID}, nil
}
