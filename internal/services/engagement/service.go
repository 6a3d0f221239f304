package engagement

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/renwic/trusthub/internal/domain/apperr"
	"github.com/renwic/trusthub/internal/domain/model"
	"github.com/renwic/trusthub/internal/pkg/validate"
	ratesvc "github.com/renwic/trusthub/internal/services/rate"
)

const (
	defaultMaxCommentLength = 1000
	defaultCommentPage      = 100
)

type TestimonialStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (model.Testimonial, error)
}

type EngagementStore interface {
	AddLike(ctx context.Context, like model.PhotoLike) (bool, error)
	AddComment(ctx context.Context, comment model.PhotoComment) (model.PhotoComment, error)
	ListComments(ctx context.Context, ref model.PhotoRef, limit int) ([]model.PhotoComment, error)
}

type ScoreInvalidator interface {
	Invalidate(ctx context.Context, profileID int64) error
}

type RateLimiter interface {
	AllowComment(ctx context.Context, userID int64) (int64, bool, error)
}

type Config struct {
	MaxCommentLength int
}

type Dependencies struct {
	Testimonials TestimonialStore
	Engagement   EngagementStore
	Scores       ScoreInvalidator
	RateLimiter  RateLimiter
}

type Service struct {
	testimonials TestimonialStore
	engagement   EngagementStore
	scores       ScoreInvalidator
	rateLimiter  RateLimiter
	cfg          Config
	now          func() time.Time
	newID        func() uuid.UUID
}

type commentInput struct {
	Text string `json:"text" validate:"required"`
}

func NewService(deps Dependencies, cfg Config) *Service {
	if cfg.MaxCommentLength <= 0 {
		cfg.MaxCommentLength = defaultMaxCommentLength
	}
	return &Service{
		testimonials: deps.Testimonials,
		engagement:   deps.Engagement,
		scores:       deps.Scores,
		rateLimiter:  deps.RateLimiter,
		cfg:          cfg,
		now:          time.Now,
		newID:        uuid.New,
	}
}

// LikePhoto is idempotent per (testimonial, photo, user). The score is only
// invalidated when a new like is stored.
func (s *Service) LikePhoto(ctx context.Context, testimonialID uuid.UUID, photoIndex int, userID int64) error {
	if userID <= 0 {
		return fmt.Errorf("%w: invalid user id", apperr.ErrValidation)
	}
	if err := s.ready(); err != nil {
		return err
	}

	item, err := s.resolvePhoto(ctx, testimonialID, photoIndex)
	if err != nil {
		return err
	}

	created, err := s.engagement.AddLike(ctx, model.PhotoLike{
		PhotoRef:  model.PhotoRef{TestimonialID: item.ID, PhotoIndex: photoIndex},
		UserID:    userID,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("add photo like: %w", err)
	}
	if !created {
		return nil
	}
	return s.scores.Invalidate(ctx, item.ProfileID)
}

func (s *Service) CommentOnPhoto(ctx context.Context, testimonialID uuid.UUID, photoIndex int, userID int64, text string) (model.PhotoComment, error) {
	if userID <= 0 {
		return model.PhotoComment{}, fmt.Errorf("%w: invalid user id", apperr.ErrValidation)
	}
	if err := s.ready(); err != nil {
		return model.PhotoComment{}, err
	}

	text = strings.TrimSpace(text)
	if err := validate.Struct(commentInput{Text: text}); err != nil {
		return model.PhotoComment{}, err
	}
	if len([]rune(text)) > s.cfg.MaxCommentLength {
		return model.PhotoComment{}, fmt.Errorf("%w: comment longer than %d characters", apperr.ErrValidation, s.cfg.MaxCommentLength)
	}

	item, err := s.resolvePhoto(ctx, testimonialID, photoIndex)
	if err != nil {
		return model.PhotoComment{}, err
	}

	if s.rateLimiter != nil {
		retryAfter, allowed, err := s.rateLimiter.AllowComment(ctx, userID)
		if err != nil {
			return model.PhotoComment{}, apperr.Dependency("apply comment rate limiter", err)
		}
		if !allowed {
			return model.PhotoComment{}, ratesvc.TooFastError{RetryAfterSec: retryAfter}
		}
	}

	comment, err := s.engagement.AddComment(ctx, model.PhotoComment{
		ID:        s.newID(),
		PhotoRef:  model.PhotoRef{TestimonialID: item.ID, PhotoIndex: photoIndex},
		UserID:    userID,
		Text:      text,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return model.PhotoComment{}, fmt.Errorf("add photo comment: %w", err)
	}
	if err := s.scores.Invalidate(ctx, item.ProfileID); err != nil {
		return comment, err
	}
	return comment, nil
}

func (s *Service) ListComments(ctx context.Context, testimonialID uuid.UUID, photoIndex int, limit int) ([]model.PhotoComment, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > defaultCommentPage {
		limit = defaultCommentPage
	}

	item, err := s.resolvePhoto(ctx, testimonialID, photoIndex)
	if err != nil {
		return nil, err
	}
	items, err := s.engagement.ListComments(ctx, model.PhotoRef{TestimonialID: item.ID, PhotoIndex: photoIndex}, limit)
	if err != nil {
		return nil, fmt.Errorf("list photo comments: %w", err)
	}
	return items, nil
}

func (s *Service) resolvePhoto(ctx context.Context, testimonialID uuid.UUID, photoIndex int) (model.Testimonial, error) {
	if testimonialID == uuid.Nil {
		return model.Testimonial{}, fmt.Errorf("%w: invalid testimonial id", apperr.ErrValidation)
	}
	if photoIndex < 0 {
		return model.Testimonial{}, fmt.Errorf("%w: invalid photo index", apperr.ErrValidation)
	}

	item, err := s.testimonials.GetByID(ctx, testimonialID)
	if err != nil {
		return model.Testimonial{}, err
	}
	if !item.HasPhoto(photoIndex) {
		return model.Testimonial{}, fmt.Errorf("%w: photo %d on testimonial %s", apperr.ErrNotFound, photoIndex, testimonialID)
	}
	return item, nil
}

func (s *Service) ready() error {
	if s.testimonials == nil || s.engagement == nil || s.scores == nil {
		return fmt.Errorf("engagement dependencies are not configured")
	}
	return nil
}
