package testimonials

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/renwic/trusthub/internal/domain/apperr"
	"github.com/renwic/trusthub/internal/domain/model"
	"github.com/renwic/trusthub/internal/pkg/validate"
	notifysvc "github.com/renwic/trusthub/internal/services/notify"
)

const (
	defaultMaxPhotos = 6
	defaultListLimit = 50
)

type TestimonialStore interface {
	Create(ctx context.Context, item model.Testimonial) (model.Testimonial, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.Testimonial, error)
	SetApproved(ctx context.Context, id uuid.UUID, approved bool) (model.Testimonial, error)
	ListByProfile(ctx context.Context, profileID int64, approvedOnly bool) ([]model.Testimonial, error)
}

type ProfileStore interface {
	GetByID(ctx context.Context, profileID int64) (model.Profile, error)
}

type ScoreInvalidator interface {
	Invalidate(ctx context.Context, profileID int64) error
}

type Config struct {
	// AutoApprove counts new props toward RealRep before any review.
	AutoApprove bool
	MaxPhotos   int
}

type Dependencies struct {
	Testimonials TestimonialStore
	Profiles     ProfileStore
	Scores       ScoreInvalidator
	Notifier     notifysvc.Dispatcher
	Logger       *zap.Logger
}

type Service struct {
	testimonials TestimonialStore
	profiles     ProfileStore
	scores       ScoreInvalidator
	notifier     notifysvc.Dispatcher
	logger       *zap.Logger
	cfg          Config
	now          func() time.Time
	newID        func() uuid.UUID
}

type SubmitInput struct {
	AuthorName  string       `json:"author_name" validate:"required_without=AuthorEmail,max=120"`
	AuthorEmail string       `json:"author_email" validate:"omitempty,email,max=254"`
	Body        string       `json:"body" validate:"required,max=4000"`
	Ratings     RatingsInput `json:"ratings"`
	Photos      []PhotoInput `json:"photos" validate:"dive"`
}

type RatingsInput struct {
	Trustworthy int `json:"trustworthy" validate:"min=1,max=5"`
	Fun         int `json:"fun" validate:"min=1,max=5"`
	Caring      int `json:"caring" validate:"min=1,max=5"`
	Ambitious   int `json:"ambitious" validate:"min=1,max=5"`
	Reliable    int `json:"reliable" validate:"min=1,max=5"`
}

type PhotoInput struct {
	URL         string `json:"url" validate:"required,url,max=2048"`
	Description string `json:"description" validate:"max=500"`
}

func NewService(deps Dependencies, cfg Config) *Service {
	if cfg.MaxPhotos <= 0 {
		cfg.MaxPhotos = defaultMaxPhotos
	}
	if deps.Notifier == nil {
		deps.Notifier = notifysvc.Noop{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &Service{
		testimonials: deps.Testimonials,
		profiles:     deps.Profiles,
		scores:       deps.Scores,
		notifier:     deps.Notifier,
		logger:       deps.Logger,
		cfg:          cfg,
		now:          time.Now,
		newID:        uuid.New,
	}
}

// Submit stores a prop about profileID and drops the subject's cached score.
func (s *Service) Submit(ctx context.Context, profileID int64, in SubmitInput) (model.Testimonial, error) {
	if profileID <= 0 {
		return model.Testimonial{}, fmt.Errorf("%w: invalid profile id", apperr.ErrValidation)
	}
	if err := s.ready(); err != nil {
		return model.Testimonial{}, err
	}

	in = normalizeInput(in)
	if err := validate.Struct(in); err != nil {
		return model.Testimonial{}, err
	}
	if len(in.Photos) > s.cfg.MaxPhotos {
		return model.Testimonial{}, fmt.Errorf("%w: at most %d photos per testimonial", apperr.ErrValidation, s.cfg.MaxPhotos)
	}

	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return model.Testimonial{}, err
	}

	item := model.Testimonial{
		ID:        s.newID(),
		ProfileID: profile.ID,
		Author:    model.Author{Name: in.AuthorName, Email: in.AuthorEmail},
		Body:      in.Body,
		Ratings: model.Ratings{
			Trustworthy: in.Ratings.Trustworthy,
			Fun:         in.Ratings.Fun,
			Caring:      in.Ratings.Caring,
			Ambitious:   in.Ratings.Ambitious,
			Reliable:    in.Ratings.Reliable,
		},
		Approved:  s.cfg.AutoApprove,
		Photos:    make([]model.Photo, 0, len(in.Photos)),
		CreatedAt: s.now().UTC(),
	}
	for _, photo := range in.Photos {
		item.Photos = append(item.Photos, model.Photo{URL: photo.URL, Description: photo.Description})
	}

	created, err := s.testimonials.Create(ctx, item)
	if err != nil {
		return model.Testimonial{}, fmt.Errorf("create testimonial: %w", err)
	}

	if err := s.scores.Invalidate(ctx, profile.ID); err != nil {
		return created, err
	}

	_ = s.notifier.PropReceived(ctx, notifysvc.PropReceivedEvent{
		TestimonialID: created.ID,
		ProfileID:     profile.ID,
		RecipientID:   profile.UserID,
		AuthorName:    created.Author.Name,
		Approved:      created.Approved,
		CreatedAt:     created.CreatedAt,
	})

	return created, nil
}

// SetApproval flips the approval flag. Repeating the current state is a no-op
// that still reports the testimonial.
func (s *Service) SetApproval(ctx context.Context, testimonialID uuid.UUID, approved bool) (model.Testimonial, error) {
	if testimonialID == uuid.Nil {
		return model.Testimonial{}, fmt.Errorf("%w: invalid testimonial id", apperr.ErrValidation)
	}
	if err := s.ready(); err != nil {
		return model.Testimonial{}, err
	}

	current, err := s.testimonials.GetByID(ctx, testimonialID)
	if err != nil {
		return model.Testimonial{}, err
	}
	if current.Approved == approved {
		return current, nil
	}

	updated, err := s.testimonials.SetApproved(ctx, testimonialID, approved)
	if err != nil {
		return model.Testimonial{}, fmt.Errorf("set testimonial approval: %w", err)
	}
	if err := s.scores.Invalidate(ctx, updated.ProfileID); err != nil {
		return updated, err
	}

	s.logger.Info("testimonial approval changed",
		zap.String("testimonial_id", updated.ID.String()),
		zap.Int64("profile_id", updated.ProfileID),
		zap.Bool("approved", approved),
	)
	return updated, nil
}

func (s *Service) ListApproved(ctx context.Context, profileID int64, limit int) ([]model.Testimonial, error) {
	if profileID <= 0 {
		return nil, fmt.Errorf("%w: invalid profile id", apperr.ErrValidation)
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}

	if _, err := s.profiles.GetByID(ctx, profileID); err != nil {
		return nil, err
	}
	items, err := s.testimonials.ListByProfile(ctx, profileID, true)
	if err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Service) ready() error {
	if s.testimonials == nil || s.profiles == nil || s.scores == nil {
		return fmt.Errorf("testimonial dependencies are not configured")
	}
	return nil
}

func normalizeInput(in SubmitInput) SubmitInput {
	in.AuthorName = strings.TrimSpace(in.AuthorName)
	in.AuthorEmail = strings.TrimSpace(in.AuthorEmail)
	in.Body = strings.TrimSpace(in.Body)
	in.Photos = append([]PhotoInput(nil), in.Photos...)
	for i := range in.Photos {
		in.Photos[i].URL = strings.TrimSpace(in.Photos[i].URL)
		in.Photos[i].Description = strings.TrimSpace(in.Photos[i].Description)
	}
	return in
}
