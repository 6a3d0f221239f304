package profiles

import (
	"context"
	"fmt"
	"strings"

	"github.com/renwic/trusthub/internal/domain/apperr"
	"github.com/renwic/trusthub/internal/domain/model"
	"github.com/renwic/trusthub/internal/pkg/validate"
)

type ProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (model.Profile, error)
	UpsertByUserID(ctx context.Context, profile model.Profile) (model.Profile, error)
}

type ScoreInvalidator interface {
	Invalidate(ctx context.Context, profileID int64) error
}

type Service struct {
	store  ProfileStore
	scores ScoreInvalidator
}

type UpdateInput struct {
	DisplayName string   `json:"display_name" validate:"required,max=80"`
	Bio         string   `json:"bio" validate:"max=1000"`
	PhotoCount  int      `json:"photo_count" validate:"min=0,max=12"`
	Occupation  string   `json:"occupation" validate:"max=120"`
	Education   string   `json:"education" validate:"max=120"`
	HeightCM    int      `json:"height_cm" validate:"omitempty,min=100,max=250"`
	Drinking    string   `json:"drinking" validate:"omitempty,oneof=never rarely socially often"`
	Smoking     string   `json:"smoking" validate:"omitempty,oneof=never rarely socially often"`
	Exercise    string   `json:"exercise" validate:"omitempty,oneof=never sometimes often daily"`
	Pets        string   `json:"pets" validate:"max=60"`
	Religion    string   `json:"religion" validate:"max=60"`
	Interests   []string `json:"interests" validate:"max=20,dive,max=40"`
}

func NewService(store ProfileStore, scores ScoreInvalidator) *Service {
	return &Service{
		store:  store,
		scores: scores,
	}
}

func (s *Service) Me(ctx context.Context, userID int64) (model.Profile, error) {
	if userID <= 0 {
		return model.Profile{}, fmt.Errorf("%w: invalid user id", apperr.ErrValidation)
	}
	if s.store == nil {
		return model.Profile{}, fmt.Errorf("profile store is nil")
	}
	return s.store.GetByUserID(ctx, userID)
}

// Update saves the caller's profile, creating it on first use, and drops the
// cached score since completeness may have changed.
func (s *Service) Update(ctx context.Context, userID int64, in UpdateInput) (model.Profile, error) {
	if userID <= 0 {
		return model.Profile{}, fmt.Errorf("%w: invalid user id", apperr.ErrValidation)
	}
	if s.store == nil || s.scores == nil {
		return model.Profile{}, fmt.Errorf("profile dependencies are not configured")
	}

	normalized := normalizeInput(in)
	if err := validate.Struct(normalized); err != nil {
		return model.Profile{}, err
	}

	saved, err := s.store.UpsertByUserID(ctx, model.Profile{
		UserID:      userID,
		DisplayName: normalized.DisplayName,
		Bio:         normalized.Bio,
		PhotoCount:  normalized.PhotoCount,
		Lifestyle: model.Lifestyle{
			Occupation: normalized.Occupation,
			Education:  normalized.Education,
			HeightCM:   normalized.HeightCM,
			Drinking:   normalized.Drinking,
			Smoking:    normalized.Smoking,
			Exercise:   normalized.Exercise,
			Pets:       normalized.Pets,
			Religion:   normalized.Religion,
		},
		Interests: normalized.Interests,
	})
	if err != nil {
		return model.Profile{}, fmt.Errorf("save profile: %w", err)
	}

	if err := s.scores.Invalidate(ctx, saved.ID); err != nil {
		return saved, err
	}
	return saved, nil
}

func normalizeInput(in UpdateInput) UpdateInput {
	out := UpdateInput{
		DisplayName: strings.TrimSpace(in.DisplayName),
		Bio:         strings.TrimSpace(in.Bio),
		PhotoCount:  in.PhotoCount,
		Occupation:  strings.TrimSpace(in.Occupation),
		Education:   strings.TrimSpace(in.Education),
		HeightCM:    in.HeightCM,
		Drinking:    strings.ToLower(strings.TrimSpace(in.Drinking)),
		Smoking:     strings.ToLower(strings.TrimSpace(in.Smoking)),
		Exercise:    strings.ToLower(strings.TrimSpace(in.Exercise)),
		Pets:        strings.TrimSpace(in.Pets),
		Religion:    strings.TrimSpace(in.Religion),
	}
	out.Interests = normalizeList(in.Interests)
	return out
}

// normalizeList lower-cases, trims and de-duplicates, keeping first-seen order.
func normalizeList(values []string) []string {
	result := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		normalized := strings.ToLower(strings.TrimSpace(value))
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		result = append(result, normalized)
	}
	return result
}
