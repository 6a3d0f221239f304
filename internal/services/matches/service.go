package matches

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/renwic/trusthub/internal/domain/apperr"
	"github.com/renwic/trusthub/internal/domain/model"
)

const defaultListLimit = 100

type MatchStore interface {
	ListForProfile(ctx context.Context, profileID int64, limit int) ([]model.Match, error)
}

type ProfileStore interface {
	GetByID(ctx context.Context, profileID int64) (model.Profile, error)
	GetByUserID(ctx context.Context, userID int64) (model.Profile, error)
}

type Service struct {
	matchStore   MatchStore
	profileStore ProfileStore
}

type Dependencies struct {
	MatchStore   MatchStore
	ProfileStore ProfileStore
}

type MatchItem struct {
	ID              uuid.UUID
	TargetProfileID int64
	DisplayName     string
	SharedInterests []string
	Compatibility   int
	CreatedAt       time.Time
}

func NewService(deps Dependencies) *Service {
	return &Service{
		matchStore:   deps.MatchStore,
		profileStore: deps.ProfileStore,
	}
}

// List returns the caller's matches, newest first.
func (s *Service) List(ctx context.Context, userID int64, limit int) ([]MatchItem, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: invalid user id", apperr.ErrValidation)
	}
	if s.matchStore == nil || s.profileStore == nil {
		return nil, fmt.Errorf("match dependencies are not configured")
	}
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}

	self, err := s.profileStore.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows, err := s.matchStore.ListForProfile(ctx, self.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	items := make([]MatchItem, 0, len(rows))
	for _, row := range rows {
		targetID := row.Other(self.ID)
		item := MatchItem{
			ID:              row.ID,
			TargetProfileID: targetID,
			SharedInterests: row.Metadata.SharedInterests,
			Compatibility:   row.Metadata.Compatibility,
			CreatedAt:       row.CreatedAt,
		}
		target, err := s.profileStore.GetByID(ctx, targetID)
		switch {
		case err == nil:
			item.DisplayName = target.DisplayName
		case errors.Is(err, apperr.ErrNotFound):
		default:
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
