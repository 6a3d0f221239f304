package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/renwic/trusthub/internal/domain/model"
)

type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

const profileColumns = `
	id,
	user_id,
	display_name,
	bio,
	photo_count,
	occupation,
	education,
	height_cm,
	drinking,
	smoking,
	exercise,
	pets,
	religion,
	interests,
	created_at,
	updated_at`

func (r *ProfileRepo) GetByID(ctx context.Context, profileID int64) (model.Profile, error) {
	if profileID <= 0 {
		return model.Profile{}, fmt.Errorf("invalid profile id")
	}
	if r.pool == nil {
		return model.Profile{}, errPoolNotConfigured
	}

	profile, err := scanProfile(r.pool.QueryRow(ctx, `SELECT`+profileColumns+` FROM profiles WHERE id = $1`, profileID))
	if err != nil {
		return model.Profile{}, wrapErr(fmt.Sprintf("get profile %d", profileID), err)
	}
	return profile, nil
}

func (r *ProfileRepo) GetByUserID(ctx context.Context, userID int64) (model.Profile, error) {
	if userID <= 0 {
		return model.Profile{}, fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return model.Profile{}, errPoolNotConfigured
	}

	profile, err := scanProfile(r.pool.QueryRow(ctx, `SELECT`+profileColumns+` FROM profiles WHERE user_id = $1`, userID))
	if err != nil {
		return model.Profile{}, wrapErr(fmt.Sprintf("get profile for user %d", userID), err)
	}
	return profile, nil
}

func (r *ProfileRepo) UpsertByUserID(ctx context.Context, p model.Profile) (model.Profile, error) {
	if p.UserID <= 0 {
		return model.Profile{}, fmt.Errorf("invalid profile payload")
	}
	if r.pool == nil {
		return model.Profile{}, errPoolNotConfigured
	}

	interests := p.Interests
	if interests == nil {
		interests = []string{}
	}

	saved, err := scanProfile(r.pool.QueryRow(ctx, `
INSERT INTO profiles (
	user_id,
	display_name,
	bio,
	photo_count,
	occupation,
	education,
	height_cm,
	drinking,
	smoking,
	exercise,
	pets,
	religion,
	interests,
	created_at,
	updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
ON CONFLICT (user_id) DO UPDATE SET
	display_name = EXCLUDED.display_name,
	bio = EXCLUDED.bio,
	photo_count = EXCLUDED.photo_count,
	occupation = EXCLUDED.occupation,
	education = EXCLUDED.education,
	height_cm = EXCLUDED.height_cm,
	drinking = EXCLUDED.drinking,
	smoking = EXCLUDED.smoking,
	exercise = EXCLUDED.exercise,
	pets = EXCLUDED.pets,
	religion = EXCLUDED.religion,
	interests = EXCLUDED.interests,
	updated_at = NOW()
RETURNING`+profileColumns,
		p.UserID,
		p.DisplayName,
		p.Bio,
		p.PhotoCount,
		p.Lifestyle.Occupation,
		p.Lifestyle.Education,
		p.Lifestyle.HeightCM,
		p.Lifestyle.Drinking,
		p.Lifestyle.Smoking,
		p.Lifestyle.Exercise,
		p.Lifestyle.Pets,
		p.Lifestyle.Religion,
		interests,
	))
	if err != nil {
		return model.Profile{}, wrapErr("upsert profile", err)
	}
	return saved, nil
}

func scanProfile(row pgx.Row) (model.Profile, error) {
	var p model.Profile
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.DisplayName,
		&p.Bio,
		&p.PhotoCount,
		&p.Lifestyle.Occupation,
		&p.Lifestyle.Education,
		&p.Lifestyle.HeightCM,
		&p.Lifestyle.Drinking,
		&p.Lifestyle.Smoking,
		&p.Lifestyle.Exercise,
		&p.Lifestyle.Pets,
		&p.Lifestyle.Religion,
		&p.Interests,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return model.Profile{}, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}
