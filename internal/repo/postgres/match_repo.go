package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/renwic/trusthub/internal/domain/model"
)

type MatchRepo struct {
	pool *pgxpool.Pool
}

func NewMatchRepo(pool *pgxpool.Pool) *MatchRepo {
	return &MatchRepo{pool: pool}
}

const matchColumns = `
	id,
	profile_a_id,
	profile_b_id,
	user_a_id,
	user_b_id,
	shared_interests,
	compatibility,
	created_at`

// CreateIfAbsent inserts the match unless the ordered pair already has one.
// When another writer won, the existing row is returned with created=false.
func (r *MatchRepo) CreateIfAbsent(ctx context.Context, match model.Match) (model.Match, bool, error) {
	if match.ID == uuid.Nil || match.ProfileAID <= 0 || match.ProfileBID <= 0 || match.ProfileAID >= match.ProfileBID {
		return model.Match{}, false, fmt.Errorf("invalid match payload")
	}
	if r.pool == nil {
		return model.Match{}, false, errPoolNotConfigured
	}

	shared := match.Metadata.SharedInterests
	if shared == nil {
		shared = []string{}
	}

	stored, err := scanMatch(r.pool.QueryRow(ctx, `
INSERT INTO matches (
	id,
	profile_a_id,
	profile_b_id,
	user_a_id,
	user_b_id,
	shared_interests,
	compatibility,
	created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (profile_a_id, profile_b_id) DO NOTHING
RETURNING`+matchColumns,
		match.ID,
		match.ProfileAID,
		match.ProfileBID,
		match.UserAID,
		match.UserBID,
		shared,
		match.Metadata.Compatibility,
		match.CreatedAt,
	))
	if err == nil {
		return stored, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return model.Match{}, false, wrapErr("create match", err)
	}

	existing, err := r.GetByPair(ctx, match.ProfileAID, match.ProfileBID)
	if err != nil {
		return model.Match{}, false, err
	}
	return existing, false, nil
}

func (r *MatchRepo) GetByPair(ctx context.Context, profileA, profileB int64) (model.Match, error) {
	if profileA <= 0 || profileB <= 0 || profileA == profileB {
		return model.Match{}, fmt.Errorf("invalid match pair")
	}
	if r.pool == nil {
		return model.Match{}, errPoolNotConfigured
	}

	a, b := model.PairKey(profileA, profileB)
	match, err := scanMatch(r.pool.QueryRow(ctx, `SELECT`+matchColumns+` FROM matches WHERE profile_a_id = $1 AND profile_b_id = $2`, a, b))
	if err != nil {
		return model.Match{}, wrapErr(fmt.Sprintf("get match %d/%d", a, b), err)
	}
	return match, nil
}

func (r *MatchRepo) ListForProfile(ctx context.Context, profileID int64, limit int) ([]model.Match, error) {
	if profileID <= 0 {
		return nil, fmt.Errorf("invalid profile id")
	}
	if limit <= 0 {
		limit = 100
	}
	if r.pool == nil {
		return []model.Match{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT`+matchColumns+`
FROM matches
WHERE profile_a_id = $1 OR profile_b_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2
`, profileID, limit)
	if err != nil {
		return nil, wrapErr("list matches", err)
	}
	defer rows.Close()

	items := make([]model.Match, 0, limit)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, wrapErr("scan match", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("iterate matches", err)
	}
	return items, nil
}

func scanMatch(row pgx.Row) (model.Match, error) {
	var m model.Match
	err := row.Scan(
		&m.ID,
		&m.ProfileAID,
		&m.ProfileBID,
		&m.UserAID,
		&m.UserBID,
		&m.Metadata.SharedInterests,
		&m.Metadata.Compatibility,
		&m.CreatedAt,
	)
	if err != nil {
		return model.Match{}, err
	}
	m.CreatedAt = m.CreatedAt.UTC()
	return m, nil
}
