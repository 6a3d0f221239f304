package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/renwic/trusthub/internal/domain/model"
)

type EngagementRepo struct {
	pool *pgxpool.Pool
}

func NewEngagementRepo(pool *pgxpool.Pool) *EngagementRepo {
	return &EngagementRepo{pool: pool}
}

// AddLike relies on the (testimonial_id, photo_index, user_id) primary key;
// a repeat like inserts nothing and reports false.
func (r *EngagementRepo) AddLike(ctx context.Context, like model.PhotoLike) (bool, error) {
	if like.TestimonialID == uuid.Nil || like.PhotoIndex < 0 || like.UserID <= 0 {
		return false, fmt.Errorf("invalid photo like payload")
	}
	if r.pool == nil {
		return false, errPoolNotConfigured
	}

	tag, err := r.pool.Exec(ctx, `
INSERT INTO photo_likes (
	testimonial_id,
	photo_index,
	user_id,
	created_at
) VALUES ($1, $2, $3, $4)
ON CONFLICT (testimonial_id, photo_index, user_id) DO NOTHING
`, like.TestimonialID, like.PhotoIndex, like.UserID, like.CreatedAt)
	if err != nil {
		return false, wrapErr("insert photo like", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *EngagementRepo) AddComment(ctx context.Context, comment model.PhotoComment) (model.PhotoComment, error) {
	if comment.ID == uuid.Nil || comment.TestimonialID == uuid.Nil || comment.PhotoIndex < 0 || comment.UserID <= 0 {
		return model.PhotoComment{}, fmt.Errorf("invalid photo comment payload")
	}
	if r.pool == nil {
		return model.PhotoComment{}, errPoolNotConfigured
	}

	if _, err := r.pool.Exec(ctx, `
INSERT INTO photo_comments (
	id,
	testimonial_id,
	photo_index,
	user_id,
	text,
	created_at
) VALUES ($1, $2, $3, $4, $5, $6)
`, comment.ID, comment.TestimonialID, comment.PhotoIndex, comment.UserID, comment.Text, comment.CreatedAt); err != nil {
		return model.PhotoComment{}, wrapErr("insert photo comment", err)
	}
	return comment, nil
}

func (r *EngagementRepo) ListComments(ctx context.Context, ref model.PhotoRef, limit int) ([]model.PhotoComment, error) {
	if ref.TestimonialID == uuid.Nil || ref.PhotoIndex < 0 {
		return nil, fmt.Errorf("invalid photo reference")
	}
	if limit <= 0 {
		limit = 100
	}
	if r.pool == nil {
		return []model.PhotoComment{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, testimonial_id, photo_index, user_id, text, created_at
FROM photo_comments
WHERE testimonial_id = $1 AND photo_index = $2
ORDER BY created_at ASC, id ASC
LIMIT $3
`, ref.TestimonialID, ref.PhotoIndex, limit)
	if err != nil {
		return nil, wrapErr("list photo comments", err)
	}
	defer rows.Close()

	items := make([]model.PhotoComment, 0, limit)
	for rows.Next() {
		var c model.PhotoComment
		if err := rows.Scan(&c.ID, &c.TestimonialID, &c.PhotoIndex, &c.UserID, &c.Text, &c.CreatedAt); err != nil {
			return nil, wrapErr("scan photo comment", err)
		}
		c.CreatedAt = c.CreatedAt.UTC()
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("iterate photo comments", err)
	}
	return items, nil
}

// CountForProfile sums likes and comments across every photo of every
// testimonial about the profile, approved or not.
func (r *EngagementRepo) CountForProfile(ctx context.Context, profileID int64) (model.EngagementCounts, error) {
	if profileID <= 0 {
		return model.EngagementCounts{}, fmt.Errorf("invalid profile id")
	}
	if r.pool == nil {
		return model.EngagementCounts{}, errPoolNotConfigured
	}

	var counts model.EngagementCounts
	err := r.pool.QueryRow(ctx, `
SELECT
	(SELECT COUNT(*) FROM photo_likes l JOIN testimonials t ON t.id = l.testimonial_id WHERE t.profile_id = $1),
	(SELECT COUNT(*) FROM photo_comments c JOIN testimonials t ON t.id = c.testimonial_id WHERE t.profile_id = $1)
`, profileID).Scan(&counts.Likes, &counts.Comments)
	if err != nil {
		return model.EngagementCounts{}, wrapErr("count profile engagement", err)
	}
	return counts, nil
}
