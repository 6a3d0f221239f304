package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/renwic/trusthub/internal/domain/model"
)

type TestimonialRepo struct {
	pool *pgxpool.Pool
}

func NewTestimonialRepo(pool *pgxpool.Pool) *TestimonialRepo {
	return &TestimonialRepo{pool: pool}
}

const testimonialColumns = `
	t.id,
	t.profile_id,
	t.author_name,
	t.author_email,
	t.body,
	t.rating_trustworthy,
	t.rating_fun,
	t.rating_caring,
	t.rating_ambitious,
	t.rating_reliable,
	t.approved,
	t.created_at`

// Create inserts the testimonial and its photos in one transaction.
func (r *TestimonialRepo) Create(ctx context.Context, item model.Testimonial) (model.Testimonial, error) {
	if item.ID == uuid.Nil || item.ProfileID <= 0 {
		return model.Testimonial{}, fmt.Errorf("invalid testimonial payload")
	}
	if r.pool == nil {
		return model.Testimonial{}, errPoolNotConfigured
	}

	err := WithTx(ctx, r.pool, func(txCtx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(txCtx, `
INSERT INTO testimonials (
	id,
	profile_id,
	author_name,
	author_email,
	body,
	rating_trustworthy,
	rating_fun,
	rating_caring,
	rating_ambitious,
	rating_reliable,
	approved,
	created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`,
			item.ID,
			item.ProfileID,
			item.Author.Name,
			item.Author.Email,
			item.Body,
			item.Ratings.Trustworthy,
			item.Ratings.Fun,
			item.Ratings.Caring,
			item.Ratings.Ambitious,
			item.Ratings.Reliable,
			item.Approved,
			item.CreatedAt,
		); err != nil {
			return wrapErr("insert testimonial", err)
		}

		if len(item.Photos) == 0 {
			return nil
		}
		batch := &pgx.Batch{}
		for i, photo := range item.Photos {
			batch.Queue(`
INSERT INTO testimonial_photos (testimonial_id, photo_index, url, description)
VALUES ($1, $2, $3, $4)
`, item.ID, i, photo.URL, photo.Description)
		}
		if err := tx.SendBatch(txCtx, batch).Close(); err != nil {
			return wrapErr("insert testimonial photos", err)
		}
		return nil
	})
	if err != nil {
		return model.Testimonial{}, wrapTxErr("create testimonial", err)
	}
	return item, nil
}

func (r *TestimonialRepo) GetByID(ctx context.Context, id uuid.UUID) (model.Testimonial, error) {
	if id == uuid.Nil {
		return model.Testimonial{}, fmt.Errorf("invalid testimonial id")
	}
	if r.pool == nil {
		return model.Testimonial{}, errPoolNotConfigured
	}

	item, err := scanTestimonial(r.pool.QueryRow(ctx, `SELECT`+testimonialColumns+` FROM testimonials t WHERE t.id = $1`, id))
	if err != nil {
		return model.Testimonial{}, wrapErr(fmt.Sprintf("get testimonial %s", id), err)
	}

	photos, err := r.loadPhotos(ctx, []uuid.UUID{id})
	if err != nil {
		return model.Testimonial{}, err
	}
	item.Photos = photos[id]
	return item, nil
}

func (r *TestimonialRepo) SetApproved(ctx context.Context, id uuid.UUID, approved bool) (model.Testimonial, error) {
	if id == uuid.Nil {
		return model.Testimonial{}, fmt.Errorf("invalid testimonial id")
	}
	if r.pool == nil {
		return model.Testimonial{}, errPoolNotConfigured
	}

	tag, err := r.pool.Exec(ctx, `UPDATE testimonials SET approved = $2 WHERE id = $1`, id, approved)
	if err != nil {
		return model.Testimonial{}, wrapErr("set testimonial approval", err)
	}
	if tag.RowsAffected() == 0 {
		return model.Testimonial{}, wrapErr(fmt.Sprintf("set testimonial approval %s", id), pgx.ErrNoRows)
	}
	return r.GetByID(ctx, id)
}

func (r *TestimonialRepo) ListByProfile(ctx context.Context, profileID int64, approvedOnly bool) ([]model.Testimonial, error) {
	if profileID <= 0 {
		return nil, fmt.Errorf("invalid profile id")
	}
	if r.pool == nil {
		return nil, errPoolNotConfigured
	}

	rows, err := r.pool.Query(ctx, `
SELECT`+testimonialColumns+`
FROM testimonials t
WHERE t.profile_id = $1
	AND ($2 = FALSE OR t.approved)
ORDER BY t.created_at DESC, t.id DESC
`, profileID, approvedOnly)
	if err != nil {
		return nil, wrapErr("list testimonials", err)
	}
	defer rows.Close()

	items := make([]model.Testimonial, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		item, err := scanTestimonial(rows)
		if err != nil {
			return nil, wrapErr("scan testimonial", err)
		}
		items = append(items, item)
		ids = append(ids, item.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("iterate testimonials", err)
	}

	photos, err := r.loadPhotos(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Photos = photos[items[i].ID]
	}
	return items, nil
}

func (r *TestimonialRepo) loadPhotos(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]model.Photo, error) {
	out := make(map[uuid.UUID][]model.Photo, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT testimonial_id, url, description
FROM testimonial_photos
WHERE testimonial_id = ANY($1)
ORDER BY testimonial_id, photo_index
`, ids)
	if err != nil {
		return nil, wrapErr("list testimonial photos", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id    uuid.UUID
			photo model.Photo
		)
		if err := rows.Scan(&id, &photo.URL, &photo.Description); err != nil {
			return nil, wrapErr("scan testimonial photo", err)
		}
		out[id] = append(out[id], photo)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("iterate testimonial photos", err)
	}
	return out, nil
}

func scanTestimonial(row pgx.Row) (model.Testimonial, error) {
	var t model.Testimonial
	err := row.Scan(
		&t.ID,
		&t.ProfileID,
		&t.Author.Name,
		&t.Author.Email,
		&t.Body,
		&t.Ratings.Trustworthy,
		&t.Ratings.Fun,
		&t.Ratings.Caring,
		&t.Ratings.Ambitious,
		&t.Ratings.Reliable,
		&t.Approved,
		&t.CreatedAt,
	)
	if err != nil {
		return model.Testimonial{}, err
	}
	t.CreatedAt = t.CreatedAt.UTC()
	return t, nil
}
