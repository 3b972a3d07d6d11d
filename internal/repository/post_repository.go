package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/portfolio-site/backend/internal/model"
)

// PostRepository handles blog post data access.
type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

// List returns posts without their content, newest first.
func (r *PostRepository) List(ctx context.Context, includePrivate bool) ([]model.Post, error) {
	query := `SELECT slug, title, to_char(post_date, 'YYYY-MM-DD'), is_public, created_at, updated_at FROM posts`
	if !includePrivate {
		query += ` WHERE is_public`
	}
	query += ` ORDER BY post_date DESC, slug ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]model.Post, 0)
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.Slug, &p.Title, &p.Date, &p.IsPublic, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *PostRepository) GetBySlug(ctx context.Context, slug string) (*model.Post, error) {
	p := &model.Post{}
	err := r.pool.QueryRow(ctx,
		`SELECT slug, title, to_char(post_date, 'YYYY-MM-DD'), is_public, content, created_at, updated_at
		 FROM posts WHERE slug = $1`, slug,
	).Scan(&p.Slug, &p.Title, &p.Date, &p.IsPublic, &p.Content, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PostRepository) Create(ctx context.Context, p *model.Post) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO posts (slug, title, post_date, is_public, content)
		 VALUES ($1, $2, $3::date, $4, $5)
		 RETURNING created_at, updated_at`,
		p.Slug, p.Title, p.Date, p.IsPublic, p.Content,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

// Upsert inserts p or replaces the post with the same slug. Used by imports.
func (r *PostRepository) Upsert(ctx context.Context, p *model.Post) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO posts (slug, title, post_date, is_public, content)
		 VALUES ($1, $2, $3::date, $4, $5)
		 ON CONFLICT (slug) DO UPDATE
		 SET title = EXCLUDED.title, post_date = EXCLUDED.post_date,
		     is_public = EXCLUDED.is_public, content = EXCLUDED.content, updated_at = NOW()
		 RETURNING created_at, updated_at`,
		p.Slug, p.Title, p.Date, p.IsPublic, p.Content,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

// Update changes title, content and visibility. The post date is kept.
func (r *PostRepository) Update(ctx context.Context, p *model.Post) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE posts SET title = $1, content = $2, is_public = $3, updated_at = NOW()
		 WHERE slug = $4
		 RETURNING to_char(post_date, 'YYYY-MM-DD'), created_at, updated_at`,
		p.Title, p.Content, p.IsPublic, p.Slug,
	).Scan(&p.Date, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *PostRepository) SetPublic(ctx context.Context, slug string, public bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE posts SET is_public = $1, updated_at = NOW() WHERE slug = $2`, public, slug)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, slug string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE slug = $1`, slug)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
