package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"blogcms-backend/internal/domains/post/model"
)

// postgresRepository implements RepositoryInterface on pgxpool.
// Tags live in a text[] column scanned through pq.Array.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const postColumns = `id, title, description, content, photo, tags, author, author_id, created_at, updated_at`

func scanPost(row pgx.Row, p *model.Post) error {
	return row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Content,
		&p.Photo,
		pq.Array(&p.Tags),
		&p.Author,
		&p.AuthorID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
}

// Create inserts a new post with generated ID and timestamps.
func (r *postgresRepository) Create(ctx context.Context, p *model.Post) (*model.Post, error) {
	query := `
        INSERT INTO posts (title, description, content, photo, tags, author, author_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING ` + postColumns

	var created model.Post
	row := r.pool.QueryRow(
		ctx,
		query,
		p.Title,
		p.Description,
		p.Content,
		p.Photo,
		pq.Array(p.Tags),
		p.Author,
		p.AuthorID,
	)
	if err := scanPost(row, &created); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return &created, nil
}

// GetByID retrieves a post by UUID.
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	var p model.Post
	if err := scanPost(r.pool.QueryRow(ctx, query, id), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}

	return &p, nil
}

// List retrieves posts, most recent first. The descending created_at
// order is the public feed contract. A non-empty tag filters by exact
// membership in the tags array.
func (r *postgresRepository) List(ctx context.Context, tag string) ([]model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts`
	args := []interface{}{}

	if tag != "" {
		query += ` WHERE $1 = ANY(tags)`
		args = append(args, tag)
	}

	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		var p model.Post
		if err := scanPost(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}

	return posts, nil
}

// Update writes the merged entity back and refreshes updated_at.
// created_at is never touched.
func (r *postgresRepository) Update(ctx context.Context, p *model.Post) (*model.Post, error) {
	query := `
        UPDATE posts
        SET
            title = $1,
            description = $2,
            content = $3,
            photo = $4,
            tags = $5,
            author = $6,
            author_id = $7,
            updated_at = NOW()
        WHERE id = $8
        RETURNING ` + postColumns

	var updated model.Post
	row := r.pool.QueryRow(
		ctx,
		query,
		p.Title,
		p.Description,
		p.Content,
		p.Photo,
		pq.Array(p.Tags),
		p.Author,
		p.AuthorID,
		p.ID,
	)
	if err := scanPost(row, &updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	return &updated, nil
}

// Delete removes a post by ID. Hard delete, no tombstone.
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return model.ErrPostNotFound
	}

	return nil
}

// AllTags returns every post's tags column, feed order. The counting
// happens in the service so the aggregation semantics stay in one
// place.
func (r *postgresRepository) AllTags(ctx context.Context) ([][]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT tags FROM posts ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	var all [][]string
	for rows.Next() {
		var tags []string
		if err := rows.Scan(pq.Array(&tags)); err != nil {
			return nil, fmt.Errorf("failed to scan tags: %w", err)
		}
		all = append(all, tags)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tags: %w", err)
	}

	return all, nil
}
