package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blogcms-backend/internal/domains/author/model"
)

// postgresRepository implements RepositoryInterface on pgxpool.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

// Create inserts a new author with generated ID and timestamps.
func (r *postgresRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
        INSERT INTO authors (name, profession, link)
        VALUES ($1, $2, $3)
        RETURNING id, name, profession, link, created_at, updated_at
    `

	var created model.Author
	err := r.pool.QueryRow(
		ctx,
		query,
		a.Name,
		a.Profession,
		a.Link,
	).Scan(
		&created.ID,
		&created.Name,
		&created.Profession,
		&created.Link,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	return &created, nil
}

// GetByID retrieves an author by UUID.
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	query := `
        SELECT id, name, profession, link, created_at, updated_at
        FROM authors
        WHERE id = $1
    `

	var a model.Author
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.Name,
		&a.Profession,
		&a.Link,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}

	return &a, nil
}

// List retrieves all authors, most recent first.
func (r *postgresRepository) List(ctx context.Context) ([]model.Author, error) {
	query := `
        SELECT id, name, profession, link, created_at, updated_at
        FROM authors
        ORDER BY created_at DESC
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query authors: %w", err)
	}
	defer rows.Close()

	var authors []model.Author
	for rows.Next() {
		var a model.Author
		if err := rows.Scan(
			&a.ID,
			&a.Name,
			&a.Profession,
			&a.Link,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating authors: %w", err)
	}

	return authors, nil
}
