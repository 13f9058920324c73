package repository

import (
	"context"

	"github.com/google/uuid"

	"blogcms-backend/internal/domains/author/model"
)

// RepositoryInterface is the author data-access contract.
type RepositoryInterface interface {
	Create(ctx context.Context, a *model.Author) (*model.Author, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error)
	List(ctx context.Context) ([]model.Author, error)
}
