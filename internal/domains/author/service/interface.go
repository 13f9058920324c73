package service

import (
	"context"

	"github.com/google/uuid"

	"blogcms-backend/internal/domains/author/model"
)

// ServiceInterface is the author business-logic contract.
type ServiceInterface interface {
	Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error)
	List(ctx context.Context) ([]model.Author, error)
}
