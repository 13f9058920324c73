package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"blogcms-backend/internal/domains/author/model"
	"blogcms-backend/internal/domains/author/repository"
)

// authorService implements ServiceInterface.
type authorService struct {
	repo repository.RepositoryInterface
}

// NewAuthorService creates a new author service instance.
// Service depends on the repository abstraction, not the concrete type,
// so tests can inject a fake.
func NewAuthorService(repo repository.RepositoryInterface) ServiceInterface {
	return &authorService{repo: repo}
}

func (s *authorService) Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Profession = strings.TrimSpace(req.Profession)
	req.Link = strings.TrimSpace(req.Link)

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrMissingFields, err)
	}

	created, err := s.repo.Create(ctx, req.ToEntity())
	if err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	return created, nil
}

func (s *authorService) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	if id == uuid.Nil {
		return nil, model.ErrAuthorNotFound
	}

	return s.repo.GetByID(ctx, id)
}

func (s *authorService) List(ctx context.Context) ([]model.Author, error) {
	return s.repo.List(ctx)
}
