package repository

import (
	"context"

	"github.com/google/uuid"

	"blogcms-backend/internal/domains/post/model"
)

// RepositoryInterface is the post data-access contract.
type RepositoryInterface interface {
	Create(ctx context.Context, p *model.Post) (*model.Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error)

	// List returns posts most recent first. A non-empty tag restricts
	// the result to posts whose tags contain that exact value.
	List(ctx context.Context, tag string) ([]model.Post, error)

	// Update writes the full merged entity back; the merge itself
	// happens in the service.
	Update(ctx context.Context, p *model.Post) (*model.Post, error)

	Delete(ctx context.Context, id uuid.UUID) error

	// AllTags returns the tags column of every post, feed order.
	// Input to the tag aggregator.
	AllTags(ctx context.Context) ([][]string, error)
}
