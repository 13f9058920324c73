package service

import (
	"context"

	"github.com/google/uuid"

	"blogcms-backend/internal/domains/post/model"
)

// ServiceInterface is the post business-logic contract. Responses are
// already serialized: the service owns the post↔author resolution.
type ServiceInterface interface {
	Create(ctx context.Context, req *model.CreatePostRequest) (*model.PostResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.PostResponse, error)
	List(ctx context.Context, tag string) ([]*model.PostResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdatePostRequest) (*model.PostResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// AggregateTags counts tag occurrences across every post.
	AggregateTags(ctx context.Context) (map[string]int, error)

	// ResyncAuthor refreshes the cached author display name from the
	// referenced author record.
	ResyncAuthor(ctx context.Context, id uuid.UUID) (*model.PostResponse, error)
}
