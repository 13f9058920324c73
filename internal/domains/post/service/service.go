package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	authormodel "blogcms-backend/internal/domains/author/model"
	authorrepo "blogcms-backend/internal/domains/author/repository"
	"blogcms-backend/internal/domains/post/model"
	"blogcms-backend/internal/domains/post/repository"
)

// postService implements ServiceInterface. It joins posts to authors
// at read time and resolves the cached display name at write time.
type postService struct {
	repo    repository.RepositoryInterface
	authors authorrepo.RepositoryInterface
}

func NewPostService(repo repository.RepositoryInterface, authors authorrepo.RepositoryInterface) ServiceInterface {
	return &postService{
		repo:    repo,
		authors: authors,
	}
}

// resolveAuthor looks up the referenced author. A dangling or absent
// reference yields (nil, nil): resolution failure is not an error.
func (s *postService) resolveAuthor(ctx context.Context, id *uuid.UUID) (*authormodel.Author, error) {
	if id == nil {
		return nil, nil
	}

	a, err := s.authors.GetByID(ctx, *id)
	if err != nil {
		if errors.Is(err, authormodel.ErrAuthorNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve author: %w", err)
	}

	return a, nil
}

func (s *postService) Create(ctx context.Context, req *model.CreatePostRequest) (*model.PostResponse, error) {
	entity := req.ToEntity()

	// authorId is stored as given, even when it resolves to nothing.
	if req.AuthorID != "" {
		authorID, err := uuid.Parse(req.AuthorID)
		if err != nil {
			return nil, model.ErrInvalidAuthorID
		}
		entity.AuthorID = &authorID
	}

	// Resolve the display name at write time; on lookup failure fall
	// back to the client literal, then "Admin".
	author, err := s.resolveAuthor(ctx, entity.AuthorID)
	if err != nil {
		return nil, err
	}
	if author != nil {
		entity.Author = author.Name
	}
	if entity.Author == "" {
		entity.Author = model.DefaultAuthorName
	}

	if err := entity.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrValidation, err)
	}

	created, err := s.repo.Create(ctx, entity)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return model.NewPostResponse(created, author), nil
}

func (s *postService) GetByID(ctx context.Context, id uuid.UUID) (*model.PostResponse, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	author, err := s.resolveAuthor(ctx, p.AuthorID)
	if err != nil {
		return nil, err
	}

	return model.NewPostResponse(p, author), nil
}

func (s *postService) List(ctx context.Context, tag string) ([]*model.PostResponse, error) {
	posts, err := s.repo.List(ctx, tag)
	if err != nil {
		return nil, err
	}

	// One author fetch for the whole feed instead of a lookup per post.
	authors, err := s.authors.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load authors: %w", err)
	}
	byID := make(map[uuid.UUID]*authormodel.Author, len(authors))
	for i := range authors {
		byID[authors[i].ID] = &authors[i]
	}

	out := make([]*model.PostResponse, 0, len(posts))
	for i := range posts {
		var author *authormodel.Author
		if posts[i].AuthorID != nil {
			author = byID[*posts[i].AuthorID]
		}
		out = append(out, model.NewPostResponse(&posts[i], author))
	}

	return out, nil
}

func (s *postService) Update(ctx context.Context, id uuid.UUID, req *model.UpdatePostRequest) (*model.PostResponse, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Partial merge: present fields replace, absent fields are kept.
	req.ApplyToEntity(existing)

	if req.AuthorID != nil {
		if *req.AuthorID == "" {
			existing.AuthorID = nil
		} else {
			authorID, err := uuid.Parse(*req.AuthorID)
			if err != nil {
				return nil, model.ErrInvalidAuthorID
			}
			existing.AuthorID = &authorID
		}
	}

	// Refresh the cached display name whenever the reference resolves;
	// a dangling reference keeps the stored literal.
	author, err := s.resolveAuthor(ctx, existing.AuthorID)
	if err != nil {
		return nil, err
	}
	if author != nil {
		existing.Author = author.Name
	}
	if existing.Author == "" {
		existing.Author = model.DefaultAuthorName
	}

	// Required-field validation reruns on the merged result.
	if err := existing.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrValidation, err)
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	return model.NewPostResponse(updated, author), nil
}

func (s *postService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// AggregateTags counts tag occurrences by exact string equality.
// Deliberately a full scan on every call; an empty store yields an
// empty map.
func (s *postService) AggregateTags(ctx context.Context) (map[string]int, error) {
	all, err := s.repo.AllTags(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, tags := range all {
		for _, t := range tags {
			counts[t]++
		}
	}

	return counts, nil
}

// ResyncAuthor re-reads the referenced author and rewrites the cached
// display name. The snapshot never auto-updates, so this is the
// explicit freshness operation.
func (s *postService) ResyncAuthor(ctx context.Context, id uuid.UUID) (*model.PostResponse, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	author, err := s.resolveAuthor(ctx, p.AuthorID)
	if err != nil {
		return nil, err
	}
	if author != nil && author.Name != p.Author {
		p.Author = author.Name
		if p, err = s.repo.Update(ctx, p); err != nil {
			return nil, err
		}
	}

	return model.NewPostResponse(p, author), nil
}
