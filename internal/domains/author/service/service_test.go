package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogcms-backend/internal/domains/author/model"
)

type fakeAuthorRepo struct {
	authors map[uuid.UUID]model.Author
}

func newFakeAuthorRepo() *fakeAuthorRepo {
	return &fakeAuthorRepo{authors: make(map[uuid.UUID]model.Author)}
}

func (f *fakeAuthorRepo) Create(_ context.Context, a *model.Author) (*model.Author, error) {
	stored := *a
	stored.ID = uuid.New()
	now := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	stored.CreatedAt = now
	stored.UpdatedAt = now
	f.authors[stored.ID] = stored
	return &stored, nil
}

func (f *fakeAuthorRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Author, error) {
	a, ok := f.authors[id]
	if !ok {
		return nil, model.ErrAuthorNotFound
	}
	return &a, nil
}

func (f *fakeAuthorRepo) List(_ context.Context) ([]model.Author, error) {
	var out []model.Author
	for _, a := range f.authors {
		out = append(out, a)
	}
	return out, nil
}

func TestCreateAuthor(t *testing.T) {
	svc := NewAuthorService(newFakeAuthorRepo())

	created, err := svc.Create(context.Background(), &model.CreateAuthorRequest{
		Name:       "Jo",
		Profession: "Writer",
		Link:       "https://x",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "Jo", created.Name)
	assert.Equal(t, "Writer", created.Profession)
	assert.Equal(t, "https://x", created.Link)
}

func TestCreateAuthorTrimsWhitespace(t *testing.T) {
	svc := NewAuthorService(newFakeAuthorRepo())

	created, err := svc.Create(context.Background(), &model.CreateAuthorRequest{
		Name:       "  Jo  ",
		Profession: " Writer",
		Link:       "https://x ",
	})
	require.NoError(t, err)

	assert.Equal(t, "Jo", created.Name)
	assert.Equal(t, "Writer", created.Profession)
	assert.Equal(t, "https://x", created.Link)
}

func TestCreateAuthorRejectsMissingFields(t *testing.T) {
	svc := NewAuthorService(newFakeAuthorRepo())

	tests := []struct {
		name string
		req  *model.CreateAuthorRequest
	}{
		{"missing name", &model.CreateAuthorRequest{Profession: "Writer", Link: "https://x"}},
		{"missing profession", &model.CreateAuthorRequest{Name: "Jo", Link: "https://x"}},
		{"missing link", &model.CreateAuthorRequest{Name: "Jo", Profession: "Writer"}},
		{"whitespace only", &model.CreateAuthorRequest{Name: "   ", Profession: "Writer", Link: "https://x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.req)
			assert.ErrorIs(t, err, model.ErrMissingFields)
		})
	}
}

func TestGetAuthorByID(t *testing.T) {
	repo := newFakeAuthorRepo()
	svc := NewAuthorService(repo)

	created, err := svc.Create(context.Background(), &model.CreateAuthorRequest{
		Name:       "Jo",
		Profession: "Writer",
		Link:       "https://x",
	})
	require.NoError(t, err)

	got, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestGetAuthorByIDNotFound(t *testing.T) {
	svc := NewAuthorService(newFakeAuthorRepo())

	_, err := svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, model.ErrAuthorNotFound)

	// Nil UUID is rejected before touching the repository.
	_, err = svc.GetByID(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, model.ErrAuthorNotFound)
}

func TestListAuthors(t *testing.T) {
	svc := NewAuthorService(newFakeAuthorRepo())
	ctx := context.Background()

	for _, name := range []string{"Jo", "Sam"} {
		_, err := svc.Create(ctx, &model.CreateAuthorRequest{
			Name:       name,
			Profession: "Writer",
			Link:       "https://x",
		})
		require.NoError(t, err)
	}

	authors, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, authors, 2)
}
