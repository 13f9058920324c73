package repository

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogcms-backend/internal/domains/post/model"
	"blogcms-backend/internal/infrastructure/database"
)

// setupRepo connects to the database named by DB_* env vars. Tests in
// this file are integration tests and skip when DB_HOST is unset.
func setupRepo(t *testing.T) RepositoryInterface {
	t.Helper()

	host := os.Getenv("DB_HOST")
	if host == "" {
		t.Skip("DB_HOST not set, skipping integration test")
	}

	port := 5432
	if p := os.Getenv("DB_PORT"); p != "" {
		parsed, err := strconv.Atoi(p)
		require.NoError(t, err)
		port = parsed
	}

	db := database.NewPostgresDB(&database.DBConfig{
		Host:              host,
		Port:              port,
		Username:          envOr("DB_USER", "postgres"),
		Password:          os.Getenv("DB_PASSWORD"),
		DBName:            envOr("DB_NAME", "blogcms_test"),
		MaxConns:          4,
		MinConns:          1,
		MaxConnLifetime:   time.Hour,
		MaxConnIdleTime:   30 * time.Minute,
		HealthCheckPeriod: time.Minute,
		MaxRetries:        1,
		RetryDelay:        time.Second,
		ConnectTimeout:    5 * time.Second,
	})

	ctx := context.Background()
	require.NoError(t, db.Connect(ctx))
	require.NoError(t, db.EnsureSchema(ctx))
	t.Cleanup(db.Close)

	return NewPostgresRepository(db.Pool)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func seedPost(t *testing.T, repo RepositoryInterface, title string, tags []string) *model.Post {
	t.Helper()

	created, err := repo.Create(context.Background(), &model.Post{
		Title:       title,
		Description: "D",
		Content:     "<p>c</p>",
		Photo:       "p.jpg",
		Tags:        tags,
		Author:      "Admin",
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = repo.Delete(context.Background(), created.ID)
	})
	return created
}

func TestPostgresCreateAndGet(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	authorID := uuid.New()
	created, err := repo.Create(ctx, &model.Post{
		Title:       "integration",
		Description: "D",
		Content:     "<p>c</p>",
		Photo:       "p.jpg",
		Tags:        []string{"x", "y"},
		Author:      "Jo",
		AuthorID:    &authorID,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Delete(ctx, created.ID) })

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "integration", got.Title)
	assert.Equal(t, []string{"x", "y"}, got.Tags)

	// author_id has no foreign key, so the dangling reference survives.
	require.NotNil(t, got.AuthorID)
	assert.Equal(t, authorID, *got.AuthorID)
}

func TestPostgresGetNotFound(t *testing.T) {
	repo := setupRepo(t)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, model.ErrPostNotFound)
}

func TestPostgresListTagFilter(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	marker := uuid.NewString()
	seedPost(t, repo, "tagged "+marker, []string{marker, "shared"})
	seedPost(t, repo, "other "+marker, []string{"shared"})

	filtered, err := repo.List(ctx, marker)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "tagged "+marker, filtered[0].Title)
}

func TestPostgresUpdate(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	created := seedPost(t, repo, "before", []string{"x"})

	created.Title = "after"
	created.Tags = []string{"x", "z"}
	updated, err := repo.Update(ctx, created)
	require.NoError(t, err)

	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, []string{"x", "z"}, updated.Tags)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt) || updated.UpdatedAt.Equal(created.UpdatedAt))

	missing := *created
	missing.ID = uuid.New()
	_, err = repo.Update(ctx, &missing)
	assert.ErrorIs(t, err, model.ErrPostNotFound)
}

func TestPostgresDelete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	created := seedPost(t, repo, "to delete", []string{})

	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err := repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, model.ErrPostNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, created.ID), model.ErrPostNotFound)
}
