package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"blogcms-backend/internal/config"
	infraCache "blogcms-backend/internal/infrastructure/cache"
	"blogcms-backend/internal/infrastructure/database"
	"blogcms-backend/internal/infrastructure/storage"
	"blogcms-backend/pkg/cache"
	"blogcms-backend/pkg/token"

	"blogcms-backend/internal/domains/auth"
	authHandler "blogcms-backend/internal/domains/auth/handler"
	authorHandler "blogcms-backend/internal/domains/author/handler"
	authorRepo "blogcms-backend/internal/domains/author/repository"
	authorService "blogcms-backend/internal/domains/author/service"
	postHandler "blogcms-backend/internal/domains/post/handler"
	postRepo "blogcms-backend/internal/domains/post/repository"
	postService "blogcms-backend/internal/domains/post/service"
	uploadHandler "blogcms-backend/internal/domains/upload/handler"
)

// Container holds the whole dependency graph. Everything in it is a
// singleton living for the process lifetime.
type Container struct {
	// Infrastructure
	Config  *config.Config
	DB      *database.PostgresDB
	Cache   cache.Cache
	Storage storage.ObjectStorage
	Issuer  token.Issuer

	// Repositories
	AuthorRepo authorRepo.RepositoryInterface
	PostRepo   postRepo.RepositoryInterface

	// Services
	AuthorService authorService.ServiceInterface
	PostService   postService.ServiceInterface

	// Handlers
	AuthorHandler *authorHandler.AuthorHandler
	PostHandler   *postHandler.PostHandler
	AuthHandler   *authHandler.AuthHandler
	UploadHandler *uploadHandler.UploadHandler

	redis *infraCache.RedisClient
}

// NewContainer initializes the dependency graph in order: config,
// infrastructure, repositories, services, handlers. A failure at any
// step aborts startup.
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{}

	// Config first, nothing depends on it.
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// Database
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}
	c.DB = db
	log.Println("✅ PostgreSQL connected")

	// Redis — used for login throttling and health checks only; the
	// content path is deliberately uncached.
	redisClient := infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisClient.Connect(ctx); err != nil {
		log.Printf("⚠️  Redis unavailable, login throttling disabled: %v", err)
	} else {
		c.Cache = redisClient
		log.Println("✅ Redis connected")
	}
	c.redis = redisClient

	// Object storage
	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}
	c.Storage = minioStorage
	log.Println("✅ MinIO storage ready")

	// Marker issuer
	c.Issuer = token.NewIssuer(cfg.Auth.TokenMode, cfg.Auth.TokenSecret)

	// Repositories
	c.AuthorRepo = authorRepo.NewPostgresRepository(db.Pool)
	c.PostRepo = postRepo.NewPostgresRepository(db.Pool)

	// Services
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo)
	c.PostService = postService.NewPostService(c.PostRepo, c.AuthorRepo)

	// Handlers
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.PostHandler = postHandler.NewPostHandler(c.PostService)
	c.AuthHandler = authHandler.NewAuthHandler(
		auth.NewVerifier(cfg.Auth),
		c.Issuer,
		c.Cache,
		cfg.Auth.CookieName,
		cfg.IsProduction(),
	)
	c.UploadHandler = uploadHandler.NewUploadHandler(c.Storage)

	log.Println("✅ Container initialized")
	return c, nil
}

// Cleanup releases infrastructure resources on shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.Printf("⚠️  Failed to close redis client: %v", err)
		}
	}
}
