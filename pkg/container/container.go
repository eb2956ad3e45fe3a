package container

import (
	"context"
	"fmt"
	"time"

	"library-catalog/internal/config"
	infraCache "library-catalog/internal/infrastructure/cache"
	"library-catalog/internal/infrastructure/database"
	"library-catalog/internal/infrastructure/storage"
	"library-catalog/pkg/cache"
	"library-catalog/pkg/logger"

	"library-catalog/internal/domains/author"
	authorHandler "library-catalog/internal/domains/author/handler"
	authorRepo "library-catalog/internal/domains/author/repository"
	authorService "library-catalog/internal/domains/author/service"

	"library-catalog/internal/domains/category"
	categoryHandler "library-catalog/internal/domains/category/handler"
	categoryRepo "library-catalog/internal/domains/category/repository"
	categoryService "library-catalog/internal/domains/category/service"

	"library-catalog/internal/domains/book"
	bookHandler "library-catalog/internal/domains/book/handler"
	bookRepo "library-catalog/internal/domains/book/repository"
	bookService "library-catalog/internal/domains/book/service"
)

// Container holds the full dependency graph. Everything in here is a
// singleton built once at startup, in dependency order: config, then
// infrastructure, then repositories, services, handlers.
type Container struct {
	Config  *config.Config
	DB      *database.PostgresDB
	Cache   cache.Cache
	Storage *storage.MinIOStorage

	AuthorRepo   author.Repository
	CategoryRepo category.Repository
	BookRepo     book.Repository

	AuthorService   author.Service
	CategoryService category.Service
	BookService     book.Service

	AuthorHandler   *authorHandler.AuthorHandler
	CategoryHandler *categoryHandler.CategoryHandler
	BookHandler     *bookHandler.BookHandler
}

func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

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
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	redisClient := infraCache.NewRedisClient(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	// Redis is an optimization, not a dependency: a failed connection is
	// logged and the repositories fall through to Postgres.
	if err := redisClient.Connect(context.Background()); err != nil {
		logger.Error("redis connection failed, running without cache", err)
	}
	c.Cache = redisClient

	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}
	c.Storage = minioStorage

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
	})

	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.AuthorRepo = authorRepo.NewPostgresRepository(pool, c.Cache)
	c.CategoryRepo = categoryRepo.NewPostgresRepository(pool, c.Cache)
	c.BookRepo = bookRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	// The cross-domain edges are small interfaces defined by the consumer
	// and satisfied by the other domain's repository: the book service sees
	// authors and categories as directories, the author and category
	// services see books as an index.
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo, c.BookRepo)
	c.CategoryService = categoryService.NewCategoryService(c.CategoryRepo, c.BookRepo)
	c.BookService = bookService.NewBookService(
		c.BookRepo,
		c.AuthorRepo,
		c.CategoryRepo,
		c.Storage,
	)
}

func (c *Container) initHandlers() {
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService, c.Config.Upload.MaxFileSize)
}

// Cleanup releases infrastructure resources during graceful shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}

	if rc, ok := c.Cache.(*infraCache.RedisClient); ok && rc != nil {
		if err := rc.Close(); err != nil {
			logger.Error("failed to close redis client", err)
		}
	}
}
