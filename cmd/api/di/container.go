package di

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-rest-service/cmd/api/infrastructure"
	"user-rest-service/internal/adapter/cache"
	ginhandler "user-rest-service/internal/adapter/gin/handler"
	"user-rest-service/internal/adapter/repository/cached"
	"user-rest-service/internal/adapter/repository/memory"
	"user-rest-service/internal/adapter/repository/sqlite"
	"user-rest-service/internal/config"
	domain "user-rest-service/internal/domain/user"
	"user-rest-service/internal/metrics"
	"user-rest-service/internal/usecase/user"
	redisclient "user-rest-service/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *zap.Logger
	DB            *gorm.DB
	RedisClient   *redisclient.Client
	UserUC        user.Usecase
	Tracker       *metrics.Tracker
	UserHandler   *ginhandler.UserHandler
	SystemHandler *ginhandler.SystemHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	c := &Container{
		Config: cfg,
		Logger: l,
	}

	// Initialize the store backend
	repo, err := c.buildRepository(cfg, l)
	if err != nil {
		return nil, err
	}

	// Optionally wrap the store with a Redis cache
	if cfg.Redis.CacheEnabled {
		rdb, err := infrastructure.NewRedisClient(cfg, l)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		c.RedisClient = rdb

		userCache := cache.NewRedisUserCache(
			rdb.Client,
			time.Duration(cfg.Redis.CacheTTLSeconds)*time.Second,
			l,
		)
		repo = cached.NewCachedUserRepository(repo, userCache, l)
	}

	// Initialize use case
	c.UserUC = user.New(repo, l)

	// Initialize metrics tracker (fixes the process start time)
	c.Tracker = metrics.NewTracker()

	// Initialize Gin handlers
	c.UserHandler = ginhandler.NewUserHandler(c.UserUC, cfg.App.StrictStatusCodes, l)
	c.SystemHandler = ginhandler.NewSystemHandler(c.UserUC, c.Tracker, l)

	return c, nil
}

// buildRepository constructs the configured store backend, seeded with the
// three initial users.
func (c *Container) buildRepository(cfg *config.Config, l *zap.Logger) (user.Repository, error) {
	switch cfg.Store.Backend {
	case "sqlite":
		db, err := infrastructure.NewDatabase(cfg, l)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		c.DB = db

		repo, err := sqlite.NewUserRepoSQLite(db, domain.Seed(), l)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize sqlite store: %w", err)
		}
		l.Info("using sqlite store backend")
		return repo, nil

	default:
		l.Info("using in-memory store backend")
		return memory.NewUserRepoMem(domain.Seed(), l), nil
	}
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	// Close Redis connection
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	// Close database connection
	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("container close errors: %v", errs)
	}

	return nil
}
