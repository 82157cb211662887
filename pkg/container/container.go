package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"inkwell-backend/internal/config"
	infraCache "inkwell-backend/internal/infrastructure/cache"
	"inkwell-backend/internal/infrastructure/database"
	"inkwell-backend/pkg/cache"
	"inkwell-backend/pkg/jwt"
	"inkwell-backend/pkg/logger"

	followHandler "inkwell-backend/internal/domains/follow/handler"
	followRepo "inkwell-backend/internal/domains/follow/repository"
	followService "inkwell-backend/internal/domains/follow/service"
	subscriptionHandler "inkwell-backend/internal/domains/subscription/handler"
	subscriptionRepo "inkwell-backend/internal/domains/subscription/repository"
	subscriptionService "inkwell-backend/internal/domains/subscription/service"
	userHandler "inkwell-backend/internal/domains/user/handler"
	userRepo "inkwell-backend/internal/domains/user/repository"
	userService "inkwell-backend/internal/domains/user/service"
	writingHandler "inkwell-backend/internal/domains/writing/handler"
	writingRepo "inkwell-backend/internal/domains/writing/repository"
	writingService "inkwell-backend/internal/domains/writing/service"
)

// Container is the root of the dependency graph. Everything in it is
// a singleton built once at startup, in dependency order: config,
// infrastructure, repositories, services, handlers.
type Container struct {
	// Infrastructure
	Config      *config.Config
	DB          *database.PostgresDB
	Redis       *infraCache.RedisClient
	Cache       cache.Cache
	JWTManager  *jwt.Manager
	AsynqClient *asynq.Client

	// Repositories
	WritingRepo      writingRepo.WritingRepository
	UserRepo         userRepo.UserRepository
	FollowRepo       followRepo.FollowRepository
	SubscriptionRepo subscriptionRepo.SubscriptionRepository

	// Services
	WritingService      writingService.ServiceInterface
	UserService         userService.ServiceInterface
	FollowService       followService.ServiceInterface
	SubscriptionService subscriptionService.ServiceInterface

	// Handlers
	WritingHandler      *writingHandler.Handler
	UserHandler         *userHandler.Handler
	FollowHandler       *followHandler.Handler
	SubscriptionHandler *subscriptionHandler.Handler
}

func NewContainer() (*Container, error) {
	c := &Container{}

	// Step 1: Configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	c.Config = cfg
	logger.Init(cfg.App.Environment)

	// Step 2: PostgreSQL
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check: %w", err)
	}
	c.DB = db

	// Step 3: Redis. A failed connection is logged but not fatal: the
	// render cache and login throttle degrade, the API still serves.
	c.Redis = infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Redis.Connect(context.Background()); err != nil {
		logger.Warn("redis unavailable, caching degraded", map[string]interface{}{"error": err.Error()})
	}
	c.Cache = infraCache.NewRedisCache(c.Redis)

	// Step 4: Tokens and the task queue
	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Step 5: Repositories
	c.WritingRepo = writingRepo.NewPostgresWritingRepository(db.Pool)
	c.UserRepo = userRepo.NewPostgresRepository(db.Pool)
	c.FollowRepo = followRepo.NewPostgresRepository(db.Pool)
	c.SubscriptionRepo = subscriptionRepo.NewPostgresRepository(db.Pool)

	// Step 6: Services
	c.WritingService = writingService.NewWritingService(c.WritingRepo, c.Cache)
	c.UserService = userService.NewUserService(c.UserRepo, c.WritingRepo, c.FollowRepo, c.JWTManager, c.Cache)
	c.FollowService = followService.NewFollowService(c.FollowRepo, c.UserRepo, c.WritingRepo)
	c.SubscriptionService = subscriptionService.NewSubscriptionService(c.SubscriptionRepo, c.AsynqClient)

	// Step 7: Handlers
	c.WritingHandler = writingHandler.NewHandler(c.WritingService)
	c.UserHandler = userHandler.NewHandler(c.UserService)
	c.FollowHandler = followHandler.NewHandler(c.FollowService)
	c.SubscriptionHandler = subscriptionHandler.NewHandler(c.SubscriptionService)

	logger.Info("container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
	})

	return c, nil
}

// Cleanup releases infrastructure resources during graceful shutdown.
func (c *Container) Cleanup() {
	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			logger.Error("close asynq client", err)
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Error("close redis", err)
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	logger.Info("container resources released", nil)
}
