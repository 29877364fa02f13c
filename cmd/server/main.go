package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	config "github.com/avatarctic/storefront-admin/configs"
	"github.com/avatarctic/storefront-admin/internal/application/services"
	"github.com/avatarctic/storefront-admin/internal/core/ports"
	"github.com/avatarctic/storefront-admin/internal/infrastructure/backend"
	"github.com/avatarctic/storefront-admin/internal/infrastructure/content"
	"github.com/avatarctic/storefront-admin/internal/infrastructure/db"
	"github.com/avatarctic/storefront-admin/internal/infrastructure/email"
	"github.com/avatarctic/storefront-admin/internal/infrastructure/health"
	"github.com/avatarctic/storefront-admin/internal/infrastructure/httpserver"
	"github.com/avatarctic/storefront-admin/internal/infrastructure/redis"
	"github.com/avatarctic/storefront-admin/internal/infrastructure/repositories"
	"github.com/avatarctic/storefront-admin/internal/platform/loader"
	"github.com/avatarctic/storefront-admin/internal/platform/requestcache"
)

// repositorySet is the storage backing chosen by BACKEND_MODE.
type repositorySet struct {
	banners    ports.BannerRepository
	categories ports.CategoryRepository
	products   ports.ProductRepository
	users      ports.UserRepository
	wishlists  ports.WishlistRepository
}

func newLogger(cfg *config.LogConfig) *logrus.Logger {
	logger := logrus.New()
	if cfg.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(level)
	}
	return logger
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger := newLogger(&cfg.Log)
	logger.WithField("backend_mode", cfg.Backend.Mode).Info("Starting storefront admin service...")

	var (
		repos    repositorySet
		checkers []ports.HealthChecker
	)

	switch cfg.Backend.Mode {
	case config.BackendPostgres:
		database, err := db.NewDatabase(&cfg.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database:", err)
		}
		defer database.Close()
		logger.Info("Connected to database successfully")

		if err := database.Migrate(cfg.Database.MigrationsPath); err != nil {
			logger.Warn("Failed to run migrations:", err)
		}

		repos = repositorySet{
			banners:    repositories.NewBannerRepository(database, logger),
			categories: repositories.NewCategoryRepository(database, logger),
			products:   repositories.NewProductRepository(database, logger),
			users:      repositories.NewUserRepository(database, logger),
			wishlists:  repositories.NewWishlistRepository(database, logger),
		}
		checkers = append(checkers, health.NewDBHealthChecker(database))
	default:
		client := backend.NewClient(&cfg.Backend, logger)
		repos = repositorySet{
			banners:    backend.NewBannerRepository(client),
			categories: backend.NewCategoryRepository(client),
			products:   backend.NewProductRepository(client),
			users:      backend.NewUserRepository(client),
			wishlists:  backend.NewWishlistRepository(client),
		}
		checkers = append(checkers, health.NewBackendHealthChecker(client))
	}

	// Redis is optional; without it there is no shared cache and no rate limiting.
	var redisClient *goredis.Client
	if cfg.Redis.Enabled {
		redisClient, err = redis.NewRedisClient(&cfg.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to Redis:", err)
		}
		defer redisClient.Close()
		logger.Info("Connected to Redis successfully")

		redisCache := redis.NewRedisCache(redisClient, cfg.Redis.KeyPrefix)
		repos.banners = repositories.NewCachingBannerRepository(repos.banners, redisCache, cfg.Redis.TTL)
		repos.categories = repositories.NewCachingCategoryRepository(repos.categories, redisCache, cfg.Redis.TTL)
		repos.products = repositories.NewCachingProductRepository(repos.products, redisCache, cfg.Redis.TTL)
		checkers = append(checkers, health.NewRedisHealthChecker(redisClient))
	}

	// In-process request cache shared by every read path
	cache := requestcache.New[any](
		requestcache.WithDefaultTTL(cfg.Cache.DefaultTTL),
		requestcache.WithMaxEntries(cfg.Cache.MaxEntries),
	)
	coordinator := loader.NewCoordinator(cache,
		loader.WithLogger[any](logger),
		loader.WithMetrics[any](loader.NewMetrics(prometheus.DefaultRegisterer)),
		loader.WithDefaults[any](
			loader.MaxAttempts(cfg.Cache.MaxAttempts),
			loader.BaseDelay(cfg.Cache.BaseDelay),
			loader.MinLoadingTime(cfg.Cache.MinLoadingTime),
		),
	)

	emailService, err := email.NewEmailService(&cfg.Email, logger)
	if err != nil {
		logger.Fatal("Failed to initialize email service:", err)
	}

	contentProvider := content.NewProvider(&cfg.Content, logger)
	if cfg.Content.URL != "" {
		checkers = append(checkers, health.NewCheckerFunc("content", contentProvider.Ping))
	}

	storefrontService := services.NewStorefrontService(repos.banners, repos.categories, repos.products, coordinator, &services.StorefrontConfig{
		CatalogTTL:     cfg.Cache.CatalogTTL,
		CategoryTTL:    cfg.Cache.CategoryTTL,
		FeaturedLimit:  cfg.Cache.FeaturedLimit,
		RetryOnError:   cfg.Cache.RetryOnError,
		MaxAttempts:    cfg.Cache.MaxAttempts,
		BaseDelay:      cfg.Cache.BaseDelay,
		MinLoadingTime: cfg.Cache.MinLoadingTime,
	}, logger)
	catalogService := services.NewCatalogAdminService(repos.banners, repos.categories, repos.products, repos.users, coordinator, logger)
	userService := services.NewUserService(repos.users, emailService, coordinator, logger)
	wishlistService := services.NewWishlistService(repos.wishlists, repos.products, coordinator, logger)
	contentService := services.NewContentService(contentProvider, coordinator, logger)
	cacheAdminService := services.NewCacheAdminService(coordinator, logger)
	authService := services.NewAuthService(services.AuthConfig{
		Secret:   cfg.JWT.Secret,
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
	}, userService, logger)

	var rateLimiterService ports.RateLimiterService
	if cfg.RateLimit.Enabled && redisClient != nil {
		rateLimiterService = services.NewRateLimiterService(repositories.NewRateLimitRedisRepository(redisClient), &services.RateLimiterConfig{
			RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
			BurstMultiplier:   cfg.RateLimit.BurstMultiplier,
			Window:            cfg.RateLimit.Window,
			KeyPrefix:         cfg.RateLimit.KeyPrefix,
		}, logger)
	} else if cfg.RateLimit.Enabled {
		logger.Warn("Rate limiting requires Redis; continuing without it")
	}

	// Create server configuration
	serverConfig := &httpserver.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		TLSCertFile:    cfg.Server.TLSCertFile,
		TLSKeyFile:     cfg.Server.TLSKeyFile,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}

	deps := httpserver.ServerDeps{
		StorefrontService:  storefrontService,
		CatalogService:     catalogService,
		UserService:        userService,
		WishlistService:    wishlistService,
		ContentService:     contentService,
		CacheAdminService:  cacheAdminService,
		AuthService:        authService,
		RateLimiterService: rateLimiterService,
		HealthCheckers:     checkers,
	}

	server := httpserver.NewServer(serverConfig, logger, deps)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			logger.WithError(err).Fatal("Server failed")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown: ", err)
	}

	logger.Info("Server exited")
}
