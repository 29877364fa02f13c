package httpserver

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/storefront-admin/internal/core/ports"
	customMiddleware "github.com/avatarctic/storefront-admin/internal/infrastructure/httpserver/middleware"
)

type ServerConfig struct {
	Host           string
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	TLSCertFile    string
	TLSKeyFile     string
	AllowedOrigins []string
}

type ServerDeps struct {
	StorefrontService  ports.StorefrontService
	CatalogService     ports.CatalogAdminService
	UserService        ports.UserService
	WishlistService    ports.WishlistService
	ContentService     ports.ContentService
	CacheAdminService  ports.CacheAdminService
	AuthService        ports.AuthService
	RateLimiterService ports.RateLimiterService
	HealthCheckers     []ports.HealthChecker
}

type Server struct {
	echo           *echo.Echo
	config         *ServerConfig
	logger         *logrus.Logger
	storefront     ports.StorefrontService
	catalog        ports.CatalogAdminService
	userService    ports.UserService
	wishlist       ports.WishlistService
	content        ports.ContentService
	cacheAdmin     ports.CacheAdminService
	middleware     *customMiddleware.MiddlewareCollection
	healthCheckers []ports.HealthChecker
}

func NewServer(serverConfig *ServerConfig, logger *logrus.Logger, deps ServerDeps) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{}

	server := &Server{
		echo:           e,
		config:         serverConfig,
		logger:         logger,
		storefront:     deps.StorefrontService,
		catalog:        deps.CatalogService,
		userService:    deps.UserService,
		wishlist:       deps.WishlistService,
		content:        deps.ContentService,
		cacheAdmin:     deps.CacheAdminService,
		healthCheckers: deps.HealthCheckers,
		middleware: customMiddleware.NewMiddlewareCollection(
			deps.AuthService,
			deps.RateLimiterService,
			logger,
			GetRequestsTotal(),
			GetRequestDuration(),
		),
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}
