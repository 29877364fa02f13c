package httpserver

import (
	"github.com/avatarctic/storefront-admin/internal/core/domain/user"
)

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)

	api := s.echo.Group("/api/v1")
	api.GET("/storefront/home", s.getHome)
	api.GET("/products", s.listProducts)
	api.GET("/products/:id", s.getProduct)
	api.GET("/categories", s.listCategories)

	protected := api.Group("")
	protected.Use(s.middleware.JWT.RequireJWT())

	protected.GET("/profile", s.getOwnProfile)
	protected.PUT("/profile", s.updateOwnProfile)

	wishlist := protected.Group("/wishlist")
	wishlist.GET("", s.listWishlist)
	wishlist.POST("/:product_id", s.addToWishlist)
	wishlist.DELETE("/:product_id", s.removeFromWishlist)

	admin := protected.Group("/admin", s.middleware.Role.RequireRole(user.RoleSuperAdmin))
	admin.GET("/dashboard", s.getDashboard)

	banners := admin.Group("/banners")
	banners.GET("", s.adminListBanners)
	banners.POST("", s.adminCreateBanner)
	banners.GET("/:id", s.adminGetBanner)
	banners.PUT("/:id", s.adminUpdateBanner)
	banners.DELETE("/:id", s.adminDeleteBanner)

	categories := admin.Group("/categories")
	categories.GET("", s.adminListCategories)
	categories.POST("", s.adminCreateCategory)
	categories.GET("/:id", s.adminGetCategory)
	categories.PUT("/:id", s.adminUpdateCategory)
	categories.DELETE("/:id", s.adminDeleteCategory)

	products := admin.Group("/products")
	products.GET("", s.adminListProducts)
	products.POST("", s.adminCreateProduct)
	products.GET("/:id", s.adminGetProduct)
	products.PUT("/:id", s.adminUpdateProduct)
	products.DELETE("/:id", s.adminDeleteProduct)

	users := admin.Group("/users")
	users.GET("", s.listUsers)
	users.POST("", s.createUser)
	users.GET("/:id", s.getUser)
	users.PUT("/:id", s.updateUser)
	users.DELETE("/:id", s.deleteUser)

	content := admin.Group("/content")
	content.POST("/scrape", s.scrapeContent)
	content.POST("/generate", s.generateContent)

	cache := admin.Group("/cache")
	cache.GET("", s.getCacheStatus)
	cache.DELETE("", s.clearCache)
	cache.DELETE("/:key", s.deleteCacheKey)
}
