package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/avatarctic/storefront-admin/internal/core/domain/catalog"
	"github.com/avatarctic/storefront-admin/internal/core/ports"
	"github.com/avatarctic/storefront-admin/internal/platform/loader"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// StorefrontConfig groups the read-path tuning knobs.
type StorefrontConfig struct {
	CatalogTTL     time.Duration
	CategoryTTL    time.Duration
	FeaturedLimit  int
	RetryOnError   bool
	MaxAttempts    int
	BaseDelay      time.Duration
	MinLoadingTime time.Duration
}

// StorefrontService serves public catalog reads through the request cache.
type StorefrontService struct {
	banners    ports.BannerRepository
	categories ports.CategoryRepository
	products   ports.ProductRepository
	loader     *Loader
	cfg        StorefrontConfig
	logger     *logrus.Logger
}

func NewStorefrontService(banners ports.BannerRepository, categories ports.CategoryRepository, products ports.ProductRepository, l *Loader, cfg *StorefrontConfig, logger *logrus.Logger) *StorefrontService {
	c := StorefrontConfig{
		CatalogTTL:     CatalogTTL,
		CategoryTTL:    CategoryTTL,
		FeaturedLimit:  8,
		MaxAttempts:    loader.DefaultMaxAttempts,
		BaseDelay:      loader.DefaultBaseDelay,
		MinLoadingTime: loader.DefaultMinLoadingTime,
	}
	if cfg != nil {
		if cfg.CatalogTTL > 0 {
			c.CatalogTTL = cfg.CatalogTTL
		}
		if cfg.CategoryTTL > 0 {
			c.CategoryTTL = cfg.CategoryTTL
		}
		if cfg.FeaturedLimit > 0 {
			c.FeaturedLimit = cfg.FeaturedLimit
		}
		if cfg.MaxAttempts > 0 {
			c.MaxAttempts = cfg.MaxAttempts
		}
		if cfg.BaseDelay > 0 {
			c.BaseDelay = cfg.BaseDelay
		}
		if cfg.MinLoadingTime >= 0 {
			c.MinLoadingTime = cfg.MinLoadingTime
		}
		c.RetryOnError = cfg.RetryOnError
	}
	return &StorefrontService{banners: banners, categories: categories, products: products, loader: l, cfg: c, logger: logger}
}

func (s *StorefrontService) options(ttl time.Duration) []loader.Option {
	return []loader.Option{
		loader.CacheTime(ttl),
		loader.RetryOnError(s.cfg.RetryOnError),
		loader.MaxAttempts(s.cfg.MaxAttempts),
		loader.BaseDelay(s.cfg.BaseDelay),
		loader.MinLoadingTime(s.cfg.MinLoadingTime),
	}
}

// Home assembles the landing page. The three parts load concurrently and are
// cached under their own keys.
func (s *StorefrontService) Home(ctx context.Context) (*catalog.Home, error) {
	home := &catalog.Home{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := s.activeBanners(gctx)
		home.Banners = b
		return err
	})
	g.Go(func() error {
		c, err := s.ListCategories(gctx)
		home.Categories = c
		return err
	})
	g.Go(func() error {
		featured := true
		page, err := s.ListProducts(gctx, catalog.ProductFilter{Featured: &featured, Limit: s.cfg.FeaturedLimit})
		if page != nil {
			home.FeaturedProducts = page.Products
		}
		return err
	})
	if err := g.Wait(); err != nil {
		if s.logger != nil {
			s.logger.WithError(err).Warn("storefront: failed to assemble home page")
		}
		return nil, err
	}
	return home, nil
}

func (s *StorefrontService) activeBanners(ctx context.Context) ([]*catalog.Banner, error) {
	return load(ctx, s.loader, keyActiveBanners, func(ctx context.Context) ([]*catalog.Banner, error) {
		return s.banners.List(ctx, true)
	}, s.options(s.cfg.CatalogTTL)...)
}

// ListProducts returns one page of active products.
func (s *StorefrontService) ListProducts(ctx context.Context, filter catalog.ProductFilter) (*ports.ProductPage, error) {
	filter.ActiveOnly = true
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	products, err := load(ctx, s.loader, prefixProductList+filter.CacheKey(), func(ctx context.Context) ([]*catalog.Product, error) {
		return s.products.List(ctx, filter)
	}, s.options(s.cfg.CatalogTTL)...)
	if err != nil {
		return nil, err
	}
	return &ports.ProductPage{Products: products, Limit: filter.Limit, Offset: filter.Offset}, nil
}

// GetProduct returns an active product. Inactive products are reported as not found.
func (s *StorefrontService) GetProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	p, err := load(ctx, s.loader, productKey(id), func(ctx context.Context) (*catalog.Product, error) {
		return s.products.GetByID(ctx, id)
	}, s.options(s.cfg.CatalogTTL)...)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, ports.ErrNotFound
	}
	return p, nil
}

func (s *StorefrontService) ListCategories(ctx context.Context) ([]*catalog.Category, error) {
	return load(ctx, s.loader, keyCategories, func(ctx context.Context) ([]*catalog.Category, error) {
		return s.categories.List(ctx)
	}, s.options(s.cfg.CategoryTTL)...)
}
