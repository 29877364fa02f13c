package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/avatarctic/storefront-admin/internal/core/domain/catalog"
	"github.com/avatarctic/storefront-admin/internal/core/ports"
)

// CatalogAdminService implements superadmin CRUD. Reads go straight to the
// repositories; writes invalidate the storefront cache keys they affect.
type CatalogAdminService struct {
	banners    ports.BannerRepository
	categories ports.CategoryRepository
	products   ports.ProductRepository
	users      ports.UserRepository
	cache      cacheInvalidator
	logger     *logrus.Logger
}

func NewCatalogAdminService(banners ports.BannerRepository, categories ports.CategoryRepository, products ports.ProductRepository, users ports.UserRepository, cache cacheInvalidator, logger *logrus.Logger) *CatalogAdminService {
	return &CatalogAdminService{banners: banners, categories: categories, products: products, users: users, cache: cache, logger: logger}
}

func (s *CatalogAdminService) invalidate(keys ...string) {
	if s.cache == nil {
		return
	}
	for _, k := range keys {
		if strings.HasSuffix(k, ":") {
			s.cache.InvalidatePrefix(k)
			continue
		}
		s.cache.Invalidate(k)
	}
}

// Banners

func (s *CatalogAdminService) ListBanners(ctx context.Context) ([]*catalog.Banner, error) {
	return s.banners.List(ctx, false)
}

func (s *CatalogAdminService) GetBanner(ctx context.Context, id uuid.UUID) (*catalog.Banner, error) {
	return s.banners.GetByID(ctx, id)
}

func (s *CatalogAdminService) CreateBanner(ctx context.Context, req *catalog.CreateBannerRequest) (*catalog.Banner, error) {
	now := time.Now().UTC()
	b := &catalog.Banner{
		ID:        uuid.New(),
		Title:     req.Title,
		Subtitle:  req.Subtitle,
		ImageURL:  req.ImageURL,
		LinkURL:   req.LinkURL,
		Position:  req.Position,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}
	if err := s.banners.Create(ctx, b); err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"title": req.Title}).WithError(err).Error("failed to create banner")
		}
		return nil, fmt.Errorf("failed to create banner: %w", err)
	}
	s.invalidate(keyActiveBanners)
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"banner_id": b.ID}).Info("banner created")
	}
	return b, nil
}

func (s *CatalogAdminService) UpdateBanner(ctx context.Context, id uuid.UUID, req *catalog.UpdateBannerRequest) (*catalog.Banner, error) {
	b, err := s.banners.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Apply(b)
	b.UpdatedAt = time.Now().UTC()
	if err := s.banners.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to update banner: %w", err)
	}
	s.invalidate(keyActiveBanners)
	return b, nil
}

func (s *CatalogAdminService) DeleteBanner(ctx context.Context, id uuid.UUID) error {
	if err := s.banners.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(keyActiveBanners)
	return nil
}

// Categories

func (s *CatalogAdminService) ListCategories(ctx context.Context) ([]*catalog.Category, error) {
	return s.categories.List(ctx)
}

func (s *CatalogAdminService) GetCategory(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	return s.categories.GetByID(ctx, id)
}

func (s *CatalogAdminService) CreateCategory(ctx context.Context, req *catalog.CreateCategoryRequest) (*catalog.Category, error) {
	slug := req.Slug
	if slug == "" {
		slug = catalog.Slugify(req.Name)
	}
	if err := s.ensureCategorySlugFree(ctx, slug, uuid.Nil); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	c := &catalog.Category{
		ID:          uuid.New(),
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.categories.Create(ctx, c); err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"slug": slug}).WithError(err).Error("failed to create category")
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	s.invalidate(keyCategories)
	return c, nil
}

func (s *CatalogAdminService) UpdateCategory(ctx context.Context, id uuid.UUID, req *catalog.UpdateCategoryRequest) (*catalog.Category, error) {
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Slug != nil && *req.Slug != c.Slug {
		if err := s.ensureCategorySlugFree(ctx, *req.Slug, c.ID); err != nil {
			return nil, err
		}
	}
	req.Apply(c)
	c.UpdatedAt = time.Now().UTC()
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	s.invalidate(keyCategories)
	return c, nil
}

// DeleteCategory removes a category. Product listings filtered by it are dropped from the cache too.
func (s *CatalogAdminService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(keyCategories, prefixProductList)
	return nil
}

func (s *CatalogAdminService) ensureCategorySlugFree(ctx context.Context, slug string, self uuid.UUID) error {
	existing, err := s.categories.GetBySlug(ctx, slug)
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != self:
		return fmt.Errorf("category slug '%s' is already taken: %w", slug, ports.ErrConflict)
	}
	return nil
}

// Products

func (s *CatalogAdminService) ListProducts(ctx context.Context, filter catalog.ProductFilter) ([]*catalog.Product, error) {
	if filter.Limit <= 0 || filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	return s.products.List(ctx, filter)
}

func (s *CatalogAdminService) GetProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *CatalogAdminService) CreateProduct(ctx context.Context, req *catalog.CreateProductRequest) (*catalog.Product, error) {
	if err := s.ensureCategoryExists(ctx, req.CategoryID); err != nil {
		return nil, err
	}
	slug := req.Slug
	if slug == "" {
		slug = catalog.Slugify(req.Name)
	}
	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = catalog.DefaultCurrency
	}
	now := time.Now().UTC()
	p := &catalog.Product{
		ID:          uuid.New(),
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		Price:       req.Price,
		Currency:    currency,
		ImageURLs:   req.ImageURLs,
		Stock:       req.Stock,
		IsFeatured:  req.IsFeatured,
		IsActive:    true,
		SourceURL:   req.SourceURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if p.ImageURLs == nil {
		p.ImageURLs = []string{}
	}
	if err := s.products.Create(ctx, p); err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"name": req.Name}).WithError(err).Error("failed to create product")
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	s.invalidate(prefixProductList)
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"product_id": p.ID, "slug": p.Slug}).Info("product created")
	}
	return p, nil
}

func (s *CatalogAdminService) UpdateProduct(ctx context.Context, id uuid.UUID, req *catalog.UpdateProductRequest) (*catalog.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.CategoryID != nil {
		if err := s.ensureCategoryExists(ctx, req.CategoryID); err != nil {
			return nil, err
		}
	}
	req.Apply(p)
	p.UpdatedAt = time.Now().UTC()
	if err := s.products.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	s.invalidate(prefixProductList, productKey(id), prefixWishlist)
	return p, nil
}

func (s *CatalogAdminService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(prefixProductList, productKey(id), prefixWishlist)
	return nil
}

func (s *CatalogAdminService) ensureCategoryExists(ctx context.Context, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	if _, err := s.categories.GetByID(ctx, *id); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return fmt.Errorf("category %s does not exist: %w", id, ports.ErrInvalidInput)
		}
		return err
	}
	return nil
}

// Dashboard counts every entity concurrently.
func (s *CatalogAdminService) Dashboard(ctx context.Context) (*catalog.Dashboard, error) {
	d := &catalog.Dashboard{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { d.Banners, err = s.banners.Count(gctx); return })
	g.Go(func() (err error) { d.Categories, err = s.categories.Count(gctx); return })
	g.Go(func() (err error) { d.Products, err = s.products.Count(gctx); return })
	if s.users != nil {
		g.Go(func() (err error) { d.Users, err = s.users.Count(gctx); return })
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}
	return d, nil
}
