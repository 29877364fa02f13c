package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/avatarctic/storefront-admin/internal/core/domain/catalog"
	"github.com/avatarctic/storefront-admin/internal/core/ports"
)

// Shared cache key layout for the catalog decorators.
const (
	keyBannersAll      = "catalog:banners:all"
	keyBannersActive   = "catalog:banners:active"
	keyBannersCount    = "catalog:banners:count"
	keyCategoriesAll   = "catalog:categories:all"
	keyCategoriesCount = "catalog:categories:count"
	keyProductsCount   = "catalog:products:count"
	prefixCategoryID   = "catalog:category:id:"
	prefixCategorySlug = "catalog:category:slug:"
	prefixProductID    = "catalog:product:id:"
)

// Utility helpers
func cacheSetSilently(c ports.Cache, ctx context.Context, key string, v any, ttl time.Duration) {
	if c == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = c.Set(ctx, key, b, ttl)
}

func cacheGet[T any](c ports.Cache, ctx context.Context, key string) (*T, bool) {
	if c == nil {
		return nil, false
	}
	b, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return nil, false
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, false
	}
	return &v, true
}

func cacheDelete(c ports.Cache, ctx context.Context, keys ...string) {
	if c == nil {
		return
	}
	for _, k := range keys {
		_ = c.Delete(ctx, k)
	}
}

// loadWithSingleflight coalesces concurrent cache-miss loads of key within
// this process and caches the result.
func loadWithSingleflight[T any](cache ports.Cache, ctx context.Context, key string, ttl time.Duration, loader func() (T, error)) (T, error) {
	var zero T
	if v, ok := cacheGet[T](cache, ctx, key); ok {
		return *v, nil
	}
	res, err, _ := sf.Do(key, func() (any, error) {
		if v, ok := cacheGet[T](cache, ctx, key); ok {
			return *v, nil
		}
		v, err := loader()
		if err != nil {
			return nil, err
		}
		cacheSetSilently(cache, ctx, key, v, ttl)
		return v, nil
	})
	if err != nil {
		return zero, err
	}
	v, ok := res.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected type from singleflight result")
	}
	return v, nil
}

// CachingBannerRepository decorates a BannerRepository with cache-aside.
type CachingBannerRepository struct {
	inner ports.BannerRepository
	cache ports.Cache
	ttl   time.Duration
}

func NewCachingBannerRepository(inner ports.BannerRepository, cache ports.Cache, ttl time.Duration) ports.BannerRepository {
	return &CachingBannerRepository{inner: inner, cache: cache, ttl: ttl}
}

func (c *CachingBannerRepository) invalidate(ctx context.Context) {
	cacheDelete(c.cache, ctx, keyBannersAll, keyBannersActive, keyBannersCount)
}

func (c *CachingBannerRepository) List(ctx context.Context, activeOnly bool) ([]*catalog.Banner, error) {
	key := keyBannersAll
	if activeOnly {
		key = keyBannersActive
	}
	return loadWithSingleflight(c.cache, ctx, key, c.ttl, func() ([]*catalog.Banner, error) {
		return c.inner.List(ctx, activeOnly)
	})
}

func (c *CachingBannerRepository) GetByID(ctx context.Context, id uuid.UUID) (*catalog.Banner, error) {
	return c.inner.GetByID(ctx, id)
}

func (c *CachingBannerRepository) Create(ctx context.Context, b *catalog.Banner) error {
	if err := c.inner.Create(ctx, b); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *CachingBannerRepository) Update(ctx context.Context, b *catalog.Banner) error {
	if err := c.inner.Update(ctx, b); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *CachingBannerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *CachingBannerRepository) Count(ctx context.Context) (int, error) {
	return loadWithSingleflight(c.cache, ctx, keyBannersCount, c.ttl, func() (int, error) {
		return c.inner.Count(ctx)
	})
}

// CachingCategoryRepository caches the full list and lookups by ID and slug.
type CachingCategoryRepository struct {
	inner ports.CategoryRepository
	cache ports.Cache
	ttl   time.Duration
}

func NewCachingCategoryRepository(inner ports.CategoryRepository, cache ports.Cache, ttl time.Duration) ports.CategoryRepository {
	return &CachingCategoryRepository{inner: inner, cache: cache, ttl: ttl}
}

func (c *CachingCategoryRepository) List(ctx context.Context) ([]*catalog.Category, error) {
	return loadWithSingleflight(c.cache, ctx, keyCategoriesAll, c.ttl, func() ([]*catalog.Category, error) {
		return c.inner.List(ctx)
	})
}

func (c *CachingCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	if v, ok := cacheGet[catalog.Category](c.cache, ctx, prefixCategoryID+id.String()); ok {
		return v, nil
	}
	cat, err := c.inner.GetByID(ctx, id)
	if err == nil {
		c.store(ctx, cat)
	}
	return cat, err
}

func (c *CachingCategoryRepository) GetBySlug(ctx context.Context, slug string) (*catalog.Category, error) {
	if v, ok := cacheGet[catalog.Category](c.cache, ctx, prefixCategorySlug+slug); ok {
		return v, nil
	}
	cat, err := c.inner.GetBySlug(ctx, slug)
	if err == nil {
		c.store(ctx, cat)
	}
	return cat, err
}

func (c *CachingCategoryRepository) store(ctx context.Context, cat *catalog.Category) {
	cacheSetSilently(c.cache, ctx, prefixCategoryID+cat.ID.String(), cat, c.ttl)
	cacheSetSilently(c.cache, ctx, prefixCategorySlug+cat.Slug, cat, c.ttl)
}

func (c *CachingCategoryRepository) Create(ctx context.Context, cat *catalog.Category) error {
	if err := c.inner.Create(ctx, cat); err != nil {
		return err
	}
	c.store(ctx, cat)
	cacheDelete(c.cache, ctx, keyCategoriesAll, keyCategoriesCount)
	return nil
}

func (c *CachingCategoryRepository) Update(ctx context.Context, cat *catalog.Category) error {
	// Need the old slug to drop its key
	old, _ := c.GetByID(ctx, cat.ID)
	if err := c.inner.Update(ctx, cat); err != nil {
		return err
	}
	if old != nil && old.Slug != cat.Slug {
		cacheDelete(c.cache, ctx, prefixCategorySlug+old.Slug)
	}
	c.store(ctx, cat)
	cacheDelete(c.cache, ctx, keyCategoriesAll)
	return nil
}

func (c *CachingCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	old, _ := c.GetByID(ctx, id)
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	cacheDelete(c.cache, ctx, prefixCategoryID+id.String(), keyCategoriesAll, keyCategoriesCount)
	if old != nil {
		cacheDelete(c.cache, ctx, prefixCategorySlug+old.Slug)
	}
	return nil
}

func (c *CachingCategoryRepository) Count(ctx context.Context) (int, error) {
	if v, ok := cacheGet[[]*catalog.Category](c.cache, ctx, keyCategoriesAll); ok {
		return len(*v), nil
	}
	return loadWithSingleflight(c.cache, ctx, keyCategoriesCount, c.ttl, func() (int, error) {
		return c.inner.Count(ctx)
	})
}

// CachingProductRepository caches products by ID. Listings vary by filter and
// go straight to the inner repository.
type CachingProductRepository struct {
	inner ports.ProductRepository
	cache ports.Cache
	ttl   time.Duration
}

func NewCachingProductRepository(inner ports.ProductRepository, cache ports.Cache, ttl time.Duration) ports.ProductRepository {
	return &CachingProductRepository{inner: inner, cache: cache, ttl: ttl}
}

func (c *CachingProductRepository) List(ctx context.Context, f catalog.ProductFilter) ([]*catalog.Product, error) {
	return c.inner.List(ctx, f)
}

func (c *CachingProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	return loadWithSingleflight(c.cache, ctx, prefixProductID+id.String(), c.ttl, func() (*catalog.Product, error) {
		return c.inner.GetByID(ctx, id)
	})
}

func (c *CachingProductRepository) Create(ctx context.Context, p *catalog.Product) error {
	if err := c.inner.Create(ctx, p); err != nil {
		return err
	}
	cacheSetSilently(c.cache, ctx, prefixProductID+p.ID.String(), p, c.ttl)
	cacheDelete(c.cache, ctx, keyProductsCount)
	return nil
}

func (c *CachingProductRepository) Update(ctx context.Context, p *catalog.Product) error {
	if err := c.inner.Update(ctx, p); err != nil {
		return err
	}
	// Overwrite cache
	cacheSetSilently(c.cache, ctx, prefixProductID+p.ID.String(), p, c.ttl)
	return nil
}

func (c *CachingProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	cacheDelete(c.cache, ctx, prefixProductID+id.String(), keyProductsCount)
	return nil
}

func (c *CachingProductRepository) Count(ctx context.Context) (int, error) {
	return loadWithSingleflight(c.cache, ctx, keyProductsCount, c.ttl, func() (int, error) {
		return c.inner.Count(ctx)
	})
}

// Simple validation to ensure decorators implement interfaces at compile time
var _ ports.BannerRepository = (*CachingBannerRepository)(nil)
var _ ports.CategoryRepository = (*CachingCategoryRepository)(nil)
var _ ports.ProductRepository = (*CachingProductRepository)(nil)

// singleflight group for coalescing cache-miss loads in-process
var sf singleflight.Group
