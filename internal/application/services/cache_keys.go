package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avatarctic/storefront-admin/internal/platform/loader"
)

// Request cache key layout. Keys are namespaced by prefix so writes can
// invalidate whole families.
const (
	keyActiveBanners  = "banners:active"
	keyCategories     = "categories:all"
	prefixProductList = "products:list:"
	prefixProduct     = "product:"
	prefixWishlist    = "wishlist:"
	prefixProfile     = "profile:"
	prefixScrape      = "content:scrape:"
)

// Default TTLs per call site.
const (
	CatalogTTL  = 60 * time.Second
	CategoryTTL = 5 * time.Minute
	ProfileTTL  = 60 * time.Second
	ScrapeTTL   = 5 * time.Minute
)

func productKey(id uuid.UUID) string  { return prefixProduct + id.String() }
func wishlistKey(id uuid.UUID) string { return prefixWishlist + id.String() }
func profileKey(id uuid.UUID) string  { return prefixProfile + id.String() }

// Loader is the request coordinator the services read through.
type Loader = loader.Coordinator[any]

// cacheInvalidator is the part of the coordinator that write paths need.
type cacheInvalidator interface {
	Invalidate(key string)
	InvalidatePrefix(prefix string) int
}

// load runs fetch through the coordinator and asserts the cached value back to T.
func load[T any](ctx context.Context, l *Loader, key string, fetch func(ctx context.Context) (T, error), opts ...loader.Option) (T, error) {
	var zero T
	v, err := l.Execute(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	}, opts...)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("request cache: value for %q has type %T", key, v)
	}
	return t, nil
}
