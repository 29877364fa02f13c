package httpserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avatarctic/storefront-admin/internal/application/services"
	"github.com/avatarctic/storefront-admin/internal/core/domain/auth"
	"github.com/avatarctic/storefront-admin/internal/core/domain/catalog"
	"github.com/avatarctic/storefront-admin/internal/core/domain/content"
	"github.com/avatarctic/storefront-admin/internal/core/domain/user"
	"github.com/avatarctic/storefront-admin/internal/core/domain/wishlist"
	"github.com/avatarctic/storefront-admin/internal/core/ports"
	"github.com/avatarctic/storefront-admin/internal/infrastructure/health"
	"github.com/avatarctic/storefront-admin/internal/infrastructure/httpserver"
	tmocks "github.com/avatarctic/storefront-admin/internal/mocks"
	"github.com/avatarctic/storefront-admin/internal/platform/loader"
	"github.com/avatarctic/storefront-admin/internal/platform/requestcache"
)

var (
	adminID    = uuid.New()
	customerID = uuid.New()
)

type fixture struct {
	server     *httpserver.Server
	loader     *services.Loader
	banners    *tmocks.BannerRepositoryMock
	categories *tmocks.CategoryRepositoryMock
	products   *tmocks.ProductRepositoryMock
	users      *tmocks.UserRepositoryMock
	wishlists  *tmocks.WishlistRepositoryMock
	provider   *tmocks.ContentProviderMock
	checkers   []ports.HealthChecker
}

func newFixture(t *testing.T, checkers ...ports.HealthChecker) *fixture {
	t.Helper()
	f := &fixture{
		loader: loader.NewCoordinator(requestcache.New[any](),
			loader.WithDefaults[any](loader.MinLoadingTime(0), loader.BaseDelay(time.Millisecond))),
		banners:    &tmocks.BannerRepositoryMock{},
		categories: &tmocks.CategoryRepositoryMock{},
		products:   &tmocks.ProductRepositoryMock{},
		users:      &tmocks.UserRepositoryMock{},
		wishlists:  &tmocks.WishlistRepositoryMock{},
		provider:   &tmocks.ContentProviderMock{},
		checkers:   checkers,
	}
	authSvc := &tmocks.AuthServiceMock{AuthenticateFn: func(ctx context.Context, token string) (*auth.Principal, error) {
		switch token {
		case "admin":
			return &auth.Principal{UserID: adminID, Role: user.RoleSuperAdmin}, nil
		case "customer":
			return &auth.Principal{UserID: customerID, Role: user.RoleCustomer}, nil
		}
		return nil, services.ErrInvalidToken
	}}
	zero := time.Duration(0)
	deps := httpserver.ServerDeps{
		StorefrontService:  services.NewStorefrontService(f.banners, f.categories, f.products, f.loader, &services.StorefrontConfig{MinLoadingTime: zero, BaseDelay: time.Millisecond}, nil),
		CatalogService:     services.NewCatalogAdminService(f.banners, f.categories, f.products, f.users, f.loader, nil),
		UserService:        services.NewUserService(f.users, &tmocks.EmailServiceMock{}, f.loader, nil),
		WishlistService:    services.NewWishlistService(f.wishlists, f.products, f.loader, nil),
		ContentService:     services.NewContentService(f.provider, f.loader, nil),
		CacheAdminService:  services.NewCacheAdminService(f.loader, nil),
		AuthService:        authSvc,
		RateLimiterService: &tmocks.RateLimiterServiceMock{},
		HealthCheckers:     checkers,
	}
	f.server = httpserver.NewServer(&httpserver.ServerConfig{}, nil, deps)
	return f
}

func (f *fixture) do(method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.server.Echo().ServeHTTP(rec, req)
	return rec
}

func TestHome(t *testing.T) {
	f := newFixture(t)
	f.banners.ListFn = func(ctx context.Context, activeOnly bool) ([]*catalog.Banner, error) {
		assert.True(t, activeOnly)
		return []*catalog.Banner{{ID: uuid.New(), Title: "Autumn sale"}}, nil
	}
	f.categories.ListFn = func(ctx context.Context) ([]*catalog.Category, error) {
		return []*catalog.Category{{ID: uuid.New(), Name: "Chairs"}}, nil
	}
	f.products.ListFn = func(ctx context.Context, filter catalog.ProductFilter) ([]*catalog.Product, error) {
		assert.NotNil(t, filter.Featured)
		return []*catalog.Product{{ID: uuid.New(), Name: "Oak Chair", IsActive: true}}, nil
	}

	rec := f.do(http.MethodGet, "/api/v1/storefront/home", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var home catalog.Home
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &home))
	assert.Len(t, home.Banners, 1)
	assert.Len(t, home.Categories, 1)
	assert.Equal(t, "Oak Chair", home.FeaturedProducts[0].Name)
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Limit"))
}

func TestGetProduct(t *testing.T) {
	f := newFixture(t)
	active, hidden := uuid.New(), uuid.New()
	f.products.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
		return &catalog.Product{ID: id, Name: "Lamp", IsActive: id == active}, nil
	}

	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/api/v1/products/"+active.String(), "", "").Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/api/v1/products/"+hidden.String(), "", "").Code)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/api/v1/products/not-a-uuid", "", "").Code)
}

func TestListProducts_BadQuery(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/api/v1/products?featured=maybe", "", "").Code)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/api/v1/products?limit=ten", "", "").Code)
}

func TestAdminRoutesRequireSuperadmin(t *testing.T) {
	f := newFixture(t)
	f.banners.CountFn = func(ctx context.Context) (int, error) { return 2, nil }
	f.products.CountFn = func(ctx context.Context) (int, error) { return 7, nil }

	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/api/v1/admin/dashboard", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/api/v1/admin/dashboard", "forged", "").Code)
	assert.Equal(t, http.StatusForbidden, f.do(http.MethodGet, "/api/v1/admin/dashboard", "customer", "").Code)

	rec := f.do(http.MethodGet, "/api/v1/admin/dashboard", "admin", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var d catalog.Dashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	assert.Equal(t, 2, d.Banners)
	assert.Equal(t, 7, d.Products)
}

func TestAdminCreateCategory(t *testing.T) {
	f := newFixture(t)
	taken := &catalog.Category{ID: uuid.New(), Slug: "chairs"}
	f.categories.GetBySlugFn = func(ctx context.Context, slug string) (*catalog.Category, error) {
		if slug == "chairs" {
			return taken, nil
		}
		return nil, ports.ErrNotFound
	}

	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodPost, "/api/v1/admin/categories", "admin", `{"name":"  "}`).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodPost, "/api/v1/admin/categories", "admin", `{"name":`).Code)
	assert.Equal(t, http.StatusConflict, f.do(http.MethodPost, "/api/v1/admin/categories", "admin", `{"name":"Chairs"}`).Code)

	rec := f.do(http.MethodPost, "/api/v1/admin/categories", "admin", `{"name":"Garden Tools"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created catalog.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "garden-tools", created.Slug)
}

func TestAdminDeleteProduct_NotFound(t *testing.T) {
	f := newFixture(t)
	f.products.DeleteFn = func(ctx context.Context, id uuid.UUID) error { return ports.ErrNotFound }
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodDelete, "/api/v1/admin/products/"+uuid.New().String(), "admin", "").Code)
}

func TestAdminCannotDeleteSelf(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, http.StatusForbidden, f.do(http.MethodDelete, "/api/v1/admin/users/"+adminID.String(), "admin", "").Code)
}

func TestProfile(t *testing.T) {
	f := newFixture(t)
	f.users.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*user.User, error) {
		return &user.User{ID: id, Email: "me@example.com", FullName: "Me", Role: user.RoleCustomer}, nil
	}
	var updated *user.User
	f.users.UpdateFn = func(ctx context.Context, u *user.User) error { updated = u; return nil }

	rec := f.do(http.MethodGet, "/api/v1/profile", "customer", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "me@example.com")

	rec = f.do(http.MethodPut, "/api/v1/profile", "customer", `{"full_name":"New Name","role":"superadmin"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, updated)
	assert.Equal(t, "New Name", updated.FullName)
	assert.Equal(t, user.RoleCustomer, updated.Role)
}

func TestWishlist(t *testing.T) {
	f := newFixture(t)
	known := uuid.New()
	f.products.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
		if id == known {
			return &catalog.Product{ID: id, Name: "Mug", IsActive: true}, nil
		}
		return nil, ports.ErrNotFound
	}
	var items []*wishlist.Item
	f.wishlists.AddFn = func(ctx context.Context, item *wishlist.Item) error { items = append(items, item); return nil }
	f.wishlists.ListFn = func(ctx context.Context, userID uuid.UUID) ([]*wishlist.Item, error) { return items, nil }

	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/api/v1/wishlist", "", "").Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodPost, "/api/v1/wishlist/"+uuid.New().String(), "customer", "").Code)
	assert.Equal(t, http.StatusNoContent, f.do(http.MethodPost, "/api/v1/wishlist/"+known.String(), "customer", "").Code)

	rec := f.do(http.MethodGet, "/api/v1/wishlist", "customer", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Mug")
}

func TestGenerateContent_FallsBack(t *testing.T) {
	f := newFixture(t)
	f.provider.GenerateFn = func(ctx context.Context, req *content.GenerateRequest) (string, error) {
		return "", errors.New("provider down")
	}

	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodPost, "/api/v1/admin/content/generate", "admin", `{}`).Code)

	rec := f.do(http.MethodPost, "/api/v1/admin/content/generate", "admin", `{"product_name":"Oak Chair"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var out content.Generated
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out.Fallback)
	assert.Contains(t, out.Text, "Oak Chair")
}

func TestScrapeContent_RejectsBadURL(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodPost, "/api/v1/admin/content/scrape", "admin", `{"url":"ftp://x"}`).Code)
}

func TestCacheAdmin(t *testing.T) {
	f := newFixture(t)
	f.loader.Cache().Set("banners:active", []*catalog.Banner{})
	f.loader.Cache().Set("categories:all", []*catalog.Category{})

	rec := f.do(http.MethodGet, "/api/v1/admin/cache", "admin", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var status ports.CacheStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.ElementsMatch(t, []string{"banners:active", "categories:all"}, status.Keys)

	assert.Equal(t, http.StatusNoContent, f.do(http.MethodDelete, "/api/v1/admin/cache/banners:active", "admin", "").Code)
	_, ok := f.loader.Cache().Get("banners:active")
	assert.False(t, ok)

	assert.Equal(t, http.StatusNoContent, f.do(http.MethodDelete, "/api/v1/admin/cache", "admin", "").Code)
	assert.Equal(t, 0, f.loader.Cache().Len())
}

func TestHealth(t *testing.T) {
	f := newFixture(t, health.NewCheckerFunc("database", func(ctx context.Context) error { return nil }))
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/health", "", "").Code)

	f = newFixture(t,
		health.NewCheckerFunc("database", func(ctx context.Context) error { return nil }),
		health.NewCheckerFunc("redis", func(ctx context.Context) error { return errors.New("connection refused") }),
	)
	rec := f.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "connection refused")
}
