package httpserver_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/avatarctic/storefront-admin/configs"
	"github.com/avatarctic/storefront-admin/internal/application/services"
	"github.com/avatarctic/storefront-admin/internal/core/domain/catalog"
	"github.com/avatarctic/storefront-admin/internal/core/ports"
	"github.com/avatarctic/storefront-admin/internal/infrastructure/backend"
	"github.com/avatarctic/storefront-admin/internal/infrastructure/health"
	"github.com/avatarctic/storefront-admin/internal/infrastructure/httpserver"
	tmocks "github.com/avatarctic/storefront-admin/internal/mocks"
	"github.com/avatarctic/storefront-admin/internal/platform/loader"
	"github.com/avatarctic/storefront-admin/internal/platform/requestcache"
)

const testJWTSecret = "integration-secret"

// fakeREST is a tiny in-memory stand-in for the backend's PostgREST interface.
type fakeREST struct {
	mu       sync.Mutex
	tables   map[string][]map[string]interface{}
	requests int32
}

func newFakeREST() *fakeREST {
	return &fakeREST{tables: map[string][]map[string]interface{}{}}
}

func (f *fakeREST) seed(table string, rows ...interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range rows {
		b, _ := json.Marshal(r)
		var m map[string]interface{}
		_ = json.Unmarshal(b, &m)
		f.tables[table] = append(f.tables[table], m)
	}
}

func matches(row map[string]interface{}, q map[string][]string) bool {
	for k, vs := range q {
		switch k {
		case "select", "order", "limit", "offset", "on_conflict":
			continue
		}
		v := vs[0]
		switch {
		case strings.HasPrefix(v, "eq."):
			if fmt.Sprint(row[k]) != strings.TrimPrefix(v, "eq.") {
				return false
			}
		case strings.HasPrefix(v, "ilike."):
			needle := strings.ToLower(strings.Trim(strings.TrimPrefix(v, "ilike."), "*"))
			if !strings.Contains(strings.ToLower(fmt.Sprint(row[k])), needle) {
				return false
			}
		}
	}
	return true
}

func (f *fakeREST) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&f.requests, 1)
	if r.Header.Get("apikey") == "" {
		http.Error(w, `{"message":"no api key"}`, http.StatusUnauthorized)
		return
	}
	table := strings.TrimPrefix(r.URL.Path, "/rest/v1/")
	q := r.URL.Query()

	f.mu.Lock()
	defer f.mu.Unlock()
	var hit, keep []map[string]interface{}
	for _, row := range f.tables[table] {
		if matches(row, q) {
			hit = append(hit, row)
		} else {
			keep = append(keep, row)
		}
	}

	switch r.Method {
	case http.MethodGet:
		if strings.Contains(r.Header.Get("Prefer"), "count=exact") {
			w.Header().Set("Content-Range", "0-0/"+strconv.Itoa(len(hit)))
		}
		if n, err := strconv.Atoi(q.Get("limit")); err == nil && n < len(hit) {
			hit = hit[:n]
		}
		if hit == nil {
			hit = []map[string]interface{}{}
		}
		_ = json.NewEncoder(w).Encode(hit)
	case http.MethodPost:
		var row map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&row)
		f.tables[table] = append(f.tables[table], row)
		w.WriteHeader(http.StatusCreated)
	case http.MethodPatch:
		var patch map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&patch)
		for _, row := range hit {
			for k, v := range patch {
				row[k] = v
			}
		}
		if hit == nil {
			hit = []map[string]interface{}{}
		}
		_ = json.NewEncoder(w).Encode(hit)
	case http.MethodDelete:
		f.tables[table] = keep
		if hit == nil {
			hit = []map[string]interface{}{}
		}
		_ = json.NewEncoder(w).Encode(hit)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// StorefrontFlowSuite drives the real server, services and REST client against fakeREST.
type StorefrontFlowSuite struct {
	suite.Suite
	rest    *fakeREST
	backend *httptest.Server
	api     *httptest.Server
	client  *http.Client

	chair uuid.UUID
	admin uuid.UUID
}

func (s *StorefrontFlowSuite) SetupTest() {
	s.rest = newFakeREST()
	s.backend = httptest.NewServer(s.rest)
	s.client = &http.Client{Timeout: 5 * time.Second}

	s.chair = uuid.New()
	s.admin = uuid.New()
	cat := catalog.Category{ID: uuid.New(), Name: "Chairs", Slug: "chairs"}
	s.rest.seed("categories", cat)
	s.rest.seed("banners", catalog.Banner{ID: uuid.New(), Title: "Autumn sale", ImageURL: "https://img/1.jpg", IsActive: true})
	s.rest.seed("products",
		catalog.Product{ID: s.chair, CategoryID: &cat.ID, Name: "Oak Chair", Slug: "oak-chair", Price: 4999, Currency: "USD", ImageURLs: []string{}, IsFeatured: true, IsActive: true},
		catalog.Product{ID: uuid.New(), Name: "Retired Stool", Slug: "retired-stool", Currency: "USD", ImageURLs: []string{}, IsActive: false},
	)
	s.rest.seed("profiles", map[string]interface{}{"id": s.admin.String(), "email": "admin@example.com", "role": "superadmin"})

	client := backend.NewClient(&configs.BackendConfig{URL: s.backend.URL, AnonKey: "anon", ServiceKey: "service"}, nil)
	banners := backend.NewBannerRepository(client)
	categories := backend.NewCategoryRepository(client)
	products := backend.NewProductRepository(client)
	users := backend.NewUserRepository(client)
	wishlists := backend.NewWishlistRepository(client)

	coord := loader.NewCoordinator(requestcache.New[any](),
		loader.WithDefaults[any](loader.MinLoadingTime(0), loader.BaseDelay(time.Millisecond)))
	userService := services.NewUserService(users, &tmocks.EmailServiceMock{}, coord, nil)

	srv := httpserver.NewServer(&httpserver.ServerConfig{}, nil, httpserver.ServerDeps{
		StorefrontService: services.NewStorefrontService(banners, categories, products, coord, &services.StorefrontConfig{BaseDelay: time.Millisecond}, nil),
		CatalogService:    services.NewCatalogAdminService(banners, categories, products, users, coord, nil),
		UserService:       userService,
		WishlistService:   services.NewWishlistService(wishlists, products, coord, nil),
		ContentService:    services.NewContentService(&tmocks.ContentProviderMock{}, coord, nil),
		CacheAdminService: services.NewCacheAdminService(coord, nil),
		AuthService:       services.NewAuthService(services.AuthConfig{Secret: testJWTSecret}, userService, nil),
		HealthCheckers:    []ports.HealthChecker{health.NewBackendHealthChecker(client)},
	})
	s.api = httptest.NewServer(srv.Echo())
}

func (s *StorefrontFlowSuite) TearDownTest() {
	s.api.Close()
	s.backend.Close()
}

func (s *StorefrontFlowSuite) token(sub uuid.UUID) string {
	claims := jwt.MapClaims{"sub": sub.String(), "exp": time.Now().Add(time.Hour).Unix(), "role": "authenticated"}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	s.Require().NoError(err)
	return signed
}

func (s *StorefrontFlowSuite) call(method, path, token, body string) (*http.Response, []byte) {
	var req *http.Request
	var err error
	if body != "" {
		req, err = http.NewRequest(method, s.api.URL+path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, err = http.NewRequest(method, s.api.URL+path, nil)
	}
	s.Require().NoError(err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp, respBody
}

func (s *StorefrontFlowSuite) TestHealthCheck() {
	resp, body := s.call(http.MethodGet, "/health", "", "")
	s.Equal(http.StatusOK, resp.StatusCode)

	var h map[string]interface{}
	s.Require().NoError(json.Unmarshal(body, &h))
	s.Equal("healthy", h["status"])
}

func (s *StorefrontFlowSuite) TestHomeIsServedFromCacheOnSecondCall() {
	resp, body := s.call(http.MethodGet, "/api/v1/storefront/home", "", "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var home catalog.Home
	s.Require().NoError(json.Unmarshal(body, &home))
	s.Len(home.Banners, 1)
	s.Len(home.FeaturedProducts, 1)
	s.Equal("Oak Chair", home.FeaturedProducts[0].Name)

	before := atomic.LoadInt32(&s.rest.requests)
	resp, _ = s.call(http.MethodGet, "/api/v1/storefront/home", "", "")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(before, atomic.LoadInt32(&s.rest.requests))
}

func (s *StorefrontFlowSuite) TestAdminUpdateIsVisibleOnStorefront() {
	resp, _ := s.call(http.MethodGet, "/api/v1/products/"+s.chair.String(), "", "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	resp, _ = s.call(http.MethodPut, "/api/v1/admin/products/"+s.chair.String(), s.token(s.admin), `{"is_active":false}`)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	resp, _ = s.call(http.MethodGet, "/api/v1/products/"+s.chair.String(), "", "")
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *StorefrontFlowSuite) TestCustomerWithoutProfileCannotReachAdmin() {
	resp, _ := s.call(http.MethodGet, "/api/v1/admin/dashboard", s.token(uuid.New()), "")
	s.Equal(http.StatusForbidden, resp.StatusCode)

	resp, body := s.call(http.MethodGet, "/api/v1/admin/dashboard", s.token(s.admin), "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var d catalog.Dashboard
	s.Require().NoError(json.Unmarshal(body, &d))
	s.Equal(2, d.Products)
	s.Equal(1, d.Users)
}

func TestStorefrontFlowSuite(t *testing.T) {
	suite.Run(t, new(StorefrontFlowSuite))
}
