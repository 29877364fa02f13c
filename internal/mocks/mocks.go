package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avatarctic/storefront-admin/internal/core/domain/auth"
	"github.com/avatarctic/storefront-admin/internal/core/domain/catalog"
	"github.com/avatarctic/storefront-admin/internal/core/domain/content"
	"github.com/avatarctic/storefront-admin/internal/core/domain/user"
	"github.com/avatarctic/storefront-admin/internal/core/domain/wishlist"
	"github.com/avatarctic/storefront-admin/internal/core/ports"
)

// BannerRepositoryMock is a lightweight mock for BannerRepository
type BannerRepositoryMock struct {
	ListFn    func(ctx context.Context, activeOnly bool) ([]*catalog.Banner, error)
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*catalog.Banner, error)
	CreateFn  func(ctx context.Context, b *catalog.Banner) error
	UpdateFn  func(ctx context.Context, b *catalog.Banner) error
	DeleteFn  func(ctx context.Context, id uuid.UUID) error
	CountFn   func(ctx context.Context) (int, error)
}

func (m *BannerRepositoryMock) List(ctx context.Context, activeOnly bool) ([]*catalog.Banner, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, activeOnly)
	}
	return []*catalog.Banner{}, nil
}
func (m *BannerRepositoryMock) GetByID(ctx context.Context, id uuid.UUID) (*catalog.Banner, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, ports.ErrNotFound
}
func (m *BannerRepositoryMock) Create(ctx context.Context, b *catalog.Banner) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, b)
	}
	return nil
}
func (m *BannerRepositoryMock) Update(ctx context.Context, b *catalog.Banner) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, b)
	}
	return nil
}
func (m *BannerRepositoryMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}
func (m *BannerRepositoryMock) Count(ctx context.Context) (int, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return 0, nil
}

// CategoryRepositoryMock is a lightweight mock for CategoryRepository
type CategoryRepositoryMock struct {
	ListFn      func(ctx context.Context) ([]*catalog.Category, error)
	GetByIDFn   func(ctx context.Context, id uuid.UUID) (*catalog.Category, error)
	GetBySlugFn func(ctx context.Context, slug string) (*catalog.Category, error)
	CreateFn    func(ctx context.Context, c *catalog.Category) error
	UpdateFn    func(ctx context.Context, c *catalog.Category) error
	DeleteFn    func(ctx context.Context, id uuid.UUID) error
	CountFn     func(ctx context.Context) (int, error)
}

func (m *CategoryRepositoryMock) List(ctx context.Context) ([]*catalog.Category, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return []*catalog.Category{}, nil
}
func (m *CategoryRepositoryMock) GetByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, ports.ErrNotFound
}
func (m *CategoryRepositoryMock) GetBySlug(ctx context.Context, slug string) (*catalog.Category, error) {
	if m.GetBySlugFn != nil {
		return m.GetBySlugFn(ctx, slug)
	}
	return nil, ports.ErrNotFound
}
func (m *CategoryRepositoryMock) Create(ctx context.Context, c *catalog.Category) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}
func (m *CategoryRepositoryMock) Update(ctx context.Context, c *catalog.Category) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, c)
	}
	return nil
}
func (m *CategoryRepositoryMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}
func (m *CategoryRepositoryMock) Count(ctx context.Context) (int, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return 0, nil
}

// ProductRepositoryMock is a lightweight mock for ProductRepository
type ProductRepositoryMock struct {
	ListFn    func(ctx context.Context, filter catalog.ProductFilter) ([]*catalog.Product, error)
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*catalog.Product, error)
	CreateFn  func(ctx context.Context, p *catalog.Product) error
	UpdateFn  func(ctx context.Context, p *catalog.Product) error
	DeleteFn  func(ctx context.Context, id uuid.UUID) error
	CountFn   func(ctx context.Context) (int, error)
}

func (m *ProductRepositoryMock) List(ctx context.Context, filter catalog.ProductFilter) ([]*catalog.Product, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}
	return []*catalog.Product{}, nil
}
func (m *ProductRepositoryMock) GetByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, ports.ErrNotFound
}
func (m *ProductRepositoryMock) Create(ctx context.Context, p *catalog.Product) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}
func (m *ProductRepositoryMock) Update(ctx context.Context, p *catalog.Product) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, p)
	}
	return nil
}
func (m *ProductRepositoryMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}
func (m *ProductRepositoryMock) Count(ctx context.Context) (int, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return 0, nil
}

// UserRepositoryMock is a lightweight mock for UserRepository
type UserRepositoryMock struct {
	ListFn       func(ctx context.Context, limit, offset int) ([]*user.User, error)
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByEmailFn func(ctx context.Context, email string) (*user.User, error)
	CreateFn     func(ctx context.Context, u *user.User) error
	UpdateFn     func(ctx context.Context, u *user.User) error
	DeleteFn     func(ctx context.Context, id uuid.UUID) error
	CountFn      func(ctx context.Context) (int, error)
}

func (m *UserRepositoryMock) List(ctx context.Context, limit, offset int) ([]*user.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, limit, offset)
	}
	return []*user.User{}, nil
}
func (m *UserRepositoryMock) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, ports.ErrNotFound
}
func (m *UserRepositoryMock) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, ports.ErrNotFound
}
func (m *UserRepositoryMock) Create(ctx context.Context, u *user.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}
func (m *UserRepositoryMock) Update(ctx context.Context, u *user.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, u)
	}
	return nil
}
func (m *UserRepositoryMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}
func (m *UserRepositoryMock) Count(ctx context.Context) (int, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return 0, nil
}

// WishlistRepositoryMock is a lightweight mock for WishlistRepository
type WishlistRepositoryMock struct {
	ListFn   func(ctx context.Context, userID uuid.UUID) ([]*wishlist.Item, error)
	AddFn    func(ctx context.Context, item *wishlist.Item) error
	RemoveFn func(ctx context.Context, userID, productID uuid.UUID) error
}

func (m *WishlistRepositoryMock) List(ctx context.Context, userID uuid.UUID) ([]*wishlist.Item, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, userID)
	}
	return []*wishlist.Item{}, nil
}
func (m *WishlistRepositoryMock) Add(ctx context.Context, item *wishlist.Item) error {
	if m.AddFn != nil {
		return m.AddFn(ctx, item)
	}
	return nil
}
func (m *WishlistRepositoryMock) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	if m.RemoveFn != nil {
		return m.RemoveFn(ctx, userID, productID)
	}
	return nil
}

// ContentProviderMock is a lightweight mock for ContentProvider
type ContentProviderMock struct {
	ScrapeFn   func(ctx context.Context, url string) (*content.ScrapeResult, error)
	GenerateFn func(ctx context.Context, req *content.GenerateRequest) (string, error)
}

func (m *ContentProviderMock) Scrape(ctx context.Context, url string) (*content.ScrapeResult, error) {
	if m.ScrapeFn != nil {
		return m.ScrapeFn(ctx, url)
	}
	return &content.ScrapeResult{URL: url}, nil
}
func (m *ContentProviderMock) Generate(ctx context.Context, req *content.GenerateRequest) (string, error) {
	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, req)
	}
	return "", nil
}

// EmailServiceMock records welcome emails
type EmailServiceMock struct {
	SendWelcomeEmailFn func(ctx context.Context, u *user.User) error
}

func (m *EmailServiceMock) SendWelcomeEmail(ctx context.Context, u *user.User) error {
	if m.SendWelcomeEmailFn != nil {
		return m.SendWelcomeEmailFn(ctx, u)
	}
	return nil
}

// AuthServiceMock is a lightweight mock for AuthService
type AuthServiceMock struct {
	AuthenticateFn func(ctx context.Context, token string) (*auth.Principal, error)
}

func (m *AuthServiceMock) Authenticate(ctx context.Context, token string) (*auth.Principal, error) {
	if m.AuthenticateFn != nil {
		return m.AuthenticateFn(ctx, token)
	}
	return nil, ports.ErrNotFound
}

// RateLimitRepositoryMock is a lightweight mock for RateLimitRepository
type RateLimitRepositoryMock struct {
	IncrementWindowFn func(ctx context.Context, subject string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error)
}

func (m *RateLimitRepositoryMock) IncrementWindow(ctx context.Context, subject string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error) {
	if m.IncrementWindowFn != nil {
		return m.IncrementWindowFn(ctx, subject, window, keyPrefix, ttl)
	}
	return 1, time.Now().Truncate(window), nil
}

// RateLimiterServiceMock is a lightweight mock for RateLimiterService
type RateLimiterServiceMock struct {
	AllowFn func(ctx context.Context, subject string) (bool, int, int, time.Time, error)
}

func (m *RateLimiterServiceMock) Allow(ctx context.Context, subject string) (bool, int, int, time.Time, error) {
	if m.AllowFn != nil {
		return m.AllowFn(ctx, subject)
	}
	return true, 1, 1, time.Now(), nil
}

// CacheMock is an in-memory ports.Cache
type CacheMock struct {
	mu   sync.Mutex
	Data map[string][]byte
	Err  error
}

func NewCacheMock() *CacheMock { return &CacheMock{Data: map[string][]byte{}} }

func (m *CacheMock) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, false, m.Err
	}
	b, ok := m.Data[key]
	return b, ok, nil
}
func (m *CacheMock) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Data[key] = value
	return nil
}
func (m *CacheMock) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
	return nil
}
