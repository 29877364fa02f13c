package ports

import (
	"context"

	"github.com/avatarctic/storefront-admin/internal/core/domain/catalog"
	"github.com/google/uuid"
)

// BannerRepository defines the data operations for banners
type BannerRepository interface {
	List(ctx context.Context, activeOnly bool) ([]*catalog.Banner, error)
	GetByID(ctx context.Context, id uuid.UUID) (*catalog.Banner, error)
	Create(ctx context.Context, b *catalog.Banner) error
	Update(ctx context.Context, b *catalog.Banner) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}

// CategoryRepository defines the data operations for categories
type CategoryRepository interface {
	List(ctx context.Context) ([]*catalog.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error)
	GetBySlug(ctx context.Context, slug string) (*catalog.Category, error)
	Create(ctx context.Context, c *catalog.Category) error
	Update(ctx context.Context, c *catalog.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}

// ProductRepository defines the data operations for products
type ProductRepository interface {
	List(ctx context.Context, filter catalog.ProductFilter) ([]*catalog.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error)
	Create(ctx context.Context, p *catalog.Product) error
	Update(ctx context.Context, p *catalog.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}

// ProductPage is one page of a product listing.
type ProductPage struct {
	Products []*catalog.Product `json:"products"`
	Limit    int                `json:"limit"`
	Offset   int                `json:"offset"`
}

// StorefrontService serves the cached public read paths.
type StorefrontService interface {
	Home(ctx context.Context) (*catalog.Home, error)
	ListProducts(ctx context.Context, filter catalog.ProductFilter) (*ProductPage, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, error)
	ListCategories(ctx context.Context) ([]*catalog.Category, error)
}

// CatalogAdminService is the superadmin CRUD surface for catalog entities.
type CatalogAdminService interface {
	ListBanners(ctx context.Context) ([]*catalog.Banner, error)
	GetBanner(ctx context.Context, id uuid.UUID) (*catalog.Banner, error)
	CreateBanner(ctx context.Context, req *catalog.CreateBannerRequest) (*catalog.Banner, error)
	UpdateBanner(ctx context.Context, id uuid.UUID, req *catalog.UpdateBannerRequest) (*catalog.Banner, error)
	DeleteBanner(ctx context.Context, id uuid.UUID) error

	ListCategories(ctx context.Context) ([]*catalog.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*catalog.Category, error)
	CreateCategory(ctx context.Context, req *catalog.CreateCategoryRequest) (*catalog.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req *catalog.UpdateCategoryRequest) (*catalog.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	ListProducts(ctx context.Context, filter catalog.ProductFilter) ([]*catalog.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, error)
	CreateProduct(ctx context.Context, req *catalog.CreateProductRequest) (*catalog.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *catalog.UpdateProductRequest) (*catalog.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	Dashboard(ctx context.Context) (*catalog.Dashboard, error)
}
