package backend

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/avatarctic/storefront-admin/internal/core/domain/catalog"
	"github.com/avatarctic/storefront-admin/internal/core/ports"
)

const (
	tableBanners    = "banners"
	tableCategories = "categories"
	tableProducts   = "products"
)

type BannerRepository struct{ c *Client }

func NewBannerRepository(c *Client) *BannerRepository { return &BannerRepository{c: c} }

func (r *BannerRepository) List(ctx context.Context, activeOnly bool) ([]*catalog.Banner, error) {
	q := url.Values{"order": {"position.asc,created_at.desc"}}
	if activeOnly {
		q.Set("is_active", eq(true))
	}
	out := []*catalog.Banner{}
	return out, r.c.list(ctx, tableBanners, q, &out)
}

func (r *BannerRepository) GetByID(ctx context.Context, id uuid.UUID) (*catalog.Banner, error) {
	return one[catalog.Banner](ctx, r.c, tableBanners, url.Values{"id": {eq(id)}})
}

func (r *BannerRepository) Create(ctx context.Context, b *catalog.Banner) error {
	return r.c.insert(ctx, tableBanners, b)
}

func (r *BannerRepository) Update(ctx context.Context, b *catalog.Banner) error {
	return r.c.update(ctx, tableBanners, url.Values{"id": {eq(b.ID)}}, b)
}

func (r *BannerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.c.remove(ctx, tableBanners, url.Values{"id": {eq(id)}})
}

func (r *BannerRepository) Count(ctx context.Context) (int, error) {
	return r.c.count(ctx, tableBanners, nil)
}

type CategoryRepository struct{ c *Client }

func NewCategoryRepository(c *Client) *CategoryRepository { return &CategoryRepository{c: c} }

func (r *CategoryRepository) List(ctx context.Context) ([]*catalog.Category, error) {
	out := []*catalog.Category{}
	return out, r.c.list(ctx, tableCategories, url.Values{"order": {"name.asc"}}, &out)
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	return one[catalog.Category](ctx, r.c, tableCategories, url.Values{"id": {eq(id)}})
}

func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*catalog.Category, error) {
	return one[catalog.Category](ctx, r.c, tableCategories, url.Values{"slug": {eq(slug)}})
}

func (r *CategoryRepository) Create(ctx context.Context, c *catalog.Category) error {
	return r.c.insert(ctx, tableCategories, c)
}

func (r *CategoryRepository) Update(ctx context.Context, c *catalog.Category) error {
	return r.c.update(ctx, tableCategories, url.Values{"id": {eq(c.ID)}}, c)
}

func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.c.remove(ctx, tableCategories, url.Values{"id": {eq(id)}})
}

func (r *CategoryRepository) Count(ctx context.Context) (int, error) {
	return r.c.count(ctx, tableCategories, nil)
}

type ProductRepository struct{ c *Client }

func NewProductRepository(c *Client) *ProductRepository { return &ProductRepository{c: c} }

// productQuery renders a filter as PostgREST query parameters.
func productQuery(f catalog.ProductFilter) url.Values {
	q := url.Values{"order": {"created_at.desc"}}
	if f.CategoryID != nil {
		q.Set("category_id", eq(*f.CategoryID))
	}
	if f.Featured != nil {
		q.Set("is_featured", eq(*f.Featured))
	}
	if f.ActiveOnly {
		q.Set("is_active", eq(true))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		// PostgREST reserves commas and parentheses in filter values
		s = strings.NewReplacer(",", " ", "(", " ", ")", " ", "*", " ").Replace(s)
		q.Set("name", "ilike.*"+s+"*")
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		q.Set("offset", strconv.Itoa(f.Offset))
	}
	return q
}

func (r *ProductRepository) List(ctx context.Context, f catalog.ProductFilter) ([]*catalog.Product, error) {
	out := []*catalog.Product{}
	return out, r.c.list(ctx, tableProducts, productQuery(f), &out)
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	return one[catalog.Product](ctx, r.c, tableProducts, url.Values{"id": {eq(id)}})
}

func (r *ProductRepository) Create(ctx context.Context, p *catalog.Product) error {
	return r.c.insert(ctx, tableProducts, p)
}

func (r *ProductRepository) Update(ctx context.Context, p *catalog.Product) error {
	return r.c.update(ctx, tableProducts, url.Values{"id": {eq(p.ID)}}, p)
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.c.remove(ctx, tableProducts, url.Values{"id": {eq(id)}})
}

func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	return r.c.count(ctx, tableProducts, nil)
}

var (
	_ ports.BannerRepository   = (*BannerRepository)(nil)
	_ ports.CategoryRepository = (*CategoryRepository)(nil)
	_ ports.ProductRepository  = (*ProductRepository)(nil)
)
