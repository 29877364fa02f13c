package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/storefront-admin/internal/core/domain/catalog"
	"github.com/avatarctic/storefront-admin/internal/core/ports"
	"github.com/avatarctic/storefront-admin/internal/infrastructure/db"
)

// BannerRepository implements ports.BannerRepository on Postgres.
type BannerRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

func NewBannerRepository(database *db.Database, logger *logrus.Logger) *BannerRepository {
	return &BannerRepository{db: database, logger: logger}
}

const bannerColumns = `id, title, COALESCE(subtitle, '') AS subtitle, image_url, COALESCE(link_url, '') AS link_url,
	position, is_active, created_at, updated_at`

func (r *BannerRepository) List(ctx context.Context, activeOnly bool) ([]*catalog.Banner, error) {
	query := `SELECT ` + bannerColumns + ` FROM banners`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY position ASC, created_at DESC`

	banners := []*catalog.Banner{}
	if err := r.db.DB.SelectContext(ctx, &banners, query); err != nil {
		logDBError(r.logger, logrus.Fields{"active_only": activeOnly}, err, "db: failed to list banners")
		return nil, fmt.Errorf("failed to list banners: %w", err)
	}
	return banners, nil
}

func (r *BannerRepository) GetByID(ctx context.Context, id uuid.UUID) (*catalog.Banner, error) {
	var b catalog.Banner
	err := r.db.DB.GetContext(ctx, &b, `SELECT `+bannerColumns+` FROM banners WHERE id = $1`, id)
	if err != nil {
		logDBError(r.logger, logrus.Fields{"banner_id": id}, err, "db: failed to get banner")
		return nil, mapError("banner", err)
	}
	return &b, nil
}

func (r *BannerRepository) Create(ctx context.Context, b *catalog.Banner) error {
	_, err := r.db.DB.NamedExecContext(ctx, `
		INSERT INTO banners (id, title, subtitle, image_url, link_url, position, is_active, created_at, updated_at)
		VALUES (:id, :title, :subtitle, :image_url, :link_url, :position, :is_active, :created_at, :updated_at)`, b)
	if err != nil {
		logDBError(r.logger, logrus.Fields{"banner_id": b.ID}, err, "db: failed to create banner")
		return mapError("banner", err)
	}
	return nil
}

func (r *BannerRepository) Update(ctx context.Context, b *catalog.Banner) error {
	res, err := r.db.DB.NamedExecContext(ctx, `
		UPDATE banners SET title = :title, subtitle = :subtitle, image_url = :image_url, link_url = :link_url,
			position = :position, is_active = :is_active, updated_at = :updated_at
		WHERE id = :id`, b)
	if err != nil {
		logDBError(r.logger, logrus.Fields{"banner_id": b.ID}, err, "db: failed to update banner")
		return mapError("banner", err)
	}
	return requireAffected("banner", res)
}

func (r *BannerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.DB.ExecContext(ctx, `DELETE FROM banners WHERE id = $1`, id)
	if err != nil {
		logDBError(r.logger, logrus.Fields{"banner_id": id}, err, "db: failed to delete banner")
		return fmt.Errorf("failed to delete banner: %w", err)
	}
	return requireAffected("banner", res)
}

func (r *BannerRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.DB.GetContext(ctx, &n, `SELECT COUNT(*) FROM banners`); err != nil {
		return 0, fmt.Errorf("failed to count banners: %w", err)
	}
	return n, nil
}

// CategoryRepository implements ports.CategoryRepository on Postgres.
type CategoryRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

func NewCategoryRepository(database *db.Database, logger *logrus.Logger) *CategoryRepository {
	return &CategoryRepository{db: database, logger: logger}
}

const categoryColumns = `id, name, slug, COALESCE(description, '') AS description, COALESCE(image_url, '') AS image_url,
	created_at, updated_at`

func (r *CategoryRepository) List(ctx context.Context) ([]*catalog.Category, error) {
	categories := []*catalog.Category{}
	if err := r.db.DB.SelectContext(ctx, &categories, `SELECT `+categoryColumns+` FROM categories ORDER BY name ASC`); err != nil {
		logDBError(r.logger, nil, err, "db: failed to list categories")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	var c catalog.Category
	if err := r.db.DB.GetContext(ctx, &c, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id); err != nil {
		logDBError(r.logger, logrus.Fields{"category_id": id}, err, "db: failed to get category")
		return nil, mapError("category", err)
	}
	return &c, nil
}

func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*catalog.Category, error) {
	var c catalog.Category
	if err := r.db.DB.GetContext(ctx, &c, `SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, slug); err != nil {
		logDBError(r.logger, logrus.Fields{"slug": slug}, err, "db: failed to get category by slug")
		return nil, mapError("category", err)
	}
	return &c, nil
}

func (r *CategoryRepository) Create(ctx context.Context, c *catalog.Category) error {
	_, err := r.db.DB.NamedExecContext(ctx, `
		INSERT INTO categories (id, name, slug, description, image_url, created_at, updated_at)
		VALUES (:id, :name, :slug, :description, :image_url, :created_at, :updated_at)`, c)
	if err != nil {
		logDBError(r.logger, logrus.Fields{"slug": c.Slug}, err, "db: failed to create category")
		return mapError("category", err)
	}
	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, c *catalog.Category) error {
	res, err := r.db.DB.NamedExecContext(ctx, `
		UPDATE categories SET name = :name, slug = :slug, description = :description, image_url = :image_url,
			updated_at = :updated_at
		WHERE id = :id`, c)
	if err != nil {
		logDBError(r.logger, logrus.Fields{"category_id": c.ID}, err, "db: failed to update category")
		return mapError("category", err)
	}
	return requireAffected("category", res)
}

// Delete removes the category; its products keep existing with a NULL category.
func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.DB.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		logDBError(r.logger, logrus.Fields{"category_id": id}, err, "db: failed to delete category")
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return requireAffected("category", res)
}

func (r *CategoryRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.DB.GetContext(ctx, &n, `SELECT COUNT(*) FROM categories`); err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return n, nil
}

// ProductRepository implements ports.ProductRepository on Postgres.
type ProductRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

func NewProductRepository(database *db.Database, logger *logrus.Logger) *ProductRepository {
	return &ProductRepository{db: database, logger: logger}
}

// productRow carries the image array in its driver representation.
type productRow struct {
	catalog.Product
	ImageURLs pq.StringArray `db:"image_urls"`
}

func (r productRow) toProduct() *catalog.Product {
	p := r.Product
	p.ImageURLs = []string(r.ImageURLs)
	if p.ImageURLs == nil {
		p.ImageURLs = []string{}
	}
	return &p
}

func newProductRow(p *catalog.Product) productRow {
	return productRow{Product: *p, ImageURLs: pq.StringArray(p.ImageURLs)}
}

const productColumns = `id, category_id, name, slug, COALESCE(description, '') AS description, price, currency,
	image_urls, stock, is_featured, is_active, COALESCE(source_url, '') AS source_url, created_at, updated_at`

// productWhere renders the filter as a WHERE clause with positional args.
func productWhere(f catalog.ProductFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}
	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.CategoryID != nil {
		add("category_id = $%d", *f.CategoryID)
	}
	if f.Featured != nil {
		add("is_featured = $%d", *f.Featured)
	}
	if f.ActiveOnly {
		conds = append(conds, "is_active")
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		add("name ILIKE $%d", "%"+s+"%")
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *ProductRepository) List(ctx context.Context, f catalog.ProductFilter) ([]*catalog.Product, error) {
	where, args := productWhere(f)
	query := `SELECT ` + productColumns + ` FROM products` + where + ` ORDER BY created_at DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	var rows []productRow
	if err := r.db.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		logDBError(r.logger, logrus.Fields{"filter": f.CacheKey()}, err, "db: failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	products := make([]*catalog.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.toProduct())
	}
	return products, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var row productRow
	if err := r.db.DB.GetContext(ctx, &row, `SELECT `+productColumns+` FROM products WHERE id = $1`, id); err != nil {
		logDBError(r.logger, logrus.Fields{"product_id": id}, err, "db: failed to get product")
		return nil, mapError("product", err)
	}
	return row.toProduct(), nil
}

func (r *ProductRepository) Create(ctx context.Context, p *catalog.Product) error {
	_, err := r.db.DB.NamedExecContext(ctx, `
		INSERT INTO products (id, category_id, name, slug, description, price, currency, image_urls, stock,
			is_featured, is_active, source_url, created_at, updated_at)
		VALUES (:id, :category_id, :name, :slug, :description, :price, :currency, :image_urls, :stock,
			:is_featured, :is_active, :source_url, :created_at, :updated_at)`, newProductRow(p))
	if err != nil {
		logDBError(r.logger, logrus.Fields{"product_id": p.ID, "slug": p.Slug}, err, "db: failed to create product")
		return mapError("product", err)
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, p *catalog.Product) error {
	res, err := r.db.DB.NamedExecContext(ctx, `
		UPDATE products SET category_id = :category_id, name = :name, slug = :slug, description = :description,
			price = :price, currency = :currency, image_urls = :image_urls, stock = :stock,
			is_featured = :is_featured, is_active = :is_active, updated_at = :updated_at
		WHERE id = :id`, newProductRow(p))
	if err != nil {
		logDBError(r.logger, logrus.Fields{"product_id": p.ID}, err, "db: failed to update product")
		return mapError("product", err)
	}
	return requireAffected("product", res)
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		logDBError(r.logger, logrus.Fields{"product_id": id}, err, "db: failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return requireAffected("product", res)
}

func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.DB.GetContext(ctx, &n, `SELECT COUNT(*) FROM products`); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}

var (
	_ ports.BannerRepository   = (*BannerRepository)(nil)
	_ ports.CategoryRepository = (*CategoryRepository)(nil)
	_ ports.ProductRepository  = (*ProductRepository)(nil)
)
