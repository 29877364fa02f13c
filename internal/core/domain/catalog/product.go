package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	CategoryID  *uuid.UUID `json:"category_id" db:"category_id"`
	Name        string     `json:"name" db:"name"`
	Slug        string     `json:"slug" db:"slug"`
	Description string     `json:"description" db:"description"`
	Price       int64      `json:"price" db:"price"` // minor units
	Currency    string     `json:"currency" db:"currency"`
	ImageURLs   []string   `json:"image_urls" db:"-"`
	Stock       int        `json:"stock" db:"stock"`
	IsFeatured  bool       `json:"is_featured" db:"is_featured"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	SourceURL   string     `json:"source_url,omitempty" db:"source_url"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

const DefaultCurrency = "USD"

// CreateProductRequest represents the request to create a product
type CreateProductRequest struct {
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug,omitempty"`
	Description string     `json:"description"`
	Price       int64      `json:"price"`
	Currency    string     `json:"currency,omitempty"`
	ImageURLs   []string   `json:"image_urls"`
	Stock       int        `json:"stock"`
	IsFeatured  bool       `json:"is_featured"`
	IsActive    *bool      `json:"is_active,omitempty"`
	SourceURL   string     `json:"source_url,omitempty"`
}

func (r *CreateProductRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	if r.Slug != "" && !IsValidSlug(r.Slug) {
		return errors.New("slug may contain only lowercase letters, digits and dashes")
	}
	if r.Price < 0 {
		return errors.New("price must not be negative")
	}
	if r.Stock < 0 {
		return errors.New("stock must not be negative")
	}
	if r.Currency != "" && len(r.Currency) != 3 {
		return fmt.Errorf("currency %q is not a 3-letter code", r.Currency)
	}
	return nil
}

// UpdateProductRequest represents the request to update a product
type UpdateProductRequest struct {
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	Name        *string    `json:"name,omitempty"`
	Slug        *string    `json:"slug,omitempty"`
	Description *string    `json:"description,omitempty"`
	Price       *int64     `json:"price,omitempty"`
	Currency    *string    `json:"currency,omitempty"`
	ImageURLs   *[]string  `json:"image_urls,omitempty"`
	Stock       *int       `json:"stock,omitempty"`
	IsFeatured  *bool      `json:"is_featured,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
}

func (r *UpdateProductRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return errors.New("name must not be empty")
	}
	if r.Slug != nil && !IsValidSlug(*r.Slug) {
		return errors.New("slug may contain only lowercase letters, digits and dashes")
	}
	if r.Price != nil && *r.Price < 0 {
		return errors.New("price must not be negative")
	}
	if r.Stock != nil && *r.Stock < 0 {
		return errors.New("stock must not be negative")
	}
	if r.Currency != nil && len(*r.Currency) != 3 {
		return fmt.Errorf("currency %q is not a 3-letter code", *r.Currency)
	}
	return nil
}

// Apply copies the non-nil fields onto p.
func (r *UpdateProductRequest) Apply(p *Product) {
	if r.CategoryID != nil {
		p.CategoryID = r.CategoryID
	}
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Slug != nil {
		p.Slug = *r.Slug
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.Currency != nil {
		p.Currency = strings.ToUpper(*r.Currency)
	}
	if r.ImageURLs != nil {
		p.ImageURLs = *r.ImageURLs
	}
	if r.Stock != nil {
		p.Stock = *r.Stock
	}
	if r.IsFeatured != nil {
		p.IsFeatured = *r.IsFeatured
	}
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}
}

// ProductFilter narrows a product listing. Zero values mean "no constraint".
type ProductFilter struct {
	CategoryID *uuid.UUID
	Featured   *bool
	Search     string
	ActiveOnly bool
	Limit      int
	Offset     int
}

// CacheKey renders the filter as a stable cache key suffix.
func (f ProductFilter) CacheKey() string {
	cat := "*"
	if f.CategoryID != nil {
		cat = f.CategoryID.String()
	}
	feat := "*"
	if f.Featured != nil {
		feat = fmt.Sprintf("%t", *f.Featured)
	}
	return fmt.Sprintf("cat=%s|featured=%s|q=%s|active=%t|limit=%d|offset=%d",
		cat, feat, strings.ToLower(strings.TrimSpace(f.Search)), f.ActiveOnly, f.Limit, f.Offset)
}
