package repositories

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/avatarctic/storefront-admin/internal/core/domain/catalog"
	"github.com/avatarctic/storefront-admin/internal/core/ports"
)

func TestMapError(t *testing.T) {
	assert.ErrorIs(t, mapError("product", sql.ErrNoRows), ports.ErrNotFound)
	assert.ErrorIs(t, mapError("category", &pq.Error{Code: uniqueViolation, Constraint: "categories_slug_key"}), ports.ErrConflict)

	other := errors.New("connection reset")
	assert.Equal(t, other, mapError("banner", other))
}

func TestProductWhere(t *testing.T) {
	where, args := productWhere(catalog.ProductFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	cat := uuid.New()
	featured := true
	where, args = productWhere(catalog.ProductFilter{CategoryID: &cat, Featured: &featured, ActiveOnly: true, Search: " oak "})
	assert.Equal(t, " WHERE category_id = $1 AND is_featured = $2 AND is_active AND name ILIKE $3", where)
	assert.Equal(t, []interface{}{cat, true, "%oak%"}, args)
}

func TestProductRow_RoundTripsImages(t *testing.T) {
	row := newProductRow(&catalog.Product{Name: "Lamp", ImageURLs: []string{"a.jpg", "b.jpg"}})
	assert.Equal(t, pq.StringArray{"a.jpg", "b.jpg"}, row.ImageURLs)

	p := productRow{}.toProduct()
	assert.NotNil(t, p.ImageURLs)
}
