package ports

import (
	"context"

	"github.com/avatarctic/storefront-admin/internal/core/domain/catalog"
	"github.com/avatarctic/storefront-admin/internal/core/domain/wishlist"
	"github.com/google/uuid"
)

// WishlistRepository stores the products a user has saved.
type WishlistRepository interface {
	List(ctx context.Context, userID uuid.UUID) ([]*wishlist.Item, error)
	Add(ctx context.Context, item *wishlist.Item) error
	Remove(ctx context.Context, userID, productID uuid.UUID) error
}

type WishlistService interface {
	List(ctx context.Context, userID uuid.UUID) ([]*catalog.Product, error)
	Add(ctx context.Context, userID, productID uuid.UUID) error
	Remove(ctx context.Context, userID, productID uuid.UUID) error
}
