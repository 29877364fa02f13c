package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/storefront-admin/internal/core/domain/wishlist"
	"github.com/avatarctic/storefront-admin/internal/core/ports"
	"github.com/avatarctic/storefront-admin/internal/infrastructure/db"
)

// WishlistRepository implements ports.WishlistRepository on Postgres.
type WishlistRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

func NewWishlistRepository(database *db.Database, logger *logrus.Logger) *WishlistRepository {
	return &WishlistRepository{db: database, logger: logger}
}

func (r *WishlistRepository) List(ctx context.Context, userID uuid.UUID) ([]*wishlist.Item, error) {
	items := []*wishlist.Item{}
	err := r.db.DB.SelectContext(ctx, &items,
		`SELECT user_id, product_id, created_at FROM wishlists WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		logDBError(r.logger, logrus.Fields{"user_id": userID}, err, "db: failed to list wishlist")
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}
	return items, nil
}

// Add saves a product; saving it again is a no-op.
func (r *WishlistRepository) Add(ctx context.Context, item *wishlist.Item) error {
	_, err := r.db.DB.NamedExecContext(ctx, `
		INSERT INTO wishlists (user_id, product_id, created_at)
		VALUES (:user_id, :product_id, :created_at)
		ON CONFLICT (user_id, product_id) DO NOTHING`, item)
	if err != nil {
		logDBError(r.logger, logrus.Fields{"user_id": item.UserID, "product_id": item.ProductID}, err, "db: failed to add wishlist item")
		return mapError("wishlist item", err)
	}
	return nil
}

func (r *WishlistRepository) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	_, err := r.db.DB.ExecContext(ctx, `DELETE FROM wishlists WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		logDBError(r.logger, logrus.Fields{"user_id": userID, "product_id": productID}, err, "db: failed to remove wishlist item")
		return fmt.Errorf("failed to remove wishlist item: %w", err)
	}
	return nil
}

var _ ports.WishlistRepository = (*WishlistRepository)(nil)
