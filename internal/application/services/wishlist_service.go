package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/storefront-admin/internal/core/domain/catalog"
	"github.com/avatarctic/storefront-admin/internal/core/domain/wishlist"
	"github.com/avatarctic/storefront-admin/internal/core/ports"
	"github.com/avatarctic/storefront-admin/internal/platform/loader"
)

type WishlistService struct {
	repo     ports.WishlistRepository
	products ports.ProductRepository
	loader   *Loader
	logger   *logrus.Logger
}

func NewWishlistService(repo ports.WishlistRepository, products ports.ProductRepository, l *Loader, logger *logrus.Logger) *WishlistService {
	return &WishlistService{repo: repo, products: products, loader: l, logger: logger}
}

// List returns the saved products, newest first. Products that were deleted
// or deactivated since they were saved are skipped.
func (s *WishlistService) List(ctx context.Context, userID uuid.UUID) ([]*catalog.Product, error) {
	return load(ctx, s.loader, wishlistKey(userID), func(ctx context.Context) ([]*catalog.Product, error) {
		items, err := s.repo.List(ctx, userID)
		if err != nil {
			return nil, err
		}
		out := make([]*catalog.Product, 0, len(items))
		for _, it := range items {
			p, err := s.products.GetByID(ctx, it.ProductID)
			if errors.Is(err, ports.ErrNotFound) {
				continue
			}
			if err != nil {
				return nil, err
			}
			if p.IsActive {
				out = append(out, p)
			}
		}
		return out, nil
	}, loader.CacheTime(ProfileTTL))
}

func (s *WishlistService) Add(ctx context.Context, userID, productID uuid.UUID) error {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return fmt.Errorf("product %s does not exist: %w", productID, ports.ErrNotFound)
		}
		return err
	}
	if !p.IsActive {
		return fmt.Errorf("product %s is not available: %w", productID, ports.ErrInvalidInput)
	}
	item := &wishlist.Item{UserID: userID, ProductID: productID, CreatedAt: time.Now().UTC()}
	if err := s.repo.Add(ctx, item); err != nil && !errors.Is(err, ports.ErrConflict) {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"user_id": userID, "product_id": productID}).WithError(err).Error("failed to add wishlist item")
		}
		return fmt.Errorf("failed to add to wishlist: %w", err)
	}
	s.loader.Invalidate(wishlistKey(userID))
	return nil
}

func (s *WishlistService) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	if err := s.repo.Remove(ctx, userID, productID); err != nil {
		return fmt.Errorf("failed to remove from wishlist: %w", err)
	}
	s.loader.Invalidate(wishlistKey(userID))
	return nil
}
