package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/avatarctic/storefront-admin/internal/core/domain/user"
	"github.com/avatarctic/storefront-admin/internal/core/domain/wishlist"
	"github.com/avatarctic/storefront-admin/internal/core/ports"
)

const (
	tableProfiles  = "profiles"
	tableWishlists = "wishlists"
)

// UserRepository stores users in the profiles table kept in sync with the auth service.
type UserRepository struct{ c *Client }

func NewUserRepository(c *Client) *UserRepository { return &UserRepository{c: c} }

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*user.User, error) {
	q := url.Values{"order": {"created_at.desc"}}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	out := []*user.User{}
	return out, r.c.list(ctx, tableProfiles, q, &out)
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return one[user.User](ctx, r.c, tableProfiles, url.Values{"id": {eq(id)}})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return one[user.User](ctx, r.c, tableProfiles, url.Values{"email": {eq(strings.ToLower(email))}})
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	return r.c.insert(ctx, tableProfiles, u)
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	return r.c.update(ctx, tableProfiles, url.Values{"id": {eq(u.ID)}}, u)
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.c.remove(ctx, tableProfiles, url.Values{"id": {eq(id)}})
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	return r.c.count(ctx, tableProfiles, nil)
}

type WishlistRepository struct{ c *Client }

func NewWishlistRepository(c *Client) *WishlistRepository { return &WishlistRepository{c: c} }

func (r *WishlistRepository) List(ctx context.Context, userID uuid.UUID) ([]*wishlist.Item, error) {
	out := []*wishlist.Item{}
	q := url.Values{"user_id": {eq(userID)}, "order": {"created_at.desc"}}
	return out, r.c.list(ctx, tableWishlists, q, &out)
}

// Add is idempotent: saving a product twice keeps the first row.
func (r *WishlistRepository) Add(ctx context.Context, item *wishlist.Item) error {
	q := url.Values{"on_conflict": {"user_id,product_id"}}
	_, _, err := r.c.do(ctx, http.MethodPost, tableWishlists, q, item, "resolution=ignore-duplicates,return=minimal")
	return err
}

func (r *WishlistRepository) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	err := r.c.remove(ctx, tableWishlists, url.Values{"user_id": {eq(userID)}, "product_id": {eq(productID)}})
	if err != nil && !isNotFound(err) {
		return err
	}
	return nil
}

var (
	_ ports.UserRepository     = (*UserRepository)(nil)
	_ ports.WishlistRepository = (*WishlistRepository)(nil)
)
