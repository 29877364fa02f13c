package repositories

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avatarctic/storefront-admin/internal/core/domain/catalog"
	"github.com/avatarctic/storefront-admin/internal/core/ports"
	tmocks "github.com/avatarctic/storefront-admin/internal/mocks"
)

func TestCachingBannerRepository_ListIsCachedUntilWrite(t *testing.T) {
	var calls int32
	inner := &tmocks.BannerRepositoryMock{ListFn: func(ctx context.Context, activeOnly bool) ([]*catalog.Banner, error) {
		atomic.AddInt32(&calls, 1)
		return []*catalog.Banner{{ID: uuid.New(), Title: "Sale", IsActive: true}}, nil
	}}
	cache := tmocks.NewCacheMock()
	repo := NewCachingBannerRepository(inner, cache, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := repo.List(ctx, true)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Sale", got[0].Title)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	require.NoError(t, repo.Create(ctx, &catalog.Banner{ID: uuid.New()}))
	_, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestCachingCategoryRepository_SlugKeyFollowsRename(t *testing.T) {
	id := uuid.New()
	current := &catalog.Category{ID: id, Name: "Toys", Slug: "toys"}
	inner := &tmocks.CategoryRepositoryMock{
		GetByIDFn: func(ctx context.Context, got uuid.UUID) (*catalog.Category, error) {
			cp := *current
			return &cp, nil
		},
		GetBySlugFn: func(ctx context.Context, slug string) (*catalog.Category, error) {
			if slug == current.Slug {
				cp := *current
				return &cp, nil
			}
			return nil, ports.ErrNotFound
		},
		UpdateFn: func(ctx context.Context, c *catalog.Category) error {
			current = c
			return nil
		},
	}
	cache := tmocks.NewCacheMock()
	repo := NewCachingCategoryRepository(inner, cache, time.Minute)
	ctx := context.Background()

	_, err := repo.GetBySlug(ctx, "toys")
	require.NoError(t, err)

	require.NoError(t, repo.Update(ctx, &catalog.Category{ID: id, Name: "Games", Slug: "games"}))
	_, err = repo.GetBySlug(ctx, "toys")
	require.ErrorIs(t, err, ports.ErrNotFound)
	got, err := repo.GetBySlug(ctx, "games")
	require.NoError(t, err)
	assert.Equal(t, "Games", got.Name)
}

func TestCachingProductRepository_ErrorsAreNotCached(t *testing.T) {
	var calls int32
	inner := &tmocks.ProductRepositoryMock{GetByIDFn: func(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return nil, errors.New("timeout")
		}
		return &catalog.Product{ID: id, Name: "Mug"}, nil
	}}
	repo := NewCachingProductRepository(inner, tmocks.NewCacheMock(), time.Minute)
	id := uuid.New()

	_, err := repo.GetByID(context.Background(), id)
	require.Error(t, err)
	p, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Mug", p.Name)
	_, err = repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestCachingRepositories_DegradeWhenCacheFails(t *testing.T) {
	cache := tmocks.NewCacheMock()
	cache.Err = errors.New("redis down")
	inner := &tmocks.ProductRepositoryMock{CountFn: func(ctx context.Context) (int, error) { return 5, nil }}
	n, err := NewCachingProductRepository(inner, cache, time.Minute).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}
