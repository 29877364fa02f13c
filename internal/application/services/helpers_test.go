package services_test

import (
	"time"

	"github.com/avatarctic/storefront-admin/internal/application/services"
	"github.com/avatarctic/storefront-admin/internal/platform/loader"
	"github.com/avatarctic/storefront-admin/internal/platform/requestcache"
)

func newLoader() *services.Loader {
	return loader.NewCoordinator(requestcache.New[any](),
		loader.WithDefaults[any](loader.MinLoadingTime(0), loader.BaseDelay(time.Millisecond)))
}

func ptr[T any](v T) *T { return &v }
