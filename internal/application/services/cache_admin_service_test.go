package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avatarctic/storefront-admin/internal/application/services"
)

func TestCacheAdmin_StatusDeleteClear(t *testing.T) {
	l := newLoader()
	l.Cache().Set("categories:all", []string{"a"})
	l.Cache().Set("banners:active", []string{"b"})
	svc := services.NewCacheAdminService(l, nil)

	st := svc.Status()
	assert.Equal(t, []string{"banners:active", "categories:all"}, st.Keys)
	assert.Equal(t, 2, st.Stats.Entries)
	assert.Empty(t, st.Loading)

	svc.Delete("banners:active")
	assert.Equal(t, []string{"categories:all"}, svc.Status().Keys)

	svc.Clear()
	assert.Empty(t, svc.Status().Keys)
}
