package ports

import "github.com/avatarctic/storefront-admin/internal/platform/requestcache"

// CacheStatus is the admin view of the in-process request cache.
type CacheStatus struct {
	Stats   requestcache.Stats `json:"stats"`
	Keys    []string           `json:"keys"`
	Loading []string           `json:"loading"`
}

type CacheAdminService interface {
	Status() *CacheStatus
	Clear()
	Delete(key string)
}
