package services

import (
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/storefront-admin/internal/core/ports"
)

// CacheAdminService exposes the request cache to superadmins.
type CacheAdminService struct {
	loader *Loader
	logger *logrus.Logger
}

func NewCacheAdminService(l *Loader, logger *logrus.Logger) *CacheAdminService {
	return &CacheAdminService{loader: l, logger: logger}
}

func (s *CacheAdminService) Status() *ports.CacheStatus {
	c := s.loader.Cache()
	return &ports.CacheStatus{
		Stats:   c.Stats(),
		Keys:    c.Keys(),
		Loading: s.loader.LoadingKeys(),
	}
}

func (s *CacheAdminService) Clear() {
	n := s.loader.Cache().Len()
	s.loader.Clear()
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"entries": n}).Info("request cache cleared")
	}
}

// Delete drops key and detaches any flight for it.
func (s *CacheAdminService) Delete(key string) {
	s.loader.Invalidate(key)
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"key": key}).Info("request cache key deleted")
	}
}
