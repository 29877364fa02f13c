package health

import (
	"context"

	"github.com/go-redis/redis/v8"

	"github.com/avatarctic/storefront-admin/internal/core/ports"
	"github.com/avatarctic/storefront-admin/internal/infrastructure/backend"
	infraDB "github.com/avatarctic/storefront-admin/internal/infrastructure/db"
)

// pingChecker adapts anything with a context-aware Ping to a HealthChecker.
type pingChecker struct {
	name string
	ping func(ctx context.Context) error
}

func (p *pingChecker) Name() string                    { return p.name }
func (p *pingChecker) Check(ctx context.Context) error { return p.ping(ctx) }

// NewDBHealthChecker creates a health checker for the database.
func NewDBHealthChecker(db *infraDB.Database) ports.HealthChecker {
	return &pingChecker{name: "database", ping: db.Ping}
}

// NewRedisHealthChecker creates a health checker for Redis.
func NewRedisHealthChecker(client *redis.Client) ports.HealthChecker {
	return &pingChecker{name: "redis", ping: func(ctx context.Context) error { return client.Ping(ctx).Err() }}
}

// NewBackendHealthChecker probes the hosted REST backend.
func NewBackendHealthChecker(client *backend.Client) ports.HealthChecker {
	return &pingChecker{name: "backend", ping: client.Ping}
}

// NewCheckerFunc wraps an arbitrary probe.
func NewCheckerFunc(name string, check func(ctx context.Context) error) ports.HealthChecker {
	return &pingChecker{name: name, ping: check}
}
