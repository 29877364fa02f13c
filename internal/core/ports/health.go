package ports

import "context"

// HealthChecker probes one dependency (database, redis, backend, content service).
// Check returns nil when the dependency answered within ctx.
type HealthChecker interface {
	Name() string
	Check(ctx context.Context) error
}
