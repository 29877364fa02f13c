package ports

import (
	"context"

	"github.com/avatarctic/storefront-admin/internal/core/domain/auth"
)

// AuthService verifies access tokens issued by the backend auth service.
type AuthService interface {
	Authenticate(ctx context.Context, token string) (*auth.Principal, error)
}
