package ports

import (
	"context"

	"github.com/avatarctic/storefront-admin/internal/core/domain/user"
)

// EmailService sends transactional mail.
type EmailService interface {
	SendWelcomeEmail(ctx context.Context, u *user.User) error
}
