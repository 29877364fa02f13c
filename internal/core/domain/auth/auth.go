package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/avatarctic/storefront-admin/internal/core/domain/user"
)

// AppMetadata is the server-controlled metadata block the auth service embeds in tokens.
type AppMetadata struct {
	Role user.UserRole `json:"role,omitempty"`
}

// Claims are the access token claims issued by the backend auth service.
type Claims struct {
	Email       string      `json:"email"`
	Role        string      `json:"role"` // database role, e.g. "authenticated"
	AppMetadata AppMetadata `json:"app_metadata"`
	SessionID   string      `json:"session_id,omitempty"`

	jwt.RegisteredClaims
}

// UserID parses the subject claim.
func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// UserRole is the application role; tokens without one are customers.
func (c *Claims) UserRole() user.UserRole {
	if c.AppMetadata.Role.IsValid() {
		return c.AppMetadata.Role
	}
	return user.RoleCustomer
}

// Principal is the authenticated caller resolved from a token.
type Principal struct {
	UserID uuid.UUID     `json:"user_id"`
	Email  string        `json:"email"`
	Role   user.UserRole `json:"role"`
}
