package user

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	FullName  string    `json:"full_name" db:"full_name"`
	AvatarURL string    `json:"avatar_url" db:"avatar_url"`
	Phone     string    `json:"phone" db:"phone"`
	Role      UserRole  `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type UserRole string

const (
	RoleSuperAdmin UserRole = "superadmin"
	RoleCustomer   UserRole = "customer"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleCustomer:
		return true
	default:
		return false
	}
}

// CreateUserRequest represents the request to create a new user
type CreateUserRequest struct {
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	Phone    string   `json:"phone,omitempty"`
	Role     UserRole `json:"role"`
}

func (r *CreateUserRequest) Validate() error {
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return errors.New("a valid email is required")
	}
	if strings.TrimSpace(r.FullName) == "" {
		return errors.New("full_name is required")
	}
	if r.Role != "" && !r.Role.IsValid() {
		return errors.New("invalid role")
	}
	return nil
}

// UpdateUserRequest represents the request to update a user
type UpdateUserRequest struct {
	FullName  *string   `json:"full_name,omitempty"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Role      *UserRole `json:"role,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	if r.FullName != nil && strings.TrimSpace(*r.FullName) == "" {
		return errors.New("full_name must not be empty")
	}
	if r.Role != nil && !r.Role.IsValid() {
		return errors.New("invalid role")
	}
	return nil
}

func (r *UpdateUserRequest) Apply(u *User) {
	if r.FullName != nil {
		u.FullName = *r.FullName
	}
	if r.AvatarURL != nil {
		u.AvatarURL = *r.AvatarURL
	}
	if r.Phone != nil {
		u.Phone = *r.Phone
	}
	if r.Role != nil {
		u.Role = *r.Role
	}
}

// UpdateProfileRequest is the self-service subset of UpdateUserRequest; the role
// cannot be changed through it.
type UpdateProfileRequest struct {
	FullName  *string `json:"full_name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	if r.FullName != nil && strings.TrimSpace(*r.FullName) == "" {
		return errors.New("full_name must not be empty")
	}
	return nil
}

func (r *UpdateProfileRequest) AsUserUpdate() *UpdateUserRequest {
	return &UpdateUserRequest{FullName: r.FullName, AvatarURL: r.AvatarURL, Phone: r.Phone}
}
