package ports

import (
	"context"

	"github.com/avatarctic/storefront-admin/internal/core/domain/user"
	"github.com/google/uuid"
)

// UserRepository defines the data operations for user profiles
type UserRepository interface {
	List(ctx context.Context, limit, offset int) ([]*user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	Create(ctx context.Context, u *user.User) error
	Update(ctx context.Context, u *user.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}

// UserService covers superadmin user management and self-service profiles.
type UserService interface {
	ListUsers(ctx context.Context, limit, offset int) ([]*user.User, int, error)
	GetUser(ctx context.Context, id uuid.UUID) (*user.User, error)
	CreateUser(ctx context.Context, req *user.CreateUserRequest) (*user.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req *user.UpdateUserRequest) (*user.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error

	GetProfile(ctx context.Context, id uuid.UUID) (*user.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req *user.UpdateProfileRequest) (*user.User, error)
}
