package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/storefront-admin/internal/core/domain/user"
	"github.com/avatarctic/storefront-admin/internal/core/ports"
	"github.com/avatarctic/storefront-admin/internal/infrastructure/db"
)

// UserRepository implements the user repository interface over the profiles table
type UserRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(database *db.Database, logger *logrus.Logger) *UserRepository {
	return &UserRepository{
		db:     database,
		logger: logger,
	}
}

const userColumns = `id, email, COALESCE(full_name, '') AS full_name, COALESCE(avatar_url, '') AS avatar_url,
	COALESCE(phone, '') AS phone, role, created_at, updated_at`

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.DB.NamedExecContext(ctx, `
		INSERT INTO profiles (id, email, full_name, avatar_url, phone, role, created_at, updated_at)
		VALUES (:id, :email, :full_name, :avatar_url, :phone, :role, :created_at, :updated_at)`, u)
	if err != nil {
		logDBError(r.logger, logrus.Fields{"user_id": u.ID, "email": u.Email}, err, "db: failed to create user")
		return mapError("user", err)
	}
	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"user_id": u.ID, "email": u.Email}).Debug("db: user created")
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var u user.User
	if err := r.db.DB.GetContext(ctx, &u, `SELECT `+userColumns+` FROM profiles WHERE id = $1`, id); err != nil {
		logDBError(r.logger, logrus.Fields{"user_id": id}, err, "db: failed to get user by ID")
		return nil, mapError("user", err)
	}
	return &u, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User
	err := r.db.DB.GetContext(ctx, &u, `SELECT `+userColumns+` FROM profiles WHERE lower(email) = $1`, strings.ToLower(email))
	if err != nil {
		logDBError(r.logger, logrus.Fields{"email": email}, err, "db: failed to get user by email")
		return nil, mapError("user", err)
	}
	return &u, nil
}

// Update updates an existing user
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	res, err := r.db.DB.NamedExecContext(ctx, `
		UPDATE profiles SET full_name = :full_name, avatar_url = :avatar_url, phone = :phone, role = :role,
			updated_at = :updated_at
		WHERE id = :id`, u)
	if err != nil {
		logDBError(r.logger, logrus.Fields{"user_id": u.ID}, err, "db: failed to update user")
		return mapError("user", err)
	}
	return requireAffected("user", res)
}

// Delete deletes a user by ID
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.DB.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		logDBError(r.logger, logrus.Fields{"user_id": id}, err, "db: failed to delete user")
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return requireAffected("user", res)
}

// List retrieves users with pagination, newest first
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*user.User, error) {
	users := []*user.User{}
	query := `SELECT ` + userColumns + ` FROM profiles ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	if err := r.db.DB.SelectContext(ctx, &users, query, limit, offset); err != nil {
		logDBError(r.logger, logrus.Fields{"limit": limit, "offset": offset}, err, "db: failed to list users")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Count returns the total number of users
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.DB.GetContext(ctx, &count, `SELECT COUNT(*) FROM profiles`); err != nil {
		logDBError(r.logger, nil, err, "db: failed to count users")
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

var _ ports.UserRepository = (*UserRepository)(nil)
