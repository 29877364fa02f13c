package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/storefront-admin/internal/core/domain/user"
	"github.com/avatarctic/storefront-admin/internal/core/ports"
	"github.com/avatarctic/storefront-admin/internal/platform/loader"
)

type UserService struct {
	repo         ports.UserRepository
	emailService ports.EmailService
	loader       *Loader
	logger       *logrus.Logger
}

func NewUserService(repo ports.UserRepository, emailService ports.EmailService, l *Loader, logger *logrus.Logger) *UserService {
	return &UserService{
		repo:         repo,
		emailService: emailService,
		loader:       l,
		logger:       logger,
	}
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]*user.User, int, error) {
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	users, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return users, count, nil
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) CreateUser(ctx context.Context, req *user.CreateUserRequest) (*user.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	// Validate email uniqueness
	existing, err := s.repo.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, fmt.Errorf("email '%s' is already taken: %w", email, ports.ErrConflict)
	}
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = user.RoleCustomer
	}
	now := time.Now().UTC()
	newUser := &user.User{
		ID:        uuid.New(),
		Email:     email,
		FullName:  req.FullName,
		Phone:     req.Phone,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.emailService != nil {
		if err := s.emailService.SendWelcomeEmail(ctx, newUser); err != nil && s.logger != nil {
			s.logger.WithFields(logrus.Fields{"user_id": newUser.ID, "email": newUser.Email}).WithError(err).Warn("failed to send welcome email")
		}
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"user_id": newUser.ID, "role": newUser.Role}).Info("user created")
	}
	return newUser, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, req *user.UpdateUserRequest) (*user.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Apply(u)
	u.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	s.forgetProfile(id)
	return u, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.forgetProfile(id)
	if s.loader != nil {
		s.loader.Invalidate(wishlistKey(id))
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"user_id": id}).Info("user deleted")
	}
	return nil
}

// GetProfile returns the caller's own profile, served from the request cache when fresh.
func (s *UserService) GetProfile(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if s.loader == nil {
		return s.repo.GetByID(ctx, id)
	}
	return load(ctx, s.loader, profileKey(id), func(ctx context.Context) (*user.User, error) {
		return s.repo.GetByID(ctx, id)
	}, loader.CacheTime(ProfileTTL))
}

func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, req *user.UpdateProfileRequest) (*user.User, error) {
	return s.UpdateUser(ctx, id, req.AsUserUpdate())
}

func (s *UserService) forgetProfile(id uuid.UUID) {
	if s.loader != nil {
		s.loader.Invalidate(profileKey(id))
	}
}
