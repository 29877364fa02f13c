package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/storefront-admin/internal/core/domain/auth"
	"github.com/avatarctic/storefront-admin/internal/core/domain/user"
	"github.com/avatarctic/storefront-admin/internal/core/ports"
)

// ErrInvalidToken is returned for any token that fails verification.
var ErrInvalidToken = errors.New("invalid token")

type profileLookup interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// AuthService verifies access tokens issued by the backend auth service.
type AuthService struct {
	secret   []byte
	issuer   string
	audience string
	profiles profileLookup
	logger   *logrus.Logger
}

type AuthConfig struct {
	Secret   string
	Issuer   string
	Audience string
}

func NewAuthService(cfg AuthConfig, profiles profileLookup, logger *logrus.Logger) *AuthService {
	return &AuthService{secret: []byte(cfg.Secret), issuer: cfg.Issuer, audience: cfg.Audience, profiles: profiles, logger: logger}
}

func (s *AuthService) parse(tokenString string) (*auth.Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired()}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	if s.audience != "" {
		opts = append(opts, jwt.WithAudience(s.audience))
	}
	token, err := jwt.ParseWithClaims(tokenString, &auth.Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is HMAC (prevent alg confusion)
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Authenticate verifies token and resolves the caller. The role comes from the
// token's app_metadata when present, otherwise from the caller's profile.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*auth.Principal, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, err
	}
	id, err := claims.UserID()
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	p := &auth.Principal{UserID: id, Email: claims.Email, Role: claims.UserRole()}
	if claims.AppMetadata.Role.IsValid() || s.profiles == nil {
		return p, nil
	}

	u, err := s.profiles.GetProfile(ctx, id)
	switch {
	case err == nil:
		if u.Role.IsValid() {
			p.Role = u.Role
		}
	case errors.Is(err, ports.ErrNotFound):
		// no profile row yet; keep the customer default
	default:
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"user_id": id}).WithError(err).Warn("auth: failed to resolve role from profile")
		}
		return nil, err
	}
	return p, nil
}
