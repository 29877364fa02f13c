package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avatarctic/storefront-admin/internal/application/services"
	"github.com/avatarctic/storefront-admin/internal/core/domain/auth"
	"github.com/avatarctic/storefront-admin/internal/core/domain/user"
	tmocks "github.com/avatarctic/storefront-admin/internal/mocks"
)

const testSecret = "test-secret-with-enough-length-1234"

func signToken(t *testing.T, method jwt.SigningMethod, key interface{}, claims *auth.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func baseClaims(id uuid.UUID) *auth.Claims {
	return &auth.Claims{
		Email: "shopper@example.com",
		Role:  "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func TestAuthenticate_RoleFromAppMetadata(t *testing.T) {
	id := uuid.New()
	claims := baseClaims(id)
	claims.AppMetadata.Role = user.RoleSuperAdmin
	svc := services.NewAuthService(services.AuthConfig{Secret: testSecret}, nil, nil)

	p, err := svc.Authenticate(context.Background(), signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claims))
	require.NoError(t, err)
	assert.Equal(t, id, p.UserID)
	assert.Equal(t, "shopper@example.com", p.Email)
	assert.Equal(t, user.RoleSuperAdmin, p.Role)
}

func TestAuthenticate_RoleFromProfile(t *testing.T) {
	id := uuid.New()
	ur := &tmocks.UserRepositoryMock{GetByIDFn: func(ctx context.Context, got uuid.UUID) (*user.User, error) {
		return &user.User{ID: got, Role: user.RoleSuperAdmin}, nil
	}}
	users := services.NewUserService(ur, nil, newLoader(), nil)
	svc := services.NewAuthService(services.AuthConfig{Secret: testSecret}, users, nil)

	p, err := svc.Authenticate(context.Background(), signToken(t, jwt.SigningMethodHS256, []byte(testSecret), baseClaims(id)))
	require.NoError(t, err)
	assert.Equal(t, user.RoleSuperAdmin, p.Role)
}

func TestAuthenticate_MissingProfileDefaultsToCustomer(t *testing.T) {
	users := services.NewUserService(&tmocks.UserRepositoryMock{}, nil, newLoader(), nil)
	svc := services.NewAuthService(services.AuthConfig{Secret: testSecret}, users, nil)

	p, err := svc.Authenticate(context.Background(), signToken(t, jwt.SigningMethodHS256, []byte(testSecret), baseClaims(uuid.New())))
	require.NoError(t, err)
	assert.Equal(t, user.RoleCustomer, p.Role)
}

func TestAuthenticate_RejectsBadTokens(t *testing.T) {
	svc := services.NewAuthService(services.AuthConfig{Secret: testSecret}, nil, nil)
	id := uuid.New()

	expired := baseClaims(id)
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	noExp := baseClaims(id)
	noExp.ExpiresAt = nil

	badSubject := baseClaims(id)
	badSubject.Subject = "not-a-uuid"

	cases := map[string]string{
		"wrong secret": signToken(t, jwt.SigningMethodHS256, []byte("other-secret"), baseClaims(id)),
		"wrong alg":    signToken(t, jwt.SigningMethodHS512, []byte(testSecret), baseClaims(id)),
		"expired":      signToken(t, jwt.SigningMethodHS256, []byte(testSecret), expired),
		"no expiry":    signToken(t, jwt.SigningMethodHS256, []byte(testSecret), noExp),
		"bad subject":  signToken(t, jwt.SigningMethodHS256, []byte(testSecret), badSubject),
		"garbage":      "not.a.jwt",
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Authenticate(context.Background(), tok)
			require.Error(t, err)
			assert.True(t, errors.Is(err, services.ErrInvalidToken))
		})
	}
}

func TestAuthenticate_Issuer(t *testing.T) {
	svc := services.NewAuthService(services.AuthConfig{Secret: testSecret, Issuer: "https://project.example.co/auth/v1"}, nil, nil)
	claims := baseClaims(uuid.New())
	claims.Issuer = "someone-else"
	_, err := svc.Authenticate(context.Background(), signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claims))
	require.ErrorIs(t, err, services.ErrInvalidToken)
}
