package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bienestar-app/platform/internal/config"
	"github.com/bienestar-app/platform/internal/domain"
)

func newTestIdentityService(users *fakeUserRepo) *IdentityService {
	cfg := config.AuthConfig{
		SharedSecret:  "identity-test-secret",
		TokenTTLHours: 1,
		BcryptCost:    4, // minimum cost keeps the suite fast
	}
	return NewIdentityService(cfg, users, fakeRoleRepo{}, zap.NewNop())
}

func TestRegisterAssignsDefaultRole(t *testing.T) {
	svc := newTestIdentityService(newFakeUserRepo())

	user, err := svc.Register(context.Background(), RegisterInput{
		Username: "ana",
		Email:    "Ana@Example.com",
		Password: "secreta123",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.RoleClient, user.Role)
	assert.Equal(t, "ana@example.com", user.Email, "email is canonicalized to lower case")
	assert.NotEqual(t, "secreta123", user.PasswordHash, "password is never stored in plaintext")
	assert.False(t, user.Blocked)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestIdentityService(users)

	_, err := svc.Register(context.Background(), RegisterInput{Username: "ana", Email: "ana@example.com", Password: "x12345"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterInput{Username: "ana", Email: "otra@example.com", Password: "x12345"})
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	_, err = svc.Register(context.Background(), RegisterInput{Username: "otra", Email: "ANA@example.com", Password: "x12345"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	_, err = svc.Register(context.Background(), RegisterInput{Username: "", Email: "a@b.c", Password: "x"})
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestLoginIssuesCredentialWithNumericSubject(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestIdentityService(users)

	registered, err := svc.Register(context.Background(), RegisterInput{Username: "ana", Email: "ana@example.com", Password: "secreta123"})
	require.NoError(t, err)

	user, token, expiresAt, err := svc.Login(context.Background(), "ana@example.com", "secreta123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.TokenCodec().Verify(token)
	require.NoError(t, err)
	subject, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, registered.ID, subject)
	assert.Equal(t, domain.RoleClient, claims.Role)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestIdentityService(users)

	registered, err := svc.Register(context.Background(), RegisterInput{Username: "ana", Email: "ana@example.com", Password: "secreta123"})
	require.NoError(t, err)
	_, err = svc.SetBlocked(context.Background(), registered.ID, true)
	require.NoError(t, err)

	cases := map[string]struct{ email, password string }{
		"unknown email":   {"nadie@example.com", "secreta123"},
		"wrong password":  {"ana@example.com", "incorrecta"},
		"blocked account": {"ana@example.com", "secreta123"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, _, err := svc.Login(context.Background(), tc.email, tc.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestRoleChangeDoesNotInvalidateIssuedCredential(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestIdentityService(users)

	registered, err := svc.Register(context.Background(), RegisterInput{Username: "ana", Email: "ana@example.com", Password: "secreta123"})
	require.NoError(t, err)

	_, token, _, err := svc.Login(context.Background(), "ana@example.com", "secreta123")
	require.NoError(t, err)

	_, err = svc.AssignRole(context.Background(), registered.ID, domain.RoleAdministrator)
	require.NoError(t, err)

	// The credential keeps its original role until expiry.
	claims, err := svc.TokenCodec().Verify(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleClient, claims.Role)

	// Blocking does not retroactively invalidate either.
	_, err = svc.SetBlocked(context.Background(), registered.ID, true)
	require.NoError(t, err)
	_, err = svc.TokenCodec().Verify(token)
	assert.NoError(t, err)
}

func TestUserExists(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestIdentityService(users)

	registered, err := svc.Register(context.Background(), RegisterInput{Username: "ana", Email: "ana@example.com", Password: "secreta123"})
	require.NoError(t, err)

	exists, err := svc.UserExists(context.Background(), registered.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = svc.UserExists(context.Background(), registered.ID+100)
	require.NoError(t, err)
	assert.False(t, exists)
}
