package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/bienestar-app/platform/internal/auth"
	"github.com/bienestar-app/platform/internal/config"
	"github.com/bienestar-app/platform/internal/domain"
	"github.com/bienestar-app/platform/internal/repository"
)

// Login failure is deliberately opaque: a missing account, a wrong
// password, and a blocked account all surface as ErrInvalidCredentials.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Registration failure reasons. Handlers may surface these generically.
var (
	ErrDuplicateUsername = errors.New("username already taken")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrMissingField      = errors.New("missing required field")
)

// RegisterInput is the profile submitted at registration.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// IdentityService owns credential minting and account administration. It is
// the only place in the platform where credentials are issued; every other
// service verifies them locally with the shared secret.
type IdentityService struct {
	users      repository.UserRepository
	roles      repository.RoleRepository
	codec      *auth.TokenCodec
	bcryptCost int
	logger     *zap.Logger
}

// NewIdentityService builds the service.
func NewIdentityService(cfg config.AuthConfig, users repository.UserRepository, roles repository.RoleRepository, logger *zap.Logger) *IdentityService {
	return &IdentityService{
		users:      users,
		roles:      roles,
		codec:      auth.NewTokenCodec(cfg.SharedSecret, cfg.TokenTTL()),
		bcryptCost: cfg.BcryptCost,
		logger:     logger,
	}
}

// Login authenticates by email and mints a credential whose subject is the
// account's numeric id. Once issued, the credential stays valid for its
// full TTL regardless of later role changes or blocking.
func (s *IdentityService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Debug("login for unknown email")
			return nil, "", time.Time{}, ErrInvalidCredentials
		}
		return nil, "", time.Time{}, err
	}
	if user.Blocked {
		s.logger.Debug("login for blocked account", zap.Int64("user_id", user.ID))
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		s.logger.Debug("login with wrong password", zap.Int64("user_id", user.ID))
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.codec.Issue(user.ID, user.Role, user.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, expiresAt, nil
}

// Register creates an account with the default non-privileged role.
func (s *IdentityService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, ErrMissingField
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := s.users.GetByUsername(ctx, input.Username); err == nil {
		return nil, ErrDuplicateUsername
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleClient,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// AssignRole moves a user onto another role. Already-issued credentials
// keep carrying the old role name until they expire.
func (s *IdentityService) AssignRole(ctx context.Context, userID int64, roleName domain.RoleName) (*domain.User, error) {
	role, err := s.roles.GetByName(ctx, roleName)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Role = role.Name
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetBlocked blocks or unblocks an account. Blocking only prevents future
// logins; outstanding credentials remain valid until expiry.
func (s *IdentityService) SetBlocked(ctx context.Context, userID int64, blocked bool) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Blocked = blocked
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser loads one account.
func (s *IdentityService) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// ListUsers returns all accounts.
func (s *IdentityService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

// UserExists answers the peer-facing existence check.
func (s *IdentityService) UserExists(ctx context.Context, userID int64) (bool, error) {
	return s.users.Exists(ctx, userID)
}

// TokenCodec exposes the codec for middleware wiring.
func (s *IdentityService) TokenCodec() *auth.TokenCodec {
	return s.codec
}
