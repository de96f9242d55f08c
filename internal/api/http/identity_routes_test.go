package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bienestar-app/platform/internal/api/http/handlers"
	"github.com/bienestar-app/platform/internal/auth"
	"github.com/bienestar-app/platform/internal/config"
	"github.com/bienestar-app/platform/internal/domain"
	"github.com/bienestar-app/platform/internal/observability"
	"github.com/bienestar-app/platform/internal/persistence"
	"github.com/bienestar-app/platform/internal/service"
)

const e2eSecret = "routes-e2e-secret"

func newIdentityApp(t *testing.T) (*fiber.App, *service.IdentityService) {
	t.Helper()

	cfg := config.AuthConfig{
		SharedSecret:  e2eSecret,
		TokenTTLHours: 1,
		BcryptCost:    4,
		DenyStatus:    http.StatusUnauthorized,
	}
	identityService := service.NewIdentityService(cfg, newMemUserRepo(), memRoleRepo{}, zap.NewNop())

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	RegisterIdentityRoutes(app, IdentityRouteConfig{
		Health:   handlers.NewHealthHandler("identity-test", "test", &persistence.Postgres{}, nil, observability.NewMetrics()),
		Identity: handlers.NewIdentityHandler(identityService),
		Users:    handlers.NewUsersHandler(identityService),
		Verifier: auth.NewVerifier(identityService.TokenCodec(), zap.NewNop()),
		Enforcer: auth.NewEnforcer(cfg.DenyStatus),
	})
	return app, identityService
}

func TestLoginFlowEndToEnd(t *testing.T) {
	app, _ := newIdentityApp(t)

	// Register is public: no credential attached, yet it succeeds.
	resp := postJSON(t, app, "/auth/register", map[string]string{
		"username": "ana", "email": "ana@example.com", "password": "secreta123",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var registered struct {
		Data struct {
			ID   int64           `json:"id"`
			Role domain.RoleName `json:"role"`
		} `json:"data"`
	}
	decodeJSON(t, resp, &registered)
	assert.Equal(t, domain.RoleClient, registered.Data.Role)

	resp = postJSON(t, app, "/auth/login", map[string]string{
		"email": "ana@example.com", "password": "secreta123",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var loggedIn struct {
		Data struct {
			Auth struct {
				Token string `json:"token"`
			} `json:"auth"`
		} `json:"data"`
	}
	decodeJSON(t, resp, &loggedIn)
	token := loggedIn.Data.Auth.Token
	require.NotEmpty(t, token)

	// The peer-facing validation endpoint answers with the claims.
	resp = getWithToken(t, app, "/auth/validate", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var validated struct {
		UserID int64           `json:"user_id"`
		Role   domain.RoleName `json:"role"`
	}
	decodeJSON(t, resp, &validated)
	assert.Equal(t, registered.Data.ID, validated.UserID)
	assert.Equal(t, domain.RoleClient, validated.Role)

	// A CLIENTE credential cannot reach the admin-only listing.
	resp = getWithToken(t, app, "/users", token)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// The same credential reads its own account via the ownership rule.
	resp = getWithToken(t, app, fmt.Sprintf("/users/%d", registered.Data.ID), token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// But not someone else's.
	resp = getWithToken(t, app, fmt.Sprintf("/users/%d", registered.Data.ID+1), token)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestExpiredCredentialDeniedLikeMissing(t *testing.T) {
	app, _ := newIdentityApp(t)

	// A credential minted with a one-second TTL, then outlived.
	shortCodec := auth.NewTokenCodec(e2eSecret, time.Second)
	token, _, err := shortCodec.Issue(1, domain.RoleClient, "")
	require.NoError(t, err)
	time.Sleep(1100 * time.Millisecond)

	withExpired := getWithToken(t, app, "/auth/validate", token)
	missing := getWithToken(t, app, "/auth/validate", "")

	assert.Equal(t, missing.StatusCode, withExpired.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, withExpired.StatusCode)
}

func TestLoginDoesNotLeakFailureReason(t *testing.T) {
	app, svc := newIdentityApp(t)

	_, err := svc.Register(context.Background(), service.RegisterInput{
		Username: "ana", Email: "ana@example.com", Password: "secreta123",
	})
	require.NoError(t, err)

	unknown := postJSON(t, app, "/auth/login", map[string]string{
		"email": "nadie@example.com", "password": "secreta123",
	}, "")
	wrongPassword := postJSON(t, app, "/auth/login", map[string]string{
		"email": "ana@example.com", "password": "incorrecta",
	}, "")

	assert.Equal(t, unknown.StatusCode, wrongPassword.StatusCode)
	unknownBody := readBody(t, unknown)
	wrongBody := readBody(t, wrongPassword)
	assert.Equal(t, unknownBody, wrongBody, "account-not-found and wrong-password must be indistinguishable")
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any, token string) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	return resp
}

func getWithToken(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	buf := new(bytes.Buffer)
	_, err := buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return buf.String()
}

// In-memory repositories for route-level tests.

type memUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{nextID: 1, users: map[int64]*domain.User{}}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, user := range r.users {
		clone := *user
		out = append(out, &clone)
	}
	return out, nil
}

func (r *memUserRepo) Exists(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[id]
	return ok, nil
}

type memRoleRepo struct{}

func (memRoleRepo) GetByName(_ context.Context, name domain.RoleName) (*domain.Role, error) {
	switch name {
	case domain.RoleAdministrator:
		return &domain.Role{ID: 1, Name: name}, nil
	case domain.RoleClient:
		return &domain.Role{ID: 2, Name: name}, nil
	}
	return nil, pgx.ErrNoRows
}

func (memRoleRepo) List(_ context.Context) ([]*domain.Role, error) {
	return []*domain.Role{
		{ID: 1, Name: domain.RoleAdministrator},
		{ID: 2, Name: domain.RoleClient},
	}, nil
}
