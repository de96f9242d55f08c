package auth

import (
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bienestar-app/platform/internal/domain"
)

// newPolicyApp wires verifier + enforcer over a route per policy kind.
func newPolicyApp(codec *TokenCodec, denyStatus int) *fiber.App {
	app := fiber.New()
	app.Use(renderDomainErrors)
	app.Use(NewVerifier(codec, zap.NewNop()).Handle)

	enforcer := NewEnforcer(denyStatus)
	ok := func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) }

	app.Get("/public", enforcer.Public(), ok)
	app.Get("/private", enforcer.RequireAuthenticated(), ok)
	app.Get("/admin", enforcer.RequireRole(domain.RoleAdministrator), ok)
	app.Get("/res/:id", enforcer.RequireSelfOrRole(OwnerFromParam("id"), domain.RoleAdministrator), ok)
	return app
}

func TestPublicRouteWithoutCredential(t *testing.T) {
	codec := NewTokenCodec(testSecret, time.Hour)
	app := newPolicyApp(codec, http.StatusUnauthorized)

	resp := doRequest(t, app, http.MethodGet, "/public", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProtectedRouteWithoutCredential(t *testing.T) {
	codec := NewTokenCodec(testSecret, time.Hour)
	app := newPolicyApp(codec, http.StatusUnauthorized)

	for _, path := range []string{"/private", "/admin", "/res/42"} {
		resp := doRequest(t, app, http.MethodGet, path, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "path %s", path)
	}
}

func TestExpiredCredentialMatchesMissing(t *testing.T) {
	codec := NewTokenCodec(testSecret, time.Hour)
	app := newPolicyApp(codec, http.StatusUnauthorized)

	expired := signedTokenWithExp(t, time.Now().Add(-time.Second))

	missing := doRequest(t, app, http.MethodGet, "/private", "")
	withExpired := doRequest(t, app, http.MethodGet, "/private", expired)

	assert.Equal(t, missing.StatusCode, withExpired.StatusCode)

	missingBody, _ := io.ReadAll(missing.Body)
	expiredBody, _ := io.ReadAll(withExpired.Body)
	assert.Equal(t, string(missingBody), string(expiredBody))
}

func TestConfigurableDenyStatus(t *testing.T) {
	codec := NewTokenCodec(testSecret, time.Hour)
	app := newPolicyApp(codec, http.StatusForbidden)

	resp := doRequest(t, app, http.MethodGet, "/private", "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequireRole(t *testing.T) {
	codec := NewTokenCodec(testSecret, time.Hour)
	app := newPolicyApp(codec, http.StatusUnauthorized)

	adminToken, _, err := codec.Issue(1, domain.RoleAdministrator, "")
	require.NoError(t, err)
	clientToken, _, err := codec.Issue(2, domain.RoleClient, "")
	require.NoError(t, err)

	resp := doRequest(t, app, http.MethodGet, "/admin", adminToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, "/admin", clientToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequireSelfOrRole(t *testing.T) {
	codec := NewTokenCodec(testSecret, time.Hour)
	app := newPolicyApp(codec, http.StatusUnauthorized)

	adminToken, _, err := codec.Issue(1, domain.RoleAdministrator, "")
	require.NoError(t, err)
	clientToken, _, err := codec.Issue(2, domain.RoleClient, "")
	require.NoError(t, err)

	cases := []struct {
		name   string
		path   string
		token  string
		status int
	}{
		{"owner regardless of role", "/res/2", clientToken, http.StatusOK},
		{"non-owner without role", "/res/3", clientToken, http.StatusForbidden},
		{"role regardless of ownership", "/res/3", adminToken, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, app, http.MethodGet, tc.path, tc.token)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
