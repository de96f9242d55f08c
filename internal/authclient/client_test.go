package authclient

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bienestar-app/platform/internal/domain"
)

func newClient(baseURL string, timeout time.Duration) *Client {
	return New(Config{BaseURL: baseURL, Timeout: timeout}, zap.NewNop())
}

func TestValidateForwardsCredentialUnmodified(t *testing.T) {
	var gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user_id": 42, "role": "CLIENTE"}`))
	}))
	defer srv.Close()

	client := newClient(srv.URL, time.Second)
	claims, ok := client.Validate(context.Background(), "raw-token-value")

	require.True(t, ok)
	assert.Equal(t, "Bearer raw-token-value", gotHeader)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, domain.RoleClient, claims.Role)
}

func TestValidateFailsClosedOnNon2xx(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		client := newClient(srv.URL, time.Second)
		claims, ok := client.Validate(context.Background(), "tok")
		assert.False(t, ok, "status %d", status)
		assert.Nil(t, claims)
		srv.Close()
	}
}

func TestValidateFailsClosedOnConnectionRefused(t *testing.T) {
	// Grab a port that nothing listens on.
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := lis.Addr().String()
	require.NoError(t, lis.Close())

	client := newClient("http://"+addr, time.Second)
	claims, ok := client.Validate(context.Background(), "tok")
	assert.False(t, ok)
	assert.Nil(t, claims)
}

func TestValidateResolvesWithinTimeoutOnHang(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer func() {
		close(release)
		srv.Close()
	}()

	client := newClient(srv.URL, 200*time.Millisecond)

	start := time.Now()
	claims, ok := client.Validate(context.Background(), "tok")
	elapsed := time.Since(start)

	assert.False(t, ok)
	assert.Nil(t, claims)
	assert.Less(t, elapsed, 2*time.Second, "must not hang past the timeout bound")
}

func TestValidateHonorsCallerCancellation(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer func() {
		close(release)
		srv.Close()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	client := newClient(srv.URL, 10*time.Second)

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, ok := client.Validate(ctx, "tok")
	assert.False(t, ok)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestUserExists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/7/exists", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"exists": true}`))
	}))
	defer srv.Close()

	client := newClient(srv.URL, time.Second)
	assert.True(t, client.UserExists(context.Background(), "tok", 7))
}

func TestUserExistsFailsClosedOnBadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	client := newClient(srv.URL, time.Second)
	assert.False(t, client.UserExists(context.Background(), "tok", 7))
}
