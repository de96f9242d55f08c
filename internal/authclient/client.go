package authclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/bienestar-app/platform/internal/domain"
)

// maxResponseBytes caps peer response reads; validation answers are tiny.
const maxResponseBytes = 1 << 16

// Claims is the identity service's answer to a validation request.
type Claims struct {
	UserID int64           `json:"user_id"`
	Role   domain.RoleName `json:"role"`
}

// Config controls the outbound hop to the identity service.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client forwards the original caller's credential to the identity service
// when a local decision is insufficient. Timeouts, refused connections,
// and non-2xx answers all resolve to "not authorized"; the caller
// never sees a transport error. The real cause is logged here.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// New builds a client with an explicit bounded timeout.
func New(cfg Config, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 4 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Validate asks the identity service to verify the forwarded credential and
// return its claims. The raw token is forwarded unmodified; this client
// never re-signs or issues credentials.
func (c *Client) Validate(ctx context.Context, rawToken string) (*Claims, bool) {
	body, ok := c.get(ctx, rawToken, c.baseURL+"/auth/validate")
	if !ok {
		return nil, false
	}

	var claims Claims
	if err := json.Unmarshal(body, &claims); err != nil {
		c.logger.Warn("identity service returned unparseable claims", zap.Error(err))
		return nil, false
	}
	return &claims, true
}

// UserExists asks the identity service whether the given user exists. The
// forwarded credential must itself authorize the lookup.
func (c *Client) UserExists(ctx context.Context, rawToken string, userID int64) bool {
	url := fmt.Sprintf("%s/users/%s/exists", c.baseURL, strconv.FormatInt(userID, 10))
	body, ok := c.get(ctx, rawToken, url)
	if !ok {
		return false
	}

	var result struct {
		Exists bool `json:"exists"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		c.logger.Warn("identity service returned unparseable existence result", zap.Error(err))
		return false
	}
	return result.Exists
}

// get performs one round-trip with the forwarded credential. A single hop,
// no retries: a failed check fails closed immediately.
func (c *Client) get(ctx context.Context, rawToken, url string) ([]byte, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Warn("building identity service request failed", zap.Error(err))
		return nil, false
	}
	req.Header.Set("Authorization", "Bearer "+rawToken)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("identity service unreachable, failing closed",
			zap.String("url", url), zap.Error(err))
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Debug("identity service denied request",
			zap.String("url", url), zap.Int("status", resp.StatusCode))
		return nil, false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		c.logger.Warn("reading identity service response failed", zap.Error(err))
		return nil, false
	}
	return body, true
}
