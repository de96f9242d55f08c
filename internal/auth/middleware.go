package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Verifier is the soft authentication middleware shared by every service.
// A missing, malformed, expired, or tampered credential never produces an
// error response here; the request simply continues without an identity and
// the route's policy decides whether that is acceptable.
type Verifier struct {
	codec  *TokenCodec
	logger *zap.Logger
}

// NewVerifier constructs the middleware around the shared-secret codec.
func NewVerifier(codec *TokenCodec, logger *zap.Logger) *Verifier {
	return &Verifier{codec: codec, logger: logger}
}

// Handle extracts and verifies the bearer credential, attaching the caller
// identity on success. All failure paths fall through unauthenticated.
func (v *Verifier) Handle(c *fiber.Ctx) error {
	token := bearerToken(c.Get(fiber.HeaderAuthorization))
	if token == "" {
		return c.Next()
	}

	claims, err := v.codec.Verify(token)
	if err != nil {
		// The reason matters for diagnostics only; the client outcome
		// is identical to sending no credential at all.
		v.logger.Debug("credential rejected", zap.Error(err), zap.String("path", c.Path()))
		return c.Next()
	}

	subject, err := claims.UserID()
	if err != nil {
		v.logger.Debug("credential rejected", zap.Error(err), zap.String("path", c.Path()))
		return c.Next()
	}

	attachIdentity(c, &Identity{
		Subject:  subject,
		Role:     claims.Role,
		Email:    claims.Email,
		RawToken: token,
	})
	return c.Next()
}

// bearerToken pulls the token out of an Authorization header value.
// Returns "" unless the value is a well-formed bearer scheme.
func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
