package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/bienestar-app/platform/internal/domain"
)

// Verification failure reasons. They stay distinguishable for logging but
// every one of them means "unauthenticated" to the caller.
var (
	ErrMalformed    = errors.New("malformed token")
	ErrBadSignature = errors.New("invalid token signature")
	ErrExpired      = errors.New("token expired")
)

// TokenCodec issues and verifies the platform credential. Every service
// holds the same symmetric secret; verification never leaves the process.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec builds a codec around the shared secret. The secret is
// copied once at construction and never mutated afterwards.
func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	if ttl <= 0 {
		ttl = 10 * time.Hour
	}
	return &TokenCodec{secret: []byte(secret), ttl: ttl}
}

// Claims is the decoded credential payload.
type Claims struct {
	Role  domain.RoleName `json:"role"`
	Email string          `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the numeric subject. The sub claim is always the
// string-encoded numeric user id; anything else fails verification.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("non-numeric subject %q: %w", c.Subject, ErrMalformed)
	}
	return id, nil
}

// Issue signs a credential for the subject with the codec's fixed TTL.
func (tc *TokenCodec) Issue(userID int64, role domain.RoleName, email string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tc.ttl)
	claims := &Claims{
		Role:  role,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tc.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify validates signature and expiry and returns the claims. Expiry is
// strict: a token whose exp equals the current instant is already invalid.
func (tc *TokenCodec) Verify(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return tc.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrBadSignature
		default:
			return nil, ErrMalformed
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrMalformed
	}
	if _, err := claims.UserID(); err != nil {
		return nil, ErrMalformed
	}
	return claims, nil
}

// TTL reports the issuance window.
func (tc *TokenCodec) TTL() time.Duration {
	return tc.ttl
}
