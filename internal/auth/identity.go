package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bienestar-app/platform/internal/domain"
)

const identityKey = "auth_identity"

// Identity is the per-request authenticated caller. It is derived entirely
// from the credential claims and never outlives the request.
type Identity struct {
	Subject  int64
	Role     domain.RoleName
	Email    string
	RawToken string
}

// IsAdmin reports whether the caller holds the administrator role.
func (i *Identity) IsAdmin() bool {
	return i.Role == domain.RoleAdministrator
}

// IdentityFromContext retrieves the identity attached by the verifier, if any.
func IdentityFromContext(c *fiber.Ctx) (*Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*Identity)
	return identity, ok
}

// attachIdentity stores the identity exactly once per request. A second
// attempt within the same request is a no-op: first writer wins.
func attachIdentity(c *fiber.Ctx, identity *Identity) {
	if _, exists := IdentityFromContext(c); exists {
		return
	}
	c.Locals(identityKey, identity)
}
