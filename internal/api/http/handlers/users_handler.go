package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/bienestar-app/platform/internal/api/dto"
	"github.com/bienestar-app/platform/internal/service"
	apperrors "github.com/bienestar-app/platform/pkg/util"
)

// UsersHandler exposes account lookup and administration.
type UsersHandler struct {
	identity *service.IdentityService
}

// NewUsersHandler constructs the handler.
func NewUsersHandler(identity *service.IdentityService) *UsersHandler {
	return &UsersHandler{identity: identity}
}

// Get handles GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.identity.GetUser(c.UserContext(), id)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.identity.ListUsers(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}

	out := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, dto.NewUserResponse(user))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Exists handles GET /users/:id/exists, consumed by peer services.
func (h *UsersHandler) Exists(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	exists, err := h.identity.UserExists(c.UserContext(), id)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"exists": exists})
}

// AssignRole handles PUT /users/:id/role.
func (h *UsersHandler) AssignRole(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req dto.AssignRoleRequest
	if err := c.BodyParser(&req); err != nil || req.Role == "" {
		return apperrors.NewValidationError("role required", nil)
	}

	user, err := h.identity.AssignRole(c.UserContext(), id, req.Role)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Block handles PUT /users/:id/block.
func (h *UsersHandler) Block(c *fiber.Ctx) error {
	return h.setBlocked(c, true)
}

// Unblock handles PUT /users/:id/unblock.
func (h *UsersHandler) Unblock(c *fiber.Ctx) error {
	return h.setBlocked(c, false)
}

func (h *UsersHandler) setBlocked(c *fiber.Ctx, blocked bool) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.identity.SetBlocked(c.UserContext(), id, blocked)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// paramID parses a numeric path parameter.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid "+name, nil)
	}
	return id, nil
}
