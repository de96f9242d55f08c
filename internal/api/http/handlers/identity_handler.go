package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/bienestar-app/platform/internal/api/dto"
	"github.com/bienestar-app/platform/internal/auth"
	"github.com/bienestar-app/platform/internal/service"
	apperrors "github.com/bienestar-app/platform/pkg/util"
)

// IdentityHandler exposes credential issuance and validation.
type IdentityHandler struct {
	identity *service.IdentityService
}

// NewIdentityHandler constructs the handler.
func NewIdentityHandler(identity *service.IdentityService) *IdentityHandler {
	return &IdentityHandler{identity: identity}
}

// Register handles POST /auth/register.
func (h *IdentityHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.identity.Register(c.UserContext(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingField):
			return apperrors.NewValidationError("username, email, password required", nil)
		case errors.Is(err, service.ErrDuplicateUsername), errors.Is(err, service.ErrDuplicateEmail):
			// The specific duplicate stays internal.
			return apperrors.NewConflict("account already exists", nil)
		default:
			return apperrors.MapError(err)
		}
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.NewUserResponse(user),
	})
}

// Login handles POST /auth/login.
func (h *IdentityHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	user, token, expiresAt, err := h.identity.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return apperrors.NewUnauthenticated(http.StatusUnauthorized)
		}
		return apperrors.MapError(err)
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewUserResponse(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: expiresAt},
		},
	})
}

// Validate handles GET /auth/validate, the endpoint peers call with a
// forwarded credential. The verifier middleware has already run; reaching
// this handler with an identity attached is the whole check.
func (h *IdentityHandler) Validate(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated(http.StatusUnauthorized)
	}
	return c.JSON(dto.ValidateResponse{
		UserID: identity.Subject,
		Role:   identity.Role,
	})
}
