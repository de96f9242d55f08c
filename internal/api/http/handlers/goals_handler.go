package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/bienestar-app/platform/internal/api/dto"
	"github.com/bienestar-app/platform/internal/auth"
	"github.com/bienestar-app/platform/internal/service"
	apperrors "github.com/bienestar-app/platform/pkg/util"
)

// GoalsHandler exposes goal CRUD.
type GoalsHandler struct {
	goals *service.GoalService
}

// NewGoalsHandler constructs the handler.
func NewGoalsHandler(goals *service.GoalService) *GoalsHandler {
	return &GoalsHandler{goals: goals}
}

// Create handles POST /goals.
func (h *GoalsHandler) Create(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated(http.StatusUnauthorized)
	}

	var req dto.GoalRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.UserID == 0 {
		req.UserID = identity.Subject
	}

	goal, err := h.goals.Create(c.UserContext(), identity, service.GoalInput{
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		TargetDate:  req.TargetDate,
	})
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewGoalResponse(goal)})
}

// Get handles GET /goals/:id.
func (h *GoalsHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	goal, err := h.goals.Get(c.UserContext(), id)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewGoalResponse(goal)})
}

// ListByUser handles GET /goals/users/:userId.
func (h *GoalsHandler) ListByUser(c *fiber.Ctx) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return err
	}

	goals, err := h.goals.ListByUser(c.UserContext(), userID)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewGoalResponses(goals)})
}

// Update handles PUT /goals/:id.
func (h *GoalsHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req dto.GoalRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	goal, err := h.goals.Update(c.UserContext(), id, service.GoalInput{
		Title:       req.Title,
		Description: req.Description,
		TargetDate:  req.TargetDate,
	})
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewGoalResponse(goal)})
}

// Complete handles PUT /goals/:id/complete.
func (h *GoalsHandler) Complete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	goal, err := h.goals.Complete(c.UserContext(), id)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewGoalResponse(goal)})
}

// Delete handles DELETE /goals/:id.
func (h *GoalsHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.goals.Delete(c.UserContext(), id); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}
