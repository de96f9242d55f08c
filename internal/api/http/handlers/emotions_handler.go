package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/bienestar-app/platform/internal/api/dto"
	"github.com/bienestar-app/platform/internal/auth"
	"github.com/bienestar-app/platform/internal/service"
	apperrors "github.com/bienestar-app/platform/pkg/util"
)

// EmotionsHandler exposes mood logging and daily summaries.
type EmotionsHandler struct {
	emotions *service.EmotionService
}

// NewEmotionsHandler constructs the handler.
func NewEmotionsHandler(emotions *service.EmotionService) *EmotionsHandler {
	return &EmotionsHandler{emotions: emotions}
}

// Log handles POST /emotions.
func (h *EmotionsHandler) Log(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated(http.StatusUnauthorized)
	}

	var req dto.EmotionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.UserID == 0 {
		req.UserID = identity.Subject
	}

	log, err := h.emotions.Log(c.UserContext(), identity, service.EmotionInput{
		UserID: req.UserID,
		Mood:   req.Mood,
		Note:   req.Note,
	})
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewEmotionResponse(log)})
}

// ListByUser handles GET /emotions/users/:userId.
func (h *EmotionsHandler) ListByUser(c *fiber.Ctx) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return err
	}

	logs, err := h.emotions.ListByUser(c.UserContext(), userID)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewEmotionResponses(logs)})
}

// Summary handles GET /emotions/users/:userId/summary.
func (h *EmotionsHandler) Summary(c *fiber.Ctx) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return err
	}

	summaries, err := h.emotions.Summary(c.UserContext(), userID)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewDaySummaryResponses(summaries)})
}

// Delete handles DELETE /emotions/:id.
func (h *EmotionsHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.emotions.Delete(c.UserContext(), id); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}
