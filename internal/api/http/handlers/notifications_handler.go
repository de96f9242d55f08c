package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/bienestar-app/platform/internal/api/dto"
	"github.com/bienestar-app/platform/internal/service"
	apperrors "github.com/bienestar-app/platform/pkg/util"
)

// NotificationsHandler exposes reminder CRUD.
type NotificationsHandler struct {
	notifications *service.NotificationService
}

// NewNotificationsHandler constructs the handler.
func NewNotificationsHandler(notifications *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{notifications: notifications}
}

// Create handles POST /notifications.
func (h *NotificationsHandler) Create(c *fiber.Ctx) error {
	var req dto.NotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.UserID == 0 {
		return apperrors.NewValidationError("user_id required", nil)
	}

	n, err := h.notifications.Create(c.UserContext(), service.NotificationInput{
		UserID:      req.UserID,
		Title:       req.Title,
		Body:        req.Body,
		ScheduledAt: req.ScheduledAt,
	})
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewNotificationResponse(n)})
}

// ListByUser handles GET /notifications/users/:userId.
func (h *NotificationsHandler) ListByUser(c *fiber.Ctx) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return err
	}

	list, err := h.notifications.ListByUser(c.UserContext(), userID)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewNotificationResponses(list)})
}

// Delete handles DELETE /notifications/:id.
func (h *NotificationsHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.notifications.Delete(c.UserContext(), id); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}
