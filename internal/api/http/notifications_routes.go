package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/bienestar-app/platform/internal/api/http/handlers"
	"github.com/bienestar-app/platform/internal/auth"
	"github.com/bienestar-app/platform/internal/domain"
	"github.com/bienestar-app/platform/internal/service"
	apperrors "github.com/bienestar-app/platform/pkg/util"
)

// NotificationsRouteConfig bundles dependencies for the notifications
// service routes.
type NotificationsRouteConfig struct {
	Health        *handlers.HealthHandler
	Notifications *handlers.NotificationsHandler
	Service       *service.NotificationService
	Verifier      *auth.Verifier
	Enforcer      *auth.Enforcer
}

// RegisterNotificationsRoutes wires the notifications service. Creating
// reminders is administrative; users read and clear their own.
func RegisterNotificationsRoutes(app *fiber.App, cfg NotificationsRouteConfig) {
	registerHealthRoutes(app, cfg.Health)

	app.Use(cfg.Verifier.Handle)

	ownerOfNotification := func(c *fiber.Ctx) (int64, error) {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return 0, apperrors.NewValidationError("invalid id", nil)
		}
		return cfg.Service.NotificationOwner(c.UserContext(), id)
	}

	notifications := app.Group("/notifications")
	notifications.Post("", cfg.Enforcer.RequireRole(domain.RoleAdministrator), cfg.Notifications.Create)
	notifications.Get("/users/:userId", cfg.Enforcer.RequireSelfOrRole(auth.OwnerFromParam("userId"), domain.RoleAdministrator), cfg.Notifications.ListByUser)
	notifications.Delete("/:id", cfg.Enforcer.RequireSelfOrRole(ownerOfNotification, domain.RoleAdministrator), cfg.Notifications.Delete)
}
