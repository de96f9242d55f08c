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

// EmotionsRouteConfig bundles dependencies for the emotions service routes.
type EmotionsRouteConfig struct {
	Health   *handlers.HealthHandler
	Emotions *handlers.EmotionsHandler
	Service  *service.EmotionService
	Verifier *auth.Verifier
	Enforcer *auth.Enforcer
}

// RegisterEmotionsRoutes wires the emotions service.
func RegisterEmotionsRoutes(app *fiber.App, cfg EmotionsRouteConfig) {
	registerHealthRoutes(app, cfg.Health)

	app.Use(cfg.Verifier.Handle)

	ownerOfLog := func(c *fiber.Ctx) (int64, error) {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return 0, apperrors.NewValidationError("invalid id", nil)
		}
		return cfg.Service.LogOwner(c.UserContext(), id)
	}

	emotions := app.Group("/emotions")
	emotions.Post("", cfg.Enforcer.RequireAuthenticated(), cfg.Emotions.Log)
	emotions.Get("/users/:userId", cfg.Enforcer.RequireSelfOrRole(auth.OwnerFromParam("userId"), domain.RoleAdministrator), cfg.Emotions.ListByUser)
	emotions.Get("/users/:userId/summary", cfg.Enforcer.RequireSelfOrRole(auth.OwnerFromParam("userId"), domain.RoleAdministrator), cfg.Emotions.Summary)
	emotions.Delete("/:id", cfg.Enforcer.RequireSelfOrRole(ownerOfLog, domain.RoleAdministrator), cfg.Emotions.Delete)
}
