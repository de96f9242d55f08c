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

// GoalsRouteConfig bundles dependencies for the goals service routes.
type GoalsRouteConfig struct {
	Health   *handlers.HealthHandler
	Goals    *handlers.GoalsHandler
	Service  *service.GoalService
	Verifier *auth.Verifier
	Enforcer *auth.Enforcer
}

// RegisterGoalsRoutes wires the goals service. Routes addressing a single
// goal resolve its owner through the repository-backed extractor.
func RegisterGoalsRoutes(app *fiber.App, cfg GoalsRouteConfig) {
	registerHealthRoutes(app, cfg.Health)

	app.Use(cfg.Verifier.Handle)

	ownerOfGoal := func(c *fiber.Ctx) (int64, error) {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return 0, apperrors.NewValidationError("invalid id", nil)
		}
		return cfg.Service.GoalOwner(c.UserContext(), id)
	}

	goals := app.Group("/goals")
	goals.Post("", cfg.Enforcer.RequireAuthenticated(), cfg.Goals.Create)
	goals.Get("/users/:userId", cfg.Enforcer.RequireSelfOrRole(auth.OwnerFromParam("userId"), domain.RoleAdministrator), cfg.Goals.ListByUser)
	goals.Get("/:id", cfg.Enforcer.RequireSelfOrRole(ownerOfGoal, domain.RoleAdministrator), cfg.Goals.Get)
	goals.Put("/:id", cfg.Enforcer.RequireSelfOrRole(ownerOfGoal, domain.RoleAdministrator), cfg.Goals.Update)
	goals.Put("/:id/complete", cfg.Enforcer.RequireSelfOrRole(ownerOfGoal, domain.RoleAdministrator), cfg.Goals.Complete)
	goals.Delete("/:id", cfg.Enforcer.RequireSelfOrRole(ownerOfGoal, domain.RoleAdministrator), cfg.Goals.Delete)
}
