package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bienestar-app/platform/internal/api/http/handlers"
	"github.com/bienestar-app/platform/internal/auth"
	"github.com/bienestar-app/platform/internal/domain"
)

// IdentityRouteConfig bundles dependencies for the identity service routes.
type IdentityRouteConfig struct {
	Health   *handlers.HealthHandler
	Identity *handlers.IdentityHandler
	Users    *handlers.UsersHandler
	Verifier *auth.Verifier
	Enforcer *auth.Enforcer
}

// RegisterIdentityRoutes wires the identity service. The verifier runs on
// every request; per-route policies decide what an absent identity means.
func RegisterIdentityRoutes(app *fiber.App, cfg IdentityRouteConfig) {
	registerHealthRoutes(app, cfg.Health)

	app.Use(cfg.Verifier.Handle)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Enforcer.Public(), cfg.Identity.Register)
	authGroup.Post("/login", cfg.Enforcer.Public(), cfg.Identity.Login)
	authGroup.Get("/validate", cfg.Enforcer.RequireAuthenticated(), cfg.Identity.Validate)

	users := app.Group("/users")
	users.Get("", cfg.Enforcer.RequireRole(domain.RoleAdministrator), cfg.Users.List)
	users.Get("/:id", cfg.Enforcer.RequireSelfOrRole(auth.OwnerFromParam("id"), domain.RoleAdministrator), cfg.Users.Get)
	users.Get("/:id/exists", cfg.Enforcer.RequireSelfOrRole(auth.OwnerFromParam("id"), domain.RoleAdministrator), cfg.Users.Exists)
	users.Put("/:id/role", cfg.Enforcer.RequireRole(domain.RoleAdministrator), cfg.Users.AssignRole)
	users.Put("/:id/block", cfg.Enforcer.RequireRole(domain.RoleAdministrator), cfg.Users.Block)
	users.Put("/:id/unblock", cfg.Enforcer.RequireRole(domain.RoleAdministrator), cfg.Users.Unblock)
}

func registerHealthRoutes(app *fiber.App, health *handlers.HealthHandler) {
	app.Get("/health/live", health.Live)
	app.Get("/health/ready", health.Ready)
	app.Get("/health/metrics", health.Metrics)
}
