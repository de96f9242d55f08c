package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/bienestar-app/platform/internal/api/http"
	"github.com/bienestar-app/platform/internal/api/http/handlers"
	"github.com/bienestar-app/platform/internal/auth"
	"github.com/bienestar-app/platform/internal/config"
	"github.com/bienestar-app/platform/internal/observability"
	"github.com/bienestar-app/platform/internal/persistence"
	"github.com/bienestar-app/platform/internal/repository"
	"github.com/bienestar-app/platform/internal/service"
)

func main() {
	cfg, err := config.Load("identity-service")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App.Name)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)

	identityService := service.NewIdentityService(cfg.Auth, userRepo, roleRepo, logger)
	verifier := auth.NewVerifier(identityService.TokenCodec(), logger)
	enforcer := auth.NewEnforcer(cfg.Auth.DenyStatus)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterIdentityRoutes(app, httptransport.IdentityRouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, nil, metrics),
		Identity: handlers.NewIdentityHandler(identityService),
		Users:    handlers.NewUsersHandler(identityService),
		Verifier: verifier,
		Enforcer: enforcer,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
