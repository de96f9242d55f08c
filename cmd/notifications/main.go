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
	"github.com/bienestar-app/platform/internal/events"
	"github.com/bienestar-app/platform/internal/observability"
	"github.com/bienestar-app/platform/internal/persistence"
	"github.com/bienestar-app/platform/internal/repository"
	"github.com/bienestar-app/platform/internal/service"
	"github.com/bienestar-app/platform/internal/worker"
)

func main() {
	cfg, err := config.Load("notifications-service")
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

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	notificationRepo := repository.NewNotificationRepository(pg.PoolHandle())
	outbox := events.NewOutbox(redis.Client, cfg.Queue.NotificationKey)

	notificationService := service.NewNotificationService(notificationRepo, outbox, logger)

	go worker.NewNotificationWorker(outbox, notificationService, logger).Run(ctx)

	codec := auth.NewTokenCodec(cfg.Auth.SharedSecret, cfg.Auth.TokenTTL())
	verifier := auth.NewVerifier(codec, logger)
	enforcer := auth.NewEnforcer(cfg.Auth.DenyStatus)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterNotificationsRoutes(app, httptransport.NotificationsRouteConfig{
		Health:        handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Notifications: handlers.NewNotificationsHandler(notificationService),
		Service:       notificationService,
		Verifier:      verifier,
		Enforcer:      enforcer,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
