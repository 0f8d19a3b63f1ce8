package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/retail-admin/backoffice/internal/auth"
	"github.com/retail-admin/backoffice/internal/config"
	"github.com/retail-admin/backoffice/internal/db"
	"github.com/retail-admin/backoffice/internal/editor"
	"github.com/retail-admin/backoffice/internal/events"
	apphttp "github.com/retail-admin/backoffice/internal/http"
	"github.com/retail-admin/backoffice/internal/http/handlers"
	"github.com/retail-admin/backoffice/internal/models"
	"github.com/retail-admin/backoffice/internal/notify"
	"github.com/retail-admin/backoffice/internal/repositories"
	"github.com/retail-admin/backoffice/internal/services"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, db.DefaultPoolOptions, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	if _, err := db.RunMigrations(ctx, pool, os.DirFS("migrations"), log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repositories
	roleRepo := repositories.NewRoleRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)

	// Events
	publisher := events.NewRedisPublisher(rdb, log)
	subscriber := events.NewRedisSubscriber(rdb, log)

	// Services
	roleService := services.NewRoleService(roleRepo, auditRepo, publisher, log)
	sessions := editor.NewSessions(roleService, editor.SessionsConfig{
		IdleTTL:       cfg.EditorSessionTTL,
		ToastDuration: cfg.ToastDuration,
		SinkFor:       toastSink(ctx, publisher),
	}, log)
	sessions.Start(ctx)

	// Handlers
	wsHub := handlers.NewWSHub(cfg.JWTSecret, subscriber, log)
	if err := wsHub.Start(ctx); err != nil {
		log.Fatal("failed to start ws hub", zap.Error(err))
	}

	h := apphttp.Handlers{
		Auth:     handlers.NewAuthHandler(auth.NewAuthenticator(cfg.AdminCredentials), roleRepo, cfg, log),
		Sections: handlers.NewSectionsHandler(),
		Roles:    handlers.NewRoleHandler(sessions, auditRepo, log),
		Editor:   handlers.NewEditorHandler(sessions, log),
		Toasts:   handlers.NewToastHandler(sessions),
		WSHub:    wsHub,
	}

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.SetupRouter(app, cfg, log, rdb, h)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr), zap.Int("admins", len(cfg.AdminCredentials)))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}

// toastSink publishes every toast of an admin so the ws hub of whichever
// API instance holds the admin's socket can push it.
func toastSink(ctx context.Context, publisher events.Publisher) func(models.Actor) notify.Sink {
	return func(actor models.Actor) notify.Sink {
		return func(t notify.Toast) {
			_ = publisher.Publish(ctx, events.StreamToasts, events.Event{
				Type: events.EventToastShown,
				Payload: map[string]any{
					"admin_id": actor.ID.String(),
					"toast":    t,
				},
			})
		}
	}
}
