package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/retail-admin/backoffice/internal/config"
	"github.com/retail-admin/backoffice/internal/db"
	"github.com/retail-admin/backoffice/internal/repositories"
	"go.uber.org/zap"
)

type auditPruner interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, db.PoolOptions{MaxConns: 4, MinConns: 1}, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	if _, err := db.RunMigrations(ctx, pool, os.DirFS("migrations"), log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	auditRepo := repositories.NewAuditRepo(pool)

	// Health endpoint for the orchestrator
	health := fiber.New(fiber.Config{DisableStartupMessage: true})
	health.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})
	go func() {
		if err := health.Listen(fmt.Sprintf(":%s", cfg.WorkerPort)); err != nil {
			log.Error("health server stopped", zap.Error(err))
		}
	}()
	defer health.Shutdown()

	log.Info("worker started",
		zap.Duration("audit_retention", cfg.AuditRetention),
		zap.Duration("sweep_interval", cfg.AuditSweepInterval),
	)

	interval := cfg.AuditSweepInterval
	if interval <= 0 {
		interval = time.Hour
	}
	sweepTicker := time.NewTicker(interval)
	defer sweepTicker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	runAuditSweep(ctx, auditRepo, cfg.AuditRetention, log)
	for {
		select {
		case <-sweepTicker.C:
			runAuditSweep(ctx, auditRepo, cfg.AuditRetention, log)
		case <-sigCh:
			log.Info("shutting down worker")
			cancel()
			return
		case <-ctx.Done():
			return
		}
	}
}

func runAuditSweep(ctx context.Context, repo auditPruner, retention time.Duration, log *zap.Logger) {
	cutoff := time.Now().Add(-retention)
	n, err := repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		log.Error("audit sweep failed", zap.Error(err))
		return
	}
	if n > 0 {
		log.Info("audit rows pruned", zap.Int64("deleted", n), zap.Time("cutoff", cutoff))
	}
}
