package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/retail-admin/backoffice/internal/config"
	"github.com/retail-admin/backoffice/internal/db"
	"github.com/retail-admin/backoffice/internal/events"
	"github.com/retail-admin/backoffice/internal/services"
	"go.uber.org/zap"
)

// Notify bridge: subscribes to role events and forwards them to an
// external webhook (chat ops channel, SIEM) with retries.

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	if cfg.NotifyWebhookURL == "" {
		log.Fatal("NOTIFY_WEBHOOK_URL is not set")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	subscriber := events.NewRedisSubscriber(rdb, log)
	client := services.NewWebhookClient(cfg.NotifyWebhookURL, cfg.NotifyMaxRetries, log)

	err = subscriber.Subscribe(ctx, events.StreamRoles, func(event events.Event) {
		log.Info("forwarding role event", zap.String("type", event.Type))
		if err := client.Forward(ctx, event); err != nil {
			log.Warn("failed to forward event", zap.String("type", event.Type), zap.Error(err))
		}
	})
	if err != nil {
		log.Fatal("failed to subscribe", zap.Error(err))
	}

	log.Info("notify-bridge started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down notify-bridge")
	cancel()
}
