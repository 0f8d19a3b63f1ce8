package db

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient connects and pings, retrying a few times so the API can
// start alongside a redis container that is still booting.
func NewRedisClient(ctx context.Context, url string, log *zap.Logger) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	const attempts = 5
	wait := 200 * time.Millisecond
	for i := 1; ; i++ {
		err = client.Ping(ctx).Err()
		if err == nil {
			break
		}
		if i == attempts {
			_ = client.Close()
			return nil, fmt.Errorf("redis ping after %d attempts: %w", attempts, err)
		}
		log.Warn("redis not ready", zap.Int("attempt", i), zap.Error(err))
		select {
		case <-ctx.Done():
			_ = client.Close()
			return nil, ctx.Err()
		case <-time.After(wait):
		}
		wait *= 2
	}

	log.Info("redis connected", zap.String("addr", opts.Addr), zap.Int("db", opts.DB))
	return client, nil
}
