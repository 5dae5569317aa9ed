package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nutrileaf/nutrileaf-client/config"
	"github.com/nutrileaf/nutrileaf-client/pkg/logger"
)

// Connect opens and pings the redis connection backing client-state
// storage and the cross-process change signal.
func Connect(cfg *config.RedisConfig) (*redis.Client, error) {
	logger.Info("Connecting to redis", map[string]interface{}{
		"addr": cfg.Addr(),
		"db":   cfg.DB,
	})

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to redis", err, map[string]interface{}{
			"addr": cfg.Addr(),
		})
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis connection established", nil)
	return client, nil
}
