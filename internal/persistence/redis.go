package persistence

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/atlasboard/tracker-service/internal/config"
)

// Redis holds the client used for summary caching and readiness checks.
type Redis struct {
	Client *redis.Client
}

// NewRedis dials Redis with the configured address and credentials. A failed
// ping is logged but not fatal; the tracker degrades to uncached summaries.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("redis unreachable, summary cache disabled", zap.Error(err))
	} else {
		logger.Info("redis connection established", zap.String("addr", cfg.Addr))
	}

	return &Redis{Client: client}
}

// Close releases the underlying connection pool.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping reports whether Redis is reachable.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}
