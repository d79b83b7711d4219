package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/freelance-directory/internal/config"
)

// Redis wraps the go-redis client and namespaces keys per application.
type Redis struct {
	Client    *redis.Client
	namespace string
}

// NewRedis connects to Redis. An unreachable server is logged, not fatal:
// Redis only backs caches.
func NewRedis(cfg config.RedisConfig, namespace string, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &Redis{Client: client, namespace: namespace}
}

// Key joins parts under the application namespace, e.g. "freelance-directory:users:most_liked".
func (r *Redis) Key(parts ...string) string {
	if r.namespace == "" {
		return strings.Join(parts, ":")
	}
	return r.namespace + ":" + strings.Join(parts, ":")
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}
