package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/medisite/cms/internal/pkg/env"
)

var (
	client *redis.Client
	ctx    = context.Background()
)

// SetupCache initializes the connection to the Redis cache server.
// An unreachable server is logged, not fatal: cache coherence is best-effort.
func SetupCache(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	client = redis.NewClient(Options())

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	pong, err := client.Ping(pingCtx).Result()
	if err != nil {
		log.Warn("could not connect to redis cache", zap.String("addr", client.Options().Addr), zap.Error(err))
	} else {
		log.Info("connected to redis cache", zap.String("addr", client.Options().Addr), zap.String("pong", pong))
	}
}

// Options returns the client options derived from the CACHE_* environment
func Options() *redis.Options {
	host := env.GetEnv("CACHE_HOST", "localhost")
	port := env.GetEnv("CACHE_PORT", "6379")

	return &redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: env.GetEnv("CACHE_PASSWORD", ""),
		DB:       env.GetEnvInt("CACHE_DB", 0),
	}
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	if client == nil {
		SetupCache(nil)
	}
	return client
}

// Available reports whether the cache server answers a ping within timeout
func Available(timeout time.Duration) bool {
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return GetClient().Ping(pingCtx).Err() == nil
}
