// Package revalidate signals externally cached views that their content
// changed. Signals are fire-and-forget: a failed invalidation is logged and
// never reported back to the writer.
package revalidate

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// View identifies a cached view of the site or the admin panel.
type View string

const (
	ViewCategories View = "admin:categories"
	ViewNews       View = "admin:news"
	ViewPages      View = "admin:pages"
	ViewSiteRoot   View = "site:root"
)

// CategoryViews lists every view a category mutation can make stale.
var CategoryViews = []View{ViewCategories, ViewNews, ViewPages, ViewSiteRoot}

const (
	generationKeyPrefix = "revalidate:generation:"
	renderKeyPrefix     = "view:"

	DefaultTimeout = 2 * time.Second
)

// Notifier receives invalidation signals after successful writes.
type Notifier interface {
	Invalidate(ctx context.Context, views ...View)
}

// Nop discards every signal.
type Nop struct{}

func (Nop) Invalidate(context.Context, ...View) {}

// GenerationKey is the Redis key holding the current generation stamp of v.
func GenerationKey(v View) string {
	return generationKeyPrefix + string(v)
}

// RenderKeyPattern matches every cached render stored for v.
func RenderKeyPattern(v View) string {
	return renderKeyPrefix + string(v) + ":*"
}

// RedisNotifier bumps a per-view generation stamp and drops the cached
// renders of the view. Readers compare the stamp they rendered with against
// the current one to detect staleness.
type RedisNotifier struct {
	client  *redis.Client
	log     *zap.Logger
	timeout time.Duration
}

// NewRedisNotifier creates a notifier backed by client.
func NewRedisNotifier(client *redis.Client, log *zap.Logger) *RedisNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisNotifier{client: client, log: log, timeout: DefaultTimeout}
}

// Invalidate runs detached from the caller's cancellation so a finished
// request still gets its caches cleared.
func (n *RedisNotifier) Invalidate(ctx context.Context, views ...View) {
	if len(views) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	defer cancel()

	pipe := n.client.Pipeline()
	for _, v := range views {
		pipe.Set(ctx, GenerationKey(v), uuid.NewString(), 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		n.log.Warn("revalidate generation bump failed", zap.Error(err))
		return
	}

	for _, v := range views {
		n.purge(ctx, v)
	}
	n.log.Debug("views revalidated", zap.Int("views", len(views)))
}

// Generation returns the current stamp of v, or "" when it was never bumped.
func (n *RedisNotifier) Generation(ctx context.Context, v View) (string, error) {
	val, err := n.client.Get(ctx, GenerationKey(v)).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

func (n *RedisNotifier) purge(ctx context.Context, v View) {
	var cursor uint64
	for {
		keys, next, err := n.client.Scan(ctx, cursor, RenderKeyPattern(v), 100).Result()
		if err != nil {
			n.log.Warn("revalidate scan failed", zap.String("view", string(v)), zap.Error(err))
			return
		}
		if len(keys) > 0 {
			if err := n.client.Del(ctx, keys...).Err(); err != nil {
				n.log.Warn("revalidate delete failed", zap.String("view", string(v)), zap.Error(err))
			}
		}
		cursor = next
		if cursor == 0 {
			return
		}
	}
}
