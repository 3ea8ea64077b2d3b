package router

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	redisstorage "github.com/gofiber/storage/redis"
	"go.uber.org/zap"

	apiv1 "github.com/medisite/cms/internal/api/v1"
	"github.com/medisite/cms/internal/pkg/cache"
	"github.com/medisite/cms/internal/pkg/env"
	"github.com/medisite/cms/internal/pkg/middleware"
)

// limiterDatabase keeps rate-limit counters apart from revalidation keys
const limiterDatabase = 2

type ApiRouter struct {
	log     *zap.Logger
	users   map[string]string
	storage fiber.Storage
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New(limiter.Config{
		Max:        env.GetEnvInt("API_RATE_LIMIT", 120),
		Expiration: time.Minute,
		Storage:    h.storage,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"error":   "rate limit exceeded",
			})
		},
	}), middleware.RequestLogger(h.log))
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	// API v1 routes
	v1 := api.Group("/v1")
	apiServer := apiv1.NewAPIServer()
	apiv1.RegisterHandlers(v1, apiServer,
		middleware.RequireAPIAdmin(h.users),
		middleware.UserContextMiddleware,
	)
}

func NewApiRouter(log *zap.Logger) *ApiRouter {
	return &ApiRouter{
		log:     log,
		users:   middleware.AdminUsers(),
		storage: limiterStorage(log),
	}
}

// limiterStorage shares rate-limit counters through redis when it is
// reachable and falls back to per-process memory otherwise.
func limiterStorage(log *zap.Logger) fiber.Storage {
	if !cache.Available(2 * time.Second) {
		log.Warn("redis unavailable, api rate limiting uses in-memory storage")
		return nil
	}
	opts := cache.Options()
	host, port := env.GetEnv("CACHE_HOST", "localhost"), env.GetEnv("CACHE_PORT", "6379")
	portNum, err := strconv.Atoi(port)
	if err != nil {
		portNum = 6379
	}
	return redisstorage.New(redisstorage.Config{
		Host:     host,
		Port:     portNum,
		Password: opts.Password,
		Database: limiterDatabase,
		Reset:    false,
	})
}
