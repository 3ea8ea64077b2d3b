package main

import (
	"fmt"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/medisite/cms/app/repository"
	apiv1 "github.com/medisite/cms/internal/api/v1"
	"github.com/medisite/cms/internal/pkg/cache"
	"github.com/medisite/cms/internal/pkg/database"
	"github.com/medisite/cms/internal/pkg/env"
	applog "github.com/medisite/cms/internal/pkg/logger"
	"github.com/medisite/cms/internal/pkg/middleware"
	"github.com/medisite/cms/internal/pkg/router"
)

func main() {
	env.SetupEnvFile()
	log := applog.Must()
	defer func() { _ = log.Sync() }()

	app := NewApplication(log)
	addr := fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000"))
	log.Info("starting cms", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func NewApplication(log *zap.Logger) *fiber.App {
	database.SetupDatabase(log)
	cache.SetupCache(log)
	repository.InitializeFactory(database.DB)

	// init fiber app
	app := fiber.New(fiber.Config{
		AppName:   "medisite-cms",
		BodyLimit: 1 * 1024 * 1024,
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// prometheus metrics and the runtime dashboard
	adminOnly := middleware.RequireAdmin(middleware.AdminUsers())
	app.Get("/metrics", adminOnly, adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/monitor", adminOnly, monitor.New(monitor.Config{Title: "Hospital CMS"}))

	// SWAGGER / OPENAPI
	if _, err := apiv1.GetSwagger(); err != nil {
		log.Fatal("invalid openapi document", zap.Error(err))
	}
	openAPICfg := swagger.Config{
		BasePath:    "/docs/api/",
		FilePath:    "openapi.yml",
		FileContent: apiv1.RawSpec(),
		Path:        "v1",
		Title:       "Hospital CMS API",
	}
	app.Use(swagger.New(openAPICfg))

	// ROUTER
	router.InstallRouter(app, log)

	return app
}
