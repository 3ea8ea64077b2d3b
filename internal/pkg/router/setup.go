package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/medisite/cms/app/controllers"
	"github.com/medisite/cms/app/repository"
	"github.com/medisite/cms/internal/pkg/cache"
	"github.com/medisite/cms/internal/pkg/category"
	"github.com/medisite/cms/internal/pkg/revalidate"
)

// Router installs a group of routes on the app
type Router interface {
	InstallRouter(app *fiber.App)
}

// InstallRouter wires the category service into the controllers and
// registers the admin and API routes.
func InstallRouter(app *fiber.App, log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}

	var notifier revalidate.Notifier = revalidate.Nop{}
	if cache.Available(2 * time.Second) {
		notifier = revalidate.NewRedisNotifier(cache.GetClient(), log)
	} else {
		log.Warn("redis unavailable, cache revalidation disabled")
	}

	service := category.NewService(repository.GetGlobalRepositories(), notifier, log)
	controllers.InitializeCategoryControllers(service, log)

	setup(app, NewHttpRouter(), NewApiRouter(log))
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
