package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medisite/cms/app/controllers"
	"github.com/medisite/cms/internal/pkg/middleware"
)

type HttpRouter struct {
	users map[string]string
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	h.registerAdminRoutes(app)
}

func (h HttpRouter) registerAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.RequireAdmin(h.users), middleware.UserContextMiddleware)

	// Category management
	adminGroup.Get("/categories", controllers.HandleAdminCategories)
	adminGroup.Post("/categories/store", controllers.HandleAdminCategoryStore)
	adminGroup.Post("/categories/update/:id", controllers.HandleAdminCategoryUpdate)
	adminGroup.Post("/categories/delete/:id", controllers.HandleAdminCategoryDelete)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{users: middleware.AdminUsers()}
}
