package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/medisite/cms/internal/pkg/category"
)

// Global category API controller instance
var apiCategoryController *APICategoryController

// InitializeCategoryControllers initializes the global admin and API category controllers
func InitializeCategoryControllers(service *category.Service, log *zap.Logger) {
	apiCategoryController = NewAPICategoryController(service, log)
	InitializeAdminCategoryController(service, log)
}

// GetAPICategoryController returns the global category API controller instance
func GetAPICategoryController() *APICategoryController {
	if apiCategoryController == nil {
		panic("category api controller not initialized")
	}
	return apiCategoryController
}

// Adapter functions used by the router

// HandleAdminCategories - Adapter for the category overview
func HandleAdminCategories(c *fiber.Ctx) error {
	return GetAdminCategoryController().HandleAdminCategories(c)
}

// HandleAdminCategoryStore - Adapter for category creation
func HandleAdminCategoryStore(c *fiber.Ctx) error {
	return GetAdminCategoryController().HandleAdminCategoryStore(c)
}

// HandleAdminCategoryUpdate - Adapter for category update
func HandleAdminCategoryUpdate(c *fiber.Ctx) error {
	return GetAdminCategoryController().HandleAdminCategoryUpdate(c)
}

// HandleAdminCategoryDelete - Adapter for category delete
func HandleAdminCategoryDelete(c *fiber.Ctx) error {
	return GetAdminCategoryController().HandleAdminCategoryDelete(c)
}

// HandleAPICategoryList - Adapter for GET /categories
func HandleAPICategoryList(c *fiber.Ctx) error {
	return GetAPICategoryController().HandleList(c)
}

// HandleAPICategoryTree - Adapter for GET /categories/tree
func HandleAPICategoryTree(c *fiber.Ctx) error {
	return GetAPICategoryController().HandleTree(c)
}

// HandleAPICategoryGet - Adapter for GET /categories/:id
func HandleAPICategoryGet(c *fiber.Ctx) error {
	return GetAPICategoryController().HandleGet(c)
}

// HandleAPICategoryDependencies - Adapter for GET /categories/:id/dependencies
func HandleAPICategoryDependencies(c *fiber.Ctx) error {
	return GetAPICategoryController().HandleDependencies(c)
}

// HandleAPICategoryCreate - Adapter for POST /categories
func HandleAPICategoryCreate(c *fiber.Ctx) error {
	return GetAPICategoryController().HandleCreate(c)
}

// HandleAPICategoryUpdate - Adapter for PUT /categories/:id
func HandleAPICategoryUpdate(c *fiber.Ctx) error {
	return GetAPICategoryController().HandleUpdate(c)
}

// HandleAPICategoryDelete - Adapter for DELETE /categories/:id
func HandleAPICategoryDelete(c *fiber.Ctx) error {
	return GetAPICategoryController().HandleDelete(c)
}
