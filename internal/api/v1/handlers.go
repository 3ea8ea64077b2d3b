package apiv1

import (
	"github.com/gofiber/fiber/v2"

	// Delegate to existing controllers to keep behavior consistent
	"github.com/medisite/cms/app/controllers"
)

// APIServer implements the ServerInterface
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	response := Pong{
		Ping: "pong",
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// ListCategories returns all categories; the controller reads ?active itself.
func (s *APIServer) ListCategories(c *fiber.Ctx, params ListCategoriesParams) error {
	return controllers.HandleAPICategoryList(c)
}

// CreateCategory creates a category (admin only).
func (s *APIServer) CreateCategory(c *fiber.Ctx) error {
	return controllers.HandleAPICategoryCreate(c)
}

// GetCategoryTree returns the nested category tree.
func (s *APIServer) GetCategoryTree(c *fiber.Ctx, params ListCategoriesParams) error {
	return controllers.HandleAPICategoryTree(c)
}

// GetCategory returns one category. Controller reads id from route params;
// wrapper already validated it.
func (s *APIServer) GetCategory(c *fiber.Ctx, id uint64) error {
	return controllers.HandleAPICategoryGet(c)
}

// UpdateCategory updates a category and applies the deactivation strategy
// when it is switched off (admin only).
func (s *APIServer) UpdateCategory(c *fiber.Ctx, id uint64) error {
	return controllers.HandleAPICategoryUpdate(c)
}

// DeleteCategory deletes a category without dependents (admin only).
func (s *APIServer) DeleteCategory(c *fiber.Ctx, id uint64) error {
	return controllers.HandleAPICategoryDelete(c)
}

// GetCategoryDependencies returns the pre-flight dependency report.
func (s *APIServer) GetCategoryDependencies(c *fiber.Ctx, id uint64) error {
	return controllers.HandleAPICategoryDependencies(c)
}
