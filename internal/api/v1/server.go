package apiv1

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Pong defines model for Pong.
type Pong struct {
	Ping string `json:"ping"`
}

// ListCategoriesParams defines parameters for ListCategories.
type ListCategoriesParams struct {
	Active *bool `query:"active"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Liveness check
	// (GET /ping)
	GetPing(c *fiber.Ctx) error
	// List categories in display order
	// (GET /categories)
	ListCategories(c *fiber.Ctx, params ListCategoriesParams) error
	// Create a category
	// (POST /categories)
	CreateCategory(c *fiber.Ctx) error
	// Categories as a nested tree
	// (GET /categories/tree)
	GetCategoryTree(c *fiber.Ctx, params ListCategoriesParams) error
	// Get a category
	// (GET /categories/{id})
	GetCategory(c *fiber.Ctx, id uint64) error
	// Update a category
	// (PUT /categories/{id})
	UpdateCategory(c *fiber.Ctx, id uint64) error
	// Delete a category
	// (DELETE /categories/{id})
	DeleteCategory(c *fiber.Ctx, id uint64) error
	// What deactivating the category would touch
	// (GET /categories/{id}/dependencies)
	GetCategoryDependencies(c *fiber.Ctx, id uint64) error
}

// ServerInterfaceWrapper converts contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func badParam(c *fiber.Ctx, name string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   "invalid format for parameter " + name,
	})
}

func (w *ServerInterfaceWrapper) pathID(c *fiber.Ctx) (uint64, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

func (w *ServerInterfaceWrapper) listParams(c *fiber.Ctx) (ListCategoriesParams, error) {
	var params ListCategoriesParams
	if raw := c.Query("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return params, err
		}
		params.Active = &active
	}
	return params, nil
}

// GetPing operation middleware
func (w *ServerInterfaceWrapper) GetPing(c *fiber.Ctx) error {
	return w.Handler.GetPing(c)
}

// ListCategories operation middleware
func (w *ServerInterfaceWrapper) ListCategories(c *fiber.Ctx) error {
	params, err := w.listParams(c)
	if err != nil {
		return badParam(c, "active")
	}
	return w.Handler.ListCategories(c, params)
}

// CreateCategory operation middleware
func (w *ServerInterfaceWrapper) CreateCategory(c *fiber.Ctx) error {
	return w.Handler.CreateCategory(c)
}

// GetCategoryTree operation middleware
func (w *ServerInterfaceWrapper) GetCategoryTree(c *fiber.Ctx) error {
	params, err := w.listParams(c)
	if err != nil {
		return badParam(c, "active")
	}
	return w.Handler.GetCategoryTree(c, params)
}

// GetCategory operation middleware
func (w *ServerInterfaceWrapper) GetCategory(c *fiber.Ctx) error {
	id, ok := w.pathID(c)
	if !ok {
		return badParam(c, "id")
	}
	return w.Handler.GetCategory(c, id)
}

// UpdateCategory operation middleware
func (w *ServerInterfaceWrapper) UpdateCategory(c *fiber.Ctx) error {
	id, ok := w.pathID(c)
	if !ok {
		return badParam(c, "id")
	}
	return w.Handler.UpdateCategory(c, id)
}

// DeleteCategory operation middleware
func (w *ServerInterfaceWrapper) DeleteCategory(c *fiber.Ctx) error {
	id, ok := w.pathID(c)
	if !ok {
		return badParam(c, "id")
	}
	return w.Handler.DeleteCategory(c, id)
}

// GetCategoryDependencies operation middleware
func (w *ServerInterfaceWrapper) GetCategoryDependencies(c *fiber.Ctx) error {
	id, ok := w.pathID(c)
	if !ok {
		return badParam(c, "id")
	}
	return w.Handler.GetCategoryDependencies(c, id)
}

// RegisterHandlers creates http.Handler with routing matching OpenAPI spec.
// writeGuards run in front of the mutating operations.
func RegisterHandlers(router fiber.Router, si ServerInterface, writeGuards ...fiber.Handler) {
	wrapper := ServerInterfaceWrapper{Handler: si}
	guarded := func(h fiber.Handler) []fiber.Handler {
		handlers := make([]fiber.Handler, 0, len(writeGuards)+1)
		handlers = append(handlers, writeGuards...)
		return append(handlers, h)
	}

	router.Get("/ping", wrapper.GetPing)
	router.Get("/categories", wrapper.ListCategories)
	router.Get("/categories/tree", wrapper.GetCategoryTree)
	router.Get("/categories/:id", wrapper.GetCategory)
	router.Get("/categories/:id/dependencies", wrapper.GetCategoryDependencies)
	router.Post("/categories", guarded(wrapper.CreateCategory)...)
	router.Put("/categories/:id", guarded(wrapper.UpdateCategory)...)
	router.Delete("/categories/:id", guarded(wrapper.DeleteCategory)...)
}
