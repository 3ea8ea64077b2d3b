package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/medisite/cms/internal/pkg/category"
)

// CategoryResponse is the JSON envelope of every category API call
type CategoryResponse struct {
	Success               bool                       `json:"success"`
	Message               string                     `json:"message,omitempty"`
	Error                 string                     `json:"error,omitempty"`
	Data                  interface{}                `json:"data,omitempty"`
	DeactivatedCategories *int64                     `json:"deactivatedCategories,omitempty"`
	AffectedArticles      *int64                     `json:"affectedArticles,omitempty"`
	AffectedPages         *int64                     `json:"affectedPages,omitempty"`
	DependencyReport      []category.DependencyEntry `json:"dependencyReport,omitempty"`
}

// updateCategoryRequest is the body of PUT /categories/:id
type updateCategoryRequest struct {
	category.CategoryInput
	Strategy        string `json:"strategy"`
	MigrateTargetID uint64 `json:"migrate_target_id"`
}

// APICategoryController serves the category JSON API
type APICategoryController struct {
	service *category.Service
	log     *zap.Logger
}

// NewAPICategoryController creates a new category API controller
func NewAPICategoryController(service *category.Service, log *zap.Logger) *APICategoryController {
	if log == nil {
		log = zap.NewNop()
	}
	return &APICategoryController{service: service, log: log}
}

// fail writes an error envelope; unexpected errors are logged
func (acc *APICategoryController) fail(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	if status >= fiber.StatusInternalServerError {
		acc.log.Error("category api request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err))
	}
	return c.Status(status).JSON(CategoryResponse{Success: false, Error: errorMessage(err)})
}

// HandleList returns all categories, or only active ones with ?active=true
func (acc *APICategoryController) HandleList(c *fiber.Ctx) error {
	categories, err := acc.service.List(c.UserContext(), c.QueryBool("active", false))
	if err != nil {
		return acc.fail(c, err)
	}
	return c.JSON(CategoryResponse{Success: true, Data: categories})
}

// HandleTree returns the categories as a nested tree
func (acc *APICategoryController) HandleTree(c *fiber.Ctx) error {
	tree, err := acc.service.Tree(c.UserContext(), c.QueryBool("active", false))
	if err != nil {
		return acc.fail(c, err)
	}
	return c.JSON(CategoryResponse{Success: true, Data: tree})
}

// HandleGet returns a single category
func (acc *APICategoryController) HandleGet(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return acc.fail(c, err)
	}
	cat, err := acc.service.Get(c.UserContext(), id)
	if err != nil {
		return acc.fail(c, err)
	}
	return c.JSON(CategoryResponse{Success: true, Data: cat})
}

// HandleDependencies reports what deactivating a category would touch
func (acc *APICategoryController) HandleDependencies(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return acc.fail(c, err)
	}
	preview, err := acc.service.PreviewDeactivation(c.UserContext(), id)
	if err != nil {
		return acc.fail(c, err)
	}
	return c.JSON(CategoryResponse{
		Success:          true,
		Data:             preview,
		DependencyReport: preview.Report,
	})
}

// HandleCreate creates a category from a JSON body
func (acc *APICategoryController) HandleCreate(c *fiber.Ctx) error {
	var in category.CategoryInput
	if err := c.BodyParser(&in); err != nil {
		return acc.fail(c, fiber.NewError(fiber.StatusBadRequest, "invalid request body"))
	}
	cat, err := acc.service.Create(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return acc.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(CategoryResponse{
		Success: true,
		Message: "Category created successfully",
		Data:    cat,
	})
}

// HandleUpdate updates a category; switching it to inactive applies the
// requested deactivation strategy
func (acc *APICategoryController) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return acc.fail(c, err)
	}
	var req updateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return acc.fail(c, fiber.NewError(fiber.StatusBadRequest, "invalid request body"))
	}
	strategy, err := category.ParseStrategy(req.Strategy, req.MigrateTargetID)
	if err != nil {
		return acc.fail(c, err)
	}

	result, err := acc.service.Update(c.UserContext(), actorFrom(c), id, req.CategoryInput, strategy)
	if err != nil {
		return acc.fail(c, err)
	}

	resp := CategoryResponse{Success: true, Message: result.Message, Data: result.Category}
	if d := result.Deactivation; d != nil {
		resp.DeactivatedCategories = &d.DeactivatedCategories
		resp.AffectedArticles = &d.AffectedArticles
		resp.AffectedPages = &d.AffectedPages
		resp.DependencyReport = d.Report
	}
	return c.JSON(resp)
}

// HandleDelete deletes a category without dependents
func (acc *APICategoryController) HandleDelete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return acc.fail(c, err)
	}
	if err := acc.service.Delete(c.UserContext(), actorFrom(c), id); err != nil {
		return acc.fail(c, err)
	}
	return c.JSON(CategoryResponse{Success: true, Message: "Category deleted successfully"})
}
