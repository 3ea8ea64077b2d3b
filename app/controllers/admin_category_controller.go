package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"
	"go.uber.org/zap"

	"github.com/medisite/cms/internal/pkg/category"
	"github.com/medisite/cms/internal/pkg/usercontext"
)

const adminCategoriesPath = "/admin/categories"

// ============================================================================
// ADMIN CATEGORY CONTROLLER
// ============================================================================

// AdminCategoryController handles the admin category forms
type AdminCategoryController struct {
	service *category.Service
	log     *zap.Logger
}

// NewAdminCategoryController creates a new admin category controller
func NewAdminCategoryController(service *category.Service, log *zap.Logger) *AdminCategoryController {
	if log == nil {
		log = zap.NewNop()
	}
	return &AdminCategoryController{service: service, log: log}
}

// handleError is a helper method for consistent error handling
func (acc *AdminCategoryController) handleError(c *fiber.Ctx, message string, err error) error {
	if errorStatus(err) >= fiber.StatusInternalServerError {
		acc.log.Error(message, zap.String("path", c.Path()), zap.Error(err))
	}
	fm := fiber.Map{
		"type":    "error",
		"message": message + ": " + errorMessage(err),
	}
	return flash.WithError(c, fm).Redirect(adminCategoriesPath)
}

func (acc *AdminCategoryController) success(c *fiber.Ctx, message string) error {
	fm := fiber.Map{
		"type":    "success",
		"message": message,
	}
	return flash.WithSuccess(c, fm).Redirect(adminCategoriesPath)
}

// HandleAdminCategories returns the category tree together with the pending
// flash message of the last form submission
func (acc *AdminCategoryController) HandleAdminCategories(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	tree, err := acc.service.Tree(c.UserContext(), false)
	if err != nil {
		acc.log.Error("failed to load category tree", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	return c.JSON(fiber.Map{
		"user":       userCtx.Username,
		"flash":      flash.Get(c),
		"categories": tree,
	})
}

// HandleAdminCategoryStore handles category creation
func (acc *AdminCategoryController) HandleAdminCategoryStore(c *fiber.Ctx) error {
	in, err := categoryInputFromForm(c)
	if err != nil {
		return acc.handleError(c, "Error creating category", err)
	}
	cat, err := acc.service.Create(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return acc.handleError(c, "Error creating category", err)
	}
	return acc.success(c, fmt.Sprintf("Category %q created successfully", cat.Name))
}

// HandleAdminCategoryUpdate handles category updates including deactivation
func (acc *AdminCategoryController) HandleAdminCategoryUpdate(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return acc.handleError(c, "Error updating category", err)
	}
	in, err := categoryInputFromForm(c)
	if err != nil {
		return acc.handleError(c, "Error updating category", err)
	}
	targetID, err := parseOptionalUint(c.FormValue("migrate_target_id"))
	if err != nil {
		return acc.handleError(c, "Error updating category", fiber.NewError(fiber.StatusBadRequest, "invalid migrate_target_id"))
	}
	var target uint64
	if targetID != nil {
		target = *targetID
	}
	strategy, err := category.ParseStrategy(c.FormValue("strategy"), target)
	if err != nil {
		return acc.handleError(c, "Error updating category", err)
	}

	result, err := acc.service.Update(c.UserContext(), actorFrom(c), id, in, strategy)
	if err != nil {
		return acc.handleError(c, "Error updating category", err)
	}
	return acc.success(c, result.Message)
}

// HandleAdminCategoryDelete handles category deletion
func (acc *AdminCategoryController) HandleAdminCategoryDelete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return acc.handleError(c, "Error deleting category", err)
	}
	if err := acc.service.Delete(c.UserContext(), actorFrom(c), id); err != nil {
		return acc.handleError(c, "Error deleting category", err)
	}
	return acc.success(c, "Category deleted successfully")
}

// categoryInputFromForm reads the category form fields
func categoryInputFromForm(c *fiber.Ctx) (category.CategoryInput, error) {
	in := category.CategoryInput{
		Name:       c.FormValue("name"),
		Slug:       c.FormValue("slug"),
		Note:       optionalString(c.FormValue("note")),
		ImageURL:   optionalString(c.FormValue("image_url")),
		IsMainMenu: isChecked(c.FormValue("is_main_menu")),
		IsActive:   parseOptionalBool(c.FormValue("is_active")),
	}

	parentID, err := parseOptionalUint(c.FormValue("parent_id"))
	if err != nil {
		return in, fiber.NewError(fiber.StatusBadRequest, "invalid parent_id")
	}
	in.ParentID = parentID

	order, err := parseOptionalInt(c.FormValue("display_order"))
	if err != nil {
		return in, fiber.NewError(fiber.StatusBadRequest, "invalid display_order")
	}
	in.DisplayOrder = order
	return in, nil
}

// Global admin category controller instance
var adminCategoryController *AdminCategoryController

// InitializeAdminCategoryController initializes the global admin category controller
func InitializeAdminCategoryController(service *category.Service, log *zap.Logger) {
	adminCategoryController = NewAdminCategoryController(service, log)
}

// GetAdminCategoryController returns the global admin category controller instance
func GetAdminCategoryController() *AdminCategoryController {
	if adminCategoryController == nil {
		panic("admin category controller not initialized")
	}
	return adminCategoryController
}
