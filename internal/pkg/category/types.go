package category

import (
	"github.com/medisite/cms/app/models"
)

// Actor identifies who performs a mutation.
type Actor struct {
	Name string
}

// SystemActor is used for mutations without an authenticated user, e.g. the CLI.
var SystemActor = Actor{Name: "system"}

func (a Actor) String() string {
	if a.Name == "" {
		return SystemActor.Name
	}
	return a.Name
}

// CategoryInput carries the editable fields of a category. A nil IsActive
// keeps the current state on update and means active on create.
type CategoryInput struct {
	Name         string  `json:"name" form:"name" validate:"required,max=255"`
	Slug         string  `json:"slug" form:"slug" validate:"required,max=255,slug"`
	Note         *string `json:"note" form:"note"`
	ParentID     *uint64 `json:"parent_id" form:"parent_id"`
	DisplayOrder *int    `json:"display_order" form:"display_order" validate:"omitempty,min=0"`
	ImageURL     *string `json:"image_url" form:"image_url" validate:"omitempty,max=512"`
	IsMainMenu   bool    `json:"is_main_menu" form:"is_main_menu"`
	IsActive     *bool   `json:"is_active" form:"is_active"`
}

// DependencyEntry is one line of a dependency report.
type DependencyEntry struct {
	CategoryID   uint64 `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	ArticleCount int64  `json:"articleCount"`
	PageCount    int64  `json:"pageCount"`
}

// StrategyResult summarizes what a deactivation strategy changed.
type StrategyResult struct {
	Strategy              string            `json:"strategy"`
	ParentID              uint64            `json:"parentId"`
	CategoryIDs           []uint64          `json:"categoryIds"`
	DeactivatedCategories int64             `json:"deactivatedCategories"`
	AffectedArticles      int64             `json:"affectedArticles"`
	AffectedPages         int64             `json:"affectedPages"`
	MigratedTo            *uint64           `json:"migratedTo,omitempty"`
	Report                []DependencyEntry `json:"dependencyReport"`
}

// UpdateResult is returned by Service.Update. Deactivation is set only when
// the update switched the category from active to inactive.
type UpdateResult struct {
	Category     *models.Category
	Message      string
	Deactivation *StrategyResult
}

// DeactivationPreview lists what deactivating a category would touch.
type DeactivationPreview struct {
	Category    *models.Category  `json:"category"`
	CategoryIDs []uint64          `json:"categoryIds"`
	Report      []DependencyEntry `json:"dependencyReport"`
}
