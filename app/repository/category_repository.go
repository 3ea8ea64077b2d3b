package repository

import (
	"time"

	"github.com/medisite/cms/app/models"
	"gorm.io/gorm"
)

// categoryRepository implements the CategoryRepository interface
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// Create creates a new category in the database
func (r *categoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

// GetByID retrieves a category by its ID
func (r *categoryRepository) GetByID(id uint64) (*models.Category, error) {
	var category models.Category
	err := r.db.First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// GetByIDs retrieves the categories with the given IDs, ordered by ID
func (r *categoryRepository) GetByIDs(ids []uint64) ([]models.Category, error) {
	var categories []models.Category
	if len(ids) == 0 {
		return categories, nil
	}
	err := r.db.Where("id IN ?", ids).Order("id").Find(&categories).Error
	return categories, err
}

// List retrieves all categories ordered for navigation display
func (r *categoryRepository) List(activeOnly bool) ([]models.Category, error) {
	var categories []models.Category
	query := r.db.Model(&models.Category{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("display_order IS NULL, display_order ASC, name ASC, id ASC").Find(&categories).Error
	return categories, err
}

// UpdateFields writes the given columns of a single category.
// A map is used so that NULL and false values are written as well.
// Callers load the row first: MySQL counts changed rows, so an unchanged
// row reports zero affected rows and that count says nothing about existence.
func (r *categoryRepository) UpdateFields(id uint64, fields map[string]interface{}) error {
	return r.db.Model(&models.Category{}).Where("id = ?", id).Updates(fields).Error
}

// Delete removes a category by its ID
func (r *categoryRepository) Delete(id uint64) error {
	result := r.db.Delete(&models.Category{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SlugExists checks if a slug already exists
func (r *categoryRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Category{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// SlugExistsExceptID checks if a slug exists excluding a specific ID
func (r *categoryRepository) SlugExistsExceptID(slug string, id uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Category{}).Where("slug = ? AND id != ?", slug, id).Count(&count).Error
	return count > 0, err
}

// ChildIDs returns the IDs of all direct children of the given parents in one query
func (r *categoryRepository) ChildIDs(parentIDs []uint64) ([]uint64, error) {
	var ids []uint64
	if len(parentIDs) == 0 {
		return ids, nil
	}
	err := r.db.Model(&models.Category{}).
		Where("parent_id IN ?", parentIDs).
		Order("id").
		Pluck("id", &ids).Error
	return ids, err
}

// CountChildren returns the number of direct children of a category
func (r *categoryRepository) CountChildren(id uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Category{}).Where("parent_id = ?", id).Count(&count).Error
	return count, err
}

// DeactivateMany sets is_active = false on every category in ids
func (r *categoryRepository) DeactivateMany(ids []uint64, updatedBy string, now time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Model(&models.Category{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_by": updatedBy,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}
