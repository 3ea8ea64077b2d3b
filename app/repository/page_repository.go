package repository

import (
	"time"

	"github.com/medisite/cms/app/models"
	"gorm.io/gorm"
)

// pageRepository implements the PageRepository interface
type pageRepository struct {
	db *gorm.DB
}

// NewPageRepository creates a new page repository instance
func NewPageRepository(db *gorm.DB) PageRepository {
	return &pageRepository{db: db}
}

// Create creates a new page in the database
func (r *pageRepository) Create(page *models.Page) error {
	return r.db.Create(page).Error
}

// GetByID retrieves a page by its ID
func (r *pageRepository) GetByID(id uint64) (*models.Page, error) {
	var page models.Page
	err := r.db.First(&page, id).Error
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// GetByCategoryIDs retrieves every page filed under one of the given categories
func (r *pageRepository) GetByCategoryIDs(categoryIDs []uint64) ([]models.Page, error) {
	var pages []models.Page
	if len(categoryIDs) == 0 {
		return pages, nil
	}
	err := r.db.Where("category_id IN ?", categoryIDs).Order("id").Find(&pages).Error
	return pages, err
}

// SlugExists checks if a slug already exists
func (r *pageRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Page{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// CountByCategoryIDs returns the number of pages per category
func (r *pageRepository) CountByCategoryIDs(categoryIDs []uint64) (map[uint64]int64, error) {
	var rows []categoryCount
	if len(categoryIDs) == 0 {
		return countsToMap(rows), nil
	}
	err := r.db.Model(&models.Page{}).
		Select("category_id, COUNT(*) AS total").
		Where("category_id IN ?", categoryIDs).
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return countsToMap(rows), nil
}

// UnpublishByCategoryIDs sets is_published = false on every page of the given categories
func (r *pageRepository) UnpublishByCategoryIDs(categoryIDs []uint64, updatedBy string, now time.Time) (int64, error) {
	if len(categoryIDs) == 0 {
		return 0, nil
	}
	result := r.db.Model(&models.Page{}).
		Where("category_id IN ?", categoryIDs).
		Updates(map[string]interface{}{
			"is_published": false,
			"updated_by":   updatedBy,
			"updated_at":   now,
		})
	return result.RowsAffected, result.Error
}

// ReassignCategory moves every page of the given categories to targetID
func (r *pageRepository) ReassignCategory(categoryIDs []uint64, targetID uint64, updatedBy string, now time.Time) (int64, error) {
	if len(categoryIDs) == 0 {
		return 0, nil
	}
	result := r.db.Model(&models.Page{}).
		Where("category_id IN ?", categoryIDs).
		Updates(map[string]interface{}{
			"category_id": targetID,
			"updated_by":  updatedBy,
			"updated_at":  now,
		})
	return result.RowsAffected, result.Error
}
