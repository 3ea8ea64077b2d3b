package repository

import (
	"time"

	"github.com/medisite/cms/app/models"
	"gorm.io/gorm"
)

// newsRepository implements the NewsRepository interface
type newsRepository struct {
	db *gorm.DB
}

// NewNewsRepository creates a new news repository instance
func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

// Create creates a new news article in the database
func (r *newsRepository) Create(news *models.News) error {
	return r.db.Create(news).Error
}

// GetByID retrieves a news article by its ID
func (r *newsRepository) GetByID(id uint64) (*models.News, error) {
	var news models.News
	err := r.db.First(&news, id).Error
	if err != nil {
		return nil, err
	}
	return &news, nil
}

// GetByCategoryIDs retrieves every news article filed under one of the given categories
func (r *newsRepository) GetByCategoryIDs(categoryIDs []uint64) ([]models.News, error) {
	var news []models.News
	if len(categoryIDs) == 0 {
		return news, nil
	}
	err := r.db.Where("category_id IN ?", categoryIDs).Order("id").Find(&news).Error
	return news, err
}

// SlugExists checks if a slug already exists
func (r *newsRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.News{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// CountByCategoryIDs returns the number of news articles per category.
// Categories without articles are absent from the map.
func (r *newsRepository) CountByCategoryIDs(categoryIDs []uint64) (map[uint64]int64, error) {
	var rows []categoryCount
	if len(categoryIDs) == 0 {
		return countsToMap(rows), nil
	}
	err := r.db.Model(&models.News{}).
		Select("category_id, COUNT(*) AS total").
		Where("category_id IN ?", categoryIDs).
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return countsToMap(rows), nil
}

// UnpublishByCategoryIDs forces every article of the given categories back to draft
func (r *newsRepository) UnpublishByCategoryIDs(categoryIDs []uint64, updatedBy string, now time.Time) (int64, error) {
	if len(categoryIDs) == 0 {
		return 0, nil
	}
	result := r.db.Model(&models.News{}).
		Where("category_id IN ?", categoryIDs).
		Updates(map[string]interface{}{
			"status":     models.NewsStatusDraft,
			"updated_by": updatedBy,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}

// ReassignCategory moves every article of the given categories to targetID.
// The publish status is left as it is.
func (r *newsRepository) ReassignCategory(categoryIDs []uint64, targetID uint64, updatedBy string, now time.Time) (int64, error) {
	if len(categoryIDs) == 0 {
		return 0, nil
	}
	result := r.db.Model(&models.News{}).
		Where("category_id IN ?", categoryIDs).
		Updates(map[string]interface{}{
			"category_id": targetID,
			"updated_by":  updatedBy,
			"updated_at":  now,
		})
	return result.RowsAffected, result.Error
}
