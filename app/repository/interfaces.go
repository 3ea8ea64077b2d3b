package repository

import (
	"context"
	"time"

	"github.com/medisite/cms/app/models"
	"gorm.io/gorm"
)

// CategoryRepository defines the interface for category-related database operations
type CategoryRepository interface {
	Create(category *models.Category) error
	GetByID(id uint64) (*models.Category, error)
	GetByIDs(ids []uint64) ([]models.Category, error)
	List(activeOnly bool) ([]models.Category, error)
	UpdateFields(id uint64, fields map[string]interface{}) error
	Delete(id uint64) error
	SlugExists(slug string) (bool, error)
	SlugExistsExceptID(slug string, id uint64) (bool, error)

	// Tree operations, batched per level
	ChildIDs(parentIDs []uint64) ([]uint64, error)
	CountChildren(id uint64) (int64, error)
	DeactivateMany(ids []uint64, updatedBy string, now time.Time) (int64, error)
}

// NewsRepository defines the interface for news-related operations
type NewsRepository interface {
	Create(news *models.News) error
	GetByID(id uint64) (*models.News, error)
	GetByCategoryIDs(categoryIDs []uint64) ([]models.News, error)
	SlugExists(slug string) (bool, error)
	CountByCategoryIDs(categoryIDs []uint64) (map[uint64]int64, error)
	UnpublishByCategoryIDs(categoryIDs []uint64, updatedBy string, now time.Time) (int64, error)
	ReassignCategory(categoryIDs []uint64, targetID uint64, updatedBy string, now time.Time) (int64, error)
}

// PageRepository defines the interface for page-related operations
type PageRepository interface {
	Create(page *models.Page) error
	GetByID(id uint64) (*models.Page, error)
	GetByCategoryIDs(categoryIDs []uint64) ([]models.Page, error)
	SlugExists(slug string) (bool, error)
	CountByCategoryIDs(categoryIDs []uint64) (map[uint64]int64, error)
	UnpublishByCategoryIDs(categoryIDs []uint64, updatedBy string, now time.Time) (int64, error)
	ReassignCategory(categoryIDs []uint64, targetID uint64, updatedBy string, now time.Time) (int64, error)
}

// categoryCount is the scan target of grouped per-category counts
type categoryCount struct {
	CategoryID uint64
	Total      int64
}

func countsToMap(rows []categoryCount) map[uint64]int64 {
	counts := make(map[uint64]int64, len(rows))
	for _, row := range rows {
		counts[row.CategoryID] = row.Total
	}
	return counts
}

// Repositories struct holds all repository instances sharing one DB handle
type Repositories struct {
	db       *gorm.DB
	Category CategoryRepository
	News     NewsRepository
	Page     PageRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:       db,
		Category: NewCategoryRepository(db),
		News:     NewNewsRepository(db),
		Page:     NewPageRepository(db),
	}
}

// WithContext returns repositories bound to ctx
func (r *Repositories) WithContext(ctx context.Context) *Repositories {
	return NewRepositories(r.db.WithContext(ctx))
}

// Transaction runs fn against repositories bound to a single database
// transaction. Any error returned by fn rolls back every write made through tx.
func (r *Repositories) Transaction(ctx context.Context, fn func(tx *Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
