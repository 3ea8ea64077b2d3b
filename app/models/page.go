package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

type Page struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	CategoryID  uint64    `gorm:"not null;index" json:"category_id" validate:"required"`
	Title       string    `gorm:"size:255;not null" json:"title" validate:"required,min=1,max=255"`
	Slug        string    `gorm:"size:255;uniqueIndex;not null" json:"slug" validate:"required,min=1,max=255"`
	Content     string    `gorm:"type:text" json:"content"`
	IsPublished bool      `gorm:"not null" json:"is_published"`
	UpdatedBy   string    `gorm:"size:150" json:"updated_by"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Page model
func (Page) TableName() string {
	return "pages"
}

func (p *Page) Validate() error {
	v := validator.New()
	return v.Struct(p)
}
