package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	NewsStatusDraft   = "draft"
	NewsStatusPublish = "publish"
)

// News represents a news article in the system
type News struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	CategoryID uint64    `gorm:"not null;index" json:"category_id" validate:"required"`
	Title      string    `gorm:"size:255;not null" json:"title" validate:"required,min=3,max=255"`
	Content    string    `gorm:"type:text" json:"content"`
	Slug       string    `gorm:"size:255;uniqueIndex;not null" json:"slug" validate:"required,min=3,max=255"`
	Status     string    `gorm:"size:20;not null;index" json:"status" validate:"oneof=draft publish"`
	UpdatedBy  string    `gorm:"size:150" json:"updated_by"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the News model
func (News) TableName() string {
	return "news"
}

func (n *News) Validate() error {
	v := validator.New()
	return v.Struct(n)
}
