package models

import (
	"time"
)

// Category is a node of the navigation/content taxonomy. Categories form a
// forest: a nil ParentID marks a root.
type Category struct {
	ID           uint64     `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"size:255;not null" json:"name"`
	Slug         string     `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Note         *string    `gorm:"type:text" json:"note"`
	ParentID     *uint64    `gorm:"index" json:"parent_id"`
	DisplayOrder *int       `json:"display_order"`
	ImageURL     *string    `gorm:"size:512" json:"image_url"`
	IsMainMenu   bool       `gorm:"not null" json:"is_main_menu"`
	IsActive     bool       `gorm:"not null;index" json:"is_active"`
	CreatedBy    string     `gorm:"size:150" json:"created_by"`
	UpdatedBy    string     `gorm:"size:150" json:"updated_by"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	Parent       *Category  `gorm:"foreignKey:ParentID" json:"-"`
	Children     []Category `gorm:"foreignKey:ParentID" json:"-"`
	News         []News     `gorm:"foreignKey:CategoryID" json:"-"`
	Pages        []Page     `gorm:"foreignKey:CategoryID" json:"-"`
}

// TableName specifies the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// IsRoot reports whether the category has no parent.
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}
