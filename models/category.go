package models

import "time"

// DefaultCategoryImage is used when a category is created without an upload.
const DefaultCategoryImage = "/uploads/categories/default.png"

// Category is matched to products by name; Product.Category holds the name, not an id.
type Category struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
