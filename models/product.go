package models

import "time"

// DefaultRating is assigned to new products that arrive without a rating.
const DefaultRating = 4.5

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Category    string    `gorm:"size:100;index" json:"category"`
	Stock       int       `gorm:"not null;default:0" json:"stock"`
	Image       string    `json:"image"`
	Discount    int       `gorm:"not null;default:0" json:"discount"`
	Rating      float64   `gorm:"type:decimal(2,1);not null" json:"rating"`
	IsFeatured  bool      `gorm:"not null;default:false;index" json:"isFeatured"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
