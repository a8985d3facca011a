package models

import "gorm.io/gorm"

// Product represents a sellable item in the catalog.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string    `json:"name" gorm:"type:varchar(255)" validate:"required,min=3,max=255"`
	Description string    `json:"description" validate:"omitempty,max=1000"`
	Price       float64   `json:"price" validate:"required,gt=0"`
	Stock       int       `json:"stock" validate:"gte=0"`
	CategoryID  *string   `json:"category_id,omitempty" gorm:"type:varchar(36)"`
	Category    *Category `json:"category,omitempty"`
	ImageID     *string   `json:"image_id,omitempty" gorm:"type:varchar(36)"`
	Image       *Image    `json:"image,omitempty"`
	gorm.Model            // CreatedAt, UpdatedAt, DeletedAt
}

// Category groups products. Name is unique; a category cannot be deleted
// while products still reference it.
type Category struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string    `json:"name" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=2,max=100"`
	Description string    `json:"description" validate:"omitempty,max=500"`
	Products    []Product `json:"products,omitempty" gorm:"foreignKey:CategoryID"`
	gorm.Model
}

// Image is a shared picture referenced by products. Looked up or created
// by URL; products without one fall back to the placeholder.
type Image struct {
	ID  string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	URL string `json:"url" gorm:"uniqueIndex;type:varchar(500)" validate:"required,max=500"`
}

// PlaceholderImageURL is assigned to products created without an image.
const PlaceholderImageURL = "/images/placeholder.jpg"
