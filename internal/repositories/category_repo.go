package repositories

import "computershop/internal/models"

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	GetAll() ([]models.Category, error)
	GetByID(id string) (*models.Category, error)
	GetByName(name string) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id string) error
	// CountProducts reports how many products reference the category.
	CountProducts(id string) (int64, error)
	Count() (int64, error)
}
