package repositories

import "computershop/internal/models"

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// Place persists the order and its details and decrements each
	// product's stock, all-or-nothing. A failed line (missing product,
	// insufficient stock) must leave no detail rows and no stock change
	// behind.
	Place(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	// ListByUser returns the user's orders, most recent first. A limit
	// of 0 means no limit.
	ListByUser(userID string, limit int) ([]models.Order, error)
	GetAll() ([]models.Order, error)
	UpdateStatus(id string, status string) error
	// Cancel removes the order and its details and returns every
	// detail's quantity to the product's stock, all-or-nothing. A failed
	// restore leaves the order and the stock untouched.
	Cancel(id string) error
	Count() (int64, error)
	// TotalRevenue sums price*quantity over all order details.
	TotalRevenue() (float64, error)
}
