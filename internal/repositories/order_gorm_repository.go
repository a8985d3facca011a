package repositories

import (
	"fmt"

	"computershop/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// Place writes the order, its details and the stock decrements in a
// single transaction. The conditional decrement doubles as the stock
// check, so two concurrent checkouts cannot both succeed on the last
// unit; a failure on any line rolls back every earlier line.
func (r *GORMOrderRepository) Place(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Details").Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		for i := range order.Details {
			detail := &order.Details[i]
			if err := adjustStock(tx, detail.ProductID, -detail.Quantity); err != nil {
				return err
			}
			if detail.ID == "" {
				detail.ID = uuid.New().String()
			}
			detail.OrderID = order.ID
			detail.Product = nil
			if err := tx.Create(detail).Error; err != nil {
				return fmt.Errorf("failed to create order detail: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to place order for user %s: %w", order.UserID, err)
	}
	return nil
}

// GetByID retrieves a single order with its details.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Details").Preload("Details.Product").First(&order, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	order.TotalAmount = order.Total()
	return &order, nil
}

// ListByUser retrieves a user's orders, most recent first.
func (r *GORMOrderRepository) ListByUser(userID string, limit int) ([]models.Order, error) {
	tx := r.db.Preload("Details").Where("user_id = ?", userID).Order("created_at desc")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	var orders []models.Order
	if err := tx.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders for user %s: %w", userID, err)
	}
	for i := range orders {
		orders[i].TotalAmount = orders[i].Total()
	}
	return orders, nil
}

// GetAll retrieves all orders, most recent first.
func (r *GORMOrderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Details").Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	for i := range orders {
		orders[i].TotalAmount = orders[i].Total()
	}
	return orders, nil
}

// UpdateStatus sets the status of an existing order.
func (r *GORMOrderRepository) UpdateStatus(id string, status string) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update status for order %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order %s: %w", id, models.ErrNotFound)
	}
	return nil
}

// Cancel removes an order and its details and restores the stock each
// detail consumed, in the same transaction as the delete. A restore
// failure (for instance a detail whose product has since been removed)
// rolls back the whole cancellation.
func (r *GORMOrderRepository) Cancel(id string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var details []models.OrderDetail
		if err := tx.Find(&details, "order_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.OrderDetail{}, "order_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Order{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("order %s: %w", id, models.ErrNotFound)
		}
		for _, detail := range details {
			if err := adjustStock(tx, detail.ProductID, detail.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to cancel order %s: %w", id, err)
	}
	return nil
}

// Count returns the number of orders.
func (r *GORMOrderRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Order{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

// TotalRevenue sums price*quantity over all order details.
func (r *GORMOrderRepository) TotalRevenue() (float64, error) {
	var revenue float64
	err := r.db.Model(&models.OrderDetail{}).
		Select("COALESCE(SUM(price * quantity), 0)").
		Scan(&revenue).Error
	if err != nil {
		return 0, fmt.Errorf("failed to compute total revenue: %w", err)
	}
	return revenue, nil
}
