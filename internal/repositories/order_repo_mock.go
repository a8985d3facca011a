package repositories

import (
	"fmt"
	"sort"
	"sync"

	"computershop/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
// It borrows the product repository so Place can simulate the atomic
// stock decrement: a failed line undoes every decrement applied before it.
type MockOrderRepository struct {
	orders   map[string]models.Order
	products *MockProductRepository
	mu       sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository(products *MockProductRepository) *MockOrderRepository {
	return &MockOrderRepository{
		orders:   make(map[string]models.Order),
		products: products,
	}
}

// Place stores the order after decrementing stock for every line,
// rolling back applied decrements if any line fails.
func (r *MockOrderRepository) Place(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var applied []models.OrderDetail
	for i := range order.Details {
		detail := &order.Details[i]
		if err := r.products.AdjustStock(detail.ProductID, -detail.Quantity); err != nil {
			for _, a := range applied {
				// best effort rollback; increase never fails for existing products
				_ = r.products.AdjustStock(a.ProductID, a.Quantity)
			}
			return fmt.Errorf("failed to place order for user %s: %w", order.UserID, err)
		}
		applied = append(applied, *detail)
	}

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Details {
		if order.Details[i].ID == "" {
			order.Details[i].ID = uuid.New().String()
		}
		order.Details[i].OrderID = order.ID
	}
	r.orders[order.ID] = *order
	return nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %s: %w", id, models.ErrNotFound)
	}
	order.TotalAmount = order.Total()
	return &order, nil
}

// ListByUser returns a user's orders, most recent first.
func (r *MockOrderRepository) ListByUser(userID string, limit int) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []models.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			o.TotalAmount = o.Total()
			orders = append(orders, o)
		}
	}
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	if limit > 0 && len(orders) > limit {
		orders = orders[:limit]
	}
	return orders, nil
}

// GetAll returns all orders, most recent first.
func (r *MockOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		o.TotalAmount = o.Total()
		orders = append(orders, o)
	}
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

// UpdateStatus sets the status of an existing order.
func (r *MockOrderRepository) UpdateStatus(id string, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order %s: %w", id, models.ErrNotFound)
	}
	order.Status = status
	r.orders[id] = order
	return nil
}

// Cancel removes an order after restoring the stock its details
// consumed, undoing applied restores if a later one fails.
func (r *MockOrderRepository) Cancel(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order %s: %w", id, models.ErrNotFound)
	}

	var applied []models.OrderDetail
	for _, detail := range order.Details {
		if err := r.products.AdjustStock(detail.ProductID, detail.Quantity); err != nil {
			for _, a := range applied {
				_ = r.products.AdjustStock(a.ProductID, -a.Quantity)
			}
			return fmt.Errorf("failed to cancel order %s: %w", id, err)
		}
		applied = append(applied, detail)
	}
	delete(r.orders, id)
	return nil
}

// Count returns the number of orders.
func (r *MockOrderRepository) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.orders)), nil
}

// TotalRevenue sums price*quantity over all order details.
func (r *MockOrderRepository) TotalRevenue() (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var revenue float64
	for _, o := range r.orders {
		revenue += o.Total()
	}
	return revenue, nil
}
