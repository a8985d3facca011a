package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"computershop/internal/models"
	"computershop/internal/repositories"
)

// EventPublisher publishes order lifecycle events. pkg/rabbitmq.Client
// satisfies it; tests pass a mock or nil.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// OrderService handles the order placement workflow: converting a cart
// into a persisted order with stock decremented, plus order history,
// status updates and cancellation.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	userRepo    repositories.UserRepository
	cartRepo    repositories.CartRepository
	publisher   EventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, userRepo repositories.UserRepository, cartRepo repositories.CartRepository, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		cartRepo:    cartRepo,
		publisher:   publisher,
	}
}

// Checkout converts the cart identified by cartKey into a persisted
// order for the user. All lines are validated and written together: a
// missing product or an insufficient stock on any line aborts the whole
// checkout and no stock is decremented. The cart is cleared only after
// the order is committed.
func (s *OrderService) Checkout(userID, cartKey string) (*models.Order, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.Get(cartKey)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, fmt.Errorf("cart is empty: %w", models.ErrValidation)
	}

	order := &models.Order{
		UserID:    user.ID,
		Status:    models.OrderStatusPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	// Lines are processed in the order the cart stored them. The unit
	// price is the product's current price, not the cart snapshot, so a
	// price change between add-to-cart and checkout is honored.
	for _, item := range cart.Items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		order.Details = append(order.Details, models.OrderDetail{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			Price:     product.Price,
		})
	}

	if err := s.orderRepo.Place(order); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Clear(cartKey); err != nil {
		// The order is committed; a cart cleanup failure must not
		// surface as a failed checkout.
		log.Printf("Warning: failed to clear cart %s after checkout: %v", cartKey, err)
	}

	order.TotalAmount = order.Total()
	s.publishEvent("order.placed", map[string]interface{}{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"status":   order.Status,
		"total":    order.TotalAmount,
	})
	return order, nil
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// ListUserOrders retrieves the user's orders, most recent first.
func (s *OrderService) ListUserOrders(userID string, limit int) ([]models.Order, error) {
	return s.orderRepo.ListByUser(userID, limit)
}

// GetAllOrders retrieves all orders (admin).
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// UpdateOrderStatus updates the status of an existing order.
func (s *OrderService) UpdateOrderStatus(id string, status string) error {
	if !models.ValidOrderStatus(status) {
		return fmt.Errorf("invalid order status %q: %w", status, models.ErrValidation)
	}
	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return err
	}
	s.publishEvent("order.status_changed", map[string]interface{}{
		"order_id": id,
		"status":   status,
	})
	return nil
}

// CancelOrder removes a pending order and returns its units to stock.
// The delete and the stock restores commit together; a failed restore
// leaves the order in place.
func (s *OrderService) CancelOrder(id string) error {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return err
	}
	if order.Status != models.OrderStatusPending {
		return fmt.Errorf("only pending orders can be cancelled, order is %q: %w", order.Status, models.ErrValidation)
	}
	if err := s.orderRepo.Cancel(id); err != nil {
		return err
	}
	s.publishEvent("order.cancelled", map[string]interface{}{
		"order_id": id,
		"user_id":  order.UserID,
	})
	return nil
}

// publishEvent sends an order event to the queue. A publish failure is
// logged and swallowed; the order state is already committed.
func (s *OrderService) publishEvent(routingKey string, payload map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.publisher.Publish(routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
