package repositories

import (
	"fmt"
	"sync"
	"time"

	"computershop/internal/models"

	"github.com/google/uuid"
)

// SessionCartStore is an in-memory implementation of CartRepository keyed
// by session token. Carts live only as long as the process; guests who
// never log in shop against this store.
type SessionCartStore struct {
	carts map[string]*models.Cart
	mu    sync.RWMutex
}

// NewSessionCartStore creates a new instance of SessionCartStore.
func NewSessionCartStore() *SessionCartStore {
	return &SessionCartStore{
		carts: make(map[string]*models.Cart),
	}
}

// Get returns the session's cart, creating an empty one lazily. The
// returned cart is a copy; mutations go through the other methods.
func (s *SessionCartStore) Get(token string) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.getOrCreateLocked(token)
	copied := *cart
	copied.Items = append([]models.CartItem(nil), cart.Items...)
	return &copied, nil
}

// AddItem appends a new line to the session's cart.
func (s *SessionCartStore) AddItem(token string, item models.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.getOrCreateLocked(token)
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.CartID = cart.ID
	cart.Items = append(cart.Items, item)
	cart.UpdatedAt = time.Now()
	return nil
}

// UpdateItem sets the quantity of an existing line.
func (s *SessionCartStore) UpdateItem(token, itemID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.getOrCreateLocked(token)
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items[i].Quantity = quantity
			cart.UpdatedAt = time.Now()
			return nil
		}
	}
	return fmt.Errorf("cart item %s: %w", itemID, models.ErrNotFound)
}

// RemoveItem deletes a line from the session's cart.
func (s *SessionCartStore) RemoveItem(token, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.getOrCreateLocked(token)
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			cart.UpdatedAt = time.Now()
			return nil
		}
	}
	return fmt.Errorf("cart item %s: %w", itemID, models.ErrNotFound)
}

// Clear removes all lines from the session's cart. Idempotent.
func (s *SessionCartStore) Clear(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.getOrCreateLocked(token)
	cart.Items = cart.Items[:0]
	cart.UpdatedAt = time.Now()
	return nil
}

func (s *SessionCartStore) getOrCreateLocked(token string) *models.Cart {
	if cart, ok := s.carts[token]; ok {
		return cart
	}
	cart := &models.Cart{
		ID:        uuid.New().String(),
		UserID:    token,
		Items:     []models.CartItem{},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	s.carts[token] = cart
	return cart
}
