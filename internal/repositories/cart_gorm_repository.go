package repositories

import (
	"fmt"

	"computershop/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository keyed by
// user ID. One cart row per user, items in their own table.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{db: db}
}

// Get returns the user's cart with its items, creating an empty cart on
// first use.
func (r *GORMCartRepository) Get(userID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Preload("Items").Preload("Items.Product").First(&cart, "user_id = ?", userID).Error
	if err == nil {
		return &cart, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("failed to get cart for user %s: %w", userID, err)
	}
	cart = models.Cart{ID: uuid.New().String(), UserID: userID, Items: []models.CartItem{}}
	if err := r.db.Create(&cart).Error; err != nil {
		return nil, fmt.Errorf("failed to create cart for user %s: %w", userID, err)
	}
	return &cart, nil
}

// AddItem appends a new line to the user's cart.
func (r *GORMCartRepository) AddItem(userID string, item models.CartItem) error {
	cart, err := r.Get(userID)
	if err != nil {
		return err
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.CartID = cart.ID
	item.Product = nil // association is loaded, never written, from here
	if err := r.db.Create(&item).Error; err != nil {
		return fmt.Errorf("failed to add cart item: %w", err)
	}
	return r.touch(cart.ID)
}

// UpdateItem sets the quantity of an existing line.
func (r *GORMCartRepository) UpdateItem(userID, itemID string, quantity int) error {
	cart, err := r.Get(userID)
	if err != nil {
		return err
	}
	res := r.db.Model(&models.CartItem{}).
		Where("id = ? AND cart_id = ?", itemID, cart.ID).
		Update("quantity", quantity)
	if res.Error != nil {
		return fmt.Errorf("failed to update cart item %s: %w", itemID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item %s: %w", itemID, models.ErrNotFound)
	}
	return r.touch(cart.ID)
}

// RemoveItem deletes a line from the user's cart.
func (r *GORMCartRepository) RemoveItem(userID, itemID string) error {
	cart, err := r.Get(userID)
	if err != nil {
		return err
	}
	res := r.db.Delete(&models.CartItem{}, "id = ? AND cart_id = ?", itemID, cart.ID)
	if res.Error != nil {
		return fmt.Errorf("failed to remove cart item %s: %w", itemID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item %s: %w", itemID, models.ErrNotFound)
	}
	return r.touch(cart.ID)
}

// Clear removes all lines from the user's cart. Idempotent.
func (r *GORMCartRepository) Clear(userID string) error {
	cart, err := r.Get(userID)
	if err != nil {
		return err
	}
	if err := r.db.Delete(&models.CartItem{}, "cart_id = ?", cart.ID).Error; err != nil {
		return fmt.Errorf("failed to clear cart for user %s: %w", userID, err)
	}
	return r.touch(cart.ID)
}

func (r *GORMCartRepository) touch(cartID string) error {
	if err := r.db.Model(&models.Cart{}).Where("id = ?", cartID).
		Update("updated_at", gorm.Expr("CURRENT_TIMESTAMP")).Error; err != nil {
		return fmt.Errorf("failed to touch cart %s: %w", cartID, err)
	}
	return nil
}
