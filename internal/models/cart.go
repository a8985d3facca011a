package models

import "time"

// Cart is the working set of items a user intends to purchase. It is
// keyed either by user ID (persisted carts) or by session token
// (ephemeral carts); the key lives in the repository, not here.
type Cart struct {
	ID        string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string     `json:"user_id" gorm:"uniqueIndex;type:varchar(36)"`
	Items     []CartItem `json:"items" gorm:"foreignKey:CartID"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem is one (product, quantity) line. Price is the product's price
// snapshotted when the line was added.
type CartItem struct {
	ID        string   `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CartID    string   `json:"cart_id" gorm:"index;type:varchar(36)"`
	ProductID string   `json:"product_id" gorm:"type:varchar(36)" validate:"required"`
	Quantity  int      `json:"quantity" validate:"gte=1"`
	Price     float64  `json:"price"`
	Product   *Product `json:"product,omitempty"`
}

// Subtotal is the line's contribution to the cart total.
func (i CartItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Total sums the subtotals of all lines.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}

// ItemCount is the number of units across all lines.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}
