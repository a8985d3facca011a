package repositories

import "computershop/internal/models"

// CartRepository defines the interface for cart data access. The key is
// whatever identifies the cart's owner: a user ID for the persisted store
// or a session token for the ephemeral store. The order-placement
// workflow depends only on this interface, never on the backing store.
type CartRepository interface {
	// Get returns the cart for the key, creating an empty one lazily.
	Get(key string) (*models.Cart, error)
	// AddItem appends a new line. Merging into an existing line is the
	// cart service's job.
	AddItem(key string, item models.CartItem) error
	// UpdateItem sets the quantity of an existing line.
	UpdateItem(key, itemID string, quantity int) error
	RemoveItem(key, itemID string) error
	// Clear removes all lines. Clearing an already-empty cart is not an
	// error.
	Clear(key string) error
}
