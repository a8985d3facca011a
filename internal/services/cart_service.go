package services

import (
	"fmt"

	"computershop/internal/models"
	"computershop/internal/repositories"
)

// CartService maintains the working set of (product, quantity) lines a
// shopper intends to purchase. Stock checks here are advisory; the
// authoritative check happens again at order placement.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart returns the cart for the key with its derived total filled in.
func (s *CartService) GetCart(key string) (*models.Cart, error) {
	return s.cartRepo.Get(key)
}

// AddItem puts qty units of a product into the cart. If the product is
// already in the cart the line quantity grows; otherwise a new line is
// appended with the product's current price snapshotted.
func (s *CartService) AddItem(key, productID string, qty int) (*models.Cart, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("quantity must be positive: %w", models.ErrValidation)
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.Get(key)
	if err != nil {
		return nil, err
	}

	var existing *models.CartItem
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			existing = &cart.Items[i]
			break
		}
	}

	newQty := qty
	if existing != nil {
		newQty += existing.Quantity
	}
	if product.Stock < newQty {
		return nil, fmt.Errorf("product %s (requested: %d, available: %d): %w",
			product.Name, newQty, product.Stock, models.ErrInsufficientStock)
	}

	if existing != nil {
		err = s.cartRepo.UpdateItem(key, existing.ID, newQty)
	} else {
		err = s.cartRepo.AddItem(key, models.CartItem{
			ProductID: productID,
			Quantity:  qty,
			Price:     product.Price,
		})
	}
	if err != nil {
		return nil, err
	}
	return s.cartRepo.Get(key)
}

// UpdateItem sets a line's quantity. A quantity of zero or less removes
// the line.
func (s *CartService) UpdateItem(key, itemID string, qty int) (*models.Cart, error) {
	if qty <= 0 {
		if err := s.cartRepo.RemoveItem(key, itemID); err != nil {
			return nil, err
		}
		return s.cartRepo.Get(key)
	}

	cart, err := s.cartRepo.Get(key)
	if err != nil {
		return nil, err
	}
	var line *models.CartItem
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			line = &cart.Items[i]
			break
		}
	}
	if line == nil {
		return nil, fmt.Errorf("cart item %s: %w", itemID, models.ErrNotFound)
	}

	product, err := s.productRepo.GetByID(line.ProductID)
	if err != nil {
		return nil, err
	}
	if product.Stock < qty {
		return nil, fmt.Errorf("product %s (requested: %d, available: %d): %w",
			product.Name, qty, product.Stock, models.ErrInsufficientStock)
	}

	if err := s.cartRepo.UpdateItem(key, itemID, qty); err != nil {
		return nil, err
	}
	return s.cartRepo.Get(key)
}

// RemoveItem deletes a line from the cart.
func (s *CartService) RemoveItem(key, itemID string) error {
	return s.cartRepo.RemoveItem(key, itemID)
}

// Clear empties the cart. Clearing an already-empty cart is not an error.
func (s *CartService) Clear(key string) error {
	return s.cartRepo.Clear(key)
}
