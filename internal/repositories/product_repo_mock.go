package repositories

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"computershop/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products map[string]models.Product
	order    []string // insertion order, so List is stable
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// List returns products matching the query.
func (r *MockProductRepository) List(q ProductQuery) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.order))
	for _, id := range r.order {
		p, ok := r.products[id]
		if !ok {
			continue
		}
		if q.Keyword != "" {
			kw := strings.ToLower(q.Keyword)
			if !strings.Contains(strings.ToLower(p.Name), kw) &&
				!strings.Contains(strings.ToLower(p.Description), kw) {
				continue
			}
		}
		if q.CategoryID != "" && (p.CategoryID == nil || *p.CategoryID != q.CategoryID) {
			continue
		}
		if q.MinPrice != nil && p.Price < *q.MinPrice {
			continue
		}
		if q.MaxPrice != nil && p.Price > *q.MaxPrice {
			continue
		}
		productList = append(productList, p)
	}

	switch q.Sort {
	case SortByName:
		sort.SliceStable(productList, func(i, j int) bool { return productList[i].Name < productList[j].Name })
	case SortByPriceAsc:
		sort.SliceStable(productList, func(i, j int) bool { return productList[i].Price < productList[j].Price })
	case SortByPriceDesc:
		sort.SliceStable(productList, func(i, j int) bool { return productList[i].Price > productList[j].Price })
	case SortByPopularity:
		sort.SliceStable(productList, func(i, j int) bool { return productList[i].Stock > productList[j].Stock })
	}

	if q.Limit > 0 && len(productList) > q.Limit {
		productList = productList[:q.Limit]
	}
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, models.ErrNotFound)
	}
	return &product, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if _, ok := r.products[product.ID]; !ok {
		r.order = append(r.order, product.ID)
	}
	r.products[product.ID] = *product
	return nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return fmt.Errorf("product %s: %w", product.ID, models.ErrNotFound)
	}
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("product %s: %w", id, models.ErrNotFound)
	}
	delete(r.products, id)
	return nil
}

// AdjustStock applies a stock delta, refusing to go below zero.
func (r *MockProductRepository) AdjustStock(id string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.adjustStockLocked(id, delta)
}

func (r *MockProductRepository) adjustStockLocked(id string, delta int) error {
	product, ok := r.products[id]
	if !ok {
		return fmt.Errorf("product %s: %w", id, models.ErrNotFound)
	}
	if product.Stock+delta < 0 {
		return fmt.Errorf("product %s (requested: %d, available: %d): %w",
			product.Name, -delta, product.Stock, models.ErrInsufficientStock)
	}
	product.Stock += delta
	r.products[id] = product
	return nil
}

// Count returns the number of products.
func (r *MockProductRepository) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.products)), nil
}

// CountInStock returns the number of products with stock remaining.
func (r *MockProductRepository) CountInStock() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, p := range r.products {
		if p.Stock > 0 {
			count++
		}
	}
	return count, nil
}

// ListLowStock returns products below the stock threshold, scarcest first.
func (r *MockProductRepository) ListLowStock(threshold, limit int) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var productList []models.Product
	for _, id := range r.order {
		if p, ok := r.products[id]; ok && p.Stock < threshold {
			productList = append(productList, p)
		}
	}
	sort.SliceStable(productList, func(i, j int) bool { return productList[i].Stock < productList[j].Stock })
	if limit > 0 && len(productList) > limit {
		productList = productList[:limit]
	}
	return productList, nil
}
