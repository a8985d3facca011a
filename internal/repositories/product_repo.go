package repositories

import (
	"computershop/internal/models"
)

// Product sort orders accepted by ProductQuery.Sort.
const (
	SortByName       = "name"
	SortByPriceAsc   = "price_asc"
	SortByPriceDesc  = "price_desc"
	SortByPopularity = "popularity" // stock descending, a proxy for demand
)

// ProductQuery describes a catalog read. Zero values mean "no filter";
// relation loading is explicit so the I/O cost is visible at the call site.
type ProductQuery struct {
	Keyword          string   // case-insensitive match over name and description
	CategoryID       string   // restrict to one category
	MinPrice         *float64 // inclusive lower price bound
	MaxPrice         *float64 // inclusive upper price bound
	Sort             string   // one of the SortBy* constants, or "" for storage order
	Limit            int      // 0 means no limit
	IncludeRelations bool     // load Category and Image alongside each product
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	List(q ProductQuery) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
	// AdjustStock applies a stock delta to one product. A negative delta
	// that would take stock below zero fails with ErrInsufficientStock
	// and leaves the row unchanged.
	AdjustStock(id string, delta int) error
	Count() (int64, error)
	CountInStock() (int64, error)
	ListLowStock(threshold, limit int) ([]models.Product, error)
}

// ImageRepository resolves product images by URL.
type ImageRepository interface {
	GetOrCreateByURL(url string) (*models.Image, error)
}
