package repositories

import (
	"fmt"

	"computershop/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// List retrieves products matching the query from the database.
func (r *GORMProductRepository) List(q ProductQuery) ([]models.Product, error) {
	tx := r.db.Model(&models.Product{})

	if q.Keyword != "" {
		pattern := "%" + q.Keyword + "%"
		tx = tx.Where("lower(name) LIKE lower(?) OR lower(description) LIKE lower(?)", pattern, pattern)
	}
	if q.CategoryID != "" {
		tx = tx.Where("category_id = ?", q.CategoryID)
	}
	if q.MinPrice != nil {
		tx = tx.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		tx = tx.Where("price <= ?", *q.MaxPrice)
	}

	switch q.Sort {
	case SortByName:
		tx = tx.Order("name asc")
	case SortByPriceAsc:
		tx = tx.Order("price asc")
	case SortByPriceDesc:
		tx = tx.Order("price desc")
	case SortByPopularity:
		tx = tx.Order("stock desc")
	}

	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if q.IncludeRelations {
		tx = tx.Preload("Category").Preload("Image")
	}

	var products []models.Product
	if err := tx.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Category").Preload("Image").First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update updates an existing product in the database.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Save(product) // Save will update all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %s: %w", product.ID, models.ErrNotFound)
	}
	return nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %s: %w", id, models.ErrNotFound)
	}
	return nil
}

// AdjustStock applies a conditional stock delta. The WHERE clause on the
// decrement makes check-and-write a single statement, so concurrent
// checkouts cannot both pass the check and oversell.
func (r *GORMProductRepository) AdjustStock(id string, delta int) error {
	return adjustStock(r.db, id, delta)
}

// adjustStock is shared with the order repository, which runs the same
// statement inside its checkout transaction.
func adjustStock(db *gorm.DB, id string, delta int) error {
	tx := db.Model(&models.Product{}).Where("id = ?", id)
	if delta < 0 {
		tx = tx.Where("stock >= ?", -delta)
	}
	res := tx.UpdateColumn("stock", gorm.Expr("stock + ?", delta))
	if res.Error != nil {
		return fmt.Errorf("failed to adjust stock for product %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		var product models.Product
		if err := db.First(&product, "id = ?", id).Error; err != nil {
			return fmt.Errorf("product %s: %w", id, models.ErrNotFound)
		}
		return fmt.Errorf("product %s (requested: %d, available: %d): %w",
			product.Name, -delta, product.Stock, models.ErrInsufficientStock)
	}
	return nil
}

// Count returns the number of products.
func (r *GORMProductRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// CountInStock returns the number of products with stock remaining.
func (r *GORMProductRepository) CountInStock() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).Where("stock > 0").Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count in-stock products: %w", err)
	}
	return count, nil
}

// ListLowStock returns products whose stock is below the threshold,
// scarcest first.
func (r *GORMProductRepository) ListLowStock(threshold, limit int) ([]models.Product, error) {
	var products []models.Product
	tx := r.db.Where("stock < ?", threshold).Order("stock asc")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	if err := tx.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list low-stock products: %w", err)
	}
	return products, nil
}

// GORMImageRepository is a GORM implementation of ImageRepository.
type GORMImageRepository struct {
	db *gorm.DB
}

// NewGORMImageRepository creates a new instance of GORMImageRepository.
func NewGORMImageRepository(db *gorm.DB) *GORMImageRepository {
	return &GORMImageRepository{db: db}
}

// GetOrCreateByURL returns the image with the given URL, creating it on
// first use. An empty URL resolves to the placeholder image.
func (r *GORMImageRepository) GetOrCreateByURL(url string) (*models.Image, error) {
	if url == "" {
		url = models.PlaceholderImageURL
	}
	var image models.Image
	err := r.db.First(&image, "url = ?", url).Error
	if err == nil {
		return &image, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("failed to look up image by URL: %w", err)
	}
	image = models.Image{ID: uuid.New().String(), URL: url}
	if err := r.db.Create(&image).Error; err != nil {
		return nil, fmt.Errorf("failed to create image: %w", err)
	}
	return &image, nil
}
