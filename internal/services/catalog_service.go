package services

import (
	"fmt"

	"computershop/internal/models"
	"computershop/internal/repositories"
)

// CatalogService handles business logic for products, categories and
// images: storefront reads plus the admin-side catalog management.
type CatalogService struct {
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
	imageRepo    repositories.ImageRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(productRepo repositories.ProductRepository, categoryRepo repositories.CategoryRepository, imageRepo repositories.ImageRepository) *CatalogService {
	return &CatalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		imageRepo:    imageRepo,
	}
}

// ListProducts retrieves products matching the query.
func (s *CatalogService) ListProducts(q repositories.ProductQuery) ([]models.Product, error) {
	return s.productRepo.List(q)
}

// GetProductByID retrieves a single product by its ID.
func (s *CatalogService) GetProductByID(id string) (*models.Product, error) {
	return s.productRepo.GetByID(id)
}

// CreateProduct creates a new product, resolving its image by URL. An
// empty URL falls back to the placeholder image.
func (s *CatalogService) CreateProduct(product *models.Product, imageURL string) error {
	if product.Price <= 0 {
		return fmt.Errorf("price must be positive: %w", models.ErrValidation)
	}
	if product.Stock < 0 {
		return fmt.Errorf("stock must not be negative: %w", models.ErrValidation)
	}
	if product.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(*product.CategoryID); err != nil {
			return err
		}
	}
	image, err := s.imageRepo.GetOrCreateByURL(imageURL)
	if err != nil {
		return err
	}
	product.ImageID = &image.ID
	return s.productRepo.Create(product)
}

// UpdateProduct updates an existing product.
func (s *CatalogService) UpdateProduct(product *models.Product) error {
	if product.Price <= 0 {
		return fmt.Errorf("price must be positive: %w", models.ErrValidation)
	}
	if product.Stock < 0 {
		return fmt.Errorf("stock must not be negative: %w", models.ErrValidation)
	}
	return s.productRepo.Update(product)
}

// DeleteProduct deletes a product by its ID.
func (s *CatalogService) DeleteProduct(id string) error {
	return s.productRepo.Delete(id)
}

// DecreaseStock removes qty units from a product's stock, failing with
// ErrInsufficientStock when fewer than qty remain.
func (s *CatalogService) DecreaseStock(productID string, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("quantity must be positive: %w", models.ErrValidation)
	}
	return s.productRepo.AdjustStock(productID, -qty)
}

// IncreaseStock adds qty units to a product's stock, used for restocks
// and cancelled orders.
func (s *CatalogService) IncreaseStock(productID string, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("quantity must be positive: %w", models.ErrValidation)
	}
	return s.productRepo.AdjustStock(productID, qty)
}

// GetAllCategories retrieves all categories ordered by name.
func (s *CatalogService) GetAllCategories() ([]models.Category, error) {
	return s.categoryRepo.GetAll()
}

// GetCategoryByID retrieves a single category by its ID.
func (s *CatalogService) GetCategoryByID(id string) (*models.Category, error) {
	return s.categoryRepo.GetByID(id)
}

// CreateCategory creates a new category with a unique name.
func (s *CatalogService) CreateCategory(category *models.Category) error {
	if existing, err := s.categoryRepo.GetByName(category.Name); err == nil && existing != nil {
		return fmt.Errorf("category name %q already exists: %w", category.Name, models.ErrConflict)
	}
	return s.categoryRepo.Create(category)
}

// UpdateCategory updates a category, keeping names unique.
func (s *CatalogService) UpdateCategory(id string, name, description string) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if name != category.Name {
		if existing, err := s.categoryRepo.GetByName(name); err == nil && existing != nil {
			return nil, fmt.Errorf("category name %q already exists: %w", name, models.ErrConflict)
		}
	}
	category.Name = name
	category.Description = description
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory deletes a category. Deletion is blocked while products
// still reference it.
func (s *CatalogService) DeleteCategory(id string) error {
	if _, err := s.categoryRepo.GetByID(id); err != nil {
		return err
	}
	count, err := s.categoryRepo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("category has %d products, move or delete them first: %w", count, models.ErrConflict)
	}
	return s.categoryRepo.Delete(id)
}
