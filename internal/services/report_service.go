package services

import (
	"computershop/internal/models"
	"computershop/internal/repositories"
)

// DashboardStats aggregates the read-only numbers the admin dashboard
// displays.
type DashboardStats struct {
	TotalUsers      int64            `json:"total_users"`
	TotalProducts   int64            `json:"total_products"`
	TotalCategories int64            `json:"total_categories"`
	TotalOrders     int64            `json:"total_orders"`
	TotalRevenue    float64          `json:"total_revenue"`
	InStockProducts int64            `json:"in_stock_products"`
	LowStock        []models.Product `json:"low_stock"`
	RecentOrders    []models.Order   `json:"recent_orders"`
}

// lowStockThreshold marks products the dashboard flags for restocking.
const lowStockThreshold = 5

// ReportService computes admin dashboard aggregates over the stores.
type ReportService struct {
	userRepo     repositories.UserRepository
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
	orderRepo    repositories.OrderRepository
}

// NewReportService creates a new ReportService.
func NewReportService(userRepo repositories.UserRepository, productRepo repositories.ProductRepository, categoryRepo repositories.CategoryRepository, orderRepo repositories.OrderRepository) *ReportService {
	return &ReportService{
		userRepo:     userRepo,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		orderRepo:    orderRepo,
	}
}

// Dashboard gathers all dashboard numbers in one call. recentOrderLimit
// caps only the recent orders; the low-stock list is always complete.
func (s *ReportService) Dashboard(recentOrderLimit int) (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.TotalUsers, err = s.userRepo.Count(); err != nil {
		return nil, err
	}
	if stats.TotalProducts, err = s.productRepo.Count(); err != nil {
		return nil, err
	}
	if stats.TotalCategories, err = s.categoryRepo.Count(); err != nil {
		return nil, err
	}
	if stats.TotalOrders, err = s.orderRepo.Count(); err != nil {
		return nil, err
	}
	if stats.TotalRevenue, err = s.orderRepo.TotalRevenue(); err != nil {
		return nil, err
	}
	if stats.InStockProducts, err = s.productRepo.CountInStock(); err != nil {
		return nil, err
	}
	if stats.LowStock, err = s.productRepo.ListLowStock(lowStockThreshold, 0); err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.GetAll()
	if err != nil {
		return nil, err
	}
	if recentOrderLimit > 0 && len(orders) > recentOrderLimit {
		orders = orders[:recentOrderLimit]
	}
	stats.RecentOrders = orders
	return stats, nil
}
