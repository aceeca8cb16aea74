package services

import (
	"context"

	"istore-api/internal/adapters/persistence/repositories"
	"istore-api/internal/pkg/currency"
)

// Products at or below this stock level show up on the dashboard
const lowStockThreshold = 5

// DashboardService aggregates store statistics for the admin view
type DashboardService struct {
	userRepo    repositories.UserRepository
	productRepo repositories.ProductRepository
	voucherRepo repositories.VoucherRepository
	orderRepo   repositories.OrderRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	userRepo repositories.UserRepository,
	productRepo repositories.ProductRepository,
	voucherRepo repositories.VoucherRepository,
	orderRepo repositories.OrderRepository,
) *DashboardService {
	return &DashboardService{
		userRepo:    userRepo,
		productRepo: productRepo,
		voucherRepo: voucherRepo,
		orderRepo:   orderRepo,
	}
}

// AdminDashboardData represents admin dashboard data
type AdminDashboardData struct {
	// Store totals
	TotalUsers    int64 `json:"total_users"`
	TotalProducts int64 `json:"total_products"`
	TotalVouchers int64 `json:"total_vouchers"`
	TotalOrders   int64 `json:"total_orders"`

	// Order statistics
	OrdersByStatus         map[string]int64 `json:"orders_by_status"`
	CompletedRevenue       int64            `json:"completed_revenue"`
	CompletedRevenueString string           `json:"completed_revenue_string"`

	// Inventory alerts
	LowStockProducts []LowStockProduct `json:"low_stock_products"`
}

// LowStockProduct represents a product running out of stock
type LowStockProduct struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

// GetAdminDashboard gets admin dashboard statistics
func (s *DashboardService) GetAdminDashboard(ctx context.Context) (*AdminDashboardData, error) {
	data := &AdminDashboardData{}

	var err error
	if data.TotalUsers, err = s.userRepo.Count(ctx); err != nil {
		return nil, err
	}
	if data.TotalProducts, err = s.productRepo.Count(ctx); err != nil {
		return nil, err
	}
	if data.TotalVouchers, err = s.voucherRepo.Count(ctx); err != nil {
		return nil, err
	}

	if data.OrdersByStatus, err = s.orderRepo.CountByStatus(ctx); err != nil {
		return nil, err
	}
	for _, count := range data.OrdersByStatus {
		data.TotalOrders += count
	}

	if data.CompletedRevenue, err = s.orderRepo.SumCompletedRevenue(ctx); err != nil {
		return nil, err
	}
	data.CompletedRevenueString = currency.FormatVND(data.CompletedRevenue)

	lowStock, err := s.productRepo.ListLowStock(ctx, lowStockThreshold)
	if err != nil {
		return nil, err
	}
	data.LowStockProducts = make([]LowStockProduct, 0, len(lowStock))
	for _, p := range lowStock {
		data.LowStockProducts = append(data.LowStockProducts, LowStockProduct{
			ID:    p.ID,
			Name:  p.Name,
			Stock: p.Stock,
		})
	}

	return data, nil
}
