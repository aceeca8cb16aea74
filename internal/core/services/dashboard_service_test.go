package services

import (
	"context"
	"testing"

	"istore-api/internal/adapters/persistence/models"
	"istore-api/internal/core/domain"
)

func TestGetAdminDashboard(t *testing.T) {
	env := newFakeEnv()
	env.seedUser(domain.RankSilver, 0, 0)
	env.seedProduct("iPhone 15", 22000000, 2)
	env.seedProduct("MacBook Air", 25000000, 50)
	seedRegistryVoucher(env, "SAVE50", 50000, 100, 3, true)

	_ = env.orders.Create(context.Background(), &models.Order{Status: domain.OrderStatusPending, FinalAmount: 1000000})
	_ = env.orders.Create(context.Background(), &models.Order{Status: domain.OrderStatusCompleted, FinalAmount: 22000000})
	_ = env.orders.Create(context.Background(), &models.Order{Status: domain.OrderStatusCompleted, FinalAmount: 3000000})

	svc := NewDashboardService(env.users, env.products, env.vouchers, env.orders)
	data, err := svc.GetAdminDashboard(context.Background())
	if err != nil {
		t.Fatalf("GetAdminDashboard failed: %v", err)
	}

	if data.TotalUsers != 1 || data.TotalProducts != 2 || data.TotalVouchers != 1 {
		t.Errorf("unexpected totals: %+v", data)
	}
	if data.TotalOrders != 3 {
		t.Errorf("expected 3 orders, got %d", data.TotalOrders)
	}
	if data.OrdersByStatus[domain.OrderStatusCompleted] != 2 {
		t.Errorf("expected 2 completed orders, got %d", data.OrdersByStatus[domain.OrderStatusCompleted])
	}
	if data.CompletedRevenue != 25000000 {
		t.Errorf("expected revenue 25000000, got %d", data.CompletedRevenue)
	}
	if data.CompletedRevenueString != "25.000.000 ₫" {
		t.Errorf("unexpected revenue string %q", data.CompletedRevenueString)
	}
	if len(data.LowStockProducts) != 1 || data.LowStockProducts[0].Name != "iPhone 15" {
		t.Errorf("expected one low stock alert for iPhone 15, got %+v", data.LowStockProducts)
	}
}
