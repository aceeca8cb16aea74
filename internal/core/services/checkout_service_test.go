package services

import (
	"context"
	"errors"
	"testing"

	"istore-api/internal/adapters/persistence/models"
	"istore-api/internal/config"
	"istore-api/internal/core/domain"
)

func checkoutInput(items ...CheckoutItemInput) *CheckoutInput {
	return &CheckoutInput{
		RecipientName:    "Nguyen Van An",
		RecipientPhone:   "0901234567",
		RecipientAddress: "1 Le Loi, Q1, TP.HCM",
		PaymentMethod:    "cod",
		Items:            items,
	}
}

func TestPlaceOrderRepricesFromCatalog(t *testing.T) {
	env := newFakeEnv()
	env.seedProduct("Widget", 100, 5)
	svc := NewCheckoutService(env.tx, testConfig())

	order, err := svc.PlaceOrder(context.Background(), checkoutInput(
		CheckoutItemInput{Name: "Widget", Quantity: 3},
	), domain.Guest())
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}

	if order.TotalAmountNumeric != 300 {
		t.Errorf("expected subtotal 300, got %d", order.TotalAmountNumeric)
	}
	if order.FinalAmount != 300 {
		t.Errorf("expected final amount 300, got %d", order.FinalAmount)
	}
	if order.Status != domain.OrderStatusPending {
		t.Errorf("expected status Pending, got %s", order.Status)
	}
	if order.UserID != nil {
		t.Error("guest order should have no owner")
	}
	if len(order.Items) != 1 || order.Items[0].Price != "100 ₫" || order.Items[0].Qty != 3 {
		t.Errorf("unexpected item snapshot: %+v", order.Items)
	}

	product, _ := env.products.GetByName(context.Background(), "Widget")
	if product.Stock != 2 {
		t.Errorf("expected stock 2 after checkout, got %d", product.Stock)
	}
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	env := newFakeEnv()
	env.seedProduct("Widget", 100, 5)
	svc := NewCheckoutService(env.tx, testConfig())

	_, err := svc.PlaceOrder(context.Background(), checkoutInput(
		CheckoutItemInput{Name: "Widget", Quantity: 10},
	), domain.Guest())

	var stockErr *domain.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if stockErr.Available != 5 || stockErr.Requested != 10 {
		t.Errorf("unexpected error detail: %+v", stockErr)
	}

	product, _ := env.products.GetByName(context.Background(), "Widget")
	if product.Stock != 5 {
		t.Errorf("rejected checkout must not touch stock, got %d", product.Stock)
	}
	if len(env.orders.orders) != 0 {
		t.Error("rejected checkout must not persist an order")
	}
}

func TestPlaceOrderUnknownProduct(t *testing.T) {
	env := newFakeEnv()
	svc := NewCheckoutService(env.tx, testConfig())

	_, err := svc.PlaceOrder(context.Background(), checkoutInput(
		CheckoutItemInput{Name: "Ghost Phone", Quantity: 1},
	), domain.Guest())

	var notFound *domain.ProductNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ProductNotFoundError, got %v", err)
	}
	if notFound.Name != "Ghost Phone" {
		t.Errorf("expected error to name the product, got %q", notFound.Name)
	}
}

func TestPlaceOrderRejectsEmptyAndInvalidLines(t *testing.T) {
	env := newFakeEnv()
	svc := NewCheckoutService(env.tx, testConfig())

	if _, err := svc.PlaceOrder(context.Background(), checkoutInput(), domain.Guest()); !errors.Is(err, domain.ErrEmptyOrder) {
		t.Errorf("expected ErrEmptyOrder, got %v", err)
	}

	_, err := svc.PlaceOrder(context.Background(), checkoutInput(
		CheckoutItemInput{Name: "Widget", Quantity: 0},
	), domain.Guest())
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for zero quantity, got %v", err)
	}
}

func TestPlaceOrderAppliesWalletVoucher(t *testing.T) {
	env := newFakeEnv()
	env.seedProduct("iPhone 15", 300000, 10)
	user := env.seedUser(domain.RankVIP, 0, 0)
	entry := env.seedWalletVoucher(user.ID, "SAVE50", 50000, false)
	svc := NewCheckoutService(env.tx, testConfig())
	caller := &domain.Caller{UserID: user.ID, Role: domain.RoleUser}

	input := checkoutInput(CheckoutItemInput{Name: "iPhone 15", Quantity: 1})
	input.AppliedVoucher = "SAVE50"

	order, err := svc.PlaceOrder(context.Background(), input, caller)
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}

	if order.FinalAmount != 250000 {
		t.Errorf("expected final amount 250000, got %d", order.FinalAmount)
	}
	if order.AppliedVoucher == nil || *order.AppliedVoucher != "SAVE50" {
		t.Errorf("expected applied voucher SAVE50, got %v", order.AppliedVoucher)
	}
	if !entry.IsUsed {
		t.Error("wallet copy should be marked used")
	}

	// Replay with the now-used copy: checkout proceeds at full price
	order2, err := svc.PlaceOrder(context.Background(), input, caller)
	if err != nil {
		t.Fatalf("second PlaceOrder failed: %v", err)
	}
	if order2.FinalAmount != 300000 {
		t.Errorf("used voucher should give no discount, got %d", order2.FinalAmount)
	}
	if order2.AppliedVoucher != nil {
		t.Errorf("used voucher should not be recorded, got %v", order2.AppliedVoucher)
	}
}

func TestPlaceOrderStrictModeRejectsUnownedVoucher(t *testing.T) {
	env := newFakeEnv()
	env.seedProduct("iPhone 15", 300000, 10)
	user := env.seedUser(domain.RankSilver, 0, 0)
	cfg := testConfig()
	cfg.Loyalty.StrictVouchers = true
	svc := NewCheckoutService(env.tx, cfg)

	input := checkoutInput(CheckoutItemInput{Name: "iPhone 15", Quantity: 1})
	input.AppliedVoucher = "NOTMINE"

	_, err := svc.PlaceOrder(context.Background(), input, &domain.Caller{UserID: user.ID, Role: domain.RoleUser})
	if !errors.Is(err, domain.ErrVoucherNotOwned) {
		t.Fatalf("expected ErrVoucherNotOwned, got %v", err)
	}

	product, _ := env.products.GetByName(context.Background(), "iPhone 15")
	if product.Stock != 10 {
		t.Errorf("rejected checkout must not touch stock, got %d", product.Stock)
	}
	if len(env.orders.orders) != 0 {
		t.Error("rejected checkout must not persist an order")
	}
}

func TestPlaceOrderGuestIgnoresVoucher(t *testing.T) {
	env := newFakeEnv()
	env.seedProduct("AirPods Pro", 6000000, 4)
	svc := NewCheckoutService(env.tx, testConfig())

	input := checkoutInput(CheckoutItemInput{Name: "AirPods Pro", Quantity: 1})
	input.AppliedVoucher = "SAVE50"

	order, err := svc.PlaceOrder(context.Background(), input, domain.Guest())
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}
	if order.FinalAmount != 6000000 || order.AppliedVoucher != nil {
		t.Errorf("guest voucher must be ignored: final=%d applied=%v", order.FinalAmount, order.AppliedVoucher)
	}
}

func TestPlaceOrderCreditsLoyaltyAtCheckout(t *testing.T) {
	env := newFakeEnv()
	env.seedProduct("MacBook Pro 14", 22000000, 3)
	user := env.seedUser(domain.RankSilver, 0, 0)
	svc := NewCheckoutService(env.tx, testConfig())

	order, err := svc.PlaceOrder(context.Background(), checkoutInput(
		CheckoutItemInput{Name: "MacBook Pro 14", Quantity: 1},
	), &domain.Caller{UserID: user.ID, Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}

	if !order.LoyaltyCredited {
		t.Error("checkout accrual should mark the order credited")
	}
	if user.Points != 2200 {
		t.Errorf("expected 2200 points, got %d", user.Points)
	}
	if user.TotalSpending != 22000000 {
		t.Errorf("expected spending 22000000, got %d", user.TotalSpending)
	}
	if user.Rank != string(domain.RankGold) {
		t.Errorf("expected rank Gold, got %s", user.Rank)
	}
}

func TestPlaceOrderCompletionModeDefersLoyalty(t *testing.T) {
	env := newFakeEnv()
	env.seedProduct("MacBook Pro 14", 22000000, 3)
	user := env.seedUser(domain.RankSilver, 0, 0)
	cfg := testConfig()
	cfg.Loyalty.AccrualMode = config.AccrualOnCompletion
	svc := NewCheckoutService(env.tx, cfg)

	order, err := svc.PlaceOrder(context.Background(), checkoutInput(
		CheckoutItemInput{Name: "MacBook Pro 14", Quantity: 1},
	), &domain.Caller{UserID: user.ID, Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}

	if order.LoyaltyCredited {
		t.Error("completion accrual must not credit at checkout")
	}
	if user.Points != 0 || user.TotalSpending != 0 {
		t.Errorf("user should be untouched at checkout: points=%d spending=%d", user.Points, user.TotalSpending)
	}
}

func TestPlaceOrderClearsCart(t *testing.T) {
	env := newFakeEnv()
	product := env.seedProduct("iPad Air", 15000000, 8)
	user := env.seedUser(domain.RankSilver, 0, 0)

	cart := &models.Cart{UserID: user.ID}
	_ = env.carts.Create(context.Background(), cart)
	_ = env.carts.AddItem(context.Background(), &models.CartItem{
		CartID: cart.ID, ProductID: product.ID, Name: product.Name, Quantity: 2, Price: product.Price,
	})

	svc := NewCheckoutService(env.tx, testConfig())
	_, err := svc.PlaceOrder(context.Background(), checkoutInput(
		CheckoutItemInput{Name: "iPad Air", Quantity: 1},
	), &domain.Caller{UserID: user.ID, Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}

	if _, err := env.carts.GetByUserID(context.Background(), user.ID); err == nil {
		t.Error("checkout should consume the cart")
	}
}

func TestPlaceOrderDiscountNeverGoesNegative(t *testing.T) {
	env := newFakeEnv()
	env.seedProduct("Cable", 1000, 10)
	user := env.seedUser(domain.RankSilver, 0, 0)
	env.seedWalletVoucher(user.ID, "BIG", 50000, false)
	svc := NewCheckoutService(env.tx, testConfig())

	input := checkoutInput(CheckoutItemInput{Name: "Cable", Quantity: 1})
	input.AppliedVoucher = "BIG"

	order, err := svc.PlaceOrder(context.Background(), input, &domain.Caller{UserID: user.ID, Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}
	if order.FinalAmount != 0 {
		t.Errorf("discount above subtotal should floor at 0, got %d", order.FinalAmount)
	}
}
