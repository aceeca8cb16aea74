package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"istore-api/internal/adapters/persistence/models"
	"istore-api/internal/adapters/persistence/repositories"
	"istore-api/internal/config"
	"istore-api/internal/core/domain"
	"istore-api/internal/pkg/currency"

	"gorm.io/gorm"
)

// CheckoutService turns a validated request into a persisted order.
// Every mutation runs inside one transaction so a failed line leaves
// stock, wallet, cart and loyalty untouched.
type CheckoutService struct {
	tx  repositories.TxManager
	cfg *config.Config
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(tx repositories.TxManager, cfg *config.Config) *CheckoutService {
	return &CheckoutService{tx: tx, cfg: cfg}
}

// CheckoutItemInput is one requested line. Only name and quantity are
// trusted; price and image always come from the catalog.
type CheckoutItemInput struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// CheckoutInput represents a checkout request
type CheckoutInput struct {
	RecipientName    string              `json:"recipient_name"`
	RecipientPhone   string              `json:"recipient_phone"`
	RecipientAddress string              `json:"recipient_address"`
	RecipientNotes   string              `json:"recipient_notes"`
	PaymentMethod    string              `json:"payment_method"`
	Items            []CheckoutItemInput `json:"items"`
	AppliedVoucher   string              `json:"applied_voucher"`
}

// PlaceOrder validates the requested lines against the live catalog,
// re-prices them, applies at most one wallet voucher, decrements stock
// and persists the order snapshot. Authenticated callers also get their
// cart cleared and, in checkout accrual mode, loyalty credited. Guests
// get none of those side effects.
func (s *CheckoutService) PlaceOrder(ctx context.Context, input *CheckoutInput, caller *domain.Caller) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	for _, line := range input.Items {
		if strings.TrimSpace(line.Name) == "" || line.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
	}

	var order *models.Order
	err := s.tx.WithinTx(ctx, func(store *repositories.Store) error {
		// 1. Validate every line before any write. The first failure
		// names the offending product.
		products := make([]*models.Product, len(input.Items))
		for i, line := range input.Items {
			product, err := store.Products.GetByName(ctx, line.Name)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &domain.ProductNotFoundError{Name: line.Name}
				}
				return err
			}
			if product.Stock < line.Quantity {
				return &domain.InsufficientStockError{
					Name:      product.Name,
					Requested: line.Quantity,
					Available: product.Stock,
				}
			}
			products[i] = product
		}

		// 2. Authoritative re-pricing from the current catalog.
		var subtotal int64
		orderItems := make([]models.OrderItem, len(input.Items))
		for i, line := range input.Items {
			p := products[i]
			subtotal += p.Price * int64(line.Quantity)
			orderItems[i] = models.OrderItem{
				Name:  p.Name,
				Price: currency.FormatVND(p.Price),
				Qty:   line.Quantity,
				Image: p.ImageURL,
			}
		}

		// 3. Voucher: only an unused copy in the caller's own wallet
		// counts. Anything else is ignored, or rejects the whole order
		// in strict mode.
		var discount int64
		var appliedCode *string
		code := strings.TrimSpace(input.AppliedVoucher)
		if code != "" {
			if !caller.IsAuthenticated() {
				if s.cfg.Loyalty.StrictVouchers {
					return domain.ErrVoucherNotOwned
				}
				log.Printf("⚠️ Guest sent voucher '%s', ignoring", code)
			} else {
				entry, err := store.Wallet.GetUnused(ctx, caller.UserID, code)
				switch {
				case err == nil:
					if err := store.Wallet.MarkUsed(ctx, entry.ID); err != nil {
						return err
					}
					discount = entry.DiscountAmount
					appliedCode = &entry.Code
				case errors.Is(err, gorm.ErrRecordNotFound):
					if s.cfg.Loyalty.StrictVouchers {
						return domain.ErrVoucherNotOwned
					}
					log.Printf("⚠️ Voucher '%s' not in wallet of %s, ignoring", code, caller)
				default:
					return err
				}
			}
		}

		finalAmount := subtotal - discount
		if finalAmount < 0 {
			finalAmount = 0
		}

		// 4. Guarded stock decrements. A concurrent checkout may still
		// win the race after step 1; the conditional update keeps stock
		// from ever going negative.
		for i, line := range input.Items {
			ok, err := store.Products.DecrementStock(ctx, products[i].ID, line.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				available := 0
				if fresh, err := store.Products.GetByID(ctx, products[i].ID); err == nil {
					available = fresh.Stock
				}
				return &domain.InsufficientStockError{
					Name:      products[i].Name,
					Requested: line.Quantity,
					Available: available,
				}
			}
		}

		order = &models.Order{
			RecipientName:      input.RecipientName,
			RecipientPhone:     input.RecipientPhone,
			RecipientAddress:   input.RecipientAddress,
			RecipientNotes:     input.RecipientNotes,
			PaymentMethod:      input.PaymentMethod,
			Items:              orderItems,
			TotalAmountString:  currency.FormatVND(subtotal),
			TotalAmountNumeric: subtotal,
			FinalAmount:        finalAmount,
			AppliedVoucher:     appliedCode,
			Status:             domain.OrderStatusPending,
		}
		if caller.IsAuthenticated() {
			userID := caller.UserID
			order.UserID = &userID
		}

		// 5. Loyalty at checkout when configured so. LoyaltyCredited
		// keeps a later completion from crediting the same order again.
		if caller.IsAuthenticated() && s.cfg.Loyalty.AccrualMode == config.AccrualOnCheckout {
			user, err := store.Users.GetByID(ctx, caller.UserID)
			if err != nil {
				return err
			}
			creditLoyalty(user, finalAmount, s.cfg.Loyalty)
			if err := store.Users.Update(ctx, user); err != nil {
				return err
			}
			order.LoyaltyCredited = true
		}

		// 6. Persist the snapshot
		if err := store.Orders.Create(ctx, order); err != nil {
			return err
		}

		// 7. The purchase consumes the cart
		if caller.IsAuthenticated() {
			if err := store.Carts.Clear(ctx, caller.UserID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("🛒 Order #%d placed by %s (total %s)", order.ID, caller, order.TotalAmountString)
	return order, nil
}
