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

	"gorm.io/gorm"
)

// Order errors
var (
	ErrOrderNotFound = errors.New("order not found")
)

// OrderService handles order lookups and admin status transitions
type OrderService struct {
	orderRepo repositories.OrderRepository
	tx        repositories.TxManager
	cfg       *config.Config
}

// NewOrderService creates a new order service
func NewOrderService(orderRepo repositories.OrderRepository, tx repositories.TxManager, cfg *config.Config) *OrderService {
	return &OrderService{orderRepo: orderRepo, tx: tx, cfg: cfg}
}

// GetByID looks up one order with its item snapshot
func (s *OrderService) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// ListByUser lists a user's own orders, newest first
func (s *OrderService) ListByUser(ctx context.Context, userID uint) ([]*models.Order, error) {
	return s.orderRepo.ListByUserID(ctx, userID)
}

// List lists all orders for the admin view, newest first
func (s *OrderService) List(ctx context.Context, offset, limit int) ([]*models.Order, int64, error) {
	return s.orderRepo.ListAll(ctx, offset, limit)
}

// UpdateStatus moves an order to a new status. Completed is terminal:
// a completed order rejects any further transition. The first move to
// Completed credits the owner's loyalty, at most once per order, in
// the same transaction as the status write.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, status string) (*models.Order, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, domain.ErrInvalidInput
	}

	var updated *models.Order
	err := s.tx.WithinTx(ctx, func(store *repositories.Store) error {
		order, err := store.Orders.GetByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		if order.Status == domain.OrderStatusCompleted {
			return domain.ErrOrderAlreadyCompleted
		}

		order.Status = status

		if status == domain.OrderStatusCompleted && order.UserID != nil && !order.LoyaltyCredited {
			amount := order.FinalAmount
			if amount == 0 {
				amount = order.TotalAmountNumeric
			}

			user, err := store.Users.GetByID(ctx, *order.UserID)
			switch {
			case err == nil:
				creditLoyalty(user, amount, s.cfg.Loyalty)
				if err := store.Users.Update(ctx, user); err != nil {
					return err
				}
				order.LoyaltyCredited = true
			case errors.Is(err, gorm.ErrRecordNotFound):
				log.Printf("⚠️ Order #%d owner (user %d) no longer exists, skipping loyalty credit", order.ID, *order.UserID)
			default:
				return err
			}
		}

		if err := store.Orders.Update(ctx, order); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("📦 Order #%d status set to %s", updated.ID, updated.Status)
	return updated, nil
}
