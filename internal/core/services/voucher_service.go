package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"istore-api/internal/adapters/persistence/models"
	"istore-api/internal/adapters/persistence/repositories"
	"istore-api/internal/core/domain"

	"gorm.io/gorm"
)

// VoucherService handles the voucher registry and point redemption
type VoucherService struct {
	voucherRepo repositories.VoucherRepository
	tx          repositories.TxManager
}

// NewVoucherService creates a new voucher service
func NewVoucherService(voucherRepo repositories.VoucherRepository, tx repositories.TxManager) *VoucherService {
	return &VoucherService{voucherRepo: voucherRepo, tx: tx}
}

// CreateVoucherInput represents admin voucher creation input
type CreateVoucherInput struct {
	Code           string `json:"code"`
	DiscountAmount int64  `json:"discount_amount"`
	PointsRequired int64  `json:"points_required"`
	Quantity       int    `json:"quantity"`
}

// RedeemResult is what a successful redemption returns: the new wallet
// entry plus the caller's remaining point balance.
type RedeemResult struct {
	Voucher         *models.WalletVoucher `json:"voucher"`
	RemainingPoints int64                 `json:"remaining_points"`
}

// ListAvailable lists vouchers a customer can still redeem
func (s *VoucherService) ListAvailable(ctx context.Context) ([]*models.Voucher, error) {
	return s.voucherRepo.ListAvailable(ctx)
}

// List lists every registry voucher for the admin view
func (s *VoucherService) List(ctx context.Context) ([]*models.Voucher, error) {
	return s.voucherRepo.List(ctx)
}

// Create adds a voucher to the registry
func (s *VoucherService) Create(ctx context.Context, input *CreateVoucherInput) (*models.Voucher, error) {
	code := strings.TrimSpace(input.Code)
	if code == "" || input.DiscountAmount <= 0 || input.PointsRequired < 0 || input.Quantity < 1 {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.voucherRepo.GetByCode(ctx, code); err == nil {
		return nil, domain.ErrDuplicateEntry
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	voucher := &models.Voucher{
		Code:           code,
		DiscountAmount: input.DiscountAmount,
		PointsRequired: input.PointsRequired,
		Quantity:       input.Quantity,
		IsActive:       true,
	}
	if err := s.voucherRepo.Create(ctx, voucher); err != nil {
		return nil, err
	}

	log.Printf("🎟️ Voucher created: %s (-%d ₫, %d pts, qty %d)", voucher.Code, voucher.DiscountAmount, voucher.PointsRequired, voucher.Quantity)
	return voucher, nil
}

// Redeem exchanges points for a wallet copy of the voucher. The point
// debit, the wallet append and the registry decrement commit together
// or not at all. A user holding an unused copy of the same code cannot
// take a second one.
func (s *VoucherService) Redeem(ctx context.Context, userID uint, code string) (*RedeemResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.ErrInvalidInput
	}

	var result *RedeemResult
	err := s.tx.WithinTx(ctx, func(store *repositories.Store) error {
		voucher, err := store.Vouchers.GetByCode(ctx, code)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrVoucherNotAvailable
			}
			return err
		}
		if !voucher.IsActive || voucher.Quantity <= 0 {
			return domain.ErrVoucherNotAvailable
		}

		owned, err := store.Wallet.HasUnused(ctx, userID, voucher.Code)
		if err != nil {
			return err
		}
		if owned {
			return domain.ErrVoucherAlreadyOwned
		}

		user, err := store.Users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if user.Points < voucher.PointsRequired {
			return domain.ErrNotEnoughPoints
		}

		user.Points -= voucher.PointsRequired
		if err := store.Users.Update(ctx, user); err != nil {
			return err
		}

		entry := &models.WalletVoucher{
			UserID:         userID,
			Code:           voucher.Code,
			DiscountAmount: voucher.DiscountAmount,
		}
		if err := store.Wallet.Append(ctx, entry); err != nil {
			return err
		}

		ok, err := store.Vouchers.DecrementQuantity(ctx, voucher.ID)
		if err != nil {
			return err
		}
		if !ok {
			// Lost the last copy to a concurrent redemption
			return domain.ErrVoucherNotAvailable
		}

		result = &RedeemResult{Voucher: entry, RemainingPoints: user.Points}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("🎟️ User %d redeemed voucher %s (%d pts left)", userID, code, result.RemainingPoints)
	return result, nil
}
