package repositories

import (
	"context"

	"istore-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// voucherRepository implements VoucherRepository interface
type voucherRepository struct {
	db *gorm.DB
}

// NewVoucherRepository creates a new voucher repository
func NewVoucherRepository(db *gorm.DB) VoucherRepository {
	return &voucherRepository{db: db}
}

// Create creates a new registry voucher
func (r *voucherRepository) Create(ctx context.Context, voucher *models.Voucher) error {
	return r.db.WithContext(ctx).Create(voucher).Error
}

// GetByCode gets a voucher by its promotional code
func (r *voucherRepository) GetByCode(ctx context.Context, code string) (*models.Voucher, error) {
	var voucher models.Voucher
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&voucher).Error
	if err != nil {
		return nil, err
	}
	return &voucher, nil
}

// List lists all vouchers, newest first
func (r *voucherRepository) List(ctx context.Context) ([]*models.Voucher, error) {
	var vouchers []*models.Voucher
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&vouchers).Error
	return vouchers, err
}

// ListAvailable lists active vouchers with remaining quantity
func (r *voucherRepository) ListAvailable(ctx context.Context) ([]*models.Voucher, error) {
	var vouchers []*models.Voucher
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND quantity > 0", true).
		Find(&vouchers).Error
	return vouchers, err
}

// DecrementQuantity decrements remaining quantity by one in a guarded
// update so redemptions cannot take the registry below zero
func (r *voucherRepository) DecrementQuantity(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Voucher{}).
		Where("id = ? AND quantity > 0", id).
		UpdateColumn("quantity", gorm.Expr("quantity - 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeactivateDepleted deactivates vouchers whose quantity reached zero
func (r *voucherRepository) DeactivateDepleted(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Voucher{}).
		Where("is_active = ? AND quantity <= 0", true).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}

// Count counts all vouchers
func (r *voucherRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Voucher{}).Count(&count).Error
	return count, err
}
