package repositories

import (
	"context"

	"istore-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID gets a user by ID
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail gets a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetWithVouchers gets a user with their voucher wallet preloaded
func (r *userRepository) GetWithVouchers(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("MyVouchers").Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update updates a user
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// List lists users with pagination
func (r *userRepository) List(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	var users []*models.User
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).Preload("MyVouchers").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// ExistsByEmail checks if email exists
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// Count counts all users
func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}

// walletVoucherRepository implements WalletVoucherRepository interface
type walletVoucherRepository struct {
	db *gorm.DB
}

// NewWalletVoucherRepository creates a new wallet voucher repository
func NewWalletVoucherRepository(db *gorm.DB) WalletVoucherRepository {
	return &walletVoucherRepository{db: db}
}

// Append adds a redeemed voucher copy to a user's wallet
func (r *walletVoucherRepository) Append(ctx context.Context, entry *models.WalletVoucher) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// GetUnused gets the user's unused wallet copy of a code, if any
func (r *walletVoucherRepository) GetUnused(ctx context.Context, userID uint, code string) (*models.WalletVoucher, error) {
	var entry models.WalletVoucher
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND code = ? AND is_used = ?", userID, code, false).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// HasUnused checks whether the user holds an unused copy of a code
func (r *walletVoucherRepository) HasUnused(ctx context.Context, userID uint, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.WalletVoucher{}).
		Where("user_id = ? AND code = ? AND is_used = ?", userID, code, false).
		Count(&count).Error
	return count > 0, err
}

// MarkUsed consumes a wallet voucher copy
func (r *walletVoucherRepository) MarkUsed(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.WalletVoucher{}).
		Where("id = ?", id).
		Update("is_used", true).Error
}
