package repositories

import (
	"context"

	"istore-api/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetWithVouchers(ctx context.Context, id uint) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// WalletVoucherRepository defines access to users' redeemed voucher copies
type WalletVoucherRepository interface {
	Append(ctx context.Context, entry *models.WalletVoucher) error
	GetUnused(ctx context.Context, userID uint, code string) (*models.WalletVoucher, error)
	HasUnused(ctx context.Context, userID uint, code string) (bool, error)
	MarkUsed(ctx context.Context, id uint) error
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	GetByUserID(ctx context.Context, userID uint) ([]*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// ProductRepository defines catalog repository interface
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	GetByName(ctx context.Context, name string) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	List(ctx context.Context, category string, offset, limit int) ([]*models.Product, int64, error)
	Search(ctx context.Context, query string, offset, limit int) ([]*models.Product, int64, error)
	// DecrementStock atomically decrements stock by qty only while
	// stock >= qty, and reports whether the decrement happened.
	DecrementStock(ctx context.Context, id uint, qty int) (bool, error)
	SetStock(ctx context.Context, id uint, stock int) error
	ListLowStock(ctx context.Context, threshold int) ([]*models.Product, error)
	ListSummaries(ctx context.Context, limit int) ([]*models.Product, error)
	Count(ctx context.Context) (int64, error)
}

// VoucherRepository defines voucher registry repository interface
type VoucherRepository interface {
	Create(ctx context.Context, voucher *models.Voucher) error
	GetByCode(ctx context.Context, code string) (*models.Voucher, error)
	List(ctx context.Context) ([]*models.Voucher, error)
	ListAvailable(ctx context.Context) ([]*models.Voucher, error)
	// DecrementQuantity atomically decrements quantity by one only
	// while quantity > 0, and reports whether it happened.
	DecrementQuantity(ctx context.Context, id uint) (bool, error)
	DeactivateDepleted(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// CartRepository defines cart repository interface
type CartRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.Cart, error)
	Create(ctx context.Context, cart *models.Cart) error
	AddItem(ctx context.Context, item *models.CartItem) error
	UpdateItem(ctx context.Context, item *models.CartItem) error
	RemoveItem(ctx context.Context, cartID, productID uint) error
	Clear(ctx context.Context, userID uint) error
}

// OrderRepository defines order ledger repository interface
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	ListByUserID(ctx context.Context, userID uint) ([]*models.Order, error)
	ListRecentByUserID(ctx context.Context, userID uint, limit int) ([]*models.Order, error)
	ListAll(ctx context.Context, offset, limit int) ([]*models.Order, int64, error)
	Update(ctx context.Context, order *models.Order) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
	SumCompletedRevenue(ctx context.Context) (int64, error)
}
