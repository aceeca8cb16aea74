package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Store bundles every repository over a single database handle so a
// caller can reach all five shared stores through one value.
type Store struct {
	Users         UserRepository
	Wallet        WalletVoucherRepository
	RefreshTokens RefreshTokenRepository
	Products      ProductRepository
	Vouchers      VoucherRepository
	Carts         CartRepository
	Orders        OrderRepository
}

// NewStore creates a repository bundle bound to db (which may be a
// transaction handle).
func NewStore(db *gorm.DB) *Store {
	return &Store{
		Users:         NewUserRepository(db),
		Wallet:        NewWalletVoucherRepository(db),
		RefreshTokens: NewRefreshTokenRepository(db),
		Products:      NewProductRepository(db),
		Vouchers:      NewVoucherRepository(db),
		Carts:         NewCartRepository(db),
		Orders:        NewOrderRepository(db),
	}
}

// TxManager runs a function against a transaction-scoped Store. The
// checkout workflow relies on it to make its multi-record mutation
// all-or-nothing.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(s *Store) error) error
}

// gormTxManager implements TxManager over a GORM database
type gormTxManager struct {
	db *gorm.DB
}

// NewTxManager creates a new transaction manager
func NewTxManager(db *gorm.DB) TxManager {
	return &gormTxManager{db: db}
}

// WithinTx opens a transaction, binds a Store to it and commits if fn
// returns nil, rolling back otherwise.
func (m *gormTxManager) WithinTx(ctx context.Context, fn func(s *Store) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
