package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Identity & Loyalty
// ============================================================

// User represents users table. Rank and points are loyalty state:
// rank is derived from total_spending and only moves upward.
type User struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Email         string          `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password      string          `gorm:"size:255;not null" json:"-"`
	Role          string          `gorm:"size:20;default:'USER'" json:"role"`
	Rank          string          `gorm:"size:20;default:'Silver'" json:"rank"`
	Points        int64           `gorm:"not null;default:0" json:"points"`
	TotalSpending int64           `gorm:"not null;default:0" json:"total_spending"`
	MyVouchers    []WalletVoucher `gorm:"foreignKey:UserID" json:"my_vouchers,omitempty"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID            uint            `json:"id"`
	Email         string          `json:"email"`
	Role          string          `json:"role"`
	Rank          string          `json:"rank"`
	Points        int64           `json:"points"`
	TotalSpending int64           `json:"total_spending"`
	MyVouchers    []WalletVoucher `json:"my_vouchers,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Role:          u.Role,
		Rank:          u.Rank,
		Points:        u.Points,
		TotalSpending: u.TotalSpending,
		MyVouchers:    u.MyVouchers,
		CreatedAt:     u.CreatedAt,
	}
}

// WalletVoucher is a user-owned copy of a registry voucher, redeemed
// with points and consumable at most once.
type WalletVoucher struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"index;not null" json:"-"`
	Code           string    `gorm:"size:50;not null;index" json:"code"`
	DiscountAmount int64     `gorm:"not null" json:"discount_amount"`
	IsUsed         bool      `gorm:"default:false" json:"is_used"`
	RedeemedAt     time.Time `gorm:"autoCreateTime" json:"redeemed_at"`
}

func (WalletVoucher) TableName() string {
	return "wallet_vouchers"
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Catalog
// ============================================================

// Product represents products table. Price is the authoritative unit
// price in whole dong; checkout never trusts client-supplied prices.
type Product struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Name             string         `gorm:"size:100;not null;index" json:"name"`
	Price            int64          `gorm:"not null" json:"price"`
	ShortDescription string         `gorm:"type:text" json:"short_description"`
	Spec             string         `gorm:"type:text" json:"spec"`
	ImageURL         string         `gorm:"size:255" json:"image_url"`
	Category         string         `gorm:"size:50;index" json:"category"`
	Stock            int            `gorm:"not null;default:0" json:"stock"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// ============================================================
// Voucher registry
// ============================================================

// Voucher represents promotional codes exchangeable for points.
// Quantity only ever decreases; depleted vouchers are deactivated,
// never deleted.
type Voucher struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Code           string    `gorm:"uniqueIndex;size:50;not null" json:"code"`
	DiscountAmount int64     `gorm:"not null" json:"discount_amount"`
	PointsRequired int64     `gorm:"not null" json:"points_required"`
	Quantity       int       `gorm:"not null;default:100" json:"quantity"`
	IsActive       bool      `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Voucher) TableName() string {
	return "vouchers"
}

// ============================================================
// Cart
// ============================================================

// Cart is the one-per-user mutable selection. Items are denormalized
// snapshots; prices are re-validated against the catalog only at
// checkout time.
type Cart struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	Items     []CartItem `gorm:"foreignKey:CartID" json:"items"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Cart) TableName() string {
	return "carts"
}

// CartItem holds one line per distinct product; re-adding a product
// merges into the existing line.
type CartItem struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	CartID    uint   `gorm:"index;not null" json:"-"`
	ProductID uint   `gorm:"index;not null" json:"product_id"`
	Name      string `gorm:"size:100;not null" json:"name"`
	Quantity  int    `gorm:"not null;default:1" json:"quantity"`
	Price     int64  `gorm:"not null" json:"price"`
	ImageURL  string `gorm:"size:255" json:"image_url"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// ============================================================
// Order ledger
// ============================================================

// Order is append-only apart from its status. The item snapshot and
// totals are fixed at checkout and never re-derived from the catalog.
// LoyaltyCredited guards the exactly-once loyalty credit.
type Order struct {
	ID                 uint        `gorm:"primaryKey" json:"id"`
	UserID             *uint       `gorm:"index" json:"user_id,omitempty"`
	RecipientName      string      `gorm:"size:100;not null" json:"recipient_name"`
	RecipientPhone     string      `gorm:"size:20;not null" json:"recipient_phone"`
	RecipientAddress   string      `gorm:"size:255;not null" json:"recipient_address"`
	RecipientNotes     string      `gorm:"type:text" json:"recipient_notes"`
	PaymentMethod      string      `gorm:"size:50;not null" json:"payment_method"`
	Items              []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	TotalAmountString  string      `gorm:"size:50;not null" json:"total_amount_string"`
	TotalAmountNumeric int64       `gorm:"not null" json:"total_amount_numeric"`
	FinalAmount        int64       `gorm:"not null" json:"final_amount"`
	AppliedVoucher     *string     `gorm:"size:50" json:"applied_voucher"`
	Status             string      `gorm:"size:30;not null;default:'Pending'" json:"status"`
	LoyaltyCredited    bool        `gorm:"default:false" json:"-"`
	CreatedAt          time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time   `gorm:"autoUpdateTime" json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem is a purchased line captured at checkout. Price is the
// display string rendered from the catalog price of that moment.
type OrderItem struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	OrderID uint   `gorm:"index;not null" json:"-"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Price   string `gorm:"size:50;not null" json:"price"`
	Qty     int    `gorm:"not null" json:"qty"`
	Image   string `gorm:"size:255" json:"image"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&WalletVoucher{},
		&RefreshToken{},
		&Product{},
		&Voucher{},
		&Cart{},
		&CartItem{},
		&Order{},
		&OrderItem{},
	)
}
