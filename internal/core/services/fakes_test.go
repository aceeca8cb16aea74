package services

import (
	"context"
	"strings"

	"istore-api/internal/adapters/persistence/models"
	"istore-api/internal/adapters/persistence/repositories"
	"istore-api/internal/config"
	"istore-api/internal/core/domain"

	"gorm.io/gorm"
)

// In-memory repository fakes. The transaction fake has no rollback, so
// every failing path under test must reject before its first write.

func testLoyaltyConfig() config.LoyaltyConfig {
	return config.LoyaltyConfig{
		PointsDivisor: 10000,
		GoldThreshold: 10000000,
		VIPThreshold:  50000000,
		AccrualMode:   config.AccrualOnCheckout,
	}
}

func testConfig() *config.Config {
	return &config.Config{Loyalty: testLoyaltyConfig()}
}

type fakeEnv struct {
	users    *fakeUserRepo
	wallet   *fakeWalletRepo
	products *fakeProductRepo
	vouchers *fakeVoucherRepo
	carts    *fakeCartRepo
	orders   *fakeOrderRepo
	store    *repositories.Store
	tx       repositories.TxManager
}

func newFakeEnv() *fakeEnv {
	env := &fakeEnv{
		users:    &fakeUserRepo{users: map[uint]*models.User{}, nextID: 1},
		wallet:   &fakeWalletRepo{nextID: 1},
		products: &fakeProductRepo{products: map[uint]*models.Product{}, nextID: 1},
		vouchers: &fakeVoucherRepo{vouchers: map[uint]*models.Voucher{}, nextID: 1},
		carts:    &fakeCartRepo{carts: map[uint]*models.Cart{}, nextCartID: 1, nextItemID: 1},
		orders:   &fakeOrderRepo{orders: map[uint]*models.Order{}, nextID: 1},
	}
	env.store = &repositories.Store{
		Users:    env.users,
		Wallet:   env.wallet,
		Products: env.products,
		Vouchers: env.vouchers,
		Carts:    env.carts,
		Orders:   env.orders,
	}
	env.tx = &fakeTxManager{store: env.store}
	return env
}

func (e *fakeEnv) seedUser(rank domain.Rank, points, spending int64) *models.User {
	user := &models.User{
		Email:         "customer@example.com",
		Role:          string(domain.RoleUser),
		Rank:          string(rank),
		Points:        points,
		TotalSpending: spending,
	}
	_ = e.users.Create(context.Background(), user)
	return user
}

func (e *fakeEnv) seedProduct(name string, price int64, stock int) *models.Product {
	product := &models.Product{Name: name, Price: price, Stock: stock, Category: "iphone"}
	_ = e.products.Create(context.Background(), product)
	return product
}

func (e *fakeEnv) seedWalletVoucher(userID uint, code string, discount int64, used bool) *models.WalletVoucher {
	entry := &models.WalletVoucher{UserID: userID, Code: code, DiscountAmount: discount, IsUsed: used}
	_ = e.wallet.Append(context.Background(), entry)
	return entry
}

type fakeTxManager struct {
	store *repositories.Store
}

func (m *fakeTxManager) WithinTx(ctx context.Context, fn func(s *repositories.Store) error) error {
	return fn(m.store)
}

// ---- users ----

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetWithVouchers(ctx context.Context, id uint) (*models.User, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	var out []*models.User
	for _, user := range r.users {
		out = append(out, user)
	}
	return out, int64(len(r.users)), nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (r *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

// ---- wallet ----

type fakeWalletRepo struct {
	entries []*models.WalletVoucher
	nextID  uint
}

func (r *fakeWalletRepo) Append(ctx context.Context, entry *models.WalletVoucher) error {
	entry.ID = r.nextID
	r.nextID++
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeWalletRepo) GetUnused(ctx context.Context, userID uint, code string) (*models.WalletVoucher, error) {
	for _, entry := range r.entries {
		if entry.UserID == userID && entry.Code == code && !entry.IsUsed {
			return entry, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeWalletRepo) HasUnused(ctx context.Context, userID uint, code string) (bool, error) {
	_, err := r.GetUnused(ctx, userID, code)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (r *fakeWalletRepo) MarkUsed(ctx context.Context, id uint) error {
	for _, entry := range r.entries {
		if entry.ID == id {
			entry.IsUsed = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ---- products ----

type fakeProductRepo struct {
	products map[uint]*models.Product
	nextID   uint
}

func (r *fakeProductRepo) Create(ctx context.Context, product *models.Product) error {
	product.ID = r.nextID
	r.nextID++
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return product, nil
}

func (r *fakeProductRepo) GetByName(ctx context.Context, name string) (*models.Product, error) {
	for _, product := range r.products {
		if product.Name == name {
			return product, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProductRepo) Update(ctx context.Context, product *models.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) List(ctx context.Context, category string, offset, limit int) ([]*models.Product, int64, error) {
	var out []*models.Product
	for _, product := range r.products {
		if category == "" || product.Category == category {
			out = append(out, product)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) Search(ctx context.Context, query string, offset, limit int) ([]*models.Product, int64, error) {
	q := strings.ToLower(query)
	var out []*models.Product
	for _, product := range r.products {
		if strings.Contains(strings.ToLower(product.Name), q) {
			out = append(out, product)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) DecrementStock(ctx context.Context, id uint, qty int) (bool, error) {
	product, ok := r.products[id]
	if !ok || product.Stock < qty {
		return false, nil
	}
	product.Stock -= qty
	return true, nil
}

func (r *fakeProductRepo) SetStock(ctx context.Context, id uint, stock int) error {
	product, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	product.Stock = stock
	return nil
}

func (r *fakeProductRepo) ListLowStock(ctx context.Context, threshold int) ([]*models.Product, error) {
	var out []*models.Product
	for _, product := range r.products {
		if product.Stock <= threshold {
			out = append(out, product)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) ListSummaries(ctx context.Context, limit int) ([]*models.Product, error) {
	var out []*models.Product
	for _, product := range r.products {
		if len(out) == limit {
			break
		}
		out = append(out, product)
	}
	return out, nil
}

func (r *fakeProductRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

// ---- vouchers ----

type fakeVoucherRepo struct {
	vouchers map[uint]*models.Voucher
	nextID   uint
}

func (r *fakeVoucherRepo) Create(ctx context.Context, voucher *models.Voucher) error {
	voucher.ID = r.nextID
	r.nextID++
	r.vouchers[voucher.ID] = voucher
	return nil
}

func (r *fakeVoucherRepo) GetByCode(ctx context.Context, code string) (*models.Voucher, error) {
	for _, voucher := range r.vouchers {
		if voucher.Code == code {
			return voucher, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeVoucherRepo) List(ctx context.Context) ([]*models.Voucher, error) {
	var out []*models.Voucher
	for _, voucher := range r.vouchers {
		out = append(out, voucher)
	}
	return out, nil
}

func (r *fakeVoucherRepo) ListAvailable(ctx context.Context) ([]*models.Voucher, error) {
	var out []*models.Voucher
	for _, voucher := range r.vouchers {
		if voucher.IsActive && voucher.Quantity > 0 {
			out = append(out, voucher)
		}
	}
	return out, nil
}

func (r *fakeVoucherRepo) DecrementQuantity(ctx context.Context, id uint) (bool, error) {
	voucher, ok := r.vouchers[id]
	if !ok || voucher.Quantity <= 0 {
		return false, nil
	}
	voucher.Quantity--
	return true, nil
}

func (r *fakeVoucherRepo) DeactivateDepleted(ctx context.Context) (int64, error) {
	var n int64
	for _, voucher := range r.vouchers {
		if voucher.IsActive && voucher.Quantity <= 0 {
			voucher.IsActive = false
			n++
		}
	}
	return n, nil
}

func (r *fakeVoucherRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.vouchers)), nil
}

// ---- carts ----

type fakeCartRepo struct {
	carts      map[uint]*models.Cart // keyed by user ID
	nextCartID uint
	nextItemID uint
}

func (r *fakeCartRepo) GetByUserID(ctx context.Context, userID uint) (*models.Cart, error) {
	cart, ok := r.carts[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cart, nil
}

func (r *fakeCartRepo) Create(ctx context.Context, cart *models.Cart) error {
	cart.ID = r.nextCartID
	r.nextCartID++
	r.carts[cart.UserID] = cart
	return nil
}

func (r *fakeCartRepo) AddItem(ctx context.Context, item *models.CartItem) error {
	item.ID = r.nextItemID
	r.nextItemID++
	for _, cart := range r.carts {
		if cart.ID == item.CartID {
			cart.Items = append(cart.Items, *item)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeCartRepo) UpdateItem(ctx context.Context, item *models.CartItem) error {
	for _, cart := range r.carts {
		for i := range cart.Items {
			if cart.Items[i].ID == item.ID {
				cart.Items[i] = *item
				return nil
			}
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeCartRepo) RemoveItem(ctx context.Context, cartID, productID uint) error {
	for _, cart := range r.carts {
		if cart.ID != cartID {
			continue
		}
		kept := cart.Items[:0]
		for _, item := range cart.Items {
			if item.ProductID != productID {
				kept = append(kept, item)
			}
		}
		cart.Items = kept
	}
	return nil
}

func (r *fakeCartRepo) Clear(ctx context.Context, userID uint) error {
	delete(r.carts, userID)
	return nil
}

// ---- orders ----

type fakeOrderRepo struct {
	orders map[uint]*models.Order
	nextID uint
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *models.Order) error {
	order.ID = r.nextID
	r.nextID++
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return order, nil
}

func (r *fakeOrderRepo) ListByUserID(ctx context.Context, userID uint) ([]*models.Order, error) {
	var out []*models.Order
	for _, order := range r.orders {
		if order.UserID != nil && *order.UserID == userID {
			out = append(out, order)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ListRecentByUserID(ctx context.Context, userID uint, limit int) ([]*models.Order, error) {
	orders, err := r.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(orders) > limit {
		orders = orders[:limit]
	}
	return orders, nil
}

func (r *fakeOrderRepo) ListAll(ctx context.Context, offset, limit int) ([]*models.Order, int64, error) {
	var out []*models.Order
	for _, order := range r.orders {
		out = append(out, order)
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) Update(ctx context.Context, order *models.Order) error {
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	out := map[string]int64{}
	for _, order := range r.orders {
		out[order.Status]++
	}
	return out, nil
}

func (r *fakeOrderRepo) SumCompletedRevenue(ctx context.Context) (int64, error) {
	var sum int64
	for _, order := range r.orders {
		if order.Status == "Completed" {
			sum += order.FinalAmount
		}
	}
	return sum, nil
}
