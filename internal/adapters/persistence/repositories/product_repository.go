package repositories

import (
	"context"

	"istore-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// productRepository implements ProductRepository interface
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create creates a new product
func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// GetByID gets a product by ID
func (r *productRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetByName gets a product by its display name
func (r *productRepository) GetByName(ctx context.Context, name string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Update updates a product
func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// List lists products with pagination, optionally filtered by category
func (r *productRepository) List(ctx context.Context, category string, offset, limit int) ([]*models.Product, int64, error) {
	var products []*models.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Product{})
	if category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// Search runs a case-insensitive keyword lookup over name, short
// description and spec fields
func (r *productRepository) Search(ctx context.Context, q string, offset, limit int) ([]*models.Product, int64, error) {
	var products []*models.Product
	var total int64

	pattern := "%" + q + "%"
	query := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("name LIKE ? OR short_description LIKE ? OR spec LIKE ?", pattern, pattern, pattern)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// DecrementStock decrements stock by qty in a single guarded update.
// The WHERE clause carries the stock check, so two concurrent
// checkouts cannot both pass validation and oversell.
func (r *productRepository) DecrementStock(ctx context.Context, id uint, qty int) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND stock >= ?", id, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// SetStock sets a product's stock to an absolute value
func (r *productRepository) SetStock(ctx context.Context, id uint, stock int) error {
	return r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("stock", stock).Error
}

// ListLowStock lists products at or below the given stock threshold
func (r *productRepository) ListLowStock(ctx context.Context, threshold int) ([]*models.Product, error) {
	var products []*models.Product
	err := r.db.WithContext(ctx).
		Where("stock <= ?", threshold).
		Order("stock asc").
		Find(&products).Error
	return products, err
}

// ListSummaries lists up to limit products with only the fields the
// chat concierge needs for its context
func (r *productRepository) ListSummaries(ctx context.Context, limit int) ([]*models.Product, error) {
	var products []*models.Product
	err := r.db.WithContext(ctx).
		Select("id", "name", "price", "category").
		Limit(limit).
		Find(&products).Error
	return products, err
}

// Count counts all products
func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error
	return count, err
}
