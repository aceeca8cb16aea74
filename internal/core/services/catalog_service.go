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

// Catalog errors
var (
	ErrProductNotFound = errors.New("product not found")
)

// CatalogService handles product listing, search and admin maintenance
type CatalogService struct {
	productRepo repositories.ProductRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(productRepo repositories.ProductRepository) *CatalogService {
	return &CatalogService{productRepo: productRepo}
}

// CreateProductInput represents admin product creation input
type CreateProductInput struct {
	Name             string `json:"name"`
	Price            int64  `json:"price"`
	ShortDescription string `json:"short_description"`
	Spec             string `json:"spec"`
	ImageURL         string `json:"image_url"`
	Category         string `json:"category"`
	Stock            int    `json:"stock"`
}

// List returns a catalog page, optionally filtered by category
func (s *CatalogService) List(ctx context.Context, category string, offset, limit int) ([]*models.Product, int64, error) {
	return s.productRepo.List(ctx, category, offset, limit)
}

// Search runs a case-insensitive substring match over name, short
// description and spec. A blank query returns an empty page.
func (s *CatalogService) Search(ctx context.Context, query string, offset, limit int) ([]*models.Product, int64, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*models.Product{}, 0, nil
	}
	return s.productRepo.Search(ctx, query, offset, limit)
}

// GetByID returns one product
func (s *CatalogService) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// Create adds a product to the catalog
func (s *CatalogService) Create(ctx context.Context, input *CreateProductInput) (*models.Product, error) {
	if strings.TrimSpace(input.Name) == "" || input.Price <= 0 || input.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}

	product := &models.Product{
		Name:             strings.TrimSpace(input.Name),
		Price:            input.Price,
		ShortDescription: input.ShortDescription,
		Spec:             input.Spec,
		ImageURL:         input.ImageURL,
		Category:         input.Category,
		Stock:            input.Stock,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	log.Printf("📦 Product created: %s (stock %d)", product.Name, product.Stock)
	return product, nil
}

// SetStock sets a product's stock to an absolute level. Negative
// levels are rejected.
func (s *CatalogService) SetStock(ctx context.Context, id uint, stock int) (*models.Product, error) {
	if stock < 0 {
		return nil, domain.ErrInvalidInput
	}

	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.SetStock(ctx, id, stock); err != nil {
		return nil, err
	}
	product.Stock = stock

	log.Printf("📦 Stock for %s set to %d", product.Name, stock)
	return product, nil
}
