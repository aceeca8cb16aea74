package services

import (
	"context"
	"errors"

	"istore-api/internal/adapters/persistence/models"
	"istore-api/internal/adapters/persistence/repositories"
	"istore-api/internal/core/domain"

	"gorm.io/gorm"
)

// CartService handles the per-user cart
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new cart service
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{cartRepo: cartRepo, productRepo: productRepo}
}

// Get returns the user's cart, or an empty view if none exists yet.
// The cart row itself is only created on the first add.
func (s *CartService) Get(ctx context.Context, userID uint) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
		}
		return nil, err
	}
	return cart, nil
}

// AddItem puts a catalog product into the cart. Each product holds one
// line; adding it again merges the quantities.
func (s *CartService) AddItem(ctx context.Context, userID, productID uint, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, domain.ErrInvalidInput
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		cart = &models.Cart{UserID: userID}
		if err := s.cartRepo.Create(ctx, cart); err != nil {
			return nil, err
		}
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			if err := s.cartRepo.UpdateItem(ctx, &cart.Items[i]); err != nil {
				return nil, err
			}
			merged = true
			break
		}
	}
	if !merged {
		item := &models.CartItem{
			CartID:    cart.ID,
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  quantity,
			Price:     product.Price,
			ImageURL:  product.ImageURL,
		}
		if err := s.cartRepo.AddItem(ctx, item); err != nil {
			return nil, err
		}
	}

	return s.cartRepo.GetByUserID(ctx, userID)
}

// RemoveItem drops a product line from the cart. A missing cart or an
// absent line is a no-op, not an error.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID uint) error {
	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return s.cartRepo.RemoveItem(ctx, cart.ID, productID)
}
