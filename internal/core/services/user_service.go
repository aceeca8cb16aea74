package services

import (
	"context"
	"errors"

	"istore-api/internal/adapters/persistence/models"
	"istore-api/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// UserService handles profile and admin user listing
type UserService struct {
	userRepo  repositories.UserRepository
	orderRepo repositories.OrderRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, orderRepo repositories.OrderRepository) *UserService {
	return &UserService{userRepo: userRepo, orderRepo: orderRepo}
}

// ProfileResponse is the account page payload: identity, loyalty
// state, wallet vouchers and order history in one shot.
type ProfileResponse struct {
	User   *models.UserResponse `json:"user"`
	Orders []*models.Order      `json:"orders"`
}

// GetProfile returns the caller's account with wallet and orders
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*ProfileResponse, error) {
	user, err := s.userRepo.GetWithVouchers(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	orders, err := s.orderRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ProfileResponse{
		User:   user.ToResponse(),
		Orders: orders,
	}, nil
}

// List lists registered users for the admin view
func (s *UserService) List(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	return s.userRepo.List(ctx, offset, limit)
}
