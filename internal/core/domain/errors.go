package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// Checkout errors
var (
	ErrEmptyOrder      = errors.New("order has no items")
	ErrVoucherNotOwned = errors.New("voucher not found in wallet or already used")
)

// Loyalty and voucher errors
var (
	ErrVoucherNotAvailable   = errors.New("voucher is inactive or out of stock")
	ErrNotEnoughPoints       = errors.New("not enough points")
	ErrVoucherAlreadyOwned   = errors.New("voucher already redeemed and not yet used")
	ErrOrderAlreadyCompleted = errors.New("order is already completed")
)

// ProductNotFoundError rejects a checkout line that references a
// product missing from the catalog.
type ProductNotFoundError struct {
	Name string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %q not found", e.Name)
}

// InsufficientStockError rejects a checkout line whose requested
// quantity exceeds the available stock.
type InsufficientStockError struct {
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d",
		e.Name, e.Requested, e.Available)
}
