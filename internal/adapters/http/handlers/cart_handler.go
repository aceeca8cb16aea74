package handlers

import (
	"errors"

	"istore-api/internal/core/domain"
	"istore-api/internal/core/services"
	"istore-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService *services.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// AddItemRequest represents cart add request body
type AddItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// Get handles cart retrieval
// @Summary Get cart
// @Description Get the caller's cart
// @Tags Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	cart, err := h.cartService.Get(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to get cart")
	}

	return response.Success(c, "Cart retrieved successfully", cart)
}

// AddItem handles adding a product to the cart
// @Summary Add cart item
// @Description Add a catalog product to the cart, merging quantities for an existing line
// @Tags Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AddItemRequest true "Product and quantity"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /cart/add [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.ProductID == 0 {
		return response.BadRequest(c, "Product ID is required")
	}

	cart, err := h.cartService.AddItem(c.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Quantity must be at least 1")
		case errors.Is(err, services.ErrProductNotFound):
			return response.NotFound(c, "Product not found")
		default:
			return response.InternalServerError(c, "Failed to add item to cart")
		}
	}

	return response.Success(c, "Item added to cart", cart)
}

// RemoveItem handles removing a product line from the cart
// @Summary Remove cart item
// @Description Remove a product line from the cart; removing an absent line is a no-op
// @Tags Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param productId path int true "Product ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /cart/item/{productId} [delete]
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	productID, err := c.ParamsInt("productId")
	if err != nil || productID < 1 {
		return response.BadRequest(c, "Invalid product ID")
	}

	if err := h.cartService.RemoveItem(c.Context(), userID, uint(productID)); err != nil {
		return response.InternalServerError(c, "Failed to remove item from cart")
	}

	return response.Success(c, "Item removed from cart", nil)
}
