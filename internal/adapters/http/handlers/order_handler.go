package handlers

import (
	"errors"
	"strings"

	"istore-api/internal/core/domain"
	"istore-api/internal/core/services"
	"istore-api/internal/pkg/pagination"
	"istore-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles checkout and order endpoints
type OrderHandler struct {
	checkoutService *services.CheckoutService
	orderService    *services.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(checkoutService *services.CheckoutService, orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		checkoutService: checkoutService,
		orderService:    orderService,
	}
}

// UpdateStatusRequest represents admin status update request body
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Checkout handles order placement for guests and customers
// @Summary Place order
// @Description Validate the submitted items against the catalog, re-price them and persist the order
// @Tags Orders
// @Accept json
// @Produce json
// @Param body body services.CheckoutInput true "Checkout data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /orders [post]
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	var input services.CheckoutInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	if strings.TrimSpace(input.RecipientName) == "" {
		return response.BadRequest(c, "Recipient name is required")
	}
	if strings.TrimSpace(input.RecipientPhone) == "" {
		return response.BadRequest(c, "Recipient phone is required")
	}
	if strings.TrimSpace(input.RecipientAddress) == "" {
		return response.BadRequest(c, "Recipient address is required")
	}
	if strings.TrimSpace(input.PaymentMethod) == "" {
		return response.BadRequest(c, "Payment method is required")
	}

	order, err := h.checkoutService.PlaceOrder(c.Context(), &input, callerFromLocals(c))
	if err != nil {
		var notFound *domain.ProductNotFoundError
		var noStock *domain.InsufficientStockError
		switch {
		case errors.Is(err, domain.ErrEmptyOrder):
			return response.BadRequest(c, "Order must contain at least one item")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Each item needs a product name and a quantity of at least 1")
		case errors.Is(err, domain.ErrVoucherNotOwned):
			return response.BadRequest(c, "Applied voucher is not available in your wallet")
		case errors.As(err, &notFound):
			return response.NotFound(c, notFound.Error())
		case errors.As(err, &noStock):
			return response.ErrorWithData(c, fiber.StatusBadRequest, noStock.Error(), fiber.Map{
				"product":   noStock.Name,
				"requested": noStock.Requested,
				"available": noStock.Available,
			})
		default:
			return response.InternalServerError(c, "Failed to place order")
		}
	}

	return response.Created(c, "Order placed successfully", fiber.Map{
		"order_id":    order.ID,
		"status":      order.Status,
		"subtotal":    order.TotalAmountNumeric,
		"discount":    order.TotalAmountNumeric - order.FinalAmount,
		"final_total": order.FinalAmount,
		"items":       order.Items,
	})
}

// GetByID handles public order lookup
// @Summary Get order
// @Description Get one order by ID for tracking
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid order ID")
	}

	order, err := h.orderService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			return response.NotFound(c, "Order not found")
		}
		return response.InternalServerError(c, "Failed to get order")
	}

	// The tracking page is public; the owner reference stays private
	order.UserID = nil
	order.User = nil

	return response.Success(c, "Order retrieved successfully", order)
}

// List handles the admin order listing
// @Summary List orders
// @Description List all orders, newest first (admin only)
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	orders, total, err := h.orderService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list orders")
	}

	return response.Success(c, "Orders retrieved successfully", pagination.NewResponse(orders, params, total))
}

// UpdateStatus handles admin order status transitions
// @Summary Update order status
// @Description Move an order to a new status; first completion credits the owner's loyalty (admin only)
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Param body body UpdateStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid order ID")
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	order, err := h.orderService.UpdateStatus(c.Context(), uint(id), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Status is required")
		case errors.Is(err, services.ErrOrderNotFound):
			return response.NotFound(c, "Order not found")
		case errors.Is(err, domain.ErrOrderAlreadyCompleted):
			return response.Conflict(c, "Order is already completed")
		default:
			return response.InternalServerError(c, "Failed to update order status")
		}
	}

	return response.Success(c, "Order status updated successfully", order)
}

// callerFromLocals builds the checkout caller from whatever OptionalAuth
// put in the request context
func callerFromLocals(c *fiber.Ctx) *domain.Caller {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return domain.Guest()
	}
	role, _ := c.Locals("role").(string)
	return &domain.Caller{UserID: userID, Role: domain.Role(role)}
}
