package handlers

import (
	"errors"

	"istore-api/internal/core/domain"
	"istore-api/internal/core/services"
	"istore-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// VoucherHandler handles voucher endpoints
type VoucherHandler struct {
	voucherService *services.VoucherService
}

// NewVoucherHandler creates a new voucher handler
func NewVoucherHandler(voucherService *services.VoucherService) *VoucherHandler {
	return &VoucherHandler{voucherService: voucherService}
}

// RedeemRequest represents redemption request body
type RedeemRequest struct {
	Code string `json:"code"`
}

// ListAvailable handles listing redeemable vouchers
// @Summary List available vouchers
// @Description List active vouchers with remaining quantity
// @Tags Vouchers
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /vouchers/available [get]
func (h *VoucherHandler) ListAvailable(c *fiber.Ctx) error {
	vouchers, err := h.voucherService.ListAvailable(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list vouchers")
	}

	return response.Success(c, "Vouchers retrieved successfully", vouchers)
}

// Redeem handles point redemption
// @Summary Redeem voucher
// @Description Exchange reward points for a wallet copy of a voucher
// @Tags Vouchers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RedeemRequest true "Voucher code"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /vouchers/redeem [post]
func (h *VoucherHandler) Redeem(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req RedeemRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.voucherService.Redeem(c.Context(), userID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Voucher code is required")
		case errors.Is(err, domain.ErrVoucherNotAvailable):
			return response.BadRequest(c, "Voucher is not available")
		case errors.Is(err, domain.ErrNotEnoughPoints):
			return response.BadRequest(c, "Not enough points to redeem this voucher")
		case errors.Is(err, domain.ErrVoucherAlreadyOwned):
			return response.Conflict(c, "You already hold an unused copy of this voucher")
		default:
			return response.InternalServerError(c, "Failed to redeem voucher")
		}
	}

	return response.Success(c, "Voucher redeemed successfully", result)
}

// List handles the admin voucher listing
// @Summary List vouchers
// @Description List every registry voucher (admin only)
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/vouchers [get]
func (h *VoucherHandler) List(c *fiber.Ctx) error {
	vouchers, err := h.voucherService.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list vouchers")
	}

	return response.Success(c, "Vouchers retrieved successfully", vouchers)
}

// Create handles admin voucher creation
// @Summary Create voucher
// @Description Add a voucher to the registry (admin only)
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateVoucherInput true "Voucher data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/vouchers [post]
func (h *VoucherHandler) Create(c *fiber.Ctx) error {
	var input services.CreateVoucherInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	voucher, err := h.voucherService.Create(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Code, a positive discount and a positive quantity are required")
		case errors.Is(err, domain.ErrDuplicateEntry):
			return response.Conflict(c, "Voucher code already exists")
		default:
			return response.InternalServerError(c, "Failed to create voucher")
		}
	}

	return response.Created(c, "Voucher created successfully", voucher)
}
