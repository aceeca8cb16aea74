package handlers

import (
	"errors"

	"istore-api/internal/core/domain"
	"istore-api/internal/core/services"
	"istore-api/internal/pkg/pagination"
	"istore-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles catalog endpoints
type ProductHandler struct {
	catalogService *services.CatalogService
}

// NewProductHandler creates a new product handler
func NewProductHandler(catalogService *services.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

// SetStockRequest represents admin stock update request body
type SetStockRequest struct {
	Stock *int `json:"stock"`
}

// List handles product listing
// @Summary List products
// @Description List catalog products with optional category filter
// @Tags Products
// @Accept json
// @Produce json
// @Param category query string false "Category filter"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	category := c.Query("category")

	products, total, err := h.catalogService.List(c.Context(), category, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list products")
	}

	return response.Success(c, "Products retrieved successfully", pagination.NewResponse(products, params, total))
}

// Search handles product search
// @Summary Search products
// @Description Case-insensitive search over name, description and spec
// @Tags Products
// @Accept json
// @Produce json
// @Param q query string true "Search query"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /products/search [get]
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	query := c.Query("q")

	products, total, err := h.catalogService.Search(c.Context(), query, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to search products")
	}

	return response.Success(c, "Search results retrieved successfully", pagination.NewResponse(products, params, total))
}

// GetByID handles single product lookup
// @Summary Get product
// @Description Get one product by ID
// @Tags Products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid product ID")
	}

	product, err := h.catalogService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return response.NotFound(c, "Product not found")
		}
		return response.InternalServerError(c, "Failed to get product")
	}

	return response.Success(c, "Product retrieved successfully", product)
}

// Create handles admin product creation
// @Summary Create product
// @Description Add a product to the catalog (admin only)
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateProductInput true "Product data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var input services.CreateProductInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	product, err := h.catalogService.Create(c.Context(), &input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Product name, a positive price and a non-negative stock are required")
		}
		return response.InternalServerError(c, "Failed to create product")
	}

	return response.Created(c, "Product created successfully", product)
}

// SetStock handles admin stock updates
// @Summary Set product stock
// @Description Set a product's stock to an absolute level (admin only)
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param body body SetStockRequest true "New stock level"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/products/{id}/stock [put]
func (h *ProductHandler) SetStock(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid product ID")
	}

	var req SetStockRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Stock == nil {
		return response.BadRequest(c, "Stock is required")
	}

	product, err := h.catalogService.SetStock(c.Context(), uint(id), *req.Stock)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Stock cannot be negative")
		case errors.Is(err, services.ErrProductNotFound):
			return response.NotFound(c, "Product not found")
		default:
			return response.InternalServerError(c, "Failed to update stock")
		}
	}

	return response.Success(c, "Stock updated successfully", product)
}
