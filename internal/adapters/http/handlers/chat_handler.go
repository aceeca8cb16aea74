package handlers

import (
	"errors"

	"istore-api/internal/core/domain"
	"istore-api/internal/core/services"
	"istore-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ChatHandler handles the chat concierge endpoint
type ChatHandler struct {
	chatService *services.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// ChatRequest represents chat request body
type ChatRequest struct {
	Message string `json:"message"`
}

// Ask handles a customer question
// @Summary Ask the concierge
// @Description Relay a customer question to the AI concierge with store context
// @Tags Chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ChatRequest true "Customer question"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /chat [post]
func (h *ChatHandler) Ask(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	reply, err := h.chatService.Ask(c.Context(), userID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Message is required")
		case errors.Is(err, services.ErrChatDisabled):
			return response.Error(c, fiber.StatusServiceUnavailable,
				"Trợ lý đang tạm nghỉ, bạn vui lòng liên hệ hotline 1900 1234 nhé!")
		case errors.Is(err, services.ErrChatQuota):
			return response.Error(c, fiber.StatusServiceUnavailable,
				"Trợ lý đang quá tải, bạn vui lòng thử lại sau ít phút nhé!")
		default:
			return response.Error(c, fiber.StatusServiceUnavailable,
				"Xin lỗi, trợ lý đang gặp sự cố. Bạn thử lại sau nhé!")
		}
	}

	return response.Success(c, "Reply generated successfully", fiber.Map{
		"reply": reply,
	})
}
