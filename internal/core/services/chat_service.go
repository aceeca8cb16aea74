package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"istore-api/internal/adapters/persistence/repositories"
	"istore-api/internal/config"
	"istore-api/internal/core/domain"
	"istore-api/internal/pkg/currency"
)

// Chat errors
var (
	ErrChatDisabled = errors.New("chat concierge is not configured")
	ErrChatQuota    = errors.New("chat provider quota exhausted")
	ErrChatUpstream = errors.New("chat provider request failed")
)

const (
	geminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s"

	chatOrderHistoryLimit = 3
	chatCatalogLimit      = 30
)

// ChatService relays customer questions to the Gemini API, priming it
// with the caller's loyalty state, recent orders and the live catalog.
// All answer generation happens upstream.
type ChatService struct {
	userRepo    repositories.UserRepository
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	apiKey      string
	model       string
	client      *http.Client
	enabled     bool
}

// NewChatService creates a new chat service
func NewChatService(
	userRepo repositories.UserRepository,
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
	cfg *config.Config,
) *ChatService {
	enabled := cfg.Chat.GeminiAPIKey != ""
	if !enabled {
		log.Println("⚠️ GEMINI_API_KEY not set, chat concierge disabled")
	}

	return &ChatService{
		userRepo:    userRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		apiKey:      cfg.Chat.GeminiAPIKey,
		model:       cfg.Chat.Model,
		client:      &http.Client{Timeout: 30 * time.Second},
		enabled:     enabled,
	}
}

// IsEnabled reports whether an API key is configured
func (s *ChatService) IsEnabled() bool {
	return s.enabled
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// Ask sends the customer's question upstream and returns the reply
func (s *ChatService) Ask(ctx context.Context, userID uint, message string) (string, error) {
	if !s.enabled {
		return "", ErrChatDisabled
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return "", domain.ErrInvalidInput
	}

	prompt := s.buildPrompt(ctx, userID, message)

	payload, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf(geminiEndpoint, s.model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("❌ Chat request failed: %v", err)
		return "", ErrChatUpstream
	}
	defer resp.Body.Close()

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", ErrChatUpstream
	}

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusTooManyRequests {
			return "", ErrChatQuota
		}
		if parsed.Error != nil {
			log.Printf("❌ Chat provider error %d: %s", parsed.Error.Code, parsed.Error.Message)
			if parsed.Error.Status == "RESOURCE_EXHAUSTED" {
				return "", ErrChatQuota
			}
		}
		return "", ErrChatUpstream
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", ErrChatUpstream
	}

	return strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text), nil
}

// buildPrompt assembles the store context around the question. Lookup
// failures degrade to a thinner prompt instead of failing the chat.
func (s *ChatService) buildPrompt(ctx context.Context, userID uint, message string) string {
	var b strings.Builder

	b.WriteString("Bạn là trợ lý bán hàng của iStore, cửa hàng sản phẩm Apple tại Việt Nam. ")
	b.WriteString("Trả lời ngắn gọn, thân thiện bằng tiếng Việt.\n\n")

	if user, err := s.userRepo.GetByID(ctx, userID); err == nil {
		fmt.Fprintf(&b, "Khách hàng: hạng %s, %d điểm thưởng.\n", user.Rank, user.Points)
	}

	if orders, err := s.orderRepo.ListRecentByUserID(ctx, userID, chatOrderHistoryLimit); err == nil && len(orders) > 0 {
		b.WriteString("Đơn hàng gần đây:\n")
		for _, o := range orders {
			fmt.Fprintf(&b, "- Đơn #%d: %s, tổng %s\n", o.ID, o.Status, o.TotalAmountString)
		}
	}

	if products, err := s.productRepo.ListSummaries(ctx, chatCatalogLimit); err == nil && len(products) > 0 {
		b.WriteString("Sản phẩm đang bán:\n")
		for _, p := range products {
			fmt.Fprintf(&b, "- %s = %s (%s)\n", p.Name, currency.FormatVND(p.Price), p.Category)
		}
	}

	fmt.Fprintf(&b, "\nCâu hỏi của khách: %s", message)
	return b.String()
}
