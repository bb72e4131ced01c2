package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/reservation-service/internal/api/dto"
	"github.com/spec-kit/reservation-service/internal/domain"
	"github.com/spec-kit/reservation-service/internal/service"
)

// QuoteHandler exposes quote management for managers.
type QuoteHandler struct {
	quotes *service.QuoteService
}

// NewQuoteHandler constructs handler.
func NewQuoteHandler(quotes *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quotes: quotes}
}

// Create handles POST /quotes.
func (h *QuoteHandler) Create(c *fiber.Ctx) error {
	var req dto.QuoteCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	quote, err := h.quotes.CreateQuote(c.Context(), req.Title)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": quoteResponse(quote)})
}

// Get handles GET /quotes/:id.
func (h *QuoteHandler) Get(c *fiber.Ctx) error {
	quote, err := h.quotes.GetQuote(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": quoteResponse(quote)})
}

func quoteResponse(quote *domain.Quote) dto.QuoteResponse {
	return dto.QuoteResponse{
		ID:            quote.ID,
		Title:         quote.Title,
		PaymentStatus: string(quote.PaymentStatus),
		CreatedAt:     quote.CreatedAt,
	}
}
