package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/spec-kit/reservation-service/internal/domain"
	"github.com/spec-kit/reservation-service/internal/repository"
)

// QuoteService manages quote aggregates for the manager surface. The
// reconciler writes quote payment status on its own; this service only
// covers creation and lookup.
type QuoteService struct {
	quotes repository.QuoteRepository
}

// NewQuoteService constructs the service.
func NewQuoteService(quotes repository.QuoteRepository) *QuoteService {
	return &QuoteService{quotes: quotes}
}

// CreateQuote registers a new unpaid quote.
func (s *QuoteService) CreateQuote(ctx context.Context, title string) (*domain.Quote, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("title required")
	}
	quote := &domain.Quote{
		ID:            uuid.NewString(),
		Title:         title,
		PaymentStatus: domain.QuoteUnpaid,
	}
	if err := s.quotes.Create(ctx, quote); err != nil {
		return nil, err
	}
	return quote, nil
}

// GetQuote fetches a quote by id.
func (s *QuoteService) GetQuote(ctx context.Context, id string) (*domain.Quote, error) {
	return s.quotes.GetByID(ctx, id)
}
