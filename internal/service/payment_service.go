package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/reservation-service/internal/domain"
	"github.com/spec-kit/reservation-service/internal/events"
	"github.com/spec-kit/reservation-service/internal/observability"
	"github.com/spec-kit/reservation-service/internal/persistence"
	"github.com/spec-kit/reservation-service/internal/repository"
)

// CascadeStatus classifies the outcome of the quote propagation step.
type CascadeStatus string

const (
	CascadeApplied CascadeStatus = "applied"
	CascadeSkipped CascadeStatus = "skipped"
	CascadeFailed  CascadeStatus = "failed"
)

// CascadeOutcome is the second half of a payment completion. Err is
// informational: a failed cascade never fails the operation.
type CascadeOutcome struct {
	Status  CascadeStatus
	QuoteID *string
	Err     error
}

// CompletionResult reports both phases of a payment completion so callers
// and tests can assert on the cascade instead of digging through logs.
type CompletionResult struct {
	Payment *domain.ReservationPayment
	Cascade CascadeOutcome
}

// PaymentService marks payments completed and propagates the completion
// to the owning quote. The payment update is authoritative; the quote
// update is best effort. A completed payment whose cascade failed is the
// accepted consistency window, closed later from the dead-letter list.
type PaymentService struct {
	payments     repository.PaymentRepository
	reservations repository.ReservationRepository
	quotes       repository.QuoteRepository
	deadLetter   persistence.CascadeDeadLetter
	dispatcher   events.Dispatcher
	metrics      *observability.Metrics
	logger       *zap.Logger
}

// PaymentDependencies bundles collaborators for the payment service.
type PaymentDependencies struct {
	PaymentRepo     repository.PaymentRepository
	ReservationRepo repository.ReservationRepository
	QuoteRepo       repository.QuoteRepository
	DeadLetter      persistence.CascadeDeadLetter
	Dispatcher      events.Dispatcher
	Metrics         *observability.Metrics
	Logger          *zap.Logger
}

// NewPaymentService constructs the service.
func NewPaymentService(deps PaymentDependencies) *PaymentService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{
		payments:     deps.PaymentRepo,
		reservations: deps.ReservationRepo,
		quotes:       deps.QuoteRepo,
		deadLetter:   deps.DeadLetter,
		dispatcher:   deps.Dispatcher,
		metrics:      deps.Metrics,
		logger:       logger,
	}
}

// CreatePayment registers a pending payment against a reservation.
func (s *PaymentService) CreatePayment(ctx context.Context, reservationID string, amountCents int64, method domain.PaymentMethod, memo string) (*domain.ReservationPayment, error) {
	if _, err := s.reservations.GetByID(ctx, reservationID); err != nil {
		return nil, err
	}
	payment := &domain.ReservationPayment{
		ID:            uuid.NewString(),
		ReservationID: reservationID,
		AmountCents:   amountCents,
		Status:        domain.PaymentStatusPending,
		Method:        method,
		Memo:          memo,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// GetPayment fetches a payment by id.
func (s *PaymentService) GetPayment(ctx context.Context, id string) (*domain.ReservationPayment, error) {
	return s.payments.GetByID(ctx, id)
}

// ListReservationPayments returns the payments of a reservation.
func (s *PaymentService) ListReservationPayments(ctx context.Context, reservationID string) ([]domain.ReservationPayment, error) {
	return s.payments.ListByReservation(ctx, reservationID)
}

// CompletePayment marks the payment completed and cascades the status to
// the owning quote.
//
// The primary update is the contract: if it fails, the error surfaces and
// nothing else runs. The cascade then resolves payment -> reservation ->
// quote; a payment without a quote-linked reservation skips silently, and
// any failure along the way is absorbed into the CascadeOutcome, logged,
// and recorded for later reconciliation. Re-completing an already
// completed payment re-applies the same status and re-attempts the
// cascade, so the whole operation is safe to retry.
func (s *PaymentService) CompletePayment(ctx context.Context, paymentID string) (*CompletionResult, error) {
	payment, err := s.payments.MarkCompleted(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	result := &CompletionResult{
		Payment: payment,
		Cascade: s.cascadeToQuote(ctx, payment),
	}

	if s.metrics != nil {
		s.metrics.RecordCascade(string(result.Cascade.Status))
	}
	s.publish(ctx, events.Event{
		Type: events.EventPaymentCompleted,
		Payload: events.PaymentCompletedPayload{
			PaymentID:     payment.ID,
			ReservationID: payment.ReservationID,
			AmountCents:   payment.AmountCents,
			QuoteID:       result.Cascade.QuoteID,
			CascadeStatus: string(result.Cascade.Status),
		},
	})
	return result, nil
}

func (s *PaymentService) cascadeToQuote(ctx context.Context, payment *domain.ReservationPayment) CascadeOutcome {
	reservation, err := s.reservations.GetByID(ctx, payment.ReservationID)
	if err != nil {
		if err == pgx.ErrNoRows {
			// not every payment belongs to a quote-linked reservation
			return CascadeOutcome{Status: CascadeSkipped}
		}
		return s.absorbCascadeFailure(ctx, payment, nil, err)
	}
	if reservation.QuoteID == nil {
		return CascadeOutcome{Status: CascadeSkipped}
	}

	if err := s.quotes.MarkPaid(ctx, *reservation.QuoteID); err != nil {
		return s.absorbCascadeFailure(ctx, payment, reservation.QuoteID, err)
	}
	return CascadeOutcome{Status: CascadeApplied, QuoteID: reservation.QuoteID}
}

func (s *PaymentService) absorbCascadeFailure(ctx context.Context, payment *domain.ReservationPayment, quoteID *string, err error) CascadeOutcome {
	s.logger.Warn("quote cascade failed; payment remains completed",
		zap.String("payment_id", payment.ID),
		zap.Stringp("quote_id", quoteID),
		zap.Error(err),
	)
	if s.deadLetter != nil {
		failure := persistence.CascadeFailure{
			PaymentID:  payment.ID,
			QuoteID:    quoteID,
			Reason:     err.Error(),
			OccurredAt: time.Now(),
		}
		if dlErr := s.deadLetter.Record(ctx, failure); dlErr != nil {
			s.logger.Warn("cascade dead-letter write failed", zap.Error(dlErr))
		}
	}
	s.publish(ctx, events.Event{
		Type: events.EventQuoteCascadeFailed,
		Payload: events.QuoteCascadeFailedPayload{
			PaymentID: payment.ID,
			QuoteID:   quoteID,
			Reason:    err.Error(),
		},
	})
	return CascadeOutcome{Status: CascadeFailed, QuoteID: quoteID, Err: err}
}

func (s *PaymentService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
