package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/reservation-service/internal/domain"
	"github.com/spec-kit/reservation-service/internal/events"
)

type paymentFixture struct {
	payments     *fakePaymentRepo
	reservations *fakeReservationRepo
	quotes       *fakeQuoteRepo
	deadLetter   *fakeDeadLetter
	dispatcher   *recordingDispatcher
	svc          *PaymentService
}

func newPaymentFixture() *paymentFixture {
	f := &paymentFixture{
		payments:     newFakePaymentRepo(),
		reservations: newFakeReservationRepo(),
		quotes:       newFakeQuoteRepo(),
		deadLetter:   &fakeDeadLetter{},
		dispatcher:   &recordingDispatcher{},
	}
	f.svc = NewPaymentService(PaymentDependencies{
		PaymentRepo:     f.payments,
		ReservationRepo: f.reservations,
		QuoteRepo:       f.quotes,
		DeadLetter:      f.deadLetter,
		Dispatcher:      f.dispatcher,
	})
	return f
}

func (f *paymentFixture) seedLinkedPayment(paymentID, reservationID, quoteID string) {
	f.quotes.seed(domain.Quote{ID: quoteID, PaymentStatus: domain.QuoteUnpaid})
	f.reservations.seed(domain.Reservation{ID: reservationID, SubjectID: "S1", QuoteID: &quoteID})
	f.payments.seed(domain.ReservationPayment{
		ID:            paymentID,
		ReservationID: reservationID,
		AmountCents:   5000,
		Status:        domain.PaymentStatusPending,
	})
}

func TestCompletePaymentCascadesToQuote(t *testing.T) {
	f := newPaymentFixture()
	f.seedLinkedPayment("P1", "R1", "Q1")

	result, err := f.svc.CompletePayment(context.Background(), "P1")
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentStatusCompleted, result.Payment.Status)
	assert.Equal(t, CascadeApplied, result.Cascade.Status)
	require.NotNil(t, result.Cascade.QuoteID)
	assert.Equal(t, "Q1", *result.Cascade.QuoteID)

	quote, err := f.quotes.GetByID(context.Background(), "Q1")
	require.NoError(t, err)
	assert.Equal(t, domain.QuotePaid, quote.PaymentStatus)

	require.Len(t, f.dispatcher.eventsOfType(events.EventPaymentCompleted), 1)
	assert.Empty(t, f.deadLetter.recorded)
}

func TestCompletePaymentSkipsWhenNoQuoteLinked(t *testing.T) {
	f := newPaymentFixture()
	f.reservations.seed(domain.Reservation{ID: "R1", SubjectID: "S1"})
	f.payments.seed(domain.ReservationPayment{ID: "P1", ReservationID: "R1", Status: domain.PaymentStatusPending})

	result, err := f.svc.CompletePayment(context.Background(), "P1")
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentStatusCompleted, result.Payment.Status)
	assert.Equal(t, CascadeSkipped, result.Cascade.Status)
	assert.Nil(t, result.Cascade.QuoteID)
	assert.Empty(t, f.deadLetter.recorded)
}

func TestCompletePaymentSkipsWhenReservationMissing(t *testing.T) {
	f := newPaymentFixture()
	f.payments.seed(domain.ReservationPayment{ID: "P1", ReservationID: "gone", Status: domain.PaymentStatusPending})

	result, err := f.svc.CompletePayment(context.Background(), "P1")
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentStatusCompleted, result.Payment.Status)
	assert.Equal(t, CascadeSkipped, result.Cascade.Status)
}

func TestCompletePaymentAbsorbsReservationLookupFailure(t *testing.T) {
	f := newPaymentFixture()
	f.seedLinkedPayment("P2", "R1", "Q1")
	f.reservations.getErr = assert.AnError

	result, err := f.svc.CompletePayment(context.Background(), "P2")
	require.NoError(t, err, "lookup failure on the secondary query must not fail the completion")

	assert.Equal(t, domain.PaymentStatusCompleted, result.Payment.Status)
	assert.Equal(t, CascadeFailed, result.Cascade.Status)
	assert.ErrorIs(t, result.Cascade.Err, assert.AnError)

	require.Len(t, f.deadLetter.recorded, 1)
	assert.Equal(t, "P2", f.deadLetter.recorded[0].PaymentID)
	require.Len(t, f.dispatcher.eventsOfType(events.EventQuoteCascadeFailed), 1)
}

func TestCompletePaymentAbsorbsQuoteUpdateFailure(t *testing.T) {
	f := newPaymentFixture()
	f.seedLinkedPayment("P1", "R1", "Q1")
	f.quotes.markPaidErr = assert.AnError

	result, err := f.svc.CompletePayment(context.Background(), "P1")
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentStatusCompleted, result.Payment.Status)
	assert.Equal(t, CascadeFailed, result.Cascade.Status)
	require.NotNil(t, result.Cascade.QuoteID)
	assert.Equal(t, "Q1", *result.Cascade.QuoteID)

	// the quote is left behind: the accepted reconciliation window
	quote, err := f.quotes.GetByID(context.Background(), "Q1")
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteUnpaid, quote.PaymentStatus)

	require.Len(t, f.deadLetter.recorded, 1)
}

func TestCompletePaymentPrimaryFailureAborts(t *testing.T) {
	f := newPaymentFixture()
	f.seedLinkedPayment("P1", "R1", "Q1")
	f.payments.completeErr = assert.AnError

	_, err := f.svc.CompletePayment(context.Background(), "P1")
	assert.ErrorIs(t, err, assert.AnError)

	// cascade must not have run
	quote, qerr := f.quotes.GetByID(context.Background(), "Q1")
	require.NoError(t, qerr)
	assert.Equal(t, domain.QuoteUnpaid, quote.PaymentStatus)
	assert.Empty(t, f.deadLetter.recorded)
	assert.Empty(t, f.dispatcher.published)
}

func TestCompletePaymentIsRetrySafe(t *testing.T) {
	f := newPaymentFixture()
	f.seedLinkedPayment("P1", "R1", "Q1")

	first, err := f.svc.CompletePayment(context.Background(), "P1")
	require.NoError(t, err)
	second, err := f.svc.CompletePayment(context.Background(), "P1")
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentStatusCompleted, first.Payment.Status)
	assert.Equal(t, domain.PaymentStatusCompleted, second.Payment.Status)
	assert.Equal(t, CascadeApplied, second.Cascade.Status)
}

func TestCompletePaymentUnknownID(t *testing.T) {
	f := newPaymentFixture()

	_, err := f.svc.CompletePayment(context.Background(), "missing")
	assert.Error(t, err)
}

func TestCreatePaymentRequiresReservation(t *testing.T) {
	f := newPaymentFixture()

	_, err := f.svc.CreatePayment(context.Background(), "missing", 1000, domain.PaymentMethodCard, "")
	assert.Error(t, err)
}

func TestCreatePaymentStartsPending(t *testing.T) {
	f := newPaymentFixture()
	f.reservations.seed(domain.Reservation{ID: "R1", SubjectID: "S1"})

	payment, err := f.svc.CreatePayment(context.Background(), "R1", 2500, domain.PaymentMethodTransfer, "deposit")
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentStatusPending, payment.Status)
	assert.NotEmpty(t, payment.ID)
	assert.Equal(t, int64(2500), payment.AmountCents)
}
