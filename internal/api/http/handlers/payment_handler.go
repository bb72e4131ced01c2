package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/reservation-service/internal/api/dto"
	"github.com/spec-kit/reservation-service/internal/domain"
	"github.com/spec-kit/reservation-service/internal/service"
)

// PaymentHandler exposes payment registration and confirmation.
type PaymentHandler struct {
	payments *service.PaymentService
}

// NewPaymentHandler constructs handler.
func NewPaymentHandler(payments *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// Create handles POST /payments.
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	var req dto.PaymentCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.ReservationID == "" || req.AmountCents <= 0 {
		return fiber.NewError(http.StatusBadRequest, "reservation_id and positive amount_cents required")
	}

	payment, err := h.payments.CreatePayment(c.Context(), req.ReservationID, req.AmountCents, domain.PaymentMethod(req.Method), req.Memo)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": paymentResponse(payment)})
}

// Complete handles POST /payments/:id/complete. The response carries
// both phases: the authoritative payment status and the cascade outcome.
func (h *PaymentHandler) Complete(c *fiber.Ctx) error {
	result, err := h.payments.CompletePayment(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}

	cascade := dto.CascadeResponse{
		Status:  string(result.Cascade.Status),
		QuoteID: result.Cascade.QuoteID,
	}
	if result.Cascade.Err != nil {
		cascade.Reason = result.Cascade.Err.Error()
	}

	return c.JSON(fiber.Map{"data": dto.CompletionResponse{
		Payment: paymentResponse(result.Payment),
		Cascade: cascade,
	}})
}

// ListForReservation handles GET /reservations/:id/payments.
func (h *PaymentHandler) ListForReservation(c *fiber.Ctx) error {
	payments, err := h.payments.ListReservationPayments(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.PaymentResponse, 0, len(payments))
	for i := range payments {
		items = append(items, paymentResponse(&payments[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func paymentResponse(payment *domain.ReservationPayment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:            payment.ID,
		ReservationID: payment.ReservationID,
		AmountCents:   payment.AmountCents,
		Status:        string(payment.Status),
		Method:        string(payment.Method),
		Memo:          payment.Memo,
		CreatedAt:     payment.CreatedAt,
	}
}
