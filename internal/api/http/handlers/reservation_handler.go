package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/reservation-service/internal/api/dto"
	"github.com/spec-kit/reservation-service/internal/auth"
	"github.com/spec-kit/reservation-service/internal/domain"
	"github.com/spec-kit/reservation-service/internal/service"
)

// ReservationHandler exposes the booking surface.
type ReservationHandler struct {
	reservations *service.ReservationService
}

// NewReservationHandler constructs handler.
func NewReservationHandler(reservations *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservations: reservations}
}

// Create handles POST /reservations. Creation is also the promotion
// trigger for guest subjects.
func (h *ReservationHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.ReservationCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	reservation, err := h.reservations.CreateReservation(c.Context(), principal.Profile.SubjectID, service.ReservationCreateInput{
		QuoteID:      req.QuoteID,
		GuestCount:   req.GuestCount,
		ScheduledFor: req.ScheduledFor,
		Notes:        req.Notes,
	})
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": reservationResponse(reservation)})
}

// List handles GET /reservations.
func (h *ReservationHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	reservations, err := h.reservations.ListReservations(c.Context(), principal.Profile.SubjectID, limit, offset)
	if err != nil {
		return err
	}

	items := make([]dto.ReservationResponse, 0, len(reservations))
	for i := range reservations {
		items = append(items, reservationResponse(&reservations[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get handles GET /reservations/:id.
func (h *ReservationHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	reservation, err := h.reservations.GetReservationForSubject(c.Context(), principal.Profile.SubjectID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reservationResponse(reservation)})
}

// Cancel handles POST /reservations/:id/cancel.
func (h *ReservationHandler) Cancel(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	if err := h.reservations.CancelReservation(c.Context(), principal.Profile.SubjectID, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func reservationResponse(reservation *domain.Reservation) dto.ReservationResponse {
	return dto.ReservationResponse{
		ID:           reservation.ID,
		QuoteID:      reservation.QuoteID,
		GuestCount:   reservation.GuestCount,
		ScheduledFor: reservation.ScheduledFor,
		Status:       string(reservation.Status),
		Notes:        reservation.Notes,
		CreatedAt:    reservation.CreatedAt,
	}
}
