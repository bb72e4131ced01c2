package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/reservation-service/internal/domain"
	"github.com/spec-kit/reservation-service/internal/events"
	"github.com/spec-kit/reservation-service/internal/repository"
)

// ReservationService coordinates booking workflows. Creating a
// reservation is the trigger for the guest to member promotion.
type ReservationService struct {
	reservations repository.ReservationRepository
	quotes       repository.QuoteRepository
	roles        *RoleService
	dispatcher   events.Dispatcher
	logger       *zap.Logger
}

// ReservationDependencies bundles collaborators for the service.
type ReservationDependencies struct {
	ReservationRepo repository.ReservationRepository
	QuoteRepo       repository.QuoteRepository
	Roles           *RoleService
	Dispatcher      events.Dispatcher
	Logger          *zap.Logger
}

// ReservationCreateInput describes a booking request.
type ReservationCreateInput struct {
	QuoteID      *string
	GuestCount   int
	ScheduledFor time.Time
	Notes        string
}

// NewReservationService constructs the service.
func NewReservationService(deps ReservationDependencies) *ReservationService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReservationService{
		reservations: deps.ReservationRepo,
		quotes:       deps.QuoteRepo,
		roles:        deps.Roles,
		dispatcher:   deps.Dispatcher,
		logger:       logger,
	}
}

// CreateReservation books a reservation for the subject and promotes a
// guest to member. Promotion failure does not lose the booking: the
// reservation stands, a warning is logged, and the next reservation
// repeats the attempt.
func (s *ReservationService) CreateReservation(ctx context.Context, subjectID string, input ReservationCreateInput) (*domain.Reservation, error) {
	if input.GuestCount <= 0 {
		return nil, errors.New("guest count must be positive")
	}
	if input.ScheduledFor.IsZero() {
		return nil, errors.New("schedule date required")
	}
	if input.QuoteID != nil {
		if _, err := s.quotes.GetByID(ctx, *input.QuoteID); err != nil {
			return nil, err
		}
	}

	reservation := &domain.Reservation{
		ID:           uuid.NewString(),
		SubjectID:    subjectID,
		QuoteID:      input.QuoteID,
		GuestCount:   input.GuestCount,
		ScheduledFor: input.ScheduledFor,
		Status:       domain.ReservationStatusRequested,
		Notes:        strings.TrimSpace(input.Notes),
	}
	if err := s.reservations.Create(ctx, reservation); err != nil {
		return nil, err
	}

	if s.roles != nil {
		if _, err := s.roles.PromoteGuestToMember(ctx, subjectID); err != nil {
			s.logger.Warn("promotion after reservation failed",
				zap.String("subject_id", subjectID),
				zap.Error(err),
			)
		}
	}

	s.publish(ctx, events.Event{
		Type:      events.EventReservationCreated,
		SubjectID: subjectID,
		Payload: events.ReservationCreatedPayload{
			ReservationID: reservation.ID,
			QuoteID:       reservation.QuoteID,
			GuestCount:    reservation.GuestCount,
			ScheduledFor:  reservation.ScheduledFor,
		},
	})
	return reservation, nil
}

// GetReservationForSubject fetches a reservation ensuring ownership.
func (s *ReservationService) GetReservationForSubject(ctx context.Context, subjectID, reservationID string) (*domain.Reservation, error) {
	reservation, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if reservation.SubjectID != subjectID {
		return nil, errors.New("access denied")
	}
	return reservation, nil
}

// ListReservations returns the subject's reservations.
func (s *ReservationService) ListReservations(ctx context.Context, subjectID string, limit, offset int) ([]domain.Reservation, error) {
	return s.reservations.ListBySubject(ctx, subjectID, limit, offset)
}

// CancelReservation cancels a reservation owned by the subject.
func (s *ReservationService) CancelReservation(ctx context.Context, subjectID, reservationID string) error {
	reservation, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return err
	}
	if reservation.SubjectID != subjectID {
		return errors.New("access denied")
	}
	if reservation.Status == domain.ReservationStatusCancelled {
		return nil
	}
	return s.reservations.UpdateStatus(ctx, reservationID, domain.ReservationStatusCancelled)
}

func (s *ReservationService) publish(ctx context.Context, event events.Event) {
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
