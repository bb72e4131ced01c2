package events

import (
	"time"

	"github.com/spec-kit/reservation-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventProfileCreated     EventType = "profile_created"
	EventRolePromoted       EventType = "role_promoted"
	EventReservationCreated EventType = "reservation_created"
	EventPaymentCompleted   EventType = "payment_completed"
	EventQuoteCascadeFailed EventType = "quote_cascade_failed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ProfileCreatedPayload payload.
type ProfileCreatedPayload struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// RolePromotedPayload payload.
type RolePromotedPayload struct {
	OldRole domain.Role `json:"old_role"`
	NewRole domain.Role `json:"new_role"`
}

// ReservationCreatedPayload payload.
type ReservationCreatedPayload struct {
	ReservationID string    `json:"reservation_id"`
	QuoteID       *string   `json:"quote_id,omitempty"`
	GuestCount    int       `json:"guest_count"`
	ScheduledFor  time.Time `json:"scheduled_for"`
}

// PaymentCompletedPayload payload.
type PaymentCompletedPayload struct {
	PaymentID     string  `json:"payment_id"`
	ReservationID string  `json:"reservation_id"`
	AmountCents   int64   `json:"amount_cents"`
	QuoteID       *string `json:"quote_id,omitempty"`
	CascadeStatus string  `json:"cascade_status"`
}

// QuoteCascadeFailedPayload payload.
type QuoteCascadeFailedPayload struct {
	PaymentID string  `json:"payment_id"`
	QuoteID   *string `json:"quote_id,omitempty"`
	Reason    string  `json:"reason"`
}
