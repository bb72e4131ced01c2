package dto

import "time"

// ReservationCreateRequest payload for bookings.
type ReservationCreateRequest struct {
	QuoteID      *string   `json:"quote_id,omitempty"`
	GuestCount   int       `json:"guest_count"`
	ScheduledFor time.Time `json:"scheduled_for"`
	Notes        string    `json:"notes,omitempty"`
}

// ReservationResponse is the public shape of a reservation.
type ReservationResponse struct {
	ID           string    `json:"id"`
	QuoteID      *string   `json:"quote_id,omitempty"`
	GuestCount   int       `json:"guest_count"`
	ScheduledFor time.Time `json:"scheduled_for"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
