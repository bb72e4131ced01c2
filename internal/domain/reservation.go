package domain

import "time"

// ReservationStatus represents lifecycle states for a reservation.
type ReservationStatus string

const (
	ReservationStatusRequested ReservationStatus = "requested"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// Reservation is a booking made by a profile subject. QuoteID links the
// reservation to its owning quote when one exists; payments without a
// quote-linked reservation simply skip the cascade.
type Reservation struct {
	ID           string
	SubjectID    string
	QuoteID      *string
	GuestCount   int
	ScheduledFor time.Time
	Status       ReservationStatus
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
