package domain

import "time"

// PaymentStatus represents the two-state lifecycle of a payment.
// A payment is created pending and completed exactly once; it never reverts.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
)

// PaymentMethod enumerates accepted payment methods.
type PaymentMethod string

const (
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodOnSite   PaymentMethod = "on_site"
)

// ReservationPayment is a leaf payment record owned by a reservation.
type ReservationPayment struct {
	ID            string
	ReservationID string
	AmountCents   int64
	Status        PaymentStatus
	Method        PaymentMethod
	Memo          string
	CreatedAt     time.Time
}
