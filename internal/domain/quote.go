package domain

import "time"

// QuotePaymentStatus tracks whether a quote has received payment.
type QuotePaymentStatus string

const (
	QuoteUnpaid QuotePaymentStatus = "unpaid"
	QuotePaid   QuotePaymentStatus = "paid"
)

// Quote is the aggregate a payment completion cascades to. Paid must
// eventually correspond to at least one completed payment among the
// quote's reservations; a completed payment whose cascade failed leaves
// the quote temporarily unpaid until a later reconciliation closes the gap.
type Quote struct {
	ID            string
	Title         string
	PaymentStatus QuotePaymentStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
