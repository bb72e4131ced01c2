package dto

import "time"

// PaymentCreateRequest payload for registering a pending payment.
type PaymentCreateRequest struct {
	ReservationID string `json:"reservation_id"`
	AmountCents   int64  `json:"amount_cents"`
	Method        string `json:"method"`
	Memo          string `json:"memo,omitempty"`
}

// PaymentResponse is the public shape of a payment.
type PaymentResponse struct {
	ID            string    `json:"id"`
	ReservationID string    `json:"reservation_id"`
	AmountCents   int64     `json:"amount_cents"`
	Status        string    `json:"status"`
	Method        string    `json:"method"`
	Memo          string    `json:"memo,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// CascadeResponse exposes the quote propagation outcome alongside the
// completed payment instead of hiding it in server logs.
type CascadeResponse struct {
	Status  string  `json:"status"`
	QuoteID *string `json:"quote_id,omitempty"`
	Reason  string  `json:"reason,omitempty"`
}

// CompletionResponse is returned by the payment confirmation endpoint.
type CompletionResponse struct {
	Payment PaymentResponse `json:"payment"`
	Cascade CascadeResponse `json:"cascade"`
}

// QuoteCreateRequest payload for new quotes.
type QuoteCreateRequest struct {
	Title string `json:"title"`
}

// QuoteResponse is the public shape of a quote.
type QuoteResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	PaymentStatus string    `json:"payment_status"`
	CreatedAt     time.Time `json:"created_at"`
}
