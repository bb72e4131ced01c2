package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/reservation-service/internal/domain"
)

// PaymentRepository handles persistence for reservation payments.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.ReservationPayment) error
	GetByID(ctx context.Context, id string) (*domain.ReservationPayment, error)
	ListByReservation(ctx context.Context, reservationID string) ([]domain.ReservationPayment, error)
	MarkCompleted(ctx context.Context, id string) (*domain.ReservationPayment, error)
}

type paymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository instantiates the repository.
func NewPaymentRepository(pool *pgxpool.Pool) PaymentRepository {
	return &paymentRepository{pool: pool}
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.ReservationPayment) error {
	const query = `
        INSERT INTO reservation_payments (id, reservation_id, amount_cents, payment_status, method, memo)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		payment.ID,
		payment.ReservationID,
		payment.AmountCents,
		payment.Status,
		payment.Method,
		payment.Memo,
	).Scan(&payment.CreatedAt)
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (*domain.ReservationPayment, error) {
	const query = `
        SELECT id, reservation_id, amount_cents, payment_status, method, memo, created_at
        FROM reservation_payments WHERE id=$1`

	var payment domain.ReservationPayment
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&payment.ID,
		&payment.ReservationID,
		&payment.AmountCents,
		&payment.Status,
		&payment.Method,
		&payment.Memo,
		&payment.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) ListByReservation(ctx context.Context, reservationID string) ([]domain.ReservationPayment, error) {
	const query = `
        SELECT id, reservation_id, amount_cents, payment_status, method, memo, created_at
        FROM reservation_payments WHERE reservation_id=$1
        ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ReservationPayment
	for rows.Next() {
		var payment domain.ReservationPayment
		if err := rows.Scan(
			&payment.ID,
			&payment.ReservationID,
			&payment.AmountCents,
			&payment.Status,
			&payment.Method,
			&payment.Memo,
			&payment.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, payment)
	}
	return result, rows.Err()
}

// MarkCompleted sets the payment to completed and returns the updated row.
// Re-applying the completed status to an already-completed payment is a
// functional no-op, which keeps the operation safe to retry.
func (r *paymentRepository) MarkCompleted(ctx context.Context, id string) (*domain.ReservationPayment, error) {
	const query = `
        UPDATE reservation_payments SET payment_status=$2
        WHERE id=$1
        RETURNING id, reservation_id, amount_cents, payment_status, method, memo, created_at`

	var payment domain.ReservationPayment
	if err := r.pool.QueryRow(ctx, query, id, domain.PaymentStatusCompleted).Scan(
		&payment.ID,
		&payment.ReservationID,
		&payment.AmountCents,
		&payment.Status,
		&payment.Method,
		&payment.Memo,
		&payment.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &payment, nil
}
