package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/reservation-service/internal/domain"
)

// ReservationRepository encapsulates reservation persistence. The payment
// reconciler only reads reservations to resolve the quote linkage; writes
// come from the booking surface.
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) error
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	ListBySubject(ctx context.Context, subjectID string, limit, offset int) ([]domain.Reservation, error)
	UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error
}

type reservationRepository struct {
	pool *pgxpool.Pool
}

// NewReservationRepository instantiates the repository.
func NewReservationRepository(pool *pgxpool.Pool) ReservationRepository {
	return &reservationRepository{pool: pool}
}

func (r *reservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	const query = `
        INSERT INTO reservations (id, subject_id, quote_id, guest_count, scheduled_for, status, notes)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		reservation.ID,
		reservation.SubjectID,
		reservation.QuoteID,
		reservation.GuestCount,
		reservation.ScheduledFor,
		reservation.Status,
		reservation.Notes,
	).Scan(&reservation.CreatedAt, &reservation.UpdatedAt)
}

func (r *reservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	const query = `
        SELECT id, subject_id, quote_id, guest_count, scheduled_for, status, notes, created_at, updated_at
        FROM reservations WHERE id=$1`

	var reservation domain.Reservation
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&reservation.ID,
		&reservation.SubjectID,
		&reservation.QuoteID,
		&reservation.GuestCount,
		&reservation.ScheduledFor,
		&reservation.Status,
		&reservation.Notes,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *reservationRepository) ListBySubject(ctx context.Context, subjectID string, limit, offset int) ([]domain.Reservation, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	const query = `
        SELECT id, subject_id, quote_id, guest_count, scheduled_for, status, notes, created_at, updated_at
        FROM reservations WHERE subject_id=$1
        ORDER BY scheduled_for DESC LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, subjectID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Reservation
	for rows.Next() {
		var reservation domain.Reservation
		if err := rows.Scan(
			&reservation.ID,
			&reservation.SubjectID,
			&reservation.QuoteID,
			&reservation.GuestCount,
			&reservation.ScheduledFor,
			&reservation.Status,
			&reservation.Notes,
			&reservation.CreatedAt,
			&reservation.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, reservation)
	}
	return result, rows.Err()
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error {
	const query = `
        UPDATE reservations SET status=$2, updated_at=NOW() WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
