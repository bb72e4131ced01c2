package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/reservation-service/internal/domain"
)

// QuoteRepository handles persistence for quote aggregates.
type QuoteRepository interface {
	Create(ctx context.Context, quote *domain.Quote) error
	GetByID(ctx context.Context, id string) (*domain.Quote, error)
	MarkPaid(ctx context.Context, id string) error
}

type quoteRepository struct {
	pool *pgxpool.Pool
}

// NewQuoteRepository instantiates the repository.
func NewQuoteRepository(pool *pgxpool.Pool) QuoteRepository {
	return &quoteRepository{pool: pool}
}

func (r *quoteRepository) Create(ctx context.Context, quote *domain.Quote) error {
	const query = `
        INSERT INTO quotes (id, title, payment_status)
        VALUES ($1,$2,$3)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		quote.ID,
		quote.Title,
		quote.PaymentStatus,
	).Scan(&quote.CreatedAt, &quote.UpdatedAt)
}

func (r *quoteRepository) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	const query = `
        SELECT id, title, payment_status, created_at, updated_at
        FROM quotes WHERE id=$1`

	var quote domain.Quote
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&quote.ID,
		&quote.Title,
		&quote.PaymentStatus,
		&quote.CreatedAt,
		&quote.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &quote, nil
}

func (r *quoteRepository) MarkPaid(ctx context.Context, id string) error {
	const query = `
        UPDATE quotes SET payment_status=$2, updated_at=NOW() WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id, domain.QuotePaid)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
