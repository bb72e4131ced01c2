package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/reservation-service/internal/domain"
)

// ProfileRepository defines persistence access for user profiles.
type ProfileRepository interface {
	Upsert(ctx context.Context, profile *domain.UserProfile) error
	GetBySubjectID(ctx context.Context, subjectID string) (*domain.UserProfile, error)
	GetByEmail(ctx context.Context, email string) (*domain.UserProfile, error)
	PromoteRole(ctx context.Context, subjectID string, from, to domain.Role) (bool, error)
	UpdatePasswordHash(ctx context.Context, subjectID, hash string) error
}

type profileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository returns a Postgres-backed implementation.
func NewProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &profileRepository{pool: pool}
}

// Upsert writes the profile atomically keyed by subject_id. The conflict
// update list deliberately excludes role, so a concurrent upsert can never
// overwrite the stored role of an existing profile.
func (r *profileRepository) Upsert(ctx context.Context, profile *domain.UserProfile) error {
	const query = `
        INSERT INTO user_profiles (subject_id, email, name, phone, password_hash, role)
        VALUES ($1,$2,$3,$4,$5,$6)
        ON CONFLICT (subject_id) DO UPDATE SET
            email = COALESCE(NULLIF(EXCLUDED.email, ''), user_profiles.email),
            name = COALESCE(NULLIF(EXCLUDED.name, ''), user_profiles.name),
            phone = COALESCE(NULLIF(EXCLUDED.phone, ''), user_profiles.phone),
            password_hash = COALESCE(NULLIF(EXCLUDED.password_hash, ''), user_profiles.password_hash),
            updated_at = NOW()
        RETURNING role, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		profile.SubjectID,
		profile.Email,
		profile.Name,
		profile.Phone,
		profile.PasswordHash,
		profile.Role,
	).Scan(&profile.Role, &profile.CreatedAt, &profile.UpdatedAt)
}

func (r *profileRepository) GetBySubjectID(ctx context.Context, subjectID string) (*domain.UserProfile, error) {
	const query = `
        SELECT subject_id, email, name, phone, password_hash, role, created_at, updated_at
        FROM user_profiles WHERE subject_id=$1`
	return r.fetchSingle(ctx, query, subjectID)
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*domain.UserProfile, error) {
	const query = `
        SELECT subject_id, email, name, phone, password_hash, role, created_at, updated_at
        FROM user_profiles WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *profileRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&profile.SubjectID,
		&profile.Email,
		&profile.Name,
		&profile.Phone,
		&profile.PasswordHash,
		&profile.Role,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &profile, nil
}

// PromoteRole transitions the role in a single guarded update. The WHERE
// clause pins the expected current role, so concurrent promotions of the
// same subject converge: whichever write lands first wins and the rest
// report no change.
func (r *profileRepository) PromoteRole(ctx context.Context, subjectID string, from, to domain.Role) (bool, error) {
	const query = `
        UPDATE user_profiles SET role=$3, updated_at=NOW()
        WHERE subject_id=$1 AND role=$2`

	cmd, err := r.pool.Exec(ctx, query, subjectID, from, to)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *profileRepository) UpdatePasswordHash(ctx context.Context, subjectID, hash string) error {
	const query = `
        UPDATE user_profiles SET password_hash=$2, updated_at=NOW()
        WHERE subject_id=$1`

	cmd, err := r.pool.Exec(ctx, query, subjectID, hash)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
