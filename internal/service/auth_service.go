package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/reservation-service/internal/auth"
	"github.com/spec-kit/reservation-service/internal/config"
	"github.com/spec-kit/reservation-service/internal/domain"
	"github.com/spec-kit/reservation-service/internal/repository"
)

// AuthService coordinates signup and login flows. It is the identity
// surface in front of the profile store: both paths run the profile
// upsert, which is what keeps profile attributes fresh without ever
// touching an existing role.
type AuthService struct {
	profiles   repository.ProfileRepository
	profileSvc *ProfileService
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	ProfileRepo    repository.ProfileRepository
	ProfileService *ProfileService
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		profiles:   deps.ProfileRepo,
		profileSvc: deps.ProfileService,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Signup creates a new subject with a guest profile.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*domain.UserProfile, string, time.Time, error) {
	if _, err := s.profiles.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, errors.New("email already registered")
	} else if err != pgx.ErrNoRows {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	subjectID := uuid.NewString()
	profile, err := s.profileSvc.UpsertProfile(ctx, subjectID, email, domain.ProfileAttrs{Name: name})
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if err := s.profiles.UpdatePasswordHash(ctx, subjectID, hash); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(profile.SubjectID, profile.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return profile, token, exp, nil
}

// Login authenticates a subject and refreshes the profile via upsert.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.UserProfile, string, time.Time, error) {
	profile, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(profile.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, errors.New("invalid credentials")
	}

	// refresh the stored attributes; the upsert never writes the role column
	profile, err = s.profileSvc.UpsertProfile(ctx, profile.SubjectID, email, domain.ProfileAttrs{})
	if err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(profile.SubjectID, profile.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return profile, token, exp, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, subjectID, currentPassword, newPassword string) error {
	profile, err := s.profiles.GetBySubjectID(ctx, subjectID)
	if err != nil {
		return err
	}
	if err := auth.ComparePassword(profile.PasswordHash, currentPassword); err != nil {
		return errors.New("invalid credentials")
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	return s.profiles.UpdatePasswordHash(ctx, subjectID, hash)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
