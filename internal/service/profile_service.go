package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/reservation-service/internal/domain"
	"github.com/spec-kit/reservation-service/internal/events"
	"github.com/spec-kit/reservation-service/internal/repository"
)

// ProfileService owns the create-or-update lifecycle of user profiles.
// It runs at signup and login; the one invariant it defends is that an
// existing profile's role is never changed by an upsert, whatever role
// hint the caller passes. Role changes flow through RoleService only.
type ProfileService struct {
	profiles   repository.ProfileRepository
	dispatcher events.Dispatcher
}

// NewProfileService constructs the service.
func NewProfileService(profiles repository.ProfileRepository, dispatcher events.Dispatcher) *ProfileService {
	return &ProfileService{profiles: profiles, dispatcher: dispatcher}
}

// UpsertProfile creates or refreshes the profile for a subject.
//
// Existing profile: non-empty incoming fields are merged, the stored role
// wins unconditionally and updated_at is refreshed. Missing profile: a new
// one is created with role = attrs.RoleHint when valid, guest otherwise.
// The write itself is an atomic conflict-resolving upsert whose update
// list excludes role, so the invariant holds even when two upserts race.
func (s *ProfileService) UpsertProfile(ctx context.Context, subjectID, email string, attrs domain.ProfileAttrs) (*domain.UserProfile, error) {
	if subjectID == "" {
		return nil, errors.New("subject id required")
	}

	existing, err := s.profiles.GetBySubjectID(ctx, subjectID)
	if err != nil && err != pgx.ErrNoRows {
		return nil, err
	}

	if existing != nil {
		profile := existing.ApplyAttrs(email, attrs)
		if err := s.profiles.Upsert(ctx, profile); err != nil {
			return nil, err
		}
		return profile, nil
	}

	profile := domain.NewUserProfile(subjectID, email, attrs)
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{
		Type:      events.EventProfileCreated,
		SubjectID: profile.SubjectID,
		Payload: events.ProfileCreatedPayload{
			Email: profile.Email,
			Role:  profile.Role,
		},
	})
	return profile, nil
}

// GetProfile fetches the profile for a subject.
func (s *ProfileService) GetProfile(ctx context.Context, subjectID string) (*domain.UserProfile, error) {
	return s.profiles.GetBySubjectID(ctx, subjectID)
}

func (s *ProfileService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
