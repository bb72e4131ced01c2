package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/reservation-service/internal/domain"
	"github.com/spec-kit/reservation-service/internal/events"
	"github.com/spec-kit/reservation-service/internal/repository"
)

// RoleService reads roles from the profile store and owns the single
// mutating transition: the one-way guest to member promotion. Pure
// derivations (IsAdmin, IsManager, CanReserve, RedirectPath) live on
// domain.Role itself.
type RoleService struct {
	profiles   repository.ProfileRepository
	dispatcher events.Dispatcher
}

// PromotionResult reports the outcome of a promotion attempt. Changed is
// false when the subject already held member or above; that is a success,
// not an error, which keeps the operation safe to call on every
// reservation creation.
type PromotionResult struct {
	Role    domain.Role
	Changed bool
}

// NewRoleService constructs the service.
func NewRoleService(profiles repository.ProfileRepository, dispatcher events.Dispatcher) *RoleService {
	return &RoleService{profiles: profiles, dispatcher: dispatcher}
}

// RoleOf returns the persisted role for a subject.
func (s *RoleService) RoleOf(ctx context.Context, subjectID string) (domain.Role, error) {
	profile, err := s.profiles.GetBySubjectID(ctx, subjectID)
	if err != nil {
		return "", err
	}
	return profile.Role, nil
}

// RedirectPathFor maps a role to its default landing route. Total over
// all inputs; unknown roles land on the guest page.
func (s *RoleService) RedirectPathFor(role domain.Role) string {
	return role.RedirectPath()
}

// PromoteGuestToMember performs the one-way promotion. Callers invoke it
// from the reservation-creation path; calling it for a subject who is not
// a guest is a no-op. The underlying update is guarded on the current
// role, so concurrent promotions converge on member either way.
func (s *RoleService) PromoteGuestToMember(ctx context.Context, subjectID string) (PromotionResult, error) {
	if subjectID == "" {
		return PromotionResult{}, errors.New("subject id required")
	}

	profile, err := s.profiles.GetBySubjectID(ctx, subjectID)
	if err != nil {
		return PromotionResult{}, err
	}
	if profile.Role != domain.RoleGuest {
		return PromotionResult{Role: profile.Role, Changed: false}, nil
	}

	changed, err := s.profiles.PromoteRole(ctx, subjectID, domain.RoleGuest, domain.RoleMember)
	if err != nil {
		return PromotionResult{}, err
	}
	if !changed {
		// lost the race to another promotion; the subject is member now
		return PromotionResult{Role: domain.RoleMember, Changed: false}, nil
	}

	s.publish(ctx, events.Event{
		Type:      events.EventRolePromoted,
		SubjectID: subjectID,
		Payload: events.RolePromotedPayload{
			OldRole: domain.RoleGuest,
			NewRole: domain.RoleMember,
		},
	})
	return PromotionResult{Role: domain.RoleMember, Changed: true}, nil
}

func (s *RoleService) publish(ctx context.Context, event events.Event) {
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
