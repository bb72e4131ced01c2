package domain

import (
	"strings"
	"time"
)

// UserProfile is the authoritative record for an authenticated subject.
// SubjectID comes from the identity provider and never changes; the
// profile is the sole source of the subject's role.
type UserProfile struct {
	SubjectID    string
	Email        string
	Name         string
	Phone        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProfileAttrs is the closed set of optional attributes accepted by a
// profile upsert. RoleHint applies on creation only; it is ignored for
// an existing profile.
type ProfileAttrs struct {
	Name     string
	Phone    string
	RoleHint Role
}

// NewUserProfile builds a fresh profile for an unknown subject. The role
// defaults to guest unless the attrs carry a valid hint.
func NewUserProfile(subjectID, email string, attrs ProfileAttrs) *UserProfile {
	role := RoleGuest
	if attrs.RoleHint.Valid() {
		role = attrs.RoleHint
	}
	return &UserProfile{
		SubjectID: subjectID,
		Email:     strings.TrimSpace(email),
		Name:      strings.TrimSpace(attrs.Name),
		Phone:     strings.TrimSpace(attrs.Phone),
		Role:      role,
	}
}

// ApplyAttrs merges non-empty incoming fields into an existing profile.
// The stored role always wins: a RoleHint on an existing profile is
// discarded. Returns the receiver for chaining.
func (p *UserProfile) ApplyAttrs(email string, attrs ProfileAttrs) *UserProfile {
	if v := strings.TrimSpace(email); v != "" {
		p.Email = v
	}
	if v := strings.TrimSpace(attrs.Name); v != "" {
		p.Name = v
	}
	if v := strings.TrimSpace(attrs.Phone); v != "" {
		p.Phone = v
	}
	return p
}
