package domain

// Role represents the authorization level of a user profile.
type Role string

const (
	RoleGuest   Role = "guest"
	RoleMember  Role = "member"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// Valid reports whether the role is one of the known levels.
func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleMember, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// IsAdmin reports whether the role is admin.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// IsManager reports whether the role carries manager capability (manager or admin).
func (r Role) IsManager() bool {
	return r == RoleManager || r == RoleAdmin
}

// CanReserve reports whether the role may create reservations.
// Guests must be promoted to member first.
func (r Role) CanReserve() bool {
	return r == RoleMember || r.IsManager()
}

// RedirectPath maps a role to its default landing route. Total: any
// unknown or empty role falls through to the guest landing page.
func (r Role) RedirectPath() string {
	switch r {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleManager:
		return "/manager/dashboard"
	case RoleMember:
		return "/member/home"
	default:
		return "/welcome"
	}
}
