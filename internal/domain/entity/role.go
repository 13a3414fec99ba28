// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role a user can have in the system.
// Roles have no ordering; checks are equality or membership only.
type Role string

const (
	// RoleAnon indicates an unauthenticated caller.
	RoleAnon Role = "ANON"
	// RoleUser indicates a regular user, the default for new accounts.
	RoleUser Role = "USER"
	// RoleDealer indicates a dealer account.
	RoleDealer Role = "DEALER"
	// RolePlatformAdmin indicates a platform administrator.
	RolePlatformAdmin Role = "PLATFORM_ADMIN"
	// RoleSystem indicates an internal service identity.
	RoleSystem Role = "SYSTEM"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAnon, RoleUser, RoleDealer, RolePlatformAdmin, RoleSystem:
		return true
	default:
		return false
	}
}

// OrDefault returns the role itself when valid, RoleUser otherwise.
func (r Role) OrDefault() Role {
	if r.IsValid() {
		return r
	}

	return RoleUser
}
