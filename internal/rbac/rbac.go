package rbac

import "taskguard/internal/auth"

// SuperAdmin bypasses any role requirement unless the requirement
// explicitly opts out.
const SuperAdmin = "super-admin"

// Requirement is a declarative role check attached to an endpoint.
type Requirement struct {
	Roles           []string
	RequireAll      bool
	AllowSuperAdmin bool
}

// NewRequirement builds the default any-of requirement with the
// super-admin override enabled.
func NewRequirement(roles ...string) Requirement {
	return Requirement{Roles: roles, AllowSuperAdmin: true}
}

// All builds an all-of requirement with the super-admin override enabled.
func All(roles ...string) Requirement {
	return Requirement{Roles: roles, RequireAll: true, AllowSuperAdmin: true}
}

// Check decides allow/deny for a principal against the requirement.
func (r Requirement) Check(p *auth.Principal) bool {
	if len(r.Roles) == 0 {
		return true
	}
	if p == nil {
		return false
	}
	if r.AllowSuperAdmin && p.HasRole(SuperAdmin) {
		return true
	}
	if len(p.Roles) == 0 {
		return false
	}
	if r.RequireAll {
		for _, want := range r.Roles {
			if !p.HasRole(want) {
				return false
			}
		}
		return true
	}
	for _, want := range r.Roles {
		if p.HasRole(want) {
			return true
		}
	}
	return false
}

// hierarchy orders the well-known roles by privilege, highest first.
// Check never consults it; it exists for convenience comparisons.
var hierarchy = []string{SuperAdmin, "admin", "manager", "moderator", "user", "guest"}

// Level returns the privilege rank of a role, higher meaning more
// privileged. Unknown roles rank below guest at -1.
func Level(role string) int {
	for i, r := range hierarchy {
		if r == role {
			return len(hierarchy) - 1 - i
		}
	}
	return -1
}

// HasAtLeast reports whether any of the principal's roles ranks at or
// above the given role in the hierarchy.
func HasAtLeast(p *auth.Principal, role string) bool {
	if p == nil {
		return false
	}
	want := Level(role)
	if want < 0 {
		return false
	}
	for _, r := range p.Roles {
		if Level(r) >= want {
			return true
		}
	}
	return false
}
