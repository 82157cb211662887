// Package policy holds the access decisions for writings: who may read,
// who may edit, and what slice of a collection a viewer may list. The
// functions are pure so they can be checked without standing up HTTP or
// storage, and they take the viewer and the resource explicitly instead
// of reading ambient session state.
package policy

import (
	"github.com/google/uuid"
)

type Role string

const (
	RoleWriter Role = "writer"
	RoleAdmin  Role = "admin"
)

// Viewer is the caller's identity for access decisions.
// The zero value is an anonymous viewer.
type Viewer struct {
	ID            uuid.UUID
	Role          Role
	Authenticated bool
}

func Anonymous() Viewer {
	return Viewer{}
}

func Authenticated(id uuid.UUID, role Role) Viewer {
	return Viewer{ID: id, Role: role, Authenticated: true}
}

func (v Viewer) IsAdmin() bool {
	return v.Authenticated && v.Role == RoleAdmin
}

// Resource is the slice of a writing the policy needs to see.
type Resource interface {
	OwnerID() uuid.UUID
	IsPublic() bool
}

// CanRead reports whether the viewer may see the resource at all.
// Public resources are readable by anyone; private ones only by their
// owner or an admin.
func CanRead(v Viewer, r Resource) bool {
	if r.IsPublic() {
		return true
	}
	if !v.Authenticated {
		return false
	}
	return v.ID == r.OwnerID() || v.Role == RoleAdmin
}

// CanEdit reports whether the viewer may mutate the resource.
// Visibility never affects edit rights: owners edit their own writings
// public or private, admins edit anything.
func CanEdit(v Viewer, r Resource) bool {
	if !v.Authenticated {
		return false
	}
	return v.ID == r.OwnerID() || v.Role == RoleAdmin
}

// ListScope is the widest set of writings a viewer may list.
type ListScope int

const (
	// ScopePublicOnly: anonymous viewers.
	ScopePublicOnly ListScope = iota
	// ScopePublicOrOwn: authenticated non-admins see public writings
	// plus their own, any visibility.
	ScopePublicOrOwn
	// ScopeEverything: admins.
	ScopeEverything
)

func ScopeFor(v Viewer) ListScope {
	switch {
	case v.IsAdmin():
		return ScopeEverything
	case v.Authenticated:
		return ScopePublicOrOwn
	default:
		return ScopePublicOnly
	}
}

// Allows reports whether a resource falls inside the scope for the
// given viewer.
func (s ListScope) Allows(v Viewer, r Resource) bool {
	switch s {
	case ScopeEverything:
		return true
	case ScopePublicOrOwn:
		return r.IsPublic() || r.OwnerID() == v.ID
	default:
		return r.IsPublic()
	}
}
