// Package authz holds the capability table consulted for every guarded
// route: one rule per (resource, action) pair, covering both the role
// allow-list and the ownership requirement. Handlers and the role-guard
// middleware read the table instead of re-implementing checks.
package authz

import "github.com/harentsoaR/wedding-api/internal/models"

type Resource string

const (
	ResourceUser            Resource = "user"
	ResourceAdmin           Resource = "admin"
	ResourceVendor          Resource = "vendor"
	ResourceEventMgmtVendor Resource = "eventMgmtVendor"
	ResourceVenue           Resource = "venue"
	ResourceWeddingPackage  Resource = "weddingPackage"
	ResourceBooking         Resource = "booking"
)

type Action string

const (
	ActionList   Action = "list"
	ActionGet    Action = "get"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Ownership is the identity requirement checked by handlers once the
// target document has been loaded.
type Ownership int

const (
	// OwnershipNone: the role allow-list alone decides.
	OwnershipNone Ownership = iota
	// OwnershipOwner: the caller id must match the recorded owner.
	OwnershipOwner
	// OwnershipOwnerOrAdmin: the owner, or any admin.
	OwnershipOwnerOrAdmin
)

type Rule struct {
	Roles     []string // empty means any authenticated caller
	Ownership Ownership
}

var policy = map[Resource]map[Action]Rule{
	ResourceUser: {
		ActionList:   {Roles: []string{models.RoleAdmin}},
		ActionGet:    {Ownership: OwnershipOwnerOrAdmin},
		ActionUpdate: {Ownership: OwnershipOwnerOrAdmin},
		ActionDelete: {Ownership: OwnershipOwnerOrAdmin},
	},
	ResourceAdmin: {
		ActionGet:    {Roles: []string{models.RoleAdmin}},
		ActionCreate: {Roles: []string{models.RoleAdmin}},
		ActionUpdate: {Roles: []string{models.RoleAdmin}},
		ActionDelete: {Roles: []string{models.RoleAdmin}},
	},
	ResourceVendor: {
		ActionCreate: {Roles: []string{models.RoleAdmin, models.RoleEventMgmtVendor}},
		ActionUpdate: {Roles: []string{models.RoleAdmin, models.RoleEventMgmtVendor}},
		ActionDelete: {Roles: []string{models.RoleAdmin, models.RoleEventMgmtVendor}},
	},
	ResourceEventMgmtVendor: {
		ActionCreate: {Roles: []string{models.RoleAdmin}},
		ActionUpdate: {Roles: []string{models.RoleAdmin}},
		ActionDelete: {Roles: []string{models.RoleAdmin}},
	},
	ResourceVenue: {
		ActionCreate: {Roles: []string{models.RoleEventMgmtVendor}},
		ActionUpdate: {Roles: []string{models.RoleEventMgmtVendor}, Ownership: OwnershipOwner},
		ActionDelete: {Roles: []string{models.RoleEventMgmtVendor}, Ownership: OwnershipOwner},
	},
	ResourceWeddingPackage: {
		ActionCreate: {Roles: []string{models.RoleEventMgmtVendor}},
		ActionUpdate: {Ownership: OwnershipOwner},
		ActionDelete: {Ownership: OwnershipOwner},
	},
	ResourceBooking: {
		ActionCreate: {Roles: []string{models.RoleUser}},
		ActionUpdate: {Ownership: OwnershipOwner},
		ActionDelete: {Ownership: OwnershipOwner},
	},
}

// For looks up the rule for a resource/action pair. A pair absent from
// the table yields the zero Rule: any authenticated caller, no
// ownership requirement.
func For(res Resource, action Action) Rule {
	return policy[res][action]
}

// AllowsRole reports whether role passes the rule's allow-list.
func (r Rule) AllowsRole(role string) bool {
	if len(r.Roles) == 0 {
		return true
	}
	for _, allowed := range r.Roles {
		if role == allowed {
			return true
		}
	}
	return false
}

// PermitsOwner evaluates the rule's ownership requirement for a caller
// against the owner id recorded on the target document.
func (r Rule) PermitsOwner(role, callerID, ownerID string) bool {
	switch r.Ownership {
	case OwnershipOwner:
		return callerID == ownerID
	case OwnershipOwnerOrAdmin:
		return callerID == ownerID || role == models.RoleAdmin
	default:
		return true
	}
}
