package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harentsoaR/wedding-api/internal/models"
)

func TestRoleAllowLists(t *testing.T) {
	tests := []struct {
		resource Resource
		action   Action
		role     string
		allowed  bool
	}{
		{ResourceVenue, ActionCreate, models.RoleEventMgmtVendor, true},
		{ResourceVenue, ActionCreate, models.RoleUser, false},
		{ResourceVenue, ActionCreate, models.RoleAdmin, false},
		{ResourceBooking, ActionCreate, models.RoleUser, true},
		{ResourceBooking, ActionCreate, models.RoleAdmin, false},
		{ResourceVendor, ActionCreate, models.RoleAdmin, true},
		{ResourceVendor, ActionCreate, models.RoleEventMgmtVendor, true},
		{ResourceVendor, ActionCreate, models.RoleUser, false},
		{ResourceAdmin, ActionCreate, models.RoleAdmin, true},
		{ResourceAdmin, ActionCreate, models.RoleEventMgmtVendor, false},
		{ResourceEventMgmtVendor, ActionDelete, models.RoleAdmin, true},
		{ResourceEventMgmtVendor, ActionDelete, models.RoleEventMgmtVendor, false},
		{ResourceUser, ActionList, models.RoleAdmin, true},
		{ResourceUser, ActionList, models.RoleUser, false},
		// Package update has no role restriction, only ownership.
		{ResourceWeddingPackage, ActionUpdate, models.RoleUser, true},
	}

	for _, tt := range tests {
		rule := For(tt.resource, tt.action)
		assert.Equalf(t, tt.allowed, rule.AllowsRole(tt.role),
			"%s/%s for role %s", tt.resource, tt.action, tt.role)
	}
}

func TestOwnershipOwnerOnly(t *testing.T) {
	rule := For(ResourceBooking, ActionUpdate)

	assert.True(t, rule.PermitsOwner(models.RoleUser, "abc", "abc"))
	assert.False(t, rule.PermitsOwner(models.RoleUser, "abc", "def"))
	// Admins get no override on owner-only resources.
	assert.False(t, rule.PermitsOwner(models.RoleAdmin, "abc", "def"))
}

func TestOwnershipOwnerOrAdmin(t *testing.T) {
	rule := For(ResourceUser, ActionUpdate)

	assert.True(t, rule.PermitsOwner(models.RoleUser, "abc", "abc"))
	assert.True(t, rule.PermitsOwner(models.RoleAdmin, "abc", "def"))
	assert.False(t, rule.PermitsOwner(models.RoleUser, "abc", "def"))
}

func TestUnknownPairDefaultsOpen(t *testing.T) {
	rule := For(ResourceVendor, ActionList)

	assert.True(t, rule.AllowsRole(models.RoleUser))
	assert.True(t, rule.PermitsOwner(models.RoleUser, "abc", "def"))
}
