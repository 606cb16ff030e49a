package auth

import (
	"testing"

	"irrigation-server/entities"

	"github.com/stretchr/testify/assert"
)

func TestRoleCapabilities(t *testing.T) {
	assert.True(t, HasCapability(entities.RoleAdmin, CapManageUsers))
	assert.True(t, HasCapability(entities.RoleAdmin, CapIngest))

	assert.True(t, HasCapability(entities.RoleMaintainer, CapWrite))
	assert.False(t, HasCapability(entities.RoleMaintainer, CapManageUsers))

	assert.True(t, HasCapability(entities.RoleViewer, CapRead))
	assert.False(t, HasCapability(entities.RoleViewer, CapWrite))

	// Device accounts can only push readings.
	assert.True(t, HasCapability(entities.RoleEspNode, CapIngest))
	assert.False(t, HasCapability(entities.RoleEspNode, CapRead))
}

func TestUnknownRoleGrantsNothing(t *testing.T) {
	assert.False(t, HasCapability("ROLE_BOGUS", CapRead))
	assert.Empty(t, Capabilities("ROLE_BOGUS"))
}

func TestCapabilitiesReturnsCopy(t *testing.T) {
	caps := Capabilities(entities.RoleViewer)
	caps[0] = CapManageUsers
	assert.False(t, HasCapability(entities.RoleViewer, CapManageUsers))
}
