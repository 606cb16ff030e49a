package auth

import "irrigation-server/entities"

// Capability is a single permission an endpoint can require. Routes
// declare the capability they need; roles map to capability sets, so
// there is no per-endpoint role enumeration.
type Capability string

const (
	CapRead        Capability = "read"
	CapWrite       Capability = "write"
	CapManageUsers Capability = "manage-users"
	CapIngest      Capability = "ingest"
)

var roleCapabilities = map[string][]Capability{
	entities.RoleAdmin:      {CapRead, CapWrite, CapManageUsers, CapIngest},
	entities.RoleMaintainer: {CapRead, CapWrite},
	entities.RoleViewer:     {CapRead},
	entities.RoleEspNode:    {CapIngest},
}

// HasCapability reports whether the named role grants the capability.
// Unknown roles grant nothing.
func HasCapability(roleName string, cap Capability) bool {
	for _, c := range roleCapabilities[roleName] {
		if c == cap {
			return true
		}
	}
	return false
}

// Capabilities returns the capability set for a role.
func Capabilities(roleName string) []Capability {
	caps := roleCapabilities[roleName]
	out := make([]Capability, len(caps))
	copy(out, caps)
	return out
}
