// Copyright (c) 2026 Votra. All rights reserved.
// Author: platform@votra.app

package sec

// # Voter Roles

// VoterRole represents the authorization level granted to an electorate account.
type VoterRole string

const (
	// Unrestricted access to election administration surfaces
	RoleAdmin VoterRole = "admin"

	// Default role for a registered voter
	RoleVoter VoterRole = "voter"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r VoterRole) AtLeast(target VoterRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r VoterRole) level() int {

	// Linear scale (10-40) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 40
	case RoleVoter:
		return 10
	default:
		return 0
	}
}
