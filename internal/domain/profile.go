package domain

import "time"

// Role enumerates helpdesk actor roles.
type Role string

const (
	RoleRequester  Role = "requester"
	RoleAgentL1    Role = "agent_l1"
	RoleAgentL2    Role = "agent_l2"
	RoleSupervisor Role = "supervisor"
	RoleAuditor    Role = "auditor"
	RoleAdmin      Role = "admin"
)

// IsAgent reports whether the role works tickets on behalf of others.
func (r Role) IsAgent() bool {
	switch r {
	case RoleAgentL1, RoleAgentL2, RoleSupervisor, RoleAdmin:
		return true
	}
	return false
}

// Profile models an authenticated actor. The permission flags widen access
// beyond role defaults; LocationID is the actor's primary site.
type Profile struct {
	ID                string
	Name              string
	Email             string
	PasswordHash      string
	Role              Role
	LocationID        *string
	CanViewAllReports bool
	CanManageAssets   bool
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
