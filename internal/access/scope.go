package access

import "github.com/spec-kit/helpdesk-service/internal/domain"

// Scope describes the row visibility of an actor. When Filter is set the
// caller must restrict queries to LocationIDs; an empty filtered set means
// zero rows are visible, never all rows.
type Scope struct {
	Filter      bool
	LocationIDs []string
	FullAccess  bool
}

// ResolveScope computes the location scope for the given actor.
// assignedLocationIDs are the actor's explicit location assignments; the
// actor's primary location is merged in for supervisors.
//
// Admins and auditors see everything, as do supervisors with the
// view-all-reports flag. Plain supervisors are restricted to their locations.
// Every other role (and an unauthenticated caller) resolves to a deny-all
// scope; those callers are expected to have been rejected upstream already.
func ResolveScope(actor *domain.Profile, assignedLocationIDs []string) Scope {
	if actor == nil {
		return Scope{Filter: true}
	}

	switch actor.Role {
	case domain.RoleAdmin, domain.RoleAuditor:
		return Scope{FullAccess: true}
	case domain.RoleSupervisor:
		if actor.CanViewAllReports {
			return Scope{FullAccess: true}
		}
		ids := make([]string, 0, len(assignedLocationIDs)+1)
		seen := make(map[string]struct{}, len(assignedLocationIDs)+1)
		for _, id := range assignedLocationIDs {
			if _, dup := seen[id]; dup || id == "" {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
		if actor.LocationID != nil && *actor.LocationID != "" {
			if _, dup := seen[*actor.LocationID]; !dup {
				ids = append(ids, *actor.LocationID)
			}
		}
		return Scope{Filter: true, LocationIDs: ids}
	default:
		return Scope{Filter: true}
	}
}
