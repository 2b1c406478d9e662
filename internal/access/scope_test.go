package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestResolveScopeNilActorDeniesAll(t *testing.T) {
	scope := ResolveScope(nil, []string{"loc-1"})
	assert.True(t, scope.Filter)
	assert.False(t, scope.FullAccess)
	assert.Empty(t, scope.LocationIDs)
}

func TestResolveScopeAdminAndAuditorSeeEverything(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleAuditor} {
		scope := ResolveScope(&domain.Profile{Role: role}, nil)
		assert.True(t, scope.FullAccess, "role %s", role)
		assert.False(t, scope.Filter, "role %s", role)
	}
}

func TestResolveScopeSupervisorWithFlagSeesEverything(t *testing.T) {
	actor := &domain.Profile{Role: domain.RoleSupervisor, CanViewAllReports: true}
	scope := ResolveScope(actor, []string{"loc-1"})
	assert.True(t, scope.FullAccess)
}

func TestResolveScopeSupervisorUnionOfAssignmentsAndPrimary(t *testing.T) {
	actor := &domain.Profile{Role: domain.RoleSupervisor, LocationID: strPtr("loc-3")}
	scope := ResolveScope(actor, []string{"loc-1", "loc-2", "loc-1"})
	assert.True(t, scope.Filter)
	assert.False(t, scope.FullAccess)
	assert.ElementsMatch(t, []string{"loc-1", "loc-2", "loc-3"}, scope.LocationIDs)
}

func TestResolveScopeSupervisorPrimaryNotDuplicated(t *testing.T) {
	actor := &domain.Profile{Role: domain.RoleSupervisor, LocationID: strPtr("loc-1")}
	scope := ResolveScope(actor, []string{"loc-1"})
	assert.Equal(t, []string{"loc-1"}, scope.LocationIDs)
}

func TestResolveScopeSupervisorEmptySetMeansZeroRows(t *testing.T) {
	actor := &domain.Profile{Role: domain.RoleSupervisor}
	scope := ResolveScope(actor, nil)
	assert.True(t, scope.Filter)
	assert.False(t, scope.FullAccess)
	assert.Empty(t, scope.LocationIDs)
}

func TestResolveScopeOtherRolesDenyAll(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleRequester, domain.RoleAgentL1, domain.RoleAgentL2} {
		scope := ResolveScope(&domain.Profile{Role: role, LocationID: strPtr("loc-1")}, []string{"loc-2"})
		assert.True(t, scope.Filter, "role %s", role)
		assert.False(t, scope.FullAccess, "role %s", role)
		assert.Empty(t, scope.LocationIDs, "role %s", role)
	}
}
