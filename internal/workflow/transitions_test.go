package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

func TestIsAllowedTransitionReflexive(t *testing.T) {
	for _, status := range domain.AllTicketStatuses {
		assert.True(t, IsAllowedTransition(status, status), "status %s must allow itself", status)
	}
}

func TestIsAllowedTransitionTable(t *testing.T) {
	cases := []struct {
		name string
		from domain.TicketStatus
		to   domain.TicketStatus
		want bool
	}{
		{"new to assigned", domain.TicketStatusNew, domain.TicketStatusAssigned, true},
		{"new to closed", domain.TicketStatusNew, domain.TicketStatusClosed, true},
		{"assigned back to new", domain.TicketStatusAssigned, domain.TicketStatusNew, true},
		{"in progress to new", domain.TicketStatusInProgress, domain.TicketStatusNew, false},
		{"needs info to closed", domain.TicketStatusNeedsInfo, domain.TicketStatusClosed, false},
		{"waiting to closed", domain.TicketStatusWaitingThirdParty, domain.TicketStatusClosed, false},
		{"resolved to closed", domain.TicketStatusResolved, domain.TicketStatusClosed, true},
		{"closed reopen in progress", domain.TicketStatusClosed, domain.TicketStatusInProgress, true},
		{"closed reopen assigned", domain.TicketStatusClosed, domain.TicketStatusAssigned, true},
		{"closed to resolved", domain.TicketStatusClosed, domain.TicketStatusResolved, false},
		{"closed to new", domain.TicketStatusClosed, domain.TicketStatusNew, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsAllowedTransition(tc.from, tc.to))
		})
	}
}

func TestIsAllowedTransitionUnknownFrom(t *testing.T) {
	for _, to := range domain.AllTicketStatuses {
		assert.False(t, IsAllowedTransition(domain.TicketStatus("ARCHIVED"), to))
	}
}
