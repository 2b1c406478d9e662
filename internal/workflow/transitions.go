package workflow

import "github.com/spec-kit/helpdesk-service/internal/domain"

// allowedTransitions maps each status to its permitted successors. CLOSED is
// not terminal: reopening to IN_PROGRESS or ASSIGNED is allowed here, with the
// same-day reopen policy for requesters enforced by the ticket service.
var allowedTransitions = map[domain.TicketStatus][]domain.TicketStatus{
	domain.TicketStatusNew: {
		domain.TicketStatusAssigned,
		domain.TicketStatusInProgress,
		domain.TicketStatusNeedsInfo,
		domain.TicketStatusWaitingThirdParty,
		domain.TicketStatusResolved,
		domain.TicketStatusClosed,
	},
	domain.TicketStatusAssigned: {
		domain.TicketStatusNew,
		domain.TicketStatusAssigned,
		domain.TicketStatusInProgress,
		domain.TicketStatusNeedsInfo,
		domain.TicketStatusWaitingThirdParty,
		domain.TicketStatusResolved,
		domain.TicketStatusClosed,
	},
	domain.TicketStatusInProgress: {
		domain.TicketStatusAssigned,
		domain.TicketStatusNeedsInfo,
		domain.TicketStatusWaitingThirdParty,
		domain.TicketStatusResolved,
		domain.TicketStatusClosed,
	},
	domain.TicketStatusNeedsInfo: {
		domain.TicketStatusAssigned,
		domain.TicketStatusInProgress,
		domain.TicketStatusWaitingThirdParty,
		domain.TicketStatusResolved,
	},
	domain.TicketStatusWaitingThirdParty: {
		domain.TicketStatusAssigned,
		domain.TicketStatusInProgress,
		domain.TicketStatusNeedsInfo,
		domain.TicketStatusResolved,
	},
	domain.TicketStatusResolved: {
		domain.TicketStatusClosed,
		domain.TicketStatusInProgress,
		domain.TicketStatusAssigned,
	},
	domain.TicketStatusClosed: {
		domain.TicketStatusInProgress,
		domain.TicketStatusAssigned,
	},
}

// IsAllowedTransition reports whether a ticket may move from one status to
// another. A no-op transition is always allowed so reassignment flows can
// re-submit the current status. Unknown statuses have no successors.
func IsAllowedTransition(from, to domain.TicketStatus) bool {
	if from == to {
		return true
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
