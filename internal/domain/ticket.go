package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusNew               TicketStatus = "NEW"
	TicketStatusAssigned          TicketStatus = "ASSIGNED"
	TicketStatusInProgress        TicketStatus = "IN_PROGRESS"
	TicketStatusNeedsInfo         TicketStatus = "NEEDS_INFO"
	TicketStatusWaitingThirdParty TicketStatus = "WAITING_THIRD_PARTY"
	TicketStatusResolved          TicketStatus = "RESOLVED"
	TicketStatusClosed            TicketStatus = "CLOSED"
)

// AllTicketStatuses lists every known status.
var AllTicketStatuses = []TicketStatus{
	TicketStatusNew,
	TicketStatusAssigned,
	TicketStatusInProgress,
	TicketStatusNeedsInfo,
	TicketStatusWaitingThirdParty,
	TicketStatusResolved,
	TicketStatusClosed,
}

// Ticket is the aggregate for helpdesk requests. Priority is derived from
// impact and urgency, never set directly. Deleted tickets stay in storage
// with DeletedAt set.
type Ticket struct {
	ID           string
	TicketNumber int64
	Code         string
	RequesterID  string
	AssigneeID   *string
	LocationID   *string
	Title        string
	Description  string
	Status       TicketStatus
	Impact       int
	Urgency      int
	Priority     int
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ClosedAt     *time.Time
	DeletedAt    *time.Time
}

// IsDeleted reports whether the ticket has been soft-deleted.
func (t *Ticket) IsDeleted() bool {
	return t.DeletedAt != nil
}
