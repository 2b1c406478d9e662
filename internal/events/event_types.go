package events

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketReprioritized EventType = "ticket_reprioritized"
	EventTicketAssigned      EventType = "ticket_assigned"
	EventTicketCommentAdded  EventType = "ticket_comment_added"
	EventTicketDeleted       EventType = "ticket_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	ActorID   *string     `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Code        string  `json:"code"`
	RequesterID string  `json:"requester_id"`
	LocationID  *string `json:"location_id,omitempty"`
	Priority    int     `json:"priority"`
	Title       string  `json:"title"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	Code      string              `json:"code"`
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
	Comment   string              `json:"comment,omitempty"`
}

// TicketReprioritizedPayload payload.
type TicketReprioritizedPayload struct {
	Code        string `json:"code"`
	OldPriority int    `json:"old_priority"`
	NewPriority int    `json:"new_priority"`
	Impact      int    `json:"impact"`
	Urgency     int    `json:"urgency"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	Code       string  `json:"code"`
	AssigneeID *string `json:"assignee_id,omitempty"`
}

// TicketCommentAddedPayload payload.
type TicketCommentAddedPayload struct {
	Code       string                   `json:"code"`
	CommentID  string                   `json:"comment_id"`
	Visibility domain.CommentVisibility `json:"visibility"`
	AuthorID   *string                  `json:"author_id,omitempty"`
}

// TicketDeletedPayload payload.
type TicketDeletedPayload struct {
	Code string `json:"code"`
}
