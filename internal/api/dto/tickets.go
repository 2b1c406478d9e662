package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description" validate:"required"`
	Impact      int     `json:"impact" validate:"required,min=1,max=4"`
	Urgency     int     `json:"urgency" validate:"required,min=1,max=4"`
	LocationID  *string `json:"location_id" validate:"omitempty,uuid4"`
}

// AssignTicketRequest payload.
type AssignTicketRequest struct {
	AssigneeID string `json:"assignee_id" validate:"required,uuid4"`
}

// ChangeStatusRequest payload.
type ChangeStatusRequest struct {
	Status  domain.TicketStatus `json:"status" validate:"required"`
	Comment string              `json:"comment" validate:"max=2000"`
}

// ReprioritizeRequest payload.
type ReprioritizeRequest struct {
	Impact  int `json:"impact" validate:"required,min=1,max=4"`
	Urgency int `json:"urgency" validate:"required,min=1,max=4"`
}

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Body        string                    `json:"body" validate:"required,max=10000"`
	Visibility  *domain.CommentVisibility `json:"visibility" validate:"omitempty,oneof=PUBLIC INTERNAL"`
	Attachments []AttachmentRequest       `json:"attachments" validate:"dive"`
}

// AttachmentRequest describes attachment input referencing an uploaded object.
type AttachmentRequest struct {
	StorageKey string `json:"storage_key" validate:"required"`
	FileName   string `json:"file_name" validate:"required"`
	MimeType   string `json:"mime_type" validate:"required"`
	SizeBytes  int64  `json:"size_bytes" validate:"min=0"`
}

// TicketSummary response.
type TicketSummary struct {
	ID         string              `json:"id"`
	Code       string              `json:"code"`
	Title      string              `json:"title"`
	Status     domain.TicketStatus `json:"status"`
	Priority   int                 `json:"priority"`
	AssigneeID *string             `json:"assignee_id,omitempty"`
	LocationID *string             `json:"location_id,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// TicketDetailResponse provides full ticket info with thread.
type TicketDetailResponse struct {
	ID          string              `json:"id"`
	Code        string              `json:"code"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      domain.TicketStatus `json:"status"`
	Impact      int                 `json:"impact"`
	Urgency     int                 `json:"urgency"`
	Priority    int                 `json:"priority"`
	RequesterID string              `json:"requester_id"`
	AssigneeID  *string             `json:"assignee_id,omitempty"`
	LocationID  *string             `json:"location_id,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	ClosedAt    *time.Time          `json:"closed_at,omitempty"`
	Comments    []CommentResponse   `json:"comments"`
}

// CommentResponse represents a thread entry.
type CommentResponse struct {
	ID          string                   `json:"id"`
	AuthorID    *string                  `json:"author_id,omitempty"`
	Visibility  domain.CommentVisibility `json:"visibility"`
	Body        string                   `json:"body"`
	Attachments []AttachmentResponse     `json:"attachments"`
	CreatedAt   time.Time                `json:"created_at"`
}

// AttachmentResponse metadata.
type AttachmentResponse struct {
	ID         string `json:"id"`
	StorageKey string `json:"storage_key"`
	FileName   string `json:"file_name"`
	MimeType   string `json:"mime_type"`
	SizeBytes  int64  `json:"size_bytes"`
}

// AuditEntryResponse represents one audit trail row.
type AuditEntryResponse struct {
	ID        string         `json:"id"`
	Action    string         `json:"action"`
	ActorID   *string        `json:"actor_id,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// UploadResponse returns the storage key for a staged attachment.
type UploadResponse struct {
	StorageKey string `json:"storage_key"`
}

// TicketFromDomain maps a ticket to its summary representation.
func TicketFromDomain(t *domain.Ticket) TicketSummary {
	return TicketSummary{
		ID:         t.ID,
		Code:       t.Code,
		Title:      t.Title,
		Status:     t.Status,
		Priority:   t.Priority,
		AssigneeID: t.AssigneeID,
		LocationID: t.LocationID,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

// TicketDetailFromDomain maps a ticket plus thread to the detail response.
func TicketDetailFromDomain(t *domain.Ticket, comments []domain.TicketComment) TicketDetailResponse {
	resp := TicketDetailResponse{
		ID:          t.ID,
		Code:        t.Code,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Impact:      t.Impact,
		Urgency:     t.Urgency,
		Priority:    t.Priority,
		RequesterID: t.RequesterID,
		AssigneeID:  t.AssigneeID,
		LocationID:  t.LocationID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		ClosedAt:    t.ClosedAt,
		Comments:    make([]CommentResponse, 0, len(comments)),
	}
	for i := range comments {
		resp.Comments = append(resp.Comments, CommentFromDomain(&comments[i]))
	}
	return resp
}

// AuditEntryFromDomain maps an audit entry for the ticket trail view.
func AuditEntryFromDomain(e *domain.AuditEntry) AuditEntryResponse {
	return AuditEntryResponse{
		ID:        e.ID,
		Action:    e.Action,
		ActorID:   e.ActorID,
		Metadata:  e.Metadata,
		CreatedAt: e.CreatedAt,
	}
}

// CommentFromDomain maps a comment with its attachments.
func CommentFromDomain(c *domain.TicketComment) CommentResponse {
	resp := CommentResponse{
		ID:          c.ID,
		AuthorID:    c.AuthorID,
		Visibility:  c.Visibility,
		Body:        c.Body,
		Attachments: make([]AttachmentResponse, 0, len(c.Attachments)),
		CreatedAt:   c.CreatedAt,
	}
	for _, att := range c.Attachments {
		resp.Attachments = append(resp.Attachments, AttachmentResponse{
			ID:         att.ID,
			StorageKey: att.StorageKey,
			FileName:   att.FileName,
			MimeType:   att.MimeType,
			SizeBytes:  att.SizeBytes,
		})
	}
	return resp
}
