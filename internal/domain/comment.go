package domain

import "time"

// CommentVisibility differentiates requester-visible replies from agent notes.
type CommentVisibility string

const (
	CommentVisibilityPublic   CommentVisibility = "PUBLIC"
	CommentVisibilityInternal CommentVisibility = "INTERNAL"
)

// TicketComment captures communications in a ticket thread.
type TicketComment struct {
	ID          string
	TicketID    string
	AuthorID    *string
	Visibility  CommentVisibility
	Body        string
	Attachments []AttachmentRef
	CreatedAt   time.Time
}

// AttachmentRef stores metadata for files kept in the object store.
type AttachmentRef struct {
	ID         string
	CommentID  string
	StorageKey string
	FileName   string
	MimeType   string
	SizeBytes  int64
	CreatedAt  time.Time
}
