package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/helpdesk-service/internal/access"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/storage"
	"github.com/spec-kit/helpdesk-service/internal/workflow"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets     repository.TicketRepository
	comments    repository.CommentRepository
	attachments repository.AttachmentRepository
	profiles    repository.ProfileRepository
	audits      repository.AuditRepository
	audit       *AuditRecorder
	dispatcher  events.Dispatcher
	store       *storage.ObjectStore
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo     repository.TicketRepository
	CommentRepo    repository.CommentRepository
	AttachmentRepo repository.AttachmentRepository
	ProfileRepo    repository.ProfileRepository
	AuditRepo      repository.AuditRepository
	Audit          *AuditRecorder
	Dispatcher     events.Dispatcher
	Store          *storage.ObjectStore
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	Impact      int
	Urgency     int
	LocationID  *string
}

// TicketListFilter describes listing filters shared by requester and agent views.
type TicketListFilter struct {
	Statuses    []domain.TicketStatus
	Priorities  []int
	SearchTerm  *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// CommentAttachmentInput defines attachment metadata for a new comment.
type CommentAttachmentInput struct {
	StorageKey string
	FileName   string
	MimeType   string
	SizeBytes  int64
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:     deps.TicketRepo,
		comments:    deps.CommentRepo,
		attachments: deps.AttachmentRepo,
		profiles:    deps.ProfileRepo,
		audits:      deps.AuditRepo,
		audit:       deps.Audit,
		dispatcher:  deps.Dispatcher,
		store:       deps.Store,
	}
}

// CreateTicket opens a ticket for a requester. Priority is derived from the
// impact/urgency pair; the human-readable code is derived from the sequence
// number after insert.
func (s *TicketService) CreateTicket(ctx context.Context, requester *domain.Profile, input TicketCreateInput) (*domain.Ticket, error) {
	if err := validateSeverity(input.Impact, input.Urgency); err != nil {
		return nil, err
	}

	locationID := input.LocationID
	if locationID == nil {
		locationID = requester.LocationID
	}

	ticket := &domain.Ticket{
		RequesterID: requester.ID,
		LocationID:  locationID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Status:      domain.TicketStatusNew,
		Impact:      input.Impact,
		Urgency:     input.Urgency,
		Priority:    workflow.ComputePriority(input.Impact, input.Urgency),
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	ticket.Code = workflow.FormatTicketCode(ticket.TicketNumber, &ticket.CreatedAt)
	if err := s.tickets.SetCode(ctx, ticket.ID, ticket.Code); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "ticket", ticket.ID, "created", &requester.ID, map[string]any{
		"code":     ticket.Code,
		"priority": ticket.Priority,
	})
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		ActorID:  &requester.ID,
		Payload: events.TicketCreatedPayload{
			Code:        ticket.Code,
			RequesterID: ticket.RequesterID,
			LocationID:  ticket.LocationID,
			Priority:    ticket.Priority,
			Title:       ticket.Title,
		},
	})
	return ticket, nil
}

// ListForRequester returns the requester's own tickets.
func (s *TicketService) ListForRequester(ctx context.Context, requesterID string, filter TicketListFilter) ([]domain.Ticket, error) {
	repoFilter := repository.TicketFilter{
		RequesterID: &requesterID,
		Statuses:    filter.Statuses,
		Priorities:  filter.Priorities,
		CreatedFrom: filter.CreatedFrom,
		CreatedTo:   filter.CreatedTo,
		Limit:       filter.Limit,
		Offset:      filter.Offset,
	}
	return s.tickets.ListWithFilter(ctx, repoFilter)
}

// GetForRequester fetches a ticket ensuring ownership, with public comments.
func (s *TicketService) GetForRequester(ctx context.Context, requesterID, ticketID string) (*domain.Ticket, []domain.TicketComment, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, nil, err
	}
	if ticket.IsDeleted() || ticket.RequesterID != requesterID {
		return nil, nil, apperrors.NewNotFound("ticket", nil)
	}
	comments, err := s.visibleComments(ctx, ticket.ID)
	if err != nil {
		return nil, nil, err
	}
	return ticket, comments, nil
}

// ListForAgent returns tickets within the agent's location scope.
func (s *TicketService) ListForAgent(ctx context.Context, agent *domain.Profile, filter TicketListFilter) ([]domain.Ticket, error) {
	scope, err := s.agentScope(ctx, agent)
	if err != nil {
		return nil, err
	}
	repoFilter := repository.TicketFilter{
		Statuses:    filter.Statuses,
		Priorities:  filter.Priorities,
		SearchTerm:  filter.SearchTerm,
		CreatedFrom: filter.CreatedFrom,
		CreatedTo:   filter.CreatedTo,
		Limit:       filter.Limit,
		Offset:      filter.Offset,
	}
	if !scope.FullAccess {
		repoFilter.LocationScoped = true
		repoFilter.LocationIDs = scope.LocationIDs
	}
	return s.tickets.ListWithFilter(ctx, repoFilter)
}

// GetForAgent fetches a ticket ensuring the agent may see it, with all comments.
func (s *TicketService) GetForAgent(ctx context.Context, agent *domain.Profile, ticketID string) (*domain.Ticket, []domain.TicketComment, error) {
	ticket, err := s.getAccessibleTicket(ctx, agent, ticketID)
	if err != nil {
		return nil, nil, err
	}
	comments, err := s.commentsWithAttachments(ctx, ticket.ID)
	if err != nil {
		return nil, nil, err
	}
	return ticket, comments, nil
}

// Assign hands the ticket to an agent and moves it to ASSIGNED.
func (s *TicketService) Assign(ctx context.Context, actor *domain.Profile, ticketID, assigneeID string) (*domain.Ticket, error) {
	ticket, err := s.getAccessibleTicket(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}

	assignee, err := s.profiles.GetByID(ctx, assigneeID)
	if err != nil {
		return nil, err
	}
	if !assignee.Role.IsAgent() || !assignee.Active {
		return nil, apperrors.NewValidationError("assignee must be an active agent", nil)
	}

	if !workflow.IsAllowedTransition(ticket.Status, domain.TicketStatusAssigned) {
		return nil, apperrors.NewConflict(
			fmt.Sprintf("cannot assign ticket in status %s", ticket.Status), nil)
	}

	oldStatus := ticket.Status
	ticket.Status = domain.TicketStatusAssigned
	ticket.AssigneeID = &assignee.ID
	ticket.ClosedAt = nil
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "ticket", ticket.ID, "assigned", &actor.ID, map[string]any{
		"assignee_id": assignee.ID,
		"old_status":  oldStatus,
	})
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		ActorID:  &actor.ID,
		Payload: events.TicketAssignedPayload{
			Code:       ticket.Code,
			AssigneeID: ticket.AssigneeID,
		},
	})
	return ticket, nil
}

// ChangeStatus moves the ticket through the workflow.
func (s *TicketService) ChangeStatus(ctx context.Context, actor *domain.Profile, ticketID string, newStatus domain.TicketStatus, comment string) (*domain.Ticket, error) {
	ticket, err := s.getAccessibleTicket(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}
	if !workflow.IsAllowedTransition(ticket.Status, newStatus) {
		return nil, apperrors.NewConflict(
			fmt.Sprintf("transition %s -> %s is not allowed", ticket.Status, newStatus), nil)
	}

	oldStatus := ticket.Status
	if newStatus == domain.TicketStatusClosed {
		now := time.Now()
		ticket.ClosedAt = &now
	} else if ticket.ClosedAt != nil {
		ticket.ClosedAt = nil
	}
	ticket.Status = newStatus
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "ticket", ticket.ID, "status_changed", &actor.ID, map[string]any{
		"old_status": oldStatus,
		"new_status": newStatus,
		"comment":    comment,
	})
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		ActorID:  &actor.ID,
		Payload: events.TicketStatusChangedPayload{
			Code:      ticket.Code,
			OldStatus: oldStatus,
			NewStatus: newStatus,
			Comment:   comment,
		},
	})
	return ticket, nil
}

// Reprioritize recomputes priority from a new impact/urgency pair.
func (s *TicketService) Reprioritize(ctx context.Context, actor *domain.Profile, ticketID string, impact, urgency int) (*domain.Ticket, error) {
	if err := validateSeverity(impact, urgency); err != nil {
		return nil, err
	}
	ticket, err := s.getAccessibleTicket(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}

	oldPriority := ticket.Priority
	ticket.Impact = impact
	ticket.Urgency = urgency
	ticket.Priority = workflow.ComputePriority(impact, urgency)
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "ticket", ticket.ID, "reprioritized", &actor.ID, map[string]any{
		"old_priority": oldPriority,
		"new_priority": ticket.Priority,
	})
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketReprioritized,
		TicketID: ticket.ID,
		ActorID:  &actor.ID,
		Payload: events.TicketReprioritizedPayload{
			Code:        ticket.Code,
			OldPriority: oldPriority,
			NewPriority: ticket.Priority,
			Impact:      impact,
			Urgency:     urgency,
		},
	})
	return ticket, nil
}

// AddComment appends a comment to a ticket. Requesters may only post public
// replies on their own tickets; agents may also post internal notes.
func (s *TicketService) AddComment(ctx context.Context, actor *domain.Profile, ticketID string, visibility domain.CommentVisibility, body string, attachments []CommentAttachmentInput) (*domain.TicketComment, error) {
	var ticket *domain.Ticket
	var err error

	if actor.Role.IsAgent() {
		ticket, err = s.getAccessibleTicket(ctx, actor, ticketID)
		if err != nil {
			return nil, err
		}
	} else {
		ticket, err = s.tickets.GetByID(ctx, ticketID)
		if err != nil {
			return nil, err
		}
		if ticket.IsDeleted() || ticket.RequesterID != actor.ID {
			return nil, apperrors.NewNotFound("ticket", nil)
		}
		if visibility != domain.CommentVisibilityPublic {
			return nil, apperrors.NewForbidden("requesters can only post public replies")
		}
	}

	comment := &domain.TicketComment{
		TicketID:   ticket.ID,
		AuthorID:   &actor.ID,
		Visibility: visibility,
		Body:       strings.TrimSpace(body),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	for _, att := range attachments {
		record := &domain.AttachmentRef{
			CommentID:  comment.ID,
			StorageKey: att.StorageKey,
			FileName:   att.FileName,
			MimeType:   att.MimeType,
			SizeBytes:  att.SizeBytes,
		}
		if err := s.attachments.Create(ctx, record); err != nil {
			return nil, err
		}
		comment.Attachments = append(comment.Attachments, *record)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCommentAdded,
		TicketID: ticket.ID,
		ActorID:  &actor.ID,
		Payload: events.TicketCommentAddedPayload{
			Code:       ticket.Code,
			CommentID:  comment.ID,
			Visibility: comment.Visibility,
			AuthorID:   comment.AuthorID,
		},
	})
	return comment, nil
}

// CloseAsRequester lets the requester confirm resolution.
func (s *TicketService) CloseAsRequester(ctx context.Context, requesterID, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.IsDeleted() || ticket.RequesterID != requesterID {
		return nil, apperrors.NewNotFound("ticket", nil)
	}
	if ticket.Status != domain.TicketStatusResolved {
		return nil, apperrors.NewConflict("only resolved tickets can be closed by the requester", nil)
	}

	oldStatus := ticket.Status
	now := time.Now()
	ticket.Status = domain.TicketStatusClosed
	ticket.ClosedAt = &now
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "ticket", ticket.ID, "status_changed", &requesterID, map[string]any{
		"old_status": oldStatus,
		"new_status": ticket.Status,
		"comment":    "requester_closed",
	})
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		ActorID:  &requesterID,
		Payload: events.TicketStatusChangedPayload{
			Code:      ticket.Code,
			OldStatus: oldStatus,
			NewStatus: ticket.Status,
			Comment:   "requester_closed",
		},
	})
	return ticket, nil
}

// ReopenAsRequester reopens a closed ticket, but only on the closing calendar
// day in the helpdesk time zone. Agent-initiated reopens go through
// ChangeStatus and carry no time restriction.
func (s *TicketService) ReopenAsRequester(ctx context.Context, requesterID, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.IsDeleted() || ticket.RequesterID != requesterID {
		return nil, apperrors.NewNotFound("ticket", nil)
	}
	if ticket.Status != domain.TicketStatusClosed || ticket.ClosedAt == nil {
		return nil, apperrors.NewConflict("only closed tickets can be reopened", nil)
	}
	if !workflow.SameCodeDay(*ticket.ClosedAt, time.Now()) {
		return nil, apperrors.NewConflict("reopen window has passed; open a new ticket instead", nil)
	}

	newStatus := domain.TicketStatusInProgress
	if ticket.AssigneeID != nil {
		newStatus = domain.TicketStatusAssigned
	}
	if !workflow.IsAllowedTransition(ticket.Status, newStatus) {
		return nil, apperrors.NewConflict("ticket cannot be reopened", nil)
	}

	oldStatus := ticket.Status
	ticket.Status = newStatus
	ticket.ClosedAt = nil
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "ticket", ticket.ID, "reopened", &requesterID, map[string]any{
		"old_status": oldStatus,
		"new_status": newStatus,
	})
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		ActorID:  &requesterID,
		Payload: events.TicketStatusChangedPayload{
			Code:      ticket.Code,
			OldStatus: oldStatus,
			NewStatus: newStatus,
			Comment:   "requester_reopened",
		},
	})
	return ticket, nil
}

// SoftDelete flags a ticket as deleted without removing it.
func (s *TicketService) SoftDelete(ctx context.Context, actor *domain.Profile, ticketID string) error {
	if actor.Role != domain.RoleAdmin {
		return apperrors.NewForbidden("only administrators can delete tickets")
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return err
	}
	if ticket.IsDeleted() {
		return apperrors.NewConflict("ticket already deleted", nil)
	}
	if err := s.tickets.SoftDelete(ctx, ticket.ID); err != nil {
		return err
	}

	s.audit.Record(ctx, "ticket", ticket.ID, "deleted", &actor.ID, map[string]any{
		"code": ticket.Code,
	})
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketDeleted,
		TicketID: ticket.ID,
		ActorID:  &actor.ID,
		Payload:  events.TicketDeletedPayload{Code: ticket.Code},
	})
	return nil
}

// UploadAttachment validates the file's magic number against its declared
// type and stores it, returning the storage key for the comment reference.
func (s *TicketService) UploadAttachment(ctx context.Context, fileName, declaredMime string, head []byte, body io.Reader) (string, error) {
	if s.store == nil {
		return "", apperrors.NewInternalError(fmt.Errorf("object store not configured"))
	}
	if !storage.SniffMatches(head, declaredMime) {
		return "", apperrors.NewValidationError("file content does not match declared type", map[string]any{
			"file_name": fileName,
			"mime_type": declaredMime,
		})
	}
	key := "attachments/" + uuid.NewString()
	if err := s.store.Upload(ctx, key, declaredMime, io.MultiReader(bytes.NewReader(head), body)); err != nil {
		return "", err
	}
	return key, nil
}

// AttachmentURL returns a signed download URL for a stored attachment.
func (s *TicketService) AttachmentURL(ctx context.Context, storageKey string) (string, error) {
	if s.store == nil {
		return "", apperrors.NewInternalError(fmt.Errorf("object store not configured"))
	}
	return s.store.SignedURL(ctx, storageKey)
}

// AuditTrail lists the audit history of one ticket, newest first. The actor
// must be able to see the ticket itself.
func (s *TicketService) AuditTrail(ctx context.Context, actor *domain.Profile, ticketID string) ([]domain.AuditEntry, error) {
	ticket, err := s.getAccessibleTicket(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}
	entityType := "ticket"
	return s.audits.List(ctx, repository.AuditFilter{
		EntityType: &entityType,
		EntityID:   &ticket.ID,
	})
}

func (s *TicketService) agentScope(ctx context.Context, agent *domain.Profile) (access.Scope, error) {
	switch agent.Role {
	case domain.RoleAdmin, domain.RoleAuditor:
		return access.Scope{FullAccess: true}, nil
	case domain.RoleSupervisor:
		assigned, err := s.profiles.ListLocationIDs(ctx, agent.ID)
		if err != nil {
			return access.Scope{}, err
		}
		return access.ResolveScope(agent, assigned), nil
	case domain.RoleAgentL1, domain.RoleAgentL2:
		assigned, err := s.profiles.ListLocationIDs(ctx, agent.ID)
		if err != nil {
			return access.Scope{}, err
		}
		ids := assigned
		if agent.LocationID != nil && *agent.LocationID != "" {
			ids = append(ids, *agent.LocationID)
		}
		return access.Scope{Filter: true, LocationIDs: ids}, nil
	default:
		return access.Scope{Filter: true}, nil
	}
}

func (s *TicketService) getAccessibleTicket(ctx context.Context, agent *domain.Profile, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.IsDeleted() {
		return nil, apperrors.NewNotFound("ticket", nil)
	}

	scope, err := s.agentScope(ctx, agent)
	if err != nil {
		return nil, err
	}
	if scope.FullAccess {
		return ticket, nil
	}
	if ticket.AssigneeID != nil && *ticket.AssigneeID == agent.ID {
		return ticket, nil
	}
	if ticket.LocationID != nil {
		for _, id := range scope.LocationIDs {
			if id == *ticket.LocationID {
				return ticket, nil
			}
		}
	}
	// Same response as a missing ticket so existence is not disclosed.
	return nil, apperrors.NewNotFound("ticket", nil)
}

func (s *TicketService) visibleComments(ctx context.Context, ticketID string) ([]domain.TicketComment, error) {
	comments, err := s.commentsWithAttachments(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	filtered := make([]domain.TicketComment, 0, len(comments))
	for _, comment := range comments {
		if comment.Visibility == domain.CommentVisibilityInternal {
			continue
		}
		filtered = append(filtered, comment)
	}
	return filtered, nil
}

func (s *TicketService) commentsWithAttachments(ctx context.Context, ticketID string) ([]domain.TicketComment, error) {
	comments, err := s.comments.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	for i := range comments {
		attachments, err := s.attachments.ListByComment(ctx, comments[i].ID)
		if err != nil {
			return nil, err
		}
		comments[i].Attachments = attachments
	}
	return comments, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func validateSeverity(impact, urgency int) error {
	details := map[string]any{}
	if impact < 1 || impact > 4 {
		details["impact"] = "must be between 1 and 4"
	}
	if urgency < 1 || urgency > 4 {
		details["urgency"] = "must be between 1 and 4"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid severity", details)
	}
	return nil
}
