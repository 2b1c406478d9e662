package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/mail"
	"github.com/spec-kit/helpdesk-service/internal/repository"
)

// NotificationService turns ticket events into requester mail. Every handler
// swallows its own errors; a broken SMTP relay must never fail a ticket
// mutation.
type NotificationService struct {
	tickets  repository.TicketRepository
	profiles repository.ProfileRepository
	mailer   *mail.Mailer
	logger   *zap.Logger
}

// NotificationDependencies bundles collaborators for the notification service.
type NotificationDependencies struct {
	TicketRepo  repository.TicketRepository
	ProfileRepo repository.ProfileRepository
	Mailer      *mail.Mailer
	Logger      *zap.Logger
}

// NewNotificationService constructs the service.
func NewNotificationService(deps NotificationDependencies) *NotificationService {
	return &NotificationService{
		tickets:  deps.TicketRepo,
		profiles: deps.ProfileRepo,
		mailer:   deps.Mailer,
		logger:   deps.Logger,
	}
}

// HandleTicketCreated acknowledges intake to the requester.
func (s *NotificationService) HandleTicketCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCreatedPayload)
	if !ok {
		return nil
	}
	requester, err := s.requesterFor(ctx, event.TicketID)
	if err != nil || requester == nil {
		return err
	}
	msg := mail.TicketCreated(payload.Code, payload.Title)
	s.deliver(requester.Email, msg, event)
	return nil
}

// HandleStatusChanged notifies the requester of workflow moves, except the
// ones the requester made themselves.
func (s *NotificationService) HandleStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketStatusChangedPayload)
	if !ok {
		return nil
	}
	requester, err := s.requesterFor(ctx, event.TicketID)
	if err != nil || requester == nil {
		return err
	}
	if event.ActorID != nil && *event.ActorID == requester.ID {
		return nil
	}
	msg := mail.TicketStatusChanged(payload.Code, string(payload.OldStatus), string(payload.NewStatus))
	s.deliver(requester.Email, msg, event)
	return nil
}

// HandleAssigned tells the requester who picked up the ticket.
func (s *NotificationService) HandleAssigned(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketAssignedPayload)
	if !ok || payload.AssigneeID == nil {
		return nil
	}
	requester, err := s.requesterFor(ctx, event.TicketID)
	if err != nil || requester == nil {
		return err
	}
	assignee, err := s.profiles.GetByID(ctx, *payload.AssigneeID)
	if err != nil {
		s.logger.Warn("notification assignee lookup failed", zap.Error(err))
		return nil
	}
	msg := mail.TicketAssigned(payload.Code, assignee.Name)
	s.deliver(requester.Email, msg, event)
	return nil
}

// HandleCommentAdded notifies the requester of public replies from staff.
// Internal notes and the requester's own replies are skipped.
func (s *NotificationService) HandleCommentAdded(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCommentAddedPayload)
	if !ok {
		return nil
	}
	if payload.Visibility != domain.CommentVisibilityPublic {
		return nil
	}
	requester, err := s.requesterFor(ctx, event.TicketID)
	if err != nil || requester == nil {
		return err
	}
	if payload.AuthorID != nil && *payload.AuthorID == requester.ID {
		return nil
	}
	msg := mail.TicketCommented(payload.Code)
	s.deliver(requester.Email, msg, event)
	return nil
}

func (s *NotificationService) requesterFor(ctx context.Context, ticketID string) (*domain.Profile, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		s.logger.Warn("notification ticket lookup failed",
			zap.String("ticket_id", ticketID),
			zap.Error(err))
		return nil, nil
	}
	requester, err := s.profiles.GetByID(ctx, ticket.RequesterID)
	if err != nil {
		s.logger.Warn("notification requester lookup failed",
			zap.String("ticket_id", ticketID),
			zap.Error(err))
		return nil, nil
	}
	if !requester.Active {
		return nil, nil
	}
	return requester, nil
}

func (s *NotificationService) deliver(to string, msg mail.Message, event events.Event) {
	if err := s.mailer.Send(to, msg.Subject, msg.HTML, msg.Text); err != nil {
		s.logger.Warn("notification delivery failed",
			zap.String("event_type", string(event.Type)),
			zap.String("ticket_id", event.TicketID),
			zap.Error(err))
	}
}
