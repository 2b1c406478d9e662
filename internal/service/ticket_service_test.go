package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

func newTicketServiceForTest(tickets *mockTicketRepo, comments *mockCommentRepo, attachments *mockAttachmentRepo, profiles *mockProfileRepo, audits *mockAuditRepo) *TicketService {
	return NewTicketService(TicketDependencies{
		TicketRepo:     tickets,
		CommentRepo:    comments,
		AttachmentRepo: attachments,
		ProfileRepo:    profiles,
		AuditRepo:      audits,
		Audit:          NewAuditRecorder(audits, zap.NewNop()),
	})
}

func requesterProfile(id string) *domain.Profile {
	loc := "loc-1"
	return &domain.Profile{ID: id, Role: domain.RoleRequester, LocationID: &loc, Active: true}
}

func adminProfile(id string) *domain.Profile {
	return &domain.Profile{ID: id, Role: domain.RoleAdmin, Active: true}
}

func TestCreateTicketComputesPriorityAndCode(t *testing.T) {
	tickets := new(mockTicketRepo)
	audits := new(mockAuditRepo)
	svc := newTicketServiceForTest(tickets, new(mockCommentRepo), new(mockAttachmentRepo), new(mockProfileRepo), audits)

	createdAt := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	tickets.On("Create", mock.Anything, mock.MatchedBy(func(tk *domain.Ticket) bool {
		return tk.Priority == 1 && tk.Status == domain.TicketStatusNew
	})).Run(func(args mock.Arguments) {
		tk := args.Get(1).(*domain.Ticket)
		tk.ID = "tkt-1"
		tk.TicketNumber = 7
		tk.CreatedAt = createdAt
	}).Return(nil)
	tickets.On("SetCode", mock.Anything, "tkt-1", "20240305-0007").Return(nil)
	audits.On("Create", mock.Anything, mock.Anything).Return(nil)

	ticket, err := svc.CreateTicket(context.Background(), requesterProfile("req-1"), TicketCreateInput{
		Title:       "Printer down",
		Description: "Second floor printer does not respond",
		Impact:      1,
		Urgency:     2,
	})
	require.NoError(t, err)
	assert.Equal(t, "20240305-0007", ticket.Code)
	assert.Equal(t, 1, ticket.Priority)
	assert.Equal(t, "loc-1", *ticket.LocationID)
	tickets.AssertExpectations(t)
}

func TestCreateTicketRejectsInvalidSeverity(t *testing.T) {
	svc := newTicketServiceForTest(new(mockTicketRepo), new(mockCommentRepo), new(mockAttachmentRepo), new(mockProfileRepo), new(mockAuditRepo))

	_, err := svc.CreateTicket(context.Background(), requesterProfile("req-1"), TicketCreateInput{
		Title:   "x",
		Impact:  0,
		Urgency: 5,
	})
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	assert.Contains(t, domainErr.Details, "impact")
	assert.Contains(t, domainErr.Details, "urgency")
}

func TestChangeStatusRejectsForbiddenTransition(t *testing.T) {
	tickets := new(mockTicketRepo)
	svc := newTicketServiceForTest(tickets, new(mockCommentRepo), new(mockAttachmentRepo), new(mockProfileRepo), new(mockAuditRepo))

	tickets.On("GetByID", mock.Anything, "tkt-1").Return(&domain.Ticket{
		ID:     "tkt-1",
		Status: domain.TicketStatusNeedsInfo,
	}, nil)

	_, err := svc.ChangeStatus(context.Background(), adminProfile("adm-1"), "tkt-1", domain.TicketStatusClosed, "")
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)
	tickets.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestChangeStatusClosedSetsClosedAt(t *testing.T) {
	tickets := new(mockTicketRepo)
	audits := new(mockAuditRepo)
	svc := newTicketServiceForTest(tickets, new(mockCommentRepo), new(mockAttachmentRepo), new(mockProfileRepo), audits)

	tickets.On("GetByID", mock.Anything, "tkt-1").Return(&domain.Ticket{
		ID:     "tkt-1",
		Status: domain.TicketStatusResolved,
	}, nil)
	tickets.On("Update", mock.Anything, mock.MatchedBy(func(tk *domain.Ticket) bool {
		return tk.Status == domain.TicketStatusClosed && tk.ClosedAt != nil
	})).Return(nil)
	audits.On("Create", mock.Anything, mock.Anything).Return(nil)

	ticket, err := svc.ChangeStatus(context.Background(), adminProfile("adm-1"), "tkt-1", domain.TicketStatusClosed, "done")
	require.NoError(t, err)
	assert.NotNil(t, ticket.ClosedAt)
}

func TestAssignRequiresActiveAgent(t *testing.T) {
	tickets := new(mockTicketRepo)
	profiles := new(mockProfileRepo)
	svc := newTicketServiceForTest(tickets, new(mockCommentRepo), new(mockAttachmentRepo), profiles, new(mockAuditRepo))

	tickets.On("GetByID", mock.Anything, "tkt-1").Return(&domain.Ticket{
		ID:     "tkt-1",
		Status: domain.TicketStatusNew,
	}, nil)
	profiles.On("GetByID", mock.Anything, "req-9").Return(&domain.Profile{
		ID: "req-9", Role: domain.RoleRequester, Active: true,
	}, nil)

	_, err := svc.Assign(context.Background(), adminProfile("adm-1"), "tkt-1", "req-9")
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}

func TestReopenAsRequesterSameDay(t *testing.T) {
	tickets := new(mockTicketRepo)
	audits := new(mockAuditRepo)
	svc := newTicketServiceForTest(tickets, new(mockCommentRepo), new(mockAttachmentRepo), new(mockProfileRepo), audits)

	closedAt := time.Now().Add(-time.Hour)
	assignee := "agt-1"
	tickets.On("GetByID", mock.Anything, "tkt-1").Return(&domain.Ticket{
		ID:          "tkt-1",
		RequesterID: "req-1",
		AssigneeID:  &assignee,
		Status:      domain.TicketStatusClosed,
		ClosedAt:    &closedAt,
	}, nil)
	tickets.On("Update", mock.Anything, mock.MatchedBy(func(tk *domain.Ticket) bool {
		return tk.Status == domain.TicketStatusAssigned && tk.ClosedAt == nil
	})).Return(nil)
	audits.On("Create", mock.Anything, mock.Anything).Return(nil)

	ticket, err := svc.ReopenAsRequester(context.Background(), "req-1", "tkt-1")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusAssigned, ticket.Status)
}

func TestReopenAsRequesterWindowPassed(t *testing.T) {
	tickets := new(mockTicketRepo)
	svc := newTicketServiceForTest(tickets, new(mockCommentRepo), new(mockAttachmentRepo), new(mockProfileRepo), new(mockAuditRepo))

	closedAt := time.Now().Add(-72 * time.Hour)
	tickets.On("GetByID", mock.Anything, "tkt-1").Return(&domain.Ticket{
		ID:          "tkt-1",
		RequesterID: "req-1",
		Status:      domain.TicketStatusClosed,
		ClosedAt:    &closedAt,
	}, nil)

	_, err := svc.ReopenAsRequester(context.Background(), "req-1", "tkt-1")
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)
}

func TestGetForRequesterHidesOtherTickets(t *testing.T) {
	tickets := new(mockTicketRepo)
	svc := newTicketServiceForTest(tickets, new(mockCommentRepo), new(mockAttachmentRepo), new(mockProfileRepo), new(mockAuditRepo))

	tickets.On("GetByID", mock.Anything, "tkt-1").Return(&domain.Ticket{
		ID:          "tkt-1",
		RequesterID: "someone-else",
		Status:      domain.TicketStatusNew,
	}, nil)

	_, _, err := svc.GetForRequester(context.Background(), "req-1", "tkt-1")
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestGetForRequesterFiltersInternalComments(t *testing.T) {
	tickets := new(mockTicketRepo)
	comments := new(mockCommentRepo)
	attachments := new(mockAttachmentRepo)
	svc := newTicketServiceForTest(tickets, comments, attachments, new(mockProfileRepo), new(mockAuditRepo))

	tickets.On("GetByID", mock.Anything, "tkt-1").Return(&domain.Ticket{
		ID:          "tkt-1",
		RequesterID: "req-1",
		Status:      domain.TicketStatusInProgress,
	}, nil)
	comments.On("ListByTicket", mock.Anything, "tkt-1").Return([]domain.TicketComment{
		{ID: "c-1", Visibility: domain.CommentVisibilityPublic},
		{ID: "c-2", Visibility: domain.CommentVisibilityInternal},
	}, nil)
	attachments.On("ListByComment", mock.Anything, mock.Anything).Return([]domain.AttachmentRef{}, nil)

	_, visible, err := svc.GetForRequester(context.Background(), "req-1", "tkt-1")
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "c-1", visible[0].ID)
}

func TestAddCommentRequesterCannotPostInternal(t *testing.T) {
	tickets := new(mockTicketRepo)
	svc := newTicketServiceForTest(tickets, new(mockCommentRepo), new(mockAttachmentRepo), new(mockProfileRepo), new(mockAuditRepo))

	tickets.On("GetByID", mock.Anything, "tkt-1").Return(&domain.Ticket{
		ID:          "tkt-1",
		RequesterID: "req-1",
		Status:      domain.TicketStatusInProgress,
	}, nil)

	_, err := svc.AddComment(context.Background(), requesterProfile("req-1"), "tkt-1", domain.CommentVisibilityInternal, "note", nil)
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}

func TestListForAgentScopesToLocations(t *testing.T) {
	tickets := new(mockTicketRepo)
	profiles := new(mockProfileRepo)
	svc := newTicketServiceForTest(tickets, new(mockCommentRepo), new(mockAttachmentRepo), profiles, new(mockAuditRepo))

	loc := "loc-1"
	agent := &domain.Profile{ID: "agt-1", Role: domain.RoleAgentL1, LocationID: &loc, Active: true}
	profiles.On("ListLocationIDs", mock.Anything, "agt-1").Return([]string{"loc-2"}, nil)
	tickets.On("ListWithFilter", mock.Anything, mock.MatchedBy(func(f repository.TicketFilter) bool {
		return f.LocationScoped && len(f.LocationIDs) == 2
	})).Return([]domain.Ticket{}, nil)

	_, err := svc.ListForAgent(context.Background(), agent, TicketListFilter{})
	require.NoError(t, err)
	tickets.AssertExpectations(t)
}

func TestSoftDeleteAdminOnly(t *testing.T) {
	svc := newTicketServiceForTest(new(mockTicketRepo), new(mockCommentRepo), new(mockAttachmentRepo), new(mockProfileRepo), new(mockAuditRepo))

	supervisor := &domain.Profile{ID: "sup-1", Role: domain.RoleSupervisor, Active: true}
	err := svc.SoftDelete(context.Background(), supervisor, "tkt-1")
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}

func TestAuditFailureDoesNotAbortMutation(t *testing.T) {
	tickets := new(mockTicketRepo)
	audits := new(mockAuditRepo)
	svc := newTicketServiceForTest(tickets, new(mockCommentRepo), new(mockAttachmentRepo), new(mockProfileRepo), audits)

	tickets.On("GetByID", mock.Anything, "tkt-1").Return(&domain.Ticket{
		ID:     "tkt-1",
		Status: domain.TicketStatusNew,
	}, nil)
	tickets.On("Update", mock.Anything, mock.Anything).Return(nil)
	audits.On("Create", mock.Anything, mock.Anything).Return(errors.New("audit store down"))

	_, err := svc.ChangeStatus(context.Background(), adminProfile("adm-1"), "tkt-1", domain.TicketStatusInProgress, "")
	require.NoError(t, err)
}
