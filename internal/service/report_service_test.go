package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/report"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/workflow"
)

func newReportServiceForTest(tickets *mockTicketRepo, assets *mockAssetRepo, audits *mockAuditRepo, profiles *mockProfileRepo) *ReportService {
	return NewReportService(ReportDependencies{
		TicketRepo:  tickets,
		AssetRepo:   assets,
		AuditRepo:   audits,
		ProfileRepo: profiles,
	})
}

func TestTicketsCSVScopedSupervisor(t *testing.T) {
	tickets := new(mockTicketRepo)
	profiles := new(mockProfileRepo)
	svc := newReportServiceForTest(tickets, new(mockAssetRepo), new(mockAuditRepo), profiles)

	supervisor := &domain.Profile{ID: "sup-1", Role: domain.RoleSupervisor, Active: true}
	profiles.On("ListLocationIDs", mock.Anything, "sup-1").Return([]string{"loc-1"}, nil)

	loc := "loc-1"
	createdAt := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	tickets.On("ListWithFilter", mock.Anything, mock.MatchedBy(func(f repository.TicketFilter) bool {
		return f.LocationScoped && len(f.LocationIDs) == 1 && !f.OnlyDeleted
	})).Return([]domain.Ticket{{
		Code:        "20240305-0001",
		Title:       "Monitor, broken",
		Status:      domain.TicketStatusNew,
		Impact:      2,
		Urgency:     2,
		Priority:    2,
		RequesterID: "req-1",
		LocationID:  &loc,
		CreatedAt:   createdAt,
	}}, nil)

	filename, body, err := svc.TicketsCSV(context.Background(), supervisor)
	require.NoError(t, err)

	wantName := fmt.Sprintf("tickets-%s.csv", time.Now().In(workflow.CodeLocation()).Format("2006-01-02"))
	assert.Equal(t, wantName, filename)

	text := string(body)
	assert.True(t, strings.HasPrefix(text, report.UTF8BOM))
	lines := strings.Split(strings.TrimPrefix(text, report.UTF8BOM), "\r\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "code,title,status,impact,urgency,priority,requester_id,assignee_id,location_id,created_at,closed_at", lines[0])
	assert.Equal(t, `20240305-0001,"Monitor, broken",NEW,2,2,2,req-1,,loc-1,2024-03-05T10:00:00Z,`, lines[1])
}

func TestTicketsCSVEmptyScopeHeaderOnly(t *testing.T) {
	tickets := new(mockTicketRepo)
	profiles := new(mockProfileRepo)
	svc := newReportServiceForTest(tickets, new(mockAssetRepo), new(mockAuditRepo), profiles)

	supervisor := &domain.Profile{ID: "sup-1", Role: domain.RoleSupervisor, Active: true}
	profiles.On("ListLocationIDs", mock.Anything, "sup-1").Return([]string{}, nil)
	tickets.On("ListWithFilter", mock.Anything, mock.MatchedBy(func(f repository.TicketFilter) bool {
		return f.LocationScoped && len(f.LocationIDs) == 0
	})).Return([]domain.Ticket{}, nil)

	_, body, err := svc.TicketsCSV(context.Background(), supervisor)
	require.NoError(t, err)

	text := strings.TrimPrefix(string(body), report.UTF8BOM)
	assert.NotContains(t, text, "\r\n")
	assert.True(t, strings.HasPrefix(text, "code,"))
}

func TestDeletedTicketsCSVOnlyDeleted(t *testing.T) {
	tickets := new(mockTicketRepo)
	profiles := new(mockProfileRepo)
	svc := newReportServiceForTest(tickets, new(mockAssetRepo), new(mockAuditRepo), profiles)

	admin := &domain.Profile{ID: "adm-1", Role: domain.RoleAdmin, Active: true}
	profiles.On("ListLocationIDs", mock.Anything, "adm-1").Return([]string{}, nil)
	tickets.On("ListWithFilter", mock.Anything, mock.MatchedBy(func(f repository.TicketFilter) bool {
		return f.OnlyDeleted && !f.LocationScoped
	})).Return([]domain.Ticket{}, nil)

	filename, _, err := svc.DeletedTicketsCSV(context.Background(), admin)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "deleted-tickets-"))
	tickets.AssertExpectations(t)
}

func TestAssetSpecsCSVSerializesSpecsAsJSON(t *testing.T) {
	assets := new(mockAssetRepo)
	profiles := new(mockProfileRepo)
	svc := newReportServiceForTest(new(mockTicketRepo), assets, new(mockAuditRepo), profiles)

	admin := &domain.Profile{ID: "adm-1", Role: domain.RoleAdmin, Active: true}
	profiles.On("ListLocationIDs", mock.Anything, "adm-1").Return([]string{}, nil)
	assets.On("ListWithFilter", mock.Anything, mock.Anything).Return([]domain.Asset{{
		Tag:    "LT-0001",
		Type:   "laptop",
		Status: domain.AssetStatusInUse,
		Specs:  map[string]any{"ram_gb": 16},
	}}, nil)

	_, body, err := svc.AssetSpecsCSV(context.Background(), admin)
	require.NoError(t, err)
	text := string(body)
	assert.Contains(t, text, "LT-0001")
	// JSON cell contains quotes and is therefore escaped.
	assert.Contains(t, text, `"{""ram_gb"":16}"`)
}

func TestAuditLogCSVPassesTimeRange(t *testing.T) {
	audits := new(mockAuditRepo)
	profiles := new(mockProfileRepo)
	svc := newReportServiceForTest(new(mockTicketRepo), new(mockAssetRepo), audits, profiles)

	auditor := &domain.Profile{ID: "aud-1", Role: domain.RoleAuditor, Active: true}
	profiles.On("ListLocationIDs", mock.Anything, "aud-1").Return([]string{}, nil)

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	audits.On("List", mock.Anything, mock.MatchedBy(func(f repository.AuditFilter) bool {
		return f.CreatedFrom != nil && f.CreatedFrom.Equal(from) && f.CreatedTo != nil && f.CreatedTo.Equal(to)
	})).Return([]domain.AuditEntry{}, nil)

	filename, _, err := svc.AuditLogCSV(context.Background(), auditor, &from, &to)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "audit-log-"))
	audits.AssertExpectations(t)
}
