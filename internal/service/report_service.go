package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spec-kit/helpdesk-service/internal/access"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/report"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/workflow"
)

// Report column orders are part of the external contract; consumers parse by
// position.
var (
	ticketReportColumns = []string{
		"code", "title", "status", "impact", "urgency", "priority",
		"requester_id", "assignee_id", "location_id", "created_at", "closed_at",
	}
	deletedTicketReportColumns = []string{
		"code", "title", "status", "priority", "requester_id", "location_id",
		"created_at", "deleted_at",
	}
	assetReportColumns = []string{
		"tag", "type", "status", "assigned_profile_id", "location_id", "specs", "created_at",
	}
	auditReportColumns = []string{
		"created_at", "entity_type", "entity_id", "action", "actor_id", "metadata",
	}
)

const reportRowLimit = 10000

// ReportService produces BOM-prefixed CSV exports scoped by the actor's
// location access.
type ReportService struct {
	tickets  repository.TicketRepository
	assets   repository.AssetRepository
	audits   repository.AuditRepository
	profiles repository.ProfileRepository
}

// ReportDependencies bundles repositories for the report service.
type ReportDependencies struct {
	TicketRepo  repository.TicketRepository
	AssetRepo   repository.AssetRepository
	AuditRepo   repository.AuditRepository
	ProfileRepo repository.ProfileRepository
}

// NewReportService constructs the service.
func NewReportService(deps ReportDependencies) *ReportService {
	return &ReportService{
		tickets:  deps.TicketRepo,
		assets:   deps.AssetRepo,
		audits:   deps.AuditRepo,
		profiles: deps.ProfileRepo,
	}
}

// TicketsCSV exports active tickets visible to the actor.
func (s *ReportService) TicketsCSV(ctx context.Context, actor *domain.Profile) (string, []byte, error) {
	return s.ticketsReport(ctx, actor, "tickets", false)
}

// DeletedTicketsCSV exports soft-deleted tickets visible to the actor.
func (s *ReportService) DeletedTicketsCSV(ctx context.Context, actor *domain.Profile) (string, []byte, error) {
	return s.ticketsReport(ctx, actor, "deleted-tickets", true)
}

func (s *ReportService) ticketsReport(ctx context.Context, actor *domain.Profile, name string, deleted bool) (string, []byte, error) {
	scope, err := s.resolveScope(ctx, actor)
	if err != nil {
		return "", nil, err
	}

	filter := repository.TicketFilter{
		OnlyDeleted: deleted,
		Limit:       reportRowLimit,
	}
	if !scope.FullAccess {
		filter.LocationScoped = true
		filter.LocationIDs = scope.LocationIDs
	}
	tickets, err := s.tickets.ListWithFilter(ctx, filter)
	if err != nil {
		return "", nil, err
	}

	var rows [][]any
	if deleted {
		for i := range tickets {
			t := &tickets[i]
			rows = append(rows, []any{
				t.Code, t.Title, t.Status, t.Priority, t.RequesterID,
				t.LocationID, t.CreatedAt, t.DeletedAt,
			})
		}
		return reportFile(name, deletedTicketReportColumns, rows)
	}
	for i := range tickets {
		t := &tickets[i]
		rows = append(rows, []any{
			t.Code, t.Title, t.Status, t.Impact, t.Urgency, t.Priority,
			t.RequesterID, t.AssigneeID, t.LocationID, t.CreatedAt, t.ClosedAt,
		})
	}
	return reportFile(name, ticketReportColumns, rows)
}

// AssetSpecsCSV exports the asset inventory visible to the actor.
func (s *ReportService) AssetSpecsCSV(ctx context.Context, actor *domain.Profile) (string, []byte, error) {
	scope, err := s.resolveScope(ctx, actor)
	if err != nil {
		return "", nil, err
	}

	filter := repository.AssetFilter{Limit: reportRowLimit}
	if !scope.FullAccess {
		filter.LocationScoped = true
		filter.LocationIDs = scope.LocationIDs
	}
	assets, err := s.assets.ListWithFilter(ctx, filter)
	if err != nil {
		return "", nil, err
	}

	var rows [][]any
	for i := range assets {
		a := &assets[i]
		rows = append(rows, []any{
			a.Tag, a.Type, a.Status, a.AssignedProfileID, a.LocationID,
			jsonCell(a.Specs), a.CreatedAt,
		})
	}
	return reportFile("assets", assetReportColumns, rows)
}

// AuditLogCSV exports audit entries. Routes restrict this to admins and
// auditors, both of which resolve to full access.
func (s *ReportService) AuditLogCSV(ctx context.Context, actor *domain.Profile, from, to *time.Time) (string, []byte, error) {
	if _, err := s.resolveScope(ctx, actor); err != nil {
		return "", nil, err
	}

	entries, err := s.audits.List(ctx, repository.AuditFilter{
		CreatedFrom: from,
		CreatedTo:   to,
		Limit:       reportRowLimit,
	})
	if err != nil {
		return "", nil, err
	}

	var rows [][]any
	for i := range entries {
		e := &entries[i]
		rows = append(rows, []any{
			e.CreatedAt, e.EntityType, e.EntityID, e.Action, e.ActorID, jsonCell(e.Metadata),
		})
	}
	return reportFile("audit-log", auditReportColumns, rows)
}

func (s *ReportService) resolveScope(ctx context.Context, actor *domain.Profile) (access.Scope, error) {
	if actor == nil {
		return access.Scope{Filter: true}, nil
	}
	assigned, err := s.profiles.ListLocationIDs(ctx, actor.ID)
	if err != nil {
		return access.Scope{}, err
	}
	return access.ResolveScope(actor, assigned), nil
}

func reportFile(name string, columns []string, rows [][]any) (string, []byte, error) {
	filename := fmt.Sprintf("%s-%s.csv", name, time.Now().In(workflow.CodeLocation()).Format("2006-01-02"))
	body := report.UTF8BOM + report.ToCSV(columns, rows)
	return filename, []byte(body), nil
}

func jsonCell(value map[string]any) string {
	if len(value) == 0 {
		return ""
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return ""
	}
	return string(encoded)
}
