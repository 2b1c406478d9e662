package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
)

type mockTicketRepo struct{ mock.Mock }

func (m *mockTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error {
	return m.Called(ctx, ticket).Error(0)
}

func (m *mockTicketRepo) SetCode(ctx context.Context, id, code string) error {
	return m.Called(ctx, id, code).Error(0)
}

func (m *mockTicketRepo) Update(ctx context.Context, ticket *domain.Ticket) error {
	return m.Called(ctx, ticket).Error(0)
}

func (m *mockTicketRepo) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	args := m.Called(ctx, id)
	if t, ok := args.Get(0).(*domain.Ticket); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTicketRepo) GetByCode(ctx context.Context, code string) (*domain.Ticket, error) {
	args := m.Called(ctx, code)
	if t, ok := args.Get(0).(*domain.Ticket); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTicketRepo) ListWithFilter(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	args := m.Called(ctx, filter)
	if tickets, ok := args.Get(0).([]domain.Ticket); ok {
		return tickets, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTicketRepo) SoftDelete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockCommentRepo struct{ mock.Mock }

func (m *mockCommentRepo) Create(ctx context.Context, comment *domain.TicketComment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *mockCommentRepo) ListByTicket(ctx context.Context, ticketID string) ([]domain.TicketComment, error) {
	args := m.Called(ctx, ticketID)
	if comments, ok := args.Get(0).([]domain.TicketComment); ok {
		return comments, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockAttachmentRepo struct{ mock.Mock }

func (m *mockAttachmentRepo) Create(ctx context.Context, attachment *domain.AttachmentRef) error {
	return m.Called(ctx, attachment).Error(0)
}

func (m *mockAttachmentRepo) ListByComment(ctx context.Context, commentID string) ([]domain.AttachmentRef, error) {
	args := m.Called(ctx, commentID)
	if attachments, ok := args.Get(0).([]domain.AttachmentRef); ok {
		return attachments, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockProfileRepo struct{ mock.Mock }

func (m *mockProfileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *mockProfileRepo) Update(ctx context.Context, profile *domain.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *mockProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*domain.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProfileRepo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	args := m.Called(ctx, email)
	if p, ok := args.Get(0).(*domain.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProfileRepo) List(ctx context.Context, limit, offset int) ([]domain.Profile, error) {
	args := m.Called(ctx, limit, offset)
	if profiles, ok := args.Get(0).([]domain.Profile); ok {
		return profiles, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProfileRepo) ListLocationIDs(ctx context.Context, profileID string) ([]string, error) {
	args := m.Called(ctx, profileID)
	if ids, ok := args.Get(0).([]string); ok {
		return ids, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProfileRepo) ReplaceLocations(ctx context.Context, profileID string, locationIDs []string) error {
	return m.Called(ctx, profileID, locationIDs).Error(0)
}

type mockAuditRepo struct{ mock.Mock }

func (m *mockAuditRepo) Create(ctx context.Context, entry *domain.AuditEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *mockAuditRepo) List(ctx context.Context, filter repository.AuditFilter) ([]domain.AuditEntry, error) {
	args := m.Called(ctx, filter)
	if entries, ok := args.Get(0).([]domain.AuditEntry); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockAssetRepo struct{ mock.Mock }

func (m *mockAssetRepo) Create(ctx context.Context, asset *domain.Asset) error {
	return m.Called(ctx, asset).Error(0)
}

func (m *mockAssetRepo) Update(ctx context.Context, asset *domain.Asset) error {
	return m.Called(ctx, asset).Error(0)
}

func (m *mockAssetRepo) GetByID(ctx context.Context, id string) (*domain.Asset, error) {
	args := m.Called(ctx, id)
	if a, ok := args.Get(0).(*domain.Asset); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAssetRepo) GetByTag(ctx context.Context, tag string) (*domain.Asset, error) {
	args := m.Called(ctx, tag)
	if a, ok := args.Get(0).(*domain.Asset); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAssetRepo) ListWithFilter(ctx context.Context, filter repository.AssetFilter) ([]domain.Asset, error) {
	args := m.Called(ctx, filter)
	if assets, ok := args.Get(0).([]domain.Asset); ok {
		return assets, args.Error(1)
	}
	return nil, args.Error(1)
}
