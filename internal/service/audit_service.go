package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
)

// AuditRecorder writes append-only audit entries as a side effect of mutating
// operations. A failed audit write is logged and never aborts the primary
// operation it was recording.
type AuditRecorder struct {
	audits repository.AuditRepository
	logger *zap.Logger
}

// NewAuditRecorder builds the recorder.
func NewAuditRecorder(audits repository.AuditRepository, logger *zap.Logger) *AuditRecorder {
	return &AuditRecorder{audits: audits, logger: logger}
}

// Record persists one audit entry.
func (a *AuditRecorder) Record(ctx context.Context, entityType, entityID, action string, actorID *string, metadata map[string]any) {
	if a == nil || a.audits == nil {
		return
	}
	entry := &domain.AuditEntry{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		ActorID:    actorID,
		Metadata:   metadata,
	}
	if err := a.audits.Create(ctx, entry); err != nil {
		a.logger.Warn("audit write failed",
			zap.String("entity_type", entityType),
			zap.String("entity_id", entityID),
			zap.String("action", action),
			zap.Error(err))
	}
}
