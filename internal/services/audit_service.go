package services

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Yash913212/Multi-tenant-saas/internal/metrics"
	"github.com/Yash913212/Multi-tenant-saas/internal/models"
	"github.com/Yash913212/Multi-tenant-saas/internal/repository"
)

// AuditService appends entries to the audit trail. Writes are best-effort:
// a failed append is logged and counted, never propagated, so it cannot mask
// the success of the mutation it describes.
type AuditService struct {
	repo   repository.AuditLogRepository
	logger *zap.Logger
}

// NewAuditService creates a new AuditService.
func NewAuditService(repo repository.AuditLogRepository, logger *zap.Logger) *AuditService {
	return &AuditService{
		repo:   repo,
		logger: logger,
	}
}

// AuditEvent describes one mutating action to record.
type AuditEvent struct {
	TenantID   *uuid.UUID
	UserID     *uuid.UUID
	Action     string
	EntityType string
	EntityID   *uuid.UUID
	IPAddress  string
}

// Record appends one audit entry. Entries without an action are dropped.
func (s *AuditService) Record(event AuditEvent) {
	if event.Action == "" {
		return
	}

	entry := &models.AuditLog{
		TenantID:   event.TenantID,
		UserID:     event.UserID,
		Action:     event.Action,
		EntityType: event.EntityType,
		EntityID:   event.EntityID,
		IPAddress:  event.IPAddress,
	}

	if err := s.repo.Create(entry); err != nil {
		metrics.AuditWriteFailures.Inc()
		s.logger.Warn("audit log write failed",
			zap.String("action", event.Action),
			zap.String("entity_type", event.EntityType),
			zap.Error(err),
		)
	}
}
