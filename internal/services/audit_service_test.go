package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Yash913212/Multi-tenant-saas/internal/models"
)

type recordingAuditRepo struct {
	entries []*models.AuditLog
	err     error
}

func (r *recordingAuditRepo) Create(entry *models.AuditLog) error {
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, entry)
	return nil
}

func TestAuditRecord(t *testing.T) {
	repo := &recordingAuditRepo{}
	svc := NewAuditService(repo, zap.NewNop())

	svc.Record(AuditEvent{
		Action:     models.ActionCreateProject,
		EntityType: "project",
		IPAddress:  "203.0.113.7",
	})

	require.Len(t, repo.entries, 1)
	require.Equal(t, models.ActionCreateProject, repo.entries[0].Action)
	require.Equal(t, "203.0.113.7", repo.entries[0].IPAddress)
}

func TestAuditRecord_DropsEmptyAction(t *testing.T) {
	repo := &recordingAuditRepo{}
	svc := NewAuditService(repo, zap.NewNop())

	svc.Record(AuditEvent{EntityType: "project"})

	require.Empty(t, repo.entries)
}

func TestAuditRecord_SwallowsWriteFailure(t *testing.T) {
	repo := &recordingAuditRepo{err: errors.New("disk full")}
	svc := NewAuditService(repo, zap.NewNop())

	require.NotPanics(t, func() {
		svc.Record(AuditEvent{Action: models.ActionLogout, EntityType: "user"})
	})
}
