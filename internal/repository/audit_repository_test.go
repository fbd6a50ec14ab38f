package repository

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Yash913212/Multi-tenant-saas/internal/models"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

func TestAuditLogCreate(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAuditLogRepository(db)

	tenantID := uuid.New()
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "audit_logs"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Create(&models.AuditLog{
		TenantID:   &tenantID,
		UserID:     &userID,
		Action:     models.ActionCreateProject,
		EntityType: "project",
		IPAddress:  "203.0.113.7",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditLogCreate_PropagatesDriverError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAuditLogRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "audit_logs"`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.Create(&models.AuditLog{Action: models.ActionLogout, EntityType: "user"})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
