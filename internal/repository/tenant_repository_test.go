package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Yash913212/Multi-tenant-saas/internal/models"
)

func setupRepoDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.Project{},
		&models.Task{},
		&models.AuditLog{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func TestCreateWithAdmin(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewTenantRepository(db)

	tenant := &models.Tenant{
		Name:             "Acme",
		Subdomain:        "acme",
		Status:           models.TenantStatusActive,
		SubscriptionPlan: models.PlanFree,
		MaxUsers:         5,
		MaxProjects:      3,
	}
	admin := &models.User{
		Email:        "admin@acme.test",
		PasswordHash: "hash",
		FullName:     "Ada",
		Role:         models.RoleTenantAdmin,
		IsActive:     true,
	}
	entry := &models.AuditLog{
		Action:     models.ActionCreateTenant,
		EntityType: "tenant",
	}

	require.NoError(t, repo.CreateWithAdmin(tenant, admin, entry))

	require.NotNil(t, admin.TenantID)
	require.Equal(t, tenant.ID, *admin.TenantID)
	require.NotNil(t, entry.UserID)
	require.Equal(t, admin.ID, *entry.UserID)

	var count int64
	require.NoError(t, db.Model(&models.AuditLog{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestCreateWithAdmin_RollsBackOnFailure(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewTenantRepository(db)

	// Pre-insert a user so the admin insert collides on its primary key and
	// the whole transaction must unwind.
	fixed := uuid.New()
	require.NoError(t, db.Create(&models.User{
		ID:           fixed,
		Email:        "existing@other.test",
		PasswordHash: "hash",
		FullName:     "Existing",
		Role:         models.RoleUser,
		IsActive:     true,
	}).Error)

	tenant := &models.Tenant{
		Name:             "Doomed",
		Subdomain:        "doomed",
		Status:           models.TenantStatusActive,
		SubscriptionPlan: models.PlanFree,
		MaxUsers:         5,
		MaxProjects:      3,
	}
	admin := &models.User{
		ID:           fixed,
		Email:        "admin@doomed.test",
		PasswordHash: "hash",
		FullName:     "Clash",
		Role:         models.RoleTenantAdmin,
		IsActive:     true,
	}

	err := repo.CreateWithAdmin(tenant, admin, &models.AuditLog{Action: models.ActionCreateTenant, EntityType: "tenant"})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrCreateAdminUser)

	// No partial tenant row survives.
	var count int64
	require.NoError(t, db.Model(&models.Tenant{}).Where("subdomain = ?", "doomed").Count(&count).Error)
	require.Zero(t, count)
}

func TestCountUsers_ExcludesSuperAdmins(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewTenantRepository(db)

	tenant := &models.Tenant{
		Name:             "Acme",
		Subdomain:        "acme",
		Status:           models.TenantStatusActive,
		SubscriptionPlan: models.PlanFree,
		MaxUsers:         5,
		MaxProjects:      3,
	}
	require.NoError(t, db.Create(tenant).Error)

	for _, u := range []models.User{
		{Email: "a@acme.test", Role: models.RoleTenantAdmin, TenantID: &tenant.ID, PasswordHash: "h", FullName: "A", IsActive: true},
		{Email: "b@acme.test", Role: models.RoleUser, TenantID: &tenant.ID, PasswordHash: "h", FullName: "B", IsActive: true},
		{Email: "root@acme.test", Role: models.RoleSuperAdmin, TenantID: &tenant.ID, PasswordHash: "h", FullName: "R", IsActive: true},
	} {
		user := u
		require.NoError(t, db.Create(&user).Error)
	}

	count, err := repo.CountUsers(tenant.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)
}

func TestTenantList_Counts(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewTenantRepository(db)

	tenant := &models.Tenant{
		Name:             "Acme",
		Subdomain:        "acme",
		Status:           models.TenantStatusActive,
		SubscriptionPlan: models.PlanFree,
		MaxUsers:         5,
		MaxProjects:      3,
	}
	require.NoError(t, db.Create(tenant).Error)
	require.NoError(t, db.Create(&models.User{
		Email: "a@acme.test", Role: models.RoleUser, TenantID: &tenant.ID,
		PasswordHash: "h", FullName: "A", IsActive: true,
	}).Error)
	require.NoError(t, db.Create(&models.Project{TenantID: tenant.ID, Name: "P", Status: models.ProjectStatusActive}).Error)

	rows, total, err := repo.List(TenantFilter{})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	require.Equal(t, int64(1), rows[0].TotalUsers)
	require.Equal(t, int64(1), rows[0].TotalProjects)
}
