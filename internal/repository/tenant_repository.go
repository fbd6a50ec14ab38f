package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Yash913212/Multi-tenant-saas/internal/database"
	"github.com/Yash913212/Multi-tenant-saas/internal/models"
)

var (
	// ErrCreateTenant is returned when the tenant insert fails inside the registration transaction.
	ErrCreateTenant = errors.New("tenant repository: create tenant failed")
	// ErrCreateAdminUser is returned when the admin-user insert fails inside the registration transaction.
	ErrCreateAdminUser = errors.New("tenant repository: create admin user failed")
	// ErrCreateAuditEntry is returned when the audit insert fails inside the registration transaction.
	ErrCreateAuditEntry = errors.New("tenant repository: create audit entry failed")
)

// GormTenantRepository is a GORM implementation of TenantRepository
type GormTenantRepository struct {
	db *gorm.DB
}

// NewTenantRepository creates a new TenantRepository
func NewTenantRepository(db *gorm.DB) TenantRepository {
	return &GormTenantRepository{db: db}
}

// Create creates a new tenant
func (r *GormTenantRepository) Create(tenant *models.Tenant) error {
	return r.db.Create(tenant).Error
}

// CreateWithAdmin creates the tenant, its first tenant_admin, and the
// registration audit entry atomically. If any step fails no partial
// tenant or user row survives.
func (r *GormTenantRepository) CreateWithAdmin(tenant *models.Tenant, admin *models.User, entry *models.AuditLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(tenant).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateTenant, err)
		}

		admin.TenantID = &tenant.ID
		if err := tx.Create(admin).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateAdminUser, err)
		}

		entry.TenantID = &tenant.ID
		entry.UserID = &admin.ID
		entry.EntityID = &tenant.ID
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateAuditEntry, err)
		}

		return nil
	})
}

// FindByID finds a tenant by ID
func (r *GormTenantRepository) FindByID(id uuid.UUID) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := r.db.First(&tenant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

// FindBySubdomain finds a tenant by its unique subdomain
func (r *GormTenantRepository) FindBySubdomain(subdomain string) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := r.db.Where("subdomain = ?", subdomain).First(&tenant).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

// List retrieves tenants with member/project counts and pagination
func (r *GormTenantRepository) List(filter TenantFilter) ([]TenantWithCounts, int64, error) {
	query := r.db.Model(&models.Tenant{})

	if filter.Status != nil {
		query = query.Where("tenants.status = ?", *filter.Status)
	}
	if filter.Plan != nil {
		query = query.Where("tenants.subscription_plan = ?", *filter.Plan)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.
		Select(`tenants.*,
			(SELECT COUNT(*) FROM users WHERE users.tenant_id = tenants.id) AS total_users,
			(SELECT COUNT(*) FROM projects WHERE projects.tenant_id = tenants.id) AS total_projects`).
		Order("tenants.created_at DESC")

	listQuery = listQuery.Scopes(database.Paginate(filter.Page, filter.PageSize))

	var tenants []TenantWithCounts
	if err := listQuery.Find(&tenants).Error; err != nil {
		return nil, 0, err
	}

	return tenants, total, nil
}

// Update persists tenant changes
func (r *GormTenantRepository) Update(tenant *models.Tenant) error {
	return r.db.Save(tenant).Error
}

// Stats returns entity counts for a tenant
func (r *GormTenantRepository) Stats(tenantID uuid.UUID) (*TenantStats, error) {
	var stats TenantStats

	if err := r.db.Model(&models.User{}).Where("tenant_id = ?", tenantID).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Project{}).Where("tenant_id = ?", tenantID).Count(&stats.TotalProjects).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Task{}).Where("tenant_id = ?", tenantID).Count(&stats.TotalTasks).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

// CountProjects counts the tenant's projects
func (r *GormTenantRepository) CountProjects(tenantID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Project{}).Where("tenant_id = ?", tenantID).Count(&count).Error
	return count, err
}

// CountUsers counts the tenant's users. Super admins are tenant-less and
// global, so they never count against a tenant's limit.
func (r *GormTenantRepository) CountUsers(tenantID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("tenant_id = ? AND role <> ?", tenantID, models.RoleSuperAdmin).
		Count(&count).Error
	return count, err
}
