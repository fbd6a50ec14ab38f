package repository

import (
	"github.com/google/uuid"

	"github.com/Yash913212/Multi-tenant-saas/internal/models"
)

// TenantFilter holds filtering options for listing tenants
type TenantFilter struct {
	Status   *models.TenantStatus
	Plan     *models.SubscriptionPlan
	Page     int
	PageSize int
}

// TenantWithCounts is a tenant row with its current member/project counts.
type TenantWithCounts struct {
	models.Tenant
	TotalUsers    int64 `gorm:"column:total_users" json:"total_users"`
	TotalProjects int64 `gorm:"column:total_projects" json:"total_projects"`
}

// TenantStats aggregates per-tenant entity counts.
type TenantStats struct {
	TotalUsers    int64 `json:"total_users"`
	TotalProjects int64 `json:"total_projects"`
	TotalTasks    int64 `json:"total_tasks"`
}

// TenantRepository defines the interface for tenant data access
type TenantRepository interface {
	// Create creates a new tenant
	Create(tenant *models.Tenant) error

	// CreateWithAdmin creates the tenant, its first admin user, and the
	// registration audit entry as a single transaction.
	CreateWithAdmin(tenant *models.Tenant, admin *models.User, entry *models.AuditLog) error

	// FindByID finds a tenant by ID
	FindByID(id uuid.UUID) (*models.Tenant, error)

	// FindBySubdomain finds a tenant by its unique subdomain
	FindBySubdomain(subdomain string) (*models.Tenant, error)

	// List retrieves tenants with member/project counts and pagination
	List(filter TenantFilter) ([]TenantWithCounts, int64, error)

	// Update persists tenant changes
	Update(tenant *models.Tenant) error

	// Stats returns entity counts for a tenant
	Stats(tenantID uuid.UUID) (*TenantStats, error)

	// CountProjects counts the tenant's projects (for plan-limit checks)
	CountProjects(tenantID uuid.UUID) (int64, error)

	// CountUsers counts the tenant's users excluding super admins
	// (for plan-limit checks)
	CountUsers(tenantID uuid.UUID) (int64, error)
}

// UserFilter holds filtering options for listing users
type UserFilter struct {
	TenantID uuid.UUID
	Search   string
	Role     *models.UserRole
	Page     int
	PageSize int
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uuid.UUID) (*models.User, error)

	// FindByEmail finds a user by email only. Email is unique per tenant,
	// not globally, so this returns the oldest match.
	FindByEmail(email string) (*models.User, error)

	// FindByTenantAndEmail finds a user within a tenant by email
	FindByTenantAndEmail(tenantID uuid.UUID, email string) (*models.User, error)

	// List retrieves users of a tenant with filtering and pagination
	List(filter UserFilter) ([]models.User, int64, error)

	// Update persists user changes
	Update(user *models.User) error

	// Delete hard deletes a user
	Delete(id uuid.UUID) error
}

// ProjectFilter holds filtering options for listing projects
type ProjectFilter struct {
	TenantID *uuid.UUID
	Status   *models.ProjectStatus
	Search   string
	Page     int
	PageSize int
}

// ProjectWithCounts is a project row with its task counts.
type ProjectWithCounts struct {
	models.Project
	TaskCount          int64 `gorm:"column:task_count" json:"task_count"`
	CompletedTaskCount int64 `gorm:"column:completed_task_count" json:"completed_task_count"`
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uuid.UUID, preload ...string) (*models.Project, error)

	// List retrieves projects with task counts, filtering and pagination
	List(filter ProjectFilter) ([]ProjectWithCounts, int64, error)

	// Update persists project changes
	Update(project *models.Project) error

	// Delete hard deletes a project and its tasks
	Delete(id uuid.UUID) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	TenantID   uuid.UUID
	ProjectID  uuid.UUID
	Status     *models.TaskStatus
	Priority   *models.TaskPriority
	AssignedTo *uuid.UUID
	Search     string
	Page       int
	PageSize   int
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uuid.UUID, preload ...string) (*models.Task, error)

	// List retrieves tasks of a project with filtering and pagination,
	// ordered by priority then due date
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update persists task changes
	Update(task *models.Task) error

	// Delete hard deletes a task
	Delete(id uuid.UUID) error
}

// AuditLogRepository defines the interface for the append-only audit trail.
// There is intentionally no update or delete.
type AuditLogRepository interface {
	// Create appends one audit entry
	Create(entry *models.AuditLog) error
}

// DashboardStats aggregates counts for the dashboard endpoint.
type DashboardStats struct {
	Scope          string `json:"scope"`
	TotalProjects  int64  `json:"total_projects"`
	ActiveTasks    int64  `json:"active_tasks"`
	CompletedTasks int64  `json:"completed_tasks"`
	TotalUsers     int64  `json:"total_users"`
}

// DashboardRepository defines aggregate count queries for dashboards
type DashboardRepository interface {
	// GlobalStats returns counts across all tenants
	GlobalStats() (*DashboardStats, error)

	// TenantStats returns counts scoped to one tenant
	TenantStats(tenantID uuid.UUID) (*DashboardStats, error)
}
