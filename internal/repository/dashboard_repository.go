package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Yash913212/Multi-tenant-saas/internal/models"
)

// GormDashboardRepository is a GORM implementation of DashboardRepository
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a new DashboardRepository
func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GlobalStats returns counts across all tenants
func (r *GormDashboardRepository) GlobalStats() (*DashboardStats, error) {
	return r.collect("global", r.db)
}

// TenantStats returns counts scoped to one tenant
func (r *GormDashboardRepository) TenantStats(tenantID uuid.UUID) (*DashboardStats, error) {
	return r.collect("tenant", r.db.Where("tenant_id = ?", tenantID))
}

func (r *GormDashboardRepository) collect(scope string, scoped *gorm.DB) (*DashboardStats, error) {
	stats := &DashboardStats{Scope: scope}

	if err := scoped.Session(&gorm.Session{}).Model(&models.Project{}).Count(&stats.TotalProjects).Error; err != nil {
		return nil, err
	}

	var totalTasks int64
	if err := scoped.Session(&gorm.Session{}).Model(&models.Task{}).Count(&totalTasks).Error; err != nil {
		return nil, err
	}
	if err := scoped.Session(&gorm.Session{}).Model(&models.Task{}).
		Where("status = ?", models.TaskStatusCompleted).Count(&stats.CompletedTasks).Error; err != nil {
		return nil, err
	}
	stats.ActiveTasks = totalTasks - stats.CompletedTasks

	if err := scoped.Session(&gorm.Session{}).Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
