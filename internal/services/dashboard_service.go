package services

import (
	"fmt"

	"github.com/Yash913212/Multi-tenant-saas/internal/auth"
	apierrors "github.com/Yash913212/Multi-tenant-saas/internal/errors"
	"github.com/Yash913212/Multi-tenant-saas/internal/repository"
)

// DashboardService serves the aggregate counts behind the admin dashboard.
type DashboardService struct {
	dashboardRepo repository.DashboardRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(dashboardRepo repository.DashboardRepository) *DashboardService {
	return &DashboardService{dashboardRepo: dashboardRepo}
}

// Stats returns global counts for super admins and tenant-scoped counts for
// everyone else.
func (s *DashboardService) Stats(actor auth.Principal) (*repository.DashboardStats, error) {
	if actor.IsSuperAdmin() {
		stats, err := s.dashboardRepo.GlobalStats()
		if err != nil {
			return nil, fmt.Errorf("failed to load global stats: %w", err)
		}
		return stats, nil
	}

	if actor.TenantID == nil {
		return nil, apierrors.Forbidden("Tenant context required")
	}

	stats, err := s.dashboardRepo.TenantStats(*actor.TenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tenant stats: %w", err)
	}
	return stats, nil
}
