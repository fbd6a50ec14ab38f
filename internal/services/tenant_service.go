package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Yash913212/Multi-tenant-saas/internal/auth"
	apierrors "github.com/Yash913212/Multi-tenant-saas/internal/errors"
	"github.com/Yash913212/Multi-tenant-saas/internal/models"
	"github.com/Yash913212/Multi-tenant-saas/internal/repository"
)

// TenantService handles tenant registry operations and the plan rules.
type TenantService struct {
	tenantRepo repository.TenantRepository
	auditSvc   *AuditService
}

// NewTenantService creates a new TenantService.
func NewTenantService(tenantRepo repository.TenantRepository, auditSvc *AuditService) *TenantService {
	return &TenantService{
		tenantRepo: tenantRepo,
		auditSvc:   auditSvc,
	}
}

// ListTenantsInput holds filters for listing tenants.
type ListTenantsInput struct {
	Status   *models.TenantStatus
	Plan     *models.SubscriptionPlan
	Page     int
	PageSize int
}

// List returns tenants with their user/project counts. Route access is
// restricted to super admins.
func (s *TenantService) List(input ListTenantsInput) ([]repository.TenantWithCounts, int64, error) {
	tenants, total, err := s.tenantRepo.List(repository.TenantFilter{
		Status:   input.Status,
		Plan:     input.Plan,
		Page:     input.Page,
		PageSize: input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tenants: %w", err)
	}
	return tenants, total, nil
}

// CreateTenantInput holds the payload for super-admin tenant creation.
type CreateTenantInput struct {
	Name      string
	Subdomain string
	Plan      models.SubscriptionPlan
	IPAddress string
}

// Create creates a tenant directly. Super admin only.
func (s *TenantService) Create(actor auth.Principal, input CreateTenantInput) (*models.Tenant, error) {
	if !actor.IsSuperAdmin() {
		return nil, apierrors.Forbidden("Forbidden")
	}

	plan := input.Plan
	if plan == "" {
		plan = models.PlanFree
	}
	if !models.ValidSubscriptionPlan(plan) {
		return nil, apierrors.BadRequest("Invalid subscription plan")
	}

	subdomain := strings.ToLower(strings.TrimSpace(input.Subdomain))
	if _, err := s.tenantRepo.FindBySubdomain(subdomain); err == nil {
		return nil, apierrors.Conflict("Subdomain already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check subdomain: %w", err)
	}

	limits := models.PlanLimits[plan]
	tenant := &models.Tenant{
		Name:             input.Name,
		Subdomain:        subdomain,
		Status:           models.TenantStatusActive,
		SubscriptionPlan: plan,
		MaxUsers:         limits.MaxUsers,
		MaxProjects:      limits.MaxProjects,
	}

	if err := s.tenantRepo.Create(tenant); err != nil {
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}

	actorID := actor.UserID
	s.auditSvc.Record(AuditEvent{
		TenantID:   &tenant.ID,
		UserID:     &actorID,
		Action:     models.ActionCreateTenant,
		EntityType: "tenant",
		EntityID:   &tenant.ID,
		IPAddress:  input.IPAddress,
	})

	return tenant, nil
}

// TenantDetail is a tenant together with its entity counts.
type TenantDetail struct {
	*models.Tenant
	Stats *repository.TenantStats
}

// Get returns a tenant with stats. Non-super-admin principals only see their
// own tenant; an existing foreign tenant is a cross-tenant violation.
func (s *TenantService) Get(actor auth.Principal, id uuid.UUID) (*TenantDetail, error) {
	tenant, err := s.findTenant(id)
	if err != nil {
		return nil, err
	}

	if !actor.CanAccessTenant(tenant.ID) {
		return nil, apierrors.CrossTenant()
	}

	stats, err := s.tenantRepo.Stats(tenant.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tenant stats: %w", err)
	}

	return &TenantDetail{Tenant: tenant, Stats: stats}, nil
}

// UpdateTenantInput is a patch: nil fields are left unchanged.
type UpdateTenantInput struct {
	Name             *string
	Status           *models.TenantStatus
	SubscriptionPlan *models.SubscriptionPlan
	MaxUsers         *int
	MaxProjects      *int
	IPAddress        string
}

// Update applies a tenant patch. A tenant_admin may rename their own tenant;
// status, plan and limit fields are super-admin only. A plan change resets
// the limits from the plan table unless explicit values accompany it.
func (s *TenantService) Update(actor auth.Principal, id uuid.UUID, input UpdateTenantInput) (*models.Tenant, error) {
	tenant, err := s.findTenant(id)
	if err != nil {
		return nil, err
	}

	if !actor.CanAccessTenant(tenant.ID) {
		return nil, apierrors.CrossTenant()
	}
	if !actor.IsAdmin() {
		return nil, apierrors.Forbidden("Forbidden")
	}

	privileged := input.Status != nil || input.SubscriptionPlan != nil ||
		input.MaxUsers != nil || input.MaxProjects != nil
	if privileged && !actor.IsSuperAdmin() {
		return nil, apierrors.Forbidden("Forbidden")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apierrors.BadRequest("Tenant name cannot be empty")
		}
		tenant.Name = name
	}

	if input.Status != nil {
		if !models.ValidTenantStatus(*input.Status) {
			return nil, apierrors.BadRequest("Invalid status")
		}
		tenant.Status = *input.Status
	}

	if input.SubscriptionPlan != nil {
		if !models.ValidSubscriptionPlan(*input.SubscriptionPlan) {
			return nil, apierrors.BadRequest("Invalid subscription plan")
		}
		tenant.SubscriptionPlan = *input.SubscriptionPlan
		limits := models.PlanLimits[*input.SubscriptionPlan]
		tenant.MaxUsers = limits.MaxUsers
		tenant.MaxProjects = limits.MaxProjects
	}

	// Explicit limit values win over the plan table reset.
	if input.MaxUsers != nil {
		tenant.MaxUsers = *input.MaxUsers
	}
	if input.MaxProjects != nil {
		tenant.MaxProjects = *input.MaxProjects
	}

	if err := s.tenantRepo.Update(tenant); err != nil {
		return nil, fmt.Errorf("failed to update tenant: %w", err)
	}

	actorID := actor.UserID
	s.auditSvc.Record(AuditEvent{
		TenantID:   actor.TenantID,
		UserID:     &actorID,
		Action:     models.ActionUpdateTenant,
		EntityType: "tenant",
		EntityID:   &tenant.ID,
		IPAddress:  input.IPAddress,
	})

	return tenant, nil
}

func (s *TenantService) findTenant(id uuid.UUID) (*models.Tenant, error) {
	tenant, err := s.tenantRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NotFound("Tenant not found")
		}
		return nil, fmt.Errorf("failed to find tenant: %w", err)
	}
	return tenant, nil
}
