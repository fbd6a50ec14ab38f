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

// ProjectService handles project CRUD under the tenant's plan limit.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	tenantRepo  repository.TenantRepository
	auditSvc    *AuditService
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, tenantRepo repository.TenantRepository, auditSvc *AuditService) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		tenantRepo:  tenantRepo,
		auditSvc:    auditSvc,
	}
}

// CreateProjectInput holds the payload for creating a project. TenantID is
// only honored for super admins, who carry no tenant of their own.
type CreateProjectInput struct {
	Name        string
	Description string
	Status      models.ProjectStatus
	TenantID    *uuid.UUID
	IPAddress   string
}

// Create creates a project for the actor's tenant, enforcing the plan's
// project limit. The limit check and the insert are deliberately not atomic;
// this is a soft business cap.
func (s *ProjectService) Create(actor auth.Principal, input CreateProjectInput) (*models.Project, error) {
	if !actor.IsAdmin() {
		return nil, apierrors.Forbidden("Forbidden")
	}

	tenantID, err := s.resolveTenantID(actor, input.TenantID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apierrors.BadRequest("Project name is required")
	}

	status := input.Status
	if status == "" {
		status = models.ProjectStatusActive
	}
	if !models.ValidProjectStatus(status) {
		return nil, apierrors.BadRequest("Invalid status")
	}

	if err := s.ensureProjectLimit(tenantID); err != nil {
		return nil, err
	}

	creatorID := actor.UserID
	project := &models.Project{
		TenantID:    tenantID,
		Name:        name,
		Description: input.Description,
		Status:      status,
		CreatedBy:   &creatorID,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.auditSvc.Record(AuditEvent{
		TenantID:   &tenantID,
		UserID:     &creatorID,
		Action:     models.ActionCreateProject,
		EntityType: "project",
		EntityID:   &project.ID,
		IPAddress:  input.IPAddress,
	})

	return project, nil
}

// ListProjectsInput holds filters for listing projects.
type ListProjectsInput struct {
	TenantID *uuid.UUID
	Status   *models.ProjectStatus
	Search   string
	Page     int
	PageSize int
}

// List returns projects with task counts. Non-super-admin principals are
// pinned to their own tenant; super admins may filter by tenant or see all.
func (s *ProjectService) List(actor auth.Principal, input ListProjectsInput) ([]repository.ProjectWithCounts, int64, error) {
	tenantID := input.TenantID
	if !actor.IsSuperAdmin() {
		tenantID = actor.TenantID
		if tenantID == nil {
			return nil, 0, apierrors.Forbidden("Tenant context required")
		}
	}

	projects, total, err := s.projectRepo.List(repository.ProjectFilter{
		TenantID: tenantID,
		Status:   input.Status,
		Search:   input.Search,
		Page:     input.Page,
		PageSize: input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// Get returns a single project.
func (s *ProjectService) Get(actor auth.Principal, id uuid.UUID) (*models.Project, error) {
	project, err := s.findProject(id, "Creator")
	if err != nil {
		return nil, err
	}

	if !actor.CanAccessTenant(project.TenantID) {
		return nil, apierrors.CrossTenant()
	}
	return project, nil
}

// UpdateProjectInput is a patch: nil fields are left unchanged.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	Status      *models.ProjectStatus
	IPAddress   string
}

// Update applies a project patch. Allowed for admins and for the project's
// creator regardless of role.
func (s *ProjectService) Update(actor auth.Principal, id uuid.UUID, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.findProject(id)
	if err != nil {
		return nil, err
	}

	if err := s.checkMutateAccess(actor, project); err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apierrors.BadRequest("Project name cannot be empty")
		}
		project.Name = name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Status != nil {
		if !models.ValidProjectStatus(*input.Status) {
			return nil, apierrors.BadRequest("Invalid status")
		}
		project.Status = *input.Status
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	actorID := actor.UserID
	s.auditSvc.Record(AuditEvent{
		TenantID:   &project.TenantID,
		UserID:     &actorID,
		Action:     models.ActionUpdateProject,
		EntityType: "project",
		EntityID:   &project.ID,
		IPAddress:  input.IPAddress,
	})

	return project, nil
}

// Delete removes a project and its tasks. Same permissions as Update.
func (s *ProjectService) Delete(actor auth.Principal, id uuid.UUID, ipAddress string) error {
	project, err := s.findProject(id)
	if err != nil {
		return err
	}

	if err := s.checkMutateAccess(actor, project); err != nil {
		return err
	}

	if err := s.projectRepo.Delete(project.ID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	actorID := actor.UserID
	s.auditSvc.Record(AuditEvent{
		TenantID:   &project.TenantID,
		UserID:     &actorID,
		Action:     models.ActionDeleteProject,
		EntityType: "project",
		EntityID:   &project.ID,
		IPAddress:  ipAddress,
	})

	return nil
}

func (s *ProjectService) resolveTenantID(actor auth.Principal, requested *uuid.UUID) (uuid.UUID, error) {
	if actor.IsSuperAdmin() {
		if requested == nil {
			return uuid.Nil, apierrors.BadRequest("Tenant context required")
		}
		return *requested, nil
	}
	if actor.TenantID == nil {
		return uuid.Nil, apierrors.Forbidden("Tenant context required")
	}
	if requested != nil && *requested != *actor.TenantID {
		return uuid.Nil, apierrors.CrossTenant()
	}
	return *actor.TenantID, nil
}

func (s *ProjectService) ensureProjectLimit(tenantID uuid.UUID) error {
	tenant, err := s.tenantRepo.FindByID(tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierrors.NotFound("Tenant not found")
		}
		return fmt.Errorf("failed to find tenant: %w", err)
	}

	count, err := s.tenantRepo.CountProjects(tenantID)
	if err != nil {
		return fmt.Errorf("failed to count projects: %w", err)
	}
	if count >= int64(tenant.MaxProjects) {
		return apierrors.Forbidden("Project limit reached for current plan")
	}
	return nil
}

func (s *ProjectService) findProject(id uuid.UUID, preload ...string) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id, preload...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NotFound("Project not found")
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) checkMutateAccess(actor auth.Principal, project *models.Project) error {
	if !actor.CanAccessTenant(project.TenantID) {
		return apierrors.CrossTenant()
	}
	isCreator := project.CreatedBy != nil && *project.CreatedBy == actor.UserID
	if !actor.IsAdmin() && !isCreator {
		return apierrors.Forbidden("Forbidden")
	}
	return nil
}
