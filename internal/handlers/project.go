package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Yash913212/Multi-tenant-saas/internal/dto"
	apierrors "github.com/Yash913212/Multi-tenant-saas/internal/errors"
	"github.com/Yash913212/Multi-tenant-saas/internal/middleware"
	"github.com/Yash913212/Multi-tenant-saas/internal/models"
	"github.com/Yash913212/Multi-tenant-saas/internal/services"
	"github.com/Yash913212/Multi-tenant-saas/internal/utils"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

type createProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
	TenantID    string `json:"tenant_id"`
}

// CreateProject creates a project in the caller's tenant. Super admins may
// target any tenant via tenant_id.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondStatus(c, http.StatusBadRequest, "Project name is required")
		return
	}

	input := services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      models.ProjectStatus(req.Status),
		IPAddress:   c.ClientIP(),
	}
	if req.TenantID != "" {
		id, err := uuid.Parse(req.TenantID)
		if err != nil {
			apierrors.RespondStatus(c, http.StatusBadRequest, "Invalid tenant ID")
			return
		}
		input.TenantID = &id
	}

	project, err := h.projectService.Create(principal, input)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	apierrors.Created(c, "Project created successfully", dto.ToProjectDTO(*project))
}

// ListProjects returns projects visible to the caller, with task counts.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	params := utils.GetPaginationParams(c)

	input := services.ListProjectsInput{
		Search:   c.Query("search"),
		Page:     params.Page,
		PageSize: params.PageSize,
	}
	if status := c.Query("status"); status != "" {
		s := models.ProjectStatus(status)
		input.Status = &s
	}
	if tenantID := c.Query("tenant_id"); tenantID != "" {
		id, err := uuid.Parse(tenantID)
		if err != nil {
			apierrors.RespondStatus(c, http.StatusBadRequest, "Invalid tenant ID")
			return
		}
		input.TenantID = &id
	}

	rows, total, err := h.projectService.List(principal, input)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	apierrors.OK(c, "Projects retrieved", dto.ProjectListResponse{
		Projects:   dto.ToProjectListItemDTOs(rows),
		Pagination: utils.NewPaginationResponse(params, total),
	})
}

// GetProject returns one project.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondStatus(c, http.StatusBadRequest, "Invalid project ID")
		return
	}

	project, err := h.projectService.Get(principal, id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	apierrors.OK(c, "Project retrieved", dto.ToProjectDTO(*project))
}

// UpdateProject applies a partial update with field presence detected on the
// raw body.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondStatus(c, http.StatusBadRequest, "Invalid project ID")
		return
	}

	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		apierrors.RespondStatus(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	input := services.UpdateProjectInput{IPAddress: c.ClientIP()}
	if v, ok := raw["name"].(string); ok {
		input.Name = &v
	}
	if v, ok := raw["description"].(string); ok {
		input.Description = &v
	}
	if v, ok := raw["status"].(string); ok {
		s := models.ProjectStatus(v)
		input.Status = &s
	}

	project, err := h.projectService.Update(principal, id, input)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	apierrors.OK(c, "Project updated successfully", dto.ToProjectDTO(*project))
}

// DeleteProject removes a project and its tasks.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondStatus(c, http.StatusBadRequest, "Invalid project ID")
		return
	}

	if err := h.projectService.Delete(principal, id, c.ClientIP()); err != nil {
		apierrors.Respond(c, err)
		return
	}

	apierrors.OK(c, "Project deleted successfully", nil)
}
