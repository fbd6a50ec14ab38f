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

type TenantHandler struct {
	tenantService *services.TenantService
}

func NewTenantHandler(tenantService *services.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// ListTenants returns all tenants with member counts. Super admin only,
// enforced at the route level.
func (h *TenantHandler) ListTenants(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	input := services.ListTenantsInput{
		Page:     params.Page,
		PageSize: params.PageSize,
	}
	if status := c.Query("status"); status != "" {
		s := models.TenantStatus(status)
		input.Status = &s
	}
	if plan := c.Query("plan"); plan != "" {
		p := models.SubscriptionPlan(plan)
		input.Plan = &p
	}

	rows, total, err := h.tenantService.List(input)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	apierrors.OK(c, "Tenants retrieved", dto.TenantListResponse{
		Tenants:    dto.ToTenantListItemDTOs(rows),
		Pagination: utils.NewPaginationResponse(params, total),
	})
}

type createTenantRequest struct {
	Name      string `json:"name" binding:"required"`
	Subdomain string `json:"subdomain" binding:"required"`
	Plan      string `json:"subscription_plan"`
}

// CreateTenant provisions a tenant directly, without a first admin user.
func (h *TenantHandler) CreateTenant(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	var req createTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondStatus(c, http.StatusBadRequest, "Name and subdomain are required")
		return
	}

	tenant, err := h.tenantService.Create(principal, services.CreateTenantInput{
		Name:      req.Name,
		Subdomain: req.Subdomain,
		Plan:      models.SubscriptionPlan(req.Plan),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	apierrors.Created(c, "Tenant created successfully", dto.ToTenantDTO(*tenant))
}

// GetTenant returns one tenant with aggregate stats.
func (h *TenantHandler) GetTenant(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondStatus(c, http.StatusBadRequest, "Invalid tenant ID")
		return
	}

	detail, err := h.tenantService.Get(principal, id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	apierrors.OK(c, "Tenant retrieved", dto.TenantDetailDTO{
		TenantDTO: dto.ToTenantDTO(*detail.Tenant),
		Stats:     detail.Stats,
	})
}

// UpdateTenant applies a partial update. Field presence is detected on the
// raw body so that sent-but-empty and absent are distinguishable.
func (h *TenantHandler) UpdateTenant(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondStatus(c, http.StatusBadRequest, "Invalid tenant ID")
		return
	}

	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		apierrors.RespondStatus(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	input := services.UpdateTenantInput{IPAddress: c.ClientIP()}
	if v, ok := raw["name"].(string); ok {
		input.Name = &v
	}
	if v, ok := raw["status"].(string); ok {
		s := models.TenantStatus(v)
		input.Status = &s
	}
	if v, ok := raw["subscription_plan"].(string); ok {
		p := models.SubscriptionPlan(v)
		input.SubscriptionPlan = &p
	}
	if v, ok := raw["max_users"].(float64); ok {
		n := int(v)
		input.MaxUsers = &n
	}
	if v, ok := raw["max_projects"].(float64); ok {
		n := int(v)
		input.MaxProjects = &n
	}

	tenant, err := h.tenantService.Update(principal, id, input)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	apierrors.OK(c, "Tenant updated successfully", dto.ToTenantDTO(*tenant))
}
