package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yash913212/Multi-tenant-saas/internal/dto"
	apierrors "github.com/Yash913212/Multi-tenant-saas/internal/errors"
	"github.com/Yash913212/Multi-tenant-saas/internal/middleware"
	"github.com/Yash913212/Multi-tenant-saas/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerTenantRequest struct {
	TenantName    string `json:"tenant_name" binding:"required"`
	Subdomain     string `json:"subdomain" binding:"required"`
	AdminEmail    string `json:"admin_email" binding:"required"`
	AdminPassword string `json:"admin_password" binding:"required"`
	AdminFullName string `json:"admin_full_name" binding:"required"`
}

// RegisterTenant handles self-service tenant signup.
func (h *AuthHandler) RegisterTenant(c *gin.Context) {
	var req registerTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondStatus(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	result, err := h.authService.RegisterTenant(services.RegisterTenantInput{
		TenantName:    req.TenantName,
		Subdomain:     req.Subdomain,
		AdminEmail:    req.AdminEmail,
		AdminPassword: req.AdminPassword,
		AdminFullName: req.AdminFullName,
		IPAddress:     c.ClientIP(),
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	apierrors.Created(c, "Tenant registered successfully", dto.RegisterResponseDTO{
		TenantID:  result.TenantID.String(),
		Subdomain: result.Subdomain,
		AdminUser: dto.ToUserDTO(*result.AdminUser),
	})
}

type loginRequest struct {
	Email           string `json:"email" binding:"required"`
	Password        string `json:"password" binding:"required"`
	TenantSubdomain string `json:"tenant_subdomain"`
	TenantID        string `json:"tenant_id"`
}

// Login verifies credentials and issues a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondStatus(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	result, err := h.authService.Login(services.LoginInput{
		Email:           req.Email,
		Password:        req.Password,
		TenantSubdomain: req.TenantSubdomain,
		TenantID:        req.TenantID,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	apierrors.OK(c, "Login successful", dto.LoginResponseDTO{
		Token:     result.Token,
		ExpiresIn: result.ExpiresIn,
		User:      dto.ToUserDTO(*result.User),
		Tenant:    dto.ToTenantDTOPtr(result.Tenant),
	})
}

// Me returns the authenticated user and their tenant.
func (h *AuthHandler) Me(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.RespondStatus(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, tenant, err := h.authService.CurrentUser(principal.UserID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	apierrors.OK(c, "Current user", dto.MeResponseDTO{
		User:   dto.ToUserDTO(*user),
		Tenant: dto.ToTenantDTOPtr(tenant),
	})
}

// Logout records the logout in the audit trail. Tokens are stateless, so the
// client simply discards theirs.
func (h *AuthHandler) Logout(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.RespondStatus(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	h.authService.Logout(principal, c.ClientIP())
	apierrors.OK(c, "Logged out successfully", nil)
}
