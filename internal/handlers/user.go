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

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type createUserRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
	Role     string `json:"role"`
}

// CreateUser adds a user to the tenant named in the path.
func (h *UserHandler) CreateUser(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondStatus(c, http.StatusBadRequest, "Invalid tenant ID")
		return
	}

	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondStatus(c, http.StatusBadRequest, "Email, password and full name are required")
		return
	}

	user, err := h.userService.Create(principal, tenantID, services.CreateUserInput{
		Email:     req.Email,
		Password:  req.Password,
		FullName:  req.FullName,
		Role:      models.UserRole(req.Role),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	apierrors.Created(c, "User created successfully", dto.ToUserDTO(*user))
}

// ListTenantUsers returns the users of the tenant named in the path.
func (h *UserHandler) ListTenantUsers(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondStatus(c, http.StatusBadRequest, "Invalid tenant ID")
		return
	}
	h.listUsers(c, tenantID)
}

// ListUsers returns the users of the caller's own tenant. Super admins pass
// an explicit tenant_id query parameter instead.
func (h *UserHandler) ListUsers(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	var tenantID uuid.UUID
	switch {
	case c.Query("tenant_id") != "":
		id, err := uuid.Parse(c.Query("tenant_id"))
		if err != nil {
			apierrors.RespondStatus(c, http.StatusBadRequest, "Invalid tenant ID")
			return
		}
		tenantID = id
	case principal.TenantID != nil:
		tenantID = *principal.TenantID
	default:
		apierrors.RespondStatus(c, http.StatusBadRequest, "Tenant context required")
		return
	}

	h.listUsers(c, tenantID)
}

func (h *UserHandler) listUsers(c *gin.Context, tenantID uuid.UUID) {
	principal, _ := middleware.GetPrincipal(c)
	params := utils.GetPaginationParams(c)

	input := services.ListUsersInput{
		Search:   c.Query("search"),
		Page:     params.Page,
		PageSize: params.PageSize,
	}
	if role := c.Query("role"); role != "" {
		r := models.UserRole(role)
		input.Role = &r
	}

	users, total, err := h.userService.List(principal, tenantID, input)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	apierrors.OK(c, "Users retrieved", dto.UserListResponse{
		Users:      dto.ToUserDTOs(users),
		Pagination: utils.NewPaginationResponse(params, total),
	})
}

// GetUser returns one user.
func (h *UserHandler) GetUser(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondStatus(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := h.userService.Get(principal, id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	apierrors.OK(c, "User retrieved", dto.ToUserDTO(*user))
}

// UpdateUser applies a partial update with field presence detected on the
// raw body.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondStatus(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		apierrors.RespondStatus(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	input := services.UpdateUserInput{IPAddress: c.ClientIP()}
	if v, ok := raw["full_name"].(string); ok {
		input.FullName = &v
	}
	if v, ok := raw["password"].(string); ok {
		input.Password = &v
	}
	if v, ok := raw["role"].(string); ok {
		r := models.UserRole(v)
		input.Role = &r
	}
	if v, ok := raw["is_active"].(bool); ok {
		input.IsActive = &v
	}

	user, err := h.userService.Update(principal, id, input)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	apierrors.OK(c, "User updated successfully", dto.ToUserDTO(*user))
}

// DeleteUser removes a user permanently.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondStatus(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := h.userService.Delete(principal, id, c.ClientIP()); err != nil {
		apierrors.Respond(c, err)
		return
	}

	apierrors.OK(c, "User deleted successfully", nil)
}
