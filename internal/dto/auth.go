package dto

import (
	"github.com/Yash913212/Multi-tenant-saas/internal/models"
)

// LoginResponseDTO is the payload returned on successful login.
type LoginResponseDTO struct {
	Token     string     `json:"token"`
	ExpiresIn int        `json:"expires_in"`
	User      UserDTO    `json:"user"`
	Tenant    *TenantDTO `json:"tenant"`
}

// MeResponseDTO is the payload of the current-user endpoint.
type MeResponseDTO struct {
	User   UserDTO    `json:"user"`
	Tenant *TenantDTO `json:"tenant"`
}

// RegisterResponseDTO is the payload returned on tenant registration.
type RegisterResponseDTO struct {
	TenantID  string  `json:"tenant_id"`
	Subdomain string  `json:"subdomain"`
	AdminUser UserDTO `json:"admin_user"`
}

// ToTenantDTOPtr converts an optional tenant to an optional DTO.
func ToTenantDTOPtr(tenant *models.Tenant) *TenantDTO {
	if tenant == nil {
		return nil
	}
	dto := ToTenantDTO(*tenant)
	return &dto
}
