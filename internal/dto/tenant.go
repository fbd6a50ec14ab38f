package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/Yash913212/Multi-tenant-saas/internal/models"
	"github.com/Yash913212/Multi-tenant-saas/internal/repository"
	"github.com/Yash913212/Multi-tenant-saas/internal/utils"
)

// TenantDTO represents a tenant in API responses
type TenantDTO struct {
	ID               uuid.UUID               `json:"id"`
	Name             string                  `json:"name"`
	Subdomain        string                  `json:"subdomain"`
	Status           models.TenantStatus     `json:"status"`
	SubscriptionPlan models.SubscriptionPlan `json:"subscription_plan"`
	MaxUsers         int                     `json:"max_users"`
	MaxProjects      int                     `json:"max_projects"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

// TenantListItemDTO is a tenant row in list responses, with member counts.
type TenantListItemDTO struct {
	TenantDTO
	TotalUsers    int64 `json:"total_users"`
	TotalProjects int64 `json:"total_projects"`
}

// TenantDetailDTO is a single tenant with its aggregate stats.
type TenantDetailDTO struct {
	TenantDTO
	Stats *repository.TenantStats `json:"stats"`
}

// TenantListResponse represents a paginated list of tenants
type TenantListResponse struct {
	Tenants    []TenantListItemDTO      `json:"tenants"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToTenantDTO converts a tenant model to DTO
func ToTenantDTO(tenant models.Tenant) TenantDTO {
	return TenantDTO{
		ID:               tenant.ID,
		Name:             tenant.Name,
		Subdomain:        tenant.Subdomain,
		Status:           tenant.Status,
		SubscriptionPlan: tenant.SubscriptionPlan,
		MaxUsers:         tenant.MaxUsers,
		MaxProjects:      tenant.MaxProjects,
		CreatedAt:        tenant.CreatedAt,
		UpdatedAt:        tenant.UpdatedAt,
	}
}

// ToTenantListItemDTOs converts tenants with counts to list DTOs
func ToTenantListItemDTOs(rows []repository.TenantWithCounts) []TenantListItemDTO {
	dtos := make([]TenantListItemDTO, len(rows))
	for i, row := range rows {
		dtos[i] = TenantListItemDTO{
			TenantDTO:     ToTenantDTO(row.Tenant),
			TotalUsers:    row.TotalUsers,
			TotalProjects: row.TotalProjects,
		}
	}
	return dtos
}
