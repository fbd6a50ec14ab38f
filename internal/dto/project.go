package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/Yash913212/Multi-tenant-saas/internal/models"
	"github.com/Yash913212/Multi-tenant-saas/internal/repository"
	"github.com/Yash913212/Multi-tenant-saas/internal/utils"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uuid.UUID            `json:"id"`
	TenantID    uuid.UUID            `json:"tenant_id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Status      models.ProjectStatus `json:"status"`
	CreatedBy   *uuid.UUID           `json:"created_by"`
	Creator     *UserDTO             `json:"creator,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// ProjectListItemDTO is a project row in list responses, with task counts.
type ProjectListItemDTO struct {
	ProjectDTO
	TaskCount          int64 `json:"task_count"`
	CompletedTaskCount int64 `json:"completed_task_count"`
}

// ProjectListResponse represents a paginated list of projects
type ProjectListResponse struct {
	Projects   []ProjectListItemDTO     `json:"projects"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToProjectDTO converts a project model to DTO
func ToProjectDTO(project models.Project) ProjectDTO {
	dto := ProjectDTO{
		ID:          project.ID,
		TenantID:    project.TenantID,
		Name:        project.Name,
		Description: project.Description,
		Status:      project.Status,
		CreatedBy:   project.CreatedBy,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
	if project.Creator != nil {
		creator := ToUserDTO(*project.Creator)
		dto.Creator = &creator
	}
	return dto
}

// ToProjectListItemDTOs converts projects with counts to list DTOs
func ToProjectListItemDTOs(rows []repository.ProjectWithCounts) []ProjectListItemDTO {
	dtos := make([]ProjectListItemDTO, len(rows))
	for i, row := range rows {
		dtos[i] = ProjectListItemDTO{
			ProjectDTO:         ToProjectDTO(row.Project),
			TaskCount:          row.TaskCount,
			CompletedTaskCount: row.CompletedTaskCount,
		}
	}
	return dtos
}
