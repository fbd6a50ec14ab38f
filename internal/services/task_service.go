package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Yash913212/Multi-tenant-saas/internal/auth"
	apierrors "github.com/Yash913212/Multi-tenant-saas/internal/errors"
	"github.com/Yash913212/Multi-tenant-saas/internal/models"
	"github.com/Yash913212/Multi-tenant-saas/internal/repository"
)

// TaskService handles task CRUD. Any member of the owning tenant may create
// or edit tasks; there is no per-task ownership beyond the tenant match.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	auditSvc    *AuditService
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, userRepo repository.UserRepository, auditSvc *AuditService) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		auditSvc:    auditSvc,
	}
}

// CreateTaskInput holds the payload for creating a task in a project.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	AssignedTo  *uuid.UUID
	DueDate     *time.Time
	IPAddress   string
}

// Create creates a task in the project. The assignee, when given, must
// belong to the project's tenant.
func (s *TaskService) Create(actor auth.Principal, projectID uuid.UUID, input CreateTaskInput) (*models.Task, error) {
	project, err := s.findProject(projectID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessTenant(project.TenantID) {
		return nil, apierrors.CrossTenant()
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apierrors.BadRequest("Title is required")
	}

	status := input.Status
	if status == "" {
		status = models.TaskStatusTodo
	}
	if !models.ValidTaskStatus(status) {
		return nil, apierrors.BadRequest("Invalid status")
	}

	priority := input.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}
	if !models.ValidTaskPriority(priority) {
		return nil, apierrors.BadRequest("Invalid priority")
	}

	if input.AssignedTo != nil {
		if err := s.checkAssignee(*input.AssignedTo, project.TenantID); err != nil {
			return nil, err
		}
	}

	task := &models.Task{
		ProjectID:   project.ID,
		TenantID:    project.TenantID,
		Title:       title,
		Description: input.Description,
		Status:      status,
		Priority:    priority,
		AssignedTo:  input.AssignedTo,
		DueDate:     input.DueDate,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	actorID := actor.UserID
	s.auditSvc.Record(AuditEvent{
		TenantID:   &task.TenantID,
		UserID:     &actorID,
		Action:     models.ActionCreateTask,
		EntityType: "task",
		EntityID:   &task.ID,
		IPAddress:  input.IPAddress,
	})

	return task, nil
}

// ListTasksInput holds filters for listing a project's tasks.
type ListTasksInput struct {
	Status     *models.TaskStatus
	Priority   *models.TaskPriority
	AssignedTo *uuid.UUID
	Search     string
	Page       int
	PageSize   int
}

// List returns the project's tasks, high priority first.
func (s *TaskService) List(actor auth.Principal, projectID uuid.UUID, input ListTasksInput) ([]models.Task, int64, error) {
	project, err := s.findProject(projectID)
	if err != nil {
		return nil, 0, err
	}
	if !actor.CanAccessTenant(project.TenantID) {
		return nil, 0, apierrors.CrossTenant()
	}

	tasks, total, err := s.taskRepo.List(repository.TaskFilter{
		TenantID:   project.TenantID,
		ProjectID:  project.ID,
		Status:     input.Status,
		Priority:   input.Priority,
		AssignedTo: input.AssignedTo,
		Search:     input.Search,
		Page:       input.Page,
		PageSize:   input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// Get returns a single task with its assignee.
func (s *TaskService) Get(actor auth.Principal, id uuid.UUID) (*models.Task, error) {
	task, err := s.findTask(id, "Assignee")
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessTenant(task.TenantID) {
		return nil, apierrors.CrossTenant()
	}
	return task, nil
}

// UpdateTaskInput is a patch: nil fields are left unchanged; the Clear flags
// carry an explicit null, which empties the column.
type UpdateTaskInput struct {
	Title         *string
	Description   *string
	Status        *models.TaskStatus
	Priority      *models.TaskPriority
	AssignedTo    *uuid.UUID
	ClearAssignee bool
	DueDate       *time.Time
	ClearDueDate  bool
	IPAddress     string
}

// Update applies a task patch.
func (s *TaskService) Update(actor auth.Principal, id uuid.UUID, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.findTask(id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessTenant(task.TenantID) {
		return nil, apierrors.CrossTenant()
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, apierrors.BadRequest("Title cannot be empty")
		}
		task.Title = title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		if !models.ValidTaskStatus(*input.Status) {
			return nil, apierrors.BadRequest("Invalid status")
		}
		task.Status = *input.Status
	}
	if input.Priority != nil {
		if !models.ValidTaskPriority(*input.Priority) {
			return nil, apierrors.BadRequest("Invalid priority")
		}
		task.Priority = *input.Priority
	}
	if input.ClearAssignee {
		task.AssignedTo = nil
	} else if input.AssignedTo != nil {
		if err := s.checkAssignee(*input.AssignedTo, task.TenantID); err != nil {
			return nil, err
		}
		task.AssignedTo = input.AssignedTo
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	actorID := actor.UserID
	s.auditSvc.Record(AuditEvent{
		TenantID:   &task.TenantID,
		UserID:     &actorID,
		Action:     models.ActionUpdateTask,
		EntityType: "task",
		EntityID:   &task.ID,
		IPAddress:  input.IPAddress,
	})

	return task, nil
}

// UpdateStatus changes only the task's status.
func (s *TaskService) UpdateStatus(actor auth.Principal, id uuid.UUID, status models.TaskStatus, ipAddress string) (*models.Task, error) {
	if !models.ValidTaskStatus(status) {
		return nil, apierrors.BadRequest("Invalid status")
	}

	task, err := s.findTask(id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessTenant(task.TenantID) {
		return nil, apierrors.CrossTenant()
	}

	task.Status = status
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	actorID := actor.UserID
	s.auditSvc.Record(AuditEvent{
		TenantID:   &task.TenantID,
		UserID:     &actorID,
		Action:     models.ActionUpdateTaskStatus,
		EntityType: "task",
		EntityID:   &task.ID,
		IPAddress:  ipAddress,
	})

	return task, nil
}

// Delete removes a task.
func (s *TaskService) Delete(actor auth.Principal, id uuid.UUID, ipAddress string) error {
	task, err := s.findTask(id)
	if err != nil {
		return err
	}
	if !actor.CanAccessTenant(task.TenantID) {
		return apierrors.CrossTenant()
	}

	if err := s.taskRepo.Delete(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	actorID := actor.UserID
	s.auditSvc.Record(AuditEvent{
		TenantID:   &task.TenantID,
		UserID:     &actorID,
		Action:     models.ActionDeleteTask,
		EntityType: "task",
		EntityID:   &task.ID,
		IPAddress:  ipAddress,
	})

	return nil
}

func (s *TaskService) findProject(id uuid.UUID) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NotFound("Project not found")
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

func (s *TaskService) findTask(id uuid.UUID, preload ...string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id, preload...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NotFound("Task not found")
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// checkAssignee rejects assignees outside the task's tenant at validation
// time, before anything is written.
func (s *TaskService) checkAssignee(userID, tenantID uuid.UUID) error {
	assignee, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierrors.BadRequest("Assigned user must belong to tenant")
		}
		return fmt.Errorf("failed to find assignee: %w", err)
	}
	if assignee.TenantID == nil || *assignee.TenantID != tenantID {
		return apierrors.BadRequest("Assigned user must belong to tenant")
	}
	return nil
}
