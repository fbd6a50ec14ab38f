package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Yash913212/Multi-tenant-saas/internal/dto"
	apierrors "github.com/Yash913212/Multi-tenant-saas/internal/errors"
	"github.com/Yash913212/Multi-tenant-saas/internal/middleware"
	"github.com/Yash913212/Multi-tenant-saas/internal/models"
	"github.com/Yash913212/Multi-tenant-saas/internal/services"
	"github.com/Yash913212/Multi-tenant-saas/internal/utils"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

type createTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	AssignedTo  string     `json:"assigned_to"`
	DueDate     *time.Time `json:"due_date"`
}

// CreateTask creates a task under the project named in the path.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondStatus(c, http.StatusBadRequest, "Invalid project ID")
		return
	}

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondStatus(c, http.StatusBadRequest, "Task title is required")
		return
	}

	input := services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.TaskStatus(req.Status),
		Priority:    models.TaskPriority(req.Priority),
		DueDate:     req.DueDate,
		IPAddress:   c.ClientIP(),
	}
	if req.AssignedTo != "" {
		id, err := uuid.Parse(req.AssignedTo)
		if err != nil {
			apierrors.RespondStatus(c, http.StatusBadRequest, "Invalid assignee ID")
			return
		}
		input.AssignedTo = &id
	}

	task, err := h.taskService.Create(principal, projectID, input)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	apierrors.Created(c, "Task created successfully", dto.ToTaskDTO(*task))
}

// ListTasks returns the tasks of the project named in the path, high
// priority first.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondStatus(c, http.StatusBadRequest, "Invalid project ID")
		return
	}

	params := utils.GetPaginationParams(c)
	input := services.ListTasksInput{
		Search:   c.Query("search"),
		Page:     params.Page,
		PageSize: params.PageSize,
	}
	if status := c.Query("status"); status != "" {
		s := models.TaskStatus(status)
		input.Status = &s
	}
	if priority := c.Query("priority"); priority != "" {
		p := models.TaskPriority(priority)
		input.Priority = &p
	}
	if assignedTo := c.Query("assigned_to"); assignedTo != "" {
		id, err := uuid.Parse(assignedTo)
		if err != nil {
			apierrors.RespondStatus(c, http.StatusBadRequest, "Invalid assignee ID")
			return
		}
		input.AssignedTo = &id
	}

	tasks, total, err := h.taskService.List(principal, projectID, input)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	apierrors.OK(c, "Tasks retrieved", dto.TaskListResponse{
		Tasks:      dto.ToTaskDTOs(tasks),
		Pagination: utils.NewPaginationResponse(params, total),
	})
}

// GetTask returns one task with its assignee.
func (h *TaskHandler) GetTask(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondStatus(c, http.StatusBadRequest, "Invalid task ID")
		return
	}

	task, err := h.taskService.Get(principal, id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	apierrors.OK(c, "Task retrieved", dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update. The raw body is inspected so that an
// explicit null clears assigned_to or due_date while an absent key leaves
// the field untouched.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondStatus(c, http.StatusBadRequest, "Invalid task ID")
		return
	}

	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		apierrors.RespondStatus(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	input := services.UpdateTaskInput{IPAddress: c.ClientIP()}
	if v, ok := raw["title"].(string); ok {
		input.Title = &v
	}
	if v, ok := raw["description"].(string); ok {
		input.Description = &v
	}
	if v, ok := raw["status"].(string); ok {
		s := models.TaskStatus(v)
		input.Status = &s
	}
	if v, ok := raw["priority"].(string); ok {
		p := models.TaskPriority(v)
		input.Priority = &p
	}
	if _, present := raw["assigned_to"]; present {
		if raw["assigned_to"] == nil {
			input.ClearAssignee = true
		} else if v, ok := raw["assigned_to"].(string); ok {
			assigneeID, err := uuid.Parse(v)
			if err != nil {
				apierrors.RespondStatus(c, http.StatusBadRequest, "Invalid assignee ID")
				return
			}
			input.AssignedTo = &assigneeID
		}
	}
	if _, present := raw["due_date"]; present {
		if raw["due_date"] == nil {
			input.ClearDueDate = true
		} else if v, ok := raw["due_date"].(string); ok {
			dueDate, err := time.Parse(time.RFC3339, v)
			if err != nil {
				apierrors.RespondStatus(c, http.StatusBadRequest, "Invalid due date")
				return
			}
			input.DueDate = &dueDate
		}
	}

	task, err := h.taskService.Update(principal, id, input)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	apierrors.OK(c, "Task updated successfully", dto.ToTaskDTO(*task))
}

type updateTaskStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateTaskStatus changes only the task's status.
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondStatus(c, http.StatusBadRequest, "Invalid task ID")
		return
	}

	var req updateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondStatus(c, http.StatusBadRequest, "Status is required")
		return
	}

	task, err := h.taskService.UpdateStatus(principal, id, models.TaskStatus(req.Status), c.ClientIP())
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	apierrors.OK(c, "Task status updated successfully", dto.ToTaskDTO(*task))
}

// DeleteTask removes a task permanently.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondStatus(c, http.StatusBadRequest, "Invalid task ID")
		return
	}

	if err := h.taskService.Delete(principal, id, c.ClientIP()); err != nil {
		apierrors.Respond(c, err)
		return
	}

	apierrors.OK(c, "Task deleted successfully", nil)
}
