package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/project-management-api/internal/dto"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/middleware"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/services"
)

// TaskHandler coordinates task HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// GetTaskByID returns a task by ID.
func (h *TaskHandler) GetTaskByID(c *gin.Context) {
	if _, ok := middleware.GetUserID(c); !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseTaskID(c.Param("taskId"))
	if !ok {
		apierrors.BadRequest(c, "Invalid task id.")
		return
	}

	task, err := h.taskService.GetTask(taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": dto.ToTaskDTO(*task)})
}

// GetTasksByUserID lists tasks assigned to a user.
func (h *TaskHandler) GetTasksByUserID(c *gin.Context) {
	if _, ok := middleware.GetUserID(c); !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	userID, ok := parseUserID(c.Param("userId"))
	if !ok {
		apierrors.BadRequest(c, "Invalid user id.")
		return
	}

	tasks, err := h.taskService.GetTasksByAssignee(userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": dto.ToTaskDTOs(tasks)})
}

// GetTasksByProjectID lists tasks belonging to a project.
func (h *TaskHandler) GetTasksByProjectID(c *gin.Context) {
	if _, ok := middleware.GetUserID(c); !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	projectID, ok := parseProjectID(c.Param("projectId"))
	if !ok {
		apierrors.BadRequest(c, "Invalid project id.")
		return
	}

	tasks, err := h.taskService.GetTasksByProject(projectID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": dto.ToTaskDTOs(tasks)})
}

// CreateTask creates a task under an existing project.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	if _, ok := middleware.GetUserID(c); !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTaskRequest struct {
		Title       string           `json:"title" binding:"required"`
		Description string           `json:"description" binding:"required,min=10"`
		Status      string           `json:"status" binding:"omitempty,oneof='To-Do' 'In Progress' 'Done'"`
		AssignedTo  *models.UserID   `json:"assigned_to"`
		StartDate   *time.Time       `json:"start_date"`
		DueDate     *time.Time       `json:"due_date"`
		ProjectID   models.ProjectID `json:"project" binding:"required"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, err)
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.TaskStatus(req.Status),
		AssignedTo:  req.AssignedTo,
		StartDate:   req.StartDate,
		DueDate:     req.DueDate,
		ProjectID:   req.ProjectID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task": dto.ToTaskDTO(*task)})
}

// UpdateTaskByID applies a partial update to a task.
func (h *TaskHandler) UpdateTaskByID(c *gin.Context) {
	if _, ok := middleware.GetUserID(c); !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseTaskID(c.Param("taskId"))
	if !ok {
		apierrors.BadRequest(c, "Invalid task id.")
		return
	}

	type UpdateTaskRequest struct {
		Title         *string        `json:"title" binding:"omitempty,min=1"`
		Description   *string        `json:"description" binding:"omitempty,min=10"`
		Status        *string        `json:"status" binding:"omitempty,oneof='To-Do' 'In Progress' 'Done'"`
		AssignedTo    *models.UserID `json:"assigned_to"`
		ClearAssignee bool           `json:"clear_assignee"`
		StartDate     *time.Time     `json:"start_date"`
		DueDate       *time.Time     `json:"due_date"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, err)
		return
	}

	input := services.UpdateTaskInput{
		Title:         req.Title,
		Description:   req.Description,
		AssignedTo:    req.AssignedTo,
		ClearAssignee: req.ClearAssignee,
		StartDate:     req.StartDate,
		DueDate:       req.DueDate,
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		input.Status = &status
	}

	task, err := h.taskService.UpdateTask(taskID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": dto.ToTaskDTO(*task)})
}

// DeleteTaskByID deletes a task.
func (h *TaskHandler) DeleteTaskByID(c *gin.Context) {
	if _, ok := middleware.GetUserID(c); !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseTaskID(c.Param("taskId"))
	if !ok {
		apierrors.BadRequest(c, "Invalid task id.")
		return
	}

	if err := h.taskService.DeleteTask(taskID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully."})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Could not find task for the provided id.")
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Could not find project for the provided id.")
	case errors.Is(err, services.ErrTaskAssigneeNotFound):
		apierrors.NotFound(c, "Could not find user for the provided id.")
	default:
		apierrors.InternalError(c)
	}
}

func parseTaskID(param string) (models.TaskID, bool) {
	id, err := strconv.ParseUint(param, 10, 64)
	if err != nil {
		return 0, false
	}
	return models.TaskID(id), true
}
