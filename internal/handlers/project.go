package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/project-management-api/internal/dto"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/middleware"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/services"
)

// ProjectHandler coordinates project HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// GetProjectByID returns a project by ID.
func (h *ProjectHandler) GetProjectByID(c *gin.Context) {
	if _, ok := middleware.GetUserID(c); !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	projectID, ok := parseProjectID(c.Param("projectId"))
	if !ok {
		apierrors.BadRequest(c, "Invalid project id.")
		return
	}

	project, err := h.projectService.GetProject(projectID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": dto.ToProjectDTO(*project)})
}

// GetProjectsByUserID lists the projects a user is a member of.
func (h *ProjectHandler) GetProjectsByUserID(c *gin.Context) {
	if _, ok := middleware.GetUserID(c); !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	userID, ok := parseUserID(c.Param("userId"))
	if !ok {
		apierrors.BadRequest(c, "Invalid user id.")
		return
	}

	projects, err := h.projectService.GetProjectsByMember(userID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": dto.ToProjectDTOs(projects)})
}

// CreateProject creates a project and registers it with every member.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateProjectRequest struct {
		Name        string          `json:"name" binding:"required"`
		Description string          `json:"description" binding:"required,min=10"`
		Status      string          `json:"status" binding:"omitempty,oneof='Not Started' 'In Progress' 'Completed'"`
		Members     []models.UserID `json:"members"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, err)
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      models.ProjectStatus(req.Status),
		MemberIDs:   req.Members,
		CreatorID:   actorID,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"project": dto.ToProjectDTO(*project)})
}

// UpdateProjectByID updates a project; only its creator may do so.
func (h *ProjectHandler) UpdateProjectByID(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	projectID, ok := parseProjectID(c.Param("projectId"))
	if !ok {
		apierrors.BadRequest(c, "Invalid project id.")
		return
	}

	type UpdateProjectRequest struct {
		Name        *string          `json:"name" binding:"omitempty,min=1"`
		Description *string          `json:"description" binding:"omitempty,min=10"`
		Status      *string          `json:"status" binding:"omitempty,oneof='Not Started' 'In Progress' 'Completed'"`
		Members     *[]models.UserID `json:"members"`
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, err)
		return
	}

	input := services.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		MemberIDs:   req.Members,
	}
	if req.Status != nil {
		status := models.ProjectStatus(*req.Status)
		input.Status = &status
	}

	project, err := h.projectService.UpdateProject(projectID, actorID, input)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": dto.ToProjectDTO(*project)})
}

// DeleteProjectByID deletes a project; only its creator may do so.
func (h *ProjectHandler) DeleteProjectByID(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	projectID, ok := parseProjectID(c.Param("projectId"))
	if !ok {
		apierrors.BadRequest(c, "Invalid project id.")
		return
	}

	if err := h.projectService.DeleteProject(projectID, actorID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully."})
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Could not find project for the provided id.")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "Could not find user for the provided id.")
	case errors.Is(err, services.ErrProjectMemberNotFound):
		apierrors.NotFound(c, "One or more project members not found.")
	case errors.Is(err, services.ErrNotProjectCreator):
		apierrors.Unauthorized(c, "You are not allowed to edit this project.")
	default:
		apierrors.InternalError(c)
	}
}

func parseProjectID(param string) (models.ProjectID, bool) {
	id, err := strconv.ParseUint(param, 10, 64)
	if err != nil {
		return 0, false
	}
	return models.ProjectID(id), true
}
