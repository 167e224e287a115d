package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/repository"
)

var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrTaskAssigneeNotFound = errors.New("assigned user not found")
	ErrFailedToSaveTask     = errors.New("failed to save task")
)

// TaskService handles task business logic, including the transactional
// back-reference bookkeeping on the owning project and the assignee.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
	AssignedTo  *models.UserID
	StartDate   *time.Time
	DueDate     *time.Time
	ProjectID   models.ProjectID
}

// CreateTask creates a task under an existing project. The project's task
// list and, when assigned, the assignee's task list are written in the same
// transaction as the task itself.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	project, err := s.projectRepo.FindByID(input.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	var assignee *models.User
	if input.AssignedTo != nil {
		assignee, err = s.userRepo.FindByID(*input.AssignedTo)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTaskAssigneeNotFound
			}
			return nil, fmt.Errorf("failed to find assignee: %w", err)
		}
	}

	status := input.Status
	if status == "" {
		status = models.TaskStatusTodo
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		AssignedTo:  input.AssignedTo,
		StartDate:   input.StartDate,
		DueDate:     input.DueDate,
		ProjectID:   input.ProjectID,
	}

	if err := s.taskRepo.CreateUnderProject(task, project, assignee); err != nil {
		return nil, ErrFailedToSaveTask
	}

	return task, nil
}

// GetTask returns a task by ID.
func (s *TaskService) GetTask(id models.TaskID) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// GetTasksByAssignee lists tasks assigned to a user.
func (s *TaskService) GetTasksByAssignee(userID models.UserID) ([]models.Task, error) {
	tasks, err := s.taskRepo.FindByAssignee(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTasksByProject lists tasks belonging to a project.
func (s *TaskService) GetTasksByProject(projectID models.ProjectID) ([]models.Task, error) {
	tasks, err := s.taskRepo.FindByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTaskInput represents input for updating a task.
type UpdateTaskInput struct {
	Title         *string
	Description   *string
	Status        *models.TaskStatus
	AssignedTo    *models.UserID
	ClearAssignee bool
	StartDate     *time.Time
	DueDate       *time.Time
}

// UpdateTask applies a partial update. When the assignee changes, the task
// reference is moved between the affected users' task lists in the same
// transaction as the task update.
func (s *TaskService) UpdateTask(taskID models.TaskID, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.GetTask(taskID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.StartDate != nil {
		task.StartDate = input.StartDate
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	var oldAssignee, newAssignee *models.User
	switch {
	case input.ClearAssignee:
		oldAssignee = s.findAssignee(task.AssignedTo)
		task.AssignedTo = nil
	case input.AssignedTo != nil:
		if task.AssignedTo == nil || *task.AssignedTo != *input.AssignedTo {
			newAssignee, err = s.userRepo.FindByID(*input.AssignedTo)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrTaskAssigneeNotFound
				}
				return nil, fmt.Errorf("failed to find assignee: %w", err)
			}
			oldAssignee = s.findAssignee(task.AssignedTo)
			task.AssignedTo = input.AssignedTo
		}
	}

	if err := s.taskRepo.UpdateWithReassignment(task, oldAssignee, newAssignee); err != nil {
		return nil, ErrFailedToSaveTask
	}

	return task, nil
}

// DeleteTask deletes a task and pulls its reference from the owning
// project's task list and the assignee's task list. Orphaned tasks (project
// already gone) and unassigned tasks skip the missing back-reference.
func (s *TaskService) DeleteTask(taskID models.TaskID) error {
	task, err := s.GetTask(taskID)
	if err != nil {
		return err
	}

	var project *models.Project
	project, err = s.projectRepo.FindByID(task.ProjectID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to find project: %w", err)
		}
		project = nil
	}

	assignee := s.findAssignee(task.AssignedTo)

	if err := s.taskRepo.DeleteWithReferences(task, project, assignee); err != nil {
		return ErrFailedToSaveTask
	}

	return nil
}

// findAssignee resolves an optional assignee reference; a missing user is
// treated the same as no assignee.
func (s *TaskService) findAssignee(id *models.UserID) *models.User {
	if id == nil {
		return nil
	}
	user, err := s.userRepo.FindByID(*id)
	if err != nil {
		return nil
	}
	return user
}
