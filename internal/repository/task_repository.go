package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yukikurage/project-management-api/internal/database"
	"github.com/yukikurage/project-management-api/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

var (
	// ErrCreateTask is returned when inserting the task fails inside the create transaction.
	ErrCreateTask = errors.New("task repository: create task failed")
	// ErrUpdateTask is returned when saving the task fails inside the update transaction.
	ErrUpdateTask = errors.New("task repository: update task failed")
	// ErrUpdateProject is returned when updating the project's task list fails.
	ErrUpdateProject = errors.New("task repository: update project failed")
	// ErrUpdateAssignee is returned when updating an assignee's task list fails.
	ErrUpdateAssignee = errors.New("task repository: update assignee failed")
	// ErrDeleteTask is returned when deleting the task document fails.
	ErrDeleteTask = errors.New("task repository: delete task failed")
)

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// CreateUnderProject inserts the task first, then the back-references: the
// project's task list always, the assignee's task list when one is set.
func (r *GormTaskRepository) CreateUnderProject(task *models.Task, project *models.Project, assignee *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateTask, err)
		}

		project.Tasks = models.AppendRef(project.Tasks, task.ID)
		if err := tx.Save(project).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrUpdateProject, err)
		}

		if assignee != nil {
			assignee.Tasks = models.AppendRef(assignee.Tasks, task.ID)
			if err := tx.Save(assignee).Error; err != nil {
				return fmt.Errorf("%w: %v", ErrUpdateAssignee, err)
			}
		}

		return nil
	})
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(id models.TaskID) (*models.Task, error) {
	var task models.Task
	if err := r.db.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindByAssignee lists tasks assigned to a user
func (r *GormTaskRepository) FindByAssignee(userID models.UserID) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.Scopes(database.OrderedByID).Where("assigned_to = ?", userID).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindByProject lists tasks belonging to a project
func (r *GormTaskRepository) FindByProject(projectID models.ProjectID) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.Scopes(database.OrderedByID).Where("project_id = ?", projectID).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateWithReassignment saves the task and keeps the assignees' task lists
// consistent when assigned_to changed. Old and new assignee may each be nil.
func (r *GormTaskRepository) UpdateWithReassignment(task *models.Task, oldAssignee, newAssignee *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(task).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrUpdateTask, err)
		}

		if oldAssignee != nil {
			oldAssignee.Tasks = models.PullRef(oldAssignee.Tasks, task.ID)
			if err := tx.Save(oldAssignee).Error; err != nil {
				return fmt.Errorf("%w: %v", ErrUpdateAssignee, err)
			}
		}

		if newAssignee != nil {
			newAssignee.Tasks = models.AppendRef(newAssignee.Tasks, task.ID)
			if err := tx.Save(newAssignee).Error; err != nil {
				return fmt.Errorf("%w: %v", ErrUpdateAssignee, err)
			}
		}

		return nil
	})
}

// DeleteWithReferences deletes the task document first, then pulls its
// reference from the project's task list and, when assigned, from the
// assignee's task list. A nil project (orphaned task) or nil assignee
// skips the corresponding back-reference step.
func (r *GormTaskRepository) DeleteWithReferences(task *models.Task, project *models.Project, assignee *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Task{}, task.ID).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrDeleteTask, err)
		}

		if project != nil {
			project.Tasks = models.PullRef(project.Tasks, task.ID)
			if err := tx.Save(project).Error; err != nil {
				return fmt.Errorf("%w: %v", ErrUpdateProject, err)
			}
		}

		if assignee != nil {
			assignee.Tasks = models.PullRef(assignee.Tasks, task.ID)
			if err := tx.Save(assignee).Error; err != nil {
				return fmt.Errorf("%w: %v", ErrUpdateAssignee, err)
			}
		}

		return nil
	})
}
