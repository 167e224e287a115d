package repository

import (
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// CreateWithProfile creates a user, their empty profile, and the link
	// between the two within a single transaction.
	CreateWithProfile(user *models.User, profile *models.Profile) error

	// FindByID finds a user by ID
	FindByID(id models.UserID) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByIDs returns the users whose IDs appear in ids
	FindByIDs(ids []models.UserID) ([]models.User, error)

	// List retrieves users with pagination
	List(params utils.PaginationParams) ([]models.User, int64, error)

	// Save persists changes to an existing user
	Save(user *models.User) error
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// CreateWithMembers creates a project and appends its reference to every
	// member's project list atomically.
	CreateWithMembers(project *models.Project, members []*models.User) error

	// FindByID finds a project by ID
	FindByID(id models.ProjectID) (*models.Project, error)

	// FindByMember lists the projects whose member list contains userID
	FindByMember(userID models.UserID) ([]models.Project, error)

	// Update updates a project
	Update(project *models.Project) error

	// DeleteWithCreator deletes a project and removes its reference from the
	// creator's project list atomically.
	DeleteWithCreator(project *models.Project, creator *models.User) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// CreateUnderProject creates a task, appends its reference to the
	// project's task list and, when assigned, to the assignee's task list
	// atomically.
	CreateUnderProject(task *models.Task, project *models.Project, assignee *models.User) error

	// FindByID finds a task by ID
	FindByID(id models.TaskID) (*models.Task, error)

	// FindByAssignee lists tasks assigned to a user
	FindByAssignee(userID models.UserID) ([]models.Task, error)

	// FindByProject lists tasks belonging to a project
	FindByProject(projectID models.ProjectID) ([]models.Task, error)

	// UpdateWithReassignment updates a task and moves the back-reference
	// between the old and new assignee's task lists atomically. Either
	// assignee may be nil.
	UpdateWithReassignment(task *models.Task, oldAssignee, newAssignee *models.User) error

	// DeleteWithReferences deletes a task and removes its reference from the
	// project's and the assignee's task lists atomically. A nil project or
	// nil assignee skips the corresponding back-reference step.
	DeleteWithReferences(task *models.Task, project *models.Project, assignee *models.User) error
}

// ProfileRepository defines the interface for profile data access
type ProfileRepository interface {
	// CreateForUser creates a profile and links it to its owning user
	// within a single transaction.
	CreateForUser(profile *models.Profile, user *models.User) error

	// FindByID finds a profile by ID
	FindByID(id models.ProfileID) (*models.Profile, error)

	// Update updates a profile
	Update(profile *models.Profile) error
}
