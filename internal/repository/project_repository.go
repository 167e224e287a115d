package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yukikurage/project-management-api/internal/database"
	"github.com/yukikurage/project-management-api/internal/models"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

var (
	// ErrCreateProject is returned when inserting the project fails inside the create transaction.
	ErrCreateProject = errors.New("project repository: create project failed")
	// ErrUpdateMember is returned when appending the project reference to a member fails.
	ErrUpdateMember = errors.New("project repository: update member failed")
	// ErrDeleteProject is returned when deleting the project document fails.
	ErrDeleteProject = errors.New("project repository: delete project failed")
	// ErrUpdateCreator is returned when pulling the project reference from the creator fails.
	ErrUpdateCreator = errors.New("project repository: update creator failed")
)

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// CreateWithMembers creates the project first, then appends its reference to
// every member's project list. One transaction; no partial membership is
// ever observable.
func (r *GormProjectRepository) CreateWithMembers(project *models.Project, members []*models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateProject, err)
		}

		for _, member := range members {
			member.Projects = models.AppendRef(member.Projects, project.ID)
			if err := tx.Save(member).Error; err != nil {
				return fmt.Errorf("%w: %v", ErrUpdateMember, err)
			}
		}

		return nil
	})
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(id models.ProjectID) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByMember lists the projects whose members JSON column contains
// userID. Querying the project side keeps the listing correct even when a
// later member-list update never rewrote the user's back-references.
func (r *GormProjectRepository) FindByMember(userID models.UserID) ([]models.Project, error) {
	q := r.db.Scopes(database.OrderedByID)
	switch r.db.Dialector.Name() {
	case "mysql":
		q = q.Where("JSON_CONTAINS(members, ?)", fmt.Sprintf("[%d]", userID))
	case "postgres":
		q = q.Where("members @> ?::jsonb", fmt.Sprintf("[%d]", userID))
	default:
		q = q.Where("EXISTS (SELECT 1 FROM json_each(members) WHERE json_each.value = ?)", uint64(userID))
	}

	var projects []models.Project
	if err := q.Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Update updates a project
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// DeleteWithCreator deletes the project document and pulls its reference
// from the creator's project list atomically. Tasks under the project are
// left in place.
func (r *GormProjectRepository) DeleteWithCreator(project *models.Project, creator *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Project{}, project.ID).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrDeleteProject, err)
		}

		creator.Projects = models.PullRef(creator.Projects, project.ID)
		if err := tx.Save(creator).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrUpdateCreator, err)
		}

		return nil
	})
}
