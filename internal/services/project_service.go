package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/repository"
)

var (
	ErrProjectNotFound       = errors.New("project not found")
	ErrProjectMemberNotFound = errors.New("one or more project members not found")
	ErrNotProjectCreator     = errors.New("only the project creator can perform this action")
	ErrFailedToSaveProject   = errors.New("failed to save project")
)

// ProjectService handles project business logic, including the transactional
// membership bookkeeping.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// CreateProjectInput represents input for creating a project.
type CreateProjectInput struct {
	Name        string
	Description string
	Status      models.ProjectStatus
	MemberIDs   []models.UserID
	CreatorID   models.UserID
}

// CreateProject resolves every member, then creates the project and the
// members' back-references in one transaction. A single unresolvable member
// fails the whole call before anything is written.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	memberIDs := uniqueUserIDs(input.MemberIDs)

	members, err := s.userRepo.FindByIDs(memberIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch project members: %w", err)
	}
	if len(members) != len(memberIDs) {
		return nil, ErrProjectMemberNotFound
	}

	status := input.Status
	if status == "" {
		status = models.ProjectStatusNotStarted
	}

	project := &models.Project{
		Name:        input.Name,
		Description: input.Description,
		Status:      status,
		Members:     memberIDs,
		CreatorID:   input.CreatorID,
	}

	memberRefs := make([]*models.User, len(members))
	for i := range members {
		memberRefs[i] = &members[i]
	}

	if err := s.projectRepo.CreateWithMembers(project, memberRefs); err != nil {
		return nil, ErrFailedToSaveProject
	}

	return project, nil
}

// GetProject returns a project by ID.
func (s *ProjectService) GetProject(id models.ProjectID) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// GetProjectsByMember lists the projects whose member list contains the
// user. The query runs against the projects themselves, so membership
// changes made after creation are always reflected.
func (s *ProjectService) GetProjectsByMember(userID models.UserID) ([]models.Project, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	projects, err := s.projectRepo.FindByMember(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %w", err)
	}

	return projects, nil
}

// UpdateProjectInput represents input for updating a project.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	Status      *models.ProjectStatus
	MemberIDs   *[]models.UserID
}

// UpdateProject updates a project if the actor is its creator. Member list
// replacement does not rewrite existing members' back-references; the
// membership invariant is enforced at creation only.
func (s *ProjectService) UpdateProject(projectID models.ProjectID, actorID models.UserID, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.GetProject(projectID)
	if err != nil {
		return nil, err
	}

	if project.CreatorID != actorID {
		return nil, ErrNotProjectCreator
	}

	if input.Name != nil {
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Status != nil {
		project.Status = *input.Status
	}
	if input.MemberIDs != nil {
		memberIDs := uniqueUserIDs(*input.MemberIDs)
		members, err := s.userRepo.FindByIDs(memberIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch project members: %w", err)
		}
		if len(members) != len(memberIDs) {
			return nil, ErrProjectMemberNotFound
		}
		project.Members = memberIDs
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, ErrFailedToSaveProject
	}

	return project, nil
}

// DeleteProject deletes a project if the actor is its creator. Tasks under
// the project are intentionally left in place.
func (s *ProjectService) DeleteProject(projectID models.ProjectID, actorID models.UserID) error {
	project, err := s.GetProject(projectID)
	if err != nil {
		return err
	}

	if project.CreatorID != actorID {
		return ErrNotProjectCreator
	}

	creator, err := s.userRepo.FindByID(project.CreatorID)
	if err != nil {
		return fmt.Errorf("failed to find project creator: %w", err)
	}

	if err := s.projectRepo.DeleteWithCreator(project, creator); err != nil {
		return ErrFailedToSaveProject
	}

	return nil
}

func uniqueUserIDs(ids []models.UserID) []models.UserID {
	seen := make(map[models.UserID]struct{}, len(ids))
	out := make([]models.UserID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
