package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/repository"
)

var (
	ErrProfileNotFound     = errors.New("profile not found")
	ErrNotProfileOwner     = errors.New("only the profile owner can edit it")
	ErrFailedToSaveProfile = errors.New("failed to save profile")
)

// ProfileService handles profile creation and updates.
type ProfileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(profileRepo repository.ProfileRepository, userRepo repository.UserRepository) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		userRepo:    userRepo,
	}
}

// CreateProfile creates an empty profile for the user and links it, as one
// transaction.
func (s *ProfileService) CreateProfile(userID models.UserID) (*models.Profile, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	profile := &models.Profile{}
	if err := s.profileRepo.CreateForUser(profile, user); err != nil {
		return nil, ErrFailedToSaveProfile
	}

	return profile, nil
}

// UpdateProfileInput represents input for updating a profile.
type UpdateProfileInput struct {
	Image        *string
	JobTitle     *string
	Department   *string
	Organization *string
	Location     *string
}

// UpdateProfile applies a partial update if the actor owns the profile.
func (s *ProfileService) UpdateProfile(profileID models.ProfileID, actorID models.UserID, input UpdateProfileInput) (*models.Profile, error) {
	profile, err := s.profileRepo.FindByID(profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}

	if profile.UserID != actorID {
		return nil, ErrNotProfileOwner
	}

	if input.Image != nil {
		profile.Image = *input.Image
	}
	if input.JobTitle != nil {
		profile.JobTitle = *input.JobTitle
	}
	if input.Department != nil {
		profile.Department = *input.Department
	}
	if input.Organization != nil {
		profile.Organization = *input.Organization
	}
	if input.Location != nil {
		profile.Location = *input.Location
	}

	if err := s.profileRepo.Update(profile); err != nil {
		return nil, ErrFailedToSaveProfile
	}

	return profile, nil
}
