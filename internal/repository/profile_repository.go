package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yukikurage/project-management-api/internal/models"
)

// GormProfileRepository is a GORM implementation of ProfileRepository
type GormProfileRepository struct {
	db *gorm.DB
}

var (
	// ErrCreateProfileDoc is returned when inserting the profile fails inside the create transaction.
	ErrCreateProfileDoc = errors.New("profile repository: create profile failed")
	// ErrLinkProfileOwner is returned when linking the profile back to its owner fails.
	ErrLinkProfileOwner = errors.New("profile repository: link owner failed")
)

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &GormProfileRepository{db: db}
}

// CreateForUser creates the profile and points the owning user at it, as
// one transaction.
func (r *GormProfileRepository) CreateForUser(profile *models.Profile, user *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		profile.UserID = user.ID
		if err := tx.Create(profile).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateProfileDoc, err)
		}

		user.ProfileID = &profile.ID
		if err := tx.Save(user).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrLinkProfileOwner, err)
		}

		return nil
	})
}

// FindByID finds a profile by ID
func (r *GormProfileRepository) FindByID(id models.ProfileID) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.First(&profile, id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// Update updates a profile
func (r *GormProfileRepository) Update(profile *models.Profile) error {
	return r.db.Save(profile).Error
}
