package dto

import (
	"time"

	"github.com/yukikurage/project-management-api/internal/models"
)

// UserDTO represents a user in API responses; the password hash never
// appears here.
type UserDTO struct {
	ID        models.UserID      `json:"id"`
	Name      string             `json:"name"`
	Email     string             `json:"email"`
	Role      models.UserRole    `json:"role"`
	Projects  []models.ProjectID `json:"projects"`
	Tasks     []models.TaskID    `json:"tasks"`
	Profile   *models.ProfileID  `json:"profile"`
	CreatedAt time.Time          `json:"created_at"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	UserID models.UserID `json:"user_id"`
	Email  string        `json:"email"`
	Token  string        `json:"token"`
}

// ProfileDTO represents a profile in API responses
type ProfileDTO struct {
	ID           models.ProfileID `json:"id"`
	User         models.UserID    `json:"user"`
	Image        string           `json:"image"`
	JobTitle     string           `json:"job_title"`
	Department   string           `json:"department"`
	Organization string           `json:"organization"`
	Location     string           `json:"location"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Projects:  user.Projects,
		Tasks:     user.Tasks,
		Profile:   user.ProfileID,
		CreatedAt: user.CreatedAt,
	}
}

// ToUserDTOs converts a slice of User models
func ToUserDTOs(users []models.User) []UserDTO {
	out := make([]UserDTO, len(users))
	for i, user := range users {
		out[i] = ToUserDTO(user)
	}
	return out
}

// ToProfileDTO converts a Profile model to ProfileDTO
func ToProfileDTO(profile models.Profile) ProfileDTO {
	return ProfileDTO{
		ID:           profile.ID,
		User:         profile.UserID,
		Image:        profile.Image,
		JobTitle:     profile.JobTitle,
		Department:   profile.Department,
		Organization: profile.Organization,
		Location:     profile.Location,
	}
}
