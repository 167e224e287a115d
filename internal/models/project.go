package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectStatusNotStarted ProjectStatus = "Not Started"
	ProjectStatusInProgress ProjectStatus = "In Progress"
	ProjectStatusCompleted  ProjectStatus = "Completed"
)

type Project struct {
	ID          ProjectID                   `gorm:"primarykey" json:"id"`
	Name        string                      `gorm:"type:varchar(255);not null" json:"name"`
	Description string                      `gorm:"type:text" json:"description"`
	Status      ProjectStatus               `gorm:"type:varchar(20);not null;default:'Not Started'" json:"status"`
	Members     datatypes.JSONSlice[UserID] `json:"members"`
	Tasks       datatypes.JSONSlice[TaskID] `json:"tasks"`
	CreatorID   UserID                      `gorm:"not null" json:"creator"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
	DeletedAt   gorm.DeletedAt              `gorm:"index" json:"-"`
}
