package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

type User struct {
	ID           UserID                         `gorm:"primarykey" json:"id"`
	Name         string                         `gorm:"type:varchar(255);not null" json:"name"`
	Email        string                         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string                         `gorm:"type:varchar(255);not null" json:"-"`
	Role         UserRole                       `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	Projects     datatypes.JSONSlice[ProjectID] `json:"projects"`
	Tasks        datatypes.JSONSlice[TaskID]    `json:"tasks"`
	ProfileID    *ProfileID                     `json:"profile"`
	CreatedAt    time.Time                      `json:"created_at"`
	UpdatedAt    time.Time                      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt                 `gorm:"index" json:"-"`
}
