package models

import "time"

type Profile struct {
	ID           ProfileID `gorm:"primarykey" json:"id"`
	UserID       UserID    `gorm:"not null;index" json:"user"`
	Image        string    `gorm:"type:varchar(512)" json:"image"`
	JobTitle     string    `gorm:"type:varchar(255)" json:"job_title"`
	Department   string    `gorm:"type:varchar(255)" json:"department"`
	Organization string    `gorm:"type:varchar(255)" json:"organization"`
	Location     string    `gorm:"type:varchar(255)" json:"location"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
