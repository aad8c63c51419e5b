package models

import (
	"time"

	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectStatusNotStarted  ProjectStatus = "NOT_STARTED"
	ProjectStatusInProgress  ProjectStatus = "IN_PROGRESS"
	ProjectStatusCompleted   ProjectStatus = "COMPLETED"
	ProjectStatusOnHold      ProjectStatus = "ON_HOLD"
	ProjectStatusCanceled    ProjectStatus = "CANCELED"
	ProjectStatusUnderReview ProjectStatus = "UNDER_REVIEW"
)

type Project struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:varchar(1000)" json:"description"`
	Status      ProjectStatus  `gorm:"type:varchar(20);not null;default:'NOT_STARTED'" json:"status"`
	OwnerID     uint64         `gorm:"not null" json:"owner_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Owner   User                `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Members []ProjectMembership `gorm:"foreignKey:ProjectID" json:"members,omitempty"`
}
