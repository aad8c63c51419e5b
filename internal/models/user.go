package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin UserRole = "ADMIN"
	RoleUser  UserRole = "USER"
)

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	FirstName    string         `gorm:"type:varchar(50);not null" json:"first_name"`
	LastName     string         `gorm:"type:varchar(50);not null" json:"last_name"`
	Email        string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Role         UserRole       `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
	AvatarURL    string         `gorm:"type:varchar(255)" json:"avatar_url"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	OwnedProjects []Project           `gorm:"foreignKey:OwnerID" json:"-"`
	Memberships   []ProjectMembership `gorm:"foreignKey:UserID" json:"-"`
	Messages      []ChatMessage       `gorm:"foreignKey:SenderID" json:"-"`
}

// FullName returns the user's display name as used in chat payloads.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
