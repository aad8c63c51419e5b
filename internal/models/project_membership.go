package models

import "time"

type ProjectRole string

const (
	ProjectRoleMember  ProjectRole = "MEMBER"
	ProjectRoleManager ProjectRole = "MANAGER"
)

// ProjectMembership grants a user a role within a project. The project owner
// has implicit full access and does not need a membership row.
type ProjectMembership struct {
	ProjectID uint64      `gorm:"primarykey" json:"project_id"`
	UserID    uint64      `gorm:"primarykey" json:"user_id"`
	Role      ProjectRole `gorm:"type:varchar(20);not null" json:"role"`
	JoinedAt  time.Time   `json:"joined_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
