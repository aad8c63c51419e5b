package repository

import (
	"time"

	"github.com/mzaleski/project-hub-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}

// ProjectRepository defines the interface for project and membership data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID
	FindByID(id uint64) (*models.Project, error)

	// AddMember adds a membership row to a project
	AddMember(member *models.ProjectMembership) error

	// FindMember finds a specific project membership
	FindMember(projectID, userID uint64) (*models.ProjectMembership, error)

	// ListMembers lists all memberships of a project
	ListMembers(projectID uint64) ([]models.ProjectMembership, error)
}

// ChatMessageFilter holds the optional, AND-combined filters for history queries.
// A nil field means "no constraint".
type ChatMessageFilter struct {
	FromDate      *time.Time
	ToDate        *time.Time
	SenderEmail   *string
	SearchKeyword *string
}

// ChatMessageRepository defines the interface for chat message data access
type ChatMessageRepository interface {
	// Create persists a new chat message; the database assigns id and timestamp
	Create(message *models.ChatMessage) error

	// ListByChannel returns messages of a channel newest first, with the total
	// count of messages in that channel. A nil projectID selects the global channel.
	ListByChannel(projectID *uint64, offset, limit int) ([]models.ChatMessage, int64, error)

	// ListSince returns messages of a channel strictly after the given time,
	// oldest first.
	ListSince(projectID *uint64, since time.Time) ([]models.ChatMessage, error)

	// ListWithFilters returns messages across all channels matching the filter,
	// newest first, with the total matching count.
	ListWithFilters(filter ChatMessageFilter, offset, limit int) ([]models.ChatMessage, int64, error)
}
