package services

import (
	"errors"
	"fmt"

	"github.com/mzaleski/project-hub-api/internal/repository"
	"gorm.io/gorm"
)

// AccessIntent distinguishes read from write access on a channel.
type AccessIntent string

const (
	IntentRead  AccessIntent = "read"
	IntentWrite AccessIntent = "write"
)

// ChatAccessService is the single access policy for chat channels:
// every authenticated user may use the global channel, a project channel
// requires the caller to be the project owner or hold a membership row.
// Any membership role suffices for both read and write.
type ChatAccessService struct {
	projectRepo repository.ProjectRepository
}

// NewChatAccessService creates a new ChatAccessService.
func NewChatAccessService(projectRepo repository.ProjectRepository) *ChatAccessService {
	return &ChatAccessService{
		projectRepo: projectRepo,
	}
}

// CanAccess reports whether the user may access the channel identified by
// projectID (nil = global channel). userID 0 denotes an anonymous caller.
// Denial is a result, not an error; errors are reserved for infrastructure
// failures.
func (s *ChatAccessService) CanAccess(userID uint64, projectID *uint64, intent AccessIntent) (bool, error) {
	if userID == 0 {
		return false, nil
	}

	if projectID == nil {
		return true, nil
	}

	project, err := s.projectRepo.FindByID(*projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to find project: %w", err)
	}

	if project.OwnerID == userID {
		return true, nil
	}

	if _, err := s.projectRepo.FindMember(*projectID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check membership: %w", err)
	}

	return true, nil
}
