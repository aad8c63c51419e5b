package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mzaleski/project-hub-api/internal/constants"
	"github.com/mzaleski/project-hub-api/internal/models"
	"github.com/mzaleski/project-hub-api/internal/repository"
	"github.com/mzaleski/project-hub-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrMessageEmpty    = errors.New("message content cannot be empty")
	ErrMessageTooLong  = errors.New("message content exceeds maximum length")
	ErrSenderNotFound  = errors.New("sender not found")
	ErrProjectNotFound = errors.New("project not found")
)

// ChatService owns the durable chat message log: it validates and appends
// messages and serves the per-channel read paths.
type ChatService struct {
	messageRepo repository.ChatMessageRepository
	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
}

// NewChatService creates a new ChatService.
func NewChatService(messageRepo repository.ChatMessageRepository, userRepo repository.UserRepository, projectRepo repository.ProjectRepository) *ChatService {
	return &ChatService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		projectRepo: projectRepo,
	}
}

// AppendMessageInput represents a message to persist.
type AppendMessageInput struct {
	SenderID  uint64
	ProjectID *uint64
	Content   string
	Type      models.MessageType
}

// Append validates and persists a chat message. The id and timestamp are
// assigned by the insert. Messages are immutable once stored.
func (s *ChatService) Append(input AppendMessageInput) (*models.ChatMessage, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, ErrMessageEmpty
	}
	if len(content) > constants.MaxMessageLength {
		return nil, ErrMessageTooLong
	}

	sender, err := s.userRepo.FindByID(input.SenderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSenderNotFound
		}
		return nil, fmt.Errorf("failed to find sender: %w", err)
	}

	var project *models.Project
	if input.ProjectID != nil {
		project, err = s.projectRepo.FindByID(*input.ProjectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProjectNotFound
			}
			return nil, fmt.Errorf("failed to find project: %w", err)
		}
	}

	messageType := input.Type
	if messageType == "" {
		messageType = models.MessageTypeChat
	}

	message := &models.ChatMessage{
		SenderID:  sender.ID,
		ProjectID: input.ProjectID,
		Content:   content,
		Type:      messageType,
	}

	if err := s.messageRepo.Create(message); err != nil {
		return nil, fmt.Errorf("failed to save message: %w", err)
	}

	message.Sender = *sender
	message.Project = project

	return message, nil
}

// ListByChannel returns one page of a channel's messages, newest first.
// page is 0-based; size is clamped to the server maximum.
func (s *ChatService) ListByChannel(projectID *uint64, page, size int) ([]models.ChatMessage, int64, error) {
	size = utils.ClampLimit(size)
	if page < 0 {
		page = 0
	}

	messages, total, err := s.messageRepo.ListByChannel(projectID, page*size, size)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list messages: %w", err)
	}

	return messages, total, nil
}

// ListSince returns a channel's messages newer than the given time, oldest
// first. Used for reconnect catch-up; unbounded in count.
func (s *ChatService) ListSince(projectID *uint64, since time.Time) ([]models.ChatMessage, error) {
	messages, err := s.messageRepo.ListSince(projectID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent messages: %w", err)
	}
	return messages, nil
}
