package repository

import (
	"time"

	"github.com/mzaleski/project-hub-api/internal/database"
	"github.com/mzaleski/project-hub-api/internal/models"
	"github.com/mzaleski/project-hub-api/internal/utils"
	"gorm.io/gorm"
)

// GormChatMessageRepository is a GORM implementation of ChatMessageRepository
type GormChatMessageRepository struct {
	db *gorm.DB
}

// NewChatMessageRepository creates a new ChatMessageRepository
func NewChatMessageRepository(db *gorm.DB) ChatMessageRepository {
	return &GormChatMessageRepository{db: db}
}

// Create persists a new chat message
func (r *GormChatMessageRepository) Create(message *models.ChatMessage) error {
	return r.db.Create(message).Error
}

// channelScope constrains a query to a single channel. A nil projectID selects
// the global channel (project_id IS NULL).
func channelScope(projectID *uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if projectID == nil {
			return db.Where("chat_messages.project_id IS NULL")
		}
		return db.Where("chat_messages.project_id = ?", *projectID)
	}
}

// ListByChannel returns messages of a channel newest first with the channel's total count
func (r *GormChatMessageRepository) ListByChannel(projectID *uint64, offset, limit int) ([]models.ChatMessage, int64, error) {
	query := r.db.Model(&models.ChatMessage{}).Scopes(channelScope(projectID))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []models.ChatMessage
	if err := query.
		Order("chat_messages.timestamp DESC, chat_messages.id DESC").
		Scopes(database.Paginate(utils.PaginationParams{Offset: offset, Limit: limit})).
		Preload("Sender").
		Preload("Project").
		Find(&messages).Error; err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

// ListSince returns messages of a channel newer than the given time, oldest first
func (r *GormChatMessageRepository) ListSince(projectID *uint64, since time.Time) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	if err := r.db.Model(&models.ChatMessage{}).
		Scopes(channelScope(projectID)).
		Where("chat_messages.timestamp > ?", since).
		Order("chat_messages.timestamp ASC, chat_messages.id ASC").
		Preload("Sender").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// ListWithFilters returns messages across all channels matching the filter, newest first
func (r *GormChatMessageRepository) ListWithFilters(filter ChatMessageFilter, offset, limit int) ([]models.ChatMessage, int64, error) {
	query := r.db.Model(&models.ChatMessage{})

	if filter.FromDate != nil {
		query = query.Where("chat_messages.timestamp >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("chat_messages.timestamp <= ?", *filter.ToDate)
	}
	if filter.SenderEmail != nil {
		senderSubQuery := r.db.Model(&models.User{}).
			Select("users.id").
			Where("users.email = ?", *filter.SenderEmail)
		query = query.Where("chat_messages.sender_id IN (?)", senderSubQuery)
	}
	if filter.SearchKeyword != nil {
		query = query.Where("LOWER(chat_messages.content) LIKE LOWER(?)", "%"+*filter.SearchKeyword+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []models.ChatMessage
	if err := query.
		Order("chat_messages.timestamp DESC, chat_messages.id DESC").
		Scopes(database.Paginate(utils.PaginationParams{Offset: offset, Limit: limit})).
		Preload("Sender").
		Find(&messages).Error; err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}
