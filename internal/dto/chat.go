package dto

import (
	"time"

	"github.com/mzaleski/project-hub-api/internal/models"
)

// ChatMessageDTO represents a stored chat message in REST responses
type ChatMessageDTO struct {
	ID          uint64             `json:"id"`
	Content     string             `json:"content"`
	Type        models.MessageType `json:"type"`
	Sender      UserSummaryDTO     `json:"sender"`
	ProjectID   *uint64            `json:"projectId"`
	ProjectName string             `json:"projectName,omitempty"`
	Timestamp   time.Time          `json:"timestamp"`
}

// ChatMessagePageDTO is a paginated channel read response
type ChatMessagePageDTO struct {
	Messages      []ChatMessageDTO `json:"messages"`
	TotalElements int64            `json:"totalElements"`
	Page          int              `json:"page"`
	PageSize      int              `json:"pageSize"`
}

// ChatHistoryItem represents one message in a history query response
type ChatHistoryItem struct {
	ID              uint64    `json:"id"`
	Content         string    `json:"content"`
	SenderFirstName string    `json:"senderFirstName"`
	SenderLastName  string    `json:"senderLastName"`
	SenderEmail     string    `json:"senderEmail"`
	Timestamp       time.Time `json:"timestamp"`
}

// ChatHistoryPage is the paginated history query response
type ChatHistoryPage struct {
	Messages      []ChatHistoryItem `json:"messages"`
	TotalElements int64             `json:"totalElements"`
	TotalPages    int               `json:"totalPages"`
	CurrentPage   int               `json:"currentPage"`
	PageSize      int               `json:"pageSize"`
	HasNext       bool              `json:"hasNext"`
	HasPrevious   bool              `json:"hasPrevious"`
}

// ChatMessagePayload is the broadcast frame delivered to channel subscribers.
// ERROR frames go only to the connection that caused them.
type ChatMessagePayload struct {
	Topic           string `json:"topic"`
	Type            string `json:"type"`
	Content         string `json:"content"`
	SenderEmail     string `json:"senderEmail,omitempty"`
	SenderName      string `json:"senderName,omitempty"`
	SenderID        uint64 `json:"senderId,omitempty"`
	SenderFirstName string `json:"senderFirstName,omitempty"`
	SenderLastName  string `json:"senderLastName,omitempty"`
	SenderAvatarURL string `json:"senderAvatarUrl,omitempty"`
	Timestamp       string `json:"timestamp"`
}

// ToChatMessageDTO converts a ChatMessage model to ChatMessageDTO
func ToChatMessageDTO(message models.ChatMessage) ChatMessageDTO {
	dto := ChatMessageDTO{
		ID:        message.ID,
		Content:   message.Content,
		Type:      message.Type,
		Sender:    ToUserSummaryDTO(message.Sender),
		ProjectID: message.ProjectID,
		Timestamp: message.Timestamp,
	}
	if message.Project != nil {
		dto.ProjectName = message.Project.Name
	}
	return dto
}

// ToChatMessagePage converts a page of messages to ChatMessagePageDTO
func ToChatMessagePage(messages []models.ChatMessage, total int64, page, pageSize int) ChatMessagePageDTO {
	items := make([]ChatMessageDTO, len(messages))
	for i, message := range messages {
		items[i] = ToChatMessageDTO(message)
	}
	return ChatMessagePageDTO{
		Messages:      items,
		TotalElements: total,
		Page:          page,
		PageSize:      pageSize,
	}
}

// ToChatHistoryItem converts a ChatMessage model to ChatHistoryItem
func ToChatHistoryItem(message models.ChatMessage) ChatHistoryItem {
	return ChatHistoryItem{
		ID:              message.ID,
		Content:         message.Content,
		SenderFirstName: message.Sender.FirstName,
		SenderLastName:  message.Sender.LastName,
		SenderEmail:     message.Sender.Email,
		Timestamp:       message.Timestamp,
	}
}

// ToChatMessagePayload converts a stored message into its broadcast frame.
func ToChatMessagePayload(message *models.ChatMessage, topic string) ChatMessagePayload {
	return ChatMessagePayload{
		Topic:           topic,
		Type:            string(message.Type),
		Content:         message.Content,
		SenderEmail:     message.Sender.Email,
		SenderName:      message.Sender.FullName(),
		SenderID:        message.Sender.ID,
		SenderFirstName: message.Sender.FirstName,
		SenderLastName:  message.Sender.LastName,
		SenderAvatarURL: message.Sender.AvatarURL,
		Timestamp:       message.Timestamp.Format(time.RFC3339),
	}
}
