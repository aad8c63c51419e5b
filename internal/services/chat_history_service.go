package services

import (
	"fmt"
	"time"

	"github.com/mzaleski/project-hub-api/internal/dto"
	"github.com/mzaleski/project-hub-api/internal/repository"
	"github.com/mzaleski/project-hub-api/internal/utils"
)

// ChatHistoryService is a read-only facade over the message log for paginated,
// filtered history queries.
type ChatHistoryService struct {
	messageRepo repository.ChatMessageRepository
}

// NewChatHistoryService creates a new ChatHistoryService.
func NewChatHistoryService(messageRepo repository.ChatMessageRepository) *ChatHistoryService {
	return &ChatHistoryService{
		messageRepo: messageRepo,
	}
}

// ChatHistoryInput holds offset/limit pagination plus the optional,
// AND-combined filters. Nil filters mean "no constraint".
type ChatHistoryInput struct {
	Offset        int
	Limit         int
	FromDate      *time.Time
	ToDate        *time.Time
	SenderEmail   *string
	SearchKeyword *string
}

// GetChatHistory runs a filtered history query. The limit is clamped to
// [1,100] and the offset is truncated to a whole page boundary, so
// offset/limit pairs map onto stable page indexes.
func (s *ChatHistoryService) GetChatHistory(input ChatHistoryInput) (*dto.ChatHistoryPage, error) {
	limit := utils.ClampLimit(input.Limit)
	offset := utils.ClampOffset(input.Offset)
	page := offset / limit

	filter := repository.ChatMessageFilter{
		FromDate:      input.FromDate,
		ToDate:        input.ToDate,
		SenderEmail:   input.SenderEmail,
		SearchKeyword: input.SearchKeyword,
	}

	messages, total, err := s.messageRepo.ListWithFilters(filter, page*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat history: %w", err)
	}

	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}

	items := make([]dto.ChatHistoryItem, len(messages))
	for i, message := range messages {
		items[i] = dto.ToChatHistoryItem(message)
	}

	return &dto.ChatHistoryPage{
		Messages:      items,
		TotalElements: total,
		TotalPages:    totalPages,
		CurrentPage:   page,
		PageSize:      limit,
		HasNext:       page < totalPages-1,
		HasPrevious:   page > 0,
	}, nil
}
