package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mzaleski/project-hub-api/internal/constants"
	"github.com/mzaleski/project-hub-api/internal/dto"
	apierrors "github.com/mzaleski/project-hub-api/internal/errors"
	"github.com/mzaleski/project-hub-api/internal/models"
	"github.com/mzaleski/project-hub-api/internal/services"
	"github.com/mzaleski/project-hub-api/internal/utils"
)

// ChatHandler serves the REST read paths of the chat subsystem.
type ChatHandler struct {
	chatService    *services.ChatService
	historyService *services.ChatHistoryService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService *services.ChatService, historyService *services.ChatHistoryService) *ChatHandler {
	return &ChatHandler{
		chatService:    chatService,
		historyService: historyService,
	}
}

// GetWebSocketInfo describes the real-time endpoint for clients.
func (h *ChatHandler) GetWebSocketInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"connectionUrl": "/ws",
		"description":   "WebSocket endpoint for real-time chat",
		"topics": []gin.H{
			{"topic": constants.TopicPublic, "description": "Global chat messages for all users"},
			{"topic": constants.TopicProjectPrefix + "{projectId}", "description": "Project-specific chat messages", "example": constants.TopicProjectPrefix + "1"},
		},
		"actions": []gin.H{
			{"action": "subscribe", "description": "Subscribe to a channel", "payloadExample": `{"action":"subscribe","projectId":1}`},
			{"action": "chat.sendMessage", "description": "Send a chat message", "payloadExample": `{"action":"chat.sendMessage","content":"Hello everyone!","projectId":1}`},
			{"action": "chat.addUser", "description": "Announce joining a channel", "payloadExample": `{"action":"chat.addUser","projectId":1}`},
		},
	})
}

// GetProjectMessages returns paginated chat messages of a project channel.
func (h *ChatHandler) GetProjectMessages(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("projectId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	page, size := pageParams(c)
	messages, total, err := h.chatService.ListByChannel(&projectID, page, size)
	if err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToChatMessagePage(messages, total, page, utils.ClampLimit(size)))
}

// GetGlobalMessages returns paginated chat messages of the global channel.
func (h *ChatHandler) GetGlobalMessages(c *gin.Context) {
	page, size := pageParams(c)
	messages, total, err := h.chatService.ListByChannel(nil, page, size)
	if err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToChatMessagePage(messages, total, page, utils.ClampLimit(size)))
}

// GetRecentProjectMessages returns project messages newer than `since`,
// oldest first, for reconnect catch-up.
func (h *ChatHandler) GetRecentProjectMessages(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("projectId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	since, ok := parseSince(c)
	if !ok {
		return
	}

	messages, err := h.chatService.ListSince(&projectID, since)
	if err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, toChatMessageDTOs(messages))
}

// GetRecentGlobalMessages returns global messages newer than `since`, oldest first.
func (h *ChatHandler) GetRecentGlobalMessages(c *gin.Context) {
	since, ok := parseSince(c)
	if !ok {
		return
	}

	messages, err := h.chatService.ListSince(nil, since)
	if err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, toChatMessageDTOs(messages))
}

// GetChatHistory runs a filtered history query from query parameters.
func (h *ChatHandler) GetChatHistory(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	input := services.ChatHistoryInput{
		Offset: params.Offset,
		Limit:  params.Limit,
	}

	if v := c.Query("fromDate"); v != "" {
		t, err := parseTimestamp(v)
		if err != nil {
			apierrors.BadRequest(c, "Invalid fromDate")
			return
		}
		input.FromDate = &t
	}
	if v := c.Query("toDate"); v != "" {
		t, err := parseTimestamp(v)
		if err != nil {
			apierrors.BadRequest(c, "Invalid toDate")
			return
		}
		input.ToDate = &t
	}
	if v := c.Query("senderEmail"); v != "" {
		input.SenderEmail = &v
	}
	if v := c.Query("searchKeyword"); v != "" {
		input.SearchKeyword = &v
	}

	h.respondHistory(c, input)
}

// PostChatHistory runs a filtered history query from a JSON body.
func (h *ChatHandler) PostChatHistory(c *gin.Context) {
	type HistoryRequest struct {
		Offset        int        `json:"offset"`
		Limit         int        `json:"limit"`
		FromDate      *time.Time `json:"fromDate"`
		ToDate        *time.Time `json:"toDate"`
		SenderEmail   *string    `json:"senderEmail"`
		SearchKeyword *string    `json:"searchKeyword"`
	}

	var req HistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	h.respondHistory(c, services.ChatHistoryInput{
		Offset:        req.Offset,
		Limit:         req.Limit,
		FromDate:      req.FromDate,
		ToDate:        req.ToDate,
		SenderEmail:   req.SenderEmail,
		SearchKeyword: req.SearchKeyword,
	})
}

func (h *ChatHandler) respondHistory(c *gin.Context, input services.ChatHistoryInput) {
	page, err := h.historyService.GetChatHistory(input)
	if err != nil {
		apierrors.InternalError(c, "Failed to query chat history")
		return
	}
	c.JSON(http.StatusOK, page)
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(constants.DefaultHistoryLimit)))
	if page < 0 {
		page = 0
	}
	return page, size
}

// parseSince reads the required `since` query parameter. It answers the
// request itself on failure.
func parseSince(c *gin.Context) (time.Time, bool) {
	v := c.Query("since")
	if v == "" {
		apierrors.BadRequest(c, "Query parameter 'since' is required")
		return time.Time{}, false
	}
	t, err := parseTimestamp(v)
	if err != nil {
		apierrors.BadRequest(c, "Invalid timestamp format")
		return time.Time{}, false
	}
	return t, true
}

// parseTimestamp accepts RFC 3339 or a zoneless ISO local datetime.
func parseTimestamp(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", v)
}

func toChatMessageDTOs(messages []models.ChatMessage) []dto.ChatMessageDTO {
	items := make([]dto.ChatMessageDTO, len(messages))
	for i, message := range messages {
		items[i] = dto.ToChatMessageDTO(message)
	}
	return items
}

func respondChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Failed to fetch messages")
	}
}
