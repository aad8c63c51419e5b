package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/mzaleski/project-hub-api/internal/dto"
)

func getJSON(t *testing.T, env *testEnv, path string, out interface{}) int {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	if out != nil && w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
	}
	return w.Code
}

func TestGetWebSocketInfo(t *testing.T) {
	env := setupTestEnv(t)

	var resp map[string]interface{}
	require.Equal(t, http.StatusOK, getJSON(t, env, "/api/chat/websocket-info", &resp))
	require.Equal(t, "/ws", resp["connectionUrl"])
	require.NotEmpty(t, resp["topics"])
	require.NotEmpty(t, resp["actions"])
}

func TestGetGlobalMessages(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "user@example.com")

	for i := 0; i < 5; i++ {
		env.appendMessage(t, user.ID, nil, fmt.Sprintf("message %d", i))
	}

	var page dto.ChatMessagePageDTO
	require.Equal(t, http.StatusOK, getJSON(t, env, "/api/chat/global", &page))
	require.EqualValues(t, 5, page.TotalElements)
	require.Len(t, page.Messages, 5)
	// Newest first.
	require.Equal(t, "message 4", page.Messages[0].Content)
	require.Equal(t, "user@example.com", page.Messages[0].Sender.Email)
}

func TestGetGlobalMessages_Pagination(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "user@example.com")

	for i := 0; i < 25; i++ {
		env.appendMessage(t, user.ID, nil, fmt.Sprintf("message %d", i))
	}

	var first dto.ChatMessagePageDTO
	require.Equal(t, http.StatusOK, getJSON(t, env, "/api/chat/global?page=0&size=10", &first))
	require.Len(t, first.Messages, 10)
	require.EqualValues(t, 25, first.TotalElements)
	require.Equal(t, 0, first.Page)

	var last dto.ChatMessagePageDTO
	require.Equal(t, http.StatusOK, getJSON(t, env, "/api/chat/global?page=2&size=10", &last))
	require.Len(t, last.Messages, 5)
	require.Equal(t, 2, last.Page)

	// Oversized page sizes are clamped, not honored.
	var clamped dto.ChatMessagePageDTO
	require.Equal(t, http.StatusOK, getJSON(t, env, "/api/chat/global?size=5000", &clamped))
	require.Equal(t, 100, clamped.PageSize)
}

func TestGetProjectMessages(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "user@example.com")
	project := env.createProject(t, user.ID)

	env.appendMessage(t, user.ID, nil, "global message")
	env.appendMessage(t, user.ID, &project.ID, "project message")

	var page dto.ChatMessagePageDTO
	path := fmt.Sprintf("/api/chat/project/%d", project.ID)
	require.Equal(t, http.StatusOK, getJSON(t, env, path, &page))
	require.EqualValues(t, 1, page.TotalElements)
	require.Equal(t, "project message", page.Messages[0].Content)
	require.Equal(t, "Project X", page.Messages[0].ProjectName)
}

func TestGetProjectMessages_InvalidID(t *testing.T) {
	env := setupTestEnv(t)

	require.Equal(t, http.StatusBadRequest, getJSON(t, env, "/api/chat/project/abc", nil))
}

func TestGetRecentGlobalMessages(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "user@example.com")

	early := env.appendMessage(t, user.ID, nil, "early")
	cutoff := early.Timestamp.Add(time.Millisecond)
	env.appendMessage(t, user.ID, nil, "late one")
	env.appendMessage(t, user.ID, nil, "late two")

	var messages []dto.ChatMessageDTO
	path := "/api/chat/global/recent?since=" + cutoff.UTC().Format(time.RFC3339Nano)
	require.Equal(t, http.StatusOK, getJSON(t, env, path, &messages))
	require.Len(t, messages, 2)
	// Oldest first for reconnect catch-up.
	require.Equal(t, "late one", messages[0].Content)
	require.Equal(t, "late two", messages[1].Content)
}

func TestGetRecentGlobalMessages_SinceRequired(t *testing.T) {
	env := setupTestEnv(t)

	require.Equal(t, http.StatusBadRequest, getJSON(t, env, "/api/chat/global/recent", nil))
	require.Equal(t, http.StatusBadRequest, getJSON(t, env, "/api/chat/global/recent?since=yesterday", nil))
}

func TestGetRecentGlobalMessages_AcceptsLocalDatetime(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "user@example.com")
	env.appendMessage(t, user.ID, nil, "hello")

	var messages []dto.ChatMessageDTO
	require.Equal(t, http.StatusOK, getJSON(t, env, "/api/chat/global/recent?since=2000-01-01T00:00:00", &messages))
	require.Len(t, messages, 1)
}

func TestGetChatHistory(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.createUser(t, "alice@example.com")
	bob := env.createUser(t, "bob@example.com")

	env.appendMessage(t, alice.ID, nil, "deploy is done")
	env.appendMessage(t, bob.ID, nil, "thanks for the deploy")
	env.appendMessage(t, bob.ID, nil, "unrelated note")

	var page dto.ChatHistoryPage
	require.Equal(t, http.StatusOK, getJSON(t, env, "/api/chat/history?searchKeyword=DEPLOY", &page))
	require.EqualValues(t, 2, page.TotalElements)

	require.Equal(t, http.StatusOK, getJSON(t, env, "/api/chat/history?searchKeyword=deploy&senderEmail=bob@example.com", &page))
	require.EqualValues(t, 1, page.TotalElements)
	require.Equal(t, "thanks for the deploy", page.Messages[0].Content)

	require.Equal(t, http.StatusBadRequest, getJSON(t, env, "/api/chat/history?fromDate=not-a-date", nil))
}

func TestPostChatHistory(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "user@example.com")

	for i := 0; i < 30; i++ {
		env.appendMessage(t, user.ID, nil, fmt.Sprintf("message %d", i))
	}

	w := postJSON(t, env, "/api/chat/history", map[string]interface{}{
		"offset": 10,
		"limit":  10,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var page dto.ChatHistoryPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.EqualValues(t, 30, page.TotalElements)
	require.Equal(t, 3, page.TotalPages)
	require.Equal(t, 1, page.CurrentPage)
	require.Equal(t, 10, page.PageSize)
	require.Len(t, page.Messages, 10)
	require.True(t, page.HasNext)
	require.True(t, page.HasPrevious)
}

func TestPostChatHistory_InvalidBody(t *testing.T) {
	env := setupTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/chat/history", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
