package handlers

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/mzaleski/project-hub-api/internal/constants"
	"github.com/mzaleski/project-hub-api/internal/models"
	"github.com/mzaleski/project-hub-api/internal/repository"
	"github.com/mzaleski/project-hub-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db             *gorm.DB
	router         *gin.Engine
	tokenService   *services.TokenService
	authService    *services.AuthService
	chatService    *services.ChatService
	historyService *services.ChatHistoryService
}

// setAuthenticatedUser stands in for the auth middleware in handler tests.
func setAuthenticatedUser(userID uint64, email string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, userID)
		c.Set(constants.ContextKeyUserEmail, email)
		c.Next()
	}
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMembership{},
		&models.ChatMessage{},
	))

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	messageRepo := repository.NewChatMessageRepository(db)

	env := &testEnv{
		db:             db,
		tokenService:   services.NewTokenService("test-secret"),
		authService:    services.NewAuthService(userRepo),
		chatService:    services.NewChatService(messageRepo, userRepo, projectRepo),
		historyService: services.NewChatHistoryService(messageRepo),
	}

	authHandler := NewAuthHandler(env.authService, env.tokenService)
	chatHandler := NewChatHandler(env.chatService, env.historyService)

	r := gin.New()
	r.POST("/api/auth/register", authHandler.Register)
	r.POST("/api/auth/login", authHandler.Login)

	chatRoutes := r.Group("/api/chat")
	{
		chatRoutes.GET("/websocket-info", chatHandler.GetWebSocketInfo)
		chatRoutes.GET("/history", chatHandler.GetChatHistory)
		chatRoutes.POST("/history", chatHandler.PostChatHistory)
		chatRoutes.GET("/global", chatHandler.GetGlobalMessages)
		chatRoutes.GET("/global/recent", chatHandler.GetRecentGlobalMessages)
		chatRoutes.GET("/project/:projectId", chatHandler.GetProjectMessages)
		chatRoutes.GET("/project/:projectId/recent", chatHandler.GetRecentProjectMessages)
	}
	env.router = r

	return env
}

func (e *testEnv) createUser(t *testing.T, email string) *models.User {
	t.Helper()

	user := &models.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: "hashed",
		Role:         models.RoleUser,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) createProject(t *testing.T, ownerID uint64) *models.Project {
	t.Helper()

	project := &models.Project{
		Name:    "Project X",
		Status:  models.ProjectStatusInProgress,
		OwnerID: ownerID,
	}
	require.NoError(t, e.db.Create(project).Error)
	return project
}

func (e *testEnv) appendMessage(t *testing.T, senderID uint64, projectID *uint64, content string) *models.ChatMessage {
	t.Helper()

	message, err := e.chatService.Append(services.AppendMessageInput{
		SenderID:  senderID,
		ProjectID: projectID,
		Content:   content,
		Type:      models.MessageTypeChat,
	})
	require.NoError(t, err)
	// sqlite timestamps have second precision in some drivers; spacing keeps
	// since-based queries deterministic.
	time.Sleep(2 * time.Millisecond)
	return message
}
