package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/mzaleski/project-hub-api/internal/chat"
	"github.com/mzaleski/project-hub-api/internal/config"
	"github.com/mzaleski/project-hub-api/internal/database"
	"github.com/mzaleski/project-hub-api/internal/handlers"
	"github.com/mzaleski/project-hub-api/internal/middleware"
	"github.com/mzaleski/project-hub-api/internal/repository"
	"github.com/mzaleski/project-hub-api/internal/services"
)

func main() {
	// Load .env if present, then configuration from the environment
	_ = godotenv.Load()
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	// Repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	messageRepo := repository.NewChatMessageRepository(db)

	// Services
	tokenService := services.NewTokenService(cfg.JWTSecret)
	authService := services.NewAuthService(userRepo)
	accessService := services.NewChatAccessService(projectRepo)
	chatService := services.NewChatService(messageRepo, userRepo, projectRepo)
	historyService := services.NewChatHistoryService(messageRepo)

	// Chat hub and gateway, created once and injected
	hub := chat.NewHub()
	gateway := chat.NewGateway(hub, chatService, accessService, tokenService, authService)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, tokenService)
	chatHandler := handlers.NewChatHandler(chatService, historyService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Project Hub API is running",
		})
	})

	// Real-time chat endpoint; credential checked at connect time only
	r.GET("/ws", gateway.HandleConnection)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		api.GET("/users/me", middleware.RequireAuth(tokenService), authHandler.GetCurrentUser)

		// Chat read routes (protected)
		chatRoutes := api.Group("/chat")
		chatRoutes.Use(middleware.RequireAuth(tokenService))
		{
			chatRoutes.GET("/websocket-info", chatHandler.GetWebSocketInfo)
			chatRoutes.GET("/history", chatHandler.GetChatHistory)
			chatRoutes.POST("/history", chatHandler.PostChatHistory)
			chatRoutes.GET("/global", chatHandler.GetGlobalMessages)
			chatRoutes.GET("/global/recent", chatHandler.GetRecentGlobalMessages)
			chatRoutes.GET("/project/:projectId", middleware.RequireProjectAccess(accessService), chatHandler.GetProjectMessages)
			chatRoutes.GET("/project/:projectId/recent", middleware.RequireProjectAccess(accessService), chatHandler.GetRecentProjectMessages)
		}
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ServerAddr)
	if err := r.Run(cfg.ServerAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
