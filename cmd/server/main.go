package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/minhvn/taskfocus-api/internal/config"
	"github.com/minhvn/taskfocus-api/internal/constants"
	"github.com/minhvn/taskfocus-api/internal/database"
	"github.com/minhvn/taskfocus-api/internal/handlers"
	"github.com/minhvn/taskfocus-api/internal/middleware"
	"github.com/minhvn/taskfocus-api/internal/repository"
	"github.com/minhvn/taskfocus-api/internal/services"
)

func main() {
	// Load configuration
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

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Services
	clock := services.SystemClock()
	authService := services.NewAuthService(userRepo)
	taskService := services.NewTaskService(taskRepo, clock)
	focusService := services.NewFocusService(taskRepo, clock)
	statsService := services.NewStatsService(taskRepo, clock)

	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService, focusService)
	dashboardHandler := handlers.NewDashboardHandler(statsService, aiService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Task Focus API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", middleware.RequireTaskOwner(), taskHandler.GetTask)
			tasks.PATCH("/:id", middleware.RequireTaskOwner(), taskHandler.UpdateTask)
			tasks.DELETE("/:id", middleware.RequireTaskOwner(), taskHandler.DeleteTask)
			tasks.POST("/:id/complete", middleware.RequireTaskOwner(), taskHandler.CompleteTask)
			tasks.POST("/:id/reopen", middleware.RequireTaskOwner(), taskHandler.ReopenTask)
			tasks.POST("/:id/focus-sessions", middleware.RequireTaskOwner(), taskHandler.RecordFocusSession)
		}

		// Dashboard routes (protected)
		dashboard := api.Group("/dashboard")
		dashboard.Use(middleware.RequireAuth())
		{
			dashboard.GET("/stats", dashboardHandler.GetStats)
			dashboard.POST("/summary", dashboardHandler.Summarize)
		}
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ServerAddr)
	if err := r.Run(cfg.ServerAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
