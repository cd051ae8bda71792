package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/projecthub/projecthub-api/internal/config"
	"github.com/projecthub/projecthub-api/internal/constants"
	"github.com/projecthub/projecthub-api/internal/database"
	"github.com/projecthub/projecthub-api/internal/handlers"
	"github.com/projecthub/projecthub-api/internal/middleware"
	"github.com/projecthub/projecthub-api/internal/repository"
	"github.com/projecthub/projecthub-api/internal/services"
)

func main() {
	// Load .env if present, then configuration from the environment
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
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
		10,                        // Redis pool size
		"tcp",                     // network type
		redisAddr,                 // Redis address from config
		"",                        // username (empty for default user)
		"",                        // password (empty = no password)
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

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	workspaceRepo := repository.NewWorkspaceRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	workspaceService := services.NewWorkspaceService(workspaceRepo, userRepo)
	projectService := services.NewProjectService(projectRepo, workspaceRepo)
	activityService := services.NewActivityService(activityRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo, workspaceRepo, activityService)
	analyticsService := services.NewAnalyticsService(taskRepo, projectRepo, workspaceRepo, activityService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	workspaceHandler := handlers.NewWorkspaceHandler(workspaceService)
	projectHandler := handlers.NewProjectHandler(projectService, analyticsService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "ProjectHub API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// User routes
		user := api.Group("/user")
		{
			user.POST("/register", authHandler.Register)
			user.POST("/login", authHandler.Login)
			user.POST("/logout", authHandler.Logout)
			user.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
			user.GET("/search", middleware.RequireAuth(), authHandler.SearchUsers)
		}

		// Workspace routes (protected)
		workspace := api.Group("/workspace")
		workspace.Use(middleware.RequireAuth())
		{
			workspace.POST("/create", workspaceHandler.Create)
			workspace.GET("/all", workspaceHandler.List)
			workspace.GET("/:id", workspaceHandler.Get)
			workspace.PUT("/:id", workspaceHandler.Update)
			workspace.DELETE("/:id", workspaceHandler.Delete)
			workspace.POST("/add-member/:workspaceId/:memberId", workspaceHandler.AddMember)
			workspace.GET("/members/:workspaceId", workspaceHandler.ListMembers)
		}

		// Project routes (protected)
		project := api.Group("/project")
		project.Use(middleware.RequireAuth())
		{
			project.POST("/create/:workspaceId", projectHandler.Create)
			project.GET("/all/:workspaceId", projectHandler.List)
			project.GET("/analytics/:projectId", projectHandler.Analytics)
			project.GET("/:projectId", projectHandler.Get)
			project.DELETE("/delete/:projectId", projectHandler.Delete)
		}

		// Task routes (protected)
		task := api.Group("/task")
		task.Use(middleware.RequireAuth())
		{
			task.POST("/create/:projectId", taskHandler.Create)
			task.GET("/all", taskHandler.List)
			task.GET("/:id", taskHandler.Get)
			task.PATCH("/:id", taskHandler.Update)
			task.DELETE("/:id", taskHandler.Delete)
			task.PATCH("/status/:id", taskHandler.ToggleStatus)
			task.GET("/logs/:id", taskHandler.Logs)
		}
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ServerAddr)
	if err := r.Run(cfg.ServerAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
