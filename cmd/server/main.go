package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yukikurage/project-management-api/internal/config"
	"github.com/yukikurage/project-management-api/internal/database"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/handlers"
	"github.com/yukikurage/project-management-api/internal/middleware"
	"github.com/yukikurage/project-management-api/internal/repository"
	"github.com/yukikurage/project-management-api/internal/services"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	logger.Info("database connection established", zap.String("driver", cfg.DBDriver))

	// Run migrations
	if err := database.Migrate(); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}
	if cfg.DBDriver == "postgres" {
		if err := database.AddIndexes(database.GetDB()); err != nil {
			logger.Fatal("failed to add indexes", zap.Error(err))
		}
	}

	db := database.GetDB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, cfg.JWTSecret)
	userService := services.NewUserService(userRepo, profileRepo)
	profileService := services.NewProfileService(profileRepo, userRepo)
	projectService := services.NewProjectService(projectRepo, userRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo, userRepo)

	// Handlers
	userHandler := handlers.NewUserHandler(authService, userService, profileService, cfg.UploadDir)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS())

	// Uploaded profile images are served statically
	r.Static("/uploads/images", cfg.UploadDir)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Project Management API is running",
		})
	})

	auth := middleware.Authenticate(cfg.JWTSecret)

	// API routes
	api := r.Group("/api")
	{
		users := api.Group("/users")
		{
			users.GET("", userHandler.GetUsers)
			users.GET("/:userId", userHandler.GetUserByID)
			users.POST("/signup", userHandler.Signup)
			users.POST("/login", userHandler.Login)
			users.PATCH("/profile/:profileId", auth, userHandler.UpdateProfile)
		}

		projects := api.Group("/projects")
		projects.Use(auth)
		{
			projects.GET("/:projectId", projectHandler.GetProjectByID)
			projects.GET("/user/:userId", projectHandler.GetProjectsByUserID)
			projects.POST("", projectHandler.CreateProject)
			projects.PATCH("/:projectId", projectHandler.UpdateProjectByID)
			projects.DELETE("/:projectId", projectHandler.DeleteProjectByID)
		}

		tasks := api.Group("/tasks")
		tasks.Use(auth)
		{
			tasks.GET("/:taskId", taskHandler.GetTaskByID)
			tasks.GET("/user/:userId", taskHandler.GetTasksByUserID)
			tasks.GET("/project/:projectId", taskHandler.GetTasksByProjectID)
			tasks.POST("", taskHandler.CreateTask)
			tasks.PATCH("/:taskId", taskHandler.UpdateTaskByID)
			tasks.DELETE("/:taskId", taskHandler.DeleteTaskByID)
		}
	}

	// Unmatched routes
	r.NoRoute(func(c *gin.Context) {
		apierrors.NotFound(c, "Could not find this route.")
	})

	// Start server
	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
