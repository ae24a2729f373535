package router

import (
	"log"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/socialite-app/backend/internal/handlers"
	"github.com/socialite-app/backend/internal/middleware"
	"github.com/socialite-app/backend/internal/models"
	"github.com/socialite-app/backend/internal/repositories"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// Migrate runs the schema migrations for all models
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Notification{},
		&models.Author{},
		&models.Book{},
		&models.Activity{},
	)
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB, jwtSecret string) {
	if err := Migrate(db); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("Auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)
	bookRepo := repositories.NewPostgresBookRepository(db)
	authorRepo := repositories.NewPostgresAuthorRepository(db)
	activityRepo := repositories.NewPostgresActivityRepository(db)

	// --- Unprotected routes ---
	public := e.Group("/api/v1")
	authHandler := handlers.NewAuthHandler(userRepo, jwtSecret)
	authHandler.RegisterAuthRoutes(public)
	log.Println("Auth routes configured.")

	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterPublicUserRoutes(public)

	postHandler := handlers.NewPostHandler(postRepo, userRepo)
	postHandler.RegisterPublicPostRoutes(public)

	commentHandler := handlers.NewCommentHandler(db, commentRepo, postRepo, userRepo, notificationRepo)
	commentHandler.RegisterPublicCommentRoutes(public)

	bookHandler := handlers.NewBookHandler(bookRepo, authorRepo)
	bookHandler.RegisterPublicBookRoutes(public)
	log.Println("Public read routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(jwtSecret))
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	userHandler.RegisterUserRoutes(api)
	postHandler.RegisterPostRoutes(api)
	commentHandler.RegisterCommentRoutes(api)

	followHandler := handlers.NewFollowHandler(db, followRepo, userRepo, notificationRepo)
	followHandler.RegisterFollowRoutes(api)

	likeHandler := handlers.NewLikeHandler(db, likeRepo, postRepo, userRepo, notificationRepo)
	likeHandler.RegisterLikeRoutes(api)

	feedHandler := handlers.NewFeedHandler(postRepo, followRepo)
	feedHandler.RegisterFeedRoutes(api)

	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo)
	notificationHandler.RegisterNotificationRoutes(api)

	bookHandler.RegisterBookRoutes(api)

	activityHandler := handlers.NewActivityHandler(activityRepo)
	activityHandler.RegisterActivityRoutes(api)

	log.Println("All routes configured.")
}
