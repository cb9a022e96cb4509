package router

import (
	"log"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/lumen-pub/inkwell/backend/internal/handlers"
	"github.com/lumen-pub/inkwell/backend/internal/middleware"
	"github.com/lumen-pub/inkwell/backend/internal/models"
	"github.com/lumen-pub/inkwell/backend/internal/repositories"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, rdb *redis.Client, firebaseAuthClient *auth.Client) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Article{},
		&models.Follow{},
		&models.Collect{},
		&models.History{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check and metrics - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	articleRepo := repositories.NewPostgresArticleRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	collectRepo := repositories.NewPostgresCollectRepository(pgdb)
	historyRepo := repositories.NewPostgresHistoryRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	revisionRepo := repositories.NewMongoRevisionRepository(mgClient.Database("inkwell"))

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient)
	if rdb != nil {
		limiter := middleware.SignInRateLimiter(rdb, 5, time.Minute)
		authHandler.RegisterAuthRoutes(authGroup, limiter)
	} else {
		authHandler.RegisterAuthRoutes(authGroup)
	}
	log.Println("Auth routes configured.")

	// --- Public read-only routes ---
	public := e.Group("/api/v1")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	// User routes: profile reads are public, mutations and the trash
	// view sit behind the JWT middleware
	userHandler := handlers.NewUserHandler(userRepo, articleRepo, collectRepo, followRepo, historyRepo)
	userHandler.RegisterUserRoutes(public, api)
	log.Println("User routes configured.")

	// Article routes
	articleHandler := handlers.NewArticleHandler(articleRepo, userRepo, historyRepo, collectRepo, revisionRepo)
	articleHandler.RegisterArticleRoutes(api)
	log.Println("Article routes configured.")

	// Follow routes
	followHandler := handlers.NewFollowHandler(followRepo, userRepo, notificationRepo)
	followHandler.RegisterFollowRoutes(api)
	log.Println("Follow routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	log.Println("All routes configured.")
}
