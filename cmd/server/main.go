package main

import (
	"context"
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/lumen-pub/inkwell/backend/internal/router"
	"github.com/lumen-pub/inkwell/backend/pkg/config"
	"github.com/lumen-pub/inkwell/backend/pkg/firebase"
	"github.com/lumen-pub/inkwell/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Redis backs the sign-in rate limiter; nil disables it
	rdb := config.InitRedis(cfg)

	// Initialize Firebase when credentials are configured
	var firebaseAuthClient *auth.Client
	if cfg.FirebaseCredentialsPath != "" {
		ctx := context.Background()
		firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		firebaseAuthClient = firebaseApp.AuthClient
	} else {
		log.Println("FIREBASE_CREDENTIALS_PATH not set, Firebase login disabled.")
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Validator
	e.Validator = validators.NewValidator()

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo, rdb, firebaseAuthClient)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
