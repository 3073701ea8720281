package main // Entry point package

import (
	"context" // context for startup deadlines
	"log"     // Logging library

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/devcamper/api/internal/config"     // Internal config loader
	"github.com/devcamper/api/internal/database"   // MongoDB connection and indexes
	"github.com/devcamper/api/internal/geocoder"   // Address geocoding
	"github.com/devcamper/api/internal/handler"    // HTTP handlers
	"github.com/devcamper/api/internal/middleware" // Rate limiting
	"github.com/devcamper/api/internal/queue"      // Password reset mail worker
	"github.com/devcamper/api/internal/repository" // Data access layer
	"github.com/devcamper/api/internal/router"     // Route registration
)

func main() {
	_ = godotenv.Load() // Load .env if present; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("mongo: %v", err)
	}
	if err := database.EnsureIndexes(context.Background(), db); err != nil {
		log.Fatalf("mongo indexes: %v", err)
	}

	bootcamps := repository.NewBootcampRepo(db)
	courses := repository.NewCourseRepo(db)
	users := repository.NewUserRepo(db)
	geo := geocoder.New(cfg.GeocoderProvider, cfg.GeocoderKey)

	// Rate limiting degrades to a no-op when Redis is unreachable.
	limiter := middleware.RateLimit(config.LoadRateLimitConfig(), config.NewRedisClient())

	// Consume password reset events in the background; the loop reconnects
	// on broker failures so a missing RabbitMQ never blocks startup.
	go func() {
		if err := queue.StartResetEmailConsumer(); err != nil {
			log.Printf("reset email consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Static("/uploads", cfg.FileUploadPath) // Serve uploaded bootcamp photos

	router.Register(e, router.Handlers{
		Bootcamps: handler.NewBootcampHandler(cfg, bootcamps, courses, geo),
		Courses:   handler.NewCourseHandler(cfg, courses, bootcamps),
		Auth:      handler.NewAuthHandler(cfg, users),
		Users:     handler.NewUserHandler(cfg, users),
	}, cfg.JWTSecret, limiter)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
