package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"github.com/linguaflow/backend/internal/auth"
	"github.com/linguaflow/backend/internal/config"
	"github.com/linguaflow/backend/internal/handlers"
	"github.com/linguaflow/backend/internal/logger"
	"github.com/linguaflow/backend/internal/middleware"
	"github.com/linguaflow/backend/internal/repositories"
	"github.com/linguaflow/backend/internal/services"
)

// @title LinguaFlow Content API
// @version 1.0
// @description API for lessons, templates, users and learning progress

// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting LinguaFlow Content Service")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize token verifier
	verifier := auth.NewTokenVerifier(cfg.Auth.JWTSecret)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, logger.Logger)
	templateRepo := repositories.NewTemplateRepository(db, logger.Logger)
	lessonRepo := repositories.NewLessonRepository(db, logger.Logger)
	progressRepo := repositories.NewUserProgressRepository(db, logger.Logger)

	// Initialize services
	userService := services.NewUserService(userRepo, progressRepo)
	templateService := services.NewTemplateService(templateRepo, lessonRepo)
	lessonService := services.NewLessonService(lessonRepo, templateRepo, progressRepo)
	progressService := services.NewProgressService(progressRepo, lessonRepo)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, logger.Logger)
	templateHandler := handlers.NewTemplateHandler(templateService, logger.Logger)
	lessonHandler := handlers.NewLessonHandler(lessonService, logger.Logger)
	progressHandler := handlers.NewProgressHandler(progressService, userService, logger.Logger)
	metaHandler := handlers.NewMetaHandler(logger.Logger)

	// Initialize auth middleware
	authMiddleware := middleware.AuthMiddleware(verifier)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggerMiddleware(logger.Logger))
	r.Use(middleware.RecoveryMiddleware(logger.Logger))
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middleware.RequestSizeLimitMiddleware(10 * 1024 * 1024)) // 10MB

	// Health check outside the authenticated scope
	r.Get("/health", metaHandler.HealthCheck)

	// Scope router to /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		metaHandler.RegisterRoutes(r)
		// All content and progress routes require an authenticated caller
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			userHandler.RegisterRoutes(r, middleware.AdminMiddleware)
			templateHandler.RegisterRoutes(r, middleware.AdminMiddleware)
			lessonHandler.RegisterRoutes(r, middleware.AdminMiddleware)
			progressHandler.RegisterRoutes(r)
		})
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: "content_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// Get the working directory or use migrations folder relative to the binary
	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		// Try parent directory if running from cmd
		if _, err := os.Stat("../migrations"); err == nil {
			migrationPath = "file://../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(
		migrationPath,
		"mysql",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
