package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/healthmate/healthmate/internal/config"
	"github.com/healthmate/healthmate/internal/database"
	"github.com/healthmate/healthmate/internal/logger"
	"github.com/healthmate/healthmate/internal/refdata"
	"github.com/healthmate/healthmate/internal/repository"
	"github.com/healthmate/healthmate/internal/server"
	"github.com/healthmate/healthmate/internal/services"
	"github.com/healthmate/healthmate/internal/session"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	logger.Info("Starting healthmate server")

	gin.SetMode(cfg.Server.Mode)

	db, err := database.NewPostgresDB(cfg.DB)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	logger.Info("Database connection established and migrations completed")

	sessions, err := session.NewRedisManager(cfg.Redis.Host, cfg.Redis.Port, cfg.AI.RateLimit)
	if err != nil {
		logger.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer sessions.Close()

	ctx := context.Background()
	generator, err := services.NewTextGenerator(ctx, cfg.AI)
	if err != nil {
		logger.Fatalf("Failed to create AI provider: %v", err)
	}

	corpus, err := refdata.Load()
	if err != nil {
		logger.Fatalf("Failed to load reference dataset: %v", err)
	}
	logger.Info("Reference dataset loaded", "records", corpus.Len())

	// Repositories and services
	userRepo := repository.NewUserRepository(db)
	chatRepo := repository.NewChatRepository(db)
	habitRepo := repository.NewHabitRepository(db)
	analysisRepo := repository.NewAnalysisRepository(db)

	authService := services.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
	chatService := services.NewChatService(chatRepo)
	habitService := services.NewHabitService(habitRepo, generator, cfg.AI.Timeout)
	analysisService := services.NewAnalysisService(generator, corpus, cfg.AI.Timeout)

	srv := server.New(
		authService,
		chatService,
		habitService,
		analysisService,
		analysisRepo,
		sessions,
		database.Pinger{DB: db},
	)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("Server listening", "port", cfg.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Forced shutdown", "error", err.Error())
	}
}
