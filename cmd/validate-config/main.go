package main

import (
	"fmt"
	"os"

	"github.com/healthmate/healthmate/internal/config"
	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("Validating configuration...")

	if err := godotenv.Load(); err != nil {
		fmt.Printf("No .env file found: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Configuration is invalid:\n%v\n", err)
		os.Exit(1)
	}

	fmt.Println("Configuration is valid.")
	fmt.Printf("  - Port: %s\n", cfg.Server.Port)
	fmt.Printf("  - AI provider: %s\n", cfg.AI.Provider)
	fmt.Printf("  - Gemini API key: %s\n", maskSecret(cfg.AI.GeminiAPIKey))
	fmt.Printf("  - OpenAI API key: %s\n", maskSecret(cfg.AI.OpenAIAPIKey))
	fmt.Printf("  - JWT secret: %s\n", maskSecret(cfg.Auth.JWTSecret))
	fmt.Printf("  - DB: %s@%s:%s/%s\n", cfg.DB.User, cfg.DB.Host, cfg.DB.Port, cfg.DB.DBName)
	fmt.Printf("  - Redis: %s:%s\n", cfg.Redis.Host, cfg.Redis.Port)
	fmt.Printf("  - AI timeout: %s, rate limit: %d/h\n", cfg.AI.Timeout, cfg.AI.RateLimit)
	fmt.Printf("  - Log level: %v, format: %s\n", cfg.Logger.Level, cfg.Logger.Format)
}

func maskSecret(secret string) string {
	if secret == "" {
		return "<not set>"
	}
	if len(secret) <= 8 {
		return "***"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}
