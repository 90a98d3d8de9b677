package config

import (
	"testing"
	"time"

	"github.com/healthmate/healthmate/internal/logger"
)

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("GEMINI_API_KEY", "key")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when JWT_SECRET is unset")
	}
}

func TestLoadRequiresProviderKey(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("AI_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when provider key is unset")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("AI_PROVIDER", "")
	t.Setenv("PORT", "")
	t.Setenv("AI_TIMEOUT_SECONDS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.AI.Provider != "gemini" {
		t.Fatalf("expected default provider gemini, got %s", cfg.AI.Provider)
	}
	if cfg.AI.Timeout != 15*time.Second {
		t.Fatalf("expected default 15s timeout, got %s", cfg.AI.Timeout)
	}
	if cfg.Auth.TokenExpiry != 7*24*time.Hour {
		t.Fatalf("expected 7 day expiry, got %s", cfg.Auth.TokenExpiry)
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]logger.LogLevel{
		"debug":   logger.LevelDebug,
		"INFO":    logger.LevelInfo,
		"warning": logger.LevelWarn,
		"error":   logger.LevelError,
		"bogus":   logger.LevelInfo,
	}
	for input, want := range cases {
		if got := parseLogLevel(input); got != want {
			t.Fatalf("parseLogLevel(%q) = %v, want %v", input, got, want)
		}
	}
}
