package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.DatabasePath != "mandry.db" {
		t.Errorf("Expected default database path 'mandry.db', got %s", cfg.DatabasePath)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected default port '8080', got %s", cfg.Port)
	}
	if cfg.SessionDuration != 7*24*time.Hour {
		t.Errorf("Expected default session duration of 7 days, got %s", cfg.SessionDuration)
	}
	if cfg.IsDevelopment() {
		t.Error("Default environment should not be development")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("SESSION_DURATION", "1h")

	cfg := Load()

	if cfg.Port != "9999" {
		t.Errorf("Expected port '9999', got %s", cfg.Port)
	}
	if !cfg.IsDevelopment() {
		t.Error("Expected development environment")
	}
	if cfg.SessionDuration != time.Hour {
		t.Errorf("Expected session duration 1h, got %s", cfg.SessionDuration)
	}
}

func TestInvalidDurationFallsBack(t *testing.T) {
	t.Setenv("SESSION_DURATION", "not-a-duration")

	cfg := Load()

	if cfg.SessionDuration != 7*24*time.Hour {
		t.Errorf("Expected fallback to default duration, got %s", cfg.SessionDuration)
	}
}
