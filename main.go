package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"time"

	"mandry/internal/config"
	"mandry/internal/database"
	"mandry/internal/email"
	"mandry/internal/handlers"
	"mandry/internal/logger"
	"mandry/internal/middleware"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	logger.Initialize(logger.ParseLevel(cfg.LogLevel), cfg.IsDevelopment())

	db, err := database.Initialize(cfg.DatabasePath)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	emailService := email.NewService(cfg)
	if emailService.IsEnabled() {
		log.Println("Email service enabled with Mailgun")
	} else {
		log.Println("Email service disabled - Mailgun not configured")
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	funcMap := template.FuncMap{
		"jsonify": func(v interface{}) template.JS {
			bytes, _ := json.Marshal(v)
			return template.JS(bytes)
		},
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
		"formatDate": func(t time.Time) string {
			return t.Format("02.01.2006")
		},
		"dateInput": func(t time.Time) string {
			return t.Format("2006-01-02")
		},
		"money": func(v float64) string {
			return fmt.Sprintf("%.2f", v)
		},
		"percent": func(v float64) string {
			return fmt.Sprintf("%.0f%%", v)
		},
	}

	r.SetFuncMap(funcMap)
	r.LoadHTMLGlob("templates/*.html")
	r.Static("/static", "./static")

	r.Use(middleware.RateLimit(cfg))

	handlers.SetupRoutes(r, db, cfg, emailService)

	go cleanupLoop(db)

	log.Printf("Server starting on port %s", cfg.Port)
	log.Fatal(r.Run(":" + cfg.Port))
}

// cleanupLoop periodically removes expired sessions and tokens.
func cleanupLoop(db *sql.DB) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := database.CleanupExpiredSessions(db); err != nil {
			logger.Warn("Session cleanup failed", "error", err)
		}
		if err := database.CleanupExpiredCSRFTokens(db); err != nil {
			logger.Warn("CSRF token cleanup failed", "error", err)
		}
		if err := database.CleanupExpiredActivationTokens(db); err != nil {
			logger.Warn("Activation token cleanup failed", "error", err)
		}
	}
}
