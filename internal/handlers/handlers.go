package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"mandry/internal/config"
	"mandry/internal/database"
	"mandry/internal/email"
	"mandry/internal/logger"
	"mandry/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, db *sql.DB, cfg *config.Config, emailService *email.Service) {
	r.Use(middleware.LogRequests())
	r.Use(middleware.SecurityHeaders(cfg))
	r.Use(middleware.AddDBContext(db))
	r.Use(middleware.AddConfigContext(cfg))
	r.Use(addEmailServiceContext(emailService))
	r.Use(middleware.TrimSpaces())

	r.GET("/", middleware.AuthOptional(db, cfg), handleHome)
	r.GET("/register", handleRegisterPage)
	r.POST("/register", middleware.AuthRateLimit(cfg), handleRegister)
	r.GET("/login", handleLoginPage)
	r.POST("/login", middleware.AuthRateLimit(cfg), handleLogin)
	r.POST("/logout", middleware.AuthRequired(db, cfg), handleLogout)
	r.GET("/activate/:token", middleware.AuthOptional(db, cfg), handleActivate)

	protected := r.Group("/")
	protected.Use(middleware.AuthRequired(db, cfg))
	protected.Use(middleware.CSRF(cfg))
	{
		protected.GET("/dashboard", handleDashboard)

		protected.GET("/trips/new", handleNewTripPage)
		protected.POST("/trips/new", handleCreateTrip)
		protected.GET("/trips/:id", handleTripDetail)
		protected.GET("/trips/:id/edit", handleEditTripPage)
		protected.POST("/trips/:id/edit", handleUpdateTrip)
		protected.POST("/trips/:id/delete", handleDeleteTrip)

		protected.GET("/trips/:id/activities/new", handleNewActivityPage)
		protected.POST("/trips/:id/activities/new", handleCreateActivity)
		protected.GET("/trips/:id/activities/:activity_id/edit", handleEditActivityPage)
		protected.POST("/trips/:id/activities/:activity_id/edit", handleUpdateActivity)
		protected.POST("/trips/:id/activities/:activity_id/toggle", handleToggleActivity)
		protected.POST("/trips/:id/activities/:activity_id/delete", handleDeleteActivity)

		protected.POST("/trips/:id/packing", handleCreatePackingItem)
		protected.POST("/trips/:id/packing/:item_id/toggle", handleTogglePackingItem)
		protected.POST("/trips/:id/packing/:item_id/delete", handleDeletePackingItem)

		protected.GET("/trips/:id/accommodations/new", handleNewAccommodationPage)
		protected.POST("/trips/:id/accommodations/new", handleCreateAccommodation)
		protected.GET("/trips/:id/accommodations/:accommodation_id/edit", handleEditAccommodationPage)
		protected.POST("/trips/:id/accommodations/:accommodation_id/edit", handleUpdateAccommodation)
		protected.POST("/trips/:id/accommodations/:accommodation_id/delete", handleDeleteAccommodation)

		protected.GET("/trips/:id/statistics", handleTripStatistics)
		protected.GET("/trips/:id/expenses", handleTripExpenses)
		protected.GET("/trips/:id/hotels", handleTripHotels)

		protected.GET("/account", handleAccountPage)
		protected.POST("/account/password", handleChangePassword)
		protected.POST("/account/delete", handleDeleteAccount)

		protected.GET("/api/csrf-token", handleCSRFToken)
	}
}

func addEmailServiceContext(emailService *email.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("email_service", emailService)
		c.Next()
	}
}

// renderStoreError maps database sentinel errors onto the matching error
// page. Validation errors are the caller's job; everything unexpected is a
// 500 with a redacted log line.
func renderStoreError(c *gin.Context, err error, what string) {
	user, _ := c.Get("user")

	switch {
	case errors.Is(err, database.ErrNotFound):
		c.HTML(http.StatusNotFound, "404.html", gin.H{
			"Title": "Не знайдено - Mandry",
			"User":  user,
		})
	case errors.Is(err, database.ErrUnauthorized):
		c.HTML(http.StatusForbidden, "403.html", gin.H{
			"Title": "Доступ заборонено - Mandry",
			"User":  user,
		})
	default:
		logger.Error("Unexpected store error", "operation", what, "error", err)
		c.HTML(http.StatusInternalServerError, "500.html", gin.H{
			"Title": "Помилка сервера - Mandry",
			"User":  user,
		})
	}
}

func handleHome(c *gin.Context) {
	_, exists := c.Get("user")
	if exists {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	c.HTML(http.StatusOK, "home.html", gin.H{
		"Title": "Mandry - Планування подорожей",
	})
}

func handleDashboard(c *gin.Context) {
	userID := c.MustGet("user_id").(int)
	db := c.MustGet("db").(*sql.DB)
	user := c.MustGet("user")

	csrfToken, err := database.CreateCSRFToken(db, userID)
	if err != nil {
		logger.Error("Failed to create CSRF token", "user_id", userID, "error", err)
		c.HTML(http.StatusInternalServerError, "dashboard.html", gin.H{
			"Title": "Мої подорожі - Mandry",
			"User":  user,
			"Error": "Не вдалося створити токен безпеки",
		})
		return
	}

	trips, err := database.GetTrips(db, userID)
	if err != nil {
		logger.Error("Failed to get trips", "user_id", userID, "error", err)
		c.HTML(http.StatusInternalServerError, "dashboard.html", gin.H{
			"Title": "Мої подорожі - Mandry",
			"User":  user,
			"Error": "Не вдалося завантажити подорожі",
		})
		return
	}

	stats, err := database.GetUserStats(db, userID)
	if err != nil {
		logger.Error("Failed to get user stats", "user_id", userID, "error", err)
		c.HTML(http.StatusInternalServerError, "dashboard.html", gin.H{
			"Title": "Мої подорожі - Mandry",
			"User":  user,
			"Error": "Не вдалося завантажити статистику",
		})
		return
	}

	upcoming, err := database.GetUpcomingTrips(db, userID, 3)
	if err != nil {
		logger.Error("Failed to get upcoming trips", "user_id", userID, "error", err)
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Title":     "Мої подорожі - Mandry",
		"User":      user,
		"Trips":     trips,
		"Stats":     stats,
		"Upcoming":  upcoming,
		"CSRFToken": csrfToken.Token,
	})
}
