package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"mandry/internal/database"
	"mandry/internal/logger"
	"mandry/internal/models"
	"mandry/internal/report"

	"github.com/gin-gonic/gin"
)

const dateFormat = "2006-01-02"

// tripForm holds the parsed and validated trip form fields.
type tripForm struct {
	Title       string
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Budget      float64
}

func parseTripForm(c *gin.Context) (tripForm, string) {
	form := tripForm{
		Title:       strings.TrimSpace(c.PostForm("title")),
		Destination: strings.TrimSpace(c.PostForm("destination")),
	}

	if form.Title == "" {
		return form, "Вкажіть назву подорожі"
	}
	if form.Destination == "" {
		return form, "Вкажіть місце призначення"
	}

	var err error
	form.StartDate, err = time.Parse(dateFormat, c.PostForm("start_date"))
	if err != nil {
		return form, "Невірний формат дати початку"
	}
	form.EndDate, err = time.Parse(dateFormat, c.PostForm("end_date"))
	if err != nil {
		return form, "Невірний формат дати завершення"
	}

	budgetStr := strings.TrimSpace(c.PostForm("budget"))
	if budgetStr != "" {
		form.Budget, err = strconv.ParseFloat(budgetStr, 64)
		if err != nil {
			return form, "Невірний формат бюджету"
		}
	}

	return form, ""
}

// tripValidationMessage maps a store validation failure to the user-facing
// message for the trip forms.
func tripValidationMessage(err error) string {
	msg := err.Error()
	if strings.Contains(msg, "budget") {
		return "Бюджет не може бути від'ємним"
	}
	return "Дата завершення не може бути раніше дати початку"
}

func handleNewTripPage(c *gin.Context) {
	userID := c.MustGet("user_id").(int)
	db := c.MustGet("db").(*sql.DB)
	user := c.MustGet("user")

	csrfToken, err := database.CreateCSRFToken(db, userID)
	if err != nil {
		logger.Error("Failed to create CSRF token", "user_id", userID, "error", err)
		c.HTML(http.StatusInternalServerError, "new_trip.html", gin.H{
			"Title": "Нова подорож - Mandry",
			"User":  user,
			"Error": "Не вдалося створити токен безпеки",
		})
		return
	}

	c.HTML(http.StatusOK, "new_trip.html", gin.H{
		"Title":     "Нова подорож - Mandry",
		"User":      user,
		"CSRFToken": csrfToken.Token,
	})
}

func handleCreateTrip(c *gin.Context) {
	userID := c.MustGet("user_id").(int)
	db := c.MustGet("db").(*sql.DB)
	user := c.MustGet("user")

	form, formErr := parseTripForm(c)
	if formErr != "" {
		c.HTML(http.StatusBadRequest, "new_trip.html", gin.H{
			"Title": "Нова подорож - Mandry",
			"User":  user,
			"Error": formErr,
			"Form":  form,
		})
		return
	}

	trip, err := database.CreateTrip(db, userID, form.Title, form.Destination, form.StartDate, form.EndDate, form.Budget)
	if err != nil {
		if errors.Is(err, database.ErrValidation) {
			c.HTML(http.StatusBadRequest, "new_trip.html", gin.H{
				"Title": "Нова подорож - Mandry",
				"User":  user,
				"Error": tripValidationMessage(err),
				"Form":  form,
			})
			return
		}
		logger.Error("Failed to create trip", "user_id", userID, "error", err)
		c.HTML(http.StatusInternalServerError, "new_trip.html", gin.H{
			"Title": "Нова подорож - Mandry",
			"User":  user,
			"Error": "Не вдалося створити подорож",
		})
		return
	}

	c.Redirect(http.StatusFound, "/trips/"+strconv.Itoa(trip.ID))
}

func handleTripDetail(c *gin.Context) {
	userID := c.MustGet("user_id").(int)
	db := c.MustGet("db").(*sql.DB)
	user := c.MustGet("user")

	tripID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		renderStoreError(c, database.ErrNotFound, "trip detail")
		return
	}

	trip, err := database.GetTripWithDetails(db, userID, tripID)
	if err != nil {
		renderStoreError(c, err, "trip detail")
		return
	}

	csrfToken, err := database.CreateCSRFToken(db, userID)
	if err != nil {
		logger.Error("Failed to create CSRF token", "user_id", userID, "error", err)
		c.HTML(http.StatusInternalServerError, "trip_detail.html", gin.H{
			"Title": trip.Title + " - Mandry",
			"User":  user,
			"Trip":  trip,
			"Error": "Не вдалося створити токен безпеки",
		})
		return
	}

	packing := report.ComputePackingProgress(trip.PackingItems)

	c.HTML(http.StatusOK, "trip_detail.html", gin.H{
		"Title":             trip.Title + " - Mandry",
		"User":              user,
		"Trip":              trip,
		"Packing":           packing,
		"ActivityLabels":    models.ActivityCategoryLabels,
		"PackingCategories": models.PackingCategories,
		"PackingLabels":     models.PackingCategoryLabels,
		"CSRFToken":         csrfToken.Token,
	})
}

func handleEditTripPage(c *gin.Context) {
	userID := c.MustGet("user_id").(int)
	db := c.MustGet("db").(*sql.DB)
	user := c.MustGet("user")

	tripID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		renderStoreError(c, database.ErrNotFound, "edit trip page")
		return
	}

	trip, err := database.GetTrip(db, userID, tripID)
	if err != nil {
		renderStoreError(c, err, "edit trip page")
		return
	}

	csrfToken, err := database.CreateCSRFToken(db, userID)
	if err != nil {
		logger.Error("Failed to create CSRF token", "user_id", userID, "error", err)
		c.HTML(http.StatusInternalServerError, "edit_trip.html", gin.H{
			"Title": "Редагувати подорож - Mandry",
			"User":  user,
			"Trip":  trip,
			"Error": "Не вдалося створити токен безпеки",
		})
		return
	}

	c.HTML(http.StatusOK, "edit_trip.html", gin.H{
		"Title":     "Редагувати подорож - Mandry",
		"User":      user,
		"Trip":      trip,
		"CSRFToken": csrfToken.Token,
	})
}

func handleUpdateTrip(c *gin.Context) {
	userID := c.MustGet("user_id").(int)
	db := c.MustGet("db").(*sql.DB)
	user := c.MustGet("user")

	tripID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		renderStoreError(c, database.ErrNotFound, "update trip")
		return
	}

	trip, err := database.GetTrip(db, userID, tripID)
	if err != nil {
		renderStoreError(c, err, "update trip")
		return
	}

	form, formErr := parseTripForm(c)
	if formErr != "" {
		c.HTML(http.StatusBadRequest, "edit_trip.html", gin.H{
			"Title": "Редагувати подорож - Mandry",
			"User":  user,
			"Trip":  trip,
			"Error": formErr,
		})
		return
	}

	err = database.UpdateTrip(db, userID, tripID, form.Title, form.Destination, form.StartDate, form.EndDate, form.Budget)
	if err != nil {
		if errors.Is(err, database.ErrValidation) {
			c.HTML(http.StatusBadRequest, "edit_trip.html", gin.H{
				"Title": "Редагувати подорож - Mandry",
				"User":  user,
				"Trip":  trip,
				"Error": tripValidationMessage(err),
			})
			return
		}
		renderStoreError(c, err, "update trip")
		return
	}

	c.Redirect(http.StatusFound, "/trips/"+strconv.Itoa(tripID))
}

func handleDeleteTrip(c *gin.Context) {
	userID := c.MustGet("user_id").(int)
	db := c.MustGet("db").(*sql.DB)

	tripID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		renderStoreError(c, database.ErrNotFound, "delete trip")
		return
	}

	if err := database.DeleteTrip(db, userID, tripID); err != nil {
		renderStoreError(c, err, "delete trip")
		return
	}

	logger.Info("Trip deleted", "user_id", userID, "trip_id", tripID)
	c.Redirect(http.StatusFound, "/dashboard")
}
