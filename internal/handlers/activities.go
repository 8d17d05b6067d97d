package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"mandry/internal/database"
	"mandry/internal/models"

	"github.com/gin-gonic/gin"
)

func parseActivityForm(c *gin.Context) (models.Activity, string) {
	activity := models.Activity{
		Title:       strings.TrimSpace(c.PostForm("title")),
		Description: strings.TrimSpace(c.PostForm("description")),
		TimeOfDay:   strings.TrimSpace(c.PostForm("time_of_day")),
		Location:    strings.TrimSpace(c.PostForm("location")),
		Category:    strings.TrimSpace(c.PostForm("category")),
	}

	if activity.Title == "" {
		return activity, "Вкажіть назву активності"
	}

	var err error
	activity.Date, err = time.Parse(dateFormat, c.PostForm("date"))
	if err != nil {
		return activity, "Невірний формат дати"
	}

	costStr := strings.TrimSpace(c.PostForm("cost"))
	if costStr != "" {
		activity.Cost, err = strconv.ParseFloat(costStr, 64)
		if err != nil {
			return activity, "Невірний формат вартості"
		}
		if activity.Cost < 0 {
			return activity, "Вартість не може бути від'ємною"
		}
	}

	return activity, ""
}

func activityPageData(c *gin.Context, tripID int) (gin.H, *models.Trip, bool) {
	userID := c.MustGet("user_id").(int)
	db := c.MustGet("db").(*sql.DB)
	user := c.MustGet("user")

	trip, err := database.GetTrip(db, userID, tripID)
	if err != nil {
		renderStoreError(c, err, "activity page")
		return nil, nil, false
	}

	csrfToken, err := database.CreateCSRFToken(db, userID)
	if err != nil {
		renderStoreError(c, err, "activity page")
		return nil, nil, false
	}

	return gin.H{
		"User":       user,
		"Trip":       trip,
		"Categories": models.ActivityCategories,
		"Labels":     models.ActivityCategoryLabels,
		"CSRFToken":  csrfToken.Token,
	}, trip, true
}

func handleNewActivityPage(c *gin.Context) {
	tripID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		renderStoreError(c, database.ErrNotFound, "new activity page")
		return
	}

	data, _, ok := activityPageData(c, tripID)
	if !ok {
		return
	}

	data["Title"] = "Нова активність - Mandry"
	c.HTML(http.StatusOK, "activity_form.html", data)
}

func handleCreateActivity(c *gin.Context) {
	userID := c.MustGet("user_id").(int)
	db := c.MustGet("db").(*sql.DB)

	tripID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		renderStoreError(c, database.ErrNotFound, "create activity")
		return
	}

	activity, formErr := parseActivityForm(c)
	if formErr != "" {
		data, _, ok := activityPageData(c, tripID)
		if !ok {
			return
		}
		data["Title"] = "Нова активність - Mandry"
		data["Error"] = formErr
		data["Activity"] = activity
		c.HTML(http.StatusBadRequest, "activity_form.html", data)
		return
	}

	_, err = database.CreateActivity(db, userID, tripID, activity)
	if err != nil {
		if errors.Is(err, database.ErrValidation) {
			data, _, ok := activityPageData(c, tripID)
			if !ok {
				return
			}
			data["Title"] = "Нова активність - Mandry"
			data["Error"] = "Дата активності має бути в межах подорожі"
			data["Activity"] = activity
			c.HTML(http.StatusBadRequest, "activity_form.html", data)
			return
		}
		renderStoreError(c, err, "create activity")
		return
	}

	c.Redirect(http.StatusFound, "/trips/"+strconv.Itoa(tripID))
}

func handleEditActivityPage(c *gin.Context) {
	userID := c.MustGet("user_id").(int)
	db := c.MustGet("db").(*sql.DB)

	tripID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		renderStoreError(c, database.ErrNotFound, "edit activity page")
		return
	}
	activityID, err := strconv.Atoi(c.Param("activity_id"))
	if err != nil {
		renderStoreError(c, database.ErrNotFound, "edit activity page")
		return
	}

	activity, err := database.GetActivity(db, userID, tripID, activityID)
	if err != nil {
		renderStoreError(c, err, "edit activity page")
		return
	}

	data, _, ok := activityPageData(c, tripID)
	if !ok {
		return
	}

	data["Title"] = "Редагувати активність - Mandry"
	data["Activity"] = activity
	data["Editing"] = true
	c.HTML(http.StatusOK, "activity_form.html", data)
}

func handleUpdateActivity(c *gin.Context) {
	userID := c.MustGet("user_id").(int)
	db := c.MustGet("db").(*sql.DB)

	tripID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		renderStoreError(c, database.ErrNotFound, "update activity")
		return
	}
	activityID, err := strconv.Atoi(c.Param("activity_id"))
	if err != nil {
		renderStoreError(c, database.ErrNotFound, "update activity")
		return
	}

	activity, formErr := parseActivityForm(c)
	if formErr != "" {
		data, _, ok := activityPageData(c, tripID)
		if !ok {
			return
		}
		data["Title"] = "Редагувати активність - Mandry"
		data["Error"] = formErr
		data["Activity"] = activity
		data["Editing"] = true
		c.HTML(http.StatusBadRequest, "activity_form.html", data)
		return
	}

	activity.Completed = c.PostForm("completed") == "on"

	err = database.UpdateActivity(db, userID, tripID, activityID, activity)
	if err != nil {
		if errors.Is(err, database.ErrValidation) {
			data, _, ok := activityPageData(c, tripID)
			if !ok {
				return
			}
			data["Title"] = "Редагувати активність - Mandry"
			data["Error"] = "Дата активності має бути в межах подорожі"
			data["Activity"] = activity
			data["Editing"] = true
			c.HTML(http.StatusBadRequest, "activity_form.html", data)
			return
		}
		renderStoreError(c, err, "update activity")
		return
	}

	c.Redirect(http.StatusFound, "/trips/"+strconv.Itoa(tripID))
}

func handleToggleActivity(c *gin.Context) {
	userID := c.MustGet("user_id").(int)
	db := c.MustGet("db").(*sql.DB)

	tripID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		renderStoreError(c, database.ErrNotFound, "toggle activity")
		return
	}
	activityID, err := strconv.Atoi(c.Param("activity_id"))
	if err != nil {
		renderStoreError(c, database.ErrNotFound, "toggle activity")
		return
	}

	if err := database.ToggleActivity(db, userID, tripID, activityID); err != nil {
		renderStoreError(c, err, "toggle activity")
		return
	}

	c.Redirect(http.StatusFound, "/trips/"+strconv.Itoa(tripID))
}

func handleDeleteActivity(c *gin.Context) {
	userID := c.MustGet("user_id").(int)
	db := c.MustGet("db").(*sql.DB)

	tripID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		renderStoreError(c, database.ErrNotFound, "delete activity")
		return
	}
	activityID, err := strconv.Atoi(c.Param("activity_id"))
	if err != nil {
		renderStoreError(c, database.ErrNotFound, "delete activity")
		return
	}

	if err := database.DeleteActivity(db, userID, tripID, activityID); err != nil {
		renderStoreError(c, err, "delete activity")
		return
	}

	c.Redirect(http.StatusFound, "/trips/"+strconv.Itoa(tripID))
}
