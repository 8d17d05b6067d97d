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

func parseAccommodationForm(c *gin.Context) (models.Accommodation, string) {
	acc := models.Accommodation{
		Name:          strings.TrimSpace(c.PostForm("name")),
		Address:       strings.TrimSpace(c.PostForm("address")),
		BookingRef:    strings.TrimSpace(c.PostForm("booking_ref")),
		Phone:         strings.TrimSpace(c.PostForm("phone")),
		Email:         strings.TrimSpace(c.PostForm("email")),
		Website:       strings.TrimSpace(c.PostForm("website")),
		Notes:         strings.TrimSpace(c.PostForm("notes")),
		Amenities:     strings.TrimSpace(c.PostForm("amenities")),
		ImageURL:      strings.TrimSpace(c.PostForm("image_url")),
		BookingStatus: strings.TrimSpace(c.PostForm("booking_status")),
	}

	if acc.Name == "" {
		return acc, "Вкажіть назву житла"
	}

	var err error
	acc.CheckIn, err = time.Parse(dateFormat, c.PostForm("check_in"))
	if err != nil {
		return acc, "Невірний формат дати заїзду"
	}
	acc.CheckOut, err = time.Parse(dateFormat, c.PostForm("check_out"))
	if err != nil {
		return acc, "Невірний формат дати виїзду"
	}

	priceStr := strings.TrimSpace(c.PostForm("price_per_night"))
	if priceStr != "" {
		acc.PricePerNight, err = strconv.ParseFloat(priceStr, 64)
		if err != nil {
			return acc, "Невірний формат ціни за ніч"
		}
		if acc.PricePerNight < 0 {
			return acc, "Ціна за ніч не може бути від'ємною"
		}
	}

	if ratingStr := strings.TrimSpace(c.PostForm("rating")); ratingStr != "" {
		acc.Rating, err = strconv.ParseFloat(ratingStr, 64)
		if err != nil {
			return acc, "Невірний формат рейтингу"
		}
	}

	return acc, ""
}

func accommodationPageData(c *gin.Context, tripID int) (gin.H, bool) {
	userID := c.MustGet("user_id").(int)
	db := c.MustGet("db").(*sql.DB)
	user := c.MustGet("user")

	trip, err := database.GetTrip(db, userID, tripID)
	if err != nil {
		renderStoreError(c, err, "accommodation page")
		return nil, false
	}

	csrfToken, err := database.CreateCSRFToken(db, userID)
	if err != nil {
		renderStoreError(c, err, "accommodation page")
		return nil, false
	}

	return gin.H{
		"User":      user,
		"Trip":      trip,
		"CSRFToken": csrfToken.Token,
	}, true
}

func handleNewAccommodationPage(c *gin.Context) {
	tripID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		renderStoreError(c, database.ErrNotFound, "new accommodation page")
		return
	}

	data, ok := accommodationPageData(c, tripID)
	if !ok {
		return
	}

	data["Title"] = "Нове житло - Mandry"
	c.HTML(http.StatusOK, "accommodation_form.html", data)
}

func handleCreateAccommodation(c *gin.Context) {
	userID := c.MustGet("user_id").(int)
	db := c.MustGet("db").(*sql.DB)

	tripID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		renderStoreError(c, database.ErrNotFound, "create accommodation")
		return
	}

	acc, formErr := parseAccommodationForm(c)
	if formErr != "" {
		data, ok := accommodationPageData(c, tripID)
		if !ok {
			return
		}
		data["Title"] = "Нове житло - Mandry"
		data["Error"] = formErr
		data["Accommodation"] = acc
		c.HTML(http.StatusBadRequest, "accommodation_form.html", data)
		return
	}

	_, err = database.CreateAccommodation(db, userID, tripID, acc)
	if err != nil {
		if errors.Is(err, database.ErrValidation) {
			data, ok := accommodationPageData(c, tripID)
			if !ok {
				return
			}
			data["Title"] = "Нове житло - Mandry"
			data["Error"] = "Дата виїзду має бути пізніше дати заїзду"
			data["Accommodation"] = acc
			c.HTML(http.StatusBadRequest, "accommodation_form.html", data)
			return
		}
		renderStoreError(c, err, "create accommodation")
		return
	}

	c.Redirect(http.StatusFound, "/trips/"+strconv.Itoa(tripID))
}

func handleEditAccommodationPage(c *gin.Context) {
	userID := c.MustGet("user_id").(int)
	db := c.MustGet("db").(*sql.DB)

	tripID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		renderStoreError(c, database.ErrNotFound, "edit accommodation page")
		return
	}
	accommodationID, err := strconv.Atoi(c.Param("accommodation_id"))
	if err != nil {
		renderStoreError(c, database.ErrNotFound, "edit accommodation page")
		return
	}

	acc, err := database.GetAccommodation(db, userID, tripID, accommodationID)
	if err != nil {
		renderStoreError(c, err, "edit accommodation page")
		return
	}

	data, ok := accommodationPageData(c, tripID)
	if !ok {
		return
	}

	data["Title"] = "Редагувати житло - Mandry"
	data["Accommodation"] = acc
	data["Editing"] = true
	c.HTML(http.StatusOK, "accommodation_form.html", data)
}

func handleUpdateAccommodation(c *gin.Context) {
	userID := c.MustGet("user_id").(int)
	db := c.MustGet("db").(*sql.DB)

	tripID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		renderStoreError(c, database.ErrNotFound, "update accommodation")
		return
	}
	accommodationID, err := strconv.Atoi(c.Param("accommodation_id"))
	if err != nil {
		renderStoreError(c, database.ErrNotFound, "update accommodation")
		return
	}

	acc, formErr := parseAccommodationForm(c)
	if formErr != "" {
		data, ok := accommodationPageData(c, tripID)
		if !ok {
			return
		}
		data["Title"] = "Редагувати житло - Mandry"
		data["Error"] = formErr
		data["Accommodation"] = acc
		data["Editing"] = true
		c.HTML(http.StatusBadRequest, "accommodation_form.html", data)
		return
	}

	err = database.UpdateAccommodation(db, userID, tripID, accommodationID, acc)
	if err != nil {
		if errors.Is(err, database.ErrValidation) {
			data, ok := accommodationPageData(c, tripID)
			if !ok {
				return
			}
			data["Title"] = "Редагувати житло - Mandry"
			data["Error"] = "Дата виїзду має бути пізніше дати заїзду"
			data["Accommodation"] = acc
			data["Editing"] = true
			c.HTML(http.StatusBadRequest, "accommodation_form.html", data)
			return
		}
		renderStoreError(c, err, "update accommodation")
		return
	}

	c.Redirect(http.StatusFound, "/trips/"+strconv.Itoa(tripID))
}

func handleDeleteAccommodation(c *gin.Context) {
	userID := c.MustGet("user_id").(int)
	db := c.MustGet("db").(*sql.DB)

	tripID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		renderStoreError(c, database.ErrNotFound, "delete accommodation")
		return
	}
	accommodationID, err := strconv.Atoi(c.Param("accommodation_id"))
	if err != nil {
		renderStoreError(c, database.ErrNotFound, "delete accommodation")
		return
	}

	if err := database.DeleteAccommodation(db, userID, tripID, accommodationID); err != nil {
		renderStoreError(c, err, "delete accommodation")
		return
	}

	c.Redirect(http.StatusFound, "/trips/"+strconv.Itoa(tripID))
}
