package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"mandry/internal/database"
	"mandry/internal/report"

	"github.com/gin-gonic/gin"
)

func handleTripStatistics(c *gin.Context) {
	userID := c.MustGet("user_id").(int)
	db := c.MustGet("db").(*sql.DB)
	user := c.MustGet("user")

	tripID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		renderStoreError(c, database.ErrNotFound, "trip statistics")
		return
	}

	trip, err := database.GetTripWithDetails(db, userID, tripID)
	if err != nil {
		renderStoreError(c, err, "trip statistics")
		return
	}

	stats := report.Compute(trip, trip.Activities, trip.PackingItems, trip.Accommodations)

	c.HTML(http.StatusOK, "statistics.html", gin.H{
		"Title": "Статистика: " + trip.Title + " - Mandry",
		"User":  user,
		"Trip":  trip,
		"Stats": stats,
	})
}

func handleTripExpenses(c *gin.Context) {
	userID := c.MustGet("user_id").(int)
	db := c.MustGet("db").(*sql.DB)
	user := c.MustGet("user")

	tripID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		renderStoreError(c, database.ErrNotFound, "trip expenses")
		return
	}

	trip, err := database.GetTripWithDetails(db, userID, tripID)
	if err != nil {
		renderStoreError(c, err, "trip expenses")
		return
	}

	expenses := report.BuildExpenseReport(trip.Activities, trip.Accommodations)

	c.HTML(http.StatusOK, "expenses.html", gin.H{
		"Title":    "Витрати: " + trip.Title + " - Mandry",
		"User":     user,
		"Trip":     trip,
		"Expenses": expenses,
	})
}

// hotelSuggestion is a static entry for the hotel ideas page. There is no
// external booking API; the page only seeds the accommodation form.
type hotelSuggestion struct {
	Name        string
	Description string
	PriceLevel  string
	Rating      float64
}

var hotelSuggestions = []hotelSuggestion{
	{Name: "Готель у центрі", Description: "Поруч з головними пам'ятками", PriceLevel: "$$$", Rating: 4.5},
	{Name: "Бутик-готель", Description: "Затишна атмосфера і сніданок", PriceLevel: "$$", Rating: 4.2},
	{Name: "Хостел для мандрівників", Description: "Бюджетний варіант з кухнею", PriceLevel: "$", Rating: 3.9},
	{Name: "Апартаменти з кухнею", Description: "Для довших зупинок", PriceLevel: "$$", Rating: 4.0},
}

func handleTripHotels(c *gin.Context) {
	userID := c.MustGet("user_id").(int)
	db := c.MustGet("db").(*sql.DB)
	user := c.MustGet("user")

	tripID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		renderStoreError(c, database.ErrNotFound, "trip hotels")
		return
	}

	trip, err := database.GetTrip(db, userID, tripID)
	if err != nil {
		renderStoreError(c, err, "trip hotels")
		return
	}

	c.HTML(http.StatusOK, "hotels.html", gin.H{
		"Title":       "Готелі: " + trip.Title + " - Mandry",
		"User":        user,
		"Trip":        trip,
		"Suggestions": hotelSuggestions,
	})
}
