package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"mandry/internal/database"
	"mandry/internal/models"

	"github.com/gin-gonic/gin"
)

func handleCreatePackingItem(c *gin.Context) {
	userID := c.MustGet("user_id").(int)
	db := c.MustGet("db").(*sql.DB)

	tripID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		renderStoreError(c, database.ErrNotFound, "create packing item")
		return
	}

	item := models.PackingItem{
		Name:     strings.TrimSpace(c.PostForm("name")),
		Category: strings.TrimSpace(c.PostForm("category")),
		Quantity: 1,
	}

	if item.Name == "" {
		c.Redirect(http.StatusFound, "/trips/"+strconv.Itoa(tripID))
		return
	}

	if quantityStr := strings.TrimSpace(c.PostForm("quantity")); quantityStr != "" {
		item.Quantity, err = strconv.Atoi(quantityStr)
		if err != nil {
			item.Quantity = 1
		}
	}

	_, err = database.CreatePackingItem(db, userID, tripID, item)
	if err != nil {
		if errors.Is(err, database.ErrValidation) {
			c.Redirect(http.StatusFound, "/trips/"+strconv.Itoa(tripID))
			return
		}
		renderStoreError(c, err, "create packing item")
		return
	}

	c.Redirect(http.StatusFound, "/trips/"+strconv.Itoa(tripID))
}

func handleTogglePackingItem(c *gin.Context) {
	userID := c.MustGet("user_id").(int)
	db := c.MustGet("db").(*sql.DB)

	tripID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		renderStoreError(c, database.ErrNotFound, "toggle packing item")
		return
	}
	itemID, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		renderStoreError(c, database.ErrNotFound, "toggle packing item")
		return
	}

	if err := database.TogglePackingItem(db, userID, tripID, itemID); err != nil {
		renderStoreError(c, err, "toggle packing item")
		return
	}

	c.Redirect(http.StatusFound, "/trips/"+strconv.Itoa(tripID))
}

func handleDeletePackingItem(c *gin.Context) {
	userID := c.MustGet("user_id").(int)
	db := c.MustGet("db").(*sql.DB)

	tripID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		renderStoreError(c, database.ErrNotFound, "delete packing item")
		return
	}
	itemID, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		renderStoreError(c, database.ErrNotFound, "delete packing item")
		return
	}

	if err := database.DeletePackingItem(db, userID, tripID, itemID); err != nil {
		renderStoreError(c, err, "delete packing item")
		return
	}

	c.Redirect(http.StatusFound, "/trips/"+strconv.Itoa(tripID))
}
