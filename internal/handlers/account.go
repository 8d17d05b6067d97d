package handlers

import (
	"database/sql"
	"net/http"
	"strings"

	"mandry/internal/database"
	"mandry/internal/logger"

	"github.com/gin-gonic/gin"
)

func handleAccountPage(c *gin.Context) {
	userID := c.MustGet("user_id").(int)
	db := c.MustGet("db").(*sql.DB)
	user := c.MustGet("user")

	csrfToken, err := database.CreateCSRFToken(db, userID)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "account.html", gin.H{
			"Title": "Акаунт - Mandry",
			"User":  user,
			"Error": "Не вдалося створити токен безпеки",
		})
		return
	}

	c.HTML(http.StatusOK, "account.html", gin.H{
		"Title":     "Акаунт - Mandry",
		"User":      user,
		"CSRFToken": csrfToken.Token,
	})
}

func handleChangePassword(c *gin.Context) {
	userID := c.MustGet("user_id").(int)
	db := c.MustGet("db").(*sql.DB)
	user := c.MustGet("user")

	currentPassword := strings.TrimSpace(c.PostForm("current_password"))
	newPassword := strings.TrimSpace(c.PostForm("new_password"))
	confirmPassword := strings.TrimSpace(c.PostForm("confirm_password"))

	if currentPassword == "" || newPassword == "" || confirmPassword == "" {
		c.HTML(http.StatusBadRequest, "account.html", gin.H{
			"Title": "Акаунт - Mandry",
			"User":  user,
			"Error": "Заповніть усі поля паролів",
		})
		return
	}

	if newPassword != confirmPassword {
		c.HTML(http.StatusBadRequest, "account.html", gin.H{
			"Title": "Акаунт - Mandry",
			"User":  user,
			"Error": "Нові паролі не збігаються",
		})
		return
	}

	if len(newPassword) < 8 {
		c.HTML(http.StatusBadRequest, "account.html", gin.H{
			"Title": "Акаунт - Mandry",
			"User":  user,
			"Error": "Новий пароль має містити щонайменше 8 символів",
		})
		return
	}

	err := database.VerifyPassword(db, userID, currentPassword)
	if err != nil {
		c.HTML(http.StatusBadRequest, "account.html", gin.H{
			"Title": "Акаунт - Mandry",
			"User":  user,
			"Error": "Поточний пароль невірний",
		})
		return
	}

	err = database.UpdatePassword(db, userID, newPassword)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "account.html", gin.H{
			"Title": "Акаунт - Mandry",
			"User":  user,
			"Error": "Не вдалося оновити пароль",
		})
		return
	}

	c.HTML(http.StatusOK, "account.html", gin.H{
		"Title":   "Акаунт - Mandry",
		"User":    user,
		"Success": "Пароль оновлено",
	})
}

func handleDeleteAccount(c *gin.Context) {
	userID := c.MustGet("user_id").(int)
	db := c.MustGet("db").(*sql.DB)
	user := c.MustGet("user")

	password := strings.TrimSpace(c.PostForm("password"))
	if password == "" {
		c.HTML(http.StatusBadRequest, "account.html", gin.H{
			"Title": "Акаунт - Mandry",
			"User":  user,
			"Error": "Введіть пароль для підтвердження",
		})
		return
	}

	if err := database.VerifyPassword(db, userID, password); err != nil {
		c.HTML(http.StatusBadRequest, "account.html", gin.H{
			"Title": "Акаунт - Mandry",
			"User":  user,
			"Error": "Пароль невірний",
		})
		return
	}

	if err := database.DeleteUser(db, userID); err != nil {
		logger.Error("Failed to delete user", "user_id", userID, "error", err)
		c.HTML(http.StatusInternalServerError, "account.html", gin.H{
			"Title": "Акаунт - Mandry",
			"User":  user,
			"Error": "Не вдалося видалити акаунт",
		})
		return
	}

	logger.Info("User account deleted", "user_id", userID)

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("session_id", "", -1, "/", "", true, true)
	c.Redirect(http.StatusFound, "/")
}
