package handlers

import (
	"database/sql"
	"net/http"
	"regexp"
	"strings"

	"mandry/internal/config"
	"mandry/internal/database"
	emailService "mandry/internal/email"
	"mandry/internal/logger"

	"github.com/gin-gonic/gin"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func handleRegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{
		"Title":    "Реєстрація - Mandry",
		"Errors":   map[string]string{},
		"Username": "",
		"Email":    "",
	})
}

func handleLoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Title":  "Вхід - Mandry",
		"Errors": map[string]string{},
		"Email":  "",
	})
}

func handleRegister(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)

	username := strings.TrimSpace(c.PostForm("username"))
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")
	confirmPassword := c.PostForm("confirm_password")

	errors := make(map[string]string)

	if len(username) < 3 || len(username) > 30 {
		errors["username"] = "Ім'я користувача має бути від 3 до 30 символів"
	}

	if !emailRegex.MatchString(email) {
		errors["email"] = "Введіть коректну email-адресу"
	}

	if len(password) < 8 {
		errors["password"] = "Пароль має містити щонайменше 8 символів"
	}

	if password != confirmPassword {
		errors["confirm_password"] = "Паролі не збігаються"
	}

	if len(errors) > 0 {
		c.HTML(http.StatusBadRequest, "register.html", gin.H{
			"Title":    "Реєстрація - Mandry",
			"Errors":   errors,
			"Username": username,
			"Email":    email,
		})
		return
	}

	user, err := database.CreateUser(db, username, email, password)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			errors["general"] = "Користувач з таким ім'ям або email вже існує"
		} else {
			errors["general"] = "Не вдалося створити акаунт. Спробуйте ще раз."
		}

		c.HTML(http.StatusBadRequest, "register.html", gin.H{
			"Title":    "Реєстрація - Mandry",
			"Errors":   errors,
			"Username": "",
			"Email":    "",
		})
		return
	}

	activationToken, err := database.CreateActivationToken(db, user.ID)
	if err != nil {
		logger.Error("Failed to create activation token",
			"email", user.Email,
			"user_id", user.ID,
			"error", err)
		c.HTML(http.StatusInternalServerError, "register.html", gin.H{
			"Title":    "Реєстрація - Mandry",
			"Errors":   map[string]string{"general": "Не вдалося завершити реєстрацію. Спробуйте ще раз."},
			"Username": "",
			"Email":    "",
		})
		return
	}

	emailSvc, _ := c.Get("email_service")
	if service, ok := emailSvc.(*emailService.Service); ok && service.IsEnabled() {
		if err := service.SendActivationEmail(user, activationToken.Token); err != nil {
			logger.Warn("Failed to send activation email",
				"email", user.Email,
				"user_id", user.ID,
				"error", err)
		}
	} else {
		// Without a mail provider the account stays unusable, so
		// activate immediately.
		if err := database.ActivateUser(db, user.ID, activationToken.Token); err != nil {
			logger.Error("Failed to auto-activate user", "user_id", user.ID, "error", err)
		}
	}

	c.HTML(http.StatusOK, "register.html", gin.H{
		"Title":    "Реєстрація завершена - Mandry",
		"Success":  "Реєстрація успішна! Перевірте пошту та перейдіть за посиланням для активації акаунта.",
		"Errors":   map[string]string{},
		"Username": "",
		"Email":    "",
	})
}

func handleLogin(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	errors := make(map[string]string)

	if email == "" {
		errors["email"] = "Вкажіть email"
	}

	if password == "" {
		errors["password"] = "Вкажіть пароль"
	}

	if len(errors) > 0 {
		c.HTML(http.StatusBadRequest, "login.html", gin.H{
			"Title":  "Вхід - Mandry",
			"Errors": errors,
			"Email":  email,
		})
		return
	}

	db := c.MustGet("db").(*sql.DB)

	user, err := database.AuthenticateUser(db, email, password)
	if err != nil {
		errors["general"] = "Невірний email або пароль"
		c.HTML(http.StatusBadRequest, "login.html", gin.H{
			"Title":  "Вхід - Mandry",
			"Errors": errors,
			"Email":  email,
		})
		return
	}

	if !user.IsActivated {
		errors["general"] = "Акаунт не активовано. Перевірте пошту."
		c.HTML(http.StatusForbidden, "login.html", gin.H{
			"Title":  "Вхід - Mandry",
			"Errors": errors,
			"Email":  email,
		})
		return
	}

	cfg := c.MustGet("config").(*config.Config)
	session, err := database.CreateSession(db, user.ID, cfg.SessionDuration)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"Title":  "Вхід - Mandry",
			"Errors": map[string]string{"general": "Не вдалося створити сесію. Спробуйте ще раз."},
			"Email":  email,
		})
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	cookieMaxAge := int(cfg.SessionDuration.Seconds())
	c.SetCookie("session_id", session.ID, cookieMaxAge, "/", "", true, true)
	c.Redirect(http.StatusFound, "/dashboard")
}

func handleLogout(c *gin.Context) {
	sessionCookie, err := c.Cookie("session_id")
	if err == nil {
		db := c.MustGet("db").(*sql.DB)
		database.DeleteSession(db, sessionCookie)
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("session_id", "", -1, "/", "", true, true)
	c.Redirect(http.StatusFound, "/")
}

func handleActivate(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.HTML(http.StatusBadRequest, "activation_result.html", gin.H{
			"Title":   "Невірне посилання - Mandry",
			"Success": false,
			"Message": "Посилання активації невірне. Перевірте лист і спробуйте ще раз.",
		})
		return
	}

	db := c.MustGet("db").(*sql.DB)

	user, err := database.ValidateActivationToken(db, token)
	if err != nil {
		logger.Warn("Failed to validate activation token",
			"token", token,
			"error", err)
		c.HTML(http.StatusBadRequest, "activation_result.html", gin.H{
			"Title":   "Активація не вдалася - Mandry",
			"Success": false,
			"Message": "Посилання активації невірне або прострочене. Зареєструйтеся ще раз.",
		})
		return
	}

	if user.IsActivated {
		c.HTML(http.StatusOK, "activation_result.html", gin.H{
			"Title":   "Акаунт вже активовано - Mandry",
			"Success": true,
			"Message": "Ваш акаунт вже активовано! Можете увійти.",
		})
		return
	}

	err = database.ActivateUser(db, user.ID, token)
	if err != nil {
		logger.Error("Failed to activate user",
			"user_id", user.ID,
			"token", token,
			"error", err)
		c.HTML(http.StatusInternalServerError, "activation_result.html", gin.H{
			"Title":   "Помилка активації - Mandry",
			"Success": false,
			"Message": "Сталася помилка під час активації акаунта. Спробуйте ще раз.",
		})
		return
	}

	logger.Info("User successfully activated",
		"email", user.Email,
		"user_id", user.ID)

	c.HTML(http.StatusOK, "activation_result.html", gin.H{
		"Title":           "Акаунт активовано - Mandry",
		"Success":         true,
		"Message":         "Вітаємо! Ваш акаунт активовано. Тепер можете увійти та планувати подорожі.",
		"ShowLoginButton": true,
	})
}

func handleCSRFToken(c *gin.Context) {
	userID := c.MustGet("user_id").(int)
	db := c.MustGet("db").(*sql.DB)

	token, err := database.CreateCSRFToken(db, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate CSRF token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token.Token})
}
