package email

import (
	"fmt"

	"mandry/internal/models"
)

func (s *Service) generateActivationHTML(user *models.User, activationToken string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="uk">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Вітаємо в Mandry</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, Cantarell, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
            background-color: #f8f9fa;
        }
        .container {
            background-color: white;
            padding: 40px;
            border-radius: 12px;
            box-shadow: 0 2px 10px rgba(0, 0, 0, 0.1);
        }
        .header {
            text-align: center;
            margin-bottom: 30px;
        }
        .logo {
            font-size: 28px;
            font-weight: bold;
            color: #1d4e89;
            margin-bottom: 10px;
        }
        .welcome-message {
            font-size: 24px;
            color: #1d4e89;
            margin-bottom: 20px;
        }
        .content {
            font-size: 16px;
            margin-bottom: 30px;
        }
        .cta-button {
            display: inline-block;
            background-color: #1d4e89;
            color: white;
            padding: 12px 24px;
            text-decoration: none;
            border-radius: 6px;
            font-weight: 500;
        }
        .footer {
            margin-top: 40px;
            padding-top: 20px;
            border-top: 1px solid #e9ecef;
            font-size: 14px;
            color: #6c757d;
            text-align: center;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <div class="logo">Mandry</div>
            <div class="welcome-message">Вітаємо, %s!</div>
        </div>

        <div class="content">
            <p>Дякуємо за реєстрацію в Mandry, вашому персональному помічнику для планування подорожей!</p>

            <p><strong>Щоб завершити реєстрацію, активуйте свій акаунт за посиланням нижче:</strong></p>

            <p style="text-align: center; margin: 30px 0;">
                <a href="%s/activate/%s" class="cta-button">Активувати акаунт</a>
            </p>

            <p style="font-size: 14px; color: #6c757d;">Посилання діє протягом 24 годин.</p>

            <p>З Mandry ви можете:</p>
            <ul>
                <li>🗺️ Планувати подорожі з бюджетом і маршрутом</li>
                <li>✅ Вести список активностей і відмічати виконані</li>
                <li>🧳 Складати список речей для пакування</li>
                <li>🏨 Зберігати бронювання житла і рахувати витрати</li>
            </ul>
        </div>

        <div class="footer">
            <p>Гарних мандрів!</p>
            <p>Команда Mandry</p>
            <p style="margin-top: 20px; font-size: 12px;">
                Цей лист надіслано на %s. Якщо у вас є питання, напишіть нам.
            </p>
        </div>
    </div>
</body>
</html>`, user.Username, s.baseURL, activationToken, user.Email)
}

func (s *Service) generateActivationText(user *models.User, activationToken string) string {
	return fmt.Sprintf(`Вітаємо, %s!

Дякуємо за реєстрацію в Mandry, вашому персональному помічнику для планування подорожей!

Щоб завершити реєстрацію, активуйте свій акаунт за посиланням:
%s/activate/%s

Посилання діє протягом 24 годин.

З Mandry ви можете:
- Планувати подорожі з бюджетом і маршрутом
- Вести список активностей і відмічати виконані
- Складати список речей для пакування
- Зберігати бронювання житла і рахувати витрати

Гарних мандрів!
Команда Mandry

---
Цей лист надіслано на %s. Якщо у вас є питання, напишіть нам.`, user.Username, s.baseURL, activationToken, user.Email)
}
