package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tutor-crm/backend/internal/service"
)

// ContextUserID ключ, под которым middleware кладёт id пользователя
const ContextUserID = "user_id"

// AuthRequired проверяет bearer-токен. При невалидном или истёкшем
// токене отвечает 401 — фронт по нему делает refresh и повторяет запрос.
func AuthRequired(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Требуется авторизация"})
			return
		}

		userID, err := auth.ParseAccessToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Недействительный токен"})
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}
