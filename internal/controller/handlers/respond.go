package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tutor-crm/backend/internal/service"
)

// respondError переводит ошибку сервиса в HTTP-ответ {"message": ...}.
// Непредвиденные ошибки уходят как 500 без деталей.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Не найдено"})
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
	case errors.Is(err, service.ErrBadSlot):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Некорректные параметры слота"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Неверный email или пароль"})
	case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Недействительный токен"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Внутренняя ошибка сервера"})
	}
}

// pathID достаёт числовой :id из пути; 0 означает ошибку,
// ответ уже отправлен
func pathID(c *gin.Context) int64 {
	id, err := parseInt64(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Некорректный идентификатор"})
		return 0
	}
	return id
}
