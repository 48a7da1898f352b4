package service

import (
	"errors"

	"github.com/tutor-crm/backend/internal/repository/base"
)

// Ошибки уровня сервисов. Контроллер превращает их в HTTP-коды,
// остальное уходит как 500.
var (
	// ErrNotFound общий с репозиториями: affected == 0 и пустой Get
	// выглядят для контроллера одинаково
	ErrNotFound           = base.ErrNotFound
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrInvalidToken       = errors.New("invalid token")
	ErrBadSlot            = errors.New("slot parameters are invalid")
)
