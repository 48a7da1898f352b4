package model

import "time"

// Status представляет статус оплаты/завершения урока
type Status struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`

	// Считается в списочных запросах, не хранится в БД
	LessonsCount int `json:"lessonsCount"`

	CreatedAt time.Time `json:"-"`
}

// Общепринятые slug'и статусов. Набор конвенциональный, БД его не ограничивает.
const (
	StatusSlugPending      = "pending"
	StatusSlugPaid         = "paid"
	StatusSlugCancelled    = "cancelled"
	StatusSlugCompleted    = "completed"
	StatusSlugPaidClosed   = "paided-closed"
	StatusSlugNoPaidClosed = "nopaided-closed"
)

// PaymentState нормализованное состояние оплаты урока
type PaymentState int

const (
	PaymentOther PaymentState = iota
	PaymentPaid
	PaymentPending
	PaymentCancelled
)

// PaymentStateOf сводит slug статуса к одному из четырёх состояний:
// paid и paided-closed считаются оплаченными, cancelled и nopaided-closed
// отменёнными. Оба аггрегатора используют только эту функцию.
func PaymentStateOf(slug string) PaymentState {
	switch slug {
	case StatusSlugPaid, StatusSlugPaidClosed:
		return PaymentPaid
	case StatusSlugPending:
		return PaymentPending
	case StatusSlugCancelled, StatusSlugNoPaidClosed:
		return PaymentCancelled
	default:
		return PaymentOther
	}
}
