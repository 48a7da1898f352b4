package model

type EventType string

const (
	EventTypeBooked EventType = "booked"
	EventTypeLesson EventType = "lesson"
	EventTypeFree   EventType = "free"
)

// EventProps дополнительные данные события, из которых фронт
// восстанавливает черновик урока
type EventProps struct {
	Type      EventType `json:"type"`
	Status    string    `json:"status,omitempty"`     // slug статуса, только для уроков
	Price     int       `json:"price,omitempty"`      // цена брони
	PricePaid int       `json:"price_paid,omitempty"` // цена урока
}

// CalendarEvent событие календаря — read-only проекция брони или урока.
// Start/End в формате YYYY-MM-DDTHH:MM, URL несёт параметры слота (см. парсер).
type CalendarEvent struct {
	ID              string     `json:"id,omitempty"`
	Title           string     `json:"title"`
	Start           string     `json:"start"`
	End             string     `json:"end"`
	URL             string     `json:"url"`
	BackgroundColor string     `json:"backgroundColor"`
	TextColor       string     `json:"textColor"`
	Extended        EventProps `json:"extendedProps"`
}
