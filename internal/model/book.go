package model

import "time"

type LessonFormat string

const (
	FormatOnline  LessonFormat = "online"
	FormatOffline LessonFormat = "offline"
)

// Book представляет бронь — повторяющуюся запись ученика на занятие.
// Бронь занимает фиксированное время в день недели StartDate и действует
// в диапазоне дат [StartDate, EndDate]; EndDate == nil значит бессрочно.
type Book struct {
	ID           int64        `json:"id"`
	TimeFrom     string       `json:"timeFrom"` // HH:MM
	TimeTo       string       `json:"timeTo"`   // HH:MM
	StartDate    string       `json:"startDate"` // YYYY-MM-DD
	EndDate      *string      `json:"endDate"`   // YYYY-MM-DD, nil = бессрочно
	BookStatus   bool         `json:"bookStatus"` // true = активна, false = на паузе
	LessonFormat LessonFormat `json:"lessonFormat"`

	Student        *StudentRef  `json:"student"`
	LessonCategory *CategoryRef `json:"lessonCategory"`

	// Считается в списочных запросах, не хранится в БД
	LessonsCount int `json:"lessonsCount"`

	CreatedAt time.Time `json:"-"`
}

// BookRef короткая ссылка на бронь внутри урока/черновика
type BookRef struct {
	ID int64 `json:"id"`
}
