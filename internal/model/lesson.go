package model

import "time"

// Формат дат урока на проводе. Даты сравниваются как строки,
// формат с ведущими нулями делает это корректным.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// Lesson представляет одно конкретное занятие
type Lesson struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"` // обычно "<ученик> - <предмет>"
	StartDate    string       `json:"startDate"` // YYYY-MM-DD HH:MM:SS
	EndDate      string       `json:"endDate"`   // YYYY-MM-DD HH:MM:SS
	Price        int          `json:"price"`
	Comment      string       `json:"comment,omitempty"`
	LessonFormat LessonFormat `json:"lessonFormat"`

	Status   *Status      `json:"status"`
	Student  *StudentRef  `json:"student"`
	Category *CategoryRef `json:"category"`
	Book     *BookRef     `json:"book,omitempty"` // бронь-источник, если урок создан из брони

	CreatedAt time.Time `json:"-"`
}

// PaymentState возвращает нормализованное состояние оплаты урока.
// Урок без статуса считается PaymentOther.
func (l *Lesson) PaymentState() PaymentState {
	if l.Status == nil {
		return PaymentOther
	}
	return PaymentStateOf(l.Status.Slug)
}

// LessonDraft черновик урока для предзаполнения формы.
// Производится парсером слотов, никогда не сохраняется.
type LessonDraft struct {
	ID           *int64       `json:"id"`
	Book         *BookRef     `json:"book,omitempty"`
	Student      *StudentRef  `json:"student"`
	Category     *CategoryRef `json:"category"`
	Price        int          `json:"price"`
	StartDate    string       `json:"startDate"`
	EndDate      string       `json:"endDate"`
	Date         string       `json:"date"`
	EndDatePart  string       `json:"endDatePart"`
	TimeFrom     string       `json:"timeFrom"`
	TimeTo       string       `json:"timeTo"`
	Name         string       `json:"name"`
	LessonFormat LessonFormat `json:"lessonFormat"`
	LessonStatus *Status      `json:"lessonStatus,omitempty"`
	Comment      string       `json:"comment,omitempty"`
}
