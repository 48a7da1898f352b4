package model

import "time"

type Student struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Comment string `json:"comment,omitempty"`

	// Считаются в списочных запросах, не хранятся в БД
	BookingsCount int `json:"bookingsCount"`
	LessonsCount  int `json:"lessonsCount"`

	CreatedAt time.Time `json:"-"`
}

// StudentRef короткая ссылка на ученика внутри других сущностей
type StudentRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}
