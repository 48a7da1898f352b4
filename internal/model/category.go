package model

import (
	"strings"
	"time"
	"unicode"
)

// Category представляет предмет/категорию уроков
type Category struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"` // в рублях, без копеек
	Slug  string `json:"slug"`

	// Считаются в списочных запросах, не хранятся в БД
	BooksCount   int `json:"booksCount"`
	LessonsCount int `json:"lessonsCount"`

	CreatedAt time.Time `json:"-"`
}

// CategoryRef короткая ссылка на категорию внутри других сущностей
type CategoryRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// Slugify генерирует slug из названия: строчные буквы и цифры,
// всё остальное схлопывается в дефис
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true // не начинаем с дефиса
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
		} else if !lastDash {
			b.WriteRune('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}
