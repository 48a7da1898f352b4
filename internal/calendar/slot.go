package calendar

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/tutor-crm/backend/internal/model"
)

// Подписи по умолчанию, когда имя события не удалось разобрать.
// Совпадают с подписями форм фронтенда.
const (
	placeholderStudent   = "Ученик"
	placeholderCategory  = "Предмет"
	placeholderNewLesson = "Новый урок"
)

// DefaultLessonMinutes длительность урока для свободного слота,
// если time_to не передан
const DefaultLessonMinutes = 45

// SlotKind вид слота календаря, определяется по URL события
type SlotKind int

const (
	SlotUnknown SlotKind = iota
	SlotBooked           // слот из брони: есть book_id
	SlotLesson           // существующий урок: путь lesson/<id>
	SlotFree             // свободный слот: путь book/new
)

// ClassifySlot определяет вид слота по URL события календаря
func ClassifySlot(u *url.URL) SlotKind {
	if u.Query().Has("book_id") {
		return SlotBooked
	}

	parts := PathParts(u.Path)
	if _, ok := LessonIDFromPath(parts); ok {
		return SlotLesson
	}
	if contains(parts, "book") && contains(parts, "new") {
		return SlotFree
	}

	return SlotUnknown
}

// ParseBookedSlot строит черновик урока из параметров слота брони.
// Возвращает nil если обязательные параметры отсутствуют — вызывающий
// показывает сообщение пользователю, ошибки здесь не бывает.
func ParseBookedSlot(params url.Values) *model.LessonDraft {
	studentID := params.Get("student_id")
	categoryID := params.Get("category_id")
	startDate := params.Get("start_date")
	endDate := params.Get("end_date")

	if studentID == "" || categoryID == "" || startDate == "" || endDate == "" {
		return nil
	}

	startDatePart, startTimePart, _ := strings.Cut(startDate, "T")
	endDatePart, endTimePart, _ := strings.Cut(endDate, "T")

	name := params.Get("name")
	studentName, categoryName := splitEventName(name)
	if name == "" {
		name = studentName + " - " + categoryName
	}

	format := model.LessonFormat(params.Get("format"))
	if format == "" {
		format = model.FormatOffline
	}

	draft := &model.LessonDraft{
		Student: &model.StudentRef{
			ID:   parseID(studentID),
			Name: studentName,
		},
		Category: &model.CategoryRef{
			ID:   parseID(categoryID),
			Name: categoryName,
		},
		Price:        atoiOrZero(params.Get("price")),
		StartDate:    strings.Replace(startDate, "T", " ", 1),
		EndDate:      strings.Replace(endDate, "T", " ", 1),
		Date:         startDatePart,
		EndDatePart:  endDatePart,
		TimeFrom:     startTimePart,
		TimeTo:       endTimePart,
		Name:         name,
		LessonFormat: format,
	}

	if bookID := params.Get("book_id"); bookID != "" {
		draft.Book = &model.BookRef{ID: parseID(bookID)}
	}

	return draft
}

// ParseFreeSlot строит черновик нового урока из параметров свободного слота.
// Если time_to не передан, конец вычисляется как time_from + duration минут.
// Перенос через полночь чисто арифметический: 23:30 даёт 00:15, дата не
// меняется — так ведёт себя и календарная сетка.
func ParseFreeSlot(params url.Values, durationMinutes int) *model.LessonDraft {
	timeFrom := params.Get("time_from")
	startDate := params.Get("start_date")

	if timeFrom == "" || startDate == "" {
		return nil
	}

	endTime := params.Get("time_to")
	if endTime == "" {
		endTime = addMinutes(timeFrom, durationMinutes)
	}

	timeTo := endTime
	if timeTo == "" {
		timeTo = "--:--"
	}

	return &model.LessonDraft{
		StartDate:    startDate + " " + timeFrom + ":00",
		EndDate:      startDate + " " + endTime + ":00",
		Date:         startDate,
		EndDatePart:  startDate,
		TimeFrom:     timeFrom,
		TimeTo:       timeTo,
		Price:        0,
		Name:         placeholderNewLesson,
		LessonFormat: model.FormatOffline,
	}
}

// LessonIDFromPath извлекает id урока из сегментов пути вида .../lesson/<id>
func LessonIDFromPath(parts []string) (int64, bool) {
	for i, p := range parts {
		if p == "lesson" && i+1 < len(parts) {
			id, err := strconv.ParseInt(parts[i+1], 10, 64)
			if err != nil {
				return 0, false
			}
			return id, true
		}
	}
	return 0, false
}

// NormalizeLesson переводит урок с сервера в черновик формы:
// startDate/endDate формата "YYYY-MM-DD HH:MM:SS" разбиваются на
// дату и время HH:MM.
func NormalizeLesson(lesson *model.Lesson) *model.LessonDraft {
	id := lesson.ID
	datePart, timePart, _ := strings.Cut(lesson.StartDate, " ")
	endDatePart, endTimePart, _ := strings.Cut(lesson.EndDate, " ")

	format := lesson.LessonFormat
	if format == "" {
		format = model.FormatOffline
	}

	return &model.LessonDraft{
		ID:           &id,
		Name:         lesson.Name,
		StartDate:    lesson.StartDate,
		EndDate:      lesson.EndDate,
		Date:         datePart,
		EndDatePart:  endDatePart,
		TimeFrom:     cutSeconds(timePart),
		TimeTo:       cutSeconds(endTimePart),
		Price:        lesson.Price,
		Student:      lesson.Student,
		Category:     lesson.Category,
		LessonStatus: lesson.Status,
		LessonFormat: format,
		Book:         lesson.Book,
		Comment:      lesson.Comment,
	}
}

// splitEventName разбирает заголовок события "<ученик> - <предмет>".
// Делим по первому " - ", при неудаче подставляем заглушки.
func splitEventName(name string) (student, category string) {
	student, category = placeholderStudent, placeholderCategory
	if name == "" {
		return
	}
	before, after, found := strings.Cut(name, " - ")
	if before != "" {
		student = before
	}
	if found && after != "" {
		category = after
	}
	return
}

// addMinutes прибавляет минуты к времени HH:MM с переносом через час.
// Возвращает пустую строку если вход не похож на время.
func addMinutes(hhmm string, minutes int) string {
	h, m, ok := splitTime(hhmm)
	if !ok {
		return ""
	}
	endHours := h + (m+minutes)/60
	endMinutes := (m + minutes) % 60
	return fmt.Sprintf("%02d:%02d", endHours%24, endMinutes)
}

func splitTime(hhmm string) (hours, minutes int, ok bool) {
	hs, ms, found := strings.Cut(hhmm, ":")
	if !found {
		return 0, 0, false
	}
	h, err1 := strconv.Atoi(hs)
	m, err2 := strconv.Atoi(ms)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return h, m, true
}

func cutSeconds(hhmmss string) string {
	if len(hhmmss) >= 5 {
		return hhmmss[:5]
	}
	return hhmmss
}

// PathParts разбивает путь URL на непустые сегменты
func PathParts(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func contains(parts []string, s string) bool {
	for _, p := range parts {
		if p == s {
			return true
		}
	}
	return false
}

func parseID(s string) int64 {
	id, _ := strconv.ParseInt(s, 10, 64)
	return id
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
