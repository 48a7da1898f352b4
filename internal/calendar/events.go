package calendar

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tutor-crm/backend/internal/model"
)

// Цвета событий. Текстовый цвет подбирается по яркости фона.
const (
	colorBooked          = "#ffb6c1"
	colorLessonPaid      = "#85c155"
	colorLessonPending   = "#ffd966"
	colorLessonCancelled = "#9e9e9e"
	colorLessonOther     = "#dcdcdc"
)

// BuildEvents проецирует брони и уроки на окно календаря [start, end]
// (обе даты YYYY-MM-DD, включительно). Активная бронь разворачивается
// в события booked еженедельно по дню недели её start_date; дни, на
// которые из этой брони уже создан урок, пропускаются. Уроки дают
// события lesson со slug'ом статуса и ценой в price_paid.
// Цена брони берётся из прайса её категории (categoryPrices: id категории -> цена).
func BuildEvents(books []*model.Book, lessons []*model.Lesson, categoryPrices map[int64]int, start, end string) ([]model.CalendarEvent, error) {
	windowStart, err := time.Parse(model.DateLayout, start)
	if err != nil {
		return nil, fmt.Errorf("parse window start: %w", err)
	}
	windowEnd, err := time.Parse(model.DateLayout, end)
	if err != nil {
		return nil, fmt.Errorf("parse window end: %w", err)
	}

	// Дата -> id брони, из которой на эту дату уже есть урок
	booked := make(map[string]map[int64]bool)
	for _, lesson := range lessons {
		if lesson.Book == nil {
			continue
		}
		date, _, _ := strings.Cut(lesson.StartDate, " ")
		if booked[date] == nil {
			booked[date] = make(map[int64]bool)
		}
		booked[date][lesson.Book.ID] = true
	}

	var events []model.CalendarEvent

	for _, book := range books {
		if !book.BookStatus {
			continue // бронь на паузе
		}
		for _, date := range bookDates(book, windowStart, windowEnd) {
			if booked[date][book.ID] {
				continue
			}
			events = append(events, bookedEvent(book, date, categoryPrices))
		}
	}

	for _, lesson := range lessons {
		date, _, _ := strings.Cut(lesson.StartDate, " ")
		if date < start || date > end {
			continue
		}
		events = append(events, lessonEvent(lesson))
	}

	sort.Slice(events, func(i, j int) bool { return events[i].Start < events[j].Start })

	return events, nil
}

// bookDates возвращает даты внутри окна, на которые попадает бронь:
// еженедельно по дню недели start_date, от максимума из начала окна и
// start_date до конца окна либо end_date брони. Корректность диапазона
// end_date >= start_date не проверяется, как и в остальной системе.
func bookDates(book *model.Book, windowStart, windowEnd time.Time) []string {
	bookStart, err := time.Parse(model.DateLayout, book.StartDate)
	if err != nil {
		return nil
	}

	from := windowStart
	if bookStart.After(from) {
		from = bookStart
	}

	to := windowEnd
	if book.EndDate != nil {
		if bookEnd, err := time.Parse(model.DateLayout, *book.EndDate); err == nil && bookEnd.Before(to) {
			to = bookEnd
		}
	}

	// Первая дата нужного дня недели не раньше from
	offset := (int(bookStart.Weekday()) - int(from.Weekday()) + 7) % 7
	day := from.AddDate(0, 0, offset)

	var dates []string
	for !day.After(to) {
		dates = append(dates, day.Format(model.DateLayout))
		day = day.AddDate(0, 0, 7)
	}
	return dates
}

func bookedEvent(book *model.Book, date string, categoryPrices map[int64]int) model.CalendarEvent {
	start := date + "T" + book.TimeFrom
	end := date + "T" + book.TimeTo

	var studentName, categoryName string
	var studentID, categoryID int64
	if book.Student != nil {
		studentName = book.Student.Name
		studentID = book.Student.ID
	}
	if book.LessonCategory != nil {
		categoryName = book.LessonCategory.Name
		categoryID = book.LessonCategory.ID
	}
	price := categoryPrices[categoryID]
	title := studentName + " - " + categoryName

	// Параметры, из которых фронт соберёт черновик урока
	params := url.Values{}
	params.Set("book_id", strconv.FormatInt(book.ID, 10))
	params.Set("student_id", strconv.FormatInt(studentID, 10))
	params.Set("category_id", strconv.FormatInt(categoryID, 10))
	params.Set("start_date", start)
	params.Set("end_date", end)
	params.Set("price", strconv.Itoa(price))
	params.Set("name", title)
	params.Set("format", string(book.LessonFormat))

	return model.CalendarEvent{
		ID:              fmt.Sprintf("book-%d-%s", book.ID, date),
		Title:           title,
		Start:           start,
		End:             end,
		URL:             "/book/new/?" + params.Encode(),
		BackgroundColor: colorBooked,
		TextColor:       TextColorFor(colorBooked),
		Extended: model.EventProps{
			Type:  model.EventTypeBooked,
			Price: price,
		},
	}
}

func lessonEvent(lesson *model.Lesson) model.CalendarEvent {
	status := ""
	if lesson.Status != nil {
		status = lesson.Status.Slug
	}

	var bg string
	switch model.PaymentStateOf(status) {
	case model.PaymentPaid:
		bg = colorLessonPaid
	case model.PaymentPending:
		bg = colorLessonPending
	case model.PaymentCancelled:
		bg = colorLessonCancelled
	default:
		bg = colorLessonOther
	}

	return model.CalendarEvent{
		ID:              fmt.Sprintf("lesson-%d", lesson.ID),
		Title:           lesson.Name,
		Start:           toEventTime(lesson.StartDate),
		End:             toEventTime(lesson.EndDate),
		URL:             fmt.Sprintf("/lesson/%d", lesson.ID),
		BackgroundColor: bg,
		TextColor:       TextColorFor(bg),
		Extended: model.EventProps{
			Type:      model.EventTypeLesson,
			Status:    status,
			PricePaid: lesson.Price,
		},
	}
}

// toEventTime переводит "YYYY-MM-DD HH:MM:SS" в "YYYY-MM-DDTHH:MM"
func toEventTime(dt string) string {
	dt = strings.Replace(dt, " ", "T", 1)
	if len(dt) > 16 {
		dt = dt[:16]
	}
	return dt
}

// TextColorFor подбирает цвет текста по яркости фона:
// тёмный текст на светлом фоне и наоборот
func TextColorFor(bg string) string {
	const dark, light = "#1a1e24", "#ffffff"

	hex := strings.TrimPrefix(bg, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return dark
	}

	r, err1 := strconv.ParseInt(hex[0:2], 16, 32)
	g, err2 := strconv.ParseInt(hex[2:4], 16, 32)
	b, err3 := strconv.ParseInt(hex[4:6], 16, 32)
	if err1 != nil || err2 != nil || err3 != nil {
		return dark
	}

	brightness := (r*299 + g*587 + b*114) / 1000
	if brightness > 128 {
		return dark
	}
	return light
}
