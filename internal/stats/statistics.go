// Package stats сводит коллекции уроков, броней, учеников и категорий
// в снимок статистики. Все функции чистые: каждый вызов пересчитывает
// снимок с нуля по переданным данным, без какого-либо I/O.
package stats

import (
	"math"
	"sort"
	"strings"

	"github.com/tutor-crm/backend/internal/model"
)

// DefaultTaxRatePercent ставка налога по умолчанию (НПД)
const DefaultTaxRatePercent = 10

// TopStudents сколько учеников попадает в рейтинг
const TopStudents = 20

// Summary общие итоги за период
type Summary struct {
	TotalIncome     int `json:"totalIncome"`
	PaidIncome      int `json:"paidIncome"`
	PendingIncome   int `json:"pendingIncome"`
	CancelledIncome int `json:"cancelledIncome"`

	LessonsCount     int `json:"lessonsCount"`
	PaidLessons      int `json:"paidLessons"`
	PendingLessons   int `json:"pendingLessons"`
	CancelledLessons int `json:"cancelledLessons"`

	BooksCount      int `json:"booksCount"`
	ActiveBooks     int `json:"activeBooks"`
	StudentsCount   int `json:"studentsCount"`
	CategoriesCount int `json:"categoriesCount"`
}

// CategoryRow доход по одной категории
type CategoryRow struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Total        int    `json:"total"`
	Paid         int    `json:"paid"`
	Pending      int    `json:"pending"`
	Cancelled    int    `json:"cancelled"`
	LessonsCount int    `json:"lessonsCount"`
}

// StudentRow позиция ученика в рейтинге
type StudentRow struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	TotalPaid    int    `json:"totalPaid"`
	LessonsCount int    `json:"lessonsCount"`
	LastLesson   string `json:"lastLesson"`
}

// MonthRow итоги одного календарного месяца
type MonthRow struct {
	Key          string `json:"key"` // YYYY-MM
	Total        int    `json:"total"`
	Paid         int    `json:"paid"`
	Pending      int    `json:"pending"`
	Cancelled    int    `json:"cancelled"`
	LessonsCount int    `json:"lessonsCount"`
}

// Tax расчёт налога с оплаченного дохода
type Tax struct {
	Amount    int     `json:"amount"`
	Rate      float64 `json:"rate"`
	NetIncome int     `json:"netIncome"`
}

// Snapshot полный снимок статистики
type Snapshot struct {
	Summary    Summary       `json:"summary"`
	Categories []CategoryRow `json:"categories"`
	Students   []StudentRow  `json:"students"`
	Monthly    []MonthRow    `json:"monthly"`
	Tax        Tax           `json:"tax"`
}

// Input исходные коллекции для расчёта. Загружаются вызывающим целиком,
// агрегатор сам никуда не ходит.
type Input struct {
	Lessons    []*model.Lesson
	Books      []*model.Book
	Students   []*model.Student
	Categories []*model.Category

	// Необязательный фильтр периода, обе даты YYYY-MM-DD включительно.
	// Если хоть одна граница пустая, фильтр не применяется.
	StartDate string
	EndDate   string

	// Ставка налога в процентах; 0 значит DefaultTaxRatePercent
	TaxRatePercent float64
}

// Calculate строит снимок статистики. Фильтрация по периоду выполняется
// до всех свёрток; каждая свёртка — один проход по отфильтрованным урокам.
func Calculate(in Input) Snapshot {
	lessons := filterLessons(in.Lessons, in.StartDate, in.EndDate)
	books := filterBooks(in.Books, in.StartDate, in.EndDate)

	snapshot := Snapshot{
		Categories: []CategoryRow{},
		Students:   []StudentRow{},
		Monthly:    []MonthRow{},
	}

	rollupLessons(&snapshot.Summary, lessons)
	rollupBooks(&snapshot.Summary, books)
	snapshot.Summary.StudentsCount = len(in.Students)
	snapshot.Summary.CategoriesCount = len(in.Categories)

	snapshot.Categories = rollupCategories(lessons)
	snapshot.Students = rollupStudents(lessons)
	snapshot.Monthly = rollupMonthly(lessons)

	rate := in.TaxRatePercent
	if rate == 0 {
		rate = DefaultTaxRatePercent
	}
	snapshot.Tax = CalculateTax(snapshot.Summary.PaidIncome, rate)

	return snapshot
}

// CalculateTax считает налог с дохода по ставке в процентах.
// Округляется только сумма налога, net = доход - налог без потерь.
func CalculateTax(income int, ratePercent float64) Tax {
	amount := int(math.Round(float64(income) * ratePercent / 100))
	return Tax{
		Amount:    amount,
		Rate:      ratePercent,
		NetIncome: income - amount,
	}
}

// withinRange проверяет попадание даты в [start, end] включительно.
// Даты с ведущими нулями сравниваются как строки; конец периода
// дополняется до конца суток, чтобы уроки последнего дня вошли.
func withinRange(date, start, end string) bool {
	if start == "" || end == "" {
		return true
	}
	return date >= start && date <= end+" 23:59:59.999"
}

func filterLessons(lessons []*model.Lesson, start, end string) []*model.Lesson {
	if start == "" || end == "" {
		return lessons
	}
	var filtered []*model.Lesson
	for _, l := range lessons {
		if withinRange(l.StartDate, start, end) {
			filtered = append(filtered, l)
		}
	}
	return filtered
}

func filterBooks(books []*model.Book, start, end string) []*model.Book {
	if start == "" || end == "" {
		return books
	}
	var filtered []*model.Book
	for _, b := range books {
		if withinRange(b.StartDate, start, end) {
			filtered = append(filtered, b)
		}
	}
	return filtered
}

// rollupLessons раскладывает уроки по корзинам оплачен/ожидает/отменён.
// Урок с нераспознанным статусом попадает только в общие итоги.
func rollupLessons(s *Summary, lessons []*model.Lesson) {
	for _, lesson := range lessons {
		s.LessonsCount++
		s.TotalIncome += lesson.Price

		switch lesson.PaymentState() {
		case model.PaymentPaid:
			s.PaidLessons++
			s.PaidIncome += lesson.Price
		case model.PaymentPending:
			s.PendingLessons++
			s.PendingIncome += lesson.Price
		case model.PaymentCancelled:
			s.CancelledLessons++
			s.CancelledIncome += lesson.Price
		}
	}
}

func rollupBooks(s *Summary, books []*model.Book) {
	for _, book := range books {
		s.BooksCount++
		if book.BookStatus {
			s.ActiveBooks++
		}
	}
}

func rollupCategories(lessons []*model.Lesson) []CategoryRow {
	byID := make(map[int64]*CategoryRow)
	var order []int64

	for _, lesson := range lessons {
		var id int64
		name := "Без категории"
		if lesson.Category != nil {
			id = lesson.Category.ID
			if lesson.Category.Name != "" {
				name = lesson.Category.Name
			}
		}

		row, ok := byID[id]
		if !ok {
			row = &CategoryRow{ID: id, Name: name}
			byID[id] = row
			order = append(order, id)
		}

		row.LessonsCount++
		row.Total += lesson.Price

		switch lesson.PaymentState() {
		case model.PaymentPaid:
			row.Paid += lesson.Price
		case model.PaymentPending:
			row.Pending += lesson.Price
		case model.PaymentCancelled:
			row.Cancelled += lesson.Price
		}
	}

	rows := make([]CategoryRow, 0, len(order))
	for _, id := range order {
		if byID[id].Total > 0 {
			rows = append(rows, *byID[id])
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Total > rows[j].Total })

	return rows
}

func rollupStudents(lessons []*model.Lesson) []StudentRow {
	byID := make(map[int64]*StudentRow)
	var order []int64

	for _, lesson := range lessons {
		var id int64
		name := "Без имени"
		if lesson.Student != nil {
			id = lesson.Student.ID
			if lesson.Student.Name != "" {
				name = lesson.Student.Name
			}
		}

		row, ok := byID[id]
		if !ok {
			row = &StudentRow{ID: id, Name: name, LastLesson: lesson.StartDate}
			byID[id] = row
			order = append(order, id)
		}

		row.LessonsCount++
		if lesson.PaymentState() == model.PaymentPaid {
			row.TotalPaid += lesson.Price
		}
		if lesson.StartDate > row.LastLesson {
			row.LastLesson = lesson.StartDate
		}
	}

	rows := make([]StudentRow, 0, len(order))
	for _, id := range order {
		if byID[id].TotalPaid > 0 {
			rows = append(rows, *byID[id])
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].TotalPaid > rows[j].TotalPaid })

	if len(rows) > TopStudents {
		rows = rows[:TopStudents]
	}
	return rows
}

func rollupMonthly(lessons []*model.Lesson) []MonthRow {
	byKey := make(map[string]*MonthRow)

	for _, lesson := range lessons {
		if lesson.StartDate == "" {
			continue
		}
		key := monthKey(lesson.StartDate)

		row, ok := byKey[key]
		if !ok {
			row = &MonthRow{Key: key}
			byKey[key] = row
		}

		row.LessonsCount++
		row.Total += lesson.Price

		switch lesson.PaymentState() {
		case model.PaymentPaid:
			row.Paid += lesson.Price
		case model.PaymentPending:
			row.Pending += lesson.Price
		case model.PaymentCancelled:
			row.Cancelled += lesson.Price
		}
	}

	rows := make([]MonthRow, 0, len(byKey))
	for _, row := range byKey {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })

	return rows
}

// monthKey выделяет YYYY-MM из даты "YYYY-MM-DD HH:MM:SS"
func monthKey(startDate string) string {
	if len(startDate) >= 7 && strings.Count(startDate[:7], "-") == 1 {
		return startDate[:7]
	}
	return startDate
}
