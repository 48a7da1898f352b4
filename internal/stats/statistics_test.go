package stats

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutor-crm/backend/internal/model"
)

var (
	statusPaid      = &model.Status{ID: 1, Slug: model.StatusSlugPaid}
	statusPending   = &model.Status{ID: 2, Slug: model.StatusSlugPending}
	statusCancelled = &model.Status{ID: 3, Slug: model.StatusSlugCancelled}
)

func paidLesson(start string, price int, student *model.StudentRef, category *model.CategoryRef) *model.Lesson {
	return &model.Lesson{
		StartDate: start + " 10:00:00",
		EndDate:   start + " 11:00:00",
		Price:     price,
		Status:    statusPaid,
		Student:   student,
		Category:  category,
	}
}

func TestCalculateScenario(t *testing.T) {
	ivan := &model.StudentRef{ID: 1, Name: "Иван Петров"}
	anna := &model.StudentRef{ID: 2, Name: "Анна Сидорова"}
	math := &model.CategoryRef{ID: 1, Name: "Математика"}
	physics := &model.CategoryRef{ID: 2, Name: "Физика"}

	lessons := []*model.Lesson{
		paidLesson("2024-03-04", 500, ivan, math),
		paidLesson("2024-03-11", 500, ivan, math),
		paidLesson("2024-03-05", 700, anna, physics),
		{
			StartDate: "2024-03-12 10:00:00",
			Price:     700,
			Status:    statusPending,
			Student:   anna,
			Category:  physics,
		},
		{
			StartDate: "2024-04-02 10:00:00",
			Price:     500,
			Status:    statusCancelled,
			Student:   ivan,
			Category:  math,
		},
	}
	books := []*model.Book{
		{StartDate: "2024-03-04", BookStatus: true},
		{StartDate: "2024-03-05", BookStatus: false},
	}

	got := Calculate(Input{
		Lessons:    lessons,
		Books:      books,
		Students:   []*model.Student{{ID: 1}, {ID: 2}},
		Categories: []*model.Category{{ID: 1}, {ID: 2}},
	})

	assert.Equal(t, 2900, got.Summary.TotalIncome)
	assert.Equal(t, 1700, got.Summary.PaidIncome)
	assert.Equal(t, 700, got.Summary.PendingIncome)
	assert.Equal(t, 500, got.Summary.CancelledIncome)
	assert.Equal(t, 5, got.Summary.LessonsCount)
	assert.Equal(t, 3, got.Summary.PaidLessons)
	assert.Equal(t, 2, got.Summary.BooksCount)
	assert.Equal(t, 1, got.Summary.ActiveBooks)
	assert.Equal(t, 2, got.Summary.StudentsCount)
	assert.Equal(t, 2, got.Summary.CategoriesCount)

	// Категории по убыванию общего дохода
	require.Len(t, got.Categories, 2)
	assert.Equal(t, "Математика", got.Categories[0].Name)
	assert.Equal(t, 1500, got.Categories[0].Total)
	assert.Equal(t, 1000, got.Categories[0].Paid)
	assert.Equal(t, "Физика", got.Categories[1].Name)
	assert.Equal(t, 1400, got.Categories[1].Total)

	// Сумма категорий сходится с общим доходом
	var categoriesTotal int
	for _, row := range got.Categories {
		categoriesTotal += row.Total
	}
	assert.Equal(t, got.Summary.TotalIncome, categoriesTotal)

	// Рейтинг учеников по оплаченному
	require.Len(t, got.Students, 2)
	assert.Equal(t, "Иван Петров", got.Students[0].Name)
	assert.Equal(t, 1000, got.Students[0].TotalPaid)
	assert.Equal(t, "2024-04-02 10:00:00", got.Students[0].LastLesson)
	assert.Equal(t, "Анна Сидорова", got.Students[1].Name)
	assert.Equal(t, 700, got.Students[1].TotalPaid)

	// Помесячная разбивка по возрастанию ключа
	require.Len(t, got.Monthly, 2)
	assert.Equal(t, "2024-03", got.Monthly[0].Key)
	assert.Equal(t, 2400, got.Monthly[0].Total)
	assert.Equal(t, 1700, got.Monthly[0].Paid)
	assert.Equal(t, "2024-04", got.Monthly[1].Key)
	assert.Equal(t, 500, got.Monthly[1].Cancelled)

	// Налог с оплаченного дохода, net + налог = доход
	assert.Equal(t, 170, got.Tax.Amount)
	assert.Equal(t, float64(10), got.Tax.Rate)
	assert.Equal(t, got.Summary.PaidIncome, got.Tax.Amount+got.Tax.NetIncome)
}

func TestCalculateSingleCategoryMonth(t *testing.T) {
	math := &model.CategoryRef{ID: 1, Name: "Математика"}
	a := &model.StudentRef{ID: 1, Name: "A"}
	b := &model.StudentRef{ID: 2, Name: "B"}

	lessons := []*model.Lesson{
		{StartDate: "2024-03-01 10:00:00", Price: 1000, Status: statusPaid, Student: a, Category: math},
		{StartDate: "2024-03-15 10:00:00", Price: 500, Status: statusPending, Student: b, Category: math},
	}

	got := Calculate(Input{Lessons: lessons})

	assert.Equal(t, 1500, got.Summary.TotalIncome)
	assert.Equal(t, 1000, got.Summary.PaidIncome)
	assert.Equal(t, 500, got.Summary.PendingIncome)

	require.Len(t, got.Categories, 1)
	assert.Equal(t, CategoryRow{
		ID: 1, Name: "Математика",
		Total: 1500, Paid: 1000, Pending: 500, LessonsCount: 2,
	}, got.Categories[0])

	require.Len(t, got.Monthly, 1)
	assert.Equal(t, "2024-03", got.Monthly[0].Key)
	assert.Equal(t, 1500, got.Monthly[0].Total)
	assert.Equal(t, 1000, got.Monthly[0].Paid)
	assert.Equal(t, 500, got.Monthly[0].Pending)
}

func TestCalculatePeriodFilter(t *testing.T) {
	ivan := &model.StudentRef{ID: 1, Name: "Иван Петров"}
	math := &model.CategoryRef{ID: 1, Name: "Математика"}

	lessons := []*model.Lesson{
		paidLesson("2024-02-29", 500, ivan, math),
		paidLesson("2024-03-04", 500, ivan, math),
		paidLesson("2024-03-31", 500, ivan, math), // последний день периода входит
		paidLesson("2024-04-01", 500, ivan, math),
	}

	got := Calculate(Input{
		Lessons:   lessons,
		StartDate: "2024-03-01",
		EndDate:   "2024-03-31",
	})

	assert.Equal(t, 2, got.Summary.LessonsCount)
	assert.Equal(t, 1000, got.Summary.PaidIncome)
}

func TestCalculateEmptyInput(t *testing.T) {
	got := Calculate(Input{})

	assert.Zero(t, got.Summary.TotalIncome)
	// Пустые коллекции сериализуются как [], а не null
	assert.NotNil(t, got.Categories)
	assert.NotNil(t, got.Students)
	assert.NotNil(t, got.Monthly)
	assert.Empty(t, got.Categories)
}

func TestCalculateDropsZeroRows(t *testing.T) {
	ivan := &model.StudentRef{ID: 1, Name: "Иван Петров"}
	anna := &model.StudentRef{ID: 2, Name: "Анна Сидорова"}
	math := &model.CategoryRef{ID: 1, Name: "Математика"}

	lessons := []*model.Lesson{
		paidLesson("2024-03-04", 500, ivan, math),
		{
			StartDate: "2024-03-05 10:00:00",
			Price:     700,
			Status:    statusCancelled,
			Student:   anna,
			Category:  math,
		},
	}

	got := Calculate(Input{Lessons: lessons})

	// Анна без оплат в рейтинг не попадает
	require.Len(t, got.Students, 1)
	assert.Equal(t, "Иван Петров", got.Students[0].Name)
}

func TestCalculateTopStudentsCap(t *testing.T) {
	math := &model.CategoryRef{ID: 1, Name: "Математика"}

	var lessons []*model.Lesson
	for i := 1; i <= TopStudents+5; i++ {
		student := &model.StudentRef{ID: int64(i), Name: fmt.Sprintf("Ученик %d", i)}
		lessons = append(lessons, paidLesson("2024-03-04", i*100, student, math))
	}

	got := Calculate(Input{Lessons: lessons})

	require.Len(t, got.Students, TopStudents)
	// Первым идёт самый доходный, хвост отрезан
	assert.Equal(t, (TopStudents+5)*100, got.Students[0].TotalPaid)
	assert.Equal(t, 600, got.Students[TopStudents-1].TotalPaid)
}

func TestCalculateIdempotent(t *testing.T) {
	ivan := &model.StudentRef{ID: 1, Name: "Иван Петров"}
	math := &model.CategoryRef{ID: 1, Name: "Математика"}
	in := Input{
		Lessons: []*model.Lesson{paidLesson("2024-03-04", 500, ivan, math)},
	}

	first := Calculate(in)
	second := Calculate(in)
	assert.Equal(t, first, second)
}

func TestCalculateTax(t *testing.T) {
	tax := CalculateTax(1000, 10)
	assert.Equal(t, Tax{Amount: 100, Rate: 10, NetIncome: 900}, tax)

	// Округляется только сумма налога
	tax = CalculateTax(333, 10)
	assert.Equal(t, 33, tax.Amount)
	assert.Equal(t, 300, tax.NetIncome)

	tax = CalculateTax(0, 10)
	assert.Zero(t, tax.Amount)
	assert.Zero(t, tax.NetIncome)
}
