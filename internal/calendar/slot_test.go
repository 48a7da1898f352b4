package calendar

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutor-crm/backend/internal/model"
)

func TestClassifySlot(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want SlotKind
	}{
		{"бронь по book_id", "/book/new/?book_id=5&student_id=1", SlotBooked},
		{"существующий урок", "/lesson/42", SlotLesson},
		{"свободный слот", "/book/new/?time_from=10:00&start_date=2024-03-01", SlotFree},
		{"мусорный путь", "/somewhere/else", SlotUnknown},
		{"lesson без id", "/lesson/", SlotUnknown},
		{"lesson с нечисловым id", "/lesson/abc", SlotUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := url.Parse(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ClassifySlot(u))
		})
	}
}

func TestParseBookedSlot(t *testing.T) {
	params := url.Values{}
	params.Set("book_id", "7")
	params.Set("student_id", "3")
	params.Set("category_id", "2")
	params.Set("start_date", "2024-03-04T10:00")
	params.Set("end_date", "2024-03-04T11:00")
	params.Set("price", "500")
	params.Set("name", "Иван Петров - Математика")
	params.Set("format", "online")

	draft := ParseBookedSlot(params)
	require.NotNil(t, draft)

	assert.Equal(t, int64(3), draft.Student.ID)
	assert.Equal(t, "Иван Петров", draft.Student.Name)
	assert.Equal(t, int64(2), draft.Category.ID)
	assert.Equal(t, "Математика", draft.Category.Name)
	assert.Equal(t, int64(7), draft.Book.ID)
	assert.Equal(t, 500, draft.Price)
	assert.Equal(t, "2024-03-04 10:00", draft.StartDate)
	assert.Equal(t, "2024-03-04 11:00", draft.EndDate)
	assert.Equal(t, "2024-03-04", draft.Date)
	assert.Equal(t, "10:00", draft.TimeFrom)
	assert.Equal(t, "11:00", draft.TimeTo)
	assert.Equal(t, model.FormatOnline, draft.LessonFormat)
}

func TestParseBookedSlotDefaults(t *testing.T) {
	params := url.Values{}
	params.Set("student_id", "3")
	params.Set("category_id", "2")
	params.Set("start_date", "2024-03-04T10:00")
	params.Set("end_date", "2024-03-04T11:00")

	draft := ParseBookedSlot(params)
	require.NotNil(t, draft)

	// Без имени и формата подставляются заглушки и оффлайн
	assert.Equal(t, "Ученик", draft.Student.Name)
	assert.Equal(t, "Предмет", draft.Category.Name)
	assert.Equal(t, "Ученик - Предмет", draft.Name)
	assert.Equal(t, model.FormatOffline, draft.LessonFormat)
	assert.Equal(t, 0, draft.Price)
	assert.Nil(t, draft.Book)
}

func TestParseBookedSlotMissingRequired(t *testing.T) {
	required := []string{"student_id", "category_id", "start_date", "end_date"}

	for _, missing := range required {
		t.Run(missing, func(t *testing.T) {
			params := url.Values{}
			params.Set("student_id", "3")
			params.Set("category_id", "2")
			params.Set("start_date", "2024-03-04T10:00")
			params.Set("end_date", "2024-03-04T11:00")
			params.Del(missing)

			assert.Nil(t, ParseBookedSlot(params))
		})
	}
}

func TestParseFreeSlot(t *testing.T) {
	params := url.Values{}
	params.Set("time_from", "10:00")
	params.Set("start_date", "2024-03-04")

	draft := ParseFreeSlot(params, 45)
	require.NotNil(t, draft)

	assert.Equal(t, "2024-03-04 10:00:00", draft.StartDate)
	assert.Equal(t, "2024-03-04 10:45:00", draft.EndDate)
	assert.Equal(t, "10:00", draft.TimeFrom)
	assert.Equal(t, "10:45", draft.TimeTo)
	assert.Equal(t, "Новый урок", draft.Name)
	assert.Equal(t, model.FormatOffline, draft.LessonFormat)
	assert.Equal(t, 0, draft.Price)
}

func TestParseFreeSlotMidnightRollover(t *testing.T) {
	params := url.Values{}
	params.Set("time_from", "23:30")
	params.Set("start_date", "2024-03-04")

	draft := ParseFreeSlot(params, 45)
	require.NotNil(t, draft)

	// Перенос через полночь арифметический, дата не меняется
	assert.Equal(t, "00:15", draft.TimeTo)
	assert.Equal(t, "2024-03-04 00:15:00", draft.EndDate)
	assert.Equal(t, "2024-03-04", draft.EndDatePart)
}

func TestParseFreeSlotExplicitTimeTo(t *testing.T) {
	params := url.Values{}
	params.Set("time_from", "10:00")
	params.Set("time_to", "12:00")
	params.Set("start_date", "2024-03-04")

	draft := ParseFreeSlot(params, 45)
	require.NotNil(t, draft)
	assert.Equal(t, "12:00", draft.TimeTo)
}

func TestParseFreeSlotMissingRequired(t *testing.T) {
	params := url.Values{}
	params.Set("time_from", "10:00")
	assert.Nil(t, ParseFreeSlot(params, 45))

	params = url.Values{}
	params.Set("start_date", "2024-03-04")
	assert.Nil(t, ParseFreeSlot(params, 45))
}

func TestNormalizeLesson(t *testing.T) {
	lesson := &model.Lesson{
		ID:        42,
		Name:      "Иван Петров - Математика",
		StartDate: "2024-03-04 10:00:00",
		EndDate:   "2024-03-04 11:00:00",
		Price:     500,
		Status:    &model.Status{ID: 1, Slug: model.StatusSlugPaid},
		Student:   &model.StudentRef{ID: 3, Name: "Иван Петров"},
		Category:  &model.CategoryRef{ID: 2, Name: "Математика"},
	}

	draft := NormalizeLesson(lesson)

	require.NotNil(t, draft.ID)
	assert.Equal(t, int64(42), *draft.ID)
	assert.Equal(t, "2024-03-04", draft.Date)
	assert.Equal(t, "10:00", draft.TimeFrom)
	assert.Equal(t, "11:00", draft.TimeTo)
	assert.Equal(t, model.FormatOffline, draft.LessonFormat)
	assert.Equal(t, lesson.Status, draft.LessonStatus)
}

func TestAddMinutes(t *testing.T) {
	assert.Equal(t, "10:45", addMinutes("10:00", 45))
	assert.Equal(t, "11:15", addMinutes("10:30", 45))
	assert.Equal(t, "00:15", addMinutes("23:30", 45))
	assert.Equal(t, "", addMinutes("мусор", 45))
}

func TestLessonIDFromPath(t *testing.T) {
	id, ok := LessonIDFromPath([]string{"api", "lesson", "42"})
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	_, ok = LessonIDFromPath([]string{"lesson"})
	assert.False(t, ok)

	_, ok = LessonIDFromPath([]string{"lesson", "abc"})
	assert.False(t, ok)
}
