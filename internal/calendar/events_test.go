package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutor-crm/backend/internal/model"
)

func weeklyBook(id int64, startDate string, endDate *string) *model.Book {
	return &model.Book{
		ID:             id,
		TimeFrom:       "10:00",
		TimeTo:         "11:00",
		StartDate:      startDate,
		EndDate:        endDate,
		BookStatus:     true,
		LessonFormat:   model.FormatOffline,
		Student:        &model.StudentRef{ID: 1, Name: "Иван Петров"},
		LessonCategory: &model.CategoryRef{ID: 2, Name: "Математика"},
	}
}

func TestBuildEventsWeeklyExpansion(t *testing.T) {
	// 2024-03-04 понедельник; окно покрывает четыре понедельника
	book := weeklyBook(7, "2024-03-04", nil)
	prices := map[int64]int{2: 500}

	events, err := BuildEvents([]*model.Book{book}, nil, prices, "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	require.Len(t, events, 4)

	assert.Equal(t, "2024-03-04T10:00", events[0].Start)
	assert.Equal(t, "2024-03-11T10:00", events[1].Start)
	assert.Equal(t, "2024-03-18T10:00", events[2].Start)
	assert.Equal(t, "2024-03-25T10:00", events[3].Start)

	first := events[0]
	assert.Equal(t, model.EventTypeBooked, first.Extended.Type)
	assert.Equal(t, 500, first.Extended.Price)
	assert.Equal(t, "Иван Петров - Математика", first.Title)
	assert.Contains(t, first.URL, "/book/new/?")
	assert.Contains(t, first.URL, "book_id=7")
	assert.Contains(t, first.URL, "price=500")
}

func TestBuildEventsSkipsPausedBook(t *testing.T) {
	book := weeklyBook(7, "2024-03-04", nil)
	book.BookStatus = false

	events, err := BuildEvents([]*model.Book{book}, nil, nil, "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestBuildEventsRespectsBookEndDate(t *testing.T) {
	end := "2024-03-11"
	book := weeklyBook(7, "2024-03-04", &end)

	events, err := BuildEvents([]*model.Book{book}, nil, nil, "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "2024-03-11T10:00", events[1].Start)
}

func TestBuildEventsSkipsDatesWithLessonFromBook(t *testing.T) {
	book := weeklyBook(7, "2024-03-04", nil)
	lesson := &model.Lesson{
		ID:        42,
		Name:      "Иван Петров - Математика",
		StartDate: "2024-03-11 10:00:00",
		EndDate:   "2024-03-11 11:00:00",
		Price:     500,
		Status:    &model.Status{Slug: model.StatusSlugPaid},
		Book:      &model.BookRef{ID: 7},
	}

	events, err := BuildEvents([]*model.Book{book}, []*model.Lesson{lesson}, nil, "2024-03-01", "2024-03-31")
	require.NoError(t, err)

	// 11 марта закрыто уроком: вместо booked остаётся только lesson
	var bookedStarts, lessonStarts []string
	for _, e := range events {
		switch e.Extended.Type {
		case model.EventTypeBooked:
			bookedStarts = append(bookedStarts, e.Start)
		case model.EventTypeLesson:
			lessonStarts = append(lessonStarts, e.Start)
		}
	}
	assert.Equal(t, []string{"2024-03-04T10:00", "2024-03-18T10:00", "2024-03-25T10:00"}, bookedStarts)
	assert.Equal(t, []string{"2024-03-11T10:00"}, lessonStarts)
}

func TestBuildEventsLessonOutsideWindow(t *testing.T) {
	lesson := &model.Lesson{
		ID:        42,
		StartDate: "2024-04-01 10:00:00",
		EndDate:   "2024-04-01 11:00:00",
	}

	events, err := BuildEvents(nil, []*model.Lesson{lesson}, nil, "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestBuildEventsLessonColors(t *testing.T) {
	tests := []struct {
		slug string
		want string
	}{
		{model.StatusSlugPaid, colorLessonPaid},
		{model.StatusSlugPaidClosed, colorLessonPaid},
		{model.StatusSlugPending, colorLessonPending},
		{model.StatusSlugCancelled, colorLessonCancelled},
		{model.StatusSlugNoPaidClosed, colorLessonCancelled},
		{"completed", colorLessonOther},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			lesson := &model.Lesson{
				ID:        1,
				StartDate: "2024-03-04 10:00:00",
				EndDate:   "2024-03-04 11:00:00",
				Status:    &model.Status{Slug: tt.slug},
			}
			events, err := BuildEvents(nil, []*model.Lesson{lesson}, nil, "2024-03-01", "2024-03-31")
			require.NoError(t, err)
			require.Len(t, events, 1)
			assert.Equal(t, tt.want, events[0].BackgroundColor)
		})
	}
}

func TestBuildEventsBadWindow(t *testing.T) {
	_, err := BuildEvents(nil, nil, nil, "мусор", "2024-03-31")
	assert.Error(t, err)
}

func TestTextColorFor(t *testing.T) {
	assert.Equal(t, "#1a1e24", TextColorFor("#ffffff"))
	assert.Equal(t, "#ffffff", TextColorFor("#000000"))
	assert.Equal(t, "#1a1e24", TextColorFor("#ffb6c1"))
	assert.Equal(t, "#ffffff", TextColorFor("#1a1e24"))
	assert.Equal(t, "#1a1e24", TextColorFor("#fff"))
	assert.Equal(t, "#1a1e24", TextColorFor("не цвет"))
}
