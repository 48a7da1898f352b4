package calendar

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutor-crm/backend/internal/model"
)

func TestRenderWeekImage(t *testing.T) {
	date := time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC) // среда
	events := []model.CalendarEvent{
		{
			Title:           "Иван Петров - Математика",
			Start:           "2024-03-04T10:00",
			End:             "2024-03-04T11:00",
			BackgroundColor: colorLessonPaid,
			Extended:        model.EventProps{Type: model.EventTypeLesson},
		},
		{
			Title:           "Анна Сидорова - Физика",
			Start:           "2024-03-07T15:00",
			End:             "2024-03-07T16:00",
			BackgroundColor: colorBooked,
			Extended:        model.EventProps{Type: model.EventTypeBooked},
		},
	}

	data, err := RenderWeekImage(date, events)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, imageWidth, img.Bounds().Dx())
	assert.Equal(t, imageHeight, img.Bounds().Dy())
}

func TestRenderWeekImageEmptyWeek(t *testing.T) {
	data, err := RenderWeekImage(time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestNormalizeToWeekBounds(t *testing.T) {
	// Неделя всегда с понедельника по воскресенье
	wednesday := time.Date(2024, time.March, 6, 15, 30, 0, 0, time.UTC)
	week := normalizeToWeekBounds(wednesday)
	assert.Equal(t, "2024-03-04", week.start.Format(model.DateLayout))
	assert.Equal(t, "2024-03-10", week.end.Format(model.DateLayout))

	sunday := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	week = normalizeToWeekBounds(sunday)
	assert.Equal(t, "2024-03-04", week.start.Format(model.DateLayout))
}
