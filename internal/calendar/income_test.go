package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tutor-crm/backend/internal/model"
)

func bookedAt(price int) model.CalendarEvent {
	return model.CalendarEvent{
		Extended: model.EventProps{Type: model.EventTypeBooked, Price: price},
	}
}

func lessonAt(slug string, pricePaid int) model.CalendarEvent {
	return model.CalendarEvent{
		Extended: model.EventProps{Type: model.EventTypeLesson, Status: slug, PricePaid: pricePaid},
	}
}

func TestCalculateIncome(t *testing.T) {
	period := Period{Start: "2024-03-01", End: "2024-03-31"}
	events := []model.CalendarEvent{
		bookedAt(500),
		lessonAt(model.StatusSlugPaid, 300),
	}

	got := CalculateIncome(events, period)

	assert.Equal(t, 500, got.Planned)
	assert.Equal(t, 300, got.Received)
	assert.Equal(t, 800, got.Total)
	assert.Equal(t, 200, got.Remaining)
	assert.Equal(t, period, got.Period)
}

func TestCalculateIncomePendingDoesNotCount(t *testing.T) {
	events := []model.CalendarEvent{
		bookedAt(500),
		lessonAt(model.StatusSlugPaid, 300),
		lessonAt(model.StatusSlugPending, 1000),
	}

	got := CalculateIncome(events, Period{})

	// pending виден в разбивке, но не двигает итоги
	assert.Equal(t, 500, got.Planned)
	assert.Equal(t, 300, got.Received)
	assert.Equal(t, 800, got.Total)
	assert.Equal(t, 200, got.Remaining)
	assert.Equal(t, StatusTally{Count: 1, Total: 1000}, got.Breakdown.Pending)
}

func TestCalculateIncomePaidClosedCountsAsReceived(t *testing.T) {
	events := []model.CalendarEvent{
		lessonAt(model.StatusSlugPaid, 300),
		lessonAt(model.StatusSlugPaidClosed, 200),
		lessonAt(model.StatusSlugNoPaidClosed, 400),
		lessonAt(model.StatusSlugCancelled, 150),
	}

	got := CalculateIncome(events, Period{})

	assert.Equal(t, 500, got.Received)
	assert.Equal(t, 0, got.Planned)
	assert.Equal(t, -500, got.Remaining)
	assert.Equal(t, StatusTally{Count: 1, Total: 400}, got.Breakdown.NoPaidClosed)
	assert.Equal(t, StatusTally{Count: 1, Total: 150}, got.Breakdown.Cancelled)
}

func TestCalculateIncomeEmpty(t *testing.T) {
	got := CalculateIncome(nil, Period{Start: "2024-03-01", End: "2024-03-31"})

	assert.Zero(t, got.Planned)
	assert.Zero(t, got.Received)
	assert.Zero(t, got.Total)
	assert.Zero(t, got.Remaining)
}

func TestCalculateIncomeIdempotent(t *testing.T) {
	events := []model.CalendarEvent{
		bookedAt(500),
		lessonAt(model.StatusSlugPaid, 300),
		lessonAt(model.StatusSlugPending, 100),
	}
	period := Period{Start: "2024-03-01", End: "2024-03-31"}

	first := CalculateIncome(events, period)
	second := CalculateIncome(events, period)

	// Счётчик не копит состояние между вызовами
	assert.Equal(t, first, second)
}
