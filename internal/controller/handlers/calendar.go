package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tutor-crm/backend/internal/model"
	"github.com/tutor-crm/backend/internal/service"
)

type CalendarHandler struct {
	calendar *service.CalendarService
}

func NewCalendarHandler(calendar *service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendar: calendar}
}

// Events GET /api/v1/calendar/?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *CalendarHandler) Events(c *gin.Context) {
	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Укажите параметры start и end"})
		return
	}

	events, err := h.calendar.Events(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}

	if events == nil {
		events = []model.CalendarEvent{}
	}
	c.JSON(http.StatusOK, events)
}

// Income GET /api/v1/calendar/income?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *CalendarHandler) Income(c *gin.Context) {
	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Укажите параметры start и end"})
		return
	}

	snapshot, err := h.calendar.Income(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// Slot GET /api/v1/calendar/slot?url=<event url>
// Разбирает URL события календаря в черновик урока для модального окна.
func (h *CalendarHandler) Slot(c *gin.Context) {
	rawURL := c.Query("url")
	if rawURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Укажите параметр url"})
		return
	}

	draft, err := h.calendar.Draft(c.Request.Context(), rawURL)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, draft)
}

// WeekImage GET /api/v1/calendar/week.png?start=YYYY-MM-DD
// Без параметра start рисуется текущая неделя.
func (h *CalendarHandler) WeekImage(c *gin.Context) {
	date := time.Now()
	if start := c.Query("start"); start != "" {
		parsed, err := time.Parse(model.DateLayout, start)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Некорректная дата start"})
			return
		}
		date = parsed
	}

	png, err := h.calendar.WeekImage(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
