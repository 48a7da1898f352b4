package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tutor-crm/backend/internal/service"
)

type StatisticsHandler struct {
	statistics *service.StatisticsService
}

func NewStatisticsHandler(statistics *service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statistics: statistics}
}

// Full GET /api/v1/statistics/full?start=YYYY-MM-DD&end=YYYY-MM-DD
// Оба параметра опциональны: пустой диапазон значит "за всё время".
func (h *StatisticsHandler) Full(c *gin.Context) {
	snapshot, err := h.statistics.Full(c.Request.Context(), c.Query("start"), c.Query("end"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}
