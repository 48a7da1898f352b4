package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tutor-crm/backend/internal/model"
	"github.com/tutor-crm/backend/internal/service"
)

type StatusHandler struct {
	statuses *service.StatusService
}

func NewStatusHandler(statuses *service.StatusService) *StatusHandler {
	return &StatusHandler{statuses: statuses}
}

type statusRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// List GET /api/v1/status/get
func (h *StatusHandler) List(c *gin.Context) {
	statuses, err := h.statuses.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	if statuses == nil {
		statuses = []*model.Status{}
	}
	c.JSON(http.StatusOK, statuses)
}

// Get GET /api/v1/status/get/:id
func (h *StatusHandler) Get(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}

	status, err := h.statuses.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// Create POST /api/v1/status/create
func (h *StatusHandler) Create(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Некорректный запрос"})
		return
	}

	status := &model.Status{Name: req.Name, Slug: req.Slug}
	if err := h.statuses.Create(c.Request.Context(), status); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, status)
}

// Update PUT /api/v1/status/update/:id
func (h *StatusHandler) Update(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Некорректный запрос"})
		return
	}

	status := &model.Status{ID: id, Name: req.Name, Slug: req.Slug}
	if err := h.statuses.Update(c.Request.Context(), status); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// Delete DELETE /api/v1/status/delete/:id
func (h *StatusHandler) Delete(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}

	if err := h.statuses.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
