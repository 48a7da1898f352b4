package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tutor-crm/backend/internal/model"
	"github.com/tutor-crm/backend/internal/service"
)

type LessonHandler struct {
	lessons *service.LessonService
}

func NewLessonHandler(lessons *service.LessonService) *LessonHandler {
	return &LessonHandler{lessons: lessons}
}

// List GET /api/v1/lesson/get
func (h *LessonHandler) List(c *gin.Context) {
	lessons, err := h.lessons.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	if lessons == nil {
		lessons = []*model.Lesson{}
	}
	c.JSON(http.StatusOK, lessons)
}

// Get GET /api/v1/lesson/get/:id
func (h *LessonHandler) Get(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}

	lesson, err := h.lessons.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, lesson)
}

// Create POST /api/v1/lesson/create
func (h *LessonHandler) Create(c *gin.Context) {
	var in service.LessonInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Некорректный запрос"})
		return
	}

	lesson, err := h.lessons.Create(c.Request.Context(), &in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, lesson)
}

// Update PUT /api/v1/lesson/update/:id
func (h *LessonHandler) Update(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}

	var in service.LessonInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Некорректный запрос"})
		return
	}

	lesson, err := h.lessons.Update(c.Request.Context(), id, &in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, lesson)
}

// Delete DELETE /api/v1/lesson/delete/:id
func (h *LessonHandler) Delete(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}

	if err := h.lessons.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
