package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tutor-crm/backend/internal/model"
	"github.com/tutor-crm/backend/internal/service"
)

type StudentHandler struct {
	students *service.StudentService
}

func NewStudentHandler(students *service.StudentService) *StudentHandler {
	return &StudentHandler{students: students}
}

type studentRequest struct {
	Name    string `json:"name"`
	Comment string `json:"comment"`
}

// List GET /api/v1/student/get
func (h *StudentHandler) List(c *gin.Context) {
	students, err := h.students.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	// Пустой список отдаём как [], не null
	if students == nil {
		students = []*model.Student{}
	}
	c.JSON(http.StatusOK, students)
}

// Get GET /api/v1/student/get/:id
func (h *StudentHandler) Get(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}

	student, err := h.students.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

// Create POST /api/v1/student/create
func (h *StudentHandler) Create(c *gin.Context) {
	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Некорректный запрос"})
		return
	}

	student := &model.Student{Name: req.Name, Comment: req.Comment}
	if err := h.students.Create(c.Request.Context(), student); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, student)
}

// Update PUT /api/v1/student/update/:id
func (h *StudentHandler) Update(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}

	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Некорректный запрос"})
		return
	}

	student := &model.Student{ID: id, Name: req.Name, Comment: req.Comment}
	if err := h.students.Update(c.Request.Context(), student); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

// Delete DELETE /api/v1/student/delete/:id
func (h *StudentHandler) Delete(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}

	if err := h.students.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
