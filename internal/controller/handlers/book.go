package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tutor-crm/backend/internal/model"
	"github.com/tutor-crm/backend/internal/service"
)

type BookHandler struct {
	books *service.BookService
}

func NewBookHandler(books *service.BookService) *BookHandler {
	return &BookHandler{books: books}
}

type bookRequest struct {
	StudentID        int64   `json:"studentId"`
	LessonCategoryID int64   `json:"lessonCategoryId"`
	TimeFrom         string  `json:"timeFrom"`
	TimeTo           string  `json:"timeTo"`
	StartDate        string  `json:"startDate"`
	EndDate          *string `json:"endDate"`
	BookStatus       bool    `json:"bookStatus"`
	LessonFormat     string  `json:"lessonFormat"`
}

func (r *bookRequest) toModel(id int64) *model.Book {
	book := &model.Book{
		ID:           id,
		TimeFrom:     r.TimeFrom,
		TimeTo:       r.TimeTo,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		BookStatus:   r.BookStatus,
		LessonFormat: model.LessonFormat(r.LessonFormat),
	}
	if r.StudentID != 0 {
		book.Student = &model.StudentRef{ID: r.StudentID}
	}
	if r.LessonCategoryID != 0 {
		book.LessonCategory = &model.CategoryRef{ID: r.LessonCategoryID}
	}
	return book
}

// List GET /api/v1/book/get
func (h *BookHandler) List(c *gin.Context) {
	books, err := h.books.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	if books == nil {
		books = []*model.Book{}
	}
	c.JSON(http.StatusOK, books)
}

// Get GET /api/v1/book/get/:id
func (h *BookHandler) Get(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}

	book, err := h.books.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, book)
}

// Create POST /api/v1/book/create
func (h *BookHandler) Create(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Некорректный запрос"})
		return
	}

	book := req.toModel(0)
	if err := h.books.Create(c.Request.Context(), book); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, book)
}

// Update PUT /api/v1/book/update/:id
func (h *BookHandler) Update(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}

	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Некорректный запрос"})
		return
	}

	book := req.toModel(id)
	if err := h.books.Update(c.Request.Context(), book); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, book)
}

// Delete DELETE /api/v1/book/delete/:id
func (h *BookHandler) Delete(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}

	if err := h.books.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
