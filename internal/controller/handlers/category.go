package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tutor-crm/backend/internal/model"
	"github.com/tutor-crm/backend/internal/service"
)

type CategoryHandler struct {
	categories *service.CategoryService
}

func NewCategoryHandler(categories *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

type categoryRequest struct {
	Name  string `json:"name"`
	Price int    `json:"price"`
	Slug  string `json:"slug"`
}

// List GET /api/v1/category/get
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	if categories == nil {
		categories = []*model.Category{}
	}
	c.JSON(http.StatusOK, categories)
}

// Get GET /api/v1/category/get/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}

	category, err := h.categories.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// Create POST /api/v1/category/create
func (h *CategoryHandler) Create(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Некорректный запрос"})
		return
	}

	category := &model.Category{Name: req.Name, Price: req.Price, Slug: req.Slug}
	if err := h.categories.Create(c.Request.Context(), category); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// Update PUT /api/v1/category/update/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Некорректный запрос"})
		return
	}

	category := &model.Category{ID: id, Name: req.Name, Price: req.Price, Slug: req.Slug}
	if err := h.categories.Update(c.Request.Context(), category); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// Delete DELETE /api/v1/category/delete/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}

	if err := h.categories.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
