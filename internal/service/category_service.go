package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tutor-crm/backend/internal/model"
	"github.com/tutor-crm/backend/internal/repository"
)

type CategoryService struct {
	categoryRepo *repository.CategoryRepository
	logger       *zap.Logger
}

func NewCategoryService(categoryRepo *repository.CategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, logger: logger}
}

// List возвращает все категории
func (s *CategoryService) List(ctx context.Context) ([]*model.Category, error) {
	return s.categoryRepo.List(ctx)
}

// Get возвращает категорию по ID
func (s *CategoryService) Get(ctx context.Context, id int64) (*model.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return category, nil
}

// Create создаёт категорию; slug генерируется из названия если не задан
func (s *CategoryService) Create(ctx context.Context, category *model.Category) error {
	if err := s.validate(category); err != nil {
		return err
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return err
	}

	s.logger.Info("Category created",
		zap.Int64("category_id", category.ID),
		zap.String("slug", category.Slug))
	return nil
}

// Update обновляет категорию
func (s *CategoryService) Update(ctx context.Context, category *model.Category) error {
	if err := s.validate(category); err != nil {
		return err
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return err
	}

	s.logger.Info("Category updated", zap.Int64("category_id", category.ID))
	return nil
}

// Delete удаляет категорию
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Category deleted", zap.Int64("category_id", id))
	return nil
}

func (s *CategoryService) validate(category *model.Category) error {
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if category.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative", ErrValidation)
	}
	if category.Slug == "" {
		category.Slug = model.Slugify(category.Name)
	}
	return nil
}
